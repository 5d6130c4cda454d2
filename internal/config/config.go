package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/engine"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

const envPrefix = "DRAUGHTS_"

type Settings struct {
	Bot    BotSettings    `json:"Bot"`
	Game   GameSettings   `json:"Game"`
	Server ServerSettings `json:"Server"`
}

type BotSettings struct {
	IsWhiteBot     bool   `json:"IsWhiteBot"`
	IsBlackBot     bool   `json:"IsBlackBot"`
	WhiteBotLevel  int    `json:"WhiteBotLevel"`
	BlackBotLevel  int    `json:"BlackBotLevel"`
	BotScoringType string `json:"BotScoringType"`
	Optimization   string `json:"Optimization"`
	NoRandom       bool   `json:"NoRandom"`
	BotDelayMS     int    `json:"BotDelayMS"`
	Threads        int    `json:"Threads"`
}

type GameSettings struct {
	MaxNumTurns int `json:"MaxNumTurns"`
}

type ServerSettings struct {
	Addr     string `json:"Addr"`
	MaxDepth int    `json:"MaxDepth"`
}

func Default() Settings {
	return Settings{
		Bot: BotSettings{
			IsWhiteBot:     false,
			IsBlackBot:     true,
			WhiteBotLevel:  3,
			BlackBotLevel:  3,
			BotScoringType: eval.NumberAndPotential.String(),
			Optimization:   "O1",
			NoRandom:       false,
			BotDelayMS:     0,
			Threads:        1,
		},
		Game: GameSettings{
			MaxNumTurns: 120,
		},
		Server: ServerSettings{
			Addr:     ":8080",
			MaxDepth: 6,
		},
	}
}

// Load reads a settings file over the defaults. An empty path means defaults only.
func Load(path string) (Settings, error) {
	var settings = Default()
	if path == "" {
		return settings, nil
	}
	var data, err = os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	if err = json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings %v: %w", path, err)
	}
	return settings, settings.Validate()
}

// ReadEnv collects DRAUGHTS_* variables from the dotenv files and the process environment.
// The process environment wins. Missing dotenv files are ignored.
func ReadEnv(files ...string) (map[string]string, error) {
	var result = make(map[string]string)
	for _, file := range files {
		var values, err = godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for k, v := range values {
			if strings.HasPrefix(k, envPrefix) {
				result[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		var k, v, _ = strings.Cut(kv, "=")
		if strings.HasPrefix(k, envPrefix) {
			result[k] = v
		}
	}
	return result, nil
}

func (s *Settings) ApplyEnv(env map[string]string) error {
	for key, value := range env {
		var err error
		switch strings.TrimPrefix(key, envPrefix) {
		case "WHITE_BOT":
			s.Bot.IsWhiteBot, err = strconv.ParseBool(value)
		case "BLACK_BOT":
			s.Bot.IsBlackBot, err = strconv.ParseBool(value)
		case "WHITE_LEVEL":
			s.Bot.WhiteBotLevel, err = strconv.Atoi(value)
		case "BLACK_LEVEL":
			s.Bot.BlackBotLevel, err = strconv.Atoi(value)
		case "SCORING":
			s.Bot.BotScoringType = value
		case "OPTIMIZATION":
			s.Bot.Optimization = value
		case "NO_RANDOM":
			s.Bot.NoRandom, err = strconv.ParseBool(value)
		case "THREADS":
			s.Bot.Threads, err = strconv.Atoi(value)
		case "MAX_TURNS":
			s.Game.MaxNumTurns, err = strconv.Atoi(value)
		case "ADDR":
			s.Server.Addr = value
		case "SERVER_MAX_DEPTH":
			s.Server.MaxDepth, err = strconv.Atoi(value)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("bad %v: %w", key, err)
		}
	}
	return s.Validate()
}

func (s *Settings) Validate() error {
	if s.Bot.WhiteBotLevel < 1 || s.Bot.BlackBotLevel < 1 {
		return errors.New("bot level must be positive")
	}
	if _, err := eval.ParseScoringMode(s.Bot.BotScoringType); err != nil {
		return err
	}
	if s.Bot.Threads < 1 {
		return errors.New("threads must be positive")
	}
	if s.Game.MaxNumTurns < 1 {
		return errors.New("max number of turns must be positive")
	}
	if s.Server.MaxDepth < 1 {
		return errors.New("server max depth must be positive")
	}
	return nil
}

// EngineOptions builds the bot options for side.
func (s *Settings) EngineOptions(side common.Side) engine.Options {
	var options = engine.NewOptions()
	options.MaxDepth = s.Bot.WhiteBotLevel
	if side == common.Black {
		options.MaxDepth = s.Bot.BlackBotLevel
	}
	options.Scoring, _ = eval.ParseScoringMode(s.Bot.BotScoringType)
	options.Pruning = engine.ParsePruningMode(s.Bot.Optimization)
	options.NoRandom = s.Bot.NoRandom
	options.Threads = s.Bot.Threads
	return options
}

func (s *Settings) IsBot(side common.Side) bool {
	if side == common.White {
		return s.Bot.IsWhiteBot
	}
	return s.Bot.IsBlackBot
}
