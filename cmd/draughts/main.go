package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/ChizhovVadim/draughts/internal/arena"
	"github.com/ChizhovVadim/draughts/internal/config"
	"github.com/ChizhovVadim/draughts/internal/evalbuilder"
	"github.com/ChizhovVadim/draughts/internal/server"
	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/engine"
	"github.com/ChizhovVadim/draughts/pkg/eval"
	"github.com/ChizhovVadim/draughts/pkg/protocol"
)

const (
	name   = "Draughts"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Logger()

	var app = &cli.App{
		Name:    "draughts",
		Usage:   "draughts engine: text protocol, HTTP analysis server and bot arena",
		Version: versionName,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "settings file (JSON)"},
			&cli.StringFlag{Name: "env", Value: ".env", Usage: "dotenv file with DRAUGHTS_* overrides"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace, debug, info, warn or error"},
		},
		Before: func(c *cli.Context) error {
			var level, err = zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logger = logger.Level(level)
			logger.Info().
				Str("version", versionName).
				Str("buildDate", buildDate).
				Str("gitRevision", gitRevision).
				Str("runtime", runtime.Version()).
				Str("goarch", runtime.GOARCH).
				Str("goos", runtime.GOOS).
				Int("numCPU", runtime.NumCPU()).
				Msg(name)
			return nil
		},
		Action: func(c *cli.Context) error {
			return runProtocol(c, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "protocol",
				Usage: "talk the text protocol on stdin/stdout",
				Action: func(c *cli.Context) error {
					return runProtocol(c, logger)
				},
			},
			{
				Name:  "serve",
				Usage: "run the HTTP analysis server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides Server.Addr"},
				},
				Action: func(c *cli.Context) error {
					return runServer(c, logger)
				},
			},
			{
				Name:  "arena",
				Usage: "play bot against bot: engine A uses the white bot level, engine B the black one",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Value: 10, Usage: "number of games"},
					&cli.IntFlag{Name: "concurrency", Value: runtime.NumCPU(), Usage: "games played at once"},
					&cli.IntFlag{Name: "opening-turns", Value: 2, Usage: "random turns before the bots start"},
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "opening seed"},
				},
				Action: func(c *cli.Context) error {
					return runArena(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("draughts failed")
	}
}

func loadSettings(c *cli.Context) (config.Settings, error) {
	var settings, err = config.Load(c.String("config"))
	if err != nil {
		return config.Settings{}, err
	}
	env, err := config.ReadEnv(c.String("env"))
	if err != nil {
		return config.Settings{}, err
	}
	if err = settings.ApplyEnv(env); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func runProtocol(c *cli.Context, logger zerolog.Logger) error {
	var settings, err = loadSettings(c)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(settings.EngineOptions(common.White), evalbuilder.Get)

	var p = protocol.New(name, author, versionName, eng,
		[]protocol.Option{
			&protocol.IntOption{Name: "Depth", Min: 1, Max: 20, Value: &eng.Options.MaxDepth},
			&protocol.IntOption{Name: "Threads", Min: 1, Max: runtime.NumCPU(), Value: &eng.Options.Threads},
			&protocol.BoolOption{Name: "NoRandom", Value: &eng.Options.NoRandom},
			&protocol.ComboOption{
				Name: "Scoring",
				Vars: []string{eval.Simple.String(), eval.NumberAndPotential.String()},
				Get:  func() string { return eng.Options.Scoring.String() },
				Apply: func(s string) error {
					var mode, err = eval.ParseScoringMode(s)
					if err != nil {
						return err
					}
					eng.Options.Scoring = mode
					return nil
				},
			},
			&protocol.ComboOption{
				Name: "Optimization",
				Vars: []string{engine.PruningDisabled.String(), engine.PruningEnabled.String()},
				Get:  func() string { return eng.Options.Pruning.String() },
				Apply: func(s string) error {
					eng.Options.Pruning = engine.ParsePruningMode(s)
					return nil
				},
			},
		},
	)
	p.Run(os.Stdin, os.Stdout, logger)
	return nil
}

func runServer(c *cli.Context, logger zerolog.Logger) error {
	var settings, err = loadSettings(c)
	if err != nil {
		return err
	}
	var addr = settings.Server.Addr
	if c.String("addr") != "" {
		addr = c.String("addr")
	}
	var ctx, stop = signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv = server.New(settings.EngineOptions(common.White), settings.Server.MaxDepth, logger)
	return srv.ListenAndServe(ctx, addr)
}

func runArena(c *cli.Context, logger zerolog.Logger) error {
	var settings, err = loadSettings(c)
	if err != nil {
		return err
	}
	var ctx, stop = signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg = arena.Config{
		Games:        c.Int("games"),
		Concurrency:  c.Int("concurrency"),
		OpeningTurns: c.Int("opening-turns"),
		MaxNumTurns:  settings.Game.MaxNumTurns,
		Seed:         c.Int64("seed"),
		BotDelay:     time.Duration(settings.Bot.BotDelayMS) * time.Millisecond,
	}
	var newEngineA = func() arena.Engine {
		return engine.NewEngine(settings.EngineOptions(common.White), evalbuilder.Get)
	}
	var newEngineB = func() arena.Engine {
		return engine.NewEngine(settings.EngineOptions(common.Black), evalbuilder.Get)
	}
	_, err = arena.Run(ctx, cfg, newEngineA, newEngineB, logger)
	return err
}
