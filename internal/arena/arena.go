package arena

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Run plays cfg.Games games between engines built by newEngineA and newEngineB.
// Games come in pairs from the same random opening with colours swapped.
func Run(
	ctx context.Context,
	cfg Config,
	newEngineA, newEngineB func() Engine,
	logger zerolog.Logger,
) (Stats, error) {
	if cfg.Games < 1 || cfg.Concurrency < 1 || cfg.MaxNumTurns < 1 {
		return Stats{}, errors.New("arena: games, concurrency and max turns must be positive")
	}

	logger.Info().
		Int("numCPU", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("games", cfg.Games).
		Int("concurrency", cfg.Concurrency).
		Msg("arena started")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan Game)
	var stats Stats

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, cfg, gameInfos)
	})

	g.Go(func() error {
		stats = showResults(gameResults, logger)
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, newEngineA(), newEngineB(), gameInfos, gameResults, logger)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	logger.Info().
		Int("wins", stats.Wins).
		Int("losses", stats.Losses).
		Int("draws", stats.Draws).
		Msg("arena finished")
	return stats, nil
}

func loadOpenings(
	ctx context.Context,
	cfg Config,
	gameInfos chan<- gameInfo,
) error {
	for i := 0; i < cfg.Games; i++ {
		var rnd = rand.New(rand.NewSource(cfg.Seed + int64(i/2)))
		var board, side = randomOpening(rnd, cfg.OpeningTurns)
		var info = gameInfo{
			id:             uuid.New(),
			gameNumber:     i + 1,
			opening:        board,
			openingSide:    side,
			engineAIsWhite: i%2 == 0,
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- info:
		}
	}
	return nil
}

func playGames(
	ctx context.Context,
	cfg Config,
	engineA, engineB Engine,
	gameInfos <-chan gameInfo,
	gameResults chan<- Game,
	logger zerolog.Logger,
) error {
	for info := range gameInfos {
		var res, err = playGame(ctx, engineA, engineB, cfg.MaxNumTurns, cfg.BotDelay, info, logger)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func showResults(gameResults <-chan Game, logger zerolog.Logger) Stats {
	var stats Stats
	for game := range gameResults {
		stats.Games++
		switch {
		case game.Result == GameResultDraw:
			stats.Draws++
		case game.Result == GameResultWhiteWins && game.EngineAIsWhite,
			game.Result == GameResultBlackWins && !game.EngineAIsWhite:
			stats.Wins++
		default:
			stats.Losses++
		}
		stats.computeStat()
		logger.Info().
			Str("game", game.ID.String()).
			Int("number", game.Number).
			Stringer("result", game.Result).
			Str("comment", game.Comment).
			Int("turns", len(game.Turns)).
			Msg("finished game")
		logger.Info().
			Str("score", formatScore(stats)).
			Float64("elo", stats.EloDifference).
			Float64("los", stats.LOS*100).
			Msg("match")
	}
	return stats
}

// https://www.chessprogramming.org/Match_Statistics
func (s *Stats) computeStat() {
	var games = float64(s.Wins + s.Losses + s.Draws)
	s.WinningFraction = (float64(s.Wins) + 0.5*float64(s.Draws)) / games
	s.EloDifference = -math.Log(1/s.WinningFraction-1) * 400 / math.Ln10
	s.LOS = 0.5 + 0.5*math.Erf(float64(s.Wins-s.Losses)/math.Sqrt(2*float64(s.Wins+s.Losses)))
}

func formatScore(s Stats) string {
	return fmt.Sprintf("%v - %v - %v [%.3f] %v",
		s.Wins, s.Losses, s.Draws, s.WinningFraction, s.Games)
}
