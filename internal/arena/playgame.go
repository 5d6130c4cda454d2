package arena

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/draughts/pkg/common"
)

func playGame(
	ctx context.Context,
	engineA, engineB Engine,
	maxNumTurns int,
	botDelay time.Duration,
	info gameInfo,
	logger zerolog.Logger,
) (Game, error) {

	logger = logger.With().
		Str("game", info.id.String()).
		Int("number", info.gameNumber).
		Logger()
	logger.Debug().Bool("engineAIsWhite", info.engineAIsWhite).Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var game = Game{
		ID:             info.id,
		Number:         info.gameNumber,
		EngineAIsWhite: info.engineAIsWhite,
		Board:          info.opening,
	}
	var side = info.openingSide
	var buf [common.MaxMoves]common.Move

	for {
		if err := ctx.Err(); err != nil {
			return Game{}, err
		}
		var ml, _ = common.GenerateSideMoves(&game.Board, side, buf[:0])
		if len(ml) == 0 {
			game.Comment = "no moves"
			if side == common.White {
				game.Result = GameResultBlackWins
			} else {
				game.Result = GameResultWhiteWins
			}
			return game, nil
		}
		if len(game.Turns) >= maxNumTurns {
			game.Comment = "max turns"
			game.Result = GameResultDraw
			return game, nil
		}

		var eng = engineB
		if (side == common.White) == info.engineAIsWhite {
			eng = engineA
		}
		var si, err = eng.Search(common.SearchParams{
			Board: game.Board,
			Side:  side,
		})
		if err != nil {
			return Game{}, err
		}
		// replay through the parser to reject illegal or unfinished turns
		_, child, err := common.ParseTurn(game.Board, side, si.Turn.String())
		if err != nil {
			return Game{}, fmt.Errorf("bad turn %v: %w", si.Turn, err)
		}
		logger.Debug().
			Stringer("side", side).
			Stringer("turn", si.Turn).
			Float64("score", si.Score).
			Int64("nodes", si.Nodes).
			Dur("time", si.Time).
			Msg("turn")
		game.Turns = append(game.Turns, si.Turn)
		game.Board = child
		side = side.Opposite()

		if botDelay > 0 {
			select {
			case <-ctx.Done():
				return Game{}, ctx.Err()
			case <-time.After(botDelay):
			}
		}
	}
}

// randomOpening plays n random turns from the initial position.
func randomOpening(rnd *rand.Rand, n int) (common.Board, common.Side) {
	var board = common.InitialBoard()
	var side = common.White
	var buf [common.MaxMoves]common.Move
	for i := 0; i < n; i++ {
		var ml, _ = common.GenerateSideMoves(&board, side, buf[:0])
		if len(ml) == 0 {
			break
		}
		for {
			var m = ml[rnd.Intn(len(ml))]
			board.Apply(m)
			if !m.IsCapture() {
				break
			}
			var forced bool
			ml, forced = common.GenerateSquareMoves(&board, m.To, buf[:0])
			if !forced {
				break
			}
		}
		side = side.Opposite()
	}
	return board, side
}
