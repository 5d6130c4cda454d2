package engine

import (
	"math"
	"math/rand"

	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

const (
	valueInfinity = eval.ValueWin + 1
	noScore       = -1
)

type thread struct {
	evaluator eval.Evaluator
	rnd       *rand.Rand
	side      common.Side
	maxDepth  int
	pruning   bool
	nodes     int64
}

// ply tells whether the side to move starts a new turn
// or continues a capture chain from square.
type ply struct {
	continuation bool
	square       common.Square
}

var freshTurn = ply{square: common.SquareNone}

func continueFrom(sq common.Square) ply {
	return ply{continuation: true, square: sq}
}

// turnLine is the best continuation of the root turn from some capture-chain state.
type turnLine struct {
	score float64
	move  common.Move
	next  *turnLine
}

func (line *turnLine) toTurn() common.Turn {
	var result common.Turn
	for l := line; l != nil && l.move != common.MoveEmpty; l = l.next {
		result = append(result, l.move)
	}
	return result
}

func (t *thread) generateMoves(b *common.Board, side common.Side, p ply) ([]common.Move, bool) {
	if p.continuation {
		return common.GenerateSquareMoves(b, p.square, nil)
	}
	var ml, forced = common.GenerateSideMoves(b, side, nil)
	shuffle(t.rnd, ml)
	return ml, forced
}

// searchRoot walks every capture chain of the root side and keeps the best one.
// Once the root turn is complete the opponent's reply is scored by alphaBeta.
func (t *thread) searchRoot(b *common.Board, p ply, alpha float64) turnLine {
	var ml, forced = t.generateMoves(b, t.side, p)
	if p.continuation && !forced {
		return turnLine{
			score: t.alphaBeta(b, t.side.Opposite(), 0, alpha, valueInfinity, freshTurn),
			move:  common.MoveEmpty,
		}
	}

	var best = turnLine{score: noScore, move: common.MoveEmpty}
	for _, m := range ml {
		var line = t.searchRootMove(b, m, forced, best.score)
		if best.move == common.MoveEmpty || line.score > best.score {
			best = line
		}
	}
	return best
}

func (t *thread) searchRootMove(b *common.Board, m common.Move, forced bool, alpha float64) turnLine {
	var child = common.MakeMove(*b, m)
	if !forced {
		return turnLine{
			score: t.alphaBeta(&child, t.side.Opposite(), 0, alpha, valueInfinity, freshTurn),
			move:  m,
		}
	}
	var next = t.searchRoot(&child, continueFrom(m.To), alpha)
	var line = turnLine{score: next.score, move: m}
	if next.move != common.MoveEmpty {
		line.next = &next
	}
	return line
}

// alphaBeta scores the position from the root side's point of view.
// depth counts complete turns after the root turn: the root side maximizes on odd depths.
// On a cutoff the bound is returned moved one unit outside the window.
func (t *thread) alphaBeta(b *common.Board, side common.Side, depth int, alpha, beta float64, p ply) float64 {
	t.nodes++
	if depth == t.maxDepth {
		return t.evaluator.Evaluate(b, t.side)
	}

	var ml, forced = t.generateMoves(b, side, p)
	if p.continuation && !forced {
		return t.alphaBeta(b, side.Opposite(), depth+1, alpha, beta, freshTurn)
	}

	var maximizing = depth%2 == 1
	if len(ml) == 0 {
		if maximizing {
			return eval.ValueLoss
		}
		return eval.ValueWin
	}

	var minScore, maxScore float64 = valueInfinity, noScore
	for _, m := range ml {
		var child = common.MakeMove(*b, m)
		var score float64
		if forced {
			score = t.alphaBeta(&child, side, depth, alpha, beta, continueFrom(m.To))
		} else {
			score = t.alphaBeta(&child, side.Opposite(), depth+1, alpha, beta, freshTurn)
		}

		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)
		if maximizing {
			alpha = math.Max(alpha, maxScore)
		} else {
			beta = math.Min(beta, minScore)
		}

		if t.pruning && alpha >= beta {
			if maximizing {
				return maxScore + 1
			}
			return minScore - 1
		}
	}

	if maximizing {
		return maxScore
	}
	return minScore
}
