package engine

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/draughts/pkg/common"
)

// searchParallel scores the root moves concurrently.
// Branches share no bounds, so every root move gets an exact score
// and the first best move in generation order wins.
func searchParallel(root *thread, b *common.Board, threads int) (turnLine, int64) {
	var ml, forced = root.generateMoves(b, root.side, freshTurn)
	var lines = make([]turnLine, len(ml))
	var workers = make([]*thread, len(ml))
	for i := range workers {
		workers[i] = &thread{
			evaluator: root.evaluator,
			rnd:       rand.New(rand.NewSource(root.rnd.Int63())),
			side:      root.side,
			maxDepth:  root.maxDepth,
			pruning:   root.pruning,
		}
	}

	var g errgroup.Group
	g.SetLimit(threads)
	for i := range ml {
		i := i
		g.Go(func() error {
			lines[i] = workers[i].searchRootMove(b, ml[i], forced, noScore)
			return nil
		})
	}
	_ = g.Wait()

	var best = turnLine{score: noScore, move: common.MoveEmpty}
	var nodes int64
	for i := range lines {
		nodes += workers[i].nodes
		if best.move == common.MoveEmpty || lines[i].score > best.score {
			best = lines[i]
		}
	}
	return best, nodes
}
