package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

var (
	ErrBadSquare   = errors.New("square out of range")
	ErrEmptySquare = errors.New("no piece on square")
)

type Engine struct {
	Options     Options
	evalBuilder func(eval.ScoringMode) eval.Evaluator
	evaluator   eval.Evaluator
	scoring     eval.ScoringMode
	rnd         *rand.Rand
	mu          sync.Mutex
}

func NewEngine(options Options, evalBuilder func(eval.ScoringMode) eval.Evaluator) *Engine {
	return &Engine{
		Options:     options,
		evalBuilder: evalBuilder,
	}
}

// Prepare applies changed options. The random source is created once per engine.
func (e *Engine) Prepare() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare()
}

func (e *Engine) prepare() {
	if e.evaluator == nil || e.scoring != e.Options.Scoring {
		e.evaluator = e.evalBuilder(e.Options.Scoring)
		e.scoring = e.Options.Scoring
	}
	if e.rnd == nil {
		e.rnd = newRandom(e.Options)
	}
}

// Clear restarts the random source, as for a new game.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rnd = newRandom(e.Options)
}

func newRandom(options Options) *rand.Rand {
	var seed = options.Seed
	if !options.NoRandom {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func shuffle(rnd *rand.Rand, ml []common.Move) {
	rnd.Shuffle(len(ml), func(i, j int) {
		ml[i], ml[j] = ml[j], ml[i]
	})
}

// GenerateSideMoves returns the legal moves of side in random order.
func (e *Engine) GenerateSideMoves(b *common.Board, side common.Side) ([]common.Move, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare()
	var ml, forced = common.GenerateSideMoves(b, side, nil)
	shuffle(e.rnd, ml)
	return ml, forced
}

func (e *Engine) GenerateSquareMoves(b *common.Board, sq common.Square) ([]common.Move, bool, error) {
	if !sq.IsValid() {
		return nil, false, ErrBadSquare
	}
	if b[sq] == common.Empty {
		return nil, false, ErrEmptySquare
	}
	var ml, forced = common.GenerateSquareMoves(b, sq, nil)
	return ml, forced, nil
}

func (e *Engine) Evaluate(b *common.Board, side common.Side) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare()
	return e.evaluator.Evaluate(b, side)
}

// FindBestTurn searches Options.MaxDepth replies deep and returns the best full turn for side.
func (e *Engine) FindBestTurn(b common.Board, side common.Side) (common.SearchInfo, error) {
	return e.Search(common.SearchParams{Board: b, Side: side})
}

func (e *Engine) Search(params common.SearchParams) (common.SearchInfo, error) {
	if err := e.Options.Validate(); err != nil {
		return common.SearchInfo{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepare()

	var start = time.Now()
	var rnd = e.rnd
	if e.Options.NoRandom {
		rnd = rand.New(rand.NewSource(e.Options.Seed))
	}
	var depth = e.Options.MaxDepth
	if params.Depth > 0 {
		depth = params.Depth
	}
	var root = &thread{
		evaluator: e.evaluator,
		rnd:       rnd,
		side:      params.Side,
		maxDepth:  depth,
		pruning:   e.Options.Pruning == PruningEnabled,
	}

	var line turnLine
	var nodes int64
	if e.Options.Threads > 1 {
		line, nodes = searchParallel(root, &params.Board, e.Options.Threads)
	} else {
		line = root.searchRoot(&params.Board, freshTurn, noScore)
		nodes = root.nodes
	}

	var turn = line.toTurn()
	if len(turn) == 0 {
		line.score = eval.ValueLoss
	}
	return common.SearchInfo{
		Turn:  turn,
		Score: line.score,
		Depth: depth,
		Nodes: nodes,
		Time:  time.Since(start),
	}, nil
}
