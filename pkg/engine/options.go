package engine

import (
	"errors"
	"fmt"

	"github.com/ChizhovVadim/draughts/pkg/eval"
)

type PruningMode int

const (
	PruningDisabled PruningMode = iota
	PruningEnabled
)

func (m PruningMode) String() string {
	if m == PruningDisabled {
		return "O0"
	}
	return "O1"
}

// ParsePruningMode accepts optimization levels: "O0" turns pruning off, any other level turns it on.
func ParsePruningMode(s string) PruningMode {
	if s == "O0" || s == "off" || s == "false" {
		return PruningDisabled
	}
	return PruningEnabled
}

type Options struct {
	// MaxDepth is the number of full-turn replies searched after the root turn.
	MaxDepth int
	Scoring  eval.ScoringMode
	Pruning  PruningMode
	// NoRandom makes every search reproducible: the move shuffle is reseeded from Seed.
	NoRandom bool
	Seed     int64
	Threads  int
}

func NewOptions() Options {
	return Options{
		MaxDepth: 3,
		Scoring:  eval.NumberAndPotential,
		Pruning:  PruningEnabled,
		NoRandom: false,
		Seed:     0,
		Threads:  1,
	}
}

func (o *Options) Validate() error {
	if o.MaxDepth < 1 {
		return fmt.Errorf("bad max depth %v", o.MaxDepth)
	}
	if o.Threads < 1 {
		return errors.New("threads must be positive")
	}
	if o.Scoring != eval.Simple && o.Scoring != eval.NumberAndPotential {
		return fmt.Errorf("bad scoring mode %v", o.Scoring)
	}
	return nil
}
