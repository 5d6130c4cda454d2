package eval

import (
	"fmt"

	"github.com/ChizhovVadim/draughts/pkg/common"
)

// Scores are the ratio of the strength of one side to the strength of the other.
const (
	ValueLoss = 0
	ValueWin  = 1e9
)

// Evaluator must be safe for concurrent use: parallel search shares one instance.
type Evaluator interface {
	Evaluate(b *common.Board, side common.Side) float64
}

type ScoringMode int

const (
	Simple ScoringMode = iota
	NumberAndPotential
)

func (m ScoringMode) String() string {
	switch m {
	case Simple:
		return "Simple"
	case NumberAndPotential:
		return "NumberAndPotential"
	}
	return fmt.Sprintf("ScoringMode(%d)", int(m))
}

func ParseScoringMode(s string) (ScoringMode, error) {
	switch s {
	case "Simple", "simple":
		return Simple, nil
	case "NumberAndPotential", "numberandpotential", "potential":
		return NumberAndPotential, nil
	}
	return Simple, fmt.Errorf("bad scoring mode %v", s)
}
