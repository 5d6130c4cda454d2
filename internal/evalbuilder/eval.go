package evalbuilder

import (
	"fmt"

	"github.com/ChizhovVadim/draughts/pkg/eval"
	material "github.com/ChizhovVadim/draughts/pkg/eval/material"
)

func Get(mode eval.ScoringMode) eval.Evaluator {
	switch mode {
	case eval.Simple, eval.NumberAndPotential:
		return material.NewEvaluationService(mode)
	}
	panic(fmt.Errorf("bad eval %v", mode))
}
