package eval

import (
	"github.com/ChizhovVadim/draughts/pkg/common"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

const potentialBonus = 0.05

type EvaluationService struct {
	kingWeight float64
	potential  bool
}

func NewEvaluationService(mode eval.ScoringMode) *EvaluationService {
	if mode == eval.NumberAndPotential {
		return &EvaluationService{kingWeight: 5, potential: true}
	}
	return &EvaluationService{kingWeight: 4}
}

// Evaluate returns the strength of side divided by the strength of its opponent.
func (e *EvaluationService) Evaluate(b *common.Board, side common.Side) float64 {
	var men, kings [2]float64
	var count [2]int
	for sq := common.Square(0); sq < common.SquareCount; sq++ {
		var piece = b[sq]
		if piece == common.Empty {
			continue
		}
		var s = piece.Side()
		count[s]++
		if piece.IsKing() {
			kings[s]++
			continue
		}
		men[s]++
		if e.potential {
			// rows advanced towards promotion
			var advanced = common.AbsDelta(sq.Row(), common.PromotionRow(s.Opposite()))
			men[s] += potentialBonus * float64(advanced)
		}
	}
	var opponent = side.Opposite()
	if count[opponent] == 0 {
		return eval.ValueWin
	}
	if count[side] == 0 {
		return eval.ValueLoss
	}
	return (men[side] + e.kingWeight*kings[side]) / (men[opponent] + e.kingWeight*kings[opponent])
}
