package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrIncompleteTurn = errors.New("capture chain not finished")
)

func (m Move) IsCapture() bool {
	return m.Captured != SquareNone
}

// Equal compares endpoints only.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	if m.IsCapture() {
		return m.From.String() + ":" + m.To.String()
	}
	return m.From.String() + "-" + m.To.String()
}

func (t Turn) IsCapture() bool {
	return len(t) != 0 && t[0].IsCapture()
}

func (t Turn) String() string {
	if len(t) == 0 {
		return "none"
	}
	if !t.IsCapture() {
		return t[0].String()
	}
	var sb strings.Builder
	sb.WriteString(t[0].From.String())
	for _, m := range t {
		sb.WriteString(":")
		sb.WriteString(m.To.String())
	}
	return sb.String()
}

func FindMove(ml []Move, from, to Square) (Move, bool) {
	var key = Move{From: from, To: to}
	for _, m := range ml {
		if m.Equal(key) {
			return m, true
		}
	}
	return MoveEmpty, false
}

// ParseTurn checks a turn written as "c3-d4" or "c3:e5:c7" against the
// moves available to side and returns it together with the resulting board.
func ParseTurn(b Board, side Side, s string) (Turn, Board, error) {
	var fields = strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ':' || r == 'x'
	})
	if len(fields) < 2 {
		return nil, Board{}, fmt.Errorf("parse turn failed %v", s)
	}
	var squares = make([]Square, len(fields))
	for i, field := range fields {
		var sq, err = ParseSquare(field)
		if err != nil {
			return nil, Board{}, err
		}
		squares[i] = sq
	}

	var buffer [MaxMoves]Move
	var ml, _ = GenerateSideMoves(&b, side, buffer[:])
	var turn Turn
	for i := 1; i < len(squares); i++ {
		var m, found = FindMove(ml, squares[i-1], squares[i])
		if !found {
			return nil, Board{}, fmt.Errorf("%w %v", ErrIllegalMove, Move{From: squares[i-1], To: squares[i]})
		}
		b.Apply(m)
		turn = append(turn, m)
		if !m.IsCapture() {
			if i != len(squares)-1 {
				return nil, Board{}, fmt.Errorf("%w %v", ErrIllegalMove, s)
			}
			return turn, b, nil
		}
		var forced bool
		ml, forced = GenerateSquareMoves(&b, m.To, buffer[:])
		if !forced {
			if i != len(squares)-1 {
				return nil, Board{}, fmt.Errorf("%w %v", ErrIllegalMove, s)
			}
			return turn, b, nil
		}
	}
	return nil, Board{}, fmt.Errorf("%w %v", ErrIncompleteTurn, s)
}

// ApplyTurn makes every move of t in order.
func (b *Board) ApplyTurn(t Turn) {
	for _, m := range t {
		b.Apply(m)
	}
}
