package common

import (
	"fmt"
	"time"
)

type Cell int8

const (
	Empty Cell = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

type Side int

const (
	White Side = iota
	Black
)

const (
	BoardSize   = 8
	SquareCount = BoardSize * BoardSize
	SquareNone  = Square(-1)
	MaxMoves    = 64
)

// Board is indexed by Square; row 0 is the top edge where white men promote.
type Board [SquareCount]Cell

type Square int

type Move struct {
	From     Square
	To       Square
	Captured Square
}

var MoveEmpty = Move{From: SquareNone, To: SquareNone, Captured: SquareNone}

// Turn is one side's complete move: a single quiet move or a chain of captures.
type Turn []Move

type SearchParams struct {
	Board Board
	Side  Side
	// Depth overrides the engine depth when positive.
	Depth int
}

type SearchInfo struct {
	// Turn is empty when the side to move has no legal turn.
	Turn  Turn
	Score float64
	Depth int
	Nodes int64
	Time  time.Duration
}

func (c Cell) Side() Side {
	if c == WhiteMan || c == WhiteKing {
		return White
	}
	return Black
}

func (c Cell) IsKing() bool {
	return c == WhiteKing || c == BlackKing
}

func (c Cell) IsMan() bool {
	return c == WhiteMan || c == BlackMan
}

func (s Side) Opposite() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "w", "white", "0":
		return White, nil
	case "b", "black", "1":
		return Black, nil
	}
	return White, fmt.Errorf("parse side failed %v", s)
}

// PromotionRow is the far row for the men of side s.
func PromotionRow(s Side) int {
	if s == White {
		return 0
	}
	return BoardSize - 1
}
