package common

import (
	"fmt"
	"strings"
)

const (
	fileNames = "abcdefgh"
	rankNames = "87654321"
)

func MakeSquare(row, col int) Square {
	return Square(row*BoardSize + col)
}

func (sq Square) Row() int {
	return int(sq) / BoardSize
}

func (sq Square) Col() int {
	return int(sq) % BoardSize
}

func (sq Square) IsValid() bool {
	return sq >= 0 && sq < SquareCount
}

func isInside(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// IsPlayable reports whether pieces may stand on sq.
func (sq Square) IsPlayable() bool {
	return (sq.Row()+sq.Col())%2 == 1
}

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string(fileNames[sq.Col()]) + string(rankNames[sq.Row()])
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return SquareNone, fmt.Errorf("parse square failed %v", s)
	}
	var col = strings.IndexByte(fileNames, s[0]|0x20)
	var row = strings.IndexByte(rankNames, s[1])
	if col < 0 || row < 0 {
		return SquareNone, fmt.Errorf("parse square failed %v", s)
	}
	return MakeSquare(row, col), nil
}
