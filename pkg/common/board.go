package common

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const InitialBoardText = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/w1w1w1w1/1w1w1w1w/w1w1w1w1"

const pieceChars = ".wbWB"

func InitialBoard() Board {
	var b Board
	for sq := Square(0); sq < SquareCount; sq++ {
		if !sq.IsPlayable() {
			continue
		}
		if sq.Row() < 3 {
			b[sq] = BlackMan
		} else if sq.Row() > 4 {
			b[sq] = WhiteMan
		}
	}
	return b
}

// ParseBoard reads rows top to bottom separated by '/'.
// Digits are runs of empty squares, '.' is a single empty square.
func ParseBoard(s string) (Board, error) {
	var b Board
	var rows = strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != BoardSize {
		return Board{}, fmt.Errorf("parse board failed %v", s)
	}
	for row, text := range rows {
		var col = 0
		for _, ch := range text {
			if unicode.IsDigit(ch) {
				var n, _ = strconv.Atoi(string(ch))
				col += n
				continue
			}
			var i = strings.IndexRune(pieceChars, ch)
			if i < 0 || col >= BoardSize {
				return Board{}, fmt.Errorf("parse board failed %v", s)
			}
			var sq = MakeSquare(row, col)
			if i != 0 && !sq.IsPlayable() {
				return Board{}, fmt.Errorf("piece on light square %v", sq)
			}
			b[sq] = Cell(i)
			col++
		}
		if col != BoardSize {
			return Board{}, fmt.Errorf("parse board failed %v", s)
		}
	}
	return b, nil
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		if row != 0 {
			sb.WriteString("/")
		}
		var emptyCount = 0
		for col := 0; col < BoardSize; col++ {
			var cell = b[MakeSquare(row, col)]
			if cell == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceChars[cell])
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
	}
	return sb.String()
}

// Diagram renders the board as an 8x8 text grid with coordinates.
func (b *Board) Diagram() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(rankNames[row])
		sb.WriteString(" ")
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(pieceChars[b[MakeSquare(row, col)]])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	sb.WriteString(fileNames)
	sb.WriteString("\n")
	return sb.String()
}

// Apply makes m in place. A man reaching its promotion row becomes a king.
func (b *Board) Apply(m Move) {
	var piece = b[m.From]
	if m.Captured != SquareNone {
		b[m.Captured] = Empty
	}
	if piece.IsMan() && m.To.Row() == PromotionRow(piece.Side()) {
		piece += WhiteKing - WhiteMan
	}
	b[m.From] = Empty
	b[m.To] = piece
}

func MakeMove(b Board, m Move) Board {
	b.Apply(m)
	return b
}

func (b *Board) PieceCount(side Side) (men, kings int) {
	for _, cell := range b {
		if cell == Empty || cell.Side() != side {
			continue
		}
		if cell.IsKing() {
			kings++
		} else {
			men++
		}
	}
	return
}
