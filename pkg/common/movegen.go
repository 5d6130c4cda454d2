package common

import "fmt"

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// GenerateSideMoves appends to ml[:0] the legal moves of side.
// If any piece of side can capture, only captures are returned and forced is true.
func GenerateSideMoves(b *Board, side Side, ml []Move) (result []Move, forced bool) {
	result = ml[:0]
	for sq := Square(0); sq < SquareCount; sq++ {
		var piece = b[sq]
		if piece != Empty && piece.Side() == side {
			result = appendCaptures(b, sq, result)
		}
	}
	if len(result) != 0 {
		return result, true
	}
	for sq := Square(0); sq < SquareCount; sq++ {
		var piece = b[sq]
		if piece != Empty && piece.Side() == side {
			result = appendQuietMoves(b, sq, result)
		}
	}
	return result, false
}

// GenerateSquareMoves is GenerateSideMoves restricted to the piece on sq.
// It is also used to continue a capture chain from a landing square.
func GenerateSquareMoves(b *Board, sq Square, ml []Move) (result []Move, forced bool) {
	if !sq.IsValid() {
		panic(fmt.Errorf("square out of range %v", int(sq)))
	}
	if b[sq] == Empty {
		panic(fmt.Errorf("no piece on %v", sq))
	}
	result = appendCaptures(b, sq, ml[:0])
	if len(result) != 0 {
		return result, true
	}
	return appendQuietMoves(b, sq, result), false
}

func appendCaptures(b *Board, from Square, ml []Move) []Move {
	var piece = b[from]
	var side = piece.Side()
	var row, col = from.Row(), from.Col()
	if piece.IsMan() {
		for _, dir := range diagonals {
			var toRow, toCol = row + 2*dir[0], col + 2*dir[1]
			if !isInside(toRow, toCol) {
				continue
			}
			var to = MakeSquare(toRow, toCol)
			var over = MakeSquare(row+dir[0], col+dir[1])
			if b[to] != Empty || b[over] == Empty || b[over].Side() == side {
				continue
			}
			ml = append(ml, Move{From: from, To: to, Captured: over})
		}
		return ml
	}
	for _, dir := range diagonals {
		var r, c = row + dir[0], col + dir[1]
		for isInside(r, c) && b[MakeSquare(r, c)] == Empty {
			r += dir[0]
			c += dir[1]
		}
		if !isInside(r, c) {
			continue
		}
		var over = MakeSquare(r, c)
		if b[over].Side() == side {
			continue
		}
		var toRow, toCol = r + dir[0], c + dir[1]
		if !isInside(toRow, toCol) {
			continue
		}
		var to = MakeSquare(toRow, toCol)
		if b[to] != Empty {
			continue
		}
		ml = append(ml, Move{From: from, To: to, Captured: over})
	}
	return ml
}

func appendQuietMoves(b *Board, from Square, ml []Move) []Move {
	var piece = b[from]
	var row, col = from.Row(), from.Col()
	if piece.IsMan() {
		var toRow = row + let(piece.Side() == White, -1, 1)
		for _, toCol := range [2]int{col - 1, col + 1} {
			if !isInside(toRow, toCol) {
				continue
			}
			var to = MakeSquare(toRow, toCol)
			if b[to] == Empty {
				ml = append(ml, Move{From: from, To: to, Captured: SquareNone})
			}
		}
		return ml
	}
	for _, dir := range diagonals {
		for r, c := row+dir[0], col+dir[1]; isInside(r, c); r, c = r+dir[0], c+dir[1] {
			var to = MakeSquare(r, c)
			if b[to] != Empty {
				break
			}
			ml = append(ml, Move{From: from, To: to, Captured: SquareNone})
		}
	}
	return ml
}
