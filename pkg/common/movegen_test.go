package common

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPerft(t *testing.T) {
	var tests = []struct {
		side  Side
		depth int
		turns int
	}{
		{White, 1, 7},
		{Black, 1, 7},
		{White, 2, 49},
		{Black, 2, 49},
	}
	for i, test := range tests {
		var b = InitialBoard()
		var turns = Perft(&b, test.side, test.depth)
		if turns != test.turns {
			t.Error(i, test, turns)
		}
	}
}

// Perft counts complete turns; a capture chain is one turn.
func Perft(b *Board, side Side, depth int) int {
	var ml, _ = GenerateSideMoves(b, side, nil)
	var result = 0
	for _, m := range ml {
		result += perftMove(b, side, m, depth)
	}
	return result
}

func perftMove(b *Board, side Side, m Move, depth int) int {
	var child = MakeMove(*b, m)
	if m.IsCapture() {
		var ml, forced = GenerateSquareMoves(&child, m.To, nil)
		if forced {
			var result = 0
			for _, next := range ml {
				result += perftMove(&child, side, next, depth)
			}
			return result
		}
	}
	if depth <= 1 {
		return 1
	}
	return Perft(&child, side.Opposite(), depth-1)
}

func TestMandatoryCapture(t *testing.T) {
	var b, err = ParseBoard("8/8/8/8/3b4/4w3/8/w7")
	if err != nil {
		t.Fatal(err)
	}
	var e3, _ = ParseSquare("e3")
	var d4, _ = ParseSquare("d4")
	var c5, _ = ParseSquare("c5")

	var ml, forced = GenerateSquareMoves(&b, e3, nil)
	if !forced || len(ml) != 1 {
		t.Fatal(ml, forced)
	}
	if ml[0] != (Move{From: e3, To: c5, Captured: d4}) {
		t.Error(ml[0])
	}

	var sideMoves, sideForced = GenerateSideMoves(&b, White, nil)
	if !sideForced || len(sideMoves) != 1 || sideMoves[0] != ml[0] {
		t.Error(sideMoves, sideForced)
	}
}

func TestQuietMovesWithoutCapture(t *testing.T) {
	var b = InitialBoard()
	var ml, forced = GenerateSideMoves(&b, White, nil)
	if forced {
		t.Fatal("unexpected capture")
	}
	for _, m := range ml {
		if m.IsCapture() || m.From.Row() != 5 || m.To.Row() != 4 {
			t.Error(m)
		}
	}
}

func TestManCapturesBackward(t *testing.T) {
	var b, err = ParseBoard("8/8/8/8/8/4w3/5b2/8")
	if err != nil {
		t.Fatal(err)
	}
	var e3, _ = ParseSquare("e3")
	var ml, forced = GenerateSquareMoves(&b, e3, nil)
	if !forced || len(ml) != 1 || ml[0].To.String() != "g1" || ml[0].Captured.String() != "f2" {
		t.Error(ml, forced)
	}
}

func TestKingCapture(t *testing.T) {
	var tests = []struct {
		board string
		moves []string
	}{
		// two pieces in a row block the ray
		{"8/8/8/8/3b4/2b5/8/W7", []string{"a1-b2"}},
		// landing is the square right behind the captured piece
		{"8/8/8/8/8/2b5/8/W7", []string{"a1:d4"}},
		{"8/8/8/4b3/8/2b5/8/W7", []string{"a1:d4"}},
		// own piece blocks the ray
		{"8/8/8/8/3b4/2w5/8/W7", []string{"a1-b2"}},
		// piece at the edge cannot be captured
		{"7b/8/8/8/8/8/8/W7", []string{"a1-b2", "a1-c3", "a1-d4", "a1-e5", "a1-f6", "a1-g7"}},
	}
	for i, test := range tests {
		var b, err = ParseBoard(test.board)
		if err != nil {
			t.Fatal(err)
		}
		var a1, _ = ParseSquare("a1")
		var ml, _ = GenerateSquareMoves(&b, a1, nil)
		if len(ml) != len(test.moves) {
			t.Error(i, ml)
			continue
		}
		for j := range ml {
			if ml[j].String() != test.moves[j] {
				t.Error(i, ml[j], test.moves[j])
			}
		}
	}
}

func TestPromotion(t *testing.T) {
	var b, err = ParseBoard("8/2w5/8/8/8/8/8/8")
	if err != nil {
		t.Fatal(err)
	}
	var c7, _ = ParseSquare("c7")
	var ml, _ = GenerateSquareMoves(&b, c7, nil)
	if len(ml) != 2 {
		t.Fatal(ml)
	}
	for _, m := range ml {
		var child = MakeMove(b, m)
		if child[m.To] != WhiteKing || child[c7] != Empty {
			t.Error(m, child.String())
		}
	}
	if b[c7] != WhiteMan {
		t.Error("source board modified")
	}

	b, err = ParseBoard("8/2b5/1w6/8/8/8/8/8")
	if err != nil {
		t.Fatal(err)
	}
	var b6, _ = ParseSquare("b6")
	ml, _ = GenerateSquareMoves(&b, b6, nil)
	if len(ml) != 1 || ml[0].String() != "b6:d8" {
		t.Fatal(ml)
	}
	b.Apply(ml[0])
	if b.String() != "3W4/8/8/8/8/8/8/8" {
		t.Error(b.String())
	}
}

func TestEmptySquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var b = InitialBoard()
	var d4, _ = ParseSquare("d4")
	GenerateSquareMoves(&b, d4, nil)
}

func TestLegalityClosure(t *testing.T) {
	var r = rand.New(rand.NewSource(1))
	for game := 0; game < 20; game++ {
		var b = InitialBoard()
		var side = White
		for ply := 0; ply < 200; ply++ {
			var ml, forced = GenerateSideMoves(&b, side, nil)
			if len(ml) == 0 {
				break
			}
			for _, m := range ml {
				checkMove(t, &b, m, forced)
			}
			var m = ml[r.Intn(len(ml))]
			b.Apply(m)
			for m.IsCapture() {
				var next, nextForced = GenerateSquareMoves(&b, m.To, nil)
				if !nextForced {
					break
				}
				for _, n := range next {
					checkMove(t, &b, n, true)
				}
				m = next[r.Intn(len(next))]
				b.Apply(m)
			}
			side = side.Opposite()
		}
	}
}

func checkMove(t *testing.T, b *Board, m Move, forced bool) {
	t.Helper()
	if m.IsCapture() != forced {
		t.Fatal("capture mismatch", b.String(), m)
	}
	var piece = b[m.From]
	var child = MakeMove(*b, m)
	if child[m.From] != Empty {
		t.Fatal("source not empty", b.String(), m)
	}
	if m.IsCapture() && child[m.Captured] != Empty {
		t.Fatal("captured piece remains", b.String(), m)
	}
	if m.IsCapture() && (b[m.Captured] == Empty || b[m.Captured].Side() == piece.Side()) {
		t.Fatal("bad captured square", b.String(), m)
	}
	var want = piece
	if piece.IsMan() && m.To.Row() == PromotionRow(piece.Side()) {
		want = piece + WhiteKing - WhiteMan
	}
	if child[m.To] != want {
		t.Fatal("bad destination", b.String(), m)
	}
}

func TestParseTurn(t *testing.T) {
	var b, err = ParseBoard("8/8/5b2/8/3b4/2w5/8/8")
	if err != nil {
		t.Fatal(err)
	}
	turn, child, err := ParseTurn(b, White, "c3:e5:g7")
	if err != nil {
		t.Fatal(err)
	}
	if turn.String() != "c3:e5:g7" || len(turn) != 2 {
		t.Error(turn)
	}
	if child.String() != "8/6w1/8/8/8/8/8/8" {
		t.Error(child.String())
	}

	if _, _, err = ParseTurn(b, White, "c3:e5"); !errors.Is(err, ErrIncompleteTurn) {
		t.Error(err)
	}
	if _, _, err = ParseTurn(b, White, "c3-b4"); !errors.Is(err, ErrIllegalMove) {
		t.Error(err)
	}
	if _, _, err = ParseTurn(b, White, "c3"); err == nil {
		t.Error("expected error")
	}
}

func TestBoardText(t *testing.T) {
	var b = InitialBoard()
	if b.String() != InitialBoardText {
		t.Error(b.String())
	}
	var parsed, err = ParseBoard(InitialBoardText)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != b {
		t.Error(parsed.String())
	}
	for _, bad := range []string{"", "8/8/8", "9/8/8/8/8/8/8/8", "w7/8/8/8/8/8/8/8", "1x6/8/8/8/8/8/8/8"} {
		if _, err := ParseBoard(bad); err == nil {
			t.Error("expected error", bad)
		}
	}
}

func TestMoveEqual(t *testing.T) {
	var a = Move{From: 40, To: 33, Captured: SquareNone}
	var b = Move{From: 40, To: 33, Captured: 34}
	if !a.Equal(b) {
		t.Error("endpoints equal")
	}
	if a.Equal(Move{From: 40, To: 35, Captured: SquareNone}) {
		t.Error("different endpoints")
	}
}
