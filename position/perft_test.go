package position

import (
	"testing"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftInitialPosition(t *testing.T) {
	b := MustParseFEN(StartFEN)
	want := []uint64{1, 20, 400, 8902}
	for depth, n := range want {
		if got := Perft(b, depth); got != n {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, n)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	if got := Perft(b, 1); got != 48 {
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := Perft(b, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
}

func TestPerftBlackToMove(t *testing.T) {
	// Position 3 of the usual perft suite; after Ka4 black is on move.
	b := MustParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if got := Perft(b, 2); got != 191 {
		t.Fatalf("position 3 depth2: got %d want %d", got, 191)
	}
	next, err := b.Play(Move{From: MustParseSquare("a5"), To: MustParseSquare("a4")})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.SideToMove() != Black {
		t.Fatalf("side to move after white move: %s", next.SideToMove())
	}
	if got, want := Perft(next, 1), uint64(len(next.LegalMoves())); got != want {
		t.Fatalf("depth1 after Ka4: got %d want %d", got, want)
	}
}

func TestPerftDivide(t *testing.T) {
	b := MustParseFEN(StartFEN)
	div := PerftDivide(b, 2)
	if len(div) != 20 {
		t.Fatalf("divide roots: got %d want 20", len(div))
	}
	var sum uint64
	for m, n := range div {
		if n != 20 {
			t.Errorf("%s: got %d want 20", m, n)
		}
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide total: got %d want 400", sum)
	}
}

func benchPerft(b *testing.B, fen string, depth int) {
	board := MustParseFEN(fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D3(b *testing.B) {
	benchPerft(b, StartFEN, 3)
}

func BenchmarkPerft_Kiwipete_D2(b *testing.B) {
	benchPerft(b, kiwipeteFEN, 2)
}
