package board

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

// Differential tests against an independent move generator. dragontoothmg
// does not speak Chess960, so only classical positions appear here.

var differentialFENs = []string{
	FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestLegalMoveSetsMatchDragontooth(t *testing.T) {
	for _, fen := range differentialFENs {
		p := mustParse(t, fen)
		var ours []string
		for _, m := range p.LegalMoves() {
			ours = append(ours, p.MoveToUCI(m))
		}
		db := dragontoothmg.ParseFen(fen)
		var theirs []string
		for _, m := range db.GenerateLegalMoves() {
			theirs = append(theirs, m.String())
		}
		slices.Sort(ours)
		slices.Sort(theirs)
		if !slices.Equal(ours, theirs) {
			t.Errorf("%s:\n ours   %v\n theirs %v", fen, ours, theirs)
		}
	}
}

func TestPerftMatchesDragontooth(t *testing.T) {
	for _, fen := range differentialFENs {
		p := mustParse(t, fen)
		db := dragontoothmg.ParseFen(fen)
		for depth := 1; depth <= 3; depth++ {
			want := dragonPerft(&db, depth)
			if got := Perft(p, depth); got != want {
				t.Fatalf("%s depth %d: got %d, dragontooth says %d", fen, depth, got, want)
			}
		}
	}
}
