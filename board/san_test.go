package board

import (
	"errors"
	"strings"
	"testing"
)

func mustMoveUCI(t *testing.T, p Position, uci string) Move {
	t.Helper()
	m, err := p.ParseUCIMove(uci)
	if err != nil {
		t.Fatalf("ParseUCIMove(%q): %v", uci, err)
	}
	return m
}

func TestSANDisambiguation(t *testing.T) {
	p := mustParse(t, "N3k2N/8/8/3N4/N4N1N/2R5/1R6/4K3 w - - 0 1")
	cases := []struct {
		uci  string
		want string
	}{
		{"c3c2", "Rcc2"},
		{"b2c2", "Rbc2"},
		{"a4b6", "N4b6"},
		{"h8g6", "N8g6"},
		{"h4g6", "Nh4g6"},
	}
	for _, tc := range cases {
		m := mustMoveUCI(t, p, tc.uci)
		if got := p.MoveToSAN(m); got != tc.want {
			t.Errorf("%s: SAN %q, want %q", tc.uci, got, tc.want)
		}
	}
}

func TestSANBasics(t *testing.T) {
	p := StartingPosition()
	if got := p.MoveToSAN(mustMoveUCI(t, p, "e2e4")); got != "e4" {
		t.Errorf("e2e4 renders %q", got)
	}
	if got := p.MoveToSAN(mustMoveUCI(t, p, "g1f3")); got != "Nf3" {
		t.Errorf("g1f3 renders %q", got)
	}
	if got := p.MoveToSAN(NoMove); got != "Z0" {
		t.Errorf("NoMove renders %q", got)
	}
}

func TestSANCastling(t *testing.T) {
	p := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	short, err := p.ParseMove("O-O")
	if err != nil {
		t.Fatalf("O-O: %v", err)
	}
	if !short.IsCastle() || p.castleSideOf(short) != Kingside {
		t.Fatalf("O-O parsed wrong")
	}
	if got := p.MoveToSAN(short); got != "O-O" {
		t.Errorf("kingside castle renders %q", got)
	}
	long, err := p.ParseMove("O-O-O")
	if err != nil {
		t.Fatalf("O-O-O: %v", err)
	}
	if got := p.MoveToSAN(long); got != "O-O-O" {
		t.Errorf("queenside castle renders %q", got)
	}
}

func TestSANPawnCaptureNamesFile(t *testing.T) {
	p := mustParse(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	m := mustMoveUCI(t, p, "e4d5")
	if got := p.MoveToSAN(m); got != "exd5" {
		t.Errorf("pawn capture renders %q, want exd5", got)
	}
	back, err := p.ParseMove("exd5")
	if err != nil || back != m {
		t.Errorf("exd5 did not parse back to the same move: %v", err)
	}
}

func TestSANSuffixes(t *testing.T) {
	// Scholar's mate, final move gives mate.
	p := mustParse(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR w KQkq - 2 3")
	p = p.DoMove(mustMoveUCI(t, p, "d1h5"))
	p = p.DoMove(mustMoveUCI(t, p, "g8f6"))
	mate := mustMoveUCI(t, p, "h5f7")
	if got := p.MoveToSAN(mate); got != "Qxf7#" {
		t.Errorf("mating move renders %q, want Qxf7#", got)
	}

	// A plain check gets '+'.
	chk := mustParse(t, "4k3/8/8/8/8/8/8/4KR2 w - - 0 1")
	m := mustMoveUCI(t, chk, "f1f8")
	if got := chk.MoveToSAN(m); got != "Rf8+" {
		t.Errorf("checking move renders %q, want Rf8+", got)
	}
}

func TestSANStalemateSuffix(t *testing.T) {
	// Qb6 from b5 stalemates the cornered king.
	p := mustParse(t, "k7/8/8/1Q6/8/8/8/7K w - - 0 1")
	m := mustMoveUCI(t, p, "b5b6")
	if got := p.MoveToSAN(m); got != "Qb6 1/2-1/2" {
		t.Errorf("stalemating move renders %q", got)
	}
}

func TestSANRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"N3k2N/8/8/3N4/N4N1N/2R5/1R6/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		p := mustParse(t, fen)
		for _, m := range p.LegalMoves() {
			san := p.MoveToSAN(m)
			// A rule-triggering suffix is a separate token.
			tok := strings.Fields(san)[0]
			back, err := p.ParseMove(tok)
			if err != nil {
				t.Fatalf("%s: SAN %q does not parse back: %v", fen, san, err)
			}
			if back != m {
				t.Fatalf("%s: SAN %q round trips to %s, not %s", fen, san, back, m)
			}
		}
	}
}

func TestUCIRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
	}
	for _, fen := range fens {
		p := mustParse(t, fen)
		for _, m := range p.LegalMoves() {
			uci := p.MoveToUCI(m)
			back, err := p.ParseUCIMove(uci)
			if err != nil {
				t.Fatalf("%s: UCI %q does not parse back: %v", fen, uci, err)
			}
			if back != m {
				t.Fatalf("%s: UCI %q round trips to %s, not %s", fen, uci, back, m)
			}
		}
	}
}

func TestClassicalCastlingUCIForm(t *testing.T) {
	p := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := p.ParseMove("O-O")
	if err != nil {
		t.Fatalf("O-O: %v", err)
	}
	if got := p.MoveToUCI(m); got != "e1g1" {
		t.Errorf("classical kingside castle emits %q, want e1g1", got)
	}
	// Both the classical and the raw king-to-rook forms must parse.
	if back, err := p.ParseUCIMove("e1g1"); err != nil || back != m {
		t.Errorf("e1g1 did not resolve to the castle: %v", err)
	}
	if back, err := p.ParseUCIMove("e1h1"); err != nil || back != m {
		t.Errorf("e1h1 did not resolve to the castle: %v", err)
	}
}

func TestChess960CastlingUCIForm(t *testing.T) {
	p := mustParse(t, "1rk3r1/pppppppp/8/8/8/8/PPPPPPPP/1RK3R1 w GBgb - 0 1")
	var castle Move
	for _, m := range p.LegalMoves() {
		if m.IsCastle() && p.castleSideOf(m) == Kingside {
			castle = m
			break
		}
	}
	if castle == NoMove {
		t.Skipf("no kingside castle available in test position")
	}
	if got := p.MoveToUCI(castle); got != "c1g1" {
		t.Errorf("960 castle emits %q, want the raw king-to-rook form c1g1", got)
	}
}

func TestParseMoveErrors(t *testing.T) {
	p := StartingPosition()
	if _, err := p.ParseMove("Qe7"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("illegal SAN should report ErrIllegalMove, got %v", err)
	}
	if _, err := p.ParseMove("e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("illegal UCI should report ErrIllegalMove, got %v", err)
	}
	amb := mustParse(t, "N3k2N/8/8/3N4/N4N1N/2R5/1R6/4K3 w - - 0 1")
	if _, err := amb.ParseMove("Ng6"); !errors.Is(err, ErrAmbiguousSAN) {
		t.Errorf("ambiguous SAN should report ErrAmbiguousSAN, got %v", err)
	}
	for _, s := range []string{"Z0", "--", "0000"} {
		m, err := p.ParseMove(s)
		if err != nil || m != NoMove {
			t.Errorf("%q should parse to NoMove", s)
		}
	}
}
