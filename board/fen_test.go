package board

import (
	"errors"
	"io"
	"testing"
)

func init() {
	// Tests feed intentionally odd positions; keep stderr quiet.
	SetWarningOutput(io.Discard)
}

func mustParse(t *testing.T, fen string) Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func TestStartingPosition(t *testing.T) {
	p := StartingPosition()
	if !p.Validate() {
		t.Fatalf("starting position fails validation")
	}
	if p.FEN() != FENStartPos {
		t.Fatalf("start FEN round trip: got %q", p.FEN())
	}
	if p.SideToMove() != White || p.HalfmovesPlayed() != 0 || p.HalfmoveClock() != 0 {
		t.Fatalf("start position clocks wrong")
	}
	if p.RookSource(White, Queenside) != A1 || p.RookSource(White, Kingside) != H1 {
		t.Fatalf("white rook sources wrong")
	}
	if p.RookSource(Black, Queenside) != A8 || p.RookSource(Black, Kingside) != H8 {
		t.Fatalf("black rook sources wrong")
	}
	if p.IsChess960() {
		t.Fatalf("classical start must not be Chess960")
	}
}

func TestFENRoundTrips(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"8/8/8/8/8/3k4/8/3K4 b - - 42 99",
	}
	for _, fen := range fens {
		p := mustParse(t, fen)
		if !p.Validate() {
			t.Fatalf("%q fails validation", fen)
		}
		if got := p.FEN(); got != fen {
			t.Errorf("round trip mismatch:\n in  %q\n out %q", fen, got)
		}
	}
}

func TestFENFieldDefaults(t *testing.T) {
	p := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	if p.HalfmoveClock() != 0 || p.HalfmovesPlayed() != 0 {
		t.Fatalf("four-field FEN should default clocks to 0 and fullmove to 1")
	}
	p = mustParse(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 3")
	if p.HalfmoveClock() != 3 {
		t.Fatalf("five-field FEN should parse halfmove clock")
	}
	if p.HalfmovesPlayed() != 1 {
		t.Fatalf("black to move on fullmove 1 means one half-move played, got %d", p.HalfmovesPlayed())
	}
}

func TestFENHalfmovesPlayed(t *testing.T) {
	p := mustParse(t, "8/8/8/8/8/3k4/8/3K4 b - - 0 37")
	if p.HalfmovesPlayed() != 73 {
		t.Fatalf("fullmove 37 black to move = 73 half-moves, got %d", p.HalfmovesPlayed())
	}
	if got := p.FEN(); got != "8/8/8/8/8/3k4/8/3K4 b - - 0 37" {
		t.Fatalf("fullmove emission wrong: %q", got)
	}
}

func TestFENZeroMarkerTolerated(t *testing.T) {
	// '0' is a non-standard single-empty-square marker.
	p := mustParse(t, "rnbqkbnr/pppppppp/07/8/8/70/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if p.FEN() != FENStartPos {
		t.Fatalf("zero marker expansion broken: %q", p.FEN())
	}
}

func TestFENErrors(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",            // too few fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // missing rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0", // bad piece
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1", // ep rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // overlong rank
	}
	for _, fen := range cases {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("expected error for %q", fen)
		}
	}
}

func TestEnPassantParseEmitAsymmetry(t *testing.T) {
	// The parser stores the square even though no pawn can capture;
	// emission drops it again.
	fen := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	p := mustParse(t, fen)
	if p.EnPassantTarget().String() != "e3" {
		t.Fatalf("parser must keep the declared en passant square")
	}
	if got := p.FEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1" {
		t.Fatalf("emission must drop an uncapturable en passant square, got %q", got)
	}
	if got := p.FENAlwaysShowEnPassant(); got != fen {
		t.Fatalf("override flag must keep the stored square, got %q", got)
	}

	// With a black pawn on d4 the capture is legal and the square stays.
	fen = "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2"
	p = mustParse(t, fen)
	if got := p.FEN(); got != fen {
		t.Fatalf("legal en passant square must survive emission, got %q", got)
	}
}

func TestShredderFENCastling(t *testing.T) {
	// A Chess960-style position: kings on c-file territory, rooks inward.
	fen := "1rk3r1/pppppppp/8/8/8/8/PPPPPPPP/1RK3R1 w GBgb - 0 1"
	p := mustParse(t, fen)
	if !p.IsChess960() {
		t.Fatalf("position with b/g rooks must classify as Chess960")
	}
	if p.RookSource(White, Queenside) != B1 || p.RookSource(White, Kingside) != G1 {
		t.Fatalf("white rook sources: %s %s", p.RookSource(White, Queenside), p.RookSource(White, Kingside))
	}
	if got := p.FEN(); got != fen {
		t.Fatalf("shredder round trip: %q", got)
	}
}

func TestLegacyCastlingPicksOutermostRook(t *testing.T) {
	// Two rooks on the king side; 'K' must bind the outermost one.
	p := mustParse(t, "4k3/8/8/8/8/8/8/4KRR1 w K - 0 1")
	if p.RookSource(White, Kingside) != G1 {
		t.Fatalf("expected outermost rook g1, got %s", p.RookSource(White, Kingside))
	}
}

func TestCastlingFieldErrors(t *testing.T) {
	if _, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w K - 0 1"); err == nil {
		t.Errorf("castling right without a rook must fail")
	}
	if !errors.Is(mustFailFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w !Qkq - 0 1"), ErrParseContent) {
		t.Errorf("bad castling character should be a content error")
	}
}

func mustFailFEN(t *testing.T, fen string) error {
	t.Helper()
	_, err := ParseFEN(fen)
	if err == nil {
		t.Fatalf("expected error for %q", fen)
	}
	return err
}
