package board

import (
	"fmt"
	"strings"
)

// MoveToSAN emits the move in Standard Algebraic Notation with minimal
// disambiguation, assuming the move is legal in this position.
func (p Position) MoveToSAN(m Move) string {
	if m == NoMove {
		return "Z0"
	}
	var sb strings.Builder

	if m.Kind() == KindCastle {
		sb.WriteString(p.castleSideOf(m).String())
	} else {
		pc := p.PieceOn(m.Source())
		if pc != Pawn {
			sb.WriteByte(pc.Letter() - ('a' - 'A'))
			sb.WriteString(p.disambiguator(m, pc))
		} else if m.IsCapture() {
			// Pawn captures always name the source file.
			sb.WriteByte('a' + byte(m.Source().File()))
		}
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.Target().String())
		if promo := m.PromotionPiece(); promo != NoPiece {
			sb.WriteByte('=')
			sb.WriteByte(promo.Letter() - ('a' - 'A'))
		}
	}

	n := p.DoMove(m)
	switch {
	case n.IsMate():
		sb.WriteByte('#')
	case n.IsStalemate() || n.halfmoveClock > 100:
		sb.WriteString(" 1/2-1/2")
	case n.InCheck(n.us):
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguator picks the shortest source hint that makes the move unique
// among legal moves of the same piece to the same target: nothing, the
// file letter, the rank digit, or both.
func (p Position) disambiguator(m Move, pc Piece) string {
	src := m.Source()
	fileCh := string(byte('a' + byte(src.File())))
	rankCh := string(byte('1' + byte(src.Rank())))
	variants := []struct {
		s          string
		file, rank bool
	}{
		{"", false, false},
		{fileCh, true, false},
		{rankCh, false, true},
		{fileCh + rankCh, true, true},
	}
	legal := p.LegalMoves()
	for _, v := range variants {
		matches := 0
		for _, o := range legal {
			if o.Kind() == KindCastle || o.Target() != m.Target() {
				continue
			}
			if p.PieceOn(o.Source()) != pc {
				continue
			}
			if v.file && o.Source().File() != src.File() {
				continue
			}
			if v.rank && o.Source().Rank() != src.Rank() {
				continue
			}
			matches++
		}
		if matches == 1 {
			return v.s
		}
	}
	return fileCh + rankCh
}

// ParseMove resolves SAN or UCI notation against the position's legal
// moves. "Z0", "--" and "0000" map to NoMove. A SAN string matching more
// than one legal move is an error.
func (p Position) ParseMove(s string) (Move, error) {
	t := strings.TrimSpace(s)
	if t == "Z0" || t == "--" || t == "0000" {
		return NoMove, nil
	}
	found := NoMove
	matches := 0
	for _, m := range p.LegalMoves() {
		if validSANMove(p, m, t) {
			found = m
			matches++
		}
	}
	switch {
	case matches == 1:
		return found, nil
	case matches > 1:
		return NoMove, fmt.Errorf("%w: %q", ErrAmbiguousSAN, s)
	}
	if m, err := p.ParseUCIMove(t); err == nil {
		return m, nil
	}
	return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
}

// validSANMove reports whether the SAN string could denote the given legal
// move. Surrounding whitespace and trailing check marks are tolerated.
func validSANMove(p Position, m Move, san string) bool {
	s := strings.TrimSpace(san)
	s = strings.TrimRight(s, "+#")
	if s == "" {
		return false
	}

	if s == "O-O-O" || s == "0-0-0" {
		return m.Kind() == KindCastle && p.castleSideOf(m) == Queenside
	}
	if s == "O-O" || s == "0-0" {
		return m.Kind() == KindCastle && p.castleSideOf(m) == Kingside
	}
	if m.Kind() == KindCastle {
		return false
	}

	promo := NoPiece
	if i := strings.IndexByte(s, '='); i >= 0 {
		if i != len(s)-2 {
			return false
		}
		pc, err := ParsePiece(s[len(s)-1])
		if err != nil || pc == Pawn || pc == King {
			return false
		}
		promo = pc
		s = s[:i]
	}

	if len(s) < 2 {
		return false
	}
	target, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return false
	}
	s = s[:len(s)-2]

	pc := Pawn
	if len(s) > 0 {
		switch s[0] {
		case 'N':
			pc = Knight
		case 'B':
			pc = Bishop
		case 'R':
			pc = Rook
		case 'Q':
			pc = Queen
		case 'K':
			pc = King
		}
		if pc != Pawn {
			s = s[1:]
		}
	}

	srcFile, srcRank := -1, -1
	sawCapture := false
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == 'x':
			sawCapture = true
		case ch >= 'a' && ch <= 'h':
			srcFile = int(ch - 'a')
		case ch >= '1' && ch <= '8':
			srcRank = int(ch - '1')
		default:
			return false
		}
	}

	if p.PieceOn(m.Source()) != pc || m.Target() != target {
		return false
	}
	if m.PromotionPiece() != promo {
		return false
	}
	if srcFile >= 0 && m.Source().File() != srcFile {
		return false
	}
	if srcRank >= 0 && m.Source().Rank() != srcRank {
		return false
	}
	if sawCapture && !m.IsCapture() {
		return false
	}
	return true
}
