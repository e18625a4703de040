package board

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string of the classical initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// warnings carries parser diagnostics (odd king counts). Set to nil to
// suppress.
var warnings io.Writer = os.Stderr

// SetWarningOutput redirects parser warnings; nil suppresses them.
func SetWarningOutput(w io.Writer) { warnings = w }

// StartingPosition returns the classical initial position.
func StartingPosition() Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseFEN parses a 4- to 6-field FEN or Shredder-FEN string. A missing
// halfmove clock defaults to 0, a missing fullmove number to 1. The
// en-passant field is stored as given, whether or not a capture is
// actually possible; emission applies the stricter rule.
func ParseFEN(fen string) (Position, error) {
	var p Position
	p.enPassant = NoSquare
	p.rookSource = [2][2]Square{{NoSquare, NoSquare}, {NoSquare, NoSquare}}

	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return p, fmt.Errorf("invalid FEN: %w: expected 4 to 6 fields, got %d", ErrParseFormat, len(fields))
	}

	if err := parsePlacement(&p, fields[0]); err != nil {
		return p, err
	}

	switch fields[1] {
	case "w", "W":
		p.us = White
	case "b", "B":
		p.us = Black
	default:
		return p, fmt.Errorf("invalid FEN: %w: active color %q", ErrParseContent, fields[1])
	}

	if err := parseCastling(&p, fields[2]); err != nil {
		return p, err
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return p, fmt.Errorf("invalid FEN: %w", err)
		}
		if r := sq.Rank(); r != 2 && r != 5 {
			return p, fmt.Errorf("invalid FEN: %w: en passant square %s not on rank 3 or 6", ErrParseContent, sq)
		}
		p.enPassant = sq
	}

	halfmove := 0
	if len(fields) > 4 {
		v, err := strconv.Atoi(fields[4])
		if err != nil {
			return p, fmt.Errorf("invalid FEN: %w: halfmove clock %q", ErrParseContent, fields[4])
		}
		halfmove = v
	}
	fullmove := 1
	if len(fields) > 5 {
		v, err := strconv.Atoi(fields[5])
		if err != nil {
			return p, fmt.Errorf("invalid FEN: %w: fullmove number %q", ErrParseContent, fields[5])
		}
		fullmove = v
	}
	p.halfmoveClock = halfmove
	p.halfmovesPlayed = (fullmove - 1) * 2
	if p.us == Black {
		p.halfmovesPlayed++
	}

	p.zobristKey, p.pawnKey = calculateZobristKeys(&p)

	if warnings != nil {
		for c := White; c <= Black; c++ {
			if n := (p.pieces[King] & p.colors[c]).Count(); n != 1 {
				fmt.Fprintf(warnings, "warning: FEN %q has %d %s kings\n", fen, n, map[Color]string{White: "white", Black: "black"}[c])
			}
		}
	}
	return p, nil
}

func parsePlacement(p *Position, placement string) error {
	file, rank := 0, 7
	for i := 0; i < len(placement); i++ {
		ch := placement[i]
		switch {
		case ch == '/':
			if file != 8 {
				return fmt.Errorf("invalid FEN: %w: rank separator after %d files", ErrParseFormat, file)
			}
			if rank == 0 {
				return fmt.Errorf("invalid FEN: %w: too many ranks", ErrParseFormat)
			}
			file, rank = 0, rank-1
		case ch == '0', ch == '1':
			// '0' is a tolerated non-standard empty marker.
			file++
		case ch >= '2' && ch <= '8':
			file += int(ch - '0')
		default:
			cp, err := ParseColoredPiece(ch)
			if err != nil {
				return fmt.Errorf("invalid FEN: %w", err)
			}
			if file >= 8 {
				return fmt.Errorf("invalid FEN: %w: too many squares in rank", ErrParseFormat)
			}
			p.xorPiece(cp.Color, cp.Piece, NewSquare(file, rank))
			file++
		}
		if file > 8 {
			return fmt.Errorf("invalid FEN: %w: too many squares in rank", ErrParseFormat)
		}
	}
	if rank != 0 || file != 8 {
		return fmt.Errorf("invalid FEN: %w: incomplete piece placement", ErrParseFormat)
	}
	return nil
}

func parseCastling(p *Position, field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		ch := field[i]
		color := Black
		if ch >= 'A' && ch <= 'Z' {
			color = White
		}
		homeRank := 0
		if color == Black {
			homeRank = 7
		}
		kings := p.pieces[King] & p.colors[color]
		if kings == 0 {
			return fmt.Errorf("invalid FEN: %w: castling right %q without a king", ErrParseContent, string(ch))
		}
		king := kings.LSB()
		rooks := p.pieces[Rook] & p.colors[color] & rankBBs[homeRank]

		var rookSq Square
		switch {
		case ch == 'K' || ch == 'k':
			// Outer-most rook on the king side of the king.
			candidates := rooks & upperSquares(king)
			if candidates == 0 {
				return fmt.Errorf("invalid FEN: %w: no rook for castling right %q", ErrParseContent, string(ch))
			}
			rookSq = candidates.msb()
		case ch == 'Q' || ch == 'q':
			candidates := rooks & lowerSquares(king)
			if candidates == 0 {
				return fmt.Errorf("invalid FEN: %w: no rook for castling right %q", ErrParseContent, string(ch))
			}
			rookSq = candidates.LSB()
		case ch >= 'A' && ch <= 'H' || ch >= 'a' && ch <= 'h':
			// Shredder-FEN: the letter names the rook's file.
			f := int(ch - 'A')
			if ch >= 'a' {
				f = int(ch - 'a')
			}
			rookSq = NewSquare(f, homeRank)
			if !rooks.IsSet(rookSq) {
				return fmt.Errorf("invalid FEN: %w: no rook on %s for castling right %q", ErrParseContent, rookSq, string(ch))
			}
		default:
			return fmt.Errorf("invalid FEN: %w: castling character %q", ErrParseContent, string(ch))
		}

		side := Kingside
		if rookSq < king {
			side = Queenside
		}
		p.rookSource[color][side] = rookSq
	}
	return nil
}

// upperSquares is the set of squares with index strictly above sq.
func upperSquares(sq Square) Bitboard {
	return ^(squareBB(sq) | (squareBB(sq) - 1))
}

// lowerSquares is the set of squares with index strictly below sq.
func lowerSquares(sq Square) Bitboard { return squareBB(sq) - 1 }

// msb returns the highest set square. Undefined on the empty board.
func (b Bitboard) msb() Square {
	sq := Square(63)
	for ; sq > 0; sq-- {
		if b.IsSet(sq) {
			return sq
		}
	}
	return sq
}

// FEN emits the position. The en-passant field is written only when a
// legal en-passant capture exists in the position; FENAlwaysShowEnPassant
// keeps the stored square regardless.
func (p Position) FEN() string { return p.fen(false) }

// FENAlwaysShowEnPassant emits the FEN with the raw en-passant target.
func (p Position) FENAlwaysShowEnPassant() string { return p.fen(true) }

func (p Position) fen(alwaysShowEnPassant bool) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			cp := p.ColoredPieceOn(NewSquare(file, rank))
			if cp.Piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(cp.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.us.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castlingField())
	sb.WriteByte(' ')
	if p.enPassant != NoSquare && (alwaysShowEnPassant || p.hasLegalEnPassant()) {
		sb.WriteString(p.enPassant.String())
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.halfmovesPlayed/2+1)
	return sb.String()
}

func (p Position) castlingField() string {
	shredder := p.IsChess960()
	var sb strings.Builder
	emit := func(c Color, s CastlingSide) {
		rs := p.rookSource[c][s]
		if rs == NoSquare {
			return
		}
		var ch byte
		if shredder {
			ch = 'a' + byte(rs.File())
		} else if s == Kingside {
			ch = 'k'
		} else {
			ch = 'q'
		}
		if c == White {
			ch -= 'a' - 'A'
		}
		sb.WriteByte(ch)
	}
	emit(White, Kingside)
	emit(White, Queenside)
	emit(Black, Kingside)
	emit(Black, Queenside)
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// hasLegalEnPassant reports whether the stored en-passant target can be
// taken by a legal move right now.
func (p Position) hasLegalEnPassant() bool {
	if p.enPassant == NoSquare {
		return false
	}
	pawns := pawnCaptureTbl[p.us.Opposite()][p.enPassant] & p.pieces[Pawn] & p.colors[p.us]
	for b := pawns; b != 0; {
		m := NewMove(b.PopLSB(), p.enPassant, KindEnPassant)
		if p.IsPseudoLegal(m) && !p.DoMove(m).InCheck(p.us) {
			return true
		}
	}
	return false
}
