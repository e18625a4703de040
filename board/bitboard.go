package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, bit i = square i.
type Bitboard uint64

const (
	fileABB Bitboard = 0x0101010101010101
	fileHBB Bitboard = 0x8080808080808080
	rank1BB Bitboard = 0x00000000000000FF
	rank8BB Bitboard = 0xFF00000000000000

	// Main diagonal a1-h8, used as the kindergarten multiplier for files.
	mainDiagonalBB Bitboard = 0x8040201008040201
)

// Line masks are plain var initializers so that the attack tables, which
// depend on them, are built afterwards regardless of file order.
var (
	fileBBs = computeFileBBs()
	rankBBs = computeRankBBs()
	// diagBBs[sq] is the full a1-h8-direction diagonal through sq,
	// antiDiagBBs[sq] the h1-a8-direction one. Both include sq itself.
	diagBBs     = computeDiagBBs(1)
	antiDiagBBs = computeDiagBBs(-1)
)

func computeFileBBs() (t [8]Bitboard) {
	for i := 0; i < 8; i++ {
		t[i] = fileABB << uint(i)
	}
	return t
}

func computeRankBBs() (t [8]Bitboard) {
	for i := 0; i < 8; i++ {
		t[i] = rank1BB << uint(i*8)
	}
	return t
}

// fileStep +1 walks a1-h8 diagonals, -1 walks h1-a8 anti-diagonals.
func computeDiagBBs(fileStep int) (t [64]Bitboard) {
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		b := squareBB(Square(sq))
		for ff, rr := f+fileStep, r+1; ff >= 0 && ff < 8 && rr < 8; ff, rr = ff+fileStep, rr+1 {
			b |= squareBB(NewSquare(ff, rr))
		}
		for ff, rr := f-fileStep, r-1; ff >= 0 && ff < 8 && rr >= 0; ff, rr = ff-fileStep, rr-1 {
			b |= squareBB(NewSquare(ff, rr))
		}
		t[sq] = b
	}
	return t
}

func squareBB(sq Square) Bitboard { return 1 << uint(sq) }

// SquareBB returns a bitboard with exactly the given square set.
func SquareBB(sq Square) Bitboard { return squareBB(sq) }

// FileBB returns the full file containing sq.
func FileBB(sq Square) Bitboard { return fileBBs[sq.File()] }

// RankBB returns the full rank containing sq.
func RankBB(sq Square) Bitboard { return rankBBs[sq.Rank()] }

// DiagonalBB returns the a1-h8 diagonal through sq.
func DiagonalBB(sq Square) Bitboard { return diagBBs[sq] }

// AntiDiagonalBB returns the h1-a8 anti-diagonal through sq.
func AntiDiagonalBB(sq Square) Bitboard { return antiDiagBBs[sq] }

// IsSet reports whether the square's bit is set.
func (b Bitboard) IsSet(sq Square) bool { return b&squareBB(sq) != 0 }

// With returns b with the square's bit set.
func (b Bitboard) With(sq Square) Bitboard { return b | squareBB(sq) }

// Without returns b with the square's bit cleared.
func (b Bitboard) Without(sq Square) Bitboard { return b &^ squareBB(sq) }

// Count returns the number of set squares.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// IsEmpty reports whether no square is set.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// LSB returns the lowest set square. Undefined on the empty board.
func (b Bitboard) LSB() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// PopLSB removes the lowest set square from the board and returns it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// ToSquare converts a single-bit board to its square. Undefined when the
// board does not hold exactly one bit.
func (b Bitboard) ToSquare() Square { return b.LSB() }

// MirrorVertically flips the board top to bottom (byte reverse).
func (b Bitboard) MirrorVertically() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// MirrorHorizontally flips the board left to right by swapping file pairs.
func (b Bitboard) MirrorHorizontally() Bitboard {
	const (
		k1 Bitboard = 0x5555555555555555
		k2 Bitboard = 0x3333333333333333
		k4 Bitboard = 0x0F0F0F0F0F0F0F0F
	)
	b = ((b >> 1) & k1) | ((b & k1) << 1)
	b = ((b >> 2) & k2) | ((b & k2) << 2)
	b = ((b >> 4) & k4) | ((b & k4) << 4)
	return b
}

// ShiftUp moves every square one rank up (toward rank 8).
func (b Bitboard) ShiftUp() Bitboard { return b << 8 }

// ShiftDown moves every square one rank down (toward rank 1).
func (b Bitboard) ShiftDown() Bitboard { return b >> 8 }

// ShiftLeft moves every square one file toward the a-file.
func (b Bitboard) ShiftLeft() Bitboard { return (b &^ fileABB) >> 1 }

// ShiftRight moves every square one file toward the h-file.
func (b Bitboard) ShiftRight() Bitboard { return (b &^ fileHBB) << 1 }

// ShiftUpForColor moves one rank toward the given color's opponent.
func (b Bitboard) ShiftUpForColor(c Color) Bitboard {
	if c == White {
		return b.ShiftUp()
	}
	return b.ShiftDown()
}

// String renders the board as an 8x8 grid, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
