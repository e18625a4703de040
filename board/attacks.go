package board

import "math/bits"

// Attack generation is table driven. Leaper tables hold the full move set
// per source square; sliding attacks use the kindergarten scheme, keyed by
// a 6-bit hash of the occupancy on the relevant line.

var (
	knightAttacksTbl = computeLeaperTable([8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	})
	kingAttacksTbl = computeLeaperTable([8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	})

	pawnCaptureTbl = computePawnCaptures()
	pawnQuietTbl   = computePawnQuiets()

	rankAttackTbl     = computeLineAttackTable(lineRank)
	fileAttackTbl     = computeLineAttackTable(lineFile)
	diagAttackTbl     = computeLineAttackTable(lineDiag)
	antiDiagAttackTbl = computeLineAttackTable(lineAntiDiag)

	passedMaskTbl = computePassedMasks()
	mask3x3Tbl    = computeMask3x3()
	mask5x5Tbl    = computeMask5x5()
)

func computeLeaperTable(offsets [8][2]int) (t [64]Bitboard) {
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		var mask Bitboard
		for _, off := range offsets {
			ff, rr := f+off[0], r+off[1]
			if ff >= 0 && ff < 8 && rr >= 0 && rr < 8 {
				mask |= squareBB(NewSquare(ff, rr))
			}
		}
		t[sq] = mask
	}
	return t
}

func computePawnCaptures() (t [2][64]Bitboard) {
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		if r < 7 {
			if f > 0 {
				t[White][sq] |= squareBB(NewSquare(f-1, r+1))
			}
			if f < 7 {
				t[White][sq] |= squareBB(NewSquare(f+1, r+1))
			}
		}
		if r > 0 {
			if f > 0 {
				t[Black][sq] |= squareBB(NewSquare(f-1, r-1))
			}
			if f < 7 {
				t[Black][sq] |= squareBB(NewSquare(f+1, r-1))
			}
		}
	}
	return t
}

func computePawnQuiets() (t [2][64]Bitboard) {
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		if r < 7 {
			t[White][sq] = squareBB(NewSquare(f, r+1))
		}
		if r > 0 {
			t[Black][sq] = squareBB(NewSquare(f, r-1))
		}
	}
	return t
}

// Kindergarten line kinds.
type lineKind int

const (
	lineRank lineKind = iota
	lineFile
	lineDiag
	lineAntiDiag
)

// Walk directions per line kind, as (fileStep, rankStep) pairs.
var lineDirs = [4][2][2]int{
	lineRank:     {{1, 0}, {-1, 0}},
	lineFile:     {{0, 1}, {0, -1}},
	lineDiag:     {{1, 1}, {-1, -1}},
	lineAntiDiag: {{-1, 1}, {1, -1}},
}

// lineKey hashes the occupancy of the line through sq into 6 bits. The
// same function keys both table fill and lookup, so only its consistency
// matters, not its exact bit order.
func lineKey(k lineKind, sq Square, occ Bitboard) int {
	switch k {
	case lineRank:
		return int((occ >> uint(sq.Rank()*8+1)) & 0x3F)
	case lineFile:
		folded := ((occ & fileBBs[sq.File()]) >> uint(sq.File())) * mainDiagonalBB
		return int((folded >> 57) & 0x3F)
	case lineDiag:
		return int((((occ & diagBBs[sq]) * fileABB) >> 57) & 0x3F)
	default: // lineAntiDiag
		return int((((occ & antiDiagBBs[sq]) * fileABB) >> 57) & 0x3F)
	}
}

func lineThrough(k lineKind, sq Square) Bitboard {
	switch k {
	case lineRank:
		return rankBBs[sq.Rank()]
	case lineFile:
		return fileBBs[sq.File()]
	case lineDiag:
		return diagBBs[sq]
	default:
		return antiDiagBBs[sq]
	}
}

// slidingLineAttacks walks the two directions of a line until (and
// including) the first blocker.
func slidingLineAttacks(k lineKind, sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	f, r := sq.File(), sq.Rank()
	for _, d := range lineDirs[k] {
		for ff, rr := f+d[0], r+d[1]; ff >= 0 && ff < 8 && rr >= 0 && rr < 8; ff, rr = ff+d[0], rr+d[1] {
			b := squareBB(NewSquare(ff, rr))
			attacks |= b
			if occ&b != 0 {
				break
			}
		}
	}
	return attacks
}

func computeLineAttackTable(k lineKind) (t [64][64]Bitboard) {
	for sq := Square(0); sq < 64; sq++ {
		// sq itself stays in the enumerated mask: at lookup time the
		// slider's own square is occupied, and lineKey can include its bit.
		mask := lineThrough(k, sq)
		n := mask.Count()
		for idx := 0; idx < 1<<uint(n); idx++ {
			occ := Bitboard(pdep(uint64(idx), uint64(mask)))
			t[sq][lineKey(k, sq, occ)] = slidingLineAttacks(k, sq, occ)
		}
	}
	return t
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	for m := mask; m != 0; m &= m - 1 {
		bit := uint(bits.TrailingZeros64(m & -m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
	}
	return res
}

// RankAttacks returns the attacked squares along sq's rank.
func RankAttacks(sq Square, occ Bitboard) Bitboard {
	return rankAttackTbl[sq][lineKey(lineRank, sq, occ)]
}

// FileAttacks returns the attacked squares along sq's file.
func FileAttacks(sq Square, occ Bitboard) Bitboard {
	return fileAttackTbl[sq][lineKey(lineFile, sq, occ)]
}

// DiagonalAttacks returns the attacked squares along sq's a1-h8 diagonal.
func DiagonalAttacks(sq Square, occ Bitboard) Bitboard {
	return diagAttackTbl[sq][lineKey(lineDiag, sq, occ)]
}

// AntiDiagonalAttacks returns the attacked squares along sq's h1-a8
// anti-diagonal.
func AntiDiagonalAttacks(sq Square, occ Bitboard) Bitboard {
	return antiDiagAttackTbl[sq][lineKey(lineAntiDiag, sq, occ)]
}

// RookAttacks returns the rook attack set from sq given occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return RankAttacks(sq, occ) | FileAttacks(sq, occ)
}

// BishopAttacks returns the bishop attack set from sq given occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return DiagonalAttacks(sq, occ) | AntiDiagonalAttacks(sq, occ)
}

// QueenAttacks returns the queen attack set from sq given occupancy.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// KnightAttacks returns the knight move set from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacksTbl[sq] }

// KingAttacks returns the king move set from sq.
func KingAttacks(sq Square) Bitboard { return kingAttacksTbl[sq] }

// AttackMask dispatches to the attack function of a non-pawn piece. Pawn
// attacks depend on color and are accessed through PawnCaptureMask and
// PawnQuietMask instead; AttackMask returns the empty board for them.
func AttackMask(p Piece, sq Square, occ Bitboard) Bitboard {
	switch p {
	case Knight:
		return knightAttacksTbl[sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return kingAttacksTbl[sq]
	}
	return 0
}

// PawnCaptureMask returns the capture targets of a pawn of the given color.
func PawnCaptureMask(c Color, sq Square) Bitboard { return pawnCaptureTbl[c][sq] }

// PawnQuietMask returns the single-push target of a pawn of the given color.
func PawnQuietMask(c Color, sq Square) Bitboard { return pawnQuietTbl[c][sq] }

func computePassedMasks() (t [2][64]Bitboard) {
	for sq := Square(0); sq < 64; sq++ {
		f, r := sq.File(), sq.Rank()
		var files Bitboard
		for ff := f - 1; ff <= f+1; ff++ {
			if ff >= 0 && ff < 8 {
				files |= fileBBs[ff]
			}
		}
		var aheadWhite, aheadBlack Bitboard
		for rr := r + 1; rr < 8; rr++ {
			aheadWhite |= rankBBs[rr]
		}
		for rr := r - 1; rr >= 0; rr-- {
			aheadBlack |= rankBBs[rr]
		}
		t[White][sq] = files & aheadWhite
		t[Black][sq] = files & aheadBlack
	}
	return t
}

// IsPassedMask returns the forward span of a pawn's file and the two
// adjacent files, excluding everything at or behind the pawn.
func IsPassedMask(c Color, sq Square) Bitboard { return passedMaskTbl[c][sq] }

func computeMask3x3() (t [64]Bitboard) {
	for sq := Square(0); sq < 64; sq++ {
		t[sq] = kingAttacksTbl[sq] | squareBB(sq)
	}
	return t
}

func computeMask5x5() (t [64]Bitboard) {
	for sq := Square(0); sq < 64; sq++ {
		var m Bitboard
		for b := mask3x3Tbl[sq]; b != 0; {
			m |= mask3x3Tbl[b.PopLSB()]
		}
		t[sq] = m
	}
	return t
}

// Mask3x3 is the 3x3 box centered on sq, clipped to the board.
func Mask3x3(sq Square) Bitboard { return mask3x3Tbl[sq] }

// Mask5x5 is the 5x5 box centered on sq, clipped to the board.
func Mask5x5(sq Square) Bitboard { return mask5x5Tbl[sq] }
