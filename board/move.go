package board

// Move packs a half-move into 16 bits: source (6), target (6), kind (4).
// For castles the target is the rook's square (Chess960 convention).
// Equality is bit equality; NoMove has kind KindNone.
type Move uint16

const NoMove Move = 0

// MoveKind tags the flavor of a move.
type MoveKind uint8

const (
	KindNone      MoveKind = 0
	KindNormal    MoveKind = 1
	KindCapture   MoveKind = 2
	KindCastle    MoveKind = 3
	KindEnPassant MoveKind = 4

	KindPromoKnight MoveKind = 5
	KindPromoBishop MoveKind = 6
	KindPromoRook   MoveKind = 7
	KindPromoQueen  MoveKind = 8

	KindPromoCaptureKnight MoveKind = 9
	KindPromoCaptureBishop MoveKind = 10
	KindPromoCaptureRook   MoveKind = 11
	KindPromoCaptureQueen  MoveKind = 12
)

// NewMove packs the components into a move word.
func NewMove(source, target Square, kind MoveKind) Move {
	return Move(uint16(source)&0x3F | (uint16(target)&0x3F)<<6 | uint16(kind)<<12)
}

// Source returns the origin square.
func (m Move) Source() Square { return Square(m & 0x3F) }

// Target returns the destination square; for castles, the rook's square.
func (m Move) Target() Square { return Square((m >> 6) & 0x3F) }

// Kind returns the move's kind tag.
func (m Move) Kind() MoveKind { return MoveKind(m >> 12) }

// IsCapture reports whether the move takes a piece (en passant included).
func (m Move) IsCapture() bool {
	k := m.Kind()
	return k == KindCapture || k == KindEnPassant ||
		(k >= KindPromoCaptureKnight && k <= KindPromoCaptureQueen)
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	k := m.Kind()
	return k >= KindPromoKnight && k <= KindPromoCaptureQueen
}

// IsCastle reports whether the move is a castle.
func (m Move) IsCastle() bool { return m.Kind() == KindCastle }

// IsEnPassant reports whether the move is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Kind() == KindEnPassant }

// PromotionPiece returns the piece a promotion move creates, NoPiece for
// non-promotions.
func (m Move) PromotionPiece() Piece {
	switch m.Kind() {
	case KindPromoKnight, KindPromoCaptureKnight:
		return Knight
	case KindPromoBishop, KindPromoCaptureBishop:
		return Bishop
	case KindPromoRook, KindPromoCaptureRook:
		return Rook
	case KindPromoQueen, KindPromoCaptureQueen:
		return Queen
	}
	return NoPiece
}

// promoKind maps a promotion piece to its move kind.
func promoKind(pc Piece, capture bool) MoveKind {
	k := KindPromoKnight + MoveKind(pc-Knight)
	if capture {
		k += 4
	}
	return k
}

// String renders the raw encoding: source, target, promotion letter. For
// castling this is king-square to rook-square; use MoveToUCI for the
// classical king-target form.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Source().String() + m.Target().String()
	if pc := m.PromotionPiece(); pc != NoPiece {
		s += string(pc.Letter())
	}
	return s
}

func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// IsPseudoLegal reports whether an arbitrary 16-bit word is a safe,
// rule-permissible candidate for DoMove, ignoring only whether the mover's
// king ends up in check. It is total: any garbage word answers false.
func (p Position) IsPseudoLegal(m Move) bool {
	kind := m.Kind()
	if kind == KindNone || kind > KindPromoCaptureQueen {
		return false
	}
	src, dst := m.Source(), m.Target()
	us := p.us
	if !p.colors[us].IsSet(src) {
		return false
	}
	pc := p.PieceOn(src)

	if kind == KindCastle {
		if pc != King {
			return false
		}
		side := Queenside
		switch dst {
		case p.rookSource[us][Queenside]:
		case p.rookSource[us][Kingside]:
			side = Kingside
		default:
			return false
		}
		if !(p.pieces[Rook] & p.colors[us]).IsSet(dst) {
			return false
		}
		if p.Occupancy()&castleBlockMask(us, side, src, dst) != 0 {
			return false
		}
		for b := castleCheckMask(us, side, src); b != 0; {
			if p.IsAttacked(us, b.PopLSB()) {
				return false
			}
		}
		return true
	}

	if p.colors[us].IsSet(dst) {
		return false
	}
	enemyOnDst := p.colors[us.Opposite()].IsSet(dst)

	if kind == KindEnPassant {
		return pc == Pawn && p.enPassant != NoSquare && dst == p.enPassant &&
			pawnCaptureTbl[us][src].IsSet(dst)
	}

	captureKind := kind == KindCapture ||
		(kind >= KindPromoCaptureKnight && kind <= KindPromoCaptureQueen)
	if captureKind != enemyOnDst {
		return false
	}

	if pc == Pawn {
		if m.IsPromotion() != (dst.Rank() == lastRank(us)) {
			return false
		}
		if captureKind {
			return pawnCaptureTbl[us][src].IsSet(dst)
		}
		if dst == src.Up(us) {
			return true
		}
		// Double push: both squares empty, from the initial pawn rank,
		// never a promotion.
		return kind == KindNormal &&
			src.Rank() == pawnStartRank(us) &&
			dst == src.Up(us).Up(us) &&
			!p.Occupancy().IsSet(src.Up(us))
	}

	if kind != KindNormal && kind != KindCapture {
		return false
	}
	return AttackMask(pc, src, p.Occupancy()).IsSet(dst)
}
