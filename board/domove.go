package board

// xorPiece toggles a piece on a square, keeping bitboards and keys in sync.
// The same call adds and removes.
func (p *Position) xorPiece(c Color, pc Piece, sq Square) {
	b := squareBB(sq)
	p.pieces[pc] ^= b
	p.colors[c] ^= b
	k := zob.piece[c][pc][sq]
	p.zobristKey ^= k
	if pc == Pawn {
		p.pawnKey ^= k
	}
}

// dropRookSource revokes one castling right, if still held.
func (p *Position) dropRookSource(c Color, s CastlingSide) {
	rs := p.rookSource[c][s]
	if rs == NoSquare {
		return
	}
	p.zobristKey ^= zob.rookSource[rs] ^ zob.rookSource[NoSquare]
	p.rookSource[c][s] = NoSquare
}

func (p *Position) clearEnPassant() {
	if p.enPassant != NoSquare {
		p.zobristKey ^= uint64(p.enPassant)
		p.enPassant = NoSquare
	}
}

func (p *Position) flipSideToMove() {
	p.us = p.us.Opposite()
	p.zobristKey ^= zob.side[White] ^ zob.side[Black]
}

// DoMove applies a pseudo-legal move and returns the resulting position.
// The receiver is unchanged. Callers must filter with IsPseudoLegal first;
// feeding an arbitrary word here corrupts the returned position.
func (p Position) DoMove(m Move) Position {
	n := p
	us := p.us
	them := us.Opposite()
	src, dst := m.Source(), m.Target()
	pc := p.PieceOn(src)
	kind := m.Kind()

	// Resolve the castling side before any rights are dropped.
	castleSide := Queenside
	if kind == KindCastle && dst == p.rookSource[us][Kingside] {
		castleSide = Kingside
	}

	n.clearEnPassant()

	// A double pawn push exposes an en-passant target only when an enemy
	// pawn actually stands ready to capture it.
	if pc == Pawn && kind == KindNormal && abs(dst.Rank()-src.Rank()) == 2 {
		ep := src.Up(us)
		if pawnCaptureTbl[us][ep]&p.pieces[Pawn]&p.colors[them] != 0 {
			n.enPassant = ep
			n.zobristKey ^= uint64(ep)
		}
	}

	// Castling rights: a king move drops both own rights; any move from or
	// onto a castling rook's home square drops that right.
	if pc == King {
		n.dropRookSource(us, Queenside)
		n.dropRookSource(us, Kingside)
	}
	for c := White; c <= Black; c++ {
		for s := Queenside; s <= Kingside; s++ {
			if rs := n.rookSource[c][s]; rs == src || rs == dst {
				n.dropRookSource(c, s)
			}
		}
	}

	switch {
	case kind == KindEnPassant:
		capSq := pawnQuietTbl[them][dst].ToSquare()
		n.xorPiece(them, Pawn, capSq)
		n.xorPiece(us, Pawn, src)
		n.xorPiece(us, Pawn, dst)

	case kind == KindCastle:
		// Remove both before adding: in Chess960 the king and rook may
		// trade squares.
		n.xorPiece(us, King, src)
		n.xorPiece(us, Rook, dst)
		n.xorPiece(us, King, kingCastleTarget[us][castleSide])
		n.xorPiece(us, Rook, rookCastleTarget[us][castleSide])

	default:
		if m.IsCapture() {
			n.xorPiece(them, p.PieceOn(dst), dst)
		}
		n.xorPiece(us, pc, src)
		placed := pc
		if promo := m.PromotionPiece(); promo != NoPiece {
			placed = promo
		}
		n.xorPiece(us, placed, dst)
	}

	n.halfmovesPlayed++
	if pc == Pawn || m.IsCapture() {
		n.halfmoveClock = 0
	} else {
		n.halfmoveClock++
	}
	n.flipSideToMove()
	return n
}

// DoNullMove passes the turn: the en-passant target is cleared, the clocks
// advance, the side to move flips. Used by the notation layer to replay
// "--"/"Z0"/"0000" tokens.
func (p Position) DoNullMove() Position {
	n := p
	n.clearEnPassant()
	n.halfmovesPlayed++
	n.halfmoveClock++
	n.flipSideToMove()
	return n
}
