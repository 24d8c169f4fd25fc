package board

// detection is the result of scanning outward from a king square.
type detection struct {
	inCheck bool
	pins    []Pin
	checks  []Check
}

// pinsAndChecks scans the eight rays and the knight offsets around from,
// treating from as the square of us's king. The real king of us is
// transparent, so from may be a hypothetical destination of that king.
func (gs *GameState) pinsAndChecks(from Square, us Color) detection {
	var det detection

	for _, d := range allDirs {
		var possiblePin *Pin
		for i := 1; i < 8; i++ {
			sq := from.Offset(d.DRow*i, d.DCol*i)
			if !sq.Valid() {
				break
			}
			p := gs.board.At(sq)
			if p.IsEmpty() || p.Is(us, King) {
				continue
			}
			if p.Color() == us {
				if possiblePin != nil {
					// Second own piece: nothing behind it matters.
					break
				}
				possiblePin = &Pin{Square: sq, Dir: d}
				continue
			}

			if attacksAlong(p.Type(), d, i, us) {
				if possiblePin == nil {
					det.inCheck = true
					det.checks = append(det.checks, Check{Square: sq, Dir: d})
				} else {
					det.pins = append(det.pins, *possiblePin)
				}
			}
			break
		}
	}

	enemyKnight := NewPiece(Knight, us.Other())
	for _, d := range knightOffsets {
		sq := from.Offset(d.DRow, d.DCol)
		if sq.Valid() && gs.board.At(sq) == enemyKnight {
			det.inCheck = true
			det.checks = append(det.checks, Check{Square: sq, Dir: d})
		}
	}

	return det
}

// attacksAlong reports whether an enemy piece of type pt, found dist squares
// from the king of us in direction d (pointing from the king), attacks the
// king along that line.
func attacksAlong(pt PieceType, d Direction, dist int, us Color) bool {
	switch pt {
	case Rook:
		return !d.Diagonal()
	case Bishop:
		return d.Diagonal()
	case Queen:
		return true
	case King:
		return dist == 1
	case Pawn:
		if dist != 1 || !d.Diagonal() {
			return false
		}
		// Enemy pawns capture towards us: a black pawn attacks a white king
		// from the row above it, a white pawn a black king from below.
		if us == White {
			return d.DRow == -1
		}
		return d.DRow == 1
	}
	return false
}

// SquareAttacked reports whether any piece of color by attacks sq. The king
// of the defending side does not block lines through its own square.
func (gs *GameState) SquareAttacked(sq Square, by Color) bool {
	return gs.pinsAndChecks(sq, by.Other()).inCheck
}

// KingAttacked reports whether the king of c is currently attacked.
func (gs *GameState) KingAttacked(c Color) bool {
	return gs.SquareAttacked(gs.kingSquare[c], c.Other())
}

// kingSafeAt reports whether the side to move's king would be out of check
// on sq. The tracked king square is moved for the query and always restored.
func (gs *GameState) kingSafeAt(sq Square) bool {
	us := gs.sideToMove
	saved := gs.kingSquare[us]
	gs.kingSquare[us] = sq
	defer func() { gs.kingSquare[us] = saved }()

	return !gs.pinsAndChecks(gs.kingSquare[us], us).inCheck
}
