package board

// ValidMoves returns every legal move of the side to move, castling last. It
// recomputes the check and pin state and sets Checkmate or Stalemate when
// the list is empty.
func (gs *GameState) ValidMoves() []Move {
	savedCastle := gs.castle
	savedEP, savedHasEP := gs.enPassant, gs.hasEnPassant
	defer func() {
		gs.castle = savedCastle
		gs.enPassant, gs.hasEnPassant = savedEP, savedHasEP
	}()

	us := gs.sideToMove
	ksq := gs.kingSquare[us]
	det := gs.pinsAndChecks(ksq, us)
	gs.inCheck, gs.pins, gs.checks = det.inCheck, det.pins, det.checks

	var moves []Move
	switch len(gs.checks) {
	case 0:
		moves = gs.pseudoLegalMoves()
	case 1:
		moves = gs.evasions(ksq, gs.checks[0])
	default:
		// Double check: only the king can move.
		moves = gs.kingMoves(ksq, pinInfo{}, nil)
	}

	if !gs.inCheck {
		moves = gs.castleMoves(moves)
	}

	gs.checkmate, gs.stalemate = false, false
	if len(moves) == 0 {
		if gs.inCheck {
			gs.checkmate = true
		} else {
			gs.stalemate = true
		}
	}

	return moves
}

// evasions filters the pseudo-legal moves down to those that answer a single
// check: king moves, captures of the checker and interpositions.
func (gs *GameState) evasions(ksq Square, check Check) []Move {
	blocks := blockingSquares(ksq, check, gs.board.At(check.Square).Type())

	all := gs.pseudoLegalMoves()
	moves := all[:0]
	for _, m := range all {
		switch {
		case m.Moved.Type() == King:
			moves = append(moves, m)
		case blocks[m.End]:
			moves = append(moves, m)
		case m.IsEnPassant && m.enPassantVictim() == check.Square:
			// Taking the checking pawn in passing.
			moves = append(moves, m)
		}
	}
	return moves
}

// blockingSquares returns the squares a non-king move may land on to resolve
// the check: the checker itself and, for a slider, the squares between.
func blockingSquares(ksq Square, check Check, checker PieceType) map[Square]bool {
	squares := map[Square]bool{check.Square: true}
	if !checker.IsSlider() {
		return squares
	}
	for i := 1; i < 8; i++ {
		sq := ksq.Offset(check.Dir.DRow*i, check.Dir.DCol*i)
		if !sq.Valid() || sq == check.Square {
			break
		}
		squares[sq] = true
	}
	return squares
}
