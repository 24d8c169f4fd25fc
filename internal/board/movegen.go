package board

// pinInfo restricts a piece to the line of its pin.
type pinInfo struct {
	pinned bool
	dir    Direction
}

// allows reports whether a move in direction d keeps the piece on its pin
// line. Unpinned pieces may move anywhere.
func (p pinInfo) allows(d Direction) bool {
	return !p.pinned || d == p.dir || d == p.dir.Opposite()
}

// takePin removes the pin on sq from pins, if any, and returns it.
func takePin(pins []Pin, sq Square) (pinInfo, []Pin) {
	for i, p := range pins {
		if p.Square == sq {
			return pinInfo{pinned: true, dir: p.Dir}, append(pins[:i], pins[i+1:]...)
		}
	}
	return pinInfo{}, pins
}

// pieceMoveFunc generates the pseudo-legal moves of the piece on sq.
type pieceMoveFunc func(gs *GameState, sq Square, pin pinInfo, moves []Move) []Move

// moveFuncs dispatches move generation by piece type.
var moveFuncs = [6]pieceMoveFunc{
	Pawn:   (*GameState).pawnMoves,
	Knight: (*GameState).knightMoves,
	Bishop: (*GameState).bishopMoves,
	Rook:   (*GameState).rookMoves,
	Queen:  (*GameState).queenMoves,
	King:   (*GameState).kingMoves,
}

// pseudoLegalMoves generates the moves of every piece of the side to move,
// honoring pins and king safety but not checks against the king.
func (gs *GameState) pseudoLegalMoves() []Move {
	us := gs.sideToMove
	pins := append([]Pin(nil), gs.pins...)
	moves := make([]Move, 0, 48)

	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := gs.board[r][c]
			if p.IsEmpty() || p.Color() != us {
				continue
			}
			sq := Square{r, c}
			var pin pinInfo
			pin, pins = takePin(pins, sq)
			moves = moveFuncs[p.Type()](gs, sq, pin, moves)
		}
	}

	return moves
}

// pawnForward returns the row step of c's pawns.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow returns the row from which c's pawns may advance two squares.
func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func (gs *GameState) pawnMoves(sq Square, pin pinInfo, moves []Move) []Move {
	us := gs.board.At(sq).Color()
	fwd := pawnForward(us)

	push := Direction{fwd, 0}
	one := sq.Offset(fwd, 0)
	if one.Valid() && gs.board.At(one).IsEmpty() && pin.allows(push) {
		moves = append(moves, newPawnMove(sq, one, &gs.board))
		two := sq.Offset(2*fwd, 0)
		if sq.Row == pawnStartRow(us) && gs.board.At(two).IsEmpty() {
			moves = append(moves, newPawnMove(sq, two, &gs.board))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		d := Direction{fwd, dc}
		to := sq.Offset(fwd, dc)
		if !to.Valid() || !pin.allows(d) {
			continue
		}
		target := gs.board.At(to)
		if !target.IsEmpty() && target.Color() != us {
			moves = append(moves, newPawnMove(sq, to, &gs.board))
		} else if target.IsEmpty() && gs.hasEnPassant && to == gs.enPassant && gs.enPassantSafe(sq, to) {
			moves = append(moves, newEnPassant(sq, to, &gs.board))
		}
	}

	return moves
}

// enPassantSafe reports whether capturing en passant from start to end leaves
// the king out of check. Two pawns leave the same rank at once, which can
// open a line that no single pin describes.
func (gs *GameState) enPassantSafe(start, end Square) bool {
	us := gs.sideToMove
	captured := Move{Start: start, End: end}.enPassantVictim()
	mover := gs.board.At(start)
	taken := gs.board.At(captured)

	gs.board.set(start, NoPiece)
	gs.board.set(captured, NoPiece)
	gs.board.set(end, mover)
	defer func() {
		gs.board.set(end, NoPiece)
		gs.board.set(captured, taken)
		gs.board.set(start, mover)
	}()

	return !gs.pinsAndChecks(gs.kingSquare[us], us).inCheck
}

func (gs *GameState) knightMoves(sq Square, pin pinInfo, moves []Move) []Move {
	if pin.pinned {
		return moves
	}
	us := gs.board.At(sq).Color()
	for _, d := range knightOffsets {
		to := sq.Offset(d.DRow, d.DCol)
		if !to.Valid() {
			continue
		}
		target := gs.board.At(to)
		if target.IsEmpty() || target.Color() != us {
			moves = append(moves, NewMove(sq, to, &gs.board))
		}
	}
	return moves
}

// slidingMoves casts rays from sq in dirs, stopping at the first occupied
// square (included if it holds an enemy piece).
func (gs *GameState) slidingMoves(sq Square, dirs []Direction, pin pinInfo, moves []Move) []Move {
	us := gs.board.At(sq).Color()
	for _, d := range dirs {
		if !pin.allows(d) {
			continue
		}
		for i := 1; i < 8; i++ {
			to := sq.Offset(d.DRow*i, d.DCol*i)
			if !to.Valid() {
				break
			}
			target := gs.board.At(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(sq, to, &gs.board))
				continue
			}
			if target.Color() != us {
				moves = append(moves, NewMove(sq, to, &gs.board))
			}
			break
		}
	}
	return moves
}

func (gs *GameState) bishopMoves(sq Square, pin pinInfo, moves []Move) []Move {
	return gs.slidingMoves(sq, diagonalDirs[:], pin, moves)
}

func (gs *GameState) rookMoves(sq Square, pin pinInfo, moves []Move) []Move {
	return gs.slidingMoves(sq, orthogonalDirs[:], pin, moves)
}

func (gs *GameState) queenMoves(sq Square, pin pinInfo, moves []Move) []Move {
	moves = gs.rookMoves(sq, pin, moves)
	return gs.bishopMoves(sq, pin, moves)
}

// kingMoves generates the king steps that do not walk into check. The king is
// never pinned, so pin is ignored.
func (gs *GameState) kingMoves(sq Square, _ pinInfo, moves []Move) []Move {
	us := gs.board.At(sq).Color()
	for _, d := range allDirs {
		to := sq.Offset(d.DRow, d.DCol)
		if !to.Valid() {
			continue
		}
		target := gs.board.At(to)
		if !target.IsEmpty() && target.Color() == us {
			continue
		}
		if gs.kingSafeAt(to) {
			moves = append(moves, NewMove(sq, to, &gs.board))
		}
	}
	return moves
}
