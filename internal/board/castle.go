package board

// CastleRights holds the four independent castling permissions. Rights are
// only ever revoked during a game; UndoMove restores earlier snapshots.
type CastleRights struct {
	WhiteKingside  bool
	BlackKingside  bool
	WhiteQueenside bool
	BlackQueenside bool
}

// AllCastleRights is the starting set of rights.
var AllCastleRights = CastleRights{true, true, true, true}

// String returns the FEN castling rights string.
func (cr CastleRights) String() string {
	s := ""
	if cr.WhiteKingside {
		s += "K"
	}
	if cr.WhiteQueenside {
		s += "Q"
	}
	if cr.BlackKingside {
		s += "k"
	}
	if cr.BlackQueenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastleRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.WhiteKingside
		}
		return cr.WhiteQueenside
	}
	if kingSide {
		return cr.BlackKingside
	}
	return cr.BlackQueenside
}

// homeRow returns the back rank row of a color.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// revoke clears rights affected by m: a king move drops both rights of that
// side, a rook leaving or captured on its corner drops the matching right.
func (cr *CastleRights) revoke(m Move) {
	switch m.Moved {
	case WhiteKing:
		cr.WhiteKingside = false
		cr.WhiteQueenside = false
	case BlackKing:
		cr.BlackKingside = false
		cr.BlackQueenside = false
	case WhiteRook, BlackRook:
		cr.revokeCorner(m.Moved.Color(), m.Start)
	}

	if m.Captured == WhiteRook || m.Captured == BlackRook {
		cr.revokeCorner(m.Captured.Color(), m.End)
	}
}

func (cr *CastleRights) revokeCorner(c Color, sq Square) {
	if sq.Row != homeRow(c) {
		return
	}
	switch {
	case c == White && sq.Col == 0:
		cr.WhiteQueenside = false
	case c == White && sq.Col == 7:
		cr.WhiteKingside = false
	case c == Black && sq.Col == 0:
		cr.BlackQueenside = false
	case c == Black && sq.Col == 7:
		cr.BlackKingside = false
	}
}

// castleMoves appends the castling moves available to the side to move.
// The caller guarantees the king is not in check.
func (gs *GameState) castleMoves(moves []Move) []Move {
	us := gs.sideToMove
	ksq := gs.kingSquare[us]
	row := homeRow(us)
	if ksq != (Square{Row: row, Col: 4}) {
		return moves
	}
	them := us.Other()

	rook := NewPiece(Rook, us)

	if gs.castle.CanCastle(us, true) && gs.board[row][7] == rook &&
		gs.board[row][5].IsEmpty() && gs.board[row][6].IsEmpty() &&
		!gs.SquareAttacked(Square{row, 5}, them) && !gs.SquareAttacked(Square{row, 6}, them) {
		moves = append(moves, newCastle(ksq, Square{row, 6}, &gs.board))
	}

	if gs.castle.CanCastle(us, false) && gs.board[row][0] == rook &&
		gs.board[row][3].IsEmpty() && gs.board[row][2].IsEmpty() && gs.board[row][1].IsEmpty() &&
		!gs.SquareAttacked(Square{row, 3}, them) && !gs.SquareAttacked(Square{row, 2}, them) {
		moves = append(moves, newCastle(ksq, Square{row, 2}, &gs.board))
	}

	return moves
}
