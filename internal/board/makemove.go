package board

import "fmt"

// MakeMove applies m, which must come from ValidMoves of the current
// position. Moves are not re-validated here.
func (gs *GameState) MakeMove(m Move) {
	gs.history = append(gs.history, undoRecord{
		move:              m,
		priorCastle:       gs.castle,
		priorEnPassant:    gs.enPassant,
		priorHasEnPassant: gs.hasEnPassant,
		priorInCheck:      gs.inCheck,
		priorPins:         gs.pins,
		priorChecks:       gs.checks,
	})

	gs.board.set(m.Start, NoPiece)
	gs.board.set(m.End, m.Moved)
	gs.sideToMove = gs.sideToMove.Other()

	us := m.Moved.Color()
	if m.Moved.Type() == King {
		gs.kingSquare[us] = m.End
	}

	// A two-square pawn advance leaves the passed-over square as target.
	gs.hasEnPassant = false
	if m.Moved.Type() == Pawn && abs(m.End.Row-m.Start.Row) == 2 {
		gs.enPassant = Square{Row: (m.Start.Row + m.End.Row) / 2, Col: m.Start.Col}
		gs.hasEnPassant = true
	} else {
		gs.enPassant = Square{}
	}

	if m.IsEnPassant {
		gs.board.set(m.enPassantVictim(), NoPiece)
	}

	if m.IsPawnPromotion {
		gs.board.set(m.End, NewPiece(Queen, us))
	}

	if m.IsCastle {
		from, to := castleRookSquares(m)
		gs.board.set(to, gs.board.At(from))
		gs.board.set(from, NoPiece)
	}

	gs.castle.revoke(m)
	gs.checkmate, gs.stalemate = false, false
}

// UndoMove takes back the last move. It does nothing if no move was made.
func (gs *GameState) UndoMove() {
	if len(gs.history) == 0 {
		return
	}
	rec := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]
	m := rec.move

	gs.board.set(m.Start, m.Moved)
	gs.board.set(m.End, m.Captured)
	gs.sideToMove = gs.sideToMove.Other()

	if m.Moved.Type() == King {
		gs.kingSquare[m.Moved.Color()] = m.Start
	}

	if m.IsEnPassant {
		gs.board.set(m.End, NoPiece)
		gs.board.set(m.enPassantVictim(), m.Captured)
	}

	if m.IsCastle {
		from, to := castleRookSquares(m)
		gs.board.set(from, gs.board.At(to))
		gs.board.set(to, NoPiece)
	}

	gs.castle = rec.priorCastle
	gs.enPassant, gs.hasEnPassant = rec.priorEnPassant, rec.priorHasEnPassant
	gs.inCheck, gs.pins, gs.checks = rec.priorInCheck, rec.priorPins, rec.priorChecks
	gs.checkmate, gs.stalemate = false, false
}

// castleRookSquares returns the rook's home and post-castling squares for the
// castling king move m.
func castleRookSquares(m Move) (from, to Square) {
	row := m.End.Row
	if m.End.Col > m.Start.Col {
		return Square{row, 7}, Square{row, m.End.Col - 1}
	}
	return Square{row, 0}, Square{row, m.End.Col + 1}
}

// MakeMoveString parses a coordinate move, checks it against the legal moves
// and applies the matching generated move.
func (gs *GameState) MakeMoveString(s string) (Move, error) {
	candidate, err := ParseMove(s)
	if err != nil {
		return NoMove, err
	}
	m, ok := MatchMove(gs.ValidMoves(), candidate)
	if !ok {
		return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	gs.MakeMove(m)
	return m, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
