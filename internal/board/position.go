package board

import (
	"fmt"
	"strings"
)

// Board is the 8x8 grid of occupants, indexed [row][col].
type Board [8][8]Piece

// At returns the occupant of sq. It panics if sq is off the board.
func (b *Board) At(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

// clear empties every square.
func (b *Board) clear() {
	for r := range b {
		for c := range b[r] {
			b[r][c] = NoPiece
		}
	}
}

// Pin is an own piece that may only move along Dir, the direction from the
// king towards the pinning piece.
type Pin struct {
	Square Square
	Dir    Direction
}

// Check is an enemy piece attacking the king from Square. Dir points from
// the king towards the checker; for a knight it is the knight offset.
type Check struct {
	Square Square
	Dir    Direction
}

// undoRecord is one entry of the move log: the move plus the state needed to
// take it back.
type undoRecord struct {
	move              Move
	priorCastle       CastleRights
	priorEnPassant    Square
	priorHasEnPassant bool

	// Check and pin state of the position before the move.
	priorInCheck bool
	priorPins    []Pin
	priorChecks  []Check
}

// GameState is a complete game: the position, the side to move and the move
// history needed for unlimited undo. A GameState must be used from a single
// goroutine.
type GameState struct {
	board      Board
	sideToMove Color
	history    []undoRecord
	kingSquare [2]Square
	castle     CastleRights

	// Where the game was set up from, for the FEN move counter.
	startSide    Color
	fullMoveBase int

	// En passant target square, valid only if hasEnPassant.
	enPassant    Square
	hasEnPassant bool

	// Recomputed by ValidMoves, restored by UndoMove.
	inCheck   bool
	pins      []Pin
	checks    []Check
	checkmate bool
	stalemate bool
}

// NewGameState creates a game at the standard starting position.
func NewGameState() *GameState {
	gs, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return gs
}

// Reset restores the standard starting position and clears the history.
func (gs *GameState) Reset() {
	*gs = *NewGameState()
}

// Board returns a copy of the grid.
func (gs *GameState) Board() Board {
	return gs.board
}

// PieceAt returns the occupant of sq.
func (gs *GameState) PieceAt(sq Square) Piece {
	return gs.board.At(sq)
}

// SideToMove returns the color whose turn it is.
func (gs *GameState) SideToMove() Color {
	return gs.sideToMove
}

// WhiteToMove reports whether it is White's turn.
func (gs *GameState) WhiteToMove() bool {
	return gs.sideToMove == White
}

// MoveLog returns the moves played so far, oldest first.
func (gs *GameState) MoveLog() []Move {
	moves := make([]Move, len(gs.history))
	for i, rec := range gs.history {
		moves[i] = rec.move
	}
	return moves
}

// LastMove returns the most recent move, if any.
func (gs *GameState) LastMove() (Move, bool) {
	if len(gs.history) == 0 {
		return NoMove, false
	}
	return gs.history[len(gs.history)-1].move, true
}

// Ply returns the number of moves played.
func (gs *GameState) Ply() int {
	return len(gs.history)
}

// KingSquare returns the tracked king square of c.
func (gs *GameState) KingSquare(c Color) Square {
	return gs.kingSquare[c]
}

// CastleRights returns the current castling rights.
func (gs *GameState) CastleRights() CastleRights {
	return gs.castle
}

// CastleRightsLog returns the rights before each move followed by the current
// rights; its length is always one more than the move log.
func (gs *GameState) CastleRightsLog() []CastleRights {
	out := make([]CastleRights, 0, len(gs.history)+1)
	for _, rec := range gs.history {
		out = append(out, rec.priorCastle)
	}
	return append(out, gs.castle)
}

// EnPassantTarget returns the square a pawn may capture onto en passant.
func (gs *GameState) EnPassantTarget() (Square, bool) {
	return gs.enPassant, gs.hasEnPassant
}

// InCheck reports whether the side to move was in check at the last
// ValidMoves call.
func (gs *GameState) InCheck() bool {
	return gs.inCheck
}

// Pins returns the pins found by the last ValidMoves call.
func (gs *GameState) Pins() []Pin {
	return append([]Pin(nil), gs.pins...)
}

// Checks returns the checking pieces found by the last ValidMoves call.
func (gs *GameState) Checks() []Check {
	return append([]Check(nil), gs.checks...)
}

// Checkmate reports whether the last ValidMoves call found checkmate.
func (gs *GameState) Checkmate() bool {
	return gs.checkmate
}

// Stalemate reports whether the last ValidMoves call found stalemate.
func (gs *GameState) Stalemate() bool {
	return gs.stalemate
}

// GameOver reports whether the side to move has no legal move.
func (gs *GameState) GameOver() bool {
	return gs.checkmate || gs.stalemate
}

// Clone returns an independent copy of the game, history included.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.history = append([]undoRecord(nil), gs.history...)
	c.pins = append([]Pin(nil), gs.pins...)
	c.checks = append([]Check(nil), gs.checks...)
	return &c
}

// Material returns the material balance (positive favors white).
func (gs *GameState) Material() int {
	score := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := gs.board[r][c]
			if p.IsEmpty() || p.Type() == King {
				continue
			}
			if p.Color() == White {
				score += p.Value()
			} else {
				score -= p.Value()
			}
		}
	}
	return score
}

// Validate checks the structural invariants of the position.
func (gs *GameState) Validate() error {
	var kings [2][]Square
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := gs.board[r][c]
			if !p.IsEmpty() && p.Type() == King {
				kings[p.Color()] = append(kings[p.Color()], Square{r, c})
			}
			if !p.IsEmpty() && p.Type() == Pawn && (r == 0 || r == 7) {
				return fmt.Errorf("%w: pawn on back rank at %s", ErrInvariant, Square{r, c})
			}
		}
	}

	for _, c := range []Color{White, Black} {
		if len(kings[c]) != 1 {
			return fmt.Errorf("%w: %s must have exactly one king, has %d", ErrInvariant, c, len(kings[c]))
		}
		if kings[c][0] != gs.kingSquare[c] {
			return fmt.Errorf("%w: %s king tracked on %s but stands on %s",
				ErrInvariant, c, gs.kingSquare[c], kings[c][0])
		}
	}

	if gs.checkmate && gs.stalemate {
		return fmt.Errorf("%w: both checkmate and stalemate set", ErrInvariant)
	}

	return nil
}

// String returns a visual representation of the position.
func (gs *GameState) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for r := 0; r < 8; r++ {
		fmt.Fprintf(&sb, "%d  ", 8-r)
		for c := 0; c < 8; c++ {
			p := gs.board[r][c]
			if p.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", gs.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", gs.castle)
	if gs.hasEnPassant {
		fmt.Fprintf(&sb, "En passant: %s\n", gs.enPassant)
	} else {
		sb.WriteString("En passant: -\n")
	}
	fmt.Fprintf(&sb, "Moves played: %d\n", len(gs.history))
	return sb.String()
}
