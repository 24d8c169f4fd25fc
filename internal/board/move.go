package board

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Move describes a single state transition. Moved and Captured are the
// occupants of the start and end squares when the move was generated; for an
// en passant capture Captured is the pawn taken from beside the end square.
//
// Two moves are the same move when their coordinates match: use Equal, not ==.
// The flags of a move built from user input are not authoritative, so it
// must be resolved against the generated list with MatchMove before use.
type Move struct {
	Start    Square
	End      Square
	Moved    Piece
	Captured Piece

	IsEnPassant     bool
	IsPawnPromotion bool
	IsCastle        bool
}

// NoMove is the zero move. It is never generated.
var NoMove = Move{Moved: NoPiece, Captured: NoPiece}

// NewMove creates a plain move, reading the moved and captured occupants from
// b. It panics if start is empty or either square is off the board.
func NewMove(start, end Square, b *Board) Move {
	moved := b.At(start)
	if moved.IsEmpty() {
		panic(fmt.Sprintf("board: no piece on %s", start))
	}
	return Move{
		Start:    start,
		End:      end,
		Moved:    moved,
		Captured: b.At(end),
	}
}

// newPawnMove creates a pawn move and sets the promotion flag when the pawn
// reaches the far rank.
func newPawnMove(start, end Square, b *Board) Move {
	m := NewMove(start, end, b)
	if (m.Moved == WhitePawn && end.Row == 0) || (m.Moved == BlackPawn && end.Row == 7) {
		m.IsPawnPromotion = true
	}
	return m
}

// newEnPassant creates an en passant capture. The captured pawn stands on the
// start row, in the end column.
func newEnPassant(start, end Square, b *Board) Move {
	m := NewMove(start, end, b)
	m.IsEnPassant = true
	m.Captured = NewPiece(Pawn, m.Moved.Color().Other())
	return m
}

// newCastle creates the king's half of a castling move.
func newCastle(start, end Square, b *Board) Move {
	m := NewMove(start, end, b)
	m.IsCastle = true
	return m
}

// enPassantVictim returns the square of the pawn taken by an en passant
// capture: the start row, in the end column.
func (m Move) enPassantVictim() Square {
	return Square{Row: m.Start.Row, Col: m.End.Col}
}

// ID returns the coordinate identity of the move.
func (m Move) ID() int {
	return m.Start.Row*1000 + m.Start.Col*100 + m.End.Row*10 + m.End.Col
}

// Equal reports whether m and o share start and end squares. Flags and
// occupants are ignored.
func (m Move) Equal(o Move) bool {
	return m.Start == o.Start && m.End == o.End
}

// IsCapture returns true if this move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsNull reports whether m is NoMove.
func (m Move) IsNull() bool {
	return m.Moved.IsEmpty()
}

// Notation returns the coordinate notation of the move (e.g., "e2e4").
func (m Move) Notation() string {
	return m.Start.String() + m.End.String()
}

// String returns the coordinate notation of the move, or "0000" for NoMove.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return m.Notation()
}

// ParseMove parses a coordinate move such as "e2e4" into a candidate move
// with only its coordinates set. A fifth promotion character is accepted and
// ignored since pawns always promote to a queen.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	if len(s) == 5 {
		switch s[4] {
		case 'q', 'r', 'b', 'n':
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
	}

	return Move{Start: from, End: to, Moved: NoPiece, Captured: NoPiece}, nil
}

// MatchMove finds the generated move with the same coordinates as candidate.
// The returned move carries the authoritative special-move flags.
func MatchMove(legal []Move, candidate Move) (Move, bool) {
	i := slices.IndexFunc(legal, candidate.Equal)
	if i < 0 {
		return NoMove, false
	}
	return legal[i], true
}

// Notations returns the coordinate notation of each move.
func Notations(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}
