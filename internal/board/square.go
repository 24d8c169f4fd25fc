// Package board implements the chess rules: an 8x8 mailbox position, pin and
// check detection, legal move generation and reversible move application.
package board

import "fmt"

// Square is a (row, column) board coordinate. Row 0 is Black's back rank
// (rank 8) and row 7 is White's back rank (rank 1); column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NewSquare creates a square from row and column (0-indexed).
// It panics if either coordinate is outside [0,7].
func NewSquare(row, col int) Square {
	sq := Square{Row: row, Col: col}
	if !sq.Valid() {
		panic(fmt.Sprintf("board: square out of range: row=%d col=%d", row, col))
	}
	return sq
}

// Valid reports whether both coordinates are on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

// Offset returns the square dr rows and dc columns away. The result may be
// off the board; check Valid before indexing with it.
func (sq Square) Offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// File returns the file letter index (0=a, 7=h).
func (sq Square) File() int {
	return sq.Col
}

// Rank returns the rank index (0=rank 1, 7=rank 8).
func (sq Square) Rank() int {
	return 7 - sq.Row
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(7-rank, file), nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Direction is a unit step on the board.
type Direction struct {
	DRow int
	DCol int
}

// Ray directions. The first four are orthogonal, the last four diagonal.
var (
	orthogonalDirs = [4]Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	diagonalDirs   = [4]Direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs        = [8]Direction{{-1, 0}, {0, -1}, {1, 0}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightOffsets  = [8]Direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// Diagonal reports whether d moves along a diagonal.
func (d Direction) Diagonal() bool {
	return d.DRow != 0 && d.DCol != 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{-d.DRow, -d.DCol}
}
