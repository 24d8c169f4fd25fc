package board

import "strings"

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposing side.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoColor"
}

// PieceType is the kind of a piece, independent of its color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var typeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return typeNames[pt]
}

// IsSlider reports whether the piece attacks along rays.
func (pt PieceType) IsSlider() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// PieceValue is the material value of each piece type in centipawns. The
// king is never counted.
var PieceValue = [7]int{100, 320, 330, 500, 900, 0, 0}

// Piece is the occupant of a square: one of the twelve colored pieces, or
// NoPiece for an empty square. White pieces come first, in PieceType order.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceSymbols holds the FEN letter of every Piece, in Piece order.
const pieceSymbols = "PNBRQKpnbrqk"

// NewPiece returns the piece of type pt and color c.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(c)*6 + Piece(pt)
}

// PieceFromChar returns the piece for a FEN letter, or NoPiece.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceSymbols, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}

// IsEmpty reports whether p denotes an empty square.
func (p Piece) IsEmpty() bool {
	return p >= NoPiece
}

func (p Piece) Type() PieceType {
	if p.IsEmpty() {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p.IsEmpty() {
		return NoColor
	}
	return Color(p / 6)
}

// Is reports whether p is a piece of the given color and type.
func (p Piece) Is(c Color, pt PieceType) bool {
	return !p.IsEmpty() && p.Color() == c && p.Type() == pt
}

// Value returns the material value of p in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

// String returns the FEN letter of p, or a space for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	return pieceSymbols[p : p+1]
}
