package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a game starting from it. The
// half-move clock and full-move number are optional.
func ParseFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	gs := &GameState{fullMoveBase: 1}
	gs.board.clear()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(gs, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		gs.sideToMove = White
	case "b":
		gs.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, parts[1])
	}
	gs.startSide = gs.sideToMove

	// Parse castling rights (field 2)
	if err := parseCastleRights(gs, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square %q", ErrInvalidFEN, parts[3])
		}
		gs.enPassant, gs.hasEnPassant = sq, true
	}

	// Half-move clock (field 4) is validated but not tracked.
	if len(parts) > 4 {
		if _, err := strconv.Atoi(parts[4]); err != nil {
			return nil, fmt.Errorf("%w: invalid half-move clock %q", ErrInvalidFEN, parts[4])
		}
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number %q", ErrInvalidFEN, parts[5])
		}
		gs.fullMoveBase = fmn
	}

	if err := gs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	return gs, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(gs *GameState, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0

		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			sq := Square{row, col}
			gs.board.set(sq, piece)
			if piece.Type() == King {
				gs.kingSquare[piece.Color()] = sq
			}
			col++
		}

		if col != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, 8-row, col)
		}
	}

	return nil
}

// parseCastleRights parses the castling rights section of a FEN string.
func parseCastleRights(gs *GameState, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			gs.castle.WhiteKingside = true
		case 'Q':
			gs.castle.WhiteQueenside = true
		case 'k':
			gs.castle.BlackKingside = true
		case 'q':
			gs.castle.BlackQueenside = true
		default:
			return fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, c)
		}
	}

	return nil
}

// FEN returns the FEN representation of the position. The half-move clock
// is not tracked and is always written as 0.
func (gs *GameState) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := gs.board[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if gs.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(gs.castle.String())

	// En passant
	sb.WriteByte(' ')
	if gs.hasEnPassant {
		sb.WriteString(gs.enPassant.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 ")
	sb.WriteString(strconv.Itoa(gs.FullMoveNumber()))

	return sb.String()
}

// FullMoveNumber returns the FEN full-move counter of the current position.
func (gs *GameState) FullMoveNumber() int {
	plies := len(gs.history)
	if gs.startSide == Black {
		plies++
	}
	return gs.fullMoveBase + plies/2
}
