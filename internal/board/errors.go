package board

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidMove   = errors.New("invalid move string")
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvariant     = errors.New("position invariant violated")
)
