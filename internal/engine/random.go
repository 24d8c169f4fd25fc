package engine

import (
	"math/rand"

	"github.com/hailam/chessmate/internal/board"
)

// FindRandomMove returns a uniformly chosen move from legal, or NoMove if
// legal is empty.
func FindRandomMove(legal []board.Move) board.Move {
	return pickRandom(legal, rand.Intn)
}

func pickRandom(legal []board.Move, intn func(int) int) board.Move {
	if len(legal) == 0 {
		return board.NoMove
	}
	return legal[intn(len(legal))]
}
