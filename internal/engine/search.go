package engine

import (
	"github.com/hailam/chessmate/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxDepth  = 8
)

// Searcher performs the alpha-beta search and counts the nodes it visits.
type Searcher struct {
	nodes uint64
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search explores legal, the moves of the side to move in gs, in the given
// order and returns the best one with its score. ok is false when no move
// scores strictly above -MateScore, when legal is empty or depth < 1.
// Every move made on gs is undone before Search returns.
func (s *Searcher) Search(gs *board.GameState, legal []board.Move, depth int) (best board.Move, score int, ok bool) {
	best, score = board.NoMove, -MateScore
	if depth < 1 {
		return best, score, false
	}

	alpha, beta := -MateScore, MateScore
	for _, m := range legal {
		gs.MakeMove(m)
		v := -s.negamax(gs, depth-1, -beta, -alpha)
		gs.UndoMove()

		// Strictly better only: ties keep the first move found.
		if v > score {
			best, score, ok = m, v, true
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break
		}
	}
	return best, score, ok
}

// negamax returns the score of gs from the side to move, searching depth
// more plies inside the (alpha, beta) window.
func (s *Searcher) negamax(gs *board.GameState, depth, alpha, beta int) int {
	s.nodes++

	moves := gs.ValidMoves()
	if len(moves) == 0 {
		if gs.Checkmate() {
			return -MateScore
		}
		return 0
	}

	if depth == 0 {
		return evaluateRelative(gs)
	}

	SortMoves(moves)

	best := -Infinity
	for _, m := range moves {
		gs.MakeMove(m)
		v := -s.negamax(gs, depth-1, -beta, -alpha)
		gs.UndoMove()

		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			break // Beta cutoff
		}
	}
	return best
}

// FindBestMove searches legal to depth plies with a fresh Searcher. It
// returns false when the search finds no move better than being mated;
// callers then fall back to FindRandomMove.
func FindBestMove(gs *board.GameState, legal []board.Move, depth int) (board.Move, bool) {
	m, _, ok := NewSearcher().Search(gs, legal, depth)
	return m, ok
}
