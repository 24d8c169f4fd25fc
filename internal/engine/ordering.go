package engine

import (
	"golang.org/x/exp/slices"

	"github.com/hailam/chessmate/internal/board"
)

// Move ordering priorities
const (
	GoodCaptureBase = 1000000 // Base score for captures
	PromotionScore  = 900000  // Quiet promotions
	CastleScore     = 1000    // Castling ahead of other quiet moves
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
// Score = victimValue * 10 - attackerValue
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11}, // Pawn victim
	/* N */ {25, 24, 24, 23, 22, 21}, // Knight victim
	/* B */ {35, 34, 34, 33, 32, 31}, // Bishop victim
	/* R */ {45, 44, 44, 43, 42, 41}, // Rook victim
	/* Q */ {55, 54, 54, 53, 52, 51}, // Queen victim
	/* K */ {0, 0, 0, 0, 0, 0}, // King can't be captured
}

// ScoreMove returns the ordering score of m.
func ScoreMove(m board.Move) int {
	score := 0
	if m.IsCapture() {
		score = GoodCaptureBase + mvvLva[m.Captured.Type()][m.Moved.Type()]
	}
	if m.IsPawnPromotion {
		score += PromotionScore
	}
	if m.IsCastle {
		score += CastleScore
	}
	return score
}

// SortMoves orders moves best first. Moves with equal scores keep their
// generation order.
func SortMoves(moves []board.Move) {
	slices.SortStableFunc(moves, func(a, b board.Move) int {
		return ScoreMove(b) - ScoreMove(a)
	})
}
