// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/hailam/chessmate/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Bishop pair bonus (having two bishops)
const (
	bishopPairMgBonus = 25
	bishopPairEgBonus = 50
)

// Tempo bonus - small advantage for having the move
const tempoBonus = 10

// Phase weights; a full set of minor and major pieces adds up to totalPhase.
var phaseWeight = [6]int{0, 1, 1, 2, 4, 0}

const totalPhase = 24

// Piece-Square Tables (PST) for positional evaluation.
// Values are from White's perspective, first row is rank 8, so a white
// piece on row r, col c reads index r*8+c. Black reads the mirrored row.

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages 7th rank and open files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// All PSTs combined for easy lookup
var psts = [...][64]int{
	pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST,
}

// pstIndex maps a square to its table index for color c.
func pstIndex(sq board.Square, c board.Color) int {
	row := sq.Row
	if c == board.Black {
		row = 7 - row
	}
	return row*8 + sq.Col
}

// Evaluate returns the static evaluation of the position from White's perspective.
func Evaluate(gs *board.GameState) int {
	var mgScore, egScore int // Middlegame and endgame scores
	var phase int            // Game phase (for tapered eval)
	var bishops [2]int

	b := gs.Board()
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := b[r][c]
			if p.IsEmpty() {
				continue
			}
			color, pt := p.Color(), p.Type()
			sign := 1
			if color == board.Black {
				sign = -1
			}

			// Material
			mgScore += sign * pieceValues[pt]
			egScore += sign * pieceValues[pt]

			// Piece-square tables
			idx := pstIndex(board.Square{Row: r, Col: c}, color)
			if pt == board.King {
				mgScore += sign * kingMidgamePST[idx]
				egScore += sign * kingEndgamePST[idx]
			} else {
				mgScore += sign * psts[pt][idx]
				egScore += sign * psts[pt][idx]
			}

			phase += phaseWeight[pt]
			if pt == board.Bishop {
				bishops[color]++
			}
		}
	}

	if bishops[board.White] >= 2 {
		mgScore += bishopPairMgBonus
		egScore += bishopPairEgBonus
	}
	if bishops[board.Black] >= 2 {
		mgScore -= bishopPairMgBonus
		egScore -= bishopPairEgBonus
	}

	// Tapered eval: interpolate between middlegame and endgame
	if phase > totalPhase {
		phase = totalPhase
	}
	score := (mgScore*phase + egScore*(totalPhase-phase)) / totalPhase

	if gs.WhiteToMove() {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}
	return score
}

// evaluateRelative returns the static evaluation from the side to move.
func evaluateRelative(gs *board.GameState) int {
	if gs.WhiteToMove() {
		return Evaluate(gs)
	}
	return -Evaluate(gs)
}
