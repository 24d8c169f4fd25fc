package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

// oracleMoves returns the coordinate moves dragontoothmg generates, with
// underpromotions folded into a single entry.
func oracleMoves(b *dragontoothmg.Board) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range b.GenerateLegalMoves() {
		s := m.String()[:4]
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func sortedNotations(moves []Move) []string {
	out := Notations(moves)
	sort.Strings(out)
	return out
}

// findOracleMove returns the dragontoothmg move for notation, preferring the
// queen promotion.
func findOracleMove(b *dragontoothmg.Board, notation string) (dragontoothmg.Move, bool) {
	var found dragontoothmg.Move
	ok := false
	for _, m := range b.GenerateLegalMoves() {
		s := m.String()
		if s[:4] != notation {
			continue
		}
		if !ok || len(s) == 4 || s[4] == 'q' || s[4] == 'Q' {
			found, ok = m, true
		}
	}
	return found, ok
}

// compareWithOracle checks that both generators agree on every position
// reachable within depth plies.
func compareWithOracle(t *testing.T, gs *GameState, ob *dragontoothmg.Board, depth int) {
	ours := gs.ValidMoves()
	require.Equal(t, oracleMoves(ob), sortedNotations(ours), gs.FEN())
	if depth <= 1 {
		return
	}

	for _, m := range ours {
		om, ok := findOracleMove(ob, m.Notation())
		require.True(t, ok, m.Notation())

		gs.MakeMove(m)
		unapply := ob.Apply(om)
		compareWithOracle(t, gs, ob, depth-1)
		unapply()
		gs.UndoMove()
	}
}

func TestMoveGenerationMatchesOracle(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", StartFEN, 3},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
		{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4},
		{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2},
		{"en passant pin", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 2},
		{"checkmate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", 1},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ob := dragontoothmg.ParseFen(tc.fen)
			compareWithOracle(t, mustFEN(t, tc.fen), &ob, tc.depth)
		})
	}
}
