package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chessmate/internal/board"
	"github.com/hailam/chessmate/internal/engine"
)

func run(t *testing.T, script string) (*UCI, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	u := New(engine.NewEngine(), strings.NewReader(script), &out, &errOut)
	require.NoError(t, u.Run())
	return u, out.String(), errOut.String()
}

func bestMove(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if s, ok := strings.CutPrefix(line, "bestmove "); ok {
			return s
		}
	}
	t.Fatalf("no bestmove in output:\n%s", out)
	return ""
}

func TestHandshake(t *testing.T) {
	_, out, _ := run(t, "uci\nisready\nquit\n")
	assert.Contains(t, out, "id name ChessMate")
	assert.Contains(t, out, "uciok")
	assert.Contains(t, out, "readyok")
}

func TestPositionWithMoves(t *testing.T) {
	u, _, errOut := run(t, "position startpos moves e2e4 e7e5 g1f3\n")
	assert.Empty(t, errOut)
	assert.Equal(t, 3, u.Game().Ply())
	assert.Equal(t, board.Black, u.Game().SideToMove())
}

func TestPositionFEN(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	u, _, _ := run(t, "position fen "+fen+" moves e1g1\n")
	assert.Equal(t, board.WhiteRook, u.Game().PieceAt(board.MustParseSquare("f1")))
}

func TestInvalidInputKeepsPosition(t *testing.T) {
	u, _, errOut := run(t, "position startpos moves e2e4\nposition startpos moves e2e5\nposition fen nonsense\n")
	assert.Contains(t, errOut, "Invalid move")
	assert.Contains(t, errOut, "Invalid FEN")
	assert.Equal(t, 1, u.Game().Ply())
}

func TestGoFindsMate(t *testing.T) {
	_, out, _ := run(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 2\n")
	assert.Contains(t, out, "info depth 1 score mate 1")
	assert.Equal(t, "a1a8", bestMove(t, out))
}

func TestGoOnFinishedGame(t *testing.T) {
	_, out, _ := run(t, "position startpos moves f2f3 e7e5 g2g4 d8h4\ngo\n")
	assert.Equal(t, "0000", bestMove(t, out))
}

func TestGoRandom(t *testing.T) {
	u, out, _ := run(t, "setoption name RandomOnly value true\ngo\n")
	m := bestMove(t, out)
	c, err := board.ParseMove(m)
	require.NoError(t, err)
	_, ok := board.MatchMove(u.Game().ValidMoves(), c)
	assert.True(t, ok, m)
	assert.NotContains(t, out, "info depth")
}

func TestSetOptionDepth(t *testing.T) {
	u, _, errOut := run(t, "setoption name Depth value 4\nsetoption name Depth value zero\n")
	assert.Equal(t, 4, u.engine.Depth())
	assert.Contains(t, errOut, "Invalid depth")

	u, _, _ = run(t, "setoption name Difficulty value hard\n")
	assert.Equal(t, engine.DifficultyDepth[engine.Hard], u.engine.Depth())
}

func TestPerftCommand(t *testing.T) {
	_, out, _ := run(t, "perft 2\n")
	assert.Contains(t, out, "Nodes: 400")
}

func TestDebugCommands(t *testing.T) {
	_, out, errOut := run(t, "d\nmoves\nbogus\n")
	assert.Contains(t, out, "Fen: "+board.StartFEN)
	assert.Contains(t, out, "e2e4")
	assert.Contains(t, errOut, "Unknown command: bogus")
	assert.Contains(t, out, "Material: 0 ")
}

func TestDebugShowsMaterial(t *testing.T) {
	_, out, _ := run(t, "position fen 4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1\nd\nposition fen 4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1 moves e4d5\nd\n")
	assert.Contains(t, out, "Material: -800 ")
	assert.Contains(t, out, "Material: 100 ")
}

func TestParseGoOptions(t *testing.T) {
	opts := parseGoOptions([]string{"wtime", "1000", "btime", "1000", "depth", "3"})
	assert.Equal(t, 3, opts.Depth)
	assert.False(t, opts.Random)
}
