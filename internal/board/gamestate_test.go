package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFEN(t *testing.T, fen string) *GameState {
	t.Helper()
	gs, err := ParseFEN(fen)
	require.NoError(t, err, fen)
	return gs
}

func play(t *testing.T, gs *GameState, moves ...string) {
	t.Helper()
	for _, s := range moves {
		_, err := gs.MakeMoveString(s)
		require.NoError(t, err, s)
	}
}

func movesFrom(moves []Move, from string) []string {
	sq := MustParseSquare(from)
	var out []string
	for _, m := range moves {
		if m.Start == sq {
			out = append(out, m.Notation())
		}
	}
	return out
}

func TestInitialPosition(t *testing.T) {
	gs := NewGameState()

	assert.True(t, gs.WhiteToMove())
	assert.Equal(t, AllCastleRights, gs.CastleRights())
	assert.Equal(t, MustParseSquare("e1"), gs.KingSquare(White))
	assert.Equal(t, MustParseSquare("e8"), gs.KingSquare(Black))
	assert.Empty(t, gs.MoveLog())
	assert.Len(t, gs.CastleRightsLog(), 1)

	moves := gs.ValidMoves()
	assert.Len(t, moves, 20)
	assert.False(t, gs.InCheck())
	assert.False(t, gs.GameOver())
	assert.Equal(t, StartFEN, gs.FEN())
}

func TestMakeMoveFlipsSideAndLogs(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4")

	assert.False(t, gs.WhiteToMove())
	assert.Equal(t, 1, gs.Ply())
	assert.Equal(t, WhitePawn, gs.PieceAt(MustParseSquare("e4")))
	assert.True(t, gs.PieceAt(MustParseSquare("e2")).IsEmpty())

	ep, ok := gs.EnPassantTarget()
	assert.True(t, ok)
	assert.Equal(t, MustParseSquare("e3"), ep)

	last, ok := gs.LastMove()
	require.True(t, ok)
	assert.Equal(t, "e2e4", last.Notation())
	assert.Len(t, gs.CastleRightsLog(), 2)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", gs.FEN())

	play(t, gs, "e7e5")
	_, ok = gs.EnPassantTarget()
	assert.True(t, ok)
	assert.Equal(t, 2, gs.FullMoveNumber())
}

func TestUndoOnEmptyLog(t *testing.T) {
	gs := NewGameState()
	gs.UndoMove()
	assert.Equal(t, StartFEN, gs.FEN())
	assert.Equal(t, 0, gs.Ply())
}

type snapshot struct {
	board     Board
	side      Color
	kings     [2]Square
	castle    CastleRights
	ep        Square
	hasEP     bool
	ply       int
	castleLog int
}

func snap(gs *GameState) snapshot {
	ep, hasEP := gs.EnPassantTarget()
	return snapshot{
		board:     gs.Board(),
		side:      gs.SideToMove(),
		kings:     [2]Square{gs.KingSquare(White), gs.KingSquare(Black)},
		castle:    gs.CastleRights(),
		ep:        ep,
		hasEP:     hasEP,
		ply:       gs.Ply(),
		castleLog: len(gs.CastleRightsLog()),
	}
}

// walk makes and undoes every legal move down to depth, checking that each
// move leaves the mover's king safe and each undo restores the position.
func walk(t *testing.T, gs *GameState, depth int) {
	if depth == 0 {
		return
	}
	before := snap(gs)
	moves := gs.ValidMoves()
	if gs.InCheck() {
		require.True(t, gs.KingAttacked(gs.SideToMove()))
	}
	require.Equal(t, before, snap(gs), "ValidMoves must not change the position")

	for _, m := range moves {
		mover := gs.SideToMove()
		gs.MakeMove(m)
		require.False(t, gs.KingAttacked(mover), "%s leaves the %s king attacked", m, mover)
		require.NoError(t, gs.Validate(), "after %s", m)
		walk(t, gs, depth-1)
		gs.UndoMove()
		require.Equal(t, before, snap(gs), "undo of %s", m)
	}
}

func TestMakeUndoRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", StartFEN, 3},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"promotion", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 3},
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			walk(t, mustFEN(t, tc.fen), tc.depth)
		})
	}
}

func TestPinnedPieces(t *testing.T) {
	t.Run("rook pinned on file slides along the pin", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
		moves := gs.ValidMoves()

		require.Len(t, gs.Pins(), 1)
		assert.Equal(t, MustParseSquare("e2"), gs.Pins()[0].Square)
		assert.Equal(t, Direction{-1, 0}, gs.Pins()[0].Dir)
		assert.ElementsMatch(t,
			[]string{"e2e3", "e2e4", "e2e5", "e2e6", "e2e7", "e2e8"},
			movesFrom(moves, "e2"))
	})

	t.Run("bishop pinned on file cannot move", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
		assert.Empty(t, movesFrom(gs.ValidMoves(), "e2"))
	})

	t.Run("pinned knight cannot move", func(t *testing.T) {
		gs := mustFEN(t, "7k/8/8/8/1b6/8/3N4/4K3 w - - 0 1")
		assert.Empty(t, movesFrom(gs.ValidMoves(), "d2"))
	})

	t.Run("diagonally pinned pawn may only capture the pinner", func(t *testing.T) {
		gs := mustFEN(t, "7k/8/8/8/8/2b5/3P4/4K3 w - - 0 1")
		assert.Equal(t, []string{"d2c3"}, movesFrom(gs.ValidMoves(), "d2"))
	})

	t.Run("king shielded by a second piece is not pinned", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/4N3/8/4R3/4K3 w - - 0 1")
		gs.ValidMoves()
		assert.Empty(t, gs.Pins())
	})
}

func TestChecks(t *testing.T) {
	t.Run("single check from a slider can be blocked", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/R7/8/8/4K3 w - - 0 1")
		moves := gs.ValidMoves()

		require.True(t, gs.InCheck())
		require.Len(t, gs.Checks(), 1)
		assert.Equal(t, []string{"a4e4"}, movesFrom(moves, "a4"))
		assert.ElementsMatch(t, []string{"e1d1", "e1d2", "e1f1", "e1f2"}, movesFrom(moves, "e1"))
	})

	t.Run("double check allows only king moves", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/R7/3n4/8/4K3 w - - 0 1")
		moves := gs.ValidMoves()

		require.True(t, gs.InCheck())
		assert.Len(t, gs.Checks(), 2)
		require.NotEmpty(t, moves)
		for _, m := range moves {
			assert.Equal(t, King, m.Moved.Type(), m.Notation())
		}
		assert.ElementsMatch(t, []string{"e1d1", "e1d2", "e1f1"}, Notations(moves))
	})

	t.Run("checking pawn can be taken en passant", func(t *testing.T) {
		gs := mustFEN(t, "8/8/8/4k3/3Pp3/8/8/4K3 b - d3 0 1")
		moves := gs.ValidMoves()

		require.True(t, gs.InCheck())
		m, ok := MatchMove(moves, Move{Start: MustParseSquare("e4"), End: MustParseSquare("d3")})
		require.True(t, ok)
		assert.True(t, m.IsEnPassant)
		_, ok = MatchMove(moves, Move{Start: MustParseSquare("e5"), End: MustParseSquare("d4")})
		assert.True(t, ok, "king may capture the unprotected checker")
	})

	t.Run("king cannot step back along the checking line", func(t *testing.T) {
		gs := mustFEN(t, "7k/8/8/8/8/8/8/r3K3 w - - 0 1")
		moves := gs.ValidMoves()
		_, ok := MatchMove(moves, Move{Start: MustParseSquare("e1"), End: MustParseSquare("f1")})
		assert.False(t, ok)
	})
}

func TestUndoRestoresCheckState(t *testing.T) {
	gs := mustFEN(t, "4r1k1/8/8/8/8/8/3P1P2/4K3 w - - 0 1")
	moves := gs.ValidMoves()
	require.True(t, gs.InCheck())
	checks := gs.Checks()
	require.Len(t, checks, 1)

	for _, m := range moves {
		gs.MakeMove(m)
		gs.ValidMoves()
		gs.UndoMove()

		assert.True(t, gs.InCheck(), m.Notation())
		assert.Equal(t, checks, gs.Checks(), m.Notation())
		assert.Empty(t, gs.Pins(), m.Notation())
	}

	t.Run("pins", func(t *testing.T) {
		gs := mustFEN(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
		gs.ValidMoves()
		pins := gs.Pins()
		require.Len(t, pins, 1)

		play(t, gs, "e1d1")
		gs.ValidMoves()
		gs.UndoMove()
		assert.Equal(t, pins, gs.Pins())
		assert.False(t, gs.InCheck())
	})
}

func TestEnPassant(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4", "a7a6", "e4e5", "d7d5")

	moves := gs.ValidMoves()
	m, ok := MatchMove(moves, Move{Start: MustParseSquare("e5"), End: MustParseSquare("d6")})
	require.True(t, ok)
	require.True(t, m.IsEnPassant)
	assert.Equal(t, BlackPawn, m.Captured)

	gs.MakeMove(m)
	assert.Equal(t, WhitePawn, gs.PieceAt(MustParseSquare("d6")))
	assert.True(t, gs.PieceAt(MustParseSquare("d5")).IsEmpty(), "captured pawn removed from its own square")
	assert.True(t, gs.PieceAt(MustParseSquare("e5")).IsEmpty())

	gs.UndoMove()
	assert.Equal(t, BlackPawn, gs.PieceAt(MustParseSquare("d5")))
	assert.Equal(t, WhitePawn, gs.PieceAt(MustParseSquare("e5")))
	assert.True(t, gs.PieceAt(MustParseSquare("d6")).IsEmpty())

	// The right lapses once any other move is played.
	play(t, gs, "h2h3", "a6a5")
	_, ok = MatchMove(gs.ValidMoves(), Move{Start: MustParseSquare("e5"), End: MustParseSquare("d6")})
	assert.False(t, ok)
}

func TestPromotion(t *testing.T) {
	gs := mustFEN(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	moves := gs.ValidMoves()

	for _, s := range []string{"a7a8", "a7b8"} {
		c, err := ParseMove(s)
		require.NoError(t, err)
		m, ok := MatchMove(moves, c)
		require.True(t, ok, s)
		assert.True(t, m.IsPawnPromotion, s)
	}

	_, err := gs.MakeMoveString("a7b8n")
	require.NoError(t, err)
	assert.Equal(t, WhiteQueen, gs.PieceAt(MustParseSquare("b8")), "pawns always promote to a queen")

	gs.UndoMove()
	assert.Equal(t, WhitePawn, gs.PieceAt(MustParseSquare("a7")))
	assert.Equal(t, BlackKnight, gs.PieceAt(MustParseSquare("b8")))
}

func TestCastling(t *testing.T) {
	t.Run("both sides available", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		moves := gs.ValidMoves()

		for _, s := range []string{"e1g1", "e1c1"} {
			c, _ := ParseMove(s)
			m, ok := MatchMove(moves, c)
			require.True(t, ok, s)
			assert.True(t, m.IsCastle, s)
		}
	})

	t.Run("kingside castle moves the rook and revokes rights", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, gs, "e1g1")

		assert.Equal(t, WhiteKing, gs.PieceAt(MustParseSquare("g1")))
		assert.Equal(t, WhiteRook, gs.PieceAt(MustParseSquare("f1")))
		assert.True(t, gs.PieceAt(MustParseSquare("h1")).IsEmpty())
		assert.False(t, gs.CastleRights().WhiteKingside)
		assert.False(t, gs.CastleRights().WhiteQueenside)
		assert.True(t, gs.CastleRights().BlackKingside)

		gs.UndoMove()
		assert.Equal(t, WhiteKing, gs.PieceAt(MustParseSquare("e1")))
		assert.Equal(t, WhiteRook, gs.PieceAt(MustParseSquare("h1")))
		assert.True(t, gs.PieceAt(MustParseSquare("f1")).IsEmpty())
		assert.Equal(t, AllCastleRights, gs.CastleRights())
	})

	t.Run("queenside castle", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
		play(t, gs, "e8c8")

		assert.Equal(t, BlackKing, gs.PieceAt(MustParseSquare("c8")))
		assert.Equal(t, BlackRook, gs.PieceAt(MustParseSquare("d8")))
		assert.True(t, gs.PieceAt(MustParseSquare("a8")).IsEmpty())
		assert.Equal(t, MustParseSquare("c8"), gs.KingSquare(Black))
	})

	t.Run("attacked transit square blocks castling", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1")
		notations := Notations(gs.ValidMoves())
		assert.NotContains(t, notations, "e1g1")
		assert.Contains(t, notations, "e1c1")
	})

	t.Run("attacked b-file square does not block queenside", func(t *testing.T) {
		gs := mustFEN(t, "1r2k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1")
		assert.Contains(t, Notations(gs.ValidMoves()), "e1c1")
	})

	t.Run("no castling out of check", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
		notations := Notations(gs.ValidMoves())
		assert.NotContains(t, notations, "e1g1")
		assert.NotContains(t, notations, "e1c1")
	})

	t.Run("rook move revokes permanently", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		play(t, gs, "h1h2", "a8a7", "h2h1", "a7a8")

		assert.False(t, gs.CastleRights().WhiteKingside)
		assert.True(t, gs.CastleRights().WhiteQueenside)
		assert.NotContains(t, Notations(gs.ValidMoves()), "e1g1")

		gs.UndoMove()
		gs.UndoMove()
		assert.False(t, gs.CastleRights().WhiteKingside)
		assert.Len(t, gs.CastleRightsLog(), 3)
	})

	t.Run("capturing a rook on its corner revokes", func(t *testing.T) {
		gs := mustFEN(t, "r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1")
		play(t, gs, "g2h1")
		assert.False(t, gs.CastleRights().WhiteKingside)
		assert.True(t, gs.CastleRights().WhiteQueenside)
	})
}

func TestGameOverFlagsRecomputed(t *testing.T) {
	gs := mustFEN(t, "k7/8/1Q6/8/8/8/8/2K5 b - - 0 1")
	gs.ValidMoves()
	require.True(t, gs.Stalemate())
	require.NoError(t, gs.Validate())

	gs = mustFEN(t, "k7/8/8/1Q6/8/8/8/2K5 w - - 0 1")
	play(t, gs, "b5b6")
	assert.False(t, gs.Stalemate(), "flags are stale until the next query")
	gs.ValidMoves()
	assert.True(t, gs.Stalemate())
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"Pnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range bad {
		_, err := ParseFEN(fen)
		assert.ErrorIs(t, err, ErrInvalidFEN, fen)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 12",
	}
	for _, fen := range fens {
		assert.Equal(t, fen, mustFEN(t, fen).FEN())
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, "e7e8", m.Notation())
	assert.True(t, m.Equal(Move{Start: MustParseSquare("e7"), End: MustParseSquare("e8")}))

	for _, s := range []string{"", "e2", "e2e9", "i2e4", "e7e8k", "e2e4e5"} {
		_, err := ParseMove(s)
		assert.ErrorIs(t, err, ErrInvalidMove, s)
	}

	gs := NewGameState()
	_, err = gs.MakeMoveString("e2e5")
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, 0, gs.Ply())
}

func TestMoveIdentity(t *testing.T) {
	gs := NewGameState()
	b := gs.Board()
	a := NewMove(MustParseSquare("e2"), MustParseSquare("e4"), &b)
	c := Move{Start: MustParseSquare("e2"), End: MustParseSquare("e4"), IsCastle: true}

	assert.True(t, a.Equal(c))
	assert.Equal(t, a.ID(), c.ID())
	assert.Equal(t, 6444, a.ID())
	assert.Equal(t, "0000", NoMove.String())
	assert.Panics(t, func() { NewMove(MustParseSquare("e4"), MustParseSquare("e5"), &b) })
}

func TestCloneIsIndependent(t *testing.T) {
	gs := NewGameState()
	play(t, gs, "e2e4")
	c := gs.Clone()
	play(t, c, "e7e5")

	assert.Equal(t, 1, gs.Ply())
	assert.Equal(t, 2, c.Ply())
	assert.True(t, gs.PieceAt(MustParseSquare("e5")).IsEmpty())
}
