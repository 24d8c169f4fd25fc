package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: black king h8 boxed in by its own pawns, white rook a8.
	gs, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(gs)

	moves := gs.ValidMoves()
	t.Log("Black legal moves:", len(moves))

	if len(moves) != 0 {
		t.Errorf("Expected no legal moves, got %v", Notations(moves))
	}
	if !gs.InCheck() {
		t.Error("Expected black to be in check")
	}
	if !gs.Checkmate() {
		t.Error("Expected checkmate but got false")
	}
	if gs.Stalemate() {
		t.Error("Checkmate must not also be stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// King CAN escape by capturing the unprotected rook.
	gs, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := gs.ValidMoves()
	t.Log("Black legal moves:", Notations(moves))

	if gs.Checkmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if _, ok := MatchMove(moves, Move{Start: MustParseSquare("h8"), End: MustParseSquare("g8")}); !ok {
		t.Error("Expected Kxg8 to be legal")
	}
}

func TestFoolsMate(t *testing.T) {
	gs := NewGameState()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if _, err := gs.MakeMoveString(s); err != nil {
			t.Fatalf("move %s: %v", s, err)
		}
	}

	moves := gs.ValidMoves()
	if len(moves) != 0 {
		t.Fatalf("Expected no legal moves after fool's mate, got %v", Notations(moves))
	}
	if !gs.InCheck() || !gs.Checkmate() || gs.Stalemate() {
		t.Errorf("InCheck=%v Checkmate=%v Stalemate=%v, want true true false",
			gs.InCheck(), gs.Checkmate(), gs.Stalemate())
	}

	// Undo clears the terminal flags until the next query.
	gs.UndoMove()
	if gs.Checkmate() || gs.Stalemate() {
		t.Error("UndoMove should clear checkmate and stalemate")
	}
}

func TestStalemate(t *testing.T) {
	// Lone black king on a8, white queen b6 covers every flight square.
	gs, err := ParseFEN("k7/8/1Q6/8/8/8/8/2K5 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	moves := gs.ValidMoves()
	if len(moves) != 0 {
		t.Fatalf("Expected no legal moves, got %v", Notations(moves))
	}
	if gs.InCheck() {
		t.Error("Stalemated king must not be in check")
	}
	if !gs.Stalemate() || gs.Checkmate() {
		t.Errorf("Stalemate=%v Checkmate=%v, want true false", gs.Stalemate(), gs.Checkmate())
	}
}
