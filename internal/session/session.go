// Package session drives a game between two players, each a human or the
// computer. It owns the position, turns square clicks into moves, runs the
// computer's turns and records finished games.
package session

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hailam/chessmate/internal/board"
	"github.com/hailam/chessmate/internal/engine"
	"github.com/hailam/chessmate/internal/storage"
)

// Recorder archives finished games. *storage.Storage implements it.
type Recorder interface {
	RecordGame(result *storage.GameResult) (uint64, error)
}

// Config configures a new Session.
type Config struct {
	White    storage.PlayerKind
	Black    storage.PlayerKind
	Engine   *engine.Engine // defaults to engine.NewEngine()
	Recorder Recorder       // optional
	FEN      string         // starting position, defaults to board.StartFEN
}

// Session is a single game in progress.
type Session struct {
	game     *board.GameState
	engine   *engine.Engine
	players  [2]storage.PlayerKind
	recorder Recorder
	startFEN string

	legal       []board.Move
	selected    board.Square
	hasSelected bool

	gameOver  bool
	winner    storage.Winner
	reason    string
	recorded  bool
	startedAt time.Time
}

// New starts a game as configured.
func New(cfg Config) (*Session, error) {
	fen := cfg.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	if _, err := board.ParseFEN(fen); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	eng := cfg.Engine
	if eng == nil {
		eng = engine.NewEngine()
	}

	s := &Session{
		engine:   eng,
		recorder: cfg.Recorder,
		startFEN: fen,
	}
	s.players[board.White] = cfg.White
	s.players[board.Black] = cfg.Black
	s.Reset()
	return s, nil
}

// Reset starts the game over from the starting position.
func (s *Session) Reset() {
	// The FEN was validated by New.
	gs, _ := board.ParseFEN(s.startFEN)
	s.game = gs
	s.clearSelection()
	s.gameOver = false
	s.winner = ""
	s.reason = ""
	s.recorded = false
	s.startedAt = time.Now()
	s.refresh()
}

// Game returns the position. Callers must not make or undo moves on it.
func (s *Session) Game() *board.GameState {
	return s.game
}

// Engine returns the engine that plays the computer's moves.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Player returns who moves for c.
func (s *Session) Player(c board.Color) storage.PlayerKind {
	return s.players[c]
}

// SetPlayer changes who moves for c. It takes effect on the next Step.
func (s *Session) SetPlayer(c board.Color, kind storage.PlayerKind) {
	s.players[c] = kind
	if kind == storage.Computer && s.game.SideToMove() == c {
		s.clearSelection()
	}
}

// HumanTurn reports whether a human is to move in a running game.
func (s *Session) HumanTurn() bool {
	return !s.gameOver && s.players[s.game.SideToMove()] == storage.Human
}

// ComputerTurn reports whether the computer is to move in a running game.
func (s *Session) ComputerTurn() bool {
	return !s.gameOver && s.players[s.game.SideToMove()] == storage.Computer
}

// LegalMoves returns the legal moves of the side to move.
func (s *Session) LegalMoves() []board.Move {
	return s.legal
}

// Selected returns the selected square, if any.
func (s *Session) Selected() (board.Square, bool) {
	return s.selected, s.hasSelected
}

// LegalTargets returns the destination squares of the selected piece.
func (s *Session) LegalTargets() []board.Square {
	if !s.hasSelected {
		return nil
	}
	var targets []board.Square
	for _, m := range s.legal {
		if m.Start == s.selected {
			targets = append(targets, m.End)
		}
	}
	return targets
}

// LastMove returns the most recent move, if any.
func (s *Session) LastMove() (board.Move, bool) {
	return s.game.LastMove()
}

// GameOver reports whether the game has ended.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Winner returns the winner of a finished game.
func (s *Session) Winner() storage.Winner {
	return s.winner
}

// Result returns a description of how the game ended, or "" while it runs.
func (s *Session) Result() string {
	switch {
	case !s.gameOver:
		return ""
	case s.winner == storage.WinnerWhite:
		return "White wins by checkmate!"
	case s.winner == storage.WinnerBlack:
		return "Black wins by checkmate!"
	default:
		return "Draw by stalemate"
	}
}

// Status returns a one-line description of the game state.
func (s *Session) Status() string {
	if s.gameOver {
		return s.Result()
	}
	side := "White"
	if !s.game.WhiteToMove() {
		side = "Black"
	}
	if s.game.InCheck() {
		return side + " to move (check)"
	}
	return side + " to move"
}

// Click handles a click on sq by the human to move. The first click selects
// one of their pieces; the second plays the move to sq when it is legal.
// Clicking the selected square again, or an illegal destination, clears the
// selection. Clicking another own piece selects it instead. Click returns
// the move it played, if any.
func (s *Session) Click(sq board.Square) (board.Move, bool) {
	if !s.HumanTurn() || !sq.Valid() {
		return board.NoMove, false
	}

	p := s.game.PieceAt(sq)
	own := !p.IsEmpty() && p.Color() == s.game.SideToMove()

	if !s.hasSelected {
		if own {
			s.selected, s.hasSelected = sq, true
		}
		return board.NoMove, false
	}

	if sq == s.selected {
		s.clearSelection()
		return board.NoMove, false
	}

	b := s.game.Board()
	candidate := board.NewMove(s.selected, sq, &b)
	if m, ok := board.MatchMove(s.legal, candidate); ok {
		s.play(m)
		return m, true
	}

	if own {
		s.selected = sq
	} else {
		s.clearSelection()
	}
	return board.NoMove, false
}

// PlayMove plays the move given in coordinate notation for the human to
// move.
func (s *Session) PlayMove(notation string) (board.Move, error) {
	if !s.HumanTurn() {
		return board.NoMove, fmt.Errorf("session: not a human turn")
	}
	candidate, err := board.ParseMove(notation)
	if err != nil {
		return board.NoMove, err
	}
	m, ok := board.MatchMove(s.legal, candidate)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %s", board.ErrIllegalMove, notation)
	}
	s.play(m)
	return m, nil
}

// Step plays the computer's move when it is the computer's turn. It
// searches synchronously.
func (s *Session) Step() (board.Move, bool) {
	if !s.ComputerTurn() {
		return board.NoMove, false
	}
	m := s.engine.ChooseMove(s.game)
	if m.IsNull() {
		// ValidMoves found nothing, so the flags are now set.
		s.checkGameEnd()
		return board.NoMove, false
	}
	s.play(m)
	return m, true
}

// Run plays computer moves until a human is to move, the game ends, or
// maxPlies moves have been made. It returns the number of moves played.
func (s *Session) Run(maxPlies int) int {
	n := 0
	for n < maxPlies {
		if _, ok := s.Step(); !ok {
			break
		}
		n++
	}
	return n
}

// Undo takes back the last move. When a human plays, it takes back moves up
// to and including that human's last move, so the computer's reply goes with
// it.
func (s *Session) Undo() {
	if s.game.Ply() == 0 {
		return
	}
	for s.game.Ply() > 0 {
		last, _ := s.game.LastMove()
		s.game.UndoMove()
		if !s.hasHuman() || s.players[last.Moved.Color()] == storage.Human {
			break
		}
	}
	s.clearSelection()
	s.gameOver = false
	s.winner = ""
	s.reason = ""
	s.recorded = false
	s.refresh()
}

// MoveLogText returns the move log as numbered lines, "1. e2e4 e7e5".
// Numbering follows the full move number of the starting position.
func (s *Session) MoveLogText() []string {
	moves := s.game.MoveLog()
	if len(moves) == 0 {
		return nil
	}

	start, _ := board.ParseFEN(s.startFEN)
	number := start.FullMoveNumber()

	var lines []string
	i := 0
	if !start.WhiteToMove() {
		lines = append(lines, fmt.Sprintf("%d. ... %s", number, moves[0].Notation()))
		number++
		i = 1
	}
	for ; i < len(moves); i += 2 {
		line := fmt.Sprintf("%d. %s", number, moves[i].Notation())
		if i+1 < len(moves) {
			line += " " + moves[i+1].Notation()
		}
		lines = append(lines, line)
		number++
	}
	return lines
}

// MoveText returns the numbered move log on one line.
func (s *Session) MoveText() string {
	return strings.Join(s.MoveLogText(), " ")
}

func (s *Session) hasHuman() bool {
	return s.players[board.White] == storage.Human || s.players[board.Black] == storage.Human
}

func (s *Session) clearSelection() {
	s.selected, s.hasSelected = board.Square{}, false
}

func (s *Session) play(m board.Move) {
	s.game.MakeMove(m)
	s.clearSelection()
	s.refresh()
}

// refresh regenerates the legal moves, which also recomputes the game-over
// flags, and ends the game when there are none.
func (s *Session) refresh() {
	s.legal = s.game.ValidMoves()
	s.checkGameEnd()
}

func (s *Session) checkGameEnd() {
	if s.gameOver {
		return
	}
	switch {
	case s.game.Checkmate():
		s.gameOver = true
		s.reason = "checkmate"
		s.winner = storage.WinnerWhite
		if s.game.WhiteToMove() {
			s.winner = storage.WinnerBlack
		}
	case s.game.Stalemate():
		s.gameOver = true
		s.reason = "stalemate"
		s.winner = storage.WinnerNone
	default:
		return
	}
	s.record()
}

func (s *Session) record() {
	if s.recorder == nil || s.recorded {
		return
	}
	s.recorded = true

	result := &storage.GameResult{
		Winner:   s.winner,
		Reason:   s.reason,
		White:    s.players[board.White],
		Black:    s.players[board.Black],
		StartFEN: s.startFEN,
		FinalFEN: s.game.FEN(),
		Moves:    board.Notations(s.game.MoveLog()),
		Duration: time.Since(s.startedAt),
	}
	id, err := s.recorder.RecordGame(result)
	if err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
		return
	}
	log.Printf("Game %d recorded: %s", id, s.Result())
}
