// Package ui implements the chess game window using Ebitengine.
package ui

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessmate/internal/board"
	"github.com/hailam/chessmate/internal/engine"
	"github.com/hailam/chessmate/internal/render"
	"github.com/hailam/chessmate/internal/session"
	"github.com/hailam/chessmate/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

var background = color.RGBA{40, 44, 52, 255}

// Config selects the players and the engine for a new window.
type Config struct {
	White      storage.PlayerKind
	Black      storage.PlayerKind
	Difficulty engine.Difficulty
	Depth      int // 0 = use difficulty
	RandomOnly bool
	Flipped    bool
	Coords     bool
	FEN        string

	// Storage is optional. Finished games are archived in it.
	Storage *storage.Storage
}

// Game implements ebiten.Game over a session.
type Game struct {
	session  *session.Session
	renderer *render.Renderer
	input    *InputHandler
	panel    *Panel

	boardImage *ebiten.Image
	dirty      bool
}

// NewGame creates the window state for cfg.
func NewGame(cfg Config) (*Game, error) {
	eng := engine.NewEngine()
	eng.SetDifficulty(cfg.Difficulty)
	eng.SetDepth(cfg.Depth)
	eng.SetRandomOnly(cfg.RandomOnly)

	var recorder session.Recorder
	if cfg.Storage != nil {
		recorder = cfg.Storage
	}

	s, err := session.New(session.Config{
		White:    cfg.White,
		Black:    cfg.Black,
		Engine:   eng,
		Recorder: recorder,
		FEN:      cfg.FEN,
	})
	if err != nil {
		return nil, err
	}

	r, err := render.New(render.Options{
		SquareSize:  SquareSize,
		Flipped:     cfg.Flipped,
		Coordinates: cfg.Coords,
		Theme:       render.DefaultTheme(),
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		session:    s,
		renderer:   r,
		input:      NewInputHandler(),
		boardImage: ebiten.NewImage(BoardSize, BoardSize),
		dirty:      true,
	}
	g.panel = NewPanel(g)
	return g, nil
}

// Session returns the game being played.
func (g *Game) Session() *session.Session {
	return g.session
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// The computer moves at the start of a frame so that the previous move
	// has been drawn.
	if g.session.ComputerTurn() {
		if m, ok := g.session.Step(); ok {
			log.Printf("%s plays %s", m.Moved.Color(), m)
			g.dirty = true
		}
		if g.session.GameOver() {
			log.Printf("%s", g.session.Result())
		}
	}

	g.input.Update()

	switch g.input.KeyCommand() {
	case CmdUndo:
		g.UndoAction()
	case CmdReset:
		g.NewGameAction()
	case CmdFlip:
		g.FlipAction()
	}

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.updateCursor()
	return nil
}

// handleBoardInput passes board clicks to the session.
func (g *Game) handleBoardInput() {
	if !g.input.IsLeftJustPressed() || !g.session.HumanTurn() {
		return
	}
	sq, ok := g.renderer.SquareAt(g.input.MousePosition())
	if !ok {
		return
	}
	if m, played := g.session.Click(sq); played {
		log.Printf("%s plays %s", m.Moved.Color(), m)
		if g.session.GameOver() {
			log.Printf("%s", g.session.Result())
		}
	}
	g.dirty = true
}

func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.dirty {
		g.redrawBoard()
	}
	screen.DrawImage(g.boardImage, nil)

	g.panel.Draw(screen)
}

// redrawBoard rasterises the current position into the board image.
func (g *Game) redrawBoard() {
	snap := render.FromGame(g.session.Game())
	snap.Selected, snap.HasSelected = g.session.Selected()
	snap.Targets = g.session.LegalTargets()

	img, err := g.renderer.Render(snap)
	if err != nil {
		log.Printf("Failed to render board: %v", err)
		return
	}
	g.boardImage.WritePixels(img.Pix)
	g.dirty = false
}

// Layout returns the game's screen dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// NewGameAction starts a new game.
func (g *Game) NewGameAction() {
	g.session.Reset()
	g.dirty = true
}

// UndoAction takes back the last move.
func (g *Game) UndoAction() {
	g.session.Undo()
	g.dirty = true
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.dirty = true
}

// PlayersLabel describes who plays each side.
func (g *Game) PlayersLabel() string {
	return fmt.Sprintf("%s vs %s",
		g.session.Player(board.White), g.session.Player(board.Black))
}
