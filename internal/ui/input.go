package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler tracks the mouse and the command keys for one frame.
type InputHandler struct {
	mouseX, mouseY  int
	leftJustPressed bool
	wheelY          float64
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	_, ih.wheelY = ebiten.Wheel()
}

// MousePosition returns the cursor position in screen coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// Wheel returns the vertical scroll of this frame.
func (ih *InputHandler) Wheel() float64 {
	return ih.wheelY
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// ClickedInBounds returns true if the mouse was just clicked within the given rectangle.
func (ih *InputHandler) ClickedInBounds(x, y, w, h int) bool {
	return ih.leftJustPressed && ih.IsInBounds(x, y, w, h)
}

// Command is a keyboard command.
type Command int

const (
	CmdNone Command = iota
	CmdUndo
	CmdReset
	CmdFlip
)

// keyCommands maps keys to commands. Z is the classic undo key, U an alias.
var keyCommands = map[ebiten.Key]Command{
	ebiten.KeyZ: CmdUndo,
	ebiten.KeyU: CmdUndo,
	ebiten.KeyR: CmdReset,
	ebiten.KeyF: CmdFlip,
}

// KeyCommand returns the command whose key was just pressed, if any.
func (ih *InputHandler) KeyCommand() Command {
	for key, cmd := range keyCommands {
		if inpututil.IsKeyJustPressed(key) {
			return cmd
		}
	}
	return CmdNone
}
