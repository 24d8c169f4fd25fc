package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding = 20
	ButtonHeight = 36
	ButtonGap    = 8
	rowHeight    = 22
	statusHeight = 70
)

// Panel colors
var (
	panelBg        = color.RGBA{38, 40, 45, 255}    // Dark background
	buttonBg       = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg  = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonBorder   = color.RGBA{70, 75, 82, 255}    // Subtle button border
	textPrimary    = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary  = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted      = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor   = color.RGBA{60, 65, 72, 255}    // Divider line
	moveRowAlt     = color.RGBA{44, 48, 54, 255}    // Alternating row
	statusThinking = color.RGBA{100, 180, 255, 255} // Blue for thinking
	statusGameOver = color.RGBA{255, 200, 80, 255}  // Yellow for game over
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
}

// Panel is the side panel with the command buttons, the move history and
// the game status.
type Panel struct {
	game    *Game
	buttons []*Button

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	x := BoardSize + PanelPadding
	w := (PanelWidth - 2*PanelPadding - 2*ButtonGap) / 3
	y := PanelPadding
	p.buttons = []*Button{
		{X: x, Y: y, W: w, H: ButtonHeight, Label: "New", OnClick: g.NewGameAction},
		{X: x + w + ButtonGap, Y: y, W: w, H: ButtonHeight, Label: "Undo", OnClick: g.UndoAction},
		{X: x + 2*(w+ButtonGap), Y: y, W: w, H: ButtonHeight, Label: "Flip", OnClick: g.FlipAction},
	}
	return p
}

// HandleInput processes panel clicks and scrolling. It returns true when
// the panel consumed the input.
func (p *Panel) HandleInput(input *InputHandler) bool {
	consumed := false
	for _, b := range p.buttons {
		b.hovered = input.IsInBounds(b.X, b.Y, b.W, b.H)
		if input.ClickedInBounds(b.X, b.Y, b.W, b.H) {
			b.OnClick()
			consumed = true
		}
	}

	if input.IsInBounds(BoardSize, 0, PanelWidth, ScreenHeight) {
		if wheel := input.Wheel(); wheel != 0 {
			p.scrollY -= int(wheel * rowHeight)
			p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
			consumed = true
		}
	}
	return consumed
}

// AnyButtonHovered reports whether the cursor is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg, false)

	for _, b := range p.buttons {
		p.drawButton(screen, b)
	}

	historyY := PanelPadding + ButtonHeight + PanelPadding
	p.drawText(screen, "Moves", BoardSize+PanelPadding, historyY, textSecondary)
	p.drawMoveHistory(screen, historyY+rowHeight+4)
	p.drawStatusBar(screen)
}

func (p *Panel) drawButton(screen *ebiten.Image, b *Button) {
	bg := buttonBg
	if b.hovered {
		bg = buttonHoverBg
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, buttonBorder, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, textPrimary)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	lines := p.game.session.MoveLogText()
	if len(lines) == 0 {
		p.drawText(screen, "No moves yet", BoardSize+PanelPadding, startY+5, textMuted)
		return
	}

	x := BoardSize + PanelPadding
	maxY := ScreenHeight - statusHeight
	visibleHeight := maxY - startY

	contentHeight := len(lines) * rowHeight
	p.maxScrollY = max(0, contentHeight-visibleHeight)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / rowHeight
	y := startY - (p.scrollY % rowHeight)

	for i := startRow; i < len(lines); i++ {
		if y > maxY-rowHeight {
			break
		}
		if i%2 == 1 && y >= startY {
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
				float32(PanelWidth-PanelPadding*2+8), float32(rowHeight), moveRowAlt, false)
		}
		if y >= startY {
			number, moves, _ := strings.Cut(lines[i], " ")
			p.drawText(screen, number, x, y, textMuted)
			p.drawText(screen, moves, x+40, y, textPrimary)
		}
		y += rowHeight
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - statusHeight + 10
	x := BoardSize + PanelPadding

	vector.DrawFilledRect(screen, float32(x), float32(statusY-10),
		float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	s := p.game.session
	p.drawText(screen, p.game.PlayersLabel(), x, statusY, textSecondary)

	statusColor := textPrimary
	switch {
	case s.GameOver():
		statusColor = statusGameOver
	case s.ComputerTurn():
		statusColor = statusThinking
	}
	p.drawText(screen, s.Status(), x, statusY+22, statusColor)
}

// Text drawing helpers
func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	if regularFace == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, regularFace, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	if boldFace == nil {
		return
	}
	w, h := text.Measure(s, boldFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(centerX)-w/2, float64(centerY)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, boldFace, op)
}
