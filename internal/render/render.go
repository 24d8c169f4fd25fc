package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessmate/internal/board"
)

// Snapshot is what a board drawing shows.
type Snapshot struct {
	Board board.Board

	Selected    board.Square
	HasSelected bool
	Targets     []board.Square

	LastMove    board.Move
	HasLastMove bool

	// Check is the square of a king in check.
	Check   board.Square
	InCheck bool
}

// FromGame returns a snapshot of gs with the last move and any check
// marked. Selection is left to the caller.
func FromGame(gs *board.GameState) Snapshot {
	snap := Snapshot{Board: gs.Board()}
	snap.LastMove, snap.HasLastMove = gs.LastMove()
	if us := gs.SideToMove(); gs.KingAttacked(us) {
		snap.Check, snap.InCheck = gs.KingSquare(us), true
	}
	return snap
}

// Options configures a Renderer.
type Options struct {
	SquareSize  int
	Flipped     bool // draw from Black's side
	Coordinates bool
	Theme       Theme
}

// DefaultOptions returns 80 pixel squares, White at the bottom, with
// coordinates.
func DefaultOptions() Options {
	return Options{
		SquareSize:  80,
		Coordinates: true,
		Theme:       DefaultTheme(),
	}
}

// Renderer draws snapshots.
type Renderer struct {
	opts Options
	face font.Face
}

// New creates a renderer.
func New(opts Options) (*Renderer, error) {
	if opts.SquareSize <= 0 {
		return nil, fmt.Errorf("render: invalid square size %d", opts.SquareSize)
	}
	r := &Renderer{opts: opts}

	if opts.Coordinates {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("render: load font: %w", err)
		}
		r.face, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(opts.SquareSize) * 0.16,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("render: load font: %w", err)
		}
	}
	return r, nil
}

// Size returns the side of the board image in pixels.
func (r *Renderer) Size() int {
	return 8 * r.opts.SquareSize
}

// Flipped reports whether Black is drawn at the bottom.
func (r *Renderer) Flipped() bool {
	return r.opts.Flipped
}

// SetFlipped chooses which side is drawn at the bottom.
func (r *Renderer) SetFlipped(flipped bool) {
	r.opts.Flipped = flipped
}

// origin returns the pixel position of the top-left corner of sq.
func (r *Renderer) origin(sq board.Square) (x, y int) {
	row, col := sq.Row, sq.Col
	if r.opts.Flipped {
		row, col = 7-row, 7-col
	}
	return col * r.opts.SquareSize, row * r.opts.SquareSize
}

// SquareAt returns the square under pixel (x, y) of the board image.
func (r *Renderer) SquareAt(x, y int) (board.Square, bool) {
	if x < 0 || y < 0 || x >= r.Size() || y >= r.Size() {
		return board.Square{}, false
	}
	row, col := y/r.opts.SquareSize, x/r.opts.SquareSize
	if r.opts.Flipped {
		row, col = 7-row, 7-col
	}
	return board.NewSquare(row, col), true
}

func lightSquare(sq board.Square) bool {
	return (sq.Row+sq.Col)%2 == 0
}

// SVG returns the board drawing as an SVG document. Coordinate labels are
// not part of it.
func (r *Renderer) SVG(snap Snapshot) string {
	theme := r.opts.Theme
	size := r.opts.SquareSize
	total := r.Size()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		total, total, total, total)

	square := func(sq board.Square, c color.RGBA) {
		x, y := r.origin(sq)
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" %s/>`+"\n", x, y, size, size, fill(c))
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.Square{Row: row, Col: col}
			if lightSquare(sq) {
				square(sq, theme.LightSquare)
			} else {
				square(sq, theme.DarkSquare)
			}
		}
	}

	if snap.HasLastMove {
		square(snap.LastMove.Start, theme.LastMoveColor)
		square(snap.LastMove.End, theme.LastMoveColor)
	}
	if snap.HasSelected {
		square(snap.Selected, theme.SelectedSquare)
	}
	if snap.InCheck {
		square(snap.Check, theme.CheckColor)
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := board.Square{Row: row, Col: col}
			p := snap.Board.At(sq)
			if p.IsEmpty() {
				continue
			}
			x, y := r.origin(sq)
			writeGlyph(&sb, p, float64(x), float64(y), float64(size), theme)
		}
	}

	// Dots on empty targets, rings around captures.
	for _, sq := range snap.Targets {
		x, y := r.origin(sq)
		cx, cy := float64(x)+float64(size)/2, float64(y)+float64(size)/2
		if snap.Board.At(sq).IsEmpty() {
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n",
				cx, cy, float64(size)*0.15, fill(theme.LegalMoveColor))
		} else {
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
				cx, cy, float64(size)*0.44, hex(theme.LegalMoveColor),
				float64(theme.LegalMoveColor.A)/255, float64(size)*0.08)
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Render rasterises the snapshot and draws the coordinate labels.
func (r *Renderer) Render(snap Snapshot) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(r.SVG(snap)))
	if err != nil {
		return nil, fmt.Errorf("render: parse svg: %w", err)
	}

	total := r.Size()
	icon.SetTarget(0, 0, float64(total), float64(total))

	rgba := image.NewRGBA(image.Rect(0, 0, total, total))
	scanner := rasterx.NewScannerGV(total, total, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(total, total, scanner)
	icon.Draw(raster, 1.0)

	if r.opts.Coordinates {
		r.drawCoordinates(rgba)
	}
	return rgba, nil
}

// drawCoordinates writes rank numbers in the top-left corner of the left
// column and file letters in the bottom-right corner of the bottom row, each
// in the color of the opposite square.
func (r *Renderer) drawCoordinates(dst *image.RGBA) {
	theme := r.opts.Theme
	size := r.opts.SquareSize
	pad := size / 16
	ascent := r.face.Metrics().Ascent.Ceil()

	label := func(sq board.Square, s string, right bool) {
		x, y := r.origin(sq)
		c := theme.LightSquare
		if lightSquare(sq) {
			c = theme.DarkSquare
		}
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: r.face}
		if right {
			w := d.MeasureString(s).Ceil()
			d.Dot = fixed.P(x+size-pad-w, y+size-pad)
		} else {
			d.Dot = fixed.P(x+pad, y+pad+ascent)
		}
		d.DrawString(s)
	}

	leftCol, bottomRow := 0, 7
	if r.opts.Flipped {
		leftCol, bottomRow = 7, 0
	}
	for i := 0; i < 8; i++ {
		rank := board.Square{Row: i, Col: leftCol}
		label(rank, string(rune('1'+rank.Rank())), false)

		file := board.Square{Row: bottomRow, Col: i}
		label(file, string(rune('a'+file.File())), true)
	}
}

// WritePNG renders the snapshot and writes it to w as PNG.
func (r *Renderer) WritePNG(w io.Writer, snap Snapshot) error {
	img, err := r.Render(snap)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
