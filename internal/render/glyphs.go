package render

import (
	"fmt"
	"strings"

	"github.com/hailam/chessmate/internal/board"
)

// point is a position inside a square, in units of the square size.
type point struct{ x, y float64 }

type circle struct {
	c point
	r float64
}

// glyph is a piece drawn from closed polygons and circles.
type glyph struct {
	polygons [][]point
	circles  []circle
}

func rect(x0, y0, x1, y1 float64) []point {
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

var glyphs = [6]glyph{
	board.Pawn: {
		polygons: [][]point{
			{{0.42, 0.40}, {0.58, 0.40}, {0.67, 0.72}, {0.33, 0.72}},
			rect(0.24, 0.72, 0.76, 0.84),
		},
		circles: []circle{{point{0.5, 0.31}, 0.12}},
	},
	board.Knight: {
		polygons: [][]point{
			{{0.32, 0.76}, {0.74, 0.76}, {0.72, 0.48}, {0.62, 0.22}, {0.50, 0.14},
				{0.46, 0.22}, {0.32, 0.34}, {0.22, 0.50}, {0.28, 0.57}, {0.44, 0.49}, {0.36, 0.66}},
			rect(0.24, 0.76, 0.78, 0.86),
		},
	},
	board.Bishop: {
		polygons: [][]point{
			{{0.36, 0.76}, {0.64, 0.76}, {0.64, 0.50}, {0.50, 0.27}, {0.36, 0.50}},
			rect(0.25, 0.76, 0.75, 0.86),
		},
		circles: []circle{{point{0.5, 0.20}, 0.06}},
	},
	board.Rook: {
		polygons: [][]point{
			{{0.25, 0.16}, {0.35, 0.16}, {0.35, 0.24}, {0.45, 0.24}, {0.45, 0.16}, {0.55, 0.16},
				{0.55, 0.24}, {0.65, 0.24}, {0.65, 0.16}, {0.75, 0.16}, {0.75, 0.36}, {0.25, 0.36}},
			rect(0.31, 0.36, 0.69, 0.74),
			rect(0.22, 0.74, 0.78, 0.86),
		},
	},
	board.Queen: {
		polygons: [][]point{
			{{0.22, 0.76}, {0.78, 0.76}, {0.85, 0.32}, {0.66, 0.58}, {0.50, 0.25}, {0.34, 0.58}, {0.15, 0.32}},
			rect(0.22, 0.76, 0.78, 0.86),
		},
		circles: []circle{
			{point{0.15, 0.28}, 0.05},
			{point{0.50, 0.21}, 0.05},
			{point{0.85, 0.28}, 0.05},
		},
	},
	board.King: {
		polygons: [][]point{
			rect(0.46, 0.10, 0.54, 0.40),
			rect(0.38, 0.18, 0.62, 0.26),
			{{0.25, 0.76}, {0.75, 0.76}, {0.82, 0.46}, {0.50, 0.38}, {0.18, 0.46}},
			rect(0.22, 0.76, 0.78, 0.86),
		},
	},
}

// writeGlyph writes the SVG elements of p drawn in the square with top-left
// corner (x, y) and side size.
func writeGlyph(sb *strings.Builder, p board.Piece, x, y, size float64, theme Theme) {
	g := glyphs[p.Type()]
	body := theme.WhitePiece
	if p.Color() == board.Black {
		body = theme.BlackPiece
	}
	style := fmt.Sprintf(`%s stroke="%s" stroke-width="%.2f" stroke-linejoin="round"`,
		fill(body), hex(theme.Outline), size/40)

	for _, poly := range g.polygons {
		pts := make([]string, len(poly))
		for i, pt := range poly {
			pts[i] = fmt.Sprintf("%.2f,%.2f", x+pt.x*size, y+pt.y*size)
		}
		fmt.Fprintf(sb, `<polygon points="%s" %s/>`+"\n", strings.Join(pts, " "), style)
	}
	for _, c := range g.circles {
		fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n",
			x+c.c.x*size, y+c.c.y*size, c.r*size, style)
	}
}
