// Package render draws board snapshots. A snapshot becomes SVG text, which is
// rasterised into an RGBA image with coordinate labels and optionally encoded
// as PNG.
package render

import (
	"fmt"
	"image/color"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	WhitePiece     color.RGBA
	BlackPiece     color.RGBA
	Outline        color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		WhitePiece:     color.RGBA{250, 250, 250, 255},
		BlackPiece:     color.RGBA{40, 40, 40, 255},
		Outline:        color.RGBA{20, 20, 20, 255},
	}
}

// fill returns SVG fill attributes for c.
func fill(c color.RGBA) string {
	return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex(c), float64(c.A)/255)
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
