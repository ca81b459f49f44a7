package core

import (
	"fmt"
	"image/color"
)

// Palette colors used by the default configuration. They mirror the
// classic look: green field, red snake, black food.
var (
	ColorGreen = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	ColorRed   = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ColorBlack = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
