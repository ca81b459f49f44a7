package core

import (
	"image/color"
	"math"
	"strings"
)

// Glyph is one character cell of a Screen.
type Glyph struct {
	Rune  rune
	Color color.RGBA // Background color of the cell
}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal: it implements Canvas by
// rasterizing pixel-space squares onto character cells, and the platform
// handles actual display.
type Screen struct {
	width  int
	height int
	colPx  float64 // pixels covered by one column
	rowPx  float64 // pixels covered by one row
	cells  [][]Glyph
}

// NewScreen creates a new screen buffer with the given dimensions.
// By default one column covers 10 pixels and one row 20, so a 20 pixel
// square is drawn two characters wide to compensate for tall terminal cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		colPx:  10,
		rowPx:  20,
	}
	s.allocate()
	s.Clear(color.RGBA{})
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Glyph, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Glyph, s.width)
	}
}

// SetScale sets how many pixels a column and a row cover.
// Non-positive values are ignored.
func (s *Screen) SetScale(colPx, rowPx float64) {
	if colPx > 0 {
		s.colPx = colPx
	}
	if rowPx > 0 {
		s.rowPx = rowPx
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear(color.RGBA{})

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with blank cells of the given color.
func (s *Screen) Clear(c color.RGBA) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Glyph{Rune: ' ', Color: c}
		}
	}
}

// FillSquare paints every character cell touched by the pixel-space square.
// A square smaller than one cell still paints the cell its origin falls in.
func (s *Screen) FillSquare(x, y, size float64, c color.RGBA) {
	c0 := int(math.Floor(x / s.colPx))
	c1 := int(math.Floor((x + size) / s.colPx))
	r0 := int(math.Floor(y / s.rowPx))
	r1 := int(math.Floor((y + size) / s.rowPx))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			s.Set(col, row, Glyph{Rune: ' ', Color: c})
		}
	}
}

// Set places a glyph at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, g Glyph) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = g
}

// Get returns the glyph at the given position.
// Returns a blank glyph for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Glyph {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Glyph{Rune: ' '}
	}
	return s.cells[y][x]
}

// String converts the screen buffer to plain text, one row per line.
// Cells are drawn with a shade rune picked by luminance so a screenshot
// keeps the shapes without any color codes.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height*3 + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, g := range s.cells[y] {
		if g.Rune != ' ' {
			sb.WriteRune(g.Rune)
			continue
		}
		sb.WriteRune(shade(g.Color))
	}
	return sb.String()
}

// shade maps a color to a block rune by perceived brightness.
func shade(c color.RGBA) rune {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	switch {
	case lum < 64:
		return '█'
	case lum < 128:
		return '▓'
	case lum < 192:
		return '▒'
	default:
		return '░'
	}
}
