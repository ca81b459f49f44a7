package core

import "image/color"

// Canvas is the rendering sink for one frame. The simulation only ever
// clears the frame and fills axis-aligned squares in pixel space; hosts
// decide how those commands reach a terminal, a window or a browser.
type Canvas interface {
	Clear(c color.RGBA)
	FillSquare(x, y, size float64, c color.RGBA)
}

// Square is a single recorded FillSquare command.
type Square struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Size  float64    `json:"size"`
	Color color.RGBA `json:"-"`
	Hex   string     `json:"color"`
}

// DrawList is a Canvas that records commands instead of drawing them.
// It is JSON-encodable so the web host can ship a frame to the browser.
type DrawList struct {
	Background string   `json:"background"`
	Squares    []Square `json:"squares"`

	bg color.RGBA
}

// NewDrawList creates an empty draw list.
func NewDrawList() *DrawList {
	return &DrawList{}
}

// Clear drops all recorded squares and remembers the background.
func (d *DrawList) Clear(c color.RGBA) {
	d.bg = c
	d.Background = Hex(c)
	d.Squares = d.Squares[:0]
}

// FillSquare records one square.
func (d *DrawList) FillSquare(x, y, size float64, c color.RGBA) {
	d.Squares = append(d.Squares, Square{X: x, Y: y, Size: size, Color: c, Hex: Hex(c)})
}

// BackgroundColor returns the color passed to the last Clear.
func (d *DrawList) BackgroundColor() color.RGBA {
	return d.bg
}
