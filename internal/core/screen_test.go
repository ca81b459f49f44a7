package core

import (
	"image/color"
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with blank cells
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if g := s.Get(x, y); g.Rune != ' ' {
				t.Fatalf("New screen should be blank, got %q at (%d, %d)", g.Rune, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)
	g := Glyph{Rune: '@', Color: ColorRed}

	s.Set(5, 5, g)
	if got := s.Get(5, 5); got != g {
		t.Errorf("Get(5, 5) = %+v, expected %+v", got, g)
	}

	// Out of bounds should not panic
	s.Set(-1, 0, g)
	s.Set(0, -1, g)
	s.Set(10, 0, g)
	s.Set(0, 10, g)

	if got := s.Get(-1, 0); got.Rune != ' ' {
		t.Errorf("Get(-1, 0) = %q, expected blank", got.Rune)
	}
	if got := s.Get(100, 100); got.Rune != ' ' {
		t.Errorf("Get(100, 100) = %q, expected blank", got.Rune)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.Set(1, 1, Glyph{Rune: 'X'})
	s.Clear(ColorGreen)

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if g := s.Get(x, y); g.Rune != ' ' || g.Color != ColorGreen {
				t.Fatalf("Get(%d, %d) = %+v, expected blank green", x, y, g)
			}
		}
	}
}

func TestScreenFillSquare(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		size    float64
		painted [][2]int // col, row
	}{
		{"cell at origin", 0, 0, 20, [][2]int{{0, 0}, {1, 0}}},
		{"second row", 0, 20, 20, [][2]int{{0, 1}, {1, 1}}},
		{"shifted column", 40, 0, 20, [][2]int{{4, 0}, {5, 0}}},
		{"tiny square", 12, 25, 1, [][2]int{{1, 1}}},
		{"partly off screen", -20, 0, 20, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(8, 3)
			s.Clear(ColorGreen)
			s.FillSquare(tc.x, tc.y, tc.size, ColorRed)

			want := make(map[[2]int]bool)
			for _, p := range tc.painted {
				want[p] = true
			}
			for y := 0; y < s.Height(); y++ {
				for x := 0; x < s.Width(); x++ {
					red := s.Get(x, y).Color == ColorRed
					if red != want[[2]int{x, y}] {
						t.Errorf("cell (%d, %d) red = %v, expected %v", x, y, red, want[[2]int{x, y}])
					}
				}
			}
		})
	}
}

func TestScreenSetScale(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetScale(20, 20)
	s.SetScale(0, -1) // ignored

	s.FillSquare(20, 20, 20, ColorRed)
	if s.Get(1, 1).Color != ColorRed {
		t.Error("one 20px square should fill exactly cell (1, 1) at 20px per cell")
	}
	if s.Get(2, 1).Color == ColorRed || s.Get(1, 2).Color == ColorRed {
		t.Error("square spilled into a neighbouring cell")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, Glyph{Rune: 'X'})
	s.Set(9, 9, Glyph{Rune: 'Y'})

	s.Resize(8, 8)
	if s.Width() != 8 || s.Height() != 8 {
		t.Fatalf("size = %dx%d, expected 8x8", s.Width(), s.Height())
	}
	if got := s.Get(5, 5).Rune; got != 'X' {
		t.Errorf("Content should be preserved after resize, got %q", got)
	}

	s.Resize(12, 12)
	if got := s.Get(9, 9).Rune; got != ' ' {
		t.Errorf("cropped content came back after growing: %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(4, 2)
	s.Clear(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	s.FillSquare(0, 0, 20, ColorBlack)
	s.Set(3, 1, Glyph{Rune: '!'})

	expected := "██░░\n░░░!"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Errorf("String() has %d lines, expected 2", len(lines))
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, expected blank", got)
	}
}

func TestDrawList(t *testing.T) {
	d := NewDrawList()
	d.Clear(ColorGreen)
	d.FillSquare(0, 20, 20, ColorRed)
	d.FillSquare(40, 0, 20, ColorBlack)

	if d.BackgroundColor() != ColorGreen || d.Background != "#00ff00" {
		t.Errorf("background = %v %q, expected green", d.BackgroundColor(), d.Background)
	}
	if len(d.Squares) != 2 {
		t.Fatalf("got %d squares, expected 2", len(d.Squares))
	}
	if sq := d.Squares[1]; sq.X != 40 || sq.Hex != "#000000" || sq.Color != ColorBlack {
		t.Errorf("square 1 = %+v", sq)
	}

	d.Clear(ColorBlack)
	if len(d.Squares) != 0 {
		t.Errorf("Clear() kept %d squares", len(d.Squares))
	}
}

var _ Canvas = (*Screen)(nil)
var _ Canvas = (*DrawList)(nil)
