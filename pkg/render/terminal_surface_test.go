package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/heartworks/pkg/fireworks"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, col, row int) rune {
	r, _, _, _ := screen.GetContent(col, row)
	return r
}

func TestTerminalSurface_Size(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewTerminalSurface(screen, 0, 0)

	w, h := s.Size()
	if w != 80 || h != 80 {
		t.Errorf("Size() = %v x %v, want 80 x 80", w, h)
	}
	if r := s.BoundingRect(); r.X != 0 || r.Y != 0 || r.Width != 80 {
		t.Errorf("BoundingRect() = %+v", r)
	}

	s.SetSize(160, 48)
	if w, h := s.Size(); w != 160 || h != 48 {
		t.Errorf("after SetSize: %v x %v", w, h)
	}

	x, y := s.CellToSurface(2, 1)
	if x != 20 || y != 24 {
		t.Errorf("CellToSurface(2, 1) = %v, %v", x, y)
	}
}

func TestTerminalSurface_HeartGlyph(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewTerminalSurface(screen, DefaultCellWidth, DefaultCellHeight)

	fireworks.DrawHeart(s, 40, 40, 10, 1, 330)

	if got := runeAt(screen, 5, 2); got != heartRune {
		t.Fatalf("cell (5,2) = %q, want %q", got, heartRune)
	}
	_, _, style, _ := screen.GetContent(5, 2)
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	if r <= g || r <= b {
		t.Errorf("heart colour %d,%d,%d should be a pink-red", r, g, b)
	}
}

func TestTerminalSurface_StrokeLine(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewTerminalSurface(screen, 8, 16)

	s.SetStrokeColor(color.White)
	s.BeginPath()
	s.MoveTo(4, 8)
	s.LineTo(60, 8)
	s.Stroke()

	for col := 0; col <= 7; col++ {
		if got := runeAt(screen, col, 0); got != trailRune {
			t.Errorf("cell (%d,0) = %q, want %q", col, got, trailRune)
		}
	}
	if got := runeAt(screen, 8, 0); got == trailRune {
		t.Error("stroke ran past its end point")
	}
}

func TestTerminalSurface_FaintAlphaSkipped(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewTerminalSurface(screen, 8, 16)

	fireworks.DrawHeart(s, 40, 40, 10, minTerminalAlpha/2, 330)
	if got := runeAt(screen, 5, 2); got == heartRune {
		t.Error("a nearly transparent heart should not be drawn")
	}
}

func TestTerminalSurface_ClearRect(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	s := NewTerminalSurface(screen, 8, 16)

	fireworks.DrawHeart(s, 40, 40, 10, 1, 330)
	w, h := s.Size()
	s.ClearRect(0, 0, w, h)

	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if got := runeAt(screen, col, row); got != ' ' {
				t.Fatalf("cell (%d,%d) = %q after clear", col, row, got)
			}
		}
	}
}

func TestTerminalColorFadesToBlack(t *testing.T) {
	full := terminalColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255}, 1)
	half := terminalColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)

	fr, fg, fb := full.RGB()
	hr, hg, hb := half.RGB()
	if fr != 200 || fg != 100 || fb != 50 {
		t.Errorf("full = %d,%d,%d", fr, fg, fb)
	}
	if hr != 100 || hg != 50 || hb != 25 {
		t.Errorf("half = %d,%d,%d", hr, hg, hb)
	}
}
