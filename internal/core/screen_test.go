package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	if got, want := s.String(), strings.Repeat(strings.Repeat(" ", 12)+"\n", 3)+strings.Repeat(" ", 12); got != want {
		t.Errorf("new screen not blank: %q", got)
	}

	if z := NewScreen(-3, -1); z.Width() != 0 || z.Height() != 0 {
		t.Errorf("negative size = %dx%d, expected 0x0", z.Width(), z.Height())
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(6, 3)

	for _, p := range [][2]int{{-1, 0}, {6, 0}, {0, -1}, {0, 3}} {
		s.SetColor(p[0], p[1], 'X', ColorRed)
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell%v = %+v, expected blank", p, c)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("Out-of-bounds writes leaked into the buffer")
	}

	s.DrawText(4, 1, "Snake")
	if got := s.Row(1); got != "    Sn" {
		t.Errorf("Row(1) = %q, expected text clipped at the right edge", got)
	}
	s.DrawText(-2, 2, "Snake")
	if got := s.Row(2); got != "ake   " {
		t.Errorf("Row(2) = %q, expected text clipped at the left edge", got)
	}
}

func TestScreenCellColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColor(1, 1, '█', ColorSnakeBody)
	s.DrawTextColor(3, 1, "ab", ColorHUD)
	s.Set(8, 2, '●')

	tests := []struct {
		x, y int
		want Cell
	}{
		{1, 1, Cell{'█', ColorSnakeBody}},
		{4, 1, Cell{'b', ColorHUD}},
		{8, 2, Cell{'●', ColorDefault}},
		{0, 0, blank},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, tt.y); got != tt.want {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tt.x, tt.y, got, tt.want)
		}
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != blank {
		t.Errorf("Clear should reset colors, got %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "▲▲▲", ColorSnakeHead)

	if got := s.Row(0); got != "    ▲▲▲    " {
		t.Errorf("Row(0) = %q, expected multibyte text centered by rune count", got)
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawRect(NewRect(0, 0, 7, 5), '.', ColorDim)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorWall)

	want := strings.Join([]string{
		".......",
		".┌───┐.",
		".│...│.",
		".└───┘.",
		".......",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}
	if c := s.GetCell(1, 1); c.Color != ColorWall {
		t.Errorf("box corner color = %v, expected wall color", c.Color)
	}
	if c := s.GetCell(2, 2); c.Color != ColorDim {
		t.Errorf("box interior color = %v, expected untouched fill", c.Color)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Score")
	s.DrawText(0, 5, "Bottom")

	s.Resize(3, 2)
	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 3x2", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Sco" {
		t.Errorf("Row(0) = %q after shrink", got)
	}

	s.Resize(8, 4)
	if got := s.Row(0); got != "Sco     " {
		t.Errorf("Row(0) = %q after grow, expected clipped content and blanks", got)
	}
	if got := s.Row(3); got != strings.Repeat(" ", 8) {
		t.Errorf("Row(3) = %q, expected blank row", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if got := s.Row(-1); got != "    " {
		t.Errorf("Row(-1) = %q, expected blanks", got)
	}
	if got := s.Row(2); got != "    " {
		t.Errorf("Row(2) = %q, expected blanks", got)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(9, 4)
	if got := s.Bounds(); got != NewRect(0, 0, 9, 4) {
		t.Errorf("Bounds() = %+v, expected 9x4 at the origin", got)
	}

	s.Resize(3, 2)
	if !s.Bounds().Contains(2, 1) || s.Bounds().Contains(3, 1) {
		t.Errorf("Bounds() = %+v did not follow the resize", s.Bounds())
	}
}
