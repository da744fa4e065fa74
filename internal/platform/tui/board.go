package tui

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

// Each board cell is two terminal columns wide so the grid looks square.
const cellWidth = 2

// BoardView carries what the renderer shows besides the state itself.
type BoardView struct {
	Title    string // Left side of the HUD
	Best     int    // Best score to display, 0 hides it
	Banner   string // Extra line under the game-over overlay
	Spectate bool
}

// BoardSize returns the screen cells needed to draw a board of size n,
// including the HUD line and border.
func BoardSize(n int) (w, h int) {
	return n*cellWidth + 2, n + 3
}

// DrawBoard renders s into dst: HUD on the first line, the bordered board
// centered below it, and a pause or game-over overlay when relevant.
func DrawBoard(dst *core.Screen, s snake.State, v BoardView) {
	dst.Clear()

	w, h := BoardSize(s.Size)
	if dst.Width() < w || dst.Height() < h {
		drawOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()),
			"Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	drawHUD(dst, s, v)

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	box := area.Centered(w, h-1)
	drawBorder(dst, box, s.Mode)

	origin := func(p snake.Position) (int, int) {
		return box.X + 1 + p.X*cellWidth, box.Y + 1 + p.Y
	}

	fx, fy := origin(s.Food)
	dst.SetColor(fx, fy, '●', core.ColorFood)

	// Tail first so the head wins if a finished run overlaps itself.
	for i := len(s.Snake) - 1; i >= 0; i-- {
		x, y := origin(s.Snake[i])
		if i == 0 {
			r := headRune(s.Direction)
			if s.GameOver {
				dst.SetColor(x, y, '✖', core.ColorBrightRed)
				dst.SetColor(x+1, y, ' ', core.ColorDefault)
				continue
			}
			dst.SetColor(x, y, r, core.ColorSnakeHead)
			dst.SetColor(x+1, y, r, core.ColorSnakeHead)
			continue
		}
		dst.SetColor(x, y, '█', core.ColorSnakeBody)
		dst.SetColor(x+1, y, '█', core.ColorSnakeBody)
	}

	switch {
	case s.GameOver:
		line2 := "R: restart  B: menu"
		if v.Spectate {
			line2 = "Restarting..."
		}
		drawOverlay(dst, box, fmt.Sprintf("Game Over - %d", s.Score), line2)
		if v.Banner != "" {
			dst.DrawTextCentered(box.Bottom(), v.Banner, core.ColorHUD)
		}
	case s.Paused:
		drawOverlay(dst, box, "Paused", "P: continue  B: menu")
	}
}

func headRune(d snake.Direction) rune {
	switch d {
	case snake.Up:
		return '▲'
	case snake.Down:
		return '▼'
	case snake.Left:
		return '◀'
	default:
		return '▶'
	}
}

func drawHUD(dst *core.Screen, s snake.State, v BoardView) {
	title := v.Title
	if title == "" {
		title = "Snake"
	}
	if v.Spectate {
		title += " [AI]"
	}
	left := fmt.Sprintf(" %s  Score: %d  Length: %d", title, s.Score, s.Len())
	dst.DrawTextColor(0, 0, left, core.ColorHUD)

	right := fmt.Sprintf("%s  %dms ", s.Mode.Title(), s.TickInterval.Milliseconds())
	if v.Best > 0 {
		right = fmt.Sprintf("Best: %d  ", v.Best) + right
	}
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, core.ColorDim)
}

// drawBorder uses a solid frame for walls and a dotted one for pass-through edges.
func drawBorder(dst *core.Screen, r core.Rect, mode snake.BoundaryMode) {
	if mode == snake.Bounded {
		dst.DrawBox(r, core.ColorWall)
		return
	}
	c := core.ColorPortal
	dst.SetColor(r.X, r.Y, '┌', c)
	dst.SetColor(r.Right()-1, r.Y, '┐', c)
	dst.SetColor(r.X, r.Bottom()-1, '└', c)
	dst.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)
	for x := r.X + 1; x < r.Right()-1; x++ {
		dst.SetColor(x, r.Y, '┄', c)
		dst.SetColor(x, r.Bottom()-1, '┄', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		dst.SetColor(r.X, y, '┆', c)
		dst.SetColor(r.Right()-1, y, '┆', c)
	}
}

// drawOverlay draws a two-line message box centered in area.
func drawOverlay(dst *core.Screen, area core.Rect, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := area.Centered(w, 4)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHUD)
	dst.DrawTextColor(box.X+(w-len([]rune(line1)))/2, box.Y+1, line1, core.ColorHUD)
	dst.DrawTextColor(box.X+(w-len([]rune(line2)))/2, box.Y+2, line2, core.ColorDefault)
}
