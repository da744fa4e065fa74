package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// Board element colors.
const (
	ColorSnakeHead = ColorBrightGreen
	ColorSnakeBody = ColorGreen
	ColorFood      = ColorBrightRed
	ColorWall      = ColorWhite
	ColorPortal    = ColorCyan // Border of a wrapping board
	ColorHUD       = ColorBrightYellow
	ColorDim       = ColorGray
)
