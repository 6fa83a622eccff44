package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI color.
type Color uint8

// Palette used by the snake renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightWhite
	ColorGray
)

// Semantic aliases for board elements.
const (
	ColorSnakeHead     = ColorBrightGreen
	ColorSnakeBody     = ColorGreen
	ColorParticle      = ColorBrightRed
	ColorParticleFaded = ColorRed
	ColorBorder        = ColorGray
	ColorHUD           = ColorBrightWhite
	ColorNotice        = ColorYellow
)
