package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these onto ANSI 256-color codes.
type Color uint8

// Palette used by fighters, particles and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightBlue
	ColorOrange
	ColorGray
	ColorBrown
	ColorPurple
)
