package core

// Color represents a foreground color for a screen cell. The platform maps
// each value to a terminal color.
type Color uint8

// Palette used by the renderer. Piece colors follow the usual convention
// (I cyan, O yellow, T magenta, S green, Z red, J blue, L orange).
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightWhite
	ColorBrightYellow
)
