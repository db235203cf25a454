package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Colors available to games.
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
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tilePalette is the color cycle assigned to tile types by registration order.
var tilePalette = []Color{
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightBlue,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
}

// TileColor returns the color for the i-th registered tile type.
// Indices past the palette wrap around; negative indices get ColorGray.
func TileColor(i int) Color {
	if i < 0 {
		return ColorGray
	}
	return tilePalette[i%len(tilePalette)]
}
