package core

// Color represents a foreground color for a screen cell.
// The platform maps each one to an ANSI terminal color.
type Color uint8

// Colors games may use. Pieces, tiles and board sides each pick from these;
// the terminal palette is chosen by the platform.
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

	colorCount
)

// NumColors is the number of defined colors.
const NumColors = int(colorCount)

// Cell is a single screen position: a glyph and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

// blank is the cleared cell value.
var blank = Cell{Rune: ' '}
