package core

// Color is a foreground color for a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Palette used by the board and the HUD. Piece colors follow the usual
// guideline assignment.
const (
	ColorDefault Color = iota
	ColorCyan          // I
	ColorYellow        // O
	ColorBlue          // J
	ColorOrange        // L
	ColorPurple        // T
	ColorRed           // Z
	ColorGreen         // S
	ColorGray          // frame, ghost piece
	ColorWhite         // HUD text
	ColorDim           // hints
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorGray:
		return "gray"
	case ColorWhite:
		return "white"
	case ColorDim:
		return "dim"
	default:
		return "default"
	}
}

// ParseColor maps a color name back to its value. Unknown names give
// ColorDefault and false.
func ParseColor(name string) (Color, bool) {
	for c := ColorDefault; c <= ColorDim; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return ColorDefault, false
}
