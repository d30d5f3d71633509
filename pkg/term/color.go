// ABOUTME: Named terminal colors as ANSI SGR foreground codes.
// ABOUTME: ColorNone and ColorDefault are sentinels that suppress emission.

package term

// Color is an ANSI SGR foreground color code. Background variants are
// derived by adding 10 at the point of use.
type Color int

const (
	// ColorNone means "do not change the color at all".
	ColorNone Color = 0

	ColorBlack     Color = 30
	ColorMaroon    Color = 31
	ColorGreen     Color = 32
	ColorOrange    Color = 33
	ColorNavy      Color = 34
	ColorPurple    Color = 35
	ColorTeal      Color = 36
	ColorLightGray Color = 37

	// ColorDefault leaves the terminal's configured default in place.
	ColorDefault Color = 39

	ColorDarkGray Color = 90
	ColorRed      Color = 91
	ColorLime     Color = 92
	ColorYellow   Color = 93
	ColorBlue     Color = 94
	ColorMagenta  Color = 95
	ColorCyan     Color = 96
	ColorWhite    Color = 97
)
