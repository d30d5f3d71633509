// ABOUTME: Console abstracts the legacy console API the emulation path drives.
// ABOUTME: Implemented by the real Windows console and by VirtualConsole for tests.

package term

// Attr is a console attribute word using the classic console layout:
// low nibble foreground, next nibble background, plus line-drawing bits.
type Attr uint16

const (
	FgBlue      Attr = 0x0001
	FgGreen     Attr = 0x0002
	FgRed       Attr = 0x0004
	FgIntensity Attr = 0x0008
	BgBlue      Attr = 0x0010
	BgGreen     Attr = 0x0020
	BgRed       Attr = 0x0040
	BgIntensity Attr = 0x0080

	AttrReverse    Attr = 0x4000
	AttrUnderscore Attr = 0x8000

	fgMask Attr = 0x000f
	bgMask Attr = 0x00f0
)

// Console output mode bits, matching the console API values.
const (
	ModeProcessedOutput uint32 = 0x0001 // \r \n \b \a handling
	ModeWrapAtEOL       uint32 = 0x0002
	ModeVTProcessing    uint32 = 0x0004 // native ANSI; deliberately unused, this layer emulates
	ModeLVBGrid         uint32 = 0x0010 // underline rendering
)

// utf8CodePage is the output code page installed during raw mode.
const utf8CodePage uint32 = 65001

// Coord is a 0-based console buffer position.
type Coord struct {
	X, Y int
}

// Rect is an inclusive console window rectangle.
type Rect struct {
	Left, Top, Right, Bottom int
}

// BufferInfo is a snapshot of the console screen buffer.
type BufferInfo struct {
	Size   Coord // buffer dimensions: X columns, Y rows
	Cursor Coord // current cursor position
	Attr   Attr  // current text attribute
	Window Rect  // visible window within the buffer
}

// Console is the stateful, non-escape-based API the emulation path
// replays CSI sequences onto. Methods mirror the console calls the
// legacy platform provides; implementations own no policy.
type Console interface {
	Info() (BufferInfo, error)
	SetCursor(pos Coord) error
	SetAttr(attr Attr) error
	// Fill writes n copies of ch with attr starting at pos, advancing
	// through the buffer row by row without moving the cursor.
	Fill(pos Coord, n int, ch rune, attr Attr) error
	CursorVisible(visible bool) error
	WriteRaw(b []byte) (int, error)
	Mode() (uint32, error)
	SetMode(mode uint32) error
	OutputCP() uint32
	SetOutputCP(cp uint32)
}
