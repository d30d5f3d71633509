// ABOUTME: VirtualConsole implements Console as an in-memory cell grid for tests.
// ABOUTME: Tracks cursor, attributes, visibility, mode, and code page like a real console.

package term

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// consoleCell is one character cell of the virtual screen buffer.
type consoleCell struct {
	ch   rune
	attr Attr
}

// VirtualConsole is a fake Console for unit tests of the emulation
// path and of code layered on this package. It models the parts of a
// legacy console that matter here: a cell grid, a cursor, a current
// attribute word, cursor visibility, an output mode, and a code page.
type VirtualConsole struct {
	size    Coord
	cursor  Coord
	attr    Attr
	visible bool
	mode    uint32
	cp      uint32
	beeps   int
	cells   []consoleCell
}

// defaultVirtualAttr is light gray on black, the classic console default.
const defaultVirtualAttr = FgRed | FgGreen | FgBlue

// NewVirtualConsole returns a VirtualConsole with the given buffer
// dimensions, a visible cursor at the origin, and default attributes.
func NewVirtualConsole(width, height int) *VirtualConsole {
	v := &VirtualConsole{
		size:    Coord{X: width, Y: height},
		attr:    defaultVirtualAttr,
		visible: true,
		mode:    ModeProcessedOutput | ModeWrapAtEOL,
		cp:      437,
		cells:   make([]consoleCell, width*height),
	}
	v.blank(0, len(v.cells), v.attr)
	return v
}

func (v *VirtualConsole) blank(from, n int, attr Attr) {
	for i := from; i < from+n && i < len(v.cells); i++ {
		v.cells[i] = consoleCell{ch: ' ', attr: attr}
	}
}

func (v *VirtualConsole) index(pos Coord) int {
	return pos.Y*v.size.X + pos.X
}

// Info returns the current buffer snapshot. The visible window always
// spans the whole buffer.
func (v *VirtualConsole) Info() (BufferInfo, error) {
	return BufferInfo{
		Size:   v.size,
		Cursor: v.cursor,
		Attr:   v.attr,
		Window: Rect{Left: 0, Top: 0, Right: v.size.X - 1, Bottom: v.size.Y - 1},
	}, nil
}

// SetCursor moves the cursor. Out-of-bounds positions are clamped to
// the buffer, mirroring how a console rejects rather than scrolls.
func (v *VirtualConsole) SetCursor(pos Coord) error {
	pos.X = min(max(pos.X, 0), v.size.X-1)
	pos.Y = min(max(pos.Y, 0), v.size.Y-1)
	v.cursor = pos
	return nil
}

// SetAttr sets the attribute used for subsequent writes.
func (v *VirtualConsole) SetAttr(attr Attr) error {
	v.attr = attr
	return nil
}

// Fill writes n copies of ch with attr starting at pos. The cursor
// does not move.
func (v *VirtualConsole) Fill(pos Coord, n int, ch rune, attr Attr) error {
	from := v.index(pos)
	for i := from; i < from+n && i < len(v.cells); i++ {
		v.cells[i] = consoleCell{ch: ch, attr: attr}
	}
	return nil
}

// CursorVisible shows or hides the cursor.
func (v *VirtualConsole) CursorVisible(visible bool) error {
	v.visible = visible
	return nil
}

// WriteRaw writes printable text and control bytes at the cursor,
// advancing by display width and honoring the processed-output mode
// for \r, \n, \b, and \a.
func (v *VirtualConsole) WriteRaw(b []byte) (int, error) {
	for _, r := range string(b) {
		switch {
		case r == '\r' && v.mode&ModeProcessedOutput != 0:
			v.cursor.X = 0
		case r == '\n' && v.mode&ModeProcessedOutput != 0:
			v.lineFeed()
		case r == '\b' && v.mode&ModeProcessedOutput != 0:
			if v.cursor.X > 0 {
				v.cursor.X--
			}
		case r == '\a' && v.mode&ModeProcessedOutput != 0:
			v.beeps++
		default:
			v.put(r)
		}
	}
	return len(b), nil
}

func (v *VirtualConsole) lineFeed() {
	v.cursor.X = 0
	if v.cursor.Y < v.size.Y-1 {
		v.cursor.Y++
		return
	}
	// Scroll the buffer up one row.
	copy(v.cells, v.cells[v.size.X:])
	v.blank(len(v.cells)-v.size.X, v.size.X, v.attr)
}

func (v *VirtualConsole) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if v.cursor.X+w > v.size.X {
		if v.mode&ModeWrapAtEOL == 0 {
			return
		}
		v.lineFeed()
	}
	i := v.index(v.cursor)
	v.cells[i] = consoleCell{ch: r, attr: v.attr}
	for k := 1; k < w; k++ {
		v.cells[i+k] = consoleCell{ch: 0, attr: v.attr}
	}
	v.cursor.X += w
	if v.cursor.X >= v.size.X && v.mode&ModeWrapAtEOL != 0 {
		v.lineFeed()
	}
}

// Mode returns the current output mode bits.
func (v *VirtualConsole) Mode() (uint32, error) {
	return v.mode, nil
}

// SetMode replaces the output mode bits.
func (v *VirtualConsole) SetMode(mode uint32) error {
	v.mode = mode
	return nil
}

// OutputCP returns the current output code page.
func (v *VirtualConsole) OutputCP() uint32 { return v.cp }

// SetOutputCP replaces the output code page.
func (v *VirtualConsole) SetOutputCP(cp uint32) { v.cp = cp }

// --- Test helpers (not part of Console) ---

// Cursor returns the current cursor position.
func (v *VirtualConsole) Cursor() Coord { return v.cursor }

// CurrentAttr returns the attribute used for subsequent writes.
func (v *VirtualConsole) CurrentAttr() Attr { return v.attr }

// IsCursorVisible reports cursor visibility.
func (v *VirtualConsole) IsCursorVisible() bool { return v.visible }

// Beeps returns how many BEL bytes were processed.
func (v *VirtualConsole) Beeps() int { return v.beeps }

// CharAt returns the character stored at a cell.
func (v *VirtualConsole) CharAt(x, y int) rune {
	return v.cells[y*v.size.X+x].ch
}

// AttrAt returns the attribute stored at a cell.
func (v *VirtualConsole) AttrAt(x, y int) Attr {
	return v.cells[y*v.size.X+x].attr
}

// Row returns the text of row y with trailing blanks trimmed.
func (v *VirtualConsole) Row(y int) string {
	var sb strings.Builder
	for x := 0; x < v.size.X; x++ {
		if ch := v.cells[y*v.size.X+x].ch; ch != 0 {
			sb.WriteRune(ch)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// SetSize resizes the buffer, clearing its contents. Used by tests
// that exercise dimension re-probing on the console path.
func (v *VirtualConsole) SetSize(width, height int) {
	v.size = Coord{X: width, Y: height}
	v.cells = make([]consoleCell, width*height)
	v.blank(0, len(v.cells), v.attr)
	v.cursor = Coord{}
}
