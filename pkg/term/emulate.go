// ABOUTME: Direct-write strategy that replays CSI sequences through the Console API.
// ABOUTME: Hides the cursor for the whole write and dispatches parsed commands by variant.

package term

import (
	"fmt"

	"github.com/mauromedda/termctl/pkg/term/internal/scan"
)

// consoleColors maps the low 3 bits of an SGR color code to console
// color bits: black, maroon, green, orange, navy, purple, teal, gray.
var consoleColors = [8]Attr{
	0,
	FgRed,
	FgGreen,
	FgRed | FgGreen,
	FgBlue,
	FgRed | FgBlue,
	FgGreen | FgBlue,
	FgRed | FgGreen | FgBlue,
}

// consoleWriter emulates ANSI escape sequences on a Console that has
// no interpreter of its own. Row/col arithmetic converts between
// 1-based ANSI parameters and the 0-based console coordinates.
type consoleWriter struct {
	con         Console
	defaultAttr Attr  // attribute word captured at creation
	save        Coord // one-slot cursor save, not a stack
	haveSave    bool
	visible     bool // visibility the caller last requested
}

func newConsoleWriter(con Console) *consoleWriter {
	w := &consoleWriter{
		con:         con,
		defaultAttr: FgRed | FgGreen | FgBlue,
		visible:     true,
	}
	if info, err := con.Info(); err == nil {
		w.defaultAttr = info.Attr
	}
	return w
}

// console returns the emulation strategy when this Terminal drives a
// legacy console, for the raw-mode and dimension paths that need the
// Console handle.
func (t *Terminal) console() (*consoleWriter, bool) {
	cw, ok := t.dw.(*consoleWriter)
	return cw, ok
}

func (w *consoleWriter) writeDirect(t *Terminal, b []byte) error {
	// Keep the cursor hidden during the whole write to reduce flicker,
	// then restore whatever visibility the caller last asked for.
	_ = w.con.CursorVisible(false)
	defer func() { _ = w.con.CursorVisible(w.visible) }()

	pos := 0
	for pos < len(b) {
		// Write printable runs in bulk.
		run := 0
		var next int
		for {
			next = scan.NextOffset(b, pos+run)
			if next <= 0 || b[pos+run] < 0x20 {
				break
			}
			run += next
		}
		if run > 0 {
			if _, err := w.con.WriteRaw(b[pos : pos+run]); err != nil {
				return fmt.Errorf("console write: %w", err)
			}
			pos += run
		}
		if next <= 0 {
			break
		}

		if next > 1 && b[pos] == 0x1b {
			w.handleEscape(t, b[pos:pos+next])
		} else {
			// Bare control byte; the console's processed-output mode
			// interprets it.
			if _, err := w.con.WriteRaw(b[pos : pos+next]); err != nil {
				return fmt.Errorf("console write: %w", err)
			}
		}
		pos += next
	}
	return nil
}

// handleEscape emulates one escape sequence. Unrecognized or malformed
// sequences are silently ignored for forward compatibility.
func (w *consoleWriter) handleEscape(t *Terminal, seq []byte) {
	if !scan.IsCSI(seq) {
		return
	}
	cmd := parseCSI(seq)
	switch cmd.kind {
	case csiMove:
		w.moveRelative(cmd.dRow*cmd.count, cmd.dCol*cmd.count)
	case csiMoveTo:
		w.moveTo(cmd.row, cmd.col)
	case csiLineDown:
		if row, _, ok := w.cursorPos(); ok {
			w.moveTo(row+cmd.count, 1)
		}
	case csiLineUp:
		if row, _, ok := w.cursorPos(); ok {
			w.moveTo(row-cmd.count, 1)
		}
	case csiColumn:
		if row, _, ok := w.cursorPos(); ok {
			w.moveTo(row, cmd.count)
		}
	case csiEraseLine:
		w.eraseLine(cmd.count)
	case csiClearScreen:
		w.clearScreen(cmd.count)
	case csiSetAttr:
		w.applyAttr(t, cmd.count)
	case csiCursorVisible:
		w.visible = cmd.visible
		_ = w.con.CursorVisible(cmd.visible)
	case csiCursorSave:
		if info, err := w.con.Info(); err == nil {
			w.save = info.Cursor
			w.haveSave = true
		}
	case csiCursorRestore:
		if w.haveSave {
			_ = w.con.SetCursor(w.save)
		}
	}
}

// cursorPos returns the 1-based cursor row and column.
func (w *consoleWriter) cursorPos() (row, col int, ok bool) {
	info, err := w.con.Info()
	if err != nil {
		return 0, 0, false
	}
	return info.Cursor.Y + 1, info.Cursor.X + 1, true
}

// moveTo places the cursor at a 1-based row;col, clamped to the
// console's buffer bounds.
func (w *consoleWriter) moveTo(row, col int) {
	info, err := w.con.Info()
	if err != nil {
		return
	}
	col = min(max(col, 1), info.Size.X)
	row = min(max(row, 1), info.Size.Y)
	_ = w.con.SetCursor(Coord{X: col - 1, Y: row - 1})
}

func (w *consoleWriter) moveRelative(dRow, dCol int) {
	info, err := w.con.Info()
	if err != nil {
		return
	}
	w.moveTo(info.Cursor.Y+1+dRow, info.Cursor.X+1+dCol)
}

// eraseLine implements CSI K: mode 0 erases from the cursor to the end
// of the line, 1 from the start of the line through the cursor, 2 the
// whole line. The cursor does not move.
func (w *consoleWriter) eraseLine(mode int) {
	info, err := w.con.Info()
	if err != nil {
		return
	}
	var start Coord
	var length int
	switch mode {
	case 1:
		start = Coord{X: 0, Y: info.Cursor.Y}
		length = info.Cursor.X + 1
	case 2:
		start = Coord{X: 0, Y: info.Cursor.Y}
		length = info.Window.Right + 1
	default:
		start = info.Cursor
		length = info.Window.Right - info.Cursor.X + 1
	}
	_ = w.con.Fill(start, length, ' ', 0)
}

// clearScreen implements CSI J: mode 0 clears from the cursor to the
// end of the screen, 1 from the top through the cursor, 2 everything.
func (w *consoleWriter) clearScreen(mode int) {
	info, err := w.con.Info()
	if err != nil {
		return
	}
	width := info.Size.X
	var start Coord
	var length int
	switch mode {
	case 2:
		start = Coord{}
		length = width * info.Size.Y
	case 1:
		start = Coord{}
		length = width*info.Cursor.Y + info.Cursor.X + 1
	default:
		start = info.Cursor
		length = width*(info.Size.Y-info.Cursor.Y) - info.Cursor.X
	}
	_ = w.con.Fill(start, length, ' ', 0)
}

// applyAttr maps one SGR code onto the console attribute word.
// Color codes are suppressed when color is disabled; reset (0) always
// restores the attribute captured at Terminal creation.
func (w *consoleWriter) applyAttr(t *Terminal, code int) {
	info, err := w.con.Info()
	if err != nil {
		return
	}
	cur := info.Attr
	attr := cur
	switch {
	case code == 0:
		attr = w.defaultAttr
	case code == 4:
		attr |= AttrUnderscore
	case code == 24:
		attr &^= AttrUnderscore
	case code == 7:
		attr |= AttrReverse
	case code == 27:
		attr &^= AttrReverse
	case t.noColor:
		// Color is a policy choice to suppress; everything above is
		// structural and still applies.
	case code >= 30 && code <= 37:
		attr = attr&^fgMask | consoleColors[code-30]
	case code >= 90 && code <= 97:
		attr = attr&^fgMask | consoleColors[code-90] | FgIntensity
	case code >= 40 && code <= 47:
		attr = attr&^bgMask | consoleColors[code-40]<<4
	case code >= 100 && code <= 107:
		attr = attr&^bgMask | consoleColors[code-100]<<4 | BgIntensity
	case code == 39:
		attr = attr&^fgMask | w.defaultAttr&fgMask
	case code == 49:
		attr = attr&^bgMask | w.defaultAttr&bgMask
	}
	if attr != cur {
		_ = w.con.SetAttr(attr)
	}
}
