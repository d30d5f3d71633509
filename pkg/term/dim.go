// ABOUTME: Two-stage terminal dimension discovery: OS size query, then cursor-position probe.
// ABOUTME: Probe failure is never an error; cached dimensions are left untouched.

package term

import (
	"strconv"
	"strings"

	xterm "golang.org/x/term"

	"github.com/mauromedda/termctl/internal/log"
)

// UpdateDim re-probes the terminal size and reports whether the cached
// width or height changed. A probe that cannot determine a dimension
// leaves the previous value unchanged.
func (t *Terminal) UpdateDim() bool {
	var cols, rows int
	if cw, ok := t.console(); ok {
		if info, err := cw.con.Info(); err == nil {
			cols = info.Window.Right - info.Window.Left + 1
			rows = info.Window.Bottom - info.Window.Top + 1
		}
	} else {
		cols, rows = t.sysSize()
		if cols <= 0 || rows <= 0 {
			// Debuggers and ptys without a size report zero; fall back
			// to asking the terminal where an out-of-range move lands.
			cols, rows = t.probeSize()
		}
	}
	log.Debug("term: dimensions %dx%d", cols, rows)

	changed := false
	if cols > 0 && cols != t.width {
		t.width = cols
		changed = true
	}
	if rows > 0 && rows != t.height {
		t.height = rows
		changed = true
	}
	return changed
}

// sysSize queries the OS window-size facility on the sink.
func (t *Terminal) sysSize() (cols, rows int) {
	if t.fd < 0 {
		return 0, 0
	}
	w, h, err := xterm.GetSize(t.fd)
	if err != nil {
		log.Debug("term: size query failed: %v", err)
		return 0, 0
	}
	return w, h
}

// probeSize measures the terminal by the cursor-report protocol: save
// the cursor position, move far out of range so the terminal clamps to
// its true last cell, read where it landed, and move back. Any failure
// aborts with 0,0 and the cursor restored where possible.
func (t *Terminal) probeSize() (cols, rows int) {
	row0, col0, ok := t.queryCursorPos()
	if !ok {
		log.Debug("term: cursor-position probe failed")
		return 0, 0
	}
	t.setCursorPos(999, 999)
	if row1, col1, ok := t.queryCursorPos(); ok {
		cols, rows = col1, row1
	}
	t.setCursorPos(row0, col0)
	return cols, rows
}

// queryCursorPos writes a report-cursor-position request and parses
// the ESC [ row ; col R reply from the input collaborator. Any
// unexpected byte aborts the parse.
func (t *Terminal) queryCursorPos() (row, col int, ok bool) {
	if t.reader == nil {
		return 0, 0, false
	}
	if err := t.Write(csi + "6n"); err != nil {
		return 0, 0, false
	}

	if c, got := t.reader.ReadChar(); !got || c != 0x1b {
		return 0, 0, false
	}
	if c, got := t.reader.ReadChar(); !got || c != '[' {
		return 0, 0, false
	}
	var params []byte
	for len(params) < 63 {
		c, got := t.reader.ReadChar()
		if !got {
			return 0, 0, false
		}
		if c >= '0' && c <= '9' || c == ';' {
			params = append(params, c)
			continue
		}
		if c != 'R' {
			return 0, 0, false
		}
		break
	}

	first, second, found := strings.Cut(string(params), ";")
	if !found {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(first)
	c, err2 := strconv.Atoi(second)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return r, c, true
}

func (t *Terminal) setCursorPos(row, col int) {
	_ = t.Writef(csi+"%d;%dH", row, col)
}
