// ABOUTME: Parses one CSI escape sequence into a tagged command for the emulation path.
// ABOUTME: Tolerant parameter scanning; anything unrecognized becomes csiUnknown.

package term

// csiKind discriminates the parsed command variants.
type csiKind int

const (
	csiUnknown csiKind = iota
	csiMove            // relative cursor move, dRow/dCol * count
	csiMoveTo          // absolute cursor move, 1-based row;col
	csiLineDown        // cursor down n lines, column one
	csiLineUp          // cursor up n lines, column one
	csiColumn          // absolute column on the current row
	csiEraseLine       // erase in line, mode in count
	csiClearScreen     // erase in display, mode in count
	csiSetAttr         // SGR attribute, code in count
	csiCursorVisible   // show/hide cursor, DEC private mode 25
	csiCursorSave      // one-slot cursor save
	csiCursorRestore   // restore the saved cursor
)

// csiCommand is one parsed CSI sequence. Field meaning depends on kind.
type csiCommand struct {
	kind       csiKind
	dRow, dCol int  // csiMove direction, each -1, 0, or 1
	row, col   int  // csiMoveTo target
	count      int  // repeat count, erase/clear mode, or SGR code
	visible    bool // csiCursorVisible
}

// parseCSI classifies a complete sequence of the shape ESC '[' ... final.
// Movement and erase counts default to 1, modes and attributes to 0,
// matching the terminals being emulated. Unknown final bytes and
// malformed parameter text degrade to csiUnknown, never an error.
func parseCSI(seq []byte) csiCommand {
	if len(seq) < 3 || seq[0] != 0x1b || seq[1] != '[' {
		return csiCommand{kind: csiUnknown}
	}
	params := seq[2 : len(seq)-1]

	switch seq[len(seq)-1] {
	case 'A':
		return csiCommand{kind: csiMove, dRow: -1, count: escParam(params, 1)}
	case 'B':
		return csiCommand{kind: csiMove, dRow: 1, count: escParam(params, 1)}
	case 'C':
		return csiCommand{kind: csiMove, dCol: 1, count: escParam(params, 1)}
	case 'D':
		return csiCommand{kind: csiMove, dCol: -1, count: escParam(params, 1)}
	case 'E':
		return csiCommand{kind: csiLineDown, count: escParam(params, 1)}
	case 'F':
		return csiCommand{kind: csiLineUp, count: escParam(params, 1)}
	case 'G':
		return csiCommand{kind: csiColumn, count: escParam(params, 1)}
	case 'H', 'f':
		row, col := escParam2(params, 1)
		return csiCommand{kind: csiMoveTo, row: row, col: col}
	case 'K':
		return csiCommand{kind: csiEraseLine, count: escParam(params, 0)}
	case 'J':
		return csiCommand{kind: csiClearScreen, count: escParam(params, 0)}
	case 'm':
		return csiCommand{kind: csiSetAttr, count: escParam(params, 0)}
	case 'h':
		if string(params) == "?25" {
			return csiCommand{kind: csiCursorVisible, visible: true}
		}
	case 'l':
		if string(params) == "?25" {
			return csiCommand{kind: csiCursorVisible, visible: false}
		}
	case 's':
		return csiCommand{kind: csiCursorSave}
	case 'u':
		return csiCommand{kind: csiCursorRestore}
	}
	return csiCommand{kind: csiUnknown}
}

// escParam reads the leading decimal integer of a parameter byte span,
// returning def when it is absent or does not start with a digit.
func escParam(params []byte, def int) int {
	n, ok := leadingInt(params)
	if !ok {
		return def
	}
	return n
}

// escParam2 reads up to two ';'-separated integers; each missing or
// unparsable position falls back to def independently.
func escParam2(params []byte, def int) (int, int) {
	first, second := def, def
	i := 0
	if n, ok := leadingInt(params); ok {
		first = n
		for i < len(params) && params[i] >= '0' && params[i] <= '9' {
			i++
		}
	}
	if i < len(params) && params[i] == ';' {
		if n, ok := leadingInt(params[i+1:]); ok {
			second = n
		}
	}
	return first, second
}

func leadingInt(b []byte) (int, bool) {
	if len(b) == 0 || b[0] < '0' || b[0] > '9' {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > 99999 {
			return 99999, true
		}
	}
	return n, true
}
