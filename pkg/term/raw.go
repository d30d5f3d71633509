// ABOUTME: Raw mode controller with exact snapshot/restore of console state.
// ABOUTME: Nested enters flatten: only the first enter snapshots, only the first exit restores.

package term

// StartRaw enters raw terminal mode. A second call without an
// intervening EndRaw is a no-op, not a stack push.
//
// On the ANSI path this layer only tracks the logical flag; the TTY
// input collaborator owns the termios switch. On the console path the
// current attribute word, output mode, and code page are snapshotted,
// the code page is switched to UTF-8, and a minimal processed-output
// mode is installed. Native VT processing is left off because this
// layer does its own emulation.
func (t *Terminal) StartRaw() {
	if t.rawActive {
		return
	}
	if cw, ok := t.console(); ok {
		if info, err := cw.con.Info(); err == nil {
			t.origAttr = info.Attr
		}
		if mode, err := cw.con.Mode(); err == nil {
			t.origMode = mode
		}
		t.origCP = cw.con.OutputCP()
		cw.con.SetOutputCP(utf8CodePage)
		_ = cw.con.SetMode(ModeProcessedOutput | ModeLVBGrid)
	}
	t.rawActive = true
}

// EndRaw leaves raw mode, restoring every value captured by the
// matching StartRaw. A no-op when raw mode is not active.
func (t *Terminal) EndRaw() {
	if !t.rawActive {
		return
	}
	if cw, ok := t.console(); ok {
		_ = cw.con.SetMode(t.origMode)
		cw.con.SetOutputCP(t.origCP)
		_ = cw.con.SetAttr(t.origAttr)
	}
	t.rawActive = false
}

// IsRaw reports whether raw mode is currently active.
func (t *Terminal) IsRaw() bool { return t.rawActive }
