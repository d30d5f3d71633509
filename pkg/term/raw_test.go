// ABOUTME: Tests for raw-mode enter/exit: exact console state restore and nesting flattening.
// ABOUTME: Also covers the flag-only behavior on the pass-through path.

package term

import "testing"

// newConsoleTerminalRaw builds a console-backed Terminal with a
// non-default attribute, mode, and code page pre-installed so restores
// are observable.
func newConsoleTerminalRaw(t *testing.T) (*Terminal, *VirtualConsole) {
	t.Helper()
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")
	vc := NewVirtualConsole(80, 25)
	_ = vc.SetAttr(FgGreen | BgBlue)
	_ = vc.SetMode(ModeProcessedOutput | ModeWrapAtEOL)
	vc.SetOutputCP(437)
	return New(WithConsole(vc)), vc
}

func TestStartRawInstallsConsoleState(t *testing.T) {
	tr, vc := newConsoleTerminalRaw(t)

	tr.StartRaw()
	if !tr.IsRaw() {
		t.Fatal("IsRaw() = false after StartRaw")
	}
	if got := vc.OutputCP(); got != utf8CodePage {
		t.Errorf("code page = %d, want %d", got, utf8CodePage)
	}
	mode, err := vc.Mode()
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(ModeProcessedOutput | ModeLVBGrid); mode != want {
		t.Errorf("mode = %#x, want %#x", mode, want)
	}
}

func TestEndRawRestoresSnapshotExactly(t *testing.T) {
	tr, vc := newConsoleTerminalRaw(t)

	tr.StartRaw()
	// Scribble over every piece of state raw mode is responsible for.
	_ = tr.Write("\x1b[31m\x1b[4m")
	vc.SetOutputCP(850)
	tr.EndRaw()

	if tr.IsRaw() {
		t.Error("IsRaw() = true after EndRaw")
	}
	if got := vc.CurrentAttr(); got != FgGreen|BgBlue {
		t.Errorf("attr = %#x, want restored %#x", got, FgGreen|BgBlue)
	}
	if got := vc.OutputCP(); got != 437 {
		t.Errorf("code page = %d, want restored 437", got)
	}
	mode, err := vc.Mode()
	if err != nil {
		t.Fatal(err)
	}
	if want := uint32(ModeProcessedOutput | ModeWrapAtEOL); mode != want {
		t.Errorf("mode = %#x, want restored %#x", mode, want)
	}
}

func TestNestedStartRawFlattens(t *testing.T) {
	tr, vc := newConsoleTerminalRaw(t)

	tr.StartRaw()
	// A second enter must not re-snapshot the already-modified state.
	vc.SetOutputCP(850)
	tr.StartRaw()
	tr.EndRaw()

	if tr.IsRaw() {
		t.Error("one EndRaw must fully leave raw mode")
	}
	if got := vc.OutputCP(); got != 437 {
		t.Errorf("code page = %d, want the first snapshot's 437", got)
	}
}

func TestEndRawWithoutStartIsNoop(t *testing.T) {
	tr, vc := newConsoleTerminalRaw(t)

	vc.SetOutputCP(850)
	tr.EndRaw()
	if got := vc.OutputCP(); got != 850 {
		t.Errorf("code page = %d, EndRaw without StartRaw must not touch state", got)
	}
}

func TestRawModeFlagOnlyOnPassThroughPath(t *testing.T) {
	tr, w := newTestTerminal(t)

	tr.StartRaw()
	if !tr.IsRaw() {
		t.Error("IsRaw() = false after StartRaw")
	}
	tr.EndRaw()
	if tr.IsRaw() {
		t.Error("IsRaw() = true after EndRaw")
	}
	// No console to reconfigure: the sink must stay silent.
	if w.writes != 0 {
		t.Errorf("expected no writes, got %d", w.writes)
	}
}
