// ABOUTME: Tests for the VirtualConsole cell grid: wrapping, scrolling, fills, and clamping.
// ABOUTME: Exercises display-width advancement for wide runes.

package term

import "testing"

func TestVirtualConsoleWriteAdvancesCursor(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	if _, err := vc.WriteRaw([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if got := vc.Cursor(); got != (Coord{X: 3, Y: 0}) {
		t.Errorf("cursor = %+v, want {X:3 Y:0}", got)
	}
	if got := vc.Row(0); got != "abc" {
		t.Errorf("row = %q, want %q", got, "abc")
	}
}

func TestVirtualConsoleWideRuneOccupiesTwoCells(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	if _, err := vc.WriteRaw([]byte("漢a")); err != nil {
		t.Fatal(err)
	}
	if got := vc.Cursor(); got != (Coord{X: 3, Y: 0}) {
		t.Errorf("cursor = %+v, want {X:3 Y:0} after wide rune", got)
	}
	if got := vc.CharAt(0, 0); got != '漢' {
		t.Errorf("cell (0,0) = %q, want wide rune", got)
	}
	if got := vc.CharAt(2, 0); got != 'a' {
		t.Errorf("cell (2,0) = %q, want 'a'", got)
	}
}

func TestVirtualConsoleWrapsAtLineEnd(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(4, 3)

	if _, err := vc.WriteRaw([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	if got := vc.Row(0); got != "abcd" {
		t.Errorf("row 0 = %q, want %q", got, "abcd")
	}
	if got := vc.Row(1); got != "ef" {
		t.Errorf("row 1 = %q, want %q", got, "ef")
	}
}

func TestVirtualConsoleScrollsAtBottom(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(5, 2)

	if _, err := vc.WriteRaw([]byte("one\ntwo\nsix")); err != nil {
		t.Fatal(err)
	}
	// Two line feeds on a 2-row buffer scroll "one" off the top.
	if got := vc.Row(0); got != "two" {
		t.Errorf("row 0 = %q, want %q", got, "two")
	}
	if got := vc.Row(1); got != "six" {
		t.Errorf("row 1 = %q, want %q", got, "six")
	}
}

func TestVirtualConsoleSetCursorClamps(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	if err := vc.SetCursor(Coord{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	if got := vc.Cursor(); got != (Coord{X: 9, Y: 2}) {
		t.Errorf("cursor = %+v, want clamped {X:9 Y:2}", got)
	}

	if err := vc.SetCursor(Coord{X: -4, Y: -1}); err != nil {
		t.Fatal(err)
	}
	if got := vc.Cursor(); got != (Coord{X: 0, Y: 0}) {
		t.Errorf("cursor = %+v, want clamped origin", got)
	}
}

func TestVirtualConsoleFillClipsAtBufferEnd(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(4, 2)

	// Overshooting fill must not panic and stops at the last cell.
	if err := vc.Fill(Coord{X: 2, Y: 1}, 99, '#', 0); err != nil {
		t.Fatal(err)
	}
	if got := vc.Row(1); got != "  ##" {
		t.Errorf("row 1 = %q, want %q", got, "  ##")
	}
}

func TestVirtualConsoleFillDoesNotMoveCursor(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	_ = vc.SetCursor(Coord{X: 5, Y: 1})
	_ = vc.Fill(Coord{X: 0, Y: 0}, 10, ' ', 0)
	if got := vc.Cursor(); got != (Coord{X: 5, Y: 1}) {
		t.Errorf("cursor = %+v, want unmoved", got)
	}
}

func TestVirtualConsoleModeAndCodePage(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	if err := vc.SetMode(ModeProcessedOutput); err != nil {
		t.Fatal(err)
	}
	mode, err := vc.Mode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != ModeProcessedOutput {
		t.Errorf("mode = %#x, want %#x", mode, ModeProcessedOutput)
	}

	vc.SetOutputCP(utf8CodePage)
	if got := vc.OutputCP(); got != utf8CodePage {
		t.Errorf("code page = %d, want %d", got, utf8CodePage)
	}
}

func TestVirtualConsoleRawModeDisablesControlHandling(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	// Without processed output, CR no longer resets the column and BEL
	// no longer rings.
	if err := vc.SetMode(0); err != nil {
		t.Fatal(err)
	}
	if _, err := vc.WriteRaw([]byte("a\r\a")); err != nil {
		t.Fatal(err)
	}
	if got := vc.Cursor(); got.X != 1 {
		t.Errorf("cursor X = %d, want 1 (CR not interpreted)", got.X)
	}
	if got := vc.Beeps(); got != 0 {
		t.Errorf("beeps = %d, want 0", got)
	}
}

func TestVirtualConsoleSetSize(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 3)

	_, _ = vc.WriteRaw([]byte("junk"))
	vc.SetSize(6, 2)

	info, err := vc.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != (Coord{X: 6, Y: 2}) {
		t.Errorf("size = %+v, want {X:6 Y:2}", info.Size)
	}
	if info.Window != (Rect{Left: 0, Top: 0, Right: 5, Bottom: 1}) {
		t.Errorf("window = %+v, want full buffer", info.Window)
	}
	if got := vc.Row(0); got != "" {
		t.Errorf("row 0 = %q, want cleared", got)
	}
}
