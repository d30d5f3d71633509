// ABOUTME: Platform strategy selection for the legacy Windows console.
// ABOUTME: Pre-Win10 consoles have no ANSI interpreter, so CSI is emulated.

//go:build windows

package term

func newPlatformWriter() directWriter {
	return newConsoleWriter(newWindowsConsole())
}
