// ABOUTME: Platform strategy selection for ANSI-capable terminals.
// ABOUTME: POSIX terminals interpret CSI natively, so writes pass through.

//go:build !windows

package term

func newPlatformWriter() directWriter {
	return ansiWriter{}
}
