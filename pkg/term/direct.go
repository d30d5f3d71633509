// ABOUTME: directWriter is the platform-selected strategy behind every unbuffered write.
// ABOUTME: ANSI terminals get pass-through/strip; legacy consoles get per-sequence emulation.

package term

// directWriter performs one physical write. The two implementations
// must produce observably identical effects from the same byte range:
// ansiWriter hands CSI sequences to a terminal that interprets them,
// consoleWriter replays each sequence through a Console API. The
// strategy is selected once at construction and never changes.
type directWriter interface {
	writeDirect(t *Terminal, b []byte) error
}
