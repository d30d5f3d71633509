// ABOUTME: Terminal owns the output sink, cached dimensions, policy flags, and the output buffer.
// ABOUTME: Routes every write through the buffer or the platform direct-write strategy.

package term

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mauromedda/termctl/internal/log"
)

// csi is the Control Sequence Introducer prefix shared by every escape
// this package emits: ESC '[' <params> <final byte>.
const csi = "\x1b["

// CharReader is the single primitive consumed from the external TTY
// input reader. ReadChar returns the next input byte, or ok=false when
// no byte is promptly available. It is used only to read back the
// ESC[row;colR cursor-position report during dimension probing.
type CharReader interface {
	ReadChar() (byte, bool)
}

// Terminal is the cross-platform terminal control layer. It is mutable
// shared state with no internal locking; callers must not use one
// Terminal from multiple goroutines without external synchronization.
type Terminal struct {
	out    io.Writer
	fd     int // -1 when the sink is not an *os.File
	width  int
	height int

	noColor bool
	silent  bool

	rawActive bool
	buffered  bool
	buf       *bytes.Buffer

	reader CharReader
	dw     directWriter
	closed bool

	// Console shadow state, captured by StartRaw and restored by EndRaw.
	// Valid only while rawActive is true.
	origAttr Attr
	origMode uint32
	origCP   uint32
}

// Option configures a Terminal at creation time.
type Option func(*options)

type options struct {
	out     io.Writer
	noColor bool
	silent  bool
	reader  CharReader
	console Console
}

// WithOutput sets the output sink. Defaults to os.Stdout. The sink is
// borrowed for the Terminal's lifetime and never closed by this layer.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithNoColor starts the Terminal with color output suppressed.
func WithNoColor() Option {
	return func(o *options) { o.noColor = true }
}

// WithSilent starts the Terminal with the audible bell suppressed.
func WithSilent() Option {
	return func(o *options) { o.silent = true }
}

// WithReader injects the TTY input collaborator used by the
// cursor-position fallback of UpdateDim. Without it the fallback probe
// fails closed and cached dimensions are left untouched.
func WithReader(r CharReader) Option {
	return func(o *options) { o.reader = r }
}

// WithConsole forces the ANSI-to-console emulation strategy on the
// given console. Used on platforms without a native ANSI interpreter
// and by tests running against a VirtualConsole.
func WithConsole(c Console) Option {
	return func(o *options) { o.console = c }
}

// New creates a Terminal writing to os.Stdout unless overridden.
// Dimensions default to 80x25, refined first from the COLUMNS/LINES
// environment hints and then by a live probe.
func New(opts ...Option) *Terminal {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Terminal{
		out:     o.out,
		fd:      -1,
		width:   80,
		height:  25,
		noColor: o.noColor,
		silent:  o.silent,
		reader:  o.reader,
	}
	if f, ok := o.out.(*os.File); ok {
		t.fd = int(f.Fd())
	}
	if v, ok := envDim("COLUMNS"); ok {
		t.width = v
	}
	if v, ok := envDim("LINES"); ok {
		t.height = v
	}

	if o.console != nil {
		t.dw = newConsoleWriter(o.console)
	} else {
		t.dw = newPlatformWriter()
	}

	t.UpdateDim()
	return t
}

// envDim parses a numeric environment size hint, tolerantly: absent,
// empty, or unparsable values are ignored.
func envDim(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Close flushes pending buffered output, unwinds raw mode if still
// active, and releases the output buffer. Safe to call more than once
// and on a nil receiver.
func (t *Terminal) Close() error {
	if t == nil || t.closed {
		return nil
	}
	t.closed = true
	err := t.EndBuffered()
	t.EndRaw()
	t.buf = nil
	return err
}

// Width returns the last known terminal width in columns.
func (t *Terminal) Width() int { return t.width }

// Height returns the last known terminal height in rows.
func (t *Terminal) Height() int { return t.height }

// IsInteractive reports whether the terminal supports interactive
// editing. TERM is checked against a fixed deny-list of known
// non-interactive terminal types, so unknown terminals default to
// interactive.
func (t *Terminal) IsInteractive() bool {
	if t.fd >= 0 && !isatty.IsTerminal(uintptr(t.fd)) && !isatty.IsCygwinTerminal(uintptr(t.fd)) {
		return false
	}
	name := os.Getenv("TERM")
	log.Debug("term: TERM=%s", name)
	for _, deny := range []string{"dumb", "cons25", "emacs"} {
		if strings.EqualFold(name, deny) {
			return false
		}
	}
	return true
}

// EnableColor toggles color output. Only future writes are affected.
func (t *Terminal) EnableColor(enable bool) { t.noColor = !enable }

// EnableBeep toggles the audible bell.
func (t *Terminal) EnableBeep(enable bool) { t.silent = !enable }

//-------------------------------------------------------------
// Write entry points
//-------------------------------------------------------------

// Write sends a string to the terminal.
func (t *Terminal) Write(s string) error {
	return t.WriteBytes([]byte(s))
}

// WriteBytes sends raw bytes to the terminal. While buffering is
// active the bytes are held back and flushed in one physical write at
// EndBuffered; otherwise they take the direct write path.
func (t *Terminal) WriteBytes(b []byte) error {
	if t.buffered && t.buf != nil {
		t.buf.Write(b)
		return nil
	}
	return t.dw.writeDirect(t, b)
}

// Writef formats and writes. The formatted result is issued as a
// single write so it cannot interleave with other output.
func (t *Terminal) Writef(format string, args ...any) error {
	return t.Write(fmt.Sprintf(format, args...))
}

// Beep sounds the terminal bell unless silenced. The bell bypasses the
// output buffer so it is heard when the caller intends it.
func (t *Terminal) Beep() {
	if t.silent {
		return
	}
	_ = t.dw.writeDirect(t, []byte("\a"))
}

//-------------------------------------------------------------
// Buffered output; used to reduce cursor flicker during refresh
//-------------------------------------------------------------

// StartBuffered begins batching writes. Idempotent while active.
func (t *Terminal) StartBuffered() {
	if t.buf == nil {
		t.buf = &bytes.Buffer{}
	}
	t.buffered = true
}

// EndBuffered stops batching and flushes everything held back since
// StartBuffered in exactly one direct write. The buffer is cleared
// even when the flush fails, so repeated failures cannot grow it
// without bound. A no-op reporting success when buffering is off.
func (t *Terminal) EndBuffered() error {
	if !t.buffered {
		return nil
	}
	t.buffered = false
	if t.buf == nil || t.buf.Len() == 0 {
		return nil
	}
	err := t.dw.writeDirect(t, t.buf.Bytes())
	t.buf.Reset()
	if err != nil {
		return fmt.Errorf("flushing buffered output: %w", err)
	}
	return nil
}

//-------------------------------------------------------------
// Cursor movement and attribute helpers
//-------------------------------------------------------------

// Left moves the cursor n columns left. No-op for n <= 0.
func (t *Terminal) Left(n int) {
	if n <= 0 {
		return
	}
	_ = t.Writef(csi+"%dD", n)
}

// Right moves the cursor n columns right. No-op for n <= 0.
func (t *Terminal) Right(n int) {
	if n <= 0 {
		return
	}
	_ = t.Writef(csi+"%dC", n)
}

// Up moves the cursor n rows up. No-op for n <= 0.
func (t *Terminal) Up(n int) {
	if n <= 0 {
		return
	}
	_ = t.Writef(csi+"%dA", n)
}

// Down moves the cursor n rows down. No-op for n <= 0.
func (t *Terminal) Down(n int) {
	if n <= 0 {
		return
	}
	_ = t.Writef(csi+"%dB", n)
}

// StartOfLine returns the cursor to column one.
func (t *Terminal) StartOfLine() {
	_ = t.Write("\r")
}

// EndOfLine moves the cursor to the last column of the current row.
func (t *Terminal) EndOfLine() {
	t.Right(999)
}

// ClearLine erases the whole current line and returns to column one.
func (t *Terminal) ClearLine() {
	_ = t.Write("\r" + csi + "2K")
}

// ClearLineFromCursor erases from the cursor to the end of the line.
func (t *Terminal) ClearLineFromCursor() {
	_ = t.Write(csi + "0K")
}

// ClearScreen erases the whole screen and homes the cursor.
func (t *Terminal) ClearScreen() {
	_ = t.Write(csi + "2J" + csi + "H")
}

// WriteBlanks writes n spaces. No-op for n <= 0.
func (t *Terminal) WriteBlanks(n int) {
	if n <= 0 {
		return
	}
	_ = t.Write(strings.Repeat(" ", n))
}

// AttrReset restores the terminal's default text attributes.
func (t *Terminal) AttrReset() {
	_ = t.Write(csi + "0m")
}

// Underline switches underlining on or off.
func (t *Terminal) Underline(on bool) {
	if on {
		_ = t.Write(csi + "4m")
	} else {
		_ = t.Write(csi + "24m")
	}
}

// SetColor sets the foreground color. ColorNone and ColorDefault are
// ignored so callers can pass "no preference" through unchanged.
func (t *Terminal) SetColor(color Color) {
	if color == ColorNone || color == ColorDefault {
		return
	}
	_ = t.Writef(csi+"%dm", int(color))
}

// SetBgColor sets the background color.
func (t *Terminal) SetBgColor(color Color) {
	if color == ColorNone || color == ColorDefault {
		return
	}
	_ = t.Writef(csi+"%dm", int(color)+10)
}

// writeAll writes b fully to w, treating a short write as an error.
func writeAll(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("short terminal write: %d of %d bytes", n, len(b))
	}
	return nil
}
