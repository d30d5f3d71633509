// ABOUTME: Demo CLI for the terminal control layer
// ABOUTME: Probes the terminal, then renders a color, attribute, and buffering showcase

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/term"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("termctl-demo %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// stdinReader feeds terminal replies (the cursor-position report) back
// to the probe. Each read waits briefly so a terminal that never
// replies cannot hang the demo.
type stdinReader struct{}

func (stdinReader) ReadChar() (byte, bool) {
	_ = os.Stdin.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	defer os.Stdin.SetReadDeadline(time.Time{})

	var b [1]byte
	n, err := os.Stdin.Read(b[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return b[0], true
}

func run(args cliArgs) error {
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	opts := []term.Option{term.WithOutput(os.Stdout)}
	if args.noColor || os.Getenv("NO_COLOR") != "" {
		opts = append(opts, term.WithNoColor())
	}
	if args.silent {
		opts = append(opts, term.WithSilent())
	}

	// The cursor-position fallback needs both a real TTY on stdin and
	// raw input, so replies are not swallowed by line buffering.
	interactiveIn := isatty.IsTerminal(os.Stdin.Fd())
	if interactiveIn {
		state, err := xterm.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("entering raw input mode: %w", err)
		}
		defer func() { _ = xterm.Restore(int(os.Stdin.Fd()), state) }()
		opts = append(opts, term.WithReader(stdinReader{}))
	}

	tr := term.New(opts...)
	defer tr.Close()

	tr.StartRaw()
	defer tr.EndRaw()

	_ = tr.Writef("termctl %dx%d, interactive=%v\r\n", tr.Width(), tr.Height(), tr.IsInteractive())

	showColors(tr)
	showAttributes(tr)
	showBufferedRedraw(tr)

	if args.beep {
		tr.Beep()
	}
	return nil
}

// showColors renders the sixteen named foreground colors on one line
// and the eight background colors on the next.
func showColors(tr *term.Terminal) {
	fgs := []term.Color{
		term.ColorBlack, term.ColorMaroon, term.ColorGreen, term.ColorOrange,
		term.ColorNavy, term.ColorPurple, term.ColorTeal, term.ColorLightGray,
		term.ColorDarkGray, term.ColorRed, term.ColorLime, term.ColorYellow,
		term.ColorBlue, term.ColorMagenta, term.ColorCyan, term.ColorWhite,
	}
	for _, c := range fgs {
		tr.SetColor(c)
		_ = tr.Write("██")
	}
	tr.AttrReset()
	_ = tr.Write("\r\n")

	for _, c := range fgs[:8] {
		tr.SetBgColor(c)
		_ = tr.Write("  ")
	}
	tr.AttrReset()
	_ = tr.Write("\r\n")
}

func showAttributes(tr *term.Terminal) {
	tr.Underline(true)
	_ = tr.Write("underlined")
	tr.Underline(false)
	_ = tr.Write(" plain ")
	tr.SetColor(term.ColorRed)
	tr.Underline(true)
	_ = tr.Write("both")
	tr.AttrReset()
	_ = tr.Write("\r\n")
}

// showBufferedRedraw repaints one line several times inside a buffered
// section, so each frame reaches the terminal as a single write.
func showBufferedRedraw(tr *term.Terminal) {
	for i := 0; i <= 20; i++ {
		tr.StartBuffered()
		tr.ClearLine()
		tr.SetColor(term.ColorLime)
		_ = tr.Write("[")
		for j := 0; j < 20; j++ {
			if j < i {
				_ = tr.Write("=")
			} else {
				_ = tr.Write(" ")
			}
		}
		_ = tr.Write("]")
		tr.AttrReset()
		_ = tr.Writef(" %d%%", i*5)
		_ = tr.EndBuffered()
		time.Sleep(30 * time.Millisecond)
	}
	_ = tr.Write("\r\n")
}
