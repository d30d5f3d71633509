// ABOUTME: Pass-through direct-write strategy for terminals with a native ANSI interpreter.
// ABOUTME: With color disabled, CSI color sequences are stripped; all other CSI passes through.

package term

import "github.com/mauromedda/termctl/pkg/term/internal/scan"

// ansiWriter writes bytes as-is. When color is suppressed it segments
// the range with the boundary scanner and drops SGR color sequences;
// cursor control is structural and always reaches the terminal.
type ansiWriter struct{}

func (w ansiWriter) writeDirect(t *Terminal, b []byte) error {
	if !t.noColor {
		return writeAll(t.out, b)
	}

	pos := 0
	for pos < len(b) {
		// Pass non-escape runs through in bulk.
		run := 0
		var next int
		for {
			next = scan.NextOffset(b, pos+run)
			if next <= 0 || b[pos+run] == 0x1b {
				break
			}
			run += next
		}
		if run > 0 {
			if err := writeAll(t.out, b[pos:pos+run]); err != nil {
				return err
			}
			pos += run
		}
		if next <= 0 {
			break
		}

		if next > 1 && b[pos] == 0x1b {
			if err := w.writeEscape(t, b[pos:pos+next]); err != nil {
				return err
			}
		} else {
			if err := writeAll(t.out, b[pos:pos+next]); err != nil {
				return err
			}
		}
		pos += next
	}
	return nil
}

// writeEscape writes one escape sequence, dropping SGR sequences whose
// first parameter is a foreground or background color code.
func (w ansiWriter) writeEscape(t *Terminal, seq []byte) error {
	if t.noColor && seq[1] == '[' && seq[len(seq)-1] == 'm' {
		n := escParam(seq[2:len(seq)-1], 1)
		if (n >= 30 && n <= 49) || (n >= 90 && n <= 109) {
			return nil
		}
	}
	return writeAll(t.out, seq)
}
