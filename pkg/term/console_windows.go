// ABOUTME: Console implementation over the real Windows console API.
// ABOUTME: Uses x/sys/windows where covered and lazy kernel32 procs for the rest.

//go:build windows

package term

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSetConsoleTextAttribute    = kernel32.NewProc("SetConsoleTextAttribute")
	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	procGetConsoleCursorInfo       = kernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo       = kernel32.NewProc("SetConsoleCursorInfo")
	procGetConsoleOutputCP         = kernel32.NewProc("GetConsoleOutputCP")
	procSetConsoleOutputCP         = kernel32.NewProc("SetConsoleOutputCP")
)

// consoleCursorInfo mirrors CONSOLE_CURSOR_INFO.
type consoleCursorInfo struct {
	size    uint32
	visible int32
}

// windowsConsole drives the process's console screen buffer.
type windowsConsole struct {
	h windows.Handle
}

func newWindowsConsole() *windowsConsole {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		h = windows.InvalidHandle
	}
	return &windowsConsole{h: h}
}

func (c *windowsConsole) Info() (BufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.h, &info); err != nil {
		return BufferInfo{}, fmt.Errorf("console info: %w", err)
	}
	return BufferInfo{
		Size:   Coord{X: int(info.Size.X), Y: int(info.Size.Y)},
		Cursor: Coord{X: int(info.CursorPosition.X), Y: int(info.CursorPosition.Y)},
		Attr:   Attr(info.Attributes),
		Window: Rect{
			Left:   int(info.Window.Left),
			Top:    int(info.Window.Top),
			Right:  int(info.Window.Right),
			Bottom: int(info.Window.Bottom),
		},
	}, nil
}

func (c *windowsConsole) SetCursor(pos Coord) error {
	coord := windows.Coord{X: int16(pos.X), Y: int16(pos.Y)}
	if err := windows.SetConsoleCursorPosition(c.h, coord); err != nil {
		return fmt.Errorf("set cursor position: %w", err)
	}
	return nil
}

func (c *windowsConsole) SetAttr(attr Attr) error {
	r1, _, err := procSetConsoleTextAttribute.Call(uintptr(c.h), uintptr(attr))
	if r1 == 0 {
		return fmt.Errorf("set text attribute: %w", err)
	}
	return nil
}

// packCoord packs a COORD for procs that take it by value.
func packCoord(pos Coord) uintptr {
	return uintptr(uint32(uint16(pos.X)) | uint32(uint16(pos.Y))<<16)
}

func (c *windowsConsole) Fill(pos Coord, n int, ch rune, attr Attr) error {
	var written uint32
	r1, _, err := procFillConsoleOutputAttribute.Call(
		uintptr(c.h), uintptr(attr), uintptr(n), packCoord(pos),
		uintptr(unsafe.Pointer(&written)))
	if r1 == 0 {
		return fmt.Errorf("fill attributes: %w", err)
	}
	r1, _, err = procFillConsoleOutputCharacter.Call(
		uintptr(c.h), uintptr(uint16(ch)), uintptr(n), packCoord(pos),
		uintptr(unsafe.Pointer(&written)))
	if r1 == 0 {
		return fmt.Errorf("fill characters: %w", err)
	}
	return nil
}

func (c *windowsConsole) CursorVisible(visible bool) error {
	var info consoleCursorInfo
	r1, _, err := procGetConsoleCursorInfo.Call(uintptr(c.h), uintptr(unsafe.Pointer(&info)))
	if r1 == 0 {
		return fmt.Errorf("get cursor info: %w", err)
	}
	if visible {
		info.visible = 1
	} else {
		info.visible = 0
	}
	r1, _, err = procSetConsoleCursorInfo.Call(uintptr(c.h), uintptr(unsafe.Pointer(&info)))
	if r1 == 0 {
		return fmt.Errorf("set cursor info: %w", err)
	}
	return nil
}

func (c *windowsConsole) WriteRaw(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	units := utf16.Encode([]rune(string(b)))
	if len(units) == 0 {
		return len(b), nil
	}
	var written uint32
	if err := windows.WriteConsole(c.h, &units[0], uint32(len(units)), &written, nil); err != nil {
		return 0, fmt.Errorf("write console: %w", err)
	}
	return len(b), nil
}

func (c *windowsConsole) Mode() (uint32, error) {
	var mode uint32
	if err := windows.GetConsoleMode(c.h, &mode); err != nil {
		return 0, fmt.Errorf("get console mode: %w", err)
	}
	return mode, nil
}

func (c *windowsConsole) SetMode(mode uint32) error {
	if err := windows.SetConsoleMode(c.h, mode); err != nil {
		return fmt.Errorf("set console mode: %w", err)
	}
	return nil
}

func (c *windowsConsole) OutputCP() uint32 {
	cp, _, _ := procGetConsoleOutputCP.Call()
	return uint32(cp)
}

func (c *windowsConsole) SetOutputCP(cp uint32) {
	_, _, _ = procSetConsoleOutputCP.Call(uintptr(cp))
}
