package devices

import "github.com/hbc2core/hbc2/machine"

// Character-grid geometry, from original_source/screen.hpp. Pixel
// dimensions (CHAR_WIDTH/HEIGHT, PIXEL_WIDTH) are a front-end concern
// and live in cmd/hbc2run/video.go instead, since this package is
// headless.
const (
	ScreenCharWidth  = 40
	ScreenCharHeight = 25
)

// Screen ports, matching original_source/screen.hpp's Port enum.
const (
	ScreenPortChar = 0
	ScreenPortPosX = 1
	ScreenPortPosY = 2
	ScreenPortCmd  = 3
)

// Screen commands, written to ScreenPortCmd.
const (
	ScreenCmdDraw    = 1
	ScreenCmdRefresh = 2
	ScreenCmdClear   = 3
)

const blankCell = ' '

// Screen is a headless 40x25 character-grid device. It has no window
// of its own; a front-end (cmd/hbc2run/video.go) reads Cell and
// ConsumeFrame to render it. Unlike the original it never touches
// keyboard input itself — SFML's event pump being the one piece of
// the original's Screen::tick that forwarded key events was a layering
// accident the original's own comment calls out, and that forwarding
// belongs in the front-end host, not this device.
type Screen struct {
	machine.PortBank

	grid      [ScreenCharHeight][ScreenCharWidth]byte
	refreshed bool
	frameUp   bool
}

// NewScreen returns a cleared Screen with its four ports zeroed.
func NewScreen() *Screen {
	s := &Screen{PortBank: machine.NewPortBank(4)}
	s.clearScreen()
	return s
}

// Tick dispatches on the command port exactly as the original does:
// REFRESH only takes effect once per assertion (guarded by the sticky
// refreshed flag), DRAW always re-draws the addressed cell, CLEAR wipes
// the grid, and any other value resets the refreshed latch.
func (s *Screen) Tick() {
	switch s.Read(ScreenPortCmd) {
	case ScreenCmdRefresh:
		if !s.refreshed {
			s.refreshScreen()
			s.refreshed = true
		}
	case ScreenCmdDraw:
		s.drawCharacter(s.Read(ScreenPortChar), s.Read(ScreenPortPosX), s.Read(ScreenPortPosY))
	case ScreenCmdClear:
		s.clearScreen()
	default:
		s.refreshed = false
	}
}

// Cell returns the character at (row, line) and whether the position
// is within the grid.
func (s *Screen) Cell(row, line uint8) (byte, bool) {
	if row >= ScreenCharWidth || line >= ScreenCharHeight {
		return 0, false
	}
	return s.grid[line][row], true
}

// ConsumeFrame reports whether a refresh or clear happened since the
// last call, clearing the flag. Front-ends poll this to know when to
// re-render rather than redrawing every tick.
func (s *Screen) ConsumeFrame() bool {
	v := s.frameUp
	s.frameUp = false
	return v
}

func (s *Screen) drawCharacter(c, row, line uint8) {
	if c < 32 || c > 126 || row >= ScreenCharWidth || line >= ScreenCharHeight {
		return
	}
	s.grid[line][row] = c
}

func (s *Screen) clearScreen() {
	for line := range s.grid {
		for row := range s.grid[line] {
			s.grid[line][row] = blankCell
		}
	}
	s.refreshScreen()
}

func (s *Screen) refreshScreen() {
	s.frameUp = true
}
