//go:build !headless

package main

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/hbc2core/hbc2/devices"
)

// clipboardBridge wires the host system clipboard to the emulated
// keyboard and screen: Ctrl+V pastes clipboard text as key events,
// Ctrl+C copies the screen grid as text, grounded on
// video_backend_ebiten.go's handleClipboardPaste.
type clipboardBridge struct {
	once sync.Once
	ok   bool
}

func newClipboardBridge() *clipboardBridge { return &clipboardBridge{} }

func (c *clipboardBridge) init() bool {
	c.once.Do(func() {
		c.ok = clipboard.Init() == nil
	})
	return c.ok
}

// paste reads clipboard text and feeds it into kb as press/release
// pairs, one byte per key event.
func (c *clipboardBridge) paste(kb *devices.Keyboard) {
	if !c.init() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	const maxPaste = 4096
	if len(data) > maxPaste {
		data = data[:maxPaste]
	}
	for _, b := range data {
		kb.ReceiveKeyCode(b, true)
		kb.ReceiveKeyCode(b, false)
	}
}

// copyScreen serializes the visible character grid, row by row, and
// writes it to the system clipboard.
func (c *clipboardBridge) copyScreen(s *devices.Screen) {
	if !c.init() {
		return
	}
	var buf []byte
	for line := uint8(0); line < devices.ScreenCharHeight; line++ {
		for row := uint8(0); row < devices.ScreenCharWidth; row++ {
			ch, _ := s.Cell(row, line)
			buf = append(buf, ch)
		}
		buf = append(buf, '\n')
	}
	clipboard.Write(clipboard.FmtText, buf)
}
