//go:build !headless

package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hbc2core/hbc2/devices"
)

// Cell pixel geometry, from original_source/screen.hpp's CHAR_WIDTH/
// CHAR_HEIGHT/PIXEL_WIDTH, using golang.org/x/image/font/basicfont's
// 7x13 face instead of the original's ascii_character_map.png sprite
// sheet (out of scope: no bundled asset in this port).
const (
	cellPixelWidth  = 8
	cellPixelHeight = 14
	windowWidth     = devices.ScreenCharWidth * cellPixelWidth
	windowHeight    = devices.ScreenCharHeight * cellPixelHeight
)

// hbc2Game is an ebiten.Game rendering a devices.Screen and forwarding
// window key events into a devices.Keyboard, mirroring the teacher's
// EbitenOutput but scoped to this emulator's character-grid display
// instead of a raw RGBA framebuffer.
type hbc2Game struct {
	sys    *system
	beeper *haltBeeper
	canvas *ebiten.Image
	face   font.Face
	dirty  bool
	clip   *clipboardBridge
}

func newHBC2Game(sys *system, beeper *haltBeeper) *hbc2Game {
	return &hbc2Game{
		sys:    sys,
		beeper: beeper,
		canvas: ebiten.NewImage(windowWidth, windowHeight),
		face:   basicfont.Face7x13,
		dirty:  true,
		clip:   newClipboardBridge(),
	}
}

func (g *hbc2Game) Update() error {
	g.forwardKeys()

	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.clip.paste(g.sys.keyboard)
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clip.copyScreen(g.sys.screen)
	}

	g.sys.tick()
	g.beeper.setHalted(g.sys.halted())
	if g.sys.screen.ConsumeFrame() {
		g.dirty = true
	}
	return nil
}

func (g *hbc2Game) forwardKeys() {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if r := keyToASCII(k); r != 0 {
			g.sys.keyboard.ReceiveKeyCode(r, true)
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		if r := keyToASCII(k); r != 0 {
			g.sys.keyboard.ReceiveKeyCode(r, false)
		}
	}
}

func (g *hbc2Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.renderGrid()
		g.dirty = false
	}
	screen.DrawImage(g.canvas, nil)
}

func (g *hbc2Game) renderGrid() {
	g.canvas.Fill(color.Black)
	for line := uint8(0); line < devices.ScreenCharHeight; line++ {
		for row := uint8(0); row < devices.ScreenCharWidth; row++ {
			c, _ := g.sys.screen.Cell(row, line)
			if c == ' ' {
				continue
			}
			drawGlyph(g.canvas, g.face, c, int(row)*cellPixelWidth, int(line)*cellPixelHeight)
		}
	}
}

func drawGlyph(dst *ebiten.Image, face font.Face, c byte, x, y int) {
	img := image.NewRGBA(image.Rect(0, 0, cellPixelWidth, cellPixelHeight))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, cellPixelHeight-4),
	}
	d.DrawString(string(rune(c)))

	glyph := ebiten.NewImageFromImage(img)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(glyph, op)
}

func (g *hbc2Game) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// keyToASCII maps the small set of ebiten keys this console cares
// about onto ASCII codes (letters, digits, space, and newline for
// Enter); unmapped keys return 0 and are dropped.
func keyToASCII(k ebiten.Key) byte {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return byte('A' + (k - ebiten.KeyA))
	case k >= ebiten.Key0 && k <= ebiten.Key9:
		return byte('0' + (k - ebiten.Key0))
	case k == ebiten.KeySpace:
		return ' '
	case k == ebiten.KeyEnter:
		return '\n'
	default:
		return 0
	}
}

func runWindowed(sys *system, cfg config, beeper *haltBeeper, term *terminalHost) {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("hbc2run")
	ebiten.SetTPS(cfg.hz)
	game := newHBC2Game(sys, beeper)
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
