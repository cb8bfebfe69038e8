package devices

import "testing"

func TestScreenStartsCleared(t *testing.T) {
	s := NewScreen()
	c, ok := s.Cell(0, 0)
	if !ok || c != blankCell {
		t.Fatalf("Cell(0,0) = %q,%v, want blank", c, ok)
	}
	if !s.ConsumeFrame() {
		t.Fatal("expected a pending frame after construction (clearScreen refreshes)")
	}
}

func TestScreenDrawWritesCell(t *testing.T) {
	s := NewScreen()
	s.ConsumeFrame()

	s.Write(ScreenPortChar, 'A')
	s.Write(ScreenPortPosX, 3)
	s.Write(ScreenPortPosY, 4)
	s.Write(ScreenPortCmd, ScreenCmdDraw)
	s.Tick()

	c, ok := s.Cell(3, 4)
	if !ok || c != 'A' {
		t.Fatalf("Cell(3,4) = %q,%v, want 'A'", c, ok)
	}
}

func TestScreenIgnoresOutOfRangeDraw(t *testing.T) {
	s := NewScreen()
	s.Write(ScreenPortChar, 1) // not printable ASCII
	s.Write(ScreenPortPosX, 0)
	s.Write(ScreenPortPosY, 0)
	s.Write(ScreenPortCmd, ScreenCmdDraw)
	s.Tick()

	c, _ := s.Cell(0, 0)
	if c != blankCell {
		t.Fatalf("non-printable char should not have been drawn, got %q", c)
	}
}

func TestScreenRefreshIsSticky(t *testing.T) {
	s := NewScreen()
	s.ConsumeFrame()

	s.Write(ScreenPortCmd, ScreenCmdRefresh)
	s.Tick()
	if !s.ConsumeFrame() {
		t.Fatal("expected a frame on first REFRESH")
	}

	s.Tick() // CMD still REFRESH: should not refresh again
	if s.ConsumeFrame() {
		t.Fatal("REFRESH should not re-fire while CMD stays asserted")
	}

	s.Write(ScreenPortCmd, 0)
	s.Tick() // resets the sticky latch
	s.Write(ScreenPortCmd, ScreenCmdRefresh)
	s.Tick()
	if !s.ConsumeFrame() {
		t.Fatal("expected a frame after the latch reset and REFRESH reasserted")
	}
}

func TestScreenClearWipesGrid(t *testing.T) {
	s := NewScreen()
	s.Write(ScreenPortChar, 'Z')
	s.Write(ScreenPortPosX, 1)
	s.Write(ScreenPortPosY, 1)
	s.Write(ScreenPortCmd, ScreenCmdDraw)
	s.Tick()

	s.Write(ScreenPortCmd, ScreenCmdClear)
	s.Tick()

	c, _ := s.Cell(1, 1)
	if c != blankCell {
		t.Fatalf("Cell(1,1) after CLEAR = %q, want blank", c)
	}
}
