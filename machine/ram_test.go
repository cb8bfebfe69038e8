package machine

import "testing"

func TestRAMWriteThenRead(t *testing.T) {
	mb := NewMotherboard()
	ram := NewRAM(mb)

	mb.SetAddressBus(0x000500)
	mb.SetDataBus(0xAB)
	mb.SetRW(true)
	mb.SetRE(true)
	ram.Tick()

	if mb.RE() {
		t.Fatal("RE should be deasserted after a serviced access")
	}

	mb.SetAddressBus(0x000500)
	mb.SetRW(false)
	mb.SetRE(true)
	ram.Tick()

	if got := mb.DataBus(); got != 0xAB {
		t.Fatalf("read back %#x, want 0xAB", got)
	}
}

func TestRAMIgnoresAccessWhenRENotAsserted(t *testing.T) {
	mb := NewMotherboard()
	ram := NewRAM(mb)

	mb.SetAddressBus(0x000600)
	mb.SetDataBus(0x11)
	mb.SetRW(true)
	ram.Tick() // RE not asserted: no-op

	mb.SetDataBus(0x00)
	mb.SetRW(false)
	mb.SetRE(true)
	ram.Tick()

	if got := mb.DataBus(); got != 0x00 {
		t.Fatalf("write without RE should not have happened, read back %#x", got)
	}
}

func TestLoadImageWraps(t *testing.T) {
	mb := NewMotherboard()
	ram := NewRAM(mb)

	img := []byte{0x01, 0x02, 0x03}
	ram.LoadImage(img, AddressMask-1)

	if ram.Peek(AddressMask-1) != 0x01 {
		t.Fatal("byte 0 not at expected offset")
	}
	if ram.Peek(AddressMask) != 0x02 {
		t.Fatal("byte 1 not at expected offset")
	}
	if ram.Peek(0) != 0x03 {
		t.Fatal("byte 2 should have wrapped to address 0")
	}
}

func TestLoadIVTEntry(t *testing.T) {
	mb := NewMotherboard()
	ram := NewRAM(mb)

	ram.LoadIVTEntry(2, 0x000700)

	off := uint32(IVTStart) + 6
	if ram.Peek(off) != 0x00 || ram.Peek(off+1) != 0x07 || ram.Peek(off+2) != 0x00 {
		t.Fatalf("IVT entry bytes wrong: %02x %02x %02x",
			ram.Peek(off), ram.Peek(off+1), ram.Peek(off+2))
	}
}
