package devices

import "testing"

func TestKeyboardTwoStepDelivery(t *testing.T) {
	k := NewKeyboard()

	k.Tick() // nothing queued
	if k.INT() {
		t.Fatal("INT should be clear with an empty queue")
	}

	k.ReceiveKeyCode(0x1E, true) // scancode for 'A', pressed

	k.Tick() // CODE step
	if !k.INT() {
		t.Fatal("expected INT on the code step")
	}
	if got := k.Read(0); got != 0x1E {
		t.Fatalf("port 0 = %#x, want scancode 0x1E", got)
	}

	k.Tick() // PRESS_STATE step
	if !k.INT() {
		t.Fatal("expected INT on the press-state step")
	}
	if got := k.Read(0); got != KeyPressedCode {
		t.Fatalf("port 0 = %#x, want KeyPressedCode", got)
	}

	k.Tick() // queue drained
	if k.INT() {
		t.Fatal("INT should clear once the queue is empty")
	}
}

func TestKeyboardReleaseCode(t *testing.T) {
	k := NewKeyboard()
	k.ReceiveKeyCode(0x20, false)

	k.Tick()
	k.Tick()

	if got := k.Read(0); got != KeyReleasedCode {
		t.Fatalf("port 0 = %#x, want KeyReleasedCode", got)
	}
}

func TestKeyboardQueuesMultipleEvents(t *testing.T) {
	k := NewKeyboard()
	k.ReceiveKeyCode(0x01, true)
	k.ReceiveKeyCode(0x02, true)

	// Ticks 1-2 deliver the first event (code, press state); tick 3
	// puts the second event's code on the port.
	for i := 0; i < 3; i++ {
		k.Tick()
	}

	if got := k.Read(0); got != 0x02 {
		t.Fatalf("second event code = %#x, want 0x02", got)
	}
}
