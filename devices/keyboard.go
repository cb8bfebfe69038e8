// Package devices holds concrete machine.Device implementations for
// the reference peripherals: a keyboard and a character-grid screen.
package devices

import "github.com/hbc2core/hbc2/machine"

// Pressed/released codes the keyboard sends on its PRESS_STATE tick,
// distinct from any real ASCII code so a host can tell a key event
// apart from its scancode. Matches original_source/keyboard.cpp.
const (
	KeyPressedCode  = 0x0E
	KeyReleasedCode = 0x0F
)

type keyboardStep int

const (
	keyboardStepCode keyboardStep = iota
	keyboardStepPressState
)

// keyEvent is a queued (scancode, pressed) pair awaiting delivery.
type keyEvent struct {
	code    uint8
	pressed bool
}

// Keyboard is a single-port device that reports key events over two
// consecutive ticks: first the scancode, then KeyPressedCode or
// KeyReleasedCode. Host code feeds it events with ReceiveKeyCode;
// Tick drains the queue one event per two ticks, exactly as the
// original's two-step state machine does.
type Keyboard struct {
	machine.PortBank

	step  keyboardStep
	queue []keyEvent
}

// NewKeyboard returns a Keyboard with its single port (KEYCODE) zeroed
// and its interrupt line clear.
func NewKeyboard() *Keyboard {
	return &Keyboard{PortBank: machine.NewPortBank(1)}
}

// ReceiveKeyCode enqueues a key event for delivery on a later Tick.
// The host (terminal or windowed front-end) calls this; the Keyboard
// itself never polls an input source.
func (k *Keyboard) ReceiveKeyCode(code uint8, pressed bool) {
	k.queue = append(k.queue, keyEvent{code: code, pressed: pressed})
}

// Tick advances the two-step delivery state machine. INT is cleared
// at the start of every tick and re-raised only when there is
// something to report this cycle, matching the original's
// clear-then-maybe-raise sequencing.
func (k *Keyboard) Tick() {
	k.ClearINT()

	switch k.step {
	case keyboardStepCode:
		if len(k.queue) > 0 {
			k.RaiseINT()
			k.Write(0, k.queue[0].code)
			k.step = keyboardStepPressState
		}
	case keyboardStepPressState:
		k.RaiseINT()
		if k.queue[0].pressed {
			k.Write(0, KeyPressedCode)
		} else {
			k.Write(0, KeyReleasedCode)
		}
		k.queue = k.queue[1:]
		k.step = keyboardStepCode
	}
}
