package machine

// Device is the capability every peripheral exposes to the Motherboard.
// A device is passive between ticks: it mutates its own state only
// inside its own Tick, and may raise its interrupt line at any time —
// the IOD polls it once per cycle.
//
// Devices own no reference back to the Motherboard or the CPU; wiring
// between devices (e.g. a monitor forwarding key events to a keyboard)
// is the host's concern, not the core's.
type Device interface {
	PortCount() uint8
	Read(portIndex uint8) uint8
	Write(portIndex uint8, value uint8)
	INT() bool
	AcknowledgeINT()
	Tick()
}

// PortBank is an embeddable helper implementing the port-array half of
// the Device contract, the way original_source/device.cpp's m_ports
// vector backs Keyboard and Screen. Concrete devices embed it and only
// need to implement Tick (and INT-raising logic that sets intLine).
type PortBank struct {
	ports   []uint8
	intLine bool
}

// NewPortBank allocates a bank with the given number of ports, all
// initialised to zero.
func NewPortBank(n int) PortBank {
	return PortBank{ports: make([]uint8, n)}
}

func (p *PortBank) PortCount() uint8 { return uint8(len(p.ports)) }

func (p *PortBank) Read(portIndex uint8) uint8 {
	if int(portIndex) >= len(p.ports) {
		return 0x00
	}
	return p.ports[portIndex]
}

func (p *PortBank) Write(portIndex uint8, value uint8) {
	if int(portIndex) >= len(p.ports) {
		return
	}
	p.ports[portIndex] = value
}

func (p *PortBank) INT() bool { return p.intLine }

func (p *PortBank) AcknowledgeINT() { p.intLine = false }

// RaiseINT asserts the device's INT line; mirrors
// Device::triggerInterrupt in the original, which subclasses call to
// signal a pending interrupt to the IOD.
func (p *PortBank) RaiseINT() { p.intLine = true }

// ClearINT deasserts the device's INT line directly, without waiting
// for the IOD's acknowledgement cycle. Used by devices (like Keyboard)
// that drop their own INT line before deciding whether to raise it
// again on the same tick.
func (p *PortBank) ClearINT() { p.intLine = false }
