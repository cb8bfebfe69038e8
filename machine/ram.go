package machine

// RAM is a flat 16 MiB byte store. It services at most one read or
// write per tick, when the motherboard's RE line is asserted; there is
// no latency, no wait states, and no bounds checking beyond the 24-bit
// address mask.
type RAM struct {
	mb     *Motherboard
	memory [RAMSize]byte
}

// NewRAM attaches a fresh, zeroed RAM bank to mb.
func NewRAM(mb *Motherboard) *RAM {
	return &RAM{mb: mb}
}

// Tick services a pending access and deasserts RE, modelling the CPU
// releasing the line at the end of the cycle.
func (r *RAM) Tick() {
	if !r.mb.RE() {
		return
	}

	addr := r.mb.AddressBus()
	if r.mb.RW() {
		r.memory[addr] = r.mb.DataBus()
	} else {
		r.mb.SetDataBus(r.memory[addr])
	}
	r.mb.SetRE(false)
}

// LoadImage copies data into memory starting at addr, wrapping within
// the 24-bit address space. This is the general-purpose boot loader the
// spec requires in place of the original's hard-coded "Hello" program
// (out of scope per spec.md §1: "the core must load arbitrary images").
func (r *RAM) LoadImage(data []byte, addr uint32) {
	for i, b := range data {
		r.memory[(addr+uint32(i))&AddressMask] = b
	}
}

// LoadIVTEntry writes the 24-bit absolute address target at IVT slot
// k (big-endian, 3 bytes at IVTStart + 3*k), per spec.md §3/§6.
func (r *RAM) LoadIVTEntry(k uint8, target uint32) {
	off := uint32(IVTStart) + 3*uint32(k)
	target &= AddressMask
	r.memory[off] = byte(target >> 16)
	r.memory[off+1] = byte(target >> 8)
	r.memory[off+2] = byte(target)
}

// Peek reads a byte directly, bypassing the bus — for tests and
// debug inspection only.
func (r *RAM) Peek(addr uint32) byte {
	return r.memory[addr&AddressMask]
}
