package machine

// RegisterSnapshot describes one general-purpose register for display
// or logging, scoped down from the teacher's multi-architecture
// RegisterInfo to this machine's fixed 8-bit register file.
type RegisterSnapshot struct {
	Name  string
	Value uint8
}

// CPUSnapshot is a point-in-time, read-only view of CPU state, useful
// for tests, logging, and any front-end that wants to display machine
// state without reaching into CPU internals.
type CPUSnapshot struct {
	Step           Step
	ProgramCounter uint32
	StackPointer   uint8
	Registers      [8]RegisterSnapshot
	Flags          Flags
	CurrentOpcode  Opcode
	CurrentMode    AddressingMode
}

// Snapshot captures the CPU's current externally-visible state.
func (c *CPU) Snapshot() CPUSnapshot {
	s := CPUSnapshot{
		Step:           c.step,
		ProgramCounter: c.programCounter,
		StackPointer:   c.stackPointer,
		Flags:          c.flags,
		CurrentOpcode:  c.opcode,
		CurrentMode:    c.addressingMode,
	}
	for i := range c.registers {
		s.Registers[i] = RegisterSnapshot{Name: Register(i).String(), Value: c.registers[i]}
	}
	return s
}

// CurrentMicroOp returns the mnemonic of the micro-op the CPU is about
// to execute (or just executed) in the EXECUTE step, for single-step
// debugging.
func (c *CPU) CurrentMicroOp() string {
	return c.microOp.String()
}
