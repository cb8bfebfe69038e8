package machine

// Step names one phase of the CPU's tick-by-tick state machine.
type Step uint8

const (
	StepFetch1 Step = iota
	StepFetch2
	StepFetch3
	StepFetch4
	StepFetch5
	StepDecode
	StepExecute
	StepStop
	StepInterrupt1
	StepInterrupt2
	StepInterrupt3
	StepInterrupt4
	StepInterrupt5
	StepInterrupt6
	StepInterrupt7
	StepInterrupt8
)

// CPU is the fetch-decode-execute engine: nine phases driven one tick
// at a time by Tick, reading and writing the Motherboard's shared bus
// state. It holds no reference to RAM, the IOD, or any device — all
// communication is mediated by the bus, per the fixed CPU->IOD->RAM->
// Devices tick order documented on the package.
type CPU struct {
	mb  *Motherboard
	alu *alu

	registers [int(registerCount)]uint8
	flags     Flags

	programCounter uint32
	stackPointer   uint8

	interruptData     uint8
	interruptPort     uint8
	interruptVector   uint32
	softwareInterrupt bool

	fetchedInstruction uint64
	opcode             Opcode
	addressingMode     AddressingMode

	r1, r2, r3, r4 *uint8
	v1, v2, ex     uint8
	vx, rx         uint32

	dataBusValue uint8
	aluOut       uint8
	accu1, accu2 uint8

	jump      bool
	step      Step
	microStep int
	microOp   MicroOp

	microcode microcodeTable
}

// NewCPU attaches a CPU to mb, reset to its power-on state: PC at
// WorkMemoryStart, SP at StackStart, every flag clear except
// Interrupt, and FETCH_1 as the first step.
func NewCPU(mb *Motherboard) *CPU {
	c := &CPU{
		mb:        mb,
		microcode: buildMicrocodeTable(),
	}
	c.alu = newALU(&c.flags)
	c.reset()
	return c
}

func (c *CPU) reset() {
	for i := range c.registers {
		c.registers[i] = 0x00
	}
	c.flags = Flags{}.reset()
	c.programCounter = WorkMemoryStart
	c.stackPointer = StackStart
	c.softwareInterrupt = false
	c.step = StepFetch1
	c.microStep = 0
}

// Register returns the current value of reg.
func (c *CPU) Register(reg Register) uint8 { return c.registers[reg] }

// SetRegister sets reg, for test setup and image bootstrapping.
func (c *CPU) SetRegister(reg Register, v uint8) { c.registers[reg] = v }

func (c *CPU) Flags() Flags { return c.flags }

func (c *CPU) ProgramCounter() uint32 { return c.programCounter }

func (c *CPU) SetProgramCounter(v uint32) { c.programCounter = v & AddressMask }

func (c *CPU) StackPointer() uint8 { return c.stackPointer }

func (c *CPU) Step() Step { return c.step }

// RaiseSoftwareInterrupt requests a software interrupt on port, mirroring
// the INT instruction's MOVADDBUS{V1}; INT microprogram pair.
func (c *CPU) RaiseSoftwareInterrupt(port uint8) {
	c.mb.SetAddressBus(uint32(port))
	c.softwareInterrupt = true
}

// Tick advances the CPU by one clock cycle.
func (c *CPU) Tick() {
	if c.flags.Halt {
		c.flags.Interrupt = true // always ready to handle interrupts while halted

		if c.step != StepFetch1 {
			c.step = StepFetch1
			c.microStep = 0
			c.programCounter += InstructionSize
			if c.programCounter >= WorkMemoryEnd {
				c.programCounter = 0
			}
		} else if c.mb.INT() {
			c.step = StepInterrupt1
			c.mb.SetINR(true)
			c.flags.Halt = false
		}
		return
	}

	switch c.step {
	case StepInterrupt1:
		c.mb.SetINR(false)
		c.flags.Interrupt = false

		c.interruptPort = uint8(c.mb.AddressBus() & 0xFF)
		c.interruptData = c.mb.DataBus()

		c.movAddBus(uint32(c.stackPointer))
		c.movDataBus(uint8(c.programCounter & 0xFF))
		c.ramWrite()
		c.incSTK()

		c.step = StepInterrupt2

	case StepInterrupt2:
		c.movAddBus(uint32(c.stackPointer))
		c.movDataBus(uint8((c.programCounter >> 8) & 0xFF))
		c.ramWrite()
		c.incSTK()

		c.step = StepInterrupt3

	case StepInterrupt3:
		c.movAddBus(uint32(c.stackPointer))
		c.movDataBus(uint8((c.programCounter >> 16) & 0xFF))
		c.ramWrite()
		c.incSTK()

		c.step = StepInterrupt4

	case StepInterrupt4:
		if !c.softwareInterrupt {
			c.movAddBus(uint32(c.stackPointer))
			c.movDataBus(c.registers[RegI])
			c.ramWrite()
			c.incSTK()
		} else {
			c.softwareInterrupt = false
		}

		c.registers[RegI] = c.interruptData

		c.step = StepInterrupt5

	case StepInterrupt5:
		c.movAddBus(IVTStart + 3*uint32(c.interruptPort))
		c.ramRead()

		c.step = StepInterrupt6

	case StepInterrupt6:
		c.interruptVector = uint32(c.mb.DataBus()) << 16

		c.movAddBus(IVTStart + 1 + 3*uint32(c.interruptPort))
		c.ramRead()

		c.step = StepInterrupt7

	case StepInterrupt7:
		c.interruptVector += uint32(c.mb.DataBus()) << 8

		c.movAddBus(IVTStart + 2 + 3*uint32(c.interruptPort))
		c.ramRead()

		c.step = StepInterrupt8

	case StepInterrupt8:
		c.interruptVector += uint32(c.mb.DataBus())
		c.programCounter = c.interruptVector

		c.step = StepFetch1

	case StepFetch1:
		if c.flags.Interrupt && (c.mb.INT() || c.softwareInterrupt) {
			c.step = StepInterrupt1
			c.mb.SetINR(!c.softwareInterrupt)
		} else {
			c.movAddBus(c.programCounter)
			c.ramRead()
			c.step = StepFetch2
		}

	case StepFetch2:
		c.fetchedInstruction = uint64(c.mb.DataBus()) << 32
		c.movAddBus(c.programCounter + 1)
		c.ramRead()
		c.step = StepFetch3

	case StepFetch3:
		c.fetchedInstruction += uint64(c.mb.DataBus()) << 24
		c.movAddBus(c.programCounter + 2)
		c.ramRead()
		c.step = StepFetch4

	case StepFetch4:
		c.fetchedInstruction += uint64(c.mb.DataBus()) << 16
		c.movAddBus(c.programCounter + 3)
		c.ramRead()
		c.step = StepFetch5

	case StepFetch5:
		c.fetchedInstruction += uint64(c.mb.DataBus()) << 8
		c.movAddBus(c.programCounter + 4)
		c.ramRead()
		c.step = StepDecode

	case StepDecode:
		c.fetchedInstruction += uint64(c.mb.DataBus())
		c.decode()
		c.step = StepExecute
		c.microStep = 0
		c.microOp = uUndefined

	case StepExecute:
		c.dataBusValue = c.mb.DataBus()

		program := c.microcode[c.opcode][c.addressingMode]
		if c.microStep >= len(program) {
			c.step = StepFetch1
			c.microStep = 0

			if !c.jump {
				c.programCounter += InstructionSize
				if c.programCounter >= WorkMemoryEnd {
					c.programCounter = 0
				}
			} else {
				c.jump = false
			}
		} else {
			step := program[c.microStep]
			c.microOp = step.op
			c.dispatch(step.op, step.operands)
			c.microStep++
		}
	}
}

func (c *CPU) decode() {
	fi := c.fetchedInstruction
	c.opcode = Opcode((fi & 0xFC00000000) >> 34)
	c.addressingMode = AddressingMode((fi & 0x03C0000000) >> 30)
	c.r1 = &c.registers[(fi&0x0038000000)>>27]
	c.r2 = &c.registers[(fi&0x0007000000)>>24]
	c.v1 = uint8((fi & 0x0000FF0000) >> 16)
	c.v2 = uint8((fi & 0x000000FF00) >> 8)
	c.ex = uint8(fi & 0x00000000FF)
	c.vx = (uint32(c.v1) << 16) + (uint32(c.v2) << 8) + uint32(c.ex)
	c.r3 = &c.registers[c.v1&0x07]
	c.r4 = &c.registers[c.ex&0x07]
	c.rx = (uint32(*c.r1) << 16) + (uint32(*c.r2) << 8) + uint32(*c.r3)
}

// dispatch executes one decoded microstep. Grounded verbatim on
// original_source/cpu.cpp's tick() EXECUTE-phase switch.
func (c *CPU) dispatch(op MicroOp, operands []MicroOperand) {
	switch op {
	case UADC:
		c.aluOut = c.alu.adc(c.accu1, c.accu2)
	case UADD:
		c.aluOut = c.alu.add(c.accu1, c.accu2)
	case USUB:
		c.aluOut = c.alu.sub(c.accu1, c.accu2)
	case UAND:
		c.aluOut = c.alu.and(c.accu1, c.accu2)
	case UXOR:
		c.aluOut = c.alu.xor(c.accu1, c.accu2)
	case UNOT:
		c.aluOut = c.alu.not(c.accu1)
	case UOR:
		c.aluOut = c.alu.or(c.accu1, c.accu2)
	case USHR:
		c.aluOut = c.alu.shr(c.accu1)
	case UASR:
		c.aluOut = c.alu.asr(c.accu1)
	case USHL:
		c.aluOut = c.alu.shl(c.accu1)
	case UCMP:
		c.alu.cmp(c.accu1, c.accu2)

	case UIN:
		c.mb.SetRW(false)
		c.mb.SetIE(true)
	case UOUT:
		c.mb.SetRW(true)
		c.mb.SetIE(true)
	case UINT:
		c.softwareInterrupt = true

	case UCLC:
		c.flags.Carry = false
	case UCLE:
		c.flags.Equal = false
	case UCLI:
		c.flags.Interrupt = false
	case UCLN:
		c.flags.Negative = false
	case UCLS:
		c.flags.Superior = false
	case UCLZ:
		c.flags.Zero = false
	case UCLF:
		c.flags.Inferior = false
	case USTH:
		c.flags.Halt = true
	case USTC:
		c.flags.Carry = true
	case USTI:
		c.flags.Interrupt = true
	case USTN:
		c.flags.Negative = true
	case USTF:
		c.flags.Inferior = true
	case USTS:
		c.flags.Superior = true
	case USTE:
		c.flags.Equal = true
	case USTZ:
		c.flags.Zero = true

	case UDECSTK:
		c.decSTK()
	case UINCSTK:
		c.incSTK()
	case UINCPC:
		c.incPC()
	case URAMREAD:
		c.ramRead()
	case URAMWRITE:
		c.ramWrite()

	case UMOVACC1:
		switch operands[0] {
		case OALUOut:
			c.accu1 = c.aluOut
		case ODataBus:
			c.accu1 = c.mb.DataBus()
		case OR1:
			c.accu1 = *c.r1
		case OR2:
			c.accu1 = *c.r2
		case OR4:
			c.accu1 = *c.r4
		case OV1:
			c.accu1 = c.v1
		}

	case UMOVACC2:
		switch operands[0] {
		case OX1:
			c.accu2 = 0x1
		case OALUOut:
			c.accu2 = c.aluOut
		case ODataBus:
			c.accu2 = c.mb.DataBus()
		case OR1:
			c.accu2 = *c.r1
		case OR2:
			c.accu2 = *c.r2
		case OR4:
			c.accu2 = *c.r4
		case OV1:
			c.accu2 = c.v1
		}

	case UMOVREG:
		var dst *uint8
		var src *uint8

		switch operands[0] {
		case OR1:
			dst = c.r1
		case OR2:
			dst = c.r2
		case OR4:
			dst = c.r4
		case OI:
			dst = &c.registers[RegI]
		}

		switch operands[1] {
		case OALUOut:
			src = &c.aluOut
		case ODataBus:
			src = &c.dataBusValue
		case OR1:
			src = c.r1
		case OR2:
			src = c.r2
		case OR4:
			src = c.r4
		case OV1:
			src = &c.v1
		}

		if dst != nil && src != nil {
			*dst = *src
		}

	case UMOVDATABUS:
		switch operands[0] {
		case OALUOut:
			c.movDataBus(c.aluOut)
		case OR1:
			c.movDataBus(*c.r1)
		case OR2:
			c.movDataBus(*c.r2)
		case OR4:
			c.movDataBus(*c.r4)
		case OV1:
			c.movDataBus(c.v1)
		case OPC16:
			c.movDataBus(uint8((c.programCounter & 0xFF0000) >> 16))
		case OPC8:
			c.movDataBus(uint8((c.programCounter & 0x00FF00) >> 8))
		case OPC8Low:
			c.movDataBus(uint8(c.programCounter & 0x0000FF))
		}

	case UMOVADDBUS:
		switch operands[0] {
		case OV1:
			c.movAddBus(uint32(c.v1))
		case OR1:
			c.movAddBus(uint32(*c.r1))
		case OR2:
			c.movAddBus(uint32(*c.r2))
		case ORX:
			c.movAddBus(c.rx)
		case OVX:
			c.movAddBus(c.vx)
		case OStk:
			c.movAddBus(uint32(c.stackPointer))
		}

	case UMOVPC:
		switch operands[0] {
		case ORX:
			c.movPC(c.rx)
		case OVX:
			c.movPC(c.vx)
		case ODataBus16:
			c.movPC(uint32(c.mb.DataBus()) << 16)
		case OPCDataBus8:
			c.movPC((uint32(c.mb.DataBus()) << 8) + c.programCounter)
		case OPCDataBus:
			c.movPC(uint32(c.mb.DataBus()) + c.programCounter)
		}

	case UJMC:
		c.condJump(c.flags.Carry, operands)
	case UJME:
		c.condJump(c.flags.Equal, operands)
	case UJMF:
		c.condJump(c.flags.Inferior, operands)
	case UJMS:
		c.condJump(c.flags.Superior, operands)
	case UJMZ:
		c.condJump(c.flags.Zero, operands)
	case UJMN:
		c.condJump(c.flags.Negative, operands)
	case UJMP:
		c.movPC(c.jumpTarget(operands))
	case UJMK:
		target := c.programCounter + c.jumpTarget(operands)
		if target >= WorkMemoryEnd {
			target = 0
		}
		c.programCounter = target
		c.jump = true
	}
}

func (c *CPU) jumpTarget(operands []MicroOperand) uint32 {
	switch operands[0] {
	case ORX:
		return c.rx
	case OVX:
		return c.vx
	}
	return 0
}

func (c *CPU) condJump(taken bool, operands []MicroOperand) {
	if taken {
		c.movPC(c.jumpTarget(operands))
	}
}

func (c *CPU) movPC(v uint32) {
	c.programCounter = v & AddressMask
	c.jump = true
}

func (c *CPU) movAddBus(v uint32) { c.mb.SetAddressBus(v & AddressMask) }

func (c *CPU) movDataBus(v uint8) { c.mb.SetDataBus(v) }

func (c *CPU) ramRead() {
	c.mb.SetRW(false)
	c.mb.SetRE(true)
}

func (c *CPU) ramWrite() {
	c.mb.SetRW(true)
	c.mb.SetRE(true)
}

func (c *CPU) decSTK() { c.stackPointer-- }
func (c *CPU) incSTK() { c.stackPointer++ }

func (c *CPU) incPC() {
	c.programCounter += InstructionSize
	if c.programCounter >= WorkMemoryEnd {
		c.programCounter = 0
	}
}
