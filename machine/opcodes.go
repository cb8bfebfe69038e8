package machine

// Opcode identifies one of the 48 instructions, 0x00-0x2F. NOP is 0x00
// by definition and decodes to an empty microprogram.
type Opcode uint8

const (
	OpNOP Opcode = 0x00
	OpADC Opcode = 0x01
	OpADD Opcode = 0x02
	OpAND Opcode = 0x03
	OpCAL Opcode = 0x04
	OpCLC Opcode = 0x05
	OpCLE Opcode = 0x06
	OpCLI Opcode = 0x07
	OpCLN Opcode = 0x08
	OpCLS Opcode = 0x09
	OpCLZ Opcode = 0x0A
	OpCLF Opcode = 0x0B
	OpCMP Opcode = 0x0C
	OpDEC Opcode = 0x0D
	OpHLT Opcode = 0x0E
	OpIN  Opcode = 0x0F
	OpOUT Opcode = 0x10
	OpINC Opcode = 0x11
	OpINT Opcode = 0x12
	OpIRT Opcode = 0x13
	OpJMC Opcode = 0x14
	OpJME Opcode = 0x15
	OpJMF Opcode = 0x16
	OpJMK Opcode = 0x17
	OpJMP Opcode = 0x18
	OpJMS Opcode = 0x19
	OpJMZ Opcode = 0x1A
	OpJMN Opcode = 0x1B
	OpSTR Opcode = 0x1C
	OpLOD Opcode = 0x1D
	OpMOV Opcode = 0x1E
	OpNOT Opcode = 0x1F
	OpOR  Opcode = 0x20
	OpPOP Opcode = 0x21
	OpPSH Opcode = 0x22
	OpRET Opcode = 0x23
	OpSHL Opcode = 0x24
	OpASR Opcode = 0x25
	OpSHR Opcode = 0x26
	OpSTC Opcode = 0x27
	OpSTI Opcode = 0x28
	OpSTN Opcode = 0x29
	OpSTF Opcode = 0x2A
	OpSTS Opcode = 0x2B
	OpSTE Opcode = 0x2C
	OpSTZ Opcode = 0x2D
	OpSUB Opcode = 0x2E
	OpXOR Opcode = 0x2F

	OpcodeCount = 0x30
)

// AddressingMode selects which of an instruction's five operand bytes
// mean what. See spec.md §3 for the bit layout.
type AddressingMode uint8

const (
	ModeNone         AddressingMode = 0x0
	ModeReg          AddressingMode = 0x1
	ModeRegImm8      AddressingMode = 0x2
	ModeRegRAM       AddressingMode = 0x3
	ModeRAMRegImmReg AddressingMode = 0x4
	ModeReg24        AddressingMode = 0x5
	ModeImm24        AddressingMode = 0x6
	ModeImm8         AddressingMode = 0x7

	AddressingModeCount = 0x8
)

// MicroOp names one step of a decoded microprogram.
type MicroOp uint8

const (
	UMOVACC1 MicroOp = iota
	UMOVACC2
	UMOVPC
	UMOVADDBUS
	UMOVDATABUS
	UMOVREG
	URAMREAD
	URAMWRITE
	UDECSTK
	UINCSTK
	UCLC
	UCLE
	UCLI
	UCLN
	UCLS
	UCLZ
	UCLF
	USTH
	USTC
	USTI
	USTN
	USTF
	USTS
	USTE
	USTZ
	UJMC
	UJME
	UJMF
	UJMK
	UJMP
	UJMS
	UJMZ
	UJMN
	UIN
	UOUT
	UINT
	UADC
	UADD
	USUB
	UAND
	UOR
	UXOR
	UNOT
	USHL
	UASR
	USHR
	UCMP
	UINCPC
	uUndefined
)

// MicroOperand names a source or destination a micro-step reads or
// writes: a decoded instruction field, a bus line, or a fixed constant.
type MicroOperand uint8

const (
	OR1 MicroOperand = iota
	OR2
	OR4
	OV1
	OVX
	ORX
	OALUOut
	ODataBus
	ODataBus16
	OPCDataBus8
	OPCDataBus
	OStk
	OX1 // the constant 1
	OPC16
	OPC8
	OPC8Low
	OI
)

// microStep is one decoded step of an instruction's microprogram: a
// micro-op paired with its operand list, exactly the shape of the
// original's uInstruction{uopcode, uoperands}.
type microStep struct {
	op       MicroOp
	operands []MicroOperand
}
