// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a MOS 6502-family instruction set and emulator,
// spanning the NMOS 6502, Rockwell's bit-manipulation extensions, and the
// WDC 65C02 base additions.
package cpu

import "github.com/ericsmith/apex6502/internal/diag"

// CPU represents a single 6502-family processor bound to a Memory and an
// instruction set selected by Profile.
type CPU struct {
	Profile      Profile         // processor family bitset
	Reg          Registers       // CPU registers
	Mem          Memory          // assigned memory
	Cycles       uint64          // total executed CPU cycles
	Instructions uint64          // total executed instructions
	LastPC       uint16          // PC of the most recently executed instruction
	InstSet      *InstructionSet // instruction set used by the CPU

	pageCrossed bool
	deltaCycles int8
	trace       bool
	log         *diag.Logger
}

// Interrupt vectors.
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// NewCPU creates an emulated CPU of the given profile, bound to m. Trace
// output is discarded until SetLogger and SetTrace are both engaged.
func NewCPU(profile Profile, m Memory) *CPU {
	cpu := &CPU{
		Profile: profile,
		Mem:     m,
		InstSet: GetInstructionSet(profile),
		log:     diag.Discard(),
	}
	cpu.Reg.Init()
	return cpu
}

// SetLogger directs trace output at l.
func (cpu *CPU) SetLogger(l *diag.Logger) {
	cpu.log = l
}

// SetTrace enables or disables the per-instruction register trace line.
func (cpu *CPU) SetTrace(enabled bool) {
	cpu.trace = enabled
}

// cmosActive reports whether the CPU's profile includes the CMOS base
// instruction additions.
func (cpu *CPU) cmosActive() bool {
	return cpu.Profile&ProfileCMOS != 0
}

// SetPC updates the CPU program counter to addr.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.LoadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	opcode := cpu.Mem.LoadByte(addr)
	inst := cpu.InstSet.Lookup(opcode)
	return addr + uint16(inst.Length)
}

// Step executes a single instruction. It returns nil if the CPU should
// keep running, or a *HaltError describing why it stopped: either the
// opcode at PC is undefined for the active profile, or the instruction
// just executed branched or jumped to its own address (a tight,
// unrecoverable infinite loop).
func (cpu *CPU) Step() error {
	opcode := cpu.Mem.LoadByte(cpu.Reg.PC)
	inst := cpu.InstSet.Lookup(opcode)
	if inst.fn == nil {
		return cpu.haltf(KindUndefinedOpcode, "opcode $%02x is not valid for the active profile", opcode)
	}

	var buf [2]byte
	operand := buf[:inst.Length-1]
	cpu.Mem.LoadBytes(cpu.Reg.PC+1, operand)
	startPC := cpu.Reg.PC
	cpu.LastPC = startPC
	cpu.Reg.PC += uint16(inst.Length)

	cpu.pageCrossed = false
	cpu.deltaCycles = 0
	inst.fn(cpu, inst, operand)

	// NMOS indexed read-modify-write instructions pay their page-crossing
	// penalty unconditionally, whether or not the access actually crossed
	// a page; CMOS only pays it on a real crossing.
	if inst.Forced && !cpu.cmosActive() {
		cpu.pageCrossed = true
	}

	cpu.Cycles += uint64(int8(inst.Cycles) + cpu.deltaCycles)
	if cpu.pageCrossed {
		cpu.Cycles += uint64(inst.BPCycles)
	}
	cpu.Instructions++

	if cpu.trace {
		cpu.log.Tracef("%04x: %-4s a=%02x x=%02x y=%02x sp=%02x p=%02x cyc=%d",
			startPC, inst.Name, cpu.Reg.A, cpu.Reg.X, cpu.Reg.Y, cpu.Reg.SP,
			cpu.Reg.SavePS(false), cpu.Cycles)
	}

	// Only a semantic routine that assigns to Reg.PC directly (a branch,
	// jump, or call) can bring PC back to the address it started from;
	// any other instruction has already moved PC past its own length.
	if cpu.Reg.PC == startPC {
		return cpu.haltf(KindTightLoopHalt, "branch or jump to its own address")
	}
	return nil
}

// load reads an operand byte using the requested addressing mode.
func (cpu *CPU) load(mode Mode, operand []byte) byte {
	switch mode {
	case ModeImmediate:
		return operand[0]
	case ModeZeroPage:
		return cpu.Mem.LoadByte(operandToAddress(operand))
	case ModeZeroPageX:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.X)
		return cpu.Mem.LoadByte(zpaddr)
	case ModeZeroPageY:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.Y)
		return cpu.Mem.LoadByte(zpaddr)
	case ModeZPInd:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		return cpu.Mem.LoadByte(addr)
	case ModeZPXInd:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.X)
		addr := cpu.Mem.LoadAddress(zpaddr)
		return cpu.Mem.LoadByte(addr)
	case ModeZPIndY:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		addr, cpu.pageCrossed = offsetAddress(addr, cpu.Reg.Y)
		return cpu.Mem.LoadByte(addr)
	case ModeAbsolute:
		return cpu.Mem.LoadByte(operandToAddress(operand))
	case ModeAbsoluteX:
		addr, crossed := offsetAddress(operandToAddress(operand), cpu.Reg.X)
		cpu.pageCrossed = crossed
		return cpu.Mem.LoadByte(addr)
	case ModeAbsoluteY:
		addr, crossed := offsetAddress(operandToAddress(operand), cpu.Reg.Y)
		cpu.pageCrossed = crossed
		return cpu.Mem.LoadByte(addr)
	case ModeAccumulator:
		return cpu.Reg.A
	default:
		panic(cpu.haltf(KindUnknownAddressingMode, "load: unsupported mode %d", mode))
	}
}

// loadAddress resolves a jump/call target using the requested addressing
// mode. ModeAbsoluteInd is where the celebrated NMOS page-wrap bug lives:
// an indirect JMP whose pointer sits at page offset 0xFF reads its high
// byte from the start of the same page instead of the next one. CMOS
// fixes the bug and pays one extra cycle for the fix (applied by the
// jmpc semantic routine, mirroring how the bug's absence is itself part
// of the CMOS opcode's timing).
func (cpu *CPU) loadAddress(mode Mode, operand []byte) uint16 {
	switch mode {
	case ModeAbsolute:
		return operandToAddress(operand)
	case ModeAbsoluteInd:
		base := operandToAddress(operand)
		if cpu.cmosActive() {
			return cpu.Mem.LoadAddress(base)
		}
		lo := cpu.Mem.LoadByte(base)
		hi := cpu.Mem.LoadByte((base & 0xff00) | ((base + 1) & 0x00ff))
		return uint16(lo) | uint16(hi)<<8
	case ModeAbsXInd:
		base := operandToAddress(operand)
		addr, _ := offsetAddress(base, cpu.Reg.X)
		return cpu.Mem.LoadAddress(addr)
	default:
		panic(cpu.haltf(KindUnknownAddressingMode, "loadAddress: unsupported mode %d", mode))
	}
}

// store writes a byte value using the requested addressing mode.
func (cpu *CPU) store(mode Mode, operand []byte, v byte) {
	switch mode {
	case ModeZeroPage:
		cpu.Mem.StoreByte(operandToAddress(operand), v)
	case ModeZeroPageX:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.X)
		cpu.Mem.StoreByte(zpaddr, v)
	case ModeZeroPageY:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.Y)
		cpu.Mem.StoreByte(zpaddr, v)
	case ModeZPInd:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		cpu.Mem.StoreByte(addr, v)
	case ModeZPXInd:
		zpaddr := offsetZeroPage(operandToAddress(operand), cpu.Reg.X)
		addr := cpu.Mem.LoadAddress(zpaddr)
		cpu.Mem.StoreByte(addr, v)
	case ModeZPIndY:
		zpaddr := operandToAddress(operand)
		addr := cpu.Mem.LoadAddress(zpaddr)
		addr, _ = offsetAddress(addr, cpu.Reg.Y)
		cpu.Mem.StoreByte(addr, v)
	case ModeAbsolute:
		cpu.Mem.StoreByte(operandToAddress(operand), v)
	case ModeAbsoluteX:
		addr, crossed := offsetAddress(operandToAddress(operand), cpu.Reg.X)
		cpu.pageCrossed = crossed
		cpu.Mem.StoreByte(addr, v)
	case ModeAbsoluteY:
		addr, crossed := offsetAddress(operandToAddress(operand), cpu.Reg.Y)
		cpu.pageCrossed = crossed
		cpu.Mem.StoreByte(addr, v)
	case ModeAccumulator:
		cpu.Reg.A = v
	default:
		panic(cpu.haltf(KindUnknownAddressingMode, "store: unsupported mode %d", mode))
	}
}

// branch adds the signed relative offset in operand to PC, accounting for
// the +1 taken-branch cycle and a further +1 if the branch crosses a
// page boundary.
func (cpu *CPU) branch(operand []byte) {
	offset := operandToAddress(operand)
	oldPC := cpu.Reg.PC
	if offset < 0x80 {
		cpu.Reg.PC += uint16(offset)
	} else {
		cpu.Reg.PC -= uint16(0x100 - offset)
	}
	cpu.deltaCycles++
	if ((cpu.Reg.PC ^ oldPC) & 0xff00) != 0 {
		cpu.deltaCycles++
	}
}

// Push a value v onto the stack.
func (cpu *CPU) push(v byte) {
	cpu.Mem.StoreByte(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// pushAddress pushes addr onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// pop pops a value from the stack.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.Mem.LoadByte(stackAddress(cpu.Reg.SP))
}

// popAddress pops a 16-bit address off the stack, low byte first.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}

// updateNZ updates the Zero and Sign flags based on the value of v.
func (cpu *CPU) updateNZ(v byte) {
	cpu.Reg.Zero = (v == 0)
	cpu.Reg.Sign = ((v & 0x80) != 0)
}

// handleInterrupt pushes PC and the status byte, then loads PC from the
// vector at addr.
func (cpu *CPU) handleInterrupt(brk bool, addr uint16) {
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(cpu.Reg.SavePS(brk))

	cpu.Reg.InterruptDisable = true
	if cpu.cmosActive() {
		cpu.Reg.Decimal = false
	}

	cpu.Reg.PC = cpu.Mem.LoadAddress(addr)
}

// Reset loads PC from the reset vector, as if a hardware reset had
// occurred.
func (cpu *CPU) Reset() {
	cpu.Reg.PC = cpu.Mem.LoadAddress(vectorReset)
}

// SyntheticRTS performs the same return-from-subroutine sequence as the
// rts semantic routine. The APEX personality layer calls this after
// servicing a vector trap, so control resumes at the address just below
// the vector call on the emulated stack, exactly as if the vector were
// an ordinary subroutine.
func (cpu *CPU) SyntheticRTS() {
	addr := cpu.popAddress()
	cpu.Reg.PC = addr + 1
}

// Add with carry (CMOS)
func (cpu *CPU) adcc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)
	var v uint32

	cpu.Reg.Overflow = (((acc ^ add) & 0x80) == 0)

	switch cpu.Reg.Decimal {
	case true:
		cpu.deltaCycles++

		lo := (acc & 0x0f) + (add & 0x0f) + carry

		var carrylo uint32
		if lo >= 0x0a {
			carrylo = 0x10
			lo -= 0xa
		}

		hi := (acc & 0xf0) + (add & 0xf0) + carrylo

		if hi >= 0xa0 {
			cpu.Reg.Carry = true
			if hi >= 0x180 {
				cpu.Reg.Overflow = false
			}
			hi -= 0xa0
		} else {
			cpu.Reg.Carry = false
			if hi < 0x80 {
				cpu.Reg.Overflow = false
			}
		}

		v = hi | lo

	case false:
		v = acc + add + carry
		if v >= 0x100 {
			cpu.Reg.Carry = true
			if v >= 0x180 {
				cpu.Reg.Overflow = false
			}
		} else {
			cpu.Reg.Carry = false
			if v < 0x80 {
				cpu.Reg.Overflow = false
			}
		}
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Add with carry (NMOS). Decimal-mode N and V are computed from
// pre-correction intermediates, matching the later reference source.
func (cpu *CPU) adcn(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)
	var v uint32

	switch cpu.Reg.Decimal {
	case true:
		lo := (acc & 0x0f) + (add & 0x0f) + carry

		var carrylo uint32
		if lo >= 0x0a {
			carrylo = 0x10
			lo -= 0x0a
		}

		hi := (acc & 0xf0) + (add & 0xf0) + carrylo

		// N and V come from the sum before the high digit is corrected;
		// Z comes from the plain binary sum.
		mid := hi + lo
		cpu.Reg.Sign = (mid & 0x80) != 0
		cpu.Reg.Overflow = ((acc^mid)&0x80) != 0 && ((acc^add)&0x80) == 0
		cpu.Reg.Zero = byte(acc+add+carry) == 0

		if hi >= 0xa0 {
			cpu.Reg.Carry = true
			hi -= 0xa0
		} else {
			cpu.Reg.Carry = false
		}

		cpu.Reg.A = byte(hi | lo)
		return

	case false:
		v = acc + add + carry
		cpu.Reg.Carry = (v >= 0x100)
		cpu.Reg.Overflow = (((acc & 0x80) == (add & 0x80)) && ((acc & 0x80) != (v & 0x80)))
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, operand []byte) {
	cpu.Reg.A &= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 0x80) == 0x80)
	v = v << 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction, operand []byte) {
	if !cpu.Reg.Carry {
		cpu.branch(operand)
	}
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction, operand []byte) {
	if cpu.Reg.Carry {
		cpu.branch(operand)
	}
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction, operand []byte) {
	if cpu.Reg.Zero {
		cpu.branch(operand)
	}
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Zero = ((v & cpu.Reg.A) == 0)
	if inst.Mode != ModeImmediate {
		cpu.Reg.Sign = ((v & 0x80) != 0)
		cpu.Reg.Overflow = ((v & 0x40) != 0)
	}
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction, operand []byte) {
	if cpu.Reg.Sign {
		cpu.branch(operand)
	}
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction, operand []byte) {
	if !cpu.Reg.Zero {
		cpu.branch(operand)
	}
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction, operand []byte) {
	if !cpu.Reg.Sign {
		cpu.branch(operand)
	}
}

// Branch Always (CMOS)
func (cpu *CPU) bra(inst *Instruction, operand []byte) {
	cpu.branch(operand)
}

// Branch on Bit Reset (Rockwell). The bit number is the opcode's high
// nibble, low 3 bits.
func (cpu *CPU) bbr(inst *Instruction, operand []byte) {
	bit := (inst.Opcode >> 4) & 0x7
	v := cpu.Mem.LoadByte(operandToAddress(operand[:1]))
	if v&(1<<bit) == 0 {
		cpu.branch(operand[1:])
	}
}

// Branch on Bit Set (Rockwell)
func (cpu *CPU) bbs(inst *Instruction, operand []byte) {
	bit := (inst.Opcode >> 4) & 0x7
	v := cpu.Mem.LoadByte(operandToAddress(operand[:1]))
	if v&(1<<bit) != 0 {
		cpu.branch(operand[1:])
	}
}

// Reset Memory Bit (Rockwell)
func (cpu *CPU) rmb(inst *Instruction, operand []byte) {
	bit := (inst.Opcode >> 4) & 0x7
	addr := operandToAddress(operand)
	v := cpu.Mem.LoadByte(addr)
	cpu.Mem.StoreByte(addr, v&^(1<<bit))
}

// Set Memory Bit (Rockwell)
func (cpu *CPU) smb(inst *Instruction, operand []byte) {
	bit := (inst.Opcode >> 4) & 0x7
	addr := operandToAddress(operand)
	v := cpu.Mem.LoadByte(addr)
	cpu.Mem.StoreByte(addr, v|(1<<bit))
}

// Break
func (cpu *CPU) brk(inst *Instruction, operand []byte) {
	cpu.Reg.PC++
	cpu.handleInterrupt(true, vectorBRK)
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction, operand []byte) {
	if !cpu.Reg.Overflow {
		cpu.branch(operand)
	}
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction, operand []byte) {
	if cpu.Reg.Overflow {
		cpu.branch(operand)
	}
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction, operand []byte) {
	cpu.Reg.Carry = false
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction, operand []byte) {
	cpu.Reg.Decimal = false
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction, operand []byte) {
	cpu.Reg.InterruptDisable = false
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction, operand []byte) {
	cpu.Reg.Overflow = false
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.A >= v)
	cpu.updateNZ(cpu.Reg.A - v)
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.X >= v)
	cpu.updateNZ(cpu.Reg.X - v)
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = (cpu.Reg.Y >= v)
	cpu.updateNZ(cpu.Reg.Y - v)
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction, operand []byte) {
	if inst.Mode == ModeAccumulator {
		cpu.Reg.A--
		cpu.updateNZ(cpu.Reg.A)
		return
	}
	v := cpu.load(inst.Mode, operand) - 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction, operand []byte) {
	cpu.Reg.X--
	cpu.updateNZ(cpu.Reg.X)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction, operand []byte) {
	cpu.Reg.Y--
	cpu.updateNZ(cpu.Reg.Y)
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, operand []byte) {
	cpu.Reg.A ^= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction, operand []byte) {
	if inst.Mode == ModeAccumulator {
		cpu.Reg.A++
		cpu.updateNZ(cpu.Reg.A)
		return
	}
	v := cpu.load(inst.Mode, operand) + 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction, operand []byte) {
	cpu.Reg.X++
	cpu.updateNZ(cpu.Reg.X)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction, operand []byte) {
	cpu.Reg.Y++
	cpu.updateNZ(cpu.Reg.Y)
}

// Jump to memory address (NMOS)
func (cpu *CPU) jmpn(inst *Instruction, operand []byte) {
	cpu.Reg.PC = cpu.loadAddress(inst.Mode, operand)
}

// Jump to memory address (CMOS). The indirect form pays the extra cycle
// that fixes the NMOS page-wrap bug.
func (cpu *CPU) jmpc(inst *Instruction, operand []byte) {
	if inst.Mode == ModeAbsoluteInd {
		cpu.deltaCycles++
	}
	cpu.Reg.PC = cpu.loadAddress(inst.Mode, operand)
}

// Jump to subroutine
func (cpu *CPU) jsr(inst *Instruction, operand []byte) {
	addr := cpu.loadAddress(inst.Mode, operand)
	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.Reg.PC = addr
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.X)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.Y)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 1) == 1)
	v = v >> 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// No-operation
func (cpu *CPU) nop(inst *Instruction, operand []byte) {
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, operand []byte) {
	cpu.Reg.A |= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.A)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.SavePS(true))
}

// Push X register (CMOS)
func (cpu *CPU) phx(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.X)
}

// Push Y register (CMOS)
func (cpu *CPU) phy(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.Y)
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.pop()
	cpu.updateNZ(cpu.Reg.A)
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction, operand []byte) {
	v := cpu.pop()
	cpu.Reg.RestorePS(v)
}

// Pull (pop) X register (CMOS)
func (cpu *CPU) plx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.pop()
	cpu.updateNZ(cpu.Reg.X)
}

// Pull (pop) Y register (CMOS)
func (cpu *CPU) ply(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.pop()
	cpu.updateNZ(cpu.Reg.Y)
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction, operand []byte) {
	v := cpu.pop()
	cpu.Reg.RestorePS(v)
	cpu.Reg.PC = cpu.popAddress()
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, operand []byte) {
	addr := cpu.popAddress()
	cpu.Reg.PC = addr + 1
}

// Subtract with Carry (CMOS)
func (cpu *CPU) sbcc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	sub := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)
	cpu.Reg.Overflow = ((acc ^ sub) & 0x80) != 0
	var v uint32

	switch cpu.Reg.Decimal {
	case true:
		cpu.deltaCycles++

		lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

		var carrylo uint32
		if lo < 0x10 {
			lo -= 0x06
			carrylo = 0
		} else {
			lo -= 0x10
			carrylo = 0x10
		}

		hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

		if hi < 0x100 {
			cpu.Reg.Carry = false
			if hi < 0x80 {
				cpu.Reg.Overflow = false
			}
			hi -= 0x60
		} else {
			cpu.Reg.Carry = true
			if hi >= 0x180 {
				cpu.Reg.Overflow = false
			}
			hi -= 0x100
		}

		v = hi | lo

	case false:
		v = 0xff + acc - sub + carry
		if v < 0x100 {
			cpu.Reg.Carry = false
			if v < 0x80 {
				cpu.Reg.Overflow = false
			}
		} else {
			cpu.Reg.Carry = true
			if v >= 0x180 {
				cpu.Reg.Overflow = false
			}
		}
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Subtract with Carry (NMOS)
func (cpu *CPU) sbcn(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	sub := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.Reg.Carry)
	var v uint32

	switch cpu.Reg.Decimal {
	case true:
		// N, V and Z come from the plain binary difference, before any
		// decimal correction.
		bin := 0xff + acc - sub + carry
		cpu.Reg.Sign = (bin & 0x80) != 0
		cpu.Reg.Overflow = ((acc^bin)&0x80) != 0 && ((acc^sub)&0x80) != 0
		cpu.Reg.Zero = byte(bin) == 0

		lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

		var carrylo uint32
		if lo < 0x10 {
			lo -= 0x06
			carrylo = 0
		} else {
			lo -= 0x10
			carrylo = 0x10
		}

		hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

		if hi < 0x100 {
			cpu.Reg.Carry = false
			hi -= 0x60
		} else {
			cpu.Reg.Carry = true
			hi -= 0x100
		}

		cpu.Reg.A = byte(hi | lo)
		return

	case false:
		v = 0xff + acc - sub + carry
		cpu.Reg.Carry = (v >= 0x100)
		cpu.Reg.Overflow = (((acc & 0x80) != (sub & 0x80)) && ((acc & 0x80) != (v & 0x80)))
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(byte(v))
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction, operand []byte) {
	cpu.Reg.Carry = true
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction, operand []byte) {
	cpu.Reg.Decimal = true
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction, operand []byte) {
	cpu.Reg.InterruptDisable = true
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.Y)
}

// Store Zero (CMOS)
func (cpu *CPU) stz(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, 0)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.Y)
}

// Test and Reset Bits (CMOS)
func (cpu *CPU) trb(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Zero = ((v & cpu.Reg.A) == 0)
	nv := (v & (cpu.Reg.A ^ 0xff))
	cpu.store(inst.Mode, operand, nv)
}

// Test and Set Bits (CMOS)
func (cpu *CPU) tsb(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Zero = ((v & cpu.Reg.A) == 0)
	nv := (v | cpu.Reg.A)
	cpu.store(inst.Mode, operand, nv)
}

// Transfer stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.SP
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.X
	cpu.updateNZ(cpu.Reg.A)
}

// Transfer X register to the stack pointer
func (cpu *CPU) txs(inst *Instruction, operand []byte) {
	cpu.Reg.SP = cpu.Reg.X
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.Y
	cpu.updateNZ(cpu.Reg.A)
}

// Unused instruction (NMOS)
func (cpu *CPU) unusedn(inst *Instruction, operand []byte) {
}

// Unused instruction (CMOS)
func (cpu *CPU) unusedc(inst *Instruction, operand []byte) {
}

func boolToUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
