// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"io"
	"strings"
)

// Profile is a bitset of processor-family memberships. An Info row belongs
// to exactly one Profile bit at the table level; a requested InstructionSet
// profile is the union of bits the caller wants active, and a row is kept
// only if its bit is set in that union.
type Profile uint8

const (
	ProfileBase      Profile = 1 << iota // plain NMOS 6502
	ProfileRockwell                      // bit-manipulation opcodes on some Rockwell NMOS parts
	ProfileCMOS                          // 65C02 base additions
	ProfileWDCCMOS                       // WDC 65C02 additions (STP, WAI, ...)
	ProfileWDC16Bit                      // 65816 additions (not executed; table entries only)
	ProfileCBM65CE02                     // Commodore 65CE02 additions (not executed; table entries only)
)

// Predefined profile combinations, named after the CPU part they describe.
const (
	CPU6502      = ProfileBase
	CPUR6502     = ProfileBase | ProfileRockwell
	CPU65C02     = ProfileBase | ProfileCMOS
	CPUR65C02    = ProfileBase | ProfileCMOS | ProfileRockwell
	CPUWDC65C02  = CPUR65C02 | ProfileWDCCMOS
	CPUWDC65C816 = ProfileBase | ProfileCMOS | ProfileWDCCMOS | ProfileWDC16Bit
	CPU65CE02    = ProfileBase | ProfileCMOS | ProfileRockwell | ProfileCBM65CE02
)

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBBR
	symBBS
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRA
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPHX
	symPHY
	symPLA
	symPLP
	symPLX
	symPLY
	symRMB
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSMB
	symSTA
	symSTZ
	symSTX
	symSTY
	symTAX
	symTAY
	symTRB
	symTSB
	symTSX
	symTXA
	symTXS
	symTYA
)

type instfunc func(c *CPU, inst *Instruction, operand []byte)

// Emulator implementation for each opcode. fn[0] is the NMOS routine,
// fn[1] the CMOS routine; a nil entry means the mnemonic doesn't exist on
// that family.
type opcodeImpl struct {
	sym  opsym
	name string
	fn   [2]instfunc
}

var impl = []opcodeImpl{
	{symADC, "ADC", [2]instfunc{(*CPU).adcn, (*CPU).adcc}},
	{symAND, "AND", [2]instfunc{(*CPU).and, (*CPU).and}},
	{symASL, "ASL", [2]instfunc{(*CPU).asl, (*CPU).asl}},
	{symBBR, "BBR", [2]instfunc{(*CPU).bbr, (*CPU).bbr}},
	{symBBS, "BBS", [2]instfunc{(*CPU).bbs, (*CPU).bbs}},
	{symBCC, "BCC", [2]instfunc{(*CPU).bcc, (*CPU).bcc}},
	{symBCS, "BCS", [2]instfunc{(*CPU).bcs, (*CPU).bcs}},
	{symBEQ, "BEQ", [2]instfunc{(*CPU).beq, (*CPU).beq}},
	{symBIT, "BIT", [2]instfunc{(*CPU).bit, (*CPU).bit}},
	{symBMI, "BMI", [2]instfunc{(*CPU).bmi, (*CPU).bmi}},
	{symBNE, "BNE", [2]instfunc{(*CPU).bne, (*CPU).bne}},
	{symBPL, "BPL", [2]instfunc{(*CPU).bpl, (*CPU).bpl}},
	{symBRA, "BRA", [2]instfunc{nil, (*CPU).bra}},
	{symBRK, "BRK", [2]instfunc{(*CPU).brk, (*CPU).brk}},
	{symBVC, "BVC", [2]instfunc{(*CPU).bvc, (*CPU).bvc}},
	{symBVS, "BVS", [2]instfunc{(*CPU).bvs, (*CPU).bvs}},
	{symCLC, "CLC", [2]instfunc{(*CPU).clc, (*CPU).clc}},
	{symCLD, "CLD", [2]instfunc{(*CPU).cld, (*CPU).cld}},
	{symCLI, "CLI", [2]instfunc{(*CPU).cli, (*CPU).cli}},
	{symCLV, "CLV", [2]instfunc{(*CPU).clv, (*CPU).clv}},
	{symCMP, "CMP", [2]instfunc{(*CPU).cmp, (*CPU).cmp}},
	{symCPX, "CPX", [2]instfunc{(*CPU).cpx, (*CPU).cpx}},
	{symCPY, "CPY", [2]instfunc{(*CPU).cpy, (*CPU).cpy}},
	{symDEC, "DEC", [2]instfunc{(*CPU).dec, (*CPU).dec}},
	{symDEX, "DEX", [2]instfunc{(*CPU).dex, (*CPU).dex}},
	{symDEY, "DEY", [2]instfunc{(*CPU).dey, (*CPU).dey}},
	{symEOR, "EOR", [2]instfunc{(*CPU).eor, (*CPU).eor}},
	{symINC, "INC", [2]instfunc{(*CPU).inc, (*CPU).inc}},
	{symINX, "INX", [2]instfunc{(*CPU).inx, (*CPU).inx}},
	{symINY, "INY", [2]instfunc{(*CPU).iny, (*CPU).iny}},
	{symJMP, "JMP", [2]instfunc{(*CPU).jmpn, (*CPU).jmpc}},
	{symJSR, "JSR", [2]instfunc{(*CPU).jsr, (*CPU).jsr}},
	{symLDA, "LDA", [2]instfunc{(*CPU).lda, (*CPU).lda}},
	{symLDX, "LDX", [2]instfunc{(*CPU).ldx, (*CPU).ldx}},
	{symLDY, "LDY", [2]instfunc{(*CPU).ldy, (*CPU).ldy}},
	{symLSR, "LSR", [2]instfunc{(*CPU).lsr, (*CPU).lsr}},
	{symNOP, "NOP", [2]instfunc{(*CPU).nop, (*CPU).nop}},
	{symORA, "ORA", [2]instfunc{(*CPU).ora, (*CPU).ora}},
	{symPHA, "PHA", [2]instfunc{(*CPU).pha, (*CPU).pha}},
	{symPHP, "PHP", [2]instfunc{(*CPU).php, (*CPU).php}},
	{symPHX, "PHX", [2]instfunc{nil, (*CPU).phx}},
	{symPHY, "PHY", [2]instfunc{nil, (*CPU).phy}},
	{symPLA, "PLA", [2]instfunc{(*CPU).pla, (*CPU).pla}},
	{symPLP, "PLP", [2]instfunc{(*CPU).plp, (*CPU).plp}},
	{symPLX, "PLX", [2]instfunc{nil, (*CPU).plx}},
	{symPLY, "PLY", [2]instfunc{nil, (*CPU).ply}},
	{symRMB, "RMB", [2]instfunc{(*CPU).rmb, (*CPU).rmb}},
	{symROL, "ROL", [2]instfunc{(*CPU).rol, (*CPU).rol}},
	{symROR, "ROR", [2]instfunc{(*CPU).ror, (*CPU).ror}},
	{symRTI, "RTI", [2]instfunc{(*CPU).rti, (*CPU).rti}},
	{symRTS, "RTS", [2]instfunc{(*CPU).rts, (*CPU).rts}},
	{symSBC, "SBC", [2]instfunc{(*CPU).sbcn, (*CPU).sbcc}},
	{symSEC, "SEC", [2]instfunc{(*CPU).sec, (*CPU).sec}},
	{symSED, "SED", [2]instfunc{(*CPU).sed, (*CPU).sed}},
	{symSEI, "SEI", [2]instfunc{(*CPU).sei, (*CPU).sei}},
	{symSMB, "SMB", [2]instfunc{(*CPU).smb, (*CPU).smb}},
	{symSTA, "STA", [2]instfunc{(*CPU).sta, (*CPU).sta}},
	{symSTX, "STX", [2]instfunc{(*CPU).stx, (*CPU).stx}},
	{symSTY, "STY", [2]instfunc{(*CPU).sty, (*CPU).sty}},
	{symSTZ, "STZ", [2]instfunc{nil, (*CPU).stz}},
	{symTAX, "TAX", [2]instfunc{(*CPU).tax, (*CPU).tax}},
	{symTAY, "TAY", [2]instfunc{(*CPU).tay, (*CPU).tay}},
	{symTRB, "TRB", [2]instfunc{nil, (*CPU).trb}},
	{symTSB, "TSB", [2]instfunc{nil, (*CPU).tsb}},
	{symTSX, "TSX", [2]instfunc{(*CPU).tsx, (*CPU).tsx}},
	{symTXA, "TXA", [2]instfunc{(*CPU).txa, (*CPU).txa}},
	{symTXS, "TXS", [2]instfunc{(*CPU).txs, (*CPU).txs}},
	{symTYA, "TYA", [2]instfunc{(*CPU).tya, (*CPU).tya}},
}

// Mode describes a memory addressing mode. The full 18-mode set covers
// every family in the retrieved instruction-set database; only the first
// sixteen have opcode rows with a real semantic routine in this build
// (RELATIVE_16 and ST_VEC_IND_Y are 65CE02-only and out of scope per the
// "not a 65816 full-mode emulator" non-goal), but all 18 are needed so
// Disassemble/OperandSizeBytes/AddressModeAddedCycles stay total functions
// over every row the static table can contain.
type Mode byte

const (
	ModeImplied      Mode = iota // no operand
	ModeAccumulator              // operates on A; no operand byte
	ModeImmediate                // #$nn
	ModeZeroPage                 // $nn
	ModeZeroPageX                // $nn,X
	ModeZeroPageY                // $nn,Y
	ModeZPInd                    // ($nn)        -- CMOS
	ModeZPXInd                   // ($nn,X)
	ModeZPIndY                   // ($nn),Y
	ModeAbsolute                 // $nnnn
	ModeAbsoluteX                // $nnnn,X
	ModeAbsoluteY                // $nnnn,Y
	ModeAbsoluteInd              // ($nnnn)      -- JMP only
	ModeAbsXInd                  // ($nnnn,X)    -- CMOS, JMP only
	ModeRelative                 // branch target, 8-bit signed displacement
	ModeZPRelative               // $nn,rel      -- Rockwell BBR/BBS
	ModeRelative16               // 16-bit relative -- 65CE02
	ModeStVecIndY                // 65CE02 stack-relative indirect,Y
)

// Disassembler formatting for each addressing mode.
var modeFormat = [...]string{
	"%s",        // Implied
	"%s a",      // Accumulator
	"#$%s",      // Immediate
	"$%s",       // ZeroPage
	"$%s,X",     // ZeroPageX
	"$%s,Y",     // ZeroPageY
	"($%s)",     // ZPInd
	"($%s,X)",   // ZPXInd
	"($%s),Y",   // ZPIndY
	"$%s",       // Absolute
	"$%s,X",     // AbsoluteX
	"$%s,Y",     // AbsoluteY
	"($%s)",     // AbsoluteInd
	"($%s,X)",   // AbsXInd
	"$%s",       // Relative
	"$%s,$%s",   // ZPRelative
	"$%s",       // Relative16
	"($%s),Y",   // StVecIndY
}

// OperandSizeBytes returns the number of operand bytes (excluding the
// opcode byte) consumed by mode.
func OperandSizeBytes(mode Mode) byte {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeZPInd, ModeZPXInd, ModeZPIndY, ModeRelative, ModeStVecIndY:
		return 1
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeAbsoluteInd,
		ModeAbsXInd, ModeZPRelative, ModeRelative16:
		return 2
	default:
		return 0
	}
}

// AddressModeAddedCycles returns 1 for the indexed modes that can pay a
// page-crossing cycle (absolute,X, absolute,Y and (zp),Y) and 0 for every
// other mode. Neither the CPU core nor the opcode-matrix/summary-table
// renderers call it: the CPU takes its timing from each Instruction's
// Cycles and BPCycles, and the renderers print Cycles.
func AddressModeAddedCycles(mode Mode) byte {
	switch mode {
	case ModeAbsoluteX, ModeAbsoluteY, ModeZPIndY:
		return 1
	default:
		return 0
	}
}

// Opcode data for an (opcode, mode) pair.
type opcodeData struct {
	sym      opsym
	mode     Mode
	opcode   byte
	length   byte
	cycles   byte
	bpcycles byte  // additional cycles if the access crosses a page
	forced   bool  // NMOS indexed-RMW pays the page-crossing cycle unconditionally; CMOS pays it only on an actual crossing
	cmos     bool  // valid only when ProfileCMOS is active
	rockwell bool  // valid only when ProfileRockwell is active
}

// All valid (opcode, mode) pairs for BASE and CMOS mnemonics. The
// Rockwell bit-manipulation opcodes are generated by addRockwellBitOps.
// WDC_CMOS/WDC_16_BIT/CBM_65CE02 rows beyond these are out of scope for
// execution (see the Mode doc comment) and are not enumerated here; the
// profile bitset and Mode enum still make room for them.
var data = []opcodeData{
	{symLDA, ModeImmediate, 0xa9, 2, 2, 0, false, false, false},
	{symLDA, ModeZeroPage, 0xa5, 2, 3, 0, false, false, false},
	{symLDA, ModeZeroPageX, 0xb5, 2, 4, 0, false, false, false},
	{symLDA, ModeAbsolute, 0xad, 3, 4, 0, false, false, false},
	{symLDA, ModeAbsoluteX, 0xbd, 3, 4, 1, false, false, false},
	{symLDA, ModeAbsoluteY, 0xb9, 3, 4, 1, false, false, false},
	{symLDA, ModeZPXInd, 0xa1, 2, 6, 0, false, false, false},
	{symLDA, ModeZPIndY, 0xb1, 2, 5, 1, false, false, false},
	{symLDA, ModeZPInd, 0xb2, 2, 5, 0, false, true, false},

	{symLDX, ModeImmediate, 0xa2, 2, 2, 0, false, false, false},
	{symLDX, ModeZeroPage, 0xa6, 2, 3, 0, false, false, false},
	{symLDX, ModeZeroPageY, 0xb6, 2, 4, 0, false, false, false},
	{symLDX, ModeAbsolute, 0xae, 3, 4, 0, false, false, false},
	{symLDX, ModeAbsoluteY, 0xbe, 3, 4, 1, false, false, false},

	{symLDY, ModeImmediate, 0xa0, 2, 2, 0, false, false, false},
	{symLDY, ModeZeroPage, 0xa4, 2, 3, 0, false, false, false},
	{symLDY, ModeZeroPageX, 0xb4, 2, 4, 0, false, false, false},
	{symLDY, ModeAbsolute, 0xac, 3, 4, 0, false, false, false},
	{symLDY, ModeAbsoluteX, 0xbc, 3, 4, 1, false, false, false},

	{symSTA, ModeZeroPage, 0x85, 2, 3, 0, false, false, false},
	{symSTA, ModeZeroPageX, 0x95, 2, 4, 0, false, false, false},
	{symSTA, ModeAbsolute, 0x8d, 3, 4, 0, false, false, false},
	{symSTA, ModeAbsoluteX, 0x9d, 3, 5, 0, false, false, false},
	{symSTA, ModeAbsoluteY, 0x99, 3, 5, 0, false, false, false},
	{symSTA, ModeZPXInd, 0x81, 2, 6, 0, false, false, false},
	{symSTA, ModeZPIndY, 0x91, 2, 6, 0, false, false, false},
	{symSTA, ModeZPInd, 0x92, 2, 5, 0, false, true, false},

	{symSTX, ModeZeroPage, 0x86, 2, 3, 0, false, false, false},
	{symSTX, ModeZeroPageY, 0x96, 2, 4, 0, false, false, false},
	{symSTX, ModeAbsolute, 0x8e, 3, 4, 0, false, false, false},

	{symSTY, ModeZeroPage, 0x84, 2, 3, 0, false, false, false},
	{symSTY, ModeZeroPageX, 0x94, 2, 4, 0, false, false, false},
	{symSTY, ModeAbsolute, 0x8c, 3, 4, 0, false, false, false},

	{symSTZ, ModeZeroPage, 0x64, 2, 3, 0, false, true, false},
	{symSTZ, ModeZeroPageX, 0x74, 2, 4, 0, false, true, false},
	{symSTZ, ModeAbsolute, 0x9c, 3, 4, 0, false, true, false},
	{symSTZ, ModeAbsoluteX, 0x9e, 3, 5, 0, false, true, false},

	{symADC, ModeImmediate, 0x69, 2, 2, 0, false, false, false},
	{symADC, ModeZeroPage, 0x65, 2, 3, 0, false, false, false},
	{symADC, ModeZeroPageX, 0x75, 2, 4, 0, false, false, false},
	{symADC, ModeAbsolute, 0x6d, 3, 4, 0, false, false, false},
	{symADC, ModeAbsoluteX, 0x7d, 3, 4, 1, false, false, false},
	{symADC, ModeAbsoluteY, 0x79, 3, 4, 1, false, false, false},
	{symADC, ModeZPXInd, 0x61, 2, 6, 0, false, false, false},
	{symADC, ModeZPIndY, 0x71, 2, 5, 1, false, false, false},
	{symADC, ModeZPInd, 0x72, 2, 5, 1, false, true, false},

	{symSBC, ModeImmediate, 0xe9, 2, 2, 0, false, false, false},
	{symSBC, ModeZeroPage, 0xe5, 2, 3, 0, false, false, false},
	{symSBC, ModeZeroPageX, 0xf5, 2, 4, 0, false, false, false},
	{symSBC, ModeAbsolute, 0xed, 3, 4, 0, false, false, false},
	{symSBC, ModeAbsoluteX, 0xfd, 3, 4, 1, false, false, false},
	{symSBC, ModeAbsoluteY, 0xf9, 3, 4, 1, false, false, false},
	{symSBC, ModeZPXInd, 0xe1, 2, 6, 0, false, false, false},
	{symSBC, ModeZPIndY, 0xf1, 2, 5, 1, false, false, false},
	{symSBC, ModeZPInd, 0xf2, 2, 5, 1, false, true, false},

	{symCMP, ModeImmediate, 0xc9, 2, 2, 0, false, false, false},
	{symCMP, ModeZeroPage, 0xc5, 2, 3, 0, false, false, false},
	{symCMP, ModeZeroPageX, 0xd5, 2, 4, 0, false, false, false},
	{symCMP, ModeAbsolute, 0xcd, 3, 4, 0, false, false, false},
	{symCMP, ModeAbsoluteX, 0xdd, 3, 4, 1, false, false, false},
	{symCMP, ModeAbsoluteY, 0xd9, 3, 4, 1, false, false, false},
	{symCMP, ModeZPXInd, 0xc1, 2, 6, 0, false, false, false},
	{symCMP, ModeZPIndY, 0xd1, 2, 5, 1, false, false, false},
	{symCMP, ModeZPInd, 0xd2, 2, 5, 0, false, true, false},

	{symCPX, ModeImmediate, 0xe0, 2, 2, 0, false, false, false},
	{symCPX, ModeZeroPage, 0xe4, 2, 3, 0, false, false, false},
	{symCPX, ModeAbsolute, 0xec, 3, 4, 0, false, false, false},

	{symCPY, ModeImmediate, 0xc0, 2, 2, 0, false, false, false},
	{symCPY, ModeZeroPage, 0xc4, 2, 3, 0, false, false, false},
	{symCPY, ModeAbsolute, 0xcc, 3, 4, 0, false, false, false},

	{symBIT, ModeImmediate, 0x89, 2, 2, 0, false, true, false},
	{symBIT, ModeZeroPage, 0x24, 2, 3, 0, false, false, false},
	{symBIT, ModeZeroPageX, 0x34, 2, 4, 0, false, true, false},
	{symBIT, ModeAbsolute, 0x2c, 3, 4, 0, false, false, false},
	{symBIT, ModeAbsoluteX, 0x3c, 3, 4, 1, false, true, false},

	{symCLC, ModeImplied, 0x18, 1, 2, 0, false, false, false},
	{symSEC, ModeImplied, 0x38, 1, 2, 0, false, false, false},
	{symCLI, ModeImplied, 0x58, 1, 2, 0, false, false, false},
	{symSEI, ModeImplied, 0x78, 1, 2, 0, false, false, false},
	{symCLD, ModeImplied, 0xd8, 1, 2, 0, false, false, false},
	{symSED, ModeImplied, 0xf8, 1, 2, 0, false, false, false},
	{symCLV, ModeImplied, 0xb8, 1, 2, 0, false, false, false},

	{symBCC, ModeRelative, 0x90, 2, 2, 1, false, false, false},
	{symBCS, ModeRelative, 0xb0, 2, 2, 1, false, false, false},
	{symBEQ, ModeRelative, 0xf0, 2, 2, 1, false, false, false},
	{symBNE, ModeRelative, 0xd0, 2, 2, 1, false, false, false},
	{symBMI, ModeRelative, 0x30, 2, 2, 1, false, false, false},
	{symBPL, ModeRelative, 0x10, 2, 2, 1, false, false, false},
	{symBVC, ModeRelative, 0x50, 2, 2, 1, false, false, false},
	{symBVS, ModeRelative, 0x70, 2, 2, 1, false, false, false},
	{symBRA, ModeRelative, 0x80, 2, 2, 1, false, true, false},

	{symBRK, ModeImplied, 0x00, 1, 7, 0, false, false, false},

	{symAND, ModeImmediate, 0x29, 2, 2, 0, false, false, false},
	{symAND, ModeZeroPage, 0x25, 2, 3, 0, false, false, false},
	{symAND, ModeZeroPageX, 0x35, 2, 4, 0, false, false, false},
	{symAND, ModeAbsolute, 0x2d, 3, 4, 0, false, false, false},
	{symAND, ModeAbsoluteX, 0x3d, 3, 4, 1, false, false, false},
	{symAND, ModeAbsoluteY, 0x39, 3, 4, 1, false, false, false},
	{symAND, ModeZPXInd, 0x21, 2, 6, 0, false, false, false},
	{symAND, ModeZPIndY, 0x31, 2, 5, 1, false, false, false},
	{symAND, ModeZPInd, 0x32, 2, 5, 0, false, true, false},

	{symORA, ModeImmediate, 0x09, 2, 2, 0, false, false, false},
	{symORA, ModeZeroPage, 0x05, 2, 3, 0, false, false, false},
	{symORA, ModeZeroPageX, 0x15, 2, 4, 0, false, false, false},
	{symORA, ModeAbsolute, 0x0d, 3, 4, 0, false, false, false},
	{symORA, ModeAbsoluteX, 0x1d, 3, 4, 1, false, false, false},
	{symORA, ModeAbsoluteY, 0x19, 3, 4, 1, false, false, false},
	{symORA, ModeZPXInd, 0x01, 2, 6, 0, false, false, false},
	{symORA, ModeZPIndY, 0x11, 2, 5, 1, false, false, false},
	{symORA, ModeZPInd, 0x12, 2, 5, 0, false, true, false},

	{symEOR, ModeImmediate, 0x49, 2, 2, 0, false, false, false},
	{symEOR, ModeZeroPage, 0x45, 2, 3, 0, false, false, false},
	{symEOR, ModeZeroPageX, 0x55, 2, 4, 0, false, false, false},
	{symEOR, ModeAbsolute, 0x4d, 3, 4, 0, false, false, false},
	{symEOR, ModeAbsoluteX, 0x5d, 3, 4, 1, false, false, false},
	{symEOR, ModeAbsoluteY, 0x59, 3, 4, 1, false, false, false},
	{symEOR, ModeZPXInd, 0x41, 2, 6, 0, false, false, false},
	{symEOR, ModeZPIndY, 0x51, 2, 5, 1, false, false, false},
	{symEOR, ModeZPInd, 0x52, 2, 5, 0, false, true, false},

	{symINC, ModeZeroPage, 0xe6, 2, 5, 0, false, false, false},
	{symINC, ModeZeroPageX, 0xf6, 2, 6, 0, false, false, false},
	{symINC, ModeAbsolute, 0xee, 3, 6, 0, false, false, false},
	{symINC, ModeAbsoluteX, 0xfe, 3, 6, 1, true, false, false},
	{symINC, ModeAccumulator, 0x1a, 1, 2, 0, false, true, false},

	{symDEC, ModeZeroPage, 0xc6, 2, 5, 0, false, false, false},
	{symDEC, ModeZeroPageX, 0xd6, 2, 6, 0, false, false, false},
	{symDEC, ModeAbsolute, 0xce, 3, 6, 0, false, false, false},
	{symDEC, ModeAbsoluteX, 0xde, 3, 6, 1, true, false, false},
	{symDEC, ModeAccumulator, 0x3a, 1, 2, 0, false, true, false},

	{symINX, ModeImplied, 0xe8, 1, 2, 0, false, false, false},
	{symINY, ModeImplied, 0xc8, 1, 2, 0, false, false, false},

	{symDEX, ModeImplied, 0xca, 1, 2, 0, false, false, false},
	{symDEY, ModeImplied, 0x88, 1, 2, 0, false, false, false},

	{symJMP, ModeAbsolute, 0x4c, 3, 3, 0, false, false, false},
	{symJMP, ModeAbsXInd, 0x7c, 3, 6, 0, false, true, false},
	{symJMP, ModeAbsoluteInd, 0x6c, 3, 5, 0, false, false, false},

	{symJSR, ModeAbsolute, 0x20, 3, 6, 0, false, false, false},
	{symRTS, ModeImplied, 0x60, 1, 6, 0, false, false, false},

	{symRTI, ModeImplied, 0x40, 1, 6, 0, false, false, false},

	{symNOP, ModeImplied, 0xea, 1, 2, 0, false, false, false},

	{symTAX, ModeImplied, 0xaa, 1, 2, 0, false, false, false},
	{symTXA, ModeImplied, 0x8a, 1, 2, 0, false, false, false},
	{symTAY, ModeImplied, 0xa8, 1, 2, 0, false, false, false},
	{symTYA, ModeImplied, 0x98, 1, 2, 0, false, false, false},
	{symTXS, ModeImplied, 0x9a, 1, 2, 0, false, false, false},
	{symTSX, ModeImplied, 0xba, 1, 2, 0, false, false, false},

	{symTRB, ModeZeroPage, 0x14, 2, 5, 0, false, true, false},
	{symTRB, ModeAbsolute, 0x1c, 3, 6, 0, false, true, false},
	{symTSB, ModeZeroPage, 0x04, 2, 5, 0, false, true, false},
	{symTSB, ModeAbsolute, 0x0c, 3, 6, 0, false, true, false},

	{symPHA, ModeImplied, 0x48, 1, 3, 0, false, false, false},
	{symPLA, ModeImplied, 0x68, 1, 4, 0, false, false, false},
	{symPHP, ModeImplied, 0x08, 1, 3, 0, false, false, false},
	{symPLP, ModeImplied, 0x28, 1, 4, 0, false, false, false},
	{symPHX, ModeImplied, 0xda, 1, 3, 0, false, true, false},
	{symPLX, ModeImplied, 0xfa, 1, 4, 0, false, true, false},
	{symPHY, ModeImplied, 0x5a, 1, 3, 0, false, true, false},
	{symPLY, ModeImplied, 0x7a, 1, 4, 0, false, true, false},

	{symASL, ModeAccumulator, 0x0a, 1, 2, 0, false, false, false},
	{symASL, ModeZeroPage, 0x06, 2, 5, 0, false, false, false},
	{symASL, ModeZeroPageX, 0x16, 2, 6, 0, false, false, false},
	{symASL, ModeAbsolute, 0x0e, 3, 6, 0, false, false, false},
	{symASL, ModeAbsoluteX, 0x1e, 3, 6, 1, true, false, false},

	{symLSR, ModeAccumulator, 0x4a, 1, 2, 0, false, false, false},
	{symLSR, ModeZeroPage, 0x46, 2, 5, 0, false, false, false},
	{symLSR, ModeZeroPageX, 0x56, 2, 6, 0, false, false, false},
	{symLSR, ModeAbsolute, 0x4e, 3, 6, 0, false, false, false},
	{symLSR, ModeAbsoluteX, 0x5e, 3, 6, 1, true, false, false},

	{symROL, ModeAccumulator, 0x2a, 1, 2, 0, false, false, false},
	{symROL, ModeZeroPage, 0x26, 2, 5, 0, false, false, false},
	{symROL, ModeZeroPageX, 0x36, 2, 6, 0, false, false, false},
	{symROL, ModeAbsolute, 0x2e, 3, 6, 0, false, false, false},
	{symROL, ModeAbsoluteX, 0x3e, 3, 6, 1, true, false, false},

	{symROR, ModeAccumulator, 0x6a, 1, 2, 0, false, false, false},
	{symROR, ModeZeroPage, 0x66, 2, 5, 0, false, false, false},
	{symROR, ModeZeroPageX, 0x76, 2, 6, 0, false, false, false},
	{symROR, ModeAbsolute, 0x6e, 3, 6, 0, false, false, false},
	{symROR, ModeAbsoluteX, 0x7e, 3, 6, 1, true, false, false},
}

// Unused opcodes.
type unused struct {
	opcode byte
	mode   Mode
	length byte
	cycles byte
}

var unusedData = []unused{
	{0x02, ModeZeroPage, 2, 2},
	{0x22, ModeZeroPage, 2, 2},
	{0x42, ModeZeroPage, 2, 2},
	{0x62, ModeZeroPage, 2, 2},
	{0x82, ModeZeroPage, 2, 2},
	{0xc2, ModeZeroPage, 2, 2},
	{0xe2, ModeZeroPage, 2, 2},
	{0x03, ModeAccumulator, 1, 1},
	{0x13, ModeAccumulator, 1, 1},
	{0x23, ModeAccumulator, 1, 1},
	{0x33, ModeAccumulator, 1, 1},
	{0x43, ModeAccumulator, 1, 1},
	{0x53, ModeAccumulator, 1, 1},
	{0x63, ModeAccumulator, 1, 1},
	{0x73, ModeAccumulator, 1, 1},
	{0x83, ModeAccumulator, 1, 1},
	{0x93, ModeAccumulator, 1, 1},
	{0xa3, ModeAccumulator, 1, 1},
	{0xb3, ModeAccumulator, 1, 1},
	{0xc3, ModeAccumulator, 1, 1},
	{0xd3, ModeAccumulator, 1, 1},
	{0xe3, ModeAccumulator, 1, 1},
	{0xf3, ModeAccumulator, 1, 1},
	{0x44, ModeZeroPage, 2, 3},
	{0x54, ModeZeroPage, 2, 4},
	{0xd4, ModeZeroPage, 2, 4},
	{0xf4, ModeZeroPage, 2, 4},
	{0x5c, ModeAbsolute, 3, 8},
	{0xdc, ModeAbsolute, 3, 4},
	{0xfc, ModeAbsolute, 3, 4},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU
// cycle cost.
type Instruction struct {
	Name     string
	Mode     Mode
	Opcode   byte
	Length   byte
	Cycles   byte
	BPCycles byte
	Forced   bool // NMOS indexed read-modify-write pays BPCycles unconditionally; CMOS only on an actual page crossing
	CMOS     bool // true if this row is only reachable under a CMOS profile
	fn       instfunc
}

// An InstructionSet defines the set of all possible instructions that
// can run on an emulated CPU configured with a given Profile.
type InstructionSet struct {
	Profile      Profile
	instructions [256]Instruction
	variants     map[string][]*Instruction
	pal65        map[string]*Instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
// The returned Instruction always has Opcode == opcode; Name is "???" for
// opcodes unmapped under the active profile.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetByMnemonic returns all CPU instruction variants whose name matches the
// provided mnemonic.
func (s *InstructionSet) GetByMnemonic(mnemonic string) []*Instruction {
	return s.variants[strings.ToUpper(mnemonic)]
}

// pal65Suffix returns the PAL65 assembler addressing-mode suffix appended
// to a bare mnemonic to disambiguate which opcode row it names, e.g. "LDA#"
// for immediate or "LDAx@" for zero-page/absolute,X.
func pal65Suffix(mode Mode) string {
	switch mode {
	case ModeAccumulator:
		return "a"
	case ModeImmediate:
		return "#"
	case ModeZeroPage, ModeAbsolute:
		return "@"
	case ModeZeroPageX, ModeAbsoluteX:
		return "x@"
	case ModeZeroPageY, ModeAbsoluteY:
		return "@y"
	case ModeZPInd, ModeAbsoluteInd:
		return "(@)"
	case ModeZPXInd, ModeAbsXInd:
		return "(x@)"
	case ModeZPIndY:
		return "(@)y"
	case ModeRelative, ModeZPRelative:
		return "rel"
	default:
		return ""
	}
}

// GetByPAL65 returns the instruction named by a PAL65-style mnemonic, a
// bare mnemonic concatenated with pal65Suffix(mode), e.g. "LDA@" or "ASLx@".
func (s *InstructionSet) GetByPAL65(mnemonic string) *Instruction {
	return s.pal65[mnemonic]
}

// compatibleZPAbsPair decides whether a row in mode next replaces the row
// in mode existing that already holds the same PAL65 key. It always
// returns false, so the first row registered under a key keeps it; for the
// zero-page/absolute (and indexed zero-page/absolute) pairs that is the
// zero-page row, which data lists first. Whether two colliding modes form
// such a pair is not checked.
func compatibleZPAbsPair(existing, next Mode) bool {
	switch {
	case existing == ModeZeroPage && next == ModeAbsolute,
		existing == ModeZeroPageX && next == ModeAbsoluteX,
		existing == ModeZeroPageY && next == ModeAbsoluteY:
		return false // keep the existing (shorter) zero-page entry
	default:
		return false
	}
}

const unusedName = "???"

// newInstructionSet builds an instruction set for the given profile.
func newInstructionSet(profile Profile) *InstructionSet {
	set := &InstructionSet{
		Profile:  profile,
		variants: make(map[string][]*Instruction),
		pal65:    make(map[string]*Instruction),
	}
	cmosActive := profile&ProfileCMOS != 0
	variant := 0
	if cmosActive {
		variant = 1
	}

	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	// fillIllegalNoop marks a classic documented-illegal opcode: it has a
	// defined byte length and cycle cost on real silicon but no mnemonic,
	// and executing it is harmless (the teacher's unusedn/unusedc no-op).
	fillIllegalNoop := func(opcode, length, cycles byte, mode Mode) {
		inst := &set.instructions[opcode]
		inst.Name = unusedName
		inst.Mode = mode
		inst.Opcode = opcode
		inst.Length = length
		inst.Cycles = cycles
		if cmosActive {
			inst.fn = (*CPU).unusedc
		} else {
			inst.fn = (*CPU).unusedn
		}
	}

	// fillUndefined marks an opcode that is a real mnemonic on some OTHER
	// profile but not this one. Its fn stays nil, so Step halts with
	// KindUndefinedOpcode if it's ever fetched; only display metadata is
	// filled in so the disassembler/opcode-matrix stay total functions.
	fillUndefined := func(opcode, length byte, mode Mode) {
		inst := &set.instructions[opcode]
		inst.Name = unusedName
		inst.Mode = mode
		inst.Opcode = opcode
		inst.Length = length
	}

	for _, d := range data {
		if d.cmos && !cmosActive {
			fillUndefined(d.opcode, d.length, d.mode)
			continue
		}
		if d.rockwell && profile&ProfileRockwell == 0 && !d.cmos {
			fillUndefined(d.opcode, d.length, d.mode)
			continue
		}

		ip := symToImpl[d.sym]
		if ip.fn[variant] == nil {
			continue
		}

		inst := &set.instructions[d.opcode]
		inst.Name = ip.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = d.length
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		inst.Forced = d.forced
		inst.CMOS = d.cmos
		inst.fn = ip.fn[variant]

		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
		if suffix := pal65Suffix(inst.Mode); suffix != "" {
			key := inst.Name + suffix
			if existing, ok := set.pal65[key]; !ok || compatibleZPAbsPair(existing.Mode, inst.Mode) {
				set.pal65[key] = inst
			}
		}
	}

	if profile&ProfileRockwell != 0 {
		addRockwellBitOps(set, symToImpl, variant)
	}

	for _, u := range unusedData {
		if set.instructions[u.opcode].Name != "" {
			continue
		}
		fillIllegalNoop(u.opcode, u.length, u.cycles, u.mode)
	}

	// Anything still unfilled is an opcode this profile simply doesn't
	// define (e.g. a Rockwell bit-op slot when Rockwell isn't active).
	// Leave it undefined so fetching it halts, per the "unmapped opcode
	// is fatal" rule.
	for i := 0; i < 256; i++ {
		if set.instructions[i].Name == "" {
			fillUndefined(byte(i), 1, ModeImplied)
		}
	}
	return set
}

// addRockwellBitOps generates the 32 bit-numbered RMB/SMB/BBR/BBS opcodes
// by shifting each family's base opcode by 0x10 per bit index, per the
// "single row replicated across 8 opcodes" construction rule.
func addRockwellBitOps(set *InstructionSet, symToImpl map[opsym]*opcodeImpl, variant int) {
	type family struct {
		sym    opsym
		base   byte
		mode   Mode
		length byte
		cycles byte
	}
	families := []family{
		{symRMB, 0x07, ModeZeroPage, 2, 5},
		{symSMB, 0x87, ModeZeroPage, 2, 5},
		{symBBR, 0x0f, ModeZPRelative, 3, 5},
		{symBBS, 0x8f, ModeZPRelative, 3, 5},
	}
	for _, fam := range families {
		ip := symToImpl[fam.sym]
		if ip.fn[variant] == nil {
			continue
		}
		for n := 0; n < 8; n++ {
			opcode := fam.base + byte(n)<<4
			inst := &set.instructions[opcode]
			inst.Name = ip.name
			inst.Mode = fam.mode
			inst.Opcode = opcode
			inst.Length = fam.length
			inst.Cycles = fam.cycles
			inst.fn = ip.fn[variant]
			set.variants[inst.Name] = append(set.variants[inst.Name], inst)
		}
	}
}

var instructionSetCache = make(map[Profile]*InstructionSet)

// GetInstructionSet returns (creating and caching, if necessary) the
// instruction set for the requested profile.
func GetInstructionSet(profile Profile) *InstructionSet {
	if set, ok := instructionSetCache[profile]; ok {
		return set
	}
	set := newInstructionSet(profile)
	instructionSetCache[profile] = set
	return set
}

var hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}

func hexWord(w uint16) string {
	return hexByte(byte(w >> 8)) + hexByte(byte(w))
}

// Disassemble renders a single instruction starting at pc, given up to 3
// bytes of instruction memory (opcode plus up to 2 operand bytes).
func (s *InstructionSet) Disassemble(pc uint16, b []byte) string {
	inst := s.Lookup(b[0])
	format := modeFormat[inst.Mode]

	switch inst.Mode {
	case ModeImplied:
		return inst.Name
	case ModeAccumulator:
		return inst.Name + " a"
	case ModeRelative:
		off := int8(b[1])
		target := int(pc) + 2 + int(off)
		return fmt.Sprintf("%s $%s", inst.Name, hexWord(uint16(target)))
	case ModeZPRelative:
		zp := b[1]
		off := int8(b[2])
		target := int(pc) + 3 + int(off)
		return fmt.Sprintf("%s %s", inst.Name, fmt.Sprintf(format, hexByte(zp), hexWord(uint16(target))))
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeAbsoluteInd, ModeAbsXInd:
		operand := hexWord(uint16(b[1]) | uint16(b[2])<<8)
		return fmt.Sprintf("%s %s", inst.Name, fmt.Sprintf(format, operand))
	default:
		operand := hexByte(b[1])
		return fmt.Sprintf("%s %s", inst.Name, fmt.Sprintf(format, operand))
	}
}

// PrintOpcodeMatrix renders a 16x16 grid of mnemonics keyed by opcode high
// nibble (row) and low nibble (column). When detail is true, each cell also
// shows the addressing mode and cycle count.
func (s *InstructionSet) PrintOpcodeMatrix(w io.Writer, detail bool) {
	fmt.Fprint(w, "    ")
	for col := 0; col < 16; col++ {
		fmt.Fprintf(w, " _%X", col)
	}
	fmt.Fprintln(w)
	for row := 0; row < 16; row++ {
		fmt.Fprintf(w, "%X_ |", row)
		for col := 0; col < 16; col++ {
			inst := s.instructions[row*16+col]
			if detail {
				fmt.Fprintf(w, "%-12s", fmt.Sprintf("%s/%d/%d", inst.Name, inst.Mode, inst.Cycles))
			} else {
				fmt.Fprintf(w, " %-4s", inst.Name)
			}
		}
		fmt.Fprintln(w)
	}
}

// PrintSummaryTable renders one line per mnemonic, listing every opcode,
// addressing mode, and cycle count it has in the active profile.
func (s *InstructionSet) PrintSummaryTable(w io.Writer) {
	names := make([]string, 0, len(s.variants))
	for name := range s.variants {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	for _, name := range names {
		fmt.Fprintf(w, "%-4s", name)
		for _, inst := range s.variants[name] {
			fmt.Fprintf(w, "  $%02x mode=%-2d cycles=%d", inst.Opcode, inst.Mode, inst.Cycles)
		}
		fmt.Fprintln(w)
	}
}

// The indexed-address helpers offsetAddress and offsetZeroPage live in
// memory.go.
