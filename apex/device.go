// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

package apex

import "github.com/ericsmith/apex6502/cpu"

// EOFCharacter is the byte APEX treats as end-of-input: control-Z, ASCII
// SUB.
const EOFCharacter = 0x1a

// Device is the character-device capability set APEX's KHAND dispatch
// drives: open in each direction, transfer a byte in each direction,
// poll for input, and close. Every method reports success or failure
// via its bool return; KHAND folds that into the emulated Carry flag
// and never surfaces it as a Go error.
type Device interface {
	OpenForInput(reg *cpu.Registers) bool
	OpenForOutput(reg *cpu.Registers) bool
	InputByte(reg *cpu.Registers) bool
	OutputByte(reg *cpu.Registers) bool
	InputByteAvailable(reg *cpu.Registers) bool
	Close(reg *cpu.Registers) bool
}

// Null is the discard/EOF device: every output is dropped, every input
// reports EOF.
type Null struct{}

// NewNull creates a Null device.
func NewNull() *Null {
	return &Null{}
}

func (*Null) OpenForInput(reg *cpu.Registers) bool  { return true }
func (*Null) OpenForOutput(reg *cpu.Registers) bool { return true }

func (*Null) InputByte(reg *cpu.Registers) bool {
	reg.A = EOFCharacter
	return true
}

func (*Null) OutputByte(reg *cpu.Registers) bool {
	return true
}

func (*Null) InputByteAvailable(reg *cpu.Registers) bool { return false }
func (*Null) Close(reg *cpu.Registers) bool              { return true }
