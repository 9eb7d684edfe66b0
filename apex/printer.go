// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

package apex

import (
	"io"

	"github.com/ericsmith/apex6502/cpu"
)

// Printer is the write-only device backing APEX's printer unit. Input
// always fails; output translates the emulated CR line terminator to
// the host's LF.
type Printer struct {
	out  io.Writer
	open bool
}

// NewPrinter creates a Printer writing to out. The caller is
// responsible for opening (and eventually closing) the underlying
// file; Printer only tracks whether open_for_output has been serviced.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (*Printer) OpenForInput(reg *cpu.Registers) bool { return false }

func (p *Printer) OpenForOutput(reg *cpu.Registers) bool {
	p.open = true
	return true
}

func (*Printer) InputByte(reg *cpu.Registers) bool {
	reg.A = EOFCharacter
	return false
}

func (p *Printer) OutputByte(reg *cpu.Registers) bool {
	if !p.open {
		return false
	}
	b := reg.A
	if b == '\r' {
		b = '\n'
	}
	if _, err := p.out.Write([]byte{b}); err != nil {
		return false
	}
	return true
}

func (*Printer) InputByteAvailable(reg *cpu.Registers) bool { return false }

func (p *Printer) Close(reg *cpu.Registers) bool {
	p.open = false
	return true
}
