// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

package apex

import (
	"bufio"
	"io"

	"github.com/ericsmith/apex6502/cpu"
)

// Console is the interactive byte device backed by the host's standard
// streams (or any other reader/writer pair, for tests). Input folds any
// LF the host delivers down to the emulated line terminator CR. Output
// does the inverse and additionally suppresses the LF that typically
// follows a CR in host-native line endings, so a CRLF pair written by
// the emulated program doesn't turn into a blank line on the host.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	prevOutWasCR bool
}

// NewConsole creates a Console reading from in and writing to out. The
// same *Console may be installed at more than one device slot so reads
// and writes share the prevOutWasCR latch, matching how the reference
// runner installs one console device at both the input and output
// slots.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (*Console) OpenForInput(reg *cpu.Registers) bool  { return true }
func (*Console) OpenForOutput(reg *cpu.Registers) bool { return true }

func (c *Console) InputByte(reg *cpu.Registers) bool {
	b, err := c.in.ReadByte()
	if err != nil {
		reg.A = EOFCharacter
		return true
	}
	if b == '\n' {
		b = '\r'
	}
	reg.A = b
	return true
}

func (c *Console) OutputByte(reg *cpu.Registers) bool {
	b := reg.A
	switch {
	case b == '\r':
		if _, err := c.out.Write([]byte{'\n'}); err != nil {
			return false
		}
		c.prevOutWasCR = true
		return true
	case b == '\n' && c.prevOutWasCR:
		c.prevOutWasCR = false
		return true
	default:
		c.prevOutWasCR = false
		if _, err := c.out.Write([]byte{b}); err != nil {
			return false
		}
		return true
	}
}

// InputByteAvailable always reports false: the console has no
// non-blocking polling mechanism, per the open-questions resolution
// inherited from the reference implementation.
func (*Console) InputByteAvailable(reg *cpu.Registers) bool { return false }

func (*Console) Close(reg *cpu.Registers) bool { return true }
