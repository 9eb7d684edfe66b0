// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

package apex

import (
	"fmt"
	"io"
	"os"

	"github.com/ericsmith/apex6502/cpu"
)

// File is the byte-oriented file device. It can be opened for input,
// output, or (separately) both; each direction has an independent
// binary/text-mode flag, matching the reference implementation's
// m_input_binary_mode / m_output_binary_mode split.
type File struct {
	inFile   *os.File
	inBinary bool
	inOpen   bool
	inAtEOF  bool

	outFile   *os.File
	outBinary bool
	outOpen   bool
}

// NewFile creates a File device with neither direction attached yet.
func NewFile() *File {
	return &File{}
}

// OpenInputFile attaches path as the device's input stream. binary
// disables the LF-to-CR translation InputByte otherwise performs.
func (f *File) OpenInputFile(path string, binary bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input file %q: %w", path, err)
	}
	f.inFile = file
	f.inBinary = binary
	return nil
}

// OpenOutputFile attaches path as the device's output stream, creating
// or truncating it. binary disables the CR-to-LF translation
// OutputByte otherwise performs.
func (f *File) OpenOutputFile(path string, binary bool) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open output file %q: %w", path, err)
	}
	f.outFile = file
	f.outBinary = binary
	return nil
}

func (f *File) OpenForInput(reg *cpu.Registers) bool {
	if f.inFile == nil {
		return false
	}
	if _, err := f.inFile.Seek(0, io.SeekStart); err != nil {
		return false
	}
	f.inOpen = true
	f.inAtEOF = false
	return true
}

func (f *File) OpenForOutput(reg *cpu.Registers) bool {
	if f.outFile == nil {
		return false
	}
	f.outOpen = true
	return true
}

func (f *File) InputByte(reg *cpu.Registers) bool {
	if !f.inOpen {
		return false
	}
	if f.inAtEOF {
		reg.A = EOFCharacter
		return true
	}
	var buf [1]byte
	if _, err := io.ReadFull(f.inFile, buf[:]); err != nil {
		f.inAtEOF = true
		reg.A = EOFCharacter
		return true
	}
	b := buf[0]
	if !f.inBinary && b == '\n' {
		b = '\r'
	}
	reg.A = b
	return true
}

func (f *File) OutputByte(reg *cpu.Registers) bool {
	if !f.outOpen {
		return false
	}
	b := reg.A
	if !f.outBinary && b == '\r' {
		b = '\n'
	}
	if _, err := f.outFile.Write([]byte{b}); err != nil {
		return false
	}
	return true
}

func (*File) InputByteAvailable(reg *cpu.Registers) bool { return false }

func (f *File) Close(reg *cpu.Registers) bool {
	f.inOpen = false
	f.outOpen = false
	return true
}
