// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ericsmith/apex6502/internal/diag"
)

// ErrMemoryOutOfBounds names an out-of-range memory access. No loader or
// accessor in this package returns it: FlatMemory covers the whole 16-bit
// address space.
var (
	ErrMemoryOutOfBounds = fmt.Errorf("memory access out of bounds")
)

// Addresses the APEX SAV loader cares about. These mirror the system-page
// offsets the apex package also knows about; they're duplicated here
// (rather than imported) so the cpu package has no dependency on apex,
// matching the leaves-first dependency order of the component budget.
const (
	sysPageAddress         = 0xbf00
	sysPageProgramAreaSize = 0x50
	sysPageUsrMemOffset    = 0x15
)

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a 16-bit little-endian address value from the
	// requested address and returns it. Unlike the CPU's indirect-JMP
	// effective-address computation, this never applies the NMOS
	// page-wrap bug: that quirk belongs to the instruction that reads a
	// pointer operand, not to the byte store.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)

	// StoreAddress stores a 16-bit little-endian address 'v' to the
	// requested address.
	StoreAddress(addr uint16, v uint16)
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer, plus the executable loaders and trace/dump facilities the
// host runner needs.
type FlatMemory struct {
	b     [64 * 1024]byte
	trace bool
	log   *diag.Logger
}

// NewFlatMemory creates a new 16-bit memory space. Trace output is
// discarded until SetLogger and SetTrace are both engaged.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{log: diag.Discard()}
}

// SetLogger directs trace output at l. The runner calls this once at
// startup with a logger bound to its diagnostic stream; tests generally
// leave the default (discarding) logger in place.
func (m *FlatMemory) SetLogger(l *diag.Logger) {
	m.log = l
}

// SetTrace enables or disables the "wrote addr HHHH data HH" trace line
// emitted on every write.
func (m *FlatMemory) SetTrace(enabled bool) {
	m.trace = enabled
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and returns them.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
		return
	}
	r0 := len(m.b) - int(addr)
	copy(b, m.b[addr:])
	for i := r0; i < len(b); i++ {
		b[i] = 0
	}
}

// LoadAddress loads a 16-bit little-endian address value. No page-wrap
// quirk is applied here; see the Memory interface doc comment.
func (m *FlatMemory) LoadAddress(addr uint16) uint16 {
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *FlatMemory) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
	if m.trace {
		m.log.Tracef("    wrote addr %04x data %02x", addr, v)
	}
}

// StoreBytes stores multiple bytes to the requested address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// StoreAddress stores a 16-bit little-endian address value.
func (m *FlatMemory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v & 0xff)
	m.b[addr+1] = byte(v >> 8)
}

// LoadRawBin copies the contents of path verbatim into memory starting at
// loadAddr.
func (m *FlatMemory) LoadRawBin(path string, loadAddr uint16) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("load raw binary: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("load raw binary: %w", err)
	}
	m.StoreBytes(loadAddr, data)
	m.log.Printf("loaded %d (0x%04x) bytes", len(data), len(data))
	return len(data), nil
}

// LoadApexBin loads an APEX BIN (ASCII-hex) executable. A '*' introduces a
// 4-hex-digit address that becomes the current store cursor; subsequent
// 2-hex-digit tokens store bytes and advance the cursor. Characters outside
// [0-9a-fA-F*] are ignored. Seeing a data byte before any address is an
// error.
func (m *FlatMemory) LoadApexBin(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load apex bin: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var addr uint16
	haveAddr := false
	var nibbles []byte

	flushByte := func() error {
		if len(nibbles) == 0 {
			return nil
		}
		if !haveAddr {
			return fmt.Errorf("load apex bin: object file doesn't start with address")
		}
		if len(nibbles) == 1 {
			nibbles = append(nibbles, 0)
		}
		v := nibbles[0]<<4 | nibbles[1]
		m.StoreByte(addr, v)
		addr++
		nibbles = nibbles[:0]
		return nil
	}

	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("load apex bin: %w", err)
		}
		switch {
		case c == '*':
			if err := flushByte(); err != nil {
				return err
			}
			digits := make([]byte, 0, 4)
			for len(digits) < 4 {
				d, err := r.ReadByte()
				if err != nil {
					return fmt.Errorf("load apex bin: truncated address")
				}
				if n, ok := hexNibble(d); ok {
					digits = append(digits, n)
				}
			}
			addr = uint16(digits[0])<<12 | uint16(digits[1])<<8 | uint16(digits[2])<<4 | uint16(digits[3])
			haveAddr = true
		default:
			if n, ok := hexNibble(c); ok {
				nibbles = append(nibbles, n)
				if len(nibbles) == 2 {
					if err := flushByte(); err != nil {
						return err
					}
				}
			}
		}
	}
	return flushByte()
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// LoadApexSav loads a binary, page-structured APEX SAV executable. Page 0
// is split: its first sysPageProgramAreaSize bytes go to the system page at
// sysPageAddress, and the remainder populates zero page starting at offset
// 0x50. The load address for subsequent pages is read as little-endian 16
// bits from sysPageAddress+sysPageUsrMemOffset; subsequent pages are
// written sequentially from there.
func (m *FlatMemory) LoadApexSav(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load apex sav: %w", err)
	}
	defer f.Close()

	const pageSize = 0x100
	page := make([]byte, pageSize)

	n, err := io.ReadFull(f, page)
	if err == io.EOF {
		return fmt.Errorf("load apex sav: empty file")
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("load apex sav: %w", err)
	}
	if n < pageSize {
		return fmt.Errorf("load apex sav: truncated first page")
	}
	m.StoreBytes(sysPageAddress, page[:sysPageProgramAreaSize])
	m.StoreBytes(0x0050, page[sysPageProgramAreaSize:])

	addr := m.LoadAddress(sysPageAddress + sysPageUsrMemOffset)
	startAddr := addr
	m.log.Printf("loading at %04x", addr)

	for {
		n, err := io.ReadFull(f, page)
		if n == 0 {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return fmt.Errorf("load apex sav: %w", err)
		}
		m.StoreBytes(addr, page[:n])
		addr += uint16(n)
		if n < pageSize {
			break
		}
	}
	m.log.Printf("loading ended at %04x, size %d", addr-1, int(addr)-int(startAddr))
	return nil
}

// DumpRawBin writes size bytes starting at start to path, verbatim.
func (m *FlatMemory) DumpRawBin(path string, start uint16, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump raw binary: %w", err)
	}
	defer f.Close()

	buf := make([]byte, size)
	m.LoadBytes(start, buf)
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("dump raw binary: %w", err)
	}
	return nil
}

// Return the offset address 'addr' + 'offset'. If the offset
// crossed a page boundary, return 'pageCrossed' as true.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = (newAddr & 0xff00) != (addr & 0xff00)
	return newAddr, pageCrossed
}

// Offset a zero-page address 'addr' by 'offset'. If the address
// exceeds the zero-page address space, wrap it.
func offsetZeroPage(addr uint16, offset byte) uint16 {
	addr += uint16(offset)
	if addr >= 0x100 {
		addr -= 0x100
	}
	return addr
}

// Convert a 1- or 2-byte operand into an address.
func operandToAddress(operand []byte) uint16 {
	switch len(operand) {
	case 1:
		return uint16(operand[0])
	case 2:
		return uint16(operand[0]) | uint16(operand[1])<<8
	}
	return 0
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}
