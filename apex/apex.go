// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

// Package apex implements the APEX operating-system personality: the
// fixed system page at 0xBF00, its jump-vector trap window, and the
// character-device dispatch behind KHAND. It sits directly on top of
// the cpu package and never the reverse.
package apex

import (
	"fmt"

	"github.com/ericsmith/apex6502/cpu"
	"github.com/ericsmith/apex6502/internal/diag"
)

// System-page geometry.
const (
	PageSize               = 0x100
	SysPageAddress  uint16 = 0xbf00
	ProgramAreaSize        = 0x50
)

// VStart is the program-owned system-page offset of the program's start
// vector: a 3-byte JMP instruction the loader writes into the system
// page, which jumps to the program's real entry point. After loading
// an APEX BIN or APEX SAV executable, the host sets pc to
// SysPageAddress+VStart directly (not through a pointer indirection)
// so the CPU executes that JMP as its first instruction.
const VStart = 0x03

// System-page offsets this layer reads or writes directly. Offsets
// 0x00-0x4f belong to the loaded program; this layer only touches the
// OS-owned offsets from 0x50 up.
const (
	linidx = 0x5a // input line pointer ($ff = null)
	nowdev = 0x5c // current byte I/O device
	linptr = 0x61 // "real" input line pointer of handler ($ff = null)
)

// Entry-vector offsets, relative to SysPageAddress.
const (
	krentr = 0xd0 // warm-start / program normal exit
	ksaver = 0xd3 // preserve current user image
	krelod = 0xd6 // cold-start / reload
	khandOffset = 0xd9 // byte I/O routine
	kscan  = 0xdc // file lookup routine
	krestd = 0xdf // reset disk driver
	kread  = 0xe2 // read contiguous disk blocks
	kwrite = 0xe5 // write contiguous disk blocks
)

// VectorStart and VectorEnd bracket the trap window the main loop
// checks pc against: [VectorStart, VectorEnd).
const (
	VectorStart = SysPageAddress + krentr
	VectorEnd   = SysPageAddress + kwrite + 3
)

// MaxCharDevice is the number of device slots in the KHAND table.
const MaxCharDevice = 8

// KHAND function codes, carried in the X register.
const (
	fnOpenInput         = 0x00
	fnOpenOutput        = 0x03
	fnInputByte         = 0x06
	fnOutputByte        = 0x09
	fnClose             = 0x0c
	fnInputByteAvailable = 0x0f
)

// Apex holds the system-page-facing state of the OS personality: the
// installed character devices and the memory they and the vector
// handlers operate on. It owns the same Memory the CPU does; the two
// are only ever driven from the single-threaded main loop, so no
// synchronization is required.
type Apex struct {
	Mem     cpu.Memory
	devices [MaxCharDevice]Device
	log     *diag.Logger
}

// New creates an Apex personality layer bound to mem. Diagnostic
// output is discarded until SetLogger is called.
func New(mem cpu.Memory) *Apex {
	return &Apex{Mem: mem, log: diag.Discard()}
}

// SetLogger directs diagnostic output (unrecognized vectors, bad KHAND
// calls) at l.
func (a *Apex) SetLogger(l *diag.Logger) {
	a.log = l
}

// InstallDevice installs d at the given KHAND slot (0-7).
func (a *Apex) InstallDevice(slot int, d Device) error {
	if slot < 0 || slot >= MaxCharDevice {
		return fmt.Errorf("apex: invalid character device slot %d", slot)
	}
	a.devices[slot] = d
	return nil
}

// Init prepares the system page for a freshly loaded program: it marks
// the input line pointer offsets as null. Call this once, after
// loading the executable and before the main loop starts stepping the
// CPU.
func (a *Apex) Init() {
	a.Mem.StoreByte(SysPageAddress+linidx, 0xff)
	// I2L calls this LINIDX too, but it is the console handler's own
	// line-pointer offset, distinct from the program's LINIDX above.
	a.Mem.StoreByte(SysPageAddress+linptr, 0xff)
}

// InWindow reports whether pc lies inside the APEX vector-trap window.
// The main loop calls this on every iteration to decide whether to
// step the CPU or call VectorExec.
func (a *Apex) InWindow(pc uint16) bool {
	return pc >= VectorStart && pc < VectorEnd
}

// VectorExec services the APEX entry vector at reg.PC, mutating
// registers and memory as the vector requires. It returns nil if the
// emulation should continue (the caller then drives the CPU through a
// SyntheticRTS), or a *cpu.HaltError if the vector demands the run
// stop. Per the propagation policy, device-level failures are never
// returned here: they are folded into the emulated Carry flag by
// khand.
func (a *Apex) VectorExec(reg *cpu.Registers) error {
	switch reg.PC - SysPageAddress {
	case krentr:
		a.log.Println("program exited via KRENTR")
		return a.halt(reg, cpu.KindNormalExit, "KRENTR: program normal exit")
	case ksaver:
		a.log.Println("program exited via KSAVER")
		return a.halt(reg, cpu.KindNormalExit, "KSAVER: user-image preservation requested")
	case krelod:
		a.log.Println("program exited via KRELOD")
		return a.halt(reg, cpu.KindNormalExit, "KRELOD: cold-reboot requested")
	case khandOffset:
		a.khand(reg)
		return nil
	case kscan:
		return a.halt(reg, cpu.KindUnimplementedVector, "KSCAN: file lookup is not implemented")
	case krestd:
		reg.Carry = false
		return nil
	case kread:
		return a.halt(reg, cpu.KindUnimplementedVector, "KREAD: block read is not implemented")
	case kwrite:
		return a.halt(reg, cpu.KindUnimplementedVector, "KWRITE: block write is not implemented")
	}
	return a.halt(reg, cpu.KindUnimplementedVector, "unrecognized APEX entry vector $%04x", reg.PC)
}

// khand dispatches a byte-I/O request to the device installed at
// NOWDEV. Every outcome is folded into the Carry flag; khand never
// returns an error.
func (a *Apex) khand(reg *cpu.Registers) {
	slot := a.Mem.LoadByte(SysPageAddress + nowdev)
	if int(slot) >= MaxCharDevice || a.devices[slot] == nil {
		a.log.Printf("KHAND: no device installed at slot %d", slot)
		reg.Carry = true
		return
	}
	dev := a.devices[slot]

	var ok bool
	switch reg.X {
	case fnOpenInput:
		ok = dev.OpenForInput(reg)
	case fnOpenOutput:
		ok = dev.OpenForOutput(reg)
	case fnInputByte:
		ok = dev.InputByte(reg)
	case fnOutputByte:
		ok = dev.OutputByte(reg)
	case fnClose:
		ok = dev.Close(reg)
	case fnInputByteAvailable:
		if slot > 1 {
			a.log.Printf("KHAND: input_byte_available not allowed on slot %d", slot)
			reg.Carry = true
			return
		}
		ok = dev.InputByteAvailable(reg)
	default:
		a.log.Printf("KHAND: unsupported function code $%02x on slot %d", reg.X, slot)
		reg.Carry = true
		return
	}
	reg.Carry = !ok
}

func (a *Apex) halt(reg *cpu.Registers, kind cpu.Kind, format string, args ...interface{}) *cpu.HaltError {
	return &cpu.HaltError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		PC:   reg.PC,
		A:    reg.A,
		X:    reg.X,
		Y:    reg.Y,
		S:    reg.SP,
	}
}
