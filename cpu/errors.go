// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// Kind is a halt-error taxonomy tag. It names the kind, not the Go type;
// every halt in this emulator is carried by the single *HaltError type
// below so callers can switch on Kind without type-asserting.
type Kind string

const (
	KindLoadFailure           Kind = "load_failure"
	KindUndefinedOpcode       Kind = "undefined_opcode"
	KindUnknownAddressingMode Kind = "unknown_addressing_mode"
	KindDeviceError           Kind = "device_error"
	KindUnimplementedVector   Kind = "unimplemented_vector"
	KindTightLoopHalt         Kind = "tight_loop_halt"
	KindNormalExit            Kind = "normal_exit"
)

// HaltError reports why the emulation loop stopped. It carries a register
// snapshot so the caller can print a halt dump without reaching back into
// the CPU after the loop has already unwound.
type HaltError struct {
	Kind       Kind
	Msg        string
	PC         uint16
	A, X, Y, S byte
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("%s at $%04x: %s", e.Kind, e.PC, e.Msg)
}

func (cpu *CPU) haltf(kind Kind, format string, args ...interface{}) *HaltError {
	return &HaltError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		PC:   cpu.Reg.PC,
		A:    cpu.Reg.A,
		X:    cpu.Reg.X,
		Y:    cpu.Reg.Y,
		S:    cpu.Reg.SP,
	}
}
