// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

package apex_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericsmith/apex6502/apex"
	"github.com/ericsmith/apex6502/cpu"
)

// captureDevice records every byte written to it via OutputByte, for
// asserting on KHAND's dispatch without a real host stream.
type captureDevice struct {
	written []byte
}

func (*captureDevice) OpenForInput(reg *cpu.Registers) bool  { return true }
func (*captureDevice) OpenForOutput(reg *cpu.Registers) bool { return true }
func (*captureDevice) InputByte(reg *cpu.Registers) bool     { return true }

func (d *captureDevice) OutputByte(reg *cpu.Registers) bool {
	d.written = append(d.written, reg.A)
	return true
}

func (*captureDevice) InputByteAvailable(reg *cpu.Registers) bool { return false }
func (*captureDevice) Close(reg *cpu.Registers) bool              { return true }

func TestInWindow(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)

	require.False(t, a.InWindow(0xbfcf))
	require.True(t, a.InWindow(0xbfd0))
	require.True(t, a.InWindow(0xbfe7))
	require.False(t, a.InWindow(0xbfe8))
}

func TestInit(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)
	a.Init()

	require.Equal(t, byte(0xff), mem.LoadByte(apex.SysPageAddress+0x5a))
	require.Equal(t, byte(0xff), mem.LoadByte(apex.SysPageAddress+0x61))
}

func TestKHANDOutput(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)
	dev := &captureDevice{}
	require.NoError(t, a.InstallDevice(1, dev))

	mem.StoreByte(apex.SysPageAddress+0x5c, 1) // NOWDEV = 1

	reg := &cpu.Registers{PC: apex.SysPageAddress + 0xd9, X: 0x09, A: 'H'}
	err := a.VectorExec(reg)

	require.NoError(t, err)
	require.False(t, reg.Carry)
	require.Equal(t, []byte{'H'}, dev.written)
}

func TestKHANDNoDeviceInstalled(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)
	mem.StoreByte(apex.SysPageAddress+0x5c, 3) // NOWDEV = 3, nothing installed

	reg := &cpu.Registers{PC: apex.SysPageAddress + 0xd9, X: 0x09, A: 'Q'}
	err := a.VectorExec(reg)

	require.NoError(t, err)
	require.True(t, reg.Carry)
}

func TestKRENTRHalts(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)

	reg := &cpu.Registers{PC: apex.SysPageAddress + 0xd0}
	err := a.VectorExec(reg)

	require.Error(t, err)
	herr, ok := err.(*cpu.HaltError)
	require.True(t, ok)
	require.Equal(t, cpu.KindNormalExit, herr.Kind)
}

func TestKSCANFatal(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)

	reg := &cpu.Registers{PC: apex.SysPageAddress + 0xdc}
	err := a.VectorExec(reg)

	require.Error(t, err)
	herr, ok := err.(*cpu.HaltError)
	require.True(t, ok)
	require.Equal(t, cpu.KindUnimplementedVector, herr.Kind)
}

func TestKRESTDNoOp(t *testing.T) {
	mem := cpu.NewFlatMemory()
	a := apex.New(mem)

	reg := &cpu.Registers{PC: apex.SysPageAddress + 0xdf, Carry: true}
	err := a.VectorExec(reg)

	require.NoError(t, err)
	require.False(t, reg.Carry)
}

func TestConsoleEcho(t *testing.T) {
	var out bytes.Buffer
	con := apex.NewConsole(bytes.NewReader([]byte("A\n")), &out)

	reg := &cpu.Registers{}
	require.True(t, con.InputByte(reg))
	require.Equal(t, byte('A'), reg.A)

	require.True(t, con.InputByte(reg))
	require.Equal(t, byte('\r'), reg.A) // host LF folds to emulated CR

	reg.A = '\r'
	require.True(t, con.OutputByte(reg))
	reg.A = '\n'
	require.True(t, con.OutputByte(reg)) // suppressed, paired with the CR above
	require.Equal(t, "\n", out.String())
}
