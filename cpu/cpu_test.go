package cpu_test

import (
	"testing"

	"github.com/ericsmith/apex6502/cpu"
)

const origin = 0x1000

func loadCPU(profile cpu.Profile, code []byte) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(origin, code)
	c := cpu.NewCPU(profile, mem)
	c.SetPC(origin)
	return c
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		if err := c.Step(); err != nil {
			return
		}
	}
}

func runCPU(profile cpu.Profile, code []byte, steps int) *cpu.CPU {
	c := loadCPU(profile, code)
	stepCPU(c, steps)
	return c
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: %02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectFlags(t *testing.T, c *cpu.CPU, carry, zero, overflow, sign bool) {
	if c.Reg.Carry != carry {
		t.Errorf("Carry incorrect. exp: %v, got: %v", carry, c.Reg.Carry)
	}
	if c.Reg.Zero != zero {
		t.Errorf("Zero incorrect. exp: %v, got: %v", zero, c.Reg.Zero)
	}
	if c.Reg.Overflow != overflow {
		t.Errorf("Overflow incorrect. exp: %v, got: %v", overflow, c.Reg.Overflow)
	}
	if c.Reg.Sign != sign {
		t.Errorf("Sign incorrect. exp: %v, got: %v", sign, c.Reg.Sign)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func TestAccumulator(t *testing.T) {
	code := []byte{
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	}
	c := runCPU(cpu.CPU6502, code, 3)

	expectPC(t, c, origin+7)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	code := []byte{
		0xa9, 0x11, 0x48, // LDA #$11; PHA
		0xa9, 0x12, 0x48, // LDA #$12; PHA
		0xa9, 0x13, 0x48, // LDA #$13; PHA
		0x68, 0x8d, 0x00, 0x20, // PLA; STA $2000
		0x68, 0x8d, 0x01, 0x20, // PLA; STA $2001
		0x68, 0x8d, 0x02, 0x20, // PLA; STA $2002
	}

	c := loadCPU(cpu.CPU6502, code)
	stepCPU(c, 6)

	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

func TestIndirect(t *testing.T) {
	code := []byte{
		0xa2, 0x80, // LDX #$80
		0xa0, 0x40, // LDY #$40
		0xa9, 0xee, // LDA #$EE
		0x9d, 0x00, 0x20, // STA $2000,X
		0x99, 0x00, 0x20, // STA $2000,Y
		0xa9, 0x11, // LDA #$11
		0x85, 0x06, // STA $06
		0xa9, 0x05, // LDA #$05
		0x85, 0x07, // STA $07
		0xa2, 0x01, // LDX #$01
		0xa0, 0x01, // LDY #$01
		0xa9, 0xbb, // LDA #$BB
		0x81, 0x05, // STA ($05,X)
		0x91, 0x06, // STA ($06),Y
	}

	c := runCPU(cpu.CPU6502, code, 14)
	expectMem(t, c, 0x2080, 0xee)
	expectMem(t, c, 0x2040, 0xee)
	expectMem(t, c, 0x0511, 0xbb)
	expectMem(t, c, 0x0512, 0xbb)
}

func TestPageCross(t *testing.T) {
	code := []byte{
		0xa9, 0x55, // LDA #$55      2 cycles
		0x8d, 0x01, 0x11, // STA $1101     4 cycles
		0xa9, 0x00, // LDA #$00      2 cycles
		0xa2, 0xff, // LDX #$FF      2 cycles
		0xbd, 0x02, 0x10, // LDA $1002,X   5 cycles (crosses page)
	}

	c := runCPU(cpu.CPU6502, code, 5)
	expectPC(t, c, uint16(origin+len(code)))
	expectCycles(t, c, 15)
	expectACC(t, c, 0x55)
	expectMem(t, c, 0x1101, 0x55)
}

func TestNMOSIndexedRMWForcedCycle(t *testing.T) {
	code := []byte{
		0xa2, 0x01, // LDX #$01      2 cycles
		0x1e, 0x00, 0x20, // ASL $2000,X   7 cycles (no crossing, forced anyway)
	}
	c := runCPU(cpu.CPU6502, code, 2)
	expectCycles(t, c, 9)
}

func TestCMOSIndexedRMWNoPageCross(t *testing.T) {
	code := []byte{
		0xa2, 0x01, // LDX #$01      2 cycles
		0x1e, 0x00, 0x20, // ASL $2000,X   6 cycles (no crossing)
	}
	c := runCPU(cpu.CPU65C02, code, 2)
	expectCycles(t, c, 8)
}

func TestCMOSIndexedRMWPageCross(t *testing.T) {
	code := []byte{
		0xa2, 0xff, // LDX #$FF      2 cycles
		0x1e, 0x02, 0x20, // ASL $2002,X   7 cycles (crosses page)
	}
	c := runCPU(cpu.CPU65C02, code, 2)
	expectCycles(t, c, 9)
}

func TestUnusedNMOS(t *testing.T) {
	code := []byte{0x02, 0x00, 0x22, 0x00}
	c := runCPU(cpu.CPU6502, code, 2)
	expectPC(t, c, origin+4)
	expectCycles(t, c, 4)
}

func TestJSRRTS(t *testing.T) {
	code := []byte{
		0x20, 0x34, 0x12, // JSR $1234
	}
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(origin, code)
	mem.StoreByte(0x1234, 0x60) // RTS
	c := cpu.NewCPU(cpu.CPU6502, mem)
	c.SetPC(origin)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0x1234)
	expectMem(t, c, 0x01fe, 0x02)
	expectMem(t, c, 0x01ff, 0x10)
	expectSP(t, c, 0xfd)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, origin+3)
	expectSP(t, c, 0xff)
}

func TestNMOSJMPIndirectWrap(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreByte(0x10ff, 0x6c)
	mem.StoreByte(0x1100, 0x00)
	mem.StoreByte(0x1101, 0x11)
	mem.StoreByte(0x10ff, 0xad)
	mem.StoreByte(0x1000, 0xde)
	mem.StoreByte(0x1100, 0xcc)
	// JMP ($10FF), placed at $2000 so it doesn't overwrite the $1000 byte
	code := []byte{0x6c, 0xff, 0x10}
	mem.StoreBytes(0x2000, code)

	c := cpu.NewCPU(cpu.CPU6502, mem)
	c.SetPC(0x2000)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0xdead)
}

func TestCMOSJMPIndirectFixed(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreByte(0x10ff, 0xad)
	mem.StoreByte(0x1100, 0xde)
	code := []byte{0x6c, 0xff, 0x10}
	mem.StoreBytes(origin, code)

	c := cpu.NewCPU(cpu.CPU65C02, mem)
	c.SetPC(origin)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	expectPC(t, c, 0xdead)
	expectCycles(t, c, 6)
}

func TestADCWithCarry(t *testing.T) {
	code := []byte{0x38, 0x69, 0x02} // SEC; ADC #$02
	c := loadCPU(cpu.CPU6502, code)
	c.Reg.A = 0x01
	stepCPU(c, 2)
	expectACC(t, c, 0x04)
	expectFlags(t, c, false, false, false, false)
}

func TestADCOverflow(t *testing.T) {
	code := []byte{0x18, 0x69, 0x01} // CLC; ADC #$01
	c := loadCPU(cpu.CPU6502, code)
	c.Reg.A = 0x7f
	stepCPU(c, 2)
	expectACC(t, c, 0x80)
	expectFlags(t, c, false, false, true, true)
}

func TestDecimalADCNMOS(t *testing.T) {
	code := []byte{0x18, 0xf8, 0x69, 0x14} // CLC; SED; ADC #$14
	c := loadCPU(cpu.CPU6502, code)
	c.Reg.A = 0x28
	stepCPU(c, 3)
	expectACC(t, c, 0x42)
	expectFlags(t, c, false, false, false, false)
}

func TestTightLoopHalt(t *testing.T) {
	code := []byte{0x4c, 0x00, 0x10} // JMP $1000 (self)
	c := loadCPU(cpu.CPU6502, code)
	err := c.Step()
	if err == nil {
		t.Fatal("expected a halt error")
	}
	herr, ok := err.(*cpu.HaltError)
	if !ok {
		t.Fatalf("expected *cpu.HaltError, got %T", err)
	}
	if herr.Kind != cpu.KindTightLoopHalt {
		t.Errorf("expected KindTightLoopHalt, got %s", herr.Kind)
	}
}

func TestUndefinedOpcodeHalt(t *testing.T) {
	code := []byte{0x07} // RMB0 $nn, Rockwell-only, undefined under base profile
	c := loadCPU(cpu.CPU6502, code)
	err := c.Step()
	if err == nil {
		t.Fatal("expected a halt error")
	}
	herr, ok := err.(*cpu.HaltError)
	if !ok {
		t.Fatalf("expected *cpu.HaltError, got %T", err)
	}
	if herr.Kind != cpu.KindUndefinedOpcode {
		t.Errorf("expected KindUndefinedOpcode, got %s", herr.Kind)
	}
}

func TestRockwellBitOps(t *testing.T) {
	code := []byte{
		0xa9, 0xff, 0x85, 0x10, // LDA #$FF; STA $10
		0x17, 0x10, // RMB1 $10
		0x1f, 0x10, 0x10, // BBR1 $10,*+0x10  (bit now clear, branch taken)
	}
	c := runCPU(cpu.CPUR65C02, code, 4)
	expectMem(t, c, 0x10, 0xfd)
	expectPC(t, c, uint16(origin+len(code)+0x10))
}
