package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verso/go-dotmatrix/dotmatrix/addr"
)

func TestCPU_eiDelay(t *testing.T) {
	c := newTestCPU()
	loadProgram(c, 0xFB, 0x00, 0xF3, 0x00, 0x00) // EI; NOP; DI; NOP; NOP

	step(t, c) // EI
	assert.False(t, c.interrupts.IME())

	step(t, c) // NOP runs with IME still off
	assert.False(t, c.interrupts.IME())

	step(t, c) // DI runs with IME on
	assert.True(t, c.interrupts.IME())

	step(t, c) // NOP runs with IME still on
	assert.True(t, c.interrupts.IME())

	step(t, c) // the DI lag has elapsed
	assert.False(t, c.interrupts.IME())
}

func TestCPU_retiEnablesImmediately(t *testing.T) {
	c := newTestCPU()
	c.pushStack(0xC800)
	c.bus.Write(0xC800, 0x00) // NOP at the return address
	loadProgram(c, 0xD9)      // RETI

	step(t, c)
	assert.Equal(t, uint16(0xC800), c.pc)
	assert.False(t, c.interrupts.IME())

	// the instruction at the popped return address runs with IME true
	step(t, c)
	assert.True(t, c.interrupts.IME())
}

func TestCPU_serviceInterrupt(t *testing.T) {
	c := newTestCPU()
	c.interrupts.ime = true
	c.bus.Write(addr.IE, VBlankInterrupt)
	c.bus.Write(addr.IF, VBlankInterrupt)

	spBefore := c.sp
	cycles := step(t, c)

	assert.Equal(t, uint16(0x0040), c.pc)
	assert.Equal(t, uint64(16), cycles)
	assert.Equal(t, uint8(0), c.bus.Read(addr.IF)&0x1F)
	assert.False(t, c.interrupts.IME())
	assert.Equal(t, spBefore-2, c.sp)
	// the return address is stored little-endian at the new SP
	assert.Equal(t, uint16(0xC000), c.bus.Read16(c.sp))
}

func TestCPU_servicePriority(t *testing.T) {
	c := newTestCPU()
	c.interrupts.ime = true
	c.bus.Write(addr.IE, 0x1F)
	c.bus.Write(addr.IF, TimerInterrupt|JoypadInterrupt)

	step(t, c)
	assert.Equal(t, uint16(0x0050), c.pc)
	// lower-priority request stays latched
	assert.Equal(t, JoypadInterrupt, c.bus.Read(addr.IF)&0x1F)
}

func TestCPU_interruptIgnoredWithIMEOff(t *testing.T) {
	c := newTestCPU()
	c.bus.Write(addr.IE, VBlankInterrupt)
	c.bus.Write(addr.IF, VBlankInterrupt)
	loadProgram(c, 0x00)

	step(t, c)
	// the NOP ran instead of the handler
	assert.Equal(t, uint16(0xC001), c.pc)
	assert.Equal(t, VBlankInterrupt, c.bus.Read(addr.IF)&0x1F)
}

func TestCPU_haltIdlesUntilInterruptFlag(t *testing.T) {
	c := newTestCPU()
	loadProgram(c, 0x76, 0x00) // HALT; NOP

	step(t, c)
	assert.True(t, c.halted)

	// nothing pending: the CPU idles 4 T-cycles per step
	cycles := step(t, c)
	assert.Equal(t, uint64(4), cycles)
	assert.True(t, c.halted)
	assert.Equal(t, uint16(0xC001), c.pc)
}

func TestCPU_haltWakesWithoutServiceWhenIMEOff(t *testing.T) {
	c := newTestCPU()
	c.bus.Write(addr.IE, TimerInterrupt)
	loadProgram(c, 0x76, 0x00) // HALT; NOP
	step(t, c)

	// a peripheral latches IF while halted
	c.bus.Write(addr.IF, TimerInterrupt)

	cycles := step(t, c)
	assert.Equal(t, uint64(4), cycles)
	assert.False(t, c.halted)
	// not serviced: PC did not move to the handler and IF stays latched
	assert.Equal(t, uint16(0xC001), c.pc)
	assert.Equal(t, TimerInterrupt, c.bus.Read(addr.IF)&0x1F)

	// execution resumes with the next instruction
	step(t, c)
	assert.Equal(t, uint16(0xC002), c.pc)
}

func TestCPU_haltWakesOnDisabledInterrupt(t *testing.T) {
	c := newTestCPU()
	loadProgram(c, 0x76, 0x00)
	step(t, c)

	// flagged but not enabled in IE: still wakes the CPU
	c.bus.Write(addr.IF, JoypadInterrupt)
	step(t, c)
	assert.False(t, c.halted)
	assert.Equal(t, uint16(0xC001), c.pc)
}

func TestCPU_haltServicesWhenIMEOn(t *testing.T) {
	c := newTestCPU()
	c.interrupts.ime = true
	c.bus.Write(addr.IE, TimerInterrupt)
	loadProgram(c, 0x76)
	step(t, c)

	c.bus.Write(addr.IF, TimerInterrupt)
	cycles := step(t, c)
	assert.Equal(t, uint64(16), cycles)
	assert.False(t, c.halted)
	assert.Equal(t, uint16(0x0050), c.pc)
}

func TestCPU_timerOverflowInterruptsThroughStepLoop(t *testing.T) {
	c := newTestCPU()
	c.interrupts.ime = true
	c.bus.Write(addr.IE, TimerInterrupt)
	c.bus.Write(addr.TAC, 0x05) // enabled, 16 T-cycle period
	c.bus.Write(addr.TMA, 0xFE)
	c.bus.Write(addr.TIMA, 0xFF)
	loadProgram(c, 0x00, 0x00, 0x00, 0x00)

	// 16 T-cycles of NOPs overflow TIMA and latch the interrupt
	for i := 0; i < 4; i++ {
		step(t, c)
	}
	assert.Equal(t, uint8(0xFE), c.bus.Read(addr.TIMA))

	step(t, c)
	assert.Equal(t, uint16(0x0050), c.pc)
}

func TestCPU_bootSurfacesErrors(t *testing.T) {
	c := newTestCPU()
	loadProgram(c, 0x00, 0x00, 0xD3)

	err := c.Boot()
	assert.Equal(t, &IllegalInstructionError{Opcode: 0xD3}, err)
	assert.Equal(t, uint16(0xC003), c.pc)
}

func TestCPU_cycleTallyAccumulates(t *testing.T) {
	c := newTestCPU()
	loadProgram(c, 0x00, 0x06, 0x42, 0xC3, 0x00, 0xC1) // NOP; LD B,n; JP

	step(t, c)
	step(t, c)
	step(t, c)
	assert.Equal(t, uint64(4+8+16), c.Cycles())
}
