package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verso/go-dotmatrix/dotmatrix/cartridge"
	"github.com/verso/go-dotmatrix/dotmatrix/memory"
)

// newTestCPU builds a CPU over an empty cartridge with PC pointed at work RAM
// and a clean flag register, so tests can poke programs into memory.
func newTestCPU() *CPU {
	c := New(memory.New(cartridge.NewEmpty()))
	c.pc = 0xC000
	c.sp = 0xDFF0
	c.f = 0
	return c
}

// loadProgram writes the given bytes at PC.
func loadProgram(c *CPU, program ...uint8) {
	for i, b := range program {
		c.bus.Write(c.pc+uint16(i), b)
	}
}

func TestCPU_pairAccessors(t *testing.T) {
	c := newTestCPU()

	testCases := []struct {
		desc string
		set  func(uint16)
		get  func() uint16
		high *uint8
		low  *uint8
	}{
		{desc: "BC", set: c.setBC, get: c.getBC, high: &c.b, low: &c.c},
		{desc: "DE", set: c.setDE, get: c.getDE, high: &c.d, low: &c.e},
		{desc: "HL", set: c.setHL, get: c.getHL, high: &c.h, low: &c.l},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			tC.set(0xBEEF)
			assert.Equal(t, uint8(0xBE), *tC.high)
			assert.Equal(t, uint8(0xEF), *tC.low)
			assert.Equal(t, uint16(0xBEEF), tC.get())

			*tC.high = 0x12
			*tC.low = 0x34
			assert.Equal(t, uint16(0x1234), tC.get())
		})
	}
}

func TestCPU_afMasksLowNibble(t *testing.T) {
	c := newTestCPU()

	c.setAF(0xABCD)
	assert.Equal(t, uint8(0xAB), c.a)
	assert.Equal(t, uint8(0xC0), c.f)
	assert.Equal(t, uint16(0xABC0), c.getAF())

	c.setAF(0x12FF)
	assert.Equal(t, uint16(0x12F0), c.getAF())
}

func TestCPU_flagHelpers(t *testing.T) {
	c := newTestCPU()

	c.setFlag(zeroFlag)
	c.setFlag(carryFlag)
	assert.Equal(t, uint8(0x90), c.f)
	assert.True(t, c.isSetFlag(zeroFlag))
	assert.False(t, c.isSetFlag(subFlag))
	assert.Equal(t, uint8(1), c.flagToBit(carryFlag))

	c.resetFlag(zeroFlag)
	assert.Equal(t, uint8(0x10), c.f)
	assert.Equal(t, uint8(0), c.flagToBit(zeroFlag))

	c.setFlagToCondition(halfCarryFlag, true)
	c.setFlagToCondition(carryFlag, false)
	assert.Equal(t, uint8(0x20), c.f)
}

func TestCPU_postBootState(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x14D] = 0x66 // non-zero header checksum byte
	c := New(memory.New(cartridge.New(rom)))

	assert.Equal(t, uint8(0x01), c.a)
	assert.Equal(t, uint8(0xB0), c.f) // Z, H and C
	assert.Equal(t, uint8(0x00), c.b)
	assert.Equal(t, uint8(0x13), c.c)
	assert.Equal(t, uint8(0x00), c.d)
	assert.Equal(t, uint8(0xD8), c.e)
	assert.Equal(t, uint8(0x01), c.h)
	assert.Equal(t, uint8(0x4D), c.l)
	assert.Equal(t, uint16(0x0100), c.pc)
	assert.Equal(t, uint16(0xFFFE), c.sp)

	// with a zero checksum byte only Z survives
	c = New(memory.New(cartridge.NewEmpty()))
	assert.Equal(t, uint8(0x80), c.f)
}
