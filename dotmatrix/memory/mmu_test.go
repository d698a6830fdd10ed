package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verso/go-dotmatrix/dotmatrix/addr"
	"github.com/verso/go-dotmatrix/dotmatrix/cartridge"
)

func newTestMMU() *MMU {
	return New(cartridge.NewEmpty())
}

func TestMMU_wramRoundTrip(t *testing.T) {
	mmu := newTestMMU()

	mmu.Write(0xC123, 0xAB)
	assert.Equal(t, byte(0xAB), mmu.Read(0xC123))

	mmu.Write(0xC000, 0x01)
	mmu.Write(0xDFFF, 0x02)
	assert.Equal(t, byte(0x01), mmu.Read(0xC000))
	assert.Equal(t, byte(0x02), mmu.Read(0xDFFF))
}

func TestMMU_hramRoundTrip16(t *testing.T) {
	mmu := newTestMMU()

	mmu.Write16(0xFF80, 0x1234)
	assert.Equal(t, byte(0x34), mmu.Read(0xFF80))
	assert.Equal(t, byte(0x12), mmu.Read(0xFF81))
	assert.Equal(t, uint16(0x1234), mmu.Read16(0xFF80))
}

func TestMMU_read16WrapsAddressSpace(t *testing.T) {
	mmu := newTestMMU()

	// high byte comes from 0x0000, the cartridge's first byte (0x00 here)
	mmu.Write(addr.IE, 0x42)
	assert.Equal(t, uint16(0x0042), mmu.Read16(0xFFFF))
}

func TestMMU_romIsReadOnly(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x1000] = 0x99
	mmu := New(cartridge.New(rom))

	assert.Equal(t, byte(0x99), mmu.Read(0x1000))
	// bank-control write for a rom-only cartridge is dropped
	mmu.Write(0x2000, 0x01)
	assert.Equal(t, byte(0x00), mmu.Read(0x2000))
}

func TestMMU_stubRegions(t *testing.T) {
	mmu := newTestMMU()

	mmu.Write(0x8000, 0xFF) // VRAM
	assert.Equal(t, byte(0x00), mmu.Read(0x8000))

	mmu.Write(0xA000, 0xFF) // cartridge RAM
	assert.Equal(t, byte(0x00), mmu.Read(0xA000))

	mmu.Write(addr.OAMStart, 0xFF)
	assert.Equal(t, byte(0x00), mmu.Read(addr.OAMStart))

	mmu.Write(addr.P1, 0xFF)
	assert.Equal(t, byte(0x00), mmu.Read(addr.P1))

	mmu.Write(0xFF10, 0xFF) // audio
	assert.Equal(t, byte(0x00), mmu.Read(0xFF10))

	mmu.Write(addr.LCDC, 0xFF)
	assert.Equal(t, byte(0x00), mmu.Read(addr.LCDC))
}

func TestMMU_echoRAMPanicsWhenStrict(t *testing.T) {
	mmu := newTestMMU()

	assert.Panics(t, func() { mmu.Read(0xE000) })
	assert.Panics(t, func() { mmu.Write(0xE000, 0x01) })
	assert.Panics(t, func() { mmu.Read(0xFEA0) })
	assert.Panics(t, func() { mmu.Write(0xFEFF, 0x01) })
}

func TestMMU_echoRAMMirrorsWhenPermissive(t *testing.T) {
	mmu := newTestMMU()
	mmu.SetPermissive(true)

	mmu.Write(0xC100, 0x42)
	assert.Equal(t, byte(0x42), mmu.Read(0xE100))

	mmu.Write(0xE200, 0x24)
	assert.Equal(t, byte(0x24), mmu.Read(0xC200))

	assert.Equal(t, byte(0x00), mmu.Read(0xFEA0))
	assert.NotPanics(t, func() { mmu.Write(0xFEA0, 0x01) })
}

func TestMMU_interruptRegisters(t *testing.T) {
	mmu := newTestMMU()

	mmu.Write(addr.IE, 0x15)
	assert.Equal(t, byte(0x15), mmu.Read(addr.IE))

	mmu.Write(addr.IF, 0x01)
	// unused upper bits of IF read as 1
	assert.Equal(t, byte(0xE1), mmu.Read(addr.IF))

	mmu.RequestInterrupt(addr.TimerInterrupt)
	assert.Equal(t, byte(0xE5), mmu.Read(addr.IF))
}

func TestMMU_timerOverflowLatchesInterrupt(t *testing.T) {
	mmu := newTestMMU()

	mmu.Write(addr.TAC, 0x05)
	mmu.Write(addr.TMA, 0xFE)
	mmu.Write(addr.TIMA, 0xFF)

	mmu.Tick(16)
	assert.Equal(t, byte(0xFE), mmu.Read(addr.TIMA))
	assert.Equal(t, byte(0x04), mmu.Read(addr.IF)&0x1F)
}

func TestMMU_debugPinsLY(t *testing.T) {
	mmu := newTestMMU()

	assert.Equal(t, byte(0x00), mmu.Read(addr.LY))
	mmu.SetDebug(true)
	assert.Equal(t, byte(0x90), mmu.Read(addr.LY))
}

func TestMMU_serialTransferThroughBus(t *testing.T) {
	mmu := newTestMMU()
	var captured []byte
	mmu.SetSerialSink(func(b byte) { captured = append(captured, b) })

	mmu.Write(addr.SB, 'k')
	mmu.Write(addr.SC, 0x81)

	assert.Equal(t, []byte{'k'}, captured)
	assert.Equal(t, byte(0x00), mmu.Read(addr.SC))
	// completion requests the serial interrupt
	assert.Equal(t, byte(0x08), mmu.Read(addr.IF)&0x1F)
}
