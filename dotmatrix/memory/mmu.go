package memory

import (
	"fmt"
	"log/slog"

	"github.com/verso/go-dotmatrix/dotmatrix/addr"
	"github.com/verso/go-dotmatrix/dotmatrix/bit"
	"github.com/verso/go-dotmatrix/dotmatrix/cartridge"
	"github.com/verso/go-dotmatrix/dotmatrix/serial"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAMPage
	regionIO
)

const (
	wramOffset uint16 = 0xC000
	hramOffset uint16 = 0xFF80
	echoOffset uint16 = 0xE000
)

// SerialPort is the minimal interface for a serial device connected to SB/SC.
// Implementations MUST only accept reads/writes to addr.SB and addr.SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Tick(cycles int)
	Reset()
}

// MMU decodes the 16-bit address space and owns every peripheral behind it:
// work RAM, high RAM, the timer, the serial port and the interrupt flag and
// enable bytes. It borrows the cartridge exclusively.
type MMU struct {
	cart      *cartridge.Cartridge
	wram      [0x2000]byte
	hram      [0x7F]byte
	ienable   byte
	iflag     byte
	timer     *Timer
	serial    SerialPort
	regionMap [256]memRegion

	// debug pins LY (0xFF44) to 0x90 so ROMs that busy-wait for vblank proceed.
	debug bool
	// permissive downgrades reserved-region accesses from panics to diagnostics.
	permissive bool
}

// New creates a memory unit with the provided cartridge loaded. Equivalent to
// turning on a Game Boy with a cartridge in.
func New(cart *cartridge.Cartridge) *MMU {
	mmu := &MMU{
		cart:  cart,
		timer: NewTimer(),
	}
	mmu.serial = serial.NewLogSink(func() { mmu.RequestInterrupt(addr.SerialInterrupt) })
	mmu.timer.TimerInterruptHandler = func() { mmu.RequestInterrupt(addr.TimerInterrupt) }
	initRegionMap(mmu)
	return mmu
}

func initRegionMap(m *MMU) {
	// ROM: 0x0000-0x7FFF
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	// VRAM: 0x8000-0x9FFF
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	// External RAM: 0xA000-0xBFFF
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	// Work RAM: 0xC000-0xDFFF
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	// Echo RAM: 0xE000-0xFDFF
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	// OAM + unusable gap: 0xFE00-0xFEFF
	m.regionMap[0xFE] = regionOAMPage
	// IO + HRAM + IE: 0xFF00-0xFFFF
	m.regionMap[0xFF] = regionIO
}

// Cartridge returns the loaded cartridge.
func (m *MMU) Cartridge() *cartridge.Cartridge {
	return m.cart
}

// SetDebug toggles the LY pin: while set, reads of 0xFF44 return 0x90.
func (m *MMU) SetDebug(debug bool) {
	m.debug = debug
}

// SetPermissive toggles whether reserved-region accesses panic or are logged.
func (m *MMU) SetPermissive(permissive bool) {
	m.permissive = permissive
}

// SetSerialSink forwards every serial transfer byte to the given function.
func (m *MMU) SetSerialSink(fn func(byte)) {
	if sink, ok := m.serial.(*serial.LogSink); ok {
		sink.SetSink(fn)
	}
}

// Tick advances any I/O that tracks time: the timer and the serial port.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
	m.serial.Tick(cycles)
}

// RequestInterrupt sets the interrupt flag (IF register) of the chosen interrupt to 1.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	var bitPos uint8
	switch interrupt {
	case addr.VBlankInterrupt:
		bitPos = 0
	case addr.LCDSTATInterrupt:
		bitPos = 1
	case addr.TimerInterrupt:
		bitPos = 2
	case addr.SerialInterrupt:
		bitPos = 3
	case addr.JoypadInterrupt:
		bitPos = 4
	default:
		panic(fmt.Sprintf("unknown interrupt: 0x%02X", uint8(interrupt)))
	}

	m.iflag = bit.Set(bitPos, m.iflag)
}

func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM:
		return m.cart.Read(address)
	case regionVRAM, regionExtRAM:
		// stubbed: video RAM and unbanked cartridge RAM
		return 0x00
	case regionWRAM:
		return m.wram[address-wramOffset]
	case regionEcho:
		if !m.permissive {
			panic(fmt.Sprintf("reserved echo memory read: 0x%04X", address))
		}
		slog.Warn("read from echo RAM", "addr", fmt.Sprintf("0x%04X", address))
		return m.wram[address-echoOffset]
	case regionOAMPage:
		if address <= addr.OAMEnd {
			// stubbed OAM
			return 0x00
		}
		if !m.permissive {
			panic(fmt.Sprintf("reserved unusable memory read: 0x%04X", address))
		}
		slog.Warn("read from unusable region", "addr", fmt.Sprintf("0x%04X", address))
		return 0x00
	case regionIO:
		return m.readIO(address)
	default:
		panic(fmt.Sprintf("attempted read at unmapped address: 0x%04X", address))
	}
}

func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM:
		// bank-control signal for MBC cartridges, dropped without banking
		m.cart.Write(address, value)
	case regionVRAM, regionExtRAM:
		// stubbed
	case regionWRAM:
		m.wram[address-wramOffset] = value
	case regionEcho:
		if !m.permissive {
			panic(fmt.Sprintf("reserved echo memory write: 0x%04X", address))
		}
		slog.Warn("write to echo RAM", "addr", fmt.Sprintf("0x%04X", address))
		m.wram[address-echoOffset] = value
	case regionOAMPage:
		if address <= addr.OAMEnd {
			return
		}
		if !m.permissive {
			panic(fmt.Sprintf("reserved unusable memory write: 0x%04X", address))
		}
		slog.Warn("write to unusable region", "addr", fmt.Sprintf("0x%04X", address))
	case regionIO:
		m.writeIO(address, value)
	default:
		panic(fmt.Sprintf("attempted write at unmapped address: 0x%04X", address))
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		// stubbed joypad
		return 0x00
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return m.timer.Read(address)
	case address == addr.IF:
		// the upper 3 bits are unused and always read as 1
		return m.iflag | 0xE0
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		// stubbed audio & wave pattern
		return 0x00
	case address == addr.LY && m.debug:
		return 0x90
	case address >= addr.LCDC && address <= addr.WX:
		// stubbed LCD
		return 0x00
	case address >= hramOffset && address < addr.IE:
		return m.hram[address-hramOffset]
	case address == addr.IE:
		return m.ienable
	default:
		// remaining IO registers (CGB speed switch, VRAM banking, ...)
		return 0x00
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		// stubbed joypad
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		m.timer.Write(address, value)
	case address == addr.IF:
		m.iflag = value & 0x1F
	case address >= addr.AudioStart && address <= addr.AudioEnd:
		// stubbed
	case address >= addr.LCDC && address <= addr.WX:
		// stubbed
	case address >= hramOffset && address < addr.IE:
		m.hram[address-hramOffset] = value
	case address == addr.IE:
		m.ienable = value
	default:
		// remaining IO registers, dropped
	}
}

// Read16 reads a 16-bit little-endian value: low byte at address, high byte
// at address+1. The second read wraps around 0xFFFF by u16 arithmetic.
func (m *MMU) Read16(address uint16) uint16 {
	low := m.Read(address)
	high := m.Read(address + 1)
	return bit.Combine(high, low)
}

// Write16 writes a 16-bit value little-endian: low byte at address, high byte
// at address+1, wrapping like Read16.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, bit.Low(value))
	m.Write(address+1, bit.High(value))
}
