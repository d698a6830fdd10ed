package dotmatrix

import (
	"log/slog"
	"os"

	"github.com/verso/go-dotmatrix/dotmatrix/cartridge"
	"github.com/verso/go-dotmatrix/dotmatrix/cpu"
	"github.com/verso/go-dotmatrix/dotmatrix/memory"
)

// Emulator is the root struct and entry point for running the emulation: it
// wires a cartridge into the bus and the bus into the CPU.
type Emulator struct {
	cart *cartridge.Cartridge
	mmu  *memory.MMU
	cpu  *cpu.CPU
}

// New creates an emulator around the given cartridge.
func New(cart *cartridge.Cartridge) *Emulator {
	mmu := memory.New(cart)
	return &Emulator{
		cart: cart,
		mmu:  mmu,
		cpu:  cpu.New(mmu),
	}
}

// NewWithFile creates an emulator and loads the ROM file specified into it.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded ROM data", "size", len(data))

	return New(cartridge.New(data)), nil
}

// Cartridge returns the loaded cartridge.
func (e *Emulator) Cartridge() *cartridge.Cartridge {
	return e.cart
}

// CPU returns the processor, exposed for host-side diagnostics.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// SetDebug pins LY to 0x90 so ROMs that busy-wait for vblank proceed.
func (e *Emulator) SetDebug(debug bool) {
	e.mmu.SetDebug(debug)
}

// SetPermissive downgrades reserved-region bus accesses to diagnostics.
func (e *Emulator) SetPermissive(permissive bool) {
	e.mmu.SetPermissive(permissive)
}

// SetSerialSink forwards every serial transfer byte to the given function.
func (e *Emulator) SetSerialSink(fn func(byte)) {
	e.mmu.SetSerialSink(fn)
}

// Run drives the step loop. With maxSteps of 0 it runs until a fatal error
// surfaces; otherwise it returns after the given number of steps.
func (e *Emulator) Run(maxSteps uint64) error {
	if maxSteps == 0 {
		return e.cpu.Boot()
	}
	for i := uint64(0); i < maxSteps; i++ {
		if err := e.cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}
