package cpu

import (
	"github.com/verso/go-dotmatrix/dotmatrix/addr"
	"github.com/verso/go-dotmatrix/dotmatrix/memory"
)

// CPU holds the Sharp LR35902 state: the register file, the interrupt master
// enable latch and the halt flag. It holds the bus exclusively.
type CPU struct {
	bus        *memory.MMU
	interrupts Interrupts

	a, f, b, c, d, e, h, l uint8
	sp, pc                 uint16

	halted bool
	cycles uint64
}

// New creates a CPU in the DMG/MGB post-boot state: the boot ROM has already
// run, so PC sits at the cartridge entry point and the registers carry the
// canonical power-up values. H and C track whether the header checksum byte
// is non-zero, matching what the boot ROM leaves behind.
// https://gbdev.io/pandocs/Power_Up_Sequence.html#cpu-registers
func New(bus *memory.MMU) *CPU {
	c := &CPU{
		bus: bus,
		a:   0x01,
		b:   0x00,
		c:   0x13,
		d:   0x00,
		e:   0xD8,
		h:   0x01,
		l:   0x4D,
		pc:  0x0100,
		sp:  0xFFFE,
	}

	c.setFlag(zeroFlag)
	if bus.Cartridge().HeaderChecksum() != 0x00 {
		c.setFlag(halfCarryFlag)
		c.setFlag(carryFlag)
	}

	return c
}

// Step runs exactly one of: interrupt dispatch, halt idle, or a single
// instruction. Cycle accounting (and with it timer progress) happens inside.
func (c *CPU) Step() error {
	c.interrupts.Update()

	ienable := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF) & 0x1F

	if mask, ok := c.interrupts.Requested(c.halted, ienable, iflag); ok {
		if !c.interrupts.IME() {
			// pending interrupts wake a halted CPU but are only serviced under IME
			c.halted = false
			c.tick(4)
			return nil
		}
		return c.service(mask)
	}

	if c.halted {
		c.tick(4)
		if c.bus.Read(addr.IF)&0x1F != 0 {
			c.halted = false
		}
		return nil
	}

	op := c.fetch8()
	execute, ok := opcodeMap[op]
	if !ok {
		return &IllegalInstructionError{Opcode: op}
	}
	c.tick(execute(c))
	return nil
}

// service dispatches an interrupt: the return address is pushed, PC jumps to
// the handler vector, the serviced IF bit and IME are cleared.
func (c *CPU) service(mask uint8) error {
	vector, err := HandlerAddress(mask)
	if err != nil {
		return err
	}

	c.pushStack(c.pc)
	c.pc = vector
	c.bus.Write(addr.IF, c.bus.Read(addr.IF) & ^mask)
	c.halted = false
	c.interrupts.ime = false
	c.tick(16)
	return nil
}

// Boot runs the step loop until a fatal error surfaces.
func (c *CPU) Boot() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
	}
}

func (c *CPU) tick(cycles int) {
	c.cycles += uint64(cycles)
	c.bus.Tick(cycles)
}

// Cycles returns the total number of T-cycles charged since power-on.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// PC returns the current program counter, useful for host-side diagnostics.
func (c *CPU) PC() uint16 {
	return c.pc
}
