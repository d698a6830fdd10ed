package cpu

// The CB page is fully regular: the low 3 bits select the operand
// (B,C,D,E,H,L,(HL),A) and the upper bits select the operation, so it is
// decoded arithmetically instead of enumerating 256 handlers.

const cbTargetHL = 6

// cbRead reads the operand selected by the low 3 bits of a CB opcode.
func (c *CPU) cbRead(target uint8) uint8 {
	switch target {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case cbTargetHL:
		return c.bus.Read(c.getHL())
	default:
		return c.a
	}
}

// cbWrite stores a result back into the operand selected by the low 3 bits.
func (c *CPU) cbWrite(target, value uint8) {
	switch target {
	case 0:
		c.b = value
	case 1:
		c.c = value
	case 2:
		c.d = value
	case 3:
		c.e = value
	case 4:
		c.h = value
	case 5:
		c.l = value
	case cbTargetHL:
		c.bus.Write(c.getHL(), value)
	default:
		c.a = value
	}
}

// execCB executes a CB-prefixed opcode and returns its T-cycle cost.
func (c *CPU) execCB(op uint8) int {
	target := op & 0x07
	value := c.cbRead(target)

	// 0x00-0x3F: rotates and shifts, grouped by bits 5-3
	if op < 0x40 {
		var result uint8
		switch op >> 3 {
		case 0:
			result = c.rlc(value)
		case 1:
			result = c.rrc(value)
		case 2:
			result = c.rl(value)
		case 3:
			result = c.rr(value)
		case 4:
			result = c.sla(value)
		case 5:
			result = c.sra(value)
		case 6:
			result = c.swap(value)
		case 7:
			result = c.srl(value)
		}
		c.cbWrite(target, result)
		if target == cbTargetHL {
			return 16
		}
		return 8
	}

	index := (op >> 3) & 0x07

	switch {
	// 0x40-0x7F: BIT b
	case op < 0x80:
		c.bitTest(index, value)
		if target == cbTargetHL {
			return 12
		}
		return 8
	// 0x80-0xBF: RES b
	case op < 0xC0:
		c.cbWrite(target, value & ^(uint8(1)<<index))
	// 0xC0-0xFF: SET b
	default:
		c.cbWrite(target, value|uint8(1)<<index)
	}

	if target == cbTargetHL {
		return 16
	}
	return 8
}
