package cpu

import "github.com/verso/go-dotmatrix/dotmatrix/bit"

// fetch8 reads the byte at PC and advances PC, wrapping at 0xFFFF.
func (c *CPU) fetch8() uint8 {
	value := c.bus.Read(c.pc)
	c.pc++
	return value
}

// fetch16 reads a little-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return bit.Combine(high, low)
}

// pushStack decrements SP by two and stores the value there, low byte first.
// This places the high byte at the higher address, matching hardware.
func (c *CPU) pushStack(value uint16) {
	c.sp -= 2
	c.bus.Write16(c.sp, value)
}

// popStack reads the value at SP and increments SP by two.
func (c *CPU) popStack() uint16 {
	value := c.bus.Read16(c.sp)
	c.sp += 2
	return value
}

// inc8 increments a value, setting Z, N and H. C is untouched.
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, value&0x0F == 0x0F)
	return result
}

// dec8 decrements a value, setting Z, N and H. C is untouched.
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, value&0x0F == 0x00)
	return result
}

// addWithCarry folds ADD and ADC through one carry-aware path: the sum is
// computed in a 16-bit accumulator so an operand of 0xFF with carry set
// still produces the right flags.
func (c *CPU) addWithCarry(value, carry uint8) {
	a := c.a
	result := uint16(a) + uint16(value) + uint16(carry)
	c.a = uint8(result)

	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0x0F)+(value&0x0F)+carry > 0x0F)
	c.setFlagToCondition(carryFlag, result > 0xFF)
}

// add8 adds the value to register A.
func (c *CPU) add8(value uint8) {
	c.addWithCarry(value, 0)
}

// adc8 adds the value plus the carry flag to register A.
func (c *CPU) adc8(value uint8) {
	c.addWithCarry(value, c.flagToBit(carryFlag))
}

func (c *CPU) subWithCarry(value, carry uint8) {
	a := c.a
	c.a = a - value - carry

	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, a&0x0F < (value&0x0F)+carry)
	c.setFlagToCondition(carryFlag, uint16(a) < uint16(value)+uint16(carry))
}

// sub8 subtracts the value from register A.
func (c *CPU) sub8(value uint8) {
	c.subWithCarry(value, 0)
}

// sbc8 subtracts the value and the carry flag from register A.
func (c *CPU) sbc8(value uint8) {
	c.subWithCarry(value, c.flagToBit(carryFlag))
}

// cp8 sets the flags of a subtraction but discards the result.
func (c *CPU) cp8(value uint8) {
	a := c.a
	c.sub8(value)
	c.a = a
}

func (c *CPU) and8(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or8(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xor8(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// addToHL adds a 16 bit value to HL. Z is untouched; H and C are the
// carries out of bit 11 and bit 15.
func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	result := uint32(hl) + uint32(value)

	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.setFlagToCondition(carryFlag, result > 0xFFFF)

	c.setHL(uint16(result))
}

// addToSP adds a signed 8-bit offset to SP and returns the result, used by
// both ADD SP,e8 and LD HL,SP+e8. H and C come from the unsigned low nibble
// and low byte of the operand, not its sign extension.
func (c *CPU) addToSP(offset uint8) uint16 {
	sp := c.sp
	result := sp + uint16(int16(int8(offset)))

	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (sp&0x0F)+uint16(offset&0x0F) > 0x0F)
	c.setFlagToCondition(carryFlag, (sp&0xFF)+uint16(offset) > 0xFF)

	return result
}

// daa adjusts register A to a valid binary-coded-decimal result after an
// addition or subtraction, per the canonical pandocs algorithm.
func (c *CPU) daa() {
	a := c.a
	carry := c.isSetFlag(carryFlag)

	if !c.isSetFlag(subFlag) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.isSetFlag(halfCarryFlag) || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.isSetFlag(halfCarryFlag) {
			a -= 0x06
		}
	}

	c.a = a
	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) setRotateFlags(result uint8, carry bool) {
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

// rlc rotates left; bit 7 goes to both C and bit 0.
func (c *CPU) rlc(value uint8) uint8 {
	result := value<<1 | value>>7
	c.setRotateFlags(result, value&0x80 != 0)
	return result
}

// rl rotates left through carry; bit 7 goes to C, the old C to bit 0.
func (c *CPU) rl(value uint8) uint8 {
	result := value<<1 | c.flagToBit(carryFlag)
	c.setRotateFlags(result, value&0x80 != 0)
	return result
}

// rrc rotates right; bit 0 goes to both C and bit 7.
func (c *CPU) rrc(value uint8) uint8 {
	result := value>>1 | value<<7
	c.setRotateFlags(result, value&0x01 != 0)
	return result
}

// rr rotates right through carry; bit 0 goes to C, the old C to bit 7.
func (c *CPU) rr(value uint8) uint8 {
	result := value>>1 | c.flagToBit(carryFlag)<<7
	c.setRotateFlags(result, value&0x01 != 0)
	return result
}

// sla shifts left logically; bit 7 goes to C, bit 0 becomes 0.
func (c *CPU) sla(value uint8) uint8 {
	result := value << 1
	c.setRotateFlags(result, value&0x80 != 0)
	return result
}

// sra shifts right arithmetically; bit 7 is preserved, bit 0 goes to C.
func (c *CPU) sra(value uint8) uint8 {
	result := value>>1 | value&0x80
	c.setRotateFlags(result, value&0x01 != 0)
	return result
}

// srl shifts right logically; bit 7 becomes 0, bit 0 goes to C.
func (c *CPU) srl(value uint8) uint8 {
	result := value >> 1
	c.setRotateFlags(result, value&0x01 != 0)
	return result
}

// swap exchanges the two nibbles.
func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setRotateFlags(result, false)
	return result
}

// bitTest sets Z from the complement of the selected bit. C is untouched.
func (c *CPU) bitTest(index, value uint8) {
	c.setFlagToCondition(zeroFlag, value>>index&1 == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// jr consumes the signed offset operand and, if the condition holds, adds it
// to PC. The offset is relative to the instruction after the operand.
func (c *CPU) jr(condition bool) int {
	offset := int8(c.fetch8())
	if !condition {
		return 8
	}
	c.pc += uint16(int16(offset))
	return 12
}

// jp consumes the address operand and, if the condition holds, jumps to it.
func (c *CPU) jp(condition bool) int {
	address := c.fetch16()
	if !condition {
		return 12
	}
	c.pc = address
	return 16
}

// call consumes the address operand and, if the condition holds, pushes the
// return address and jumps.
func (c *CPU) call(condition bool) int {
	address := c.fetch16()
	if !condition {
		return 12
	}
	c.pushStack(c.pc)
	c.pc = address
	return 24
}

// retIf returns from a call when the condition holds.
func (c *CPU) retIf(condition bool) int {
	if !condition {
		return 8
	}
	c.pc = c.popStack()
	return 20
}

// rst pushes PC and jumps to one of the fixed restart vectors.
func (c *CPU) rst(vector uint16) int {
	c.pushStack(c.pc)
	c.pc = vector
	return 16
}
