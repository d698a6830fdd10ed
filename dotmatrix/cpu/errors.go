package cpu

import "fmt"

// IllegalInstructionError is returned when the fetched opcode is one of the
// 11 holes in the instruction table. The program counter points one past the
// offending byte.
type IllegalInstructionError struct {
	Opcode uint8
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction: %#04x", e.Opcode)
}

// InvalidInterruptError signals an internal invariant breach: a mask outside
// the five defined interrupt bits was asked for its handler vector.
type InvalidInterruptError struct {
	Mask uint8
}

func (e *InvalidInterruptError) Error() string {
	return fmt.Sprintf("invalid interrupt: %#04x", e.Mask)
}
