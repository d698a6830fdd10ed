package cpu

// Interrupt masks, in priority order.
// https://gbdev.io/pandocs/Interrupts.html
const (
	VBlankInterrupt  uint8 = 0x01
	LCDStatInterrupt uint8 = 0x02
	TimerInterrupt   uint8 = 0x04
	SerialInterrupt  uint8 = 0x08
	JoypadInterrupt  uint8 = 0x10
)

// handlers holds the masks in the order they are arbitrated.
var handlers = [5]uint8{
	VBlankInterrupt,
	LCDStatInterrupt,
	TimerInterrupt,
	SerialInterrupt,
	JoypadInterrupt,
}

// pendingState tracks the two-step delay of EI and DI: the instruction
// following either runs under the old IME value.
type pendingState uint8

const (
	pendingNone pendingState = iota
	pendingDelayed
	pendingSetting
)

// Interrupts holds the master enable latch and the pending EI/DI state
// machines.
type Interrupts struct {
	ime bool
	ei  pendingState
	di  pendingState
}

// Enable schedules IME to become true. Normally delayed one instruction;
// RETI passes immediate so the handler's caller runs with interrupts on.
func (i *Interrupts) Enable(immediate bool) {
	if immediate {
		i.ei = pendingSetting
	} else {
		i.ei = pendingDelayed
	}
}

// Disable schedules IME to become false, delayed one instruction.
func (i *Interrupts) Disable() {
	i.di = pendingDelayed
}

// Update advances the pending state machines by one position. It must be
// called exactly once at the beginning of each step, before fetch or service.
func (i *Interrupts) Update() {
	switch i.ei {
	case pendingDelayed:
		i.ei = pendingSetting
	case pendingSetting:
		i.ime = true
		i.ei = pendingNone
	}

	switch i.di {
	case pendingDelayed:
		i.di = pendingSetting
	case pendingSetting:
		i.ime = false
		i.di = pendingNone
	}
}

// IME reports the current master enable state.
func (i *Interrupts) IME() bool {
	return i.ime
}

// Requested returns the highest-priority interrupt that is both enabled (IE)
// and flagged (IF). With IME off a pending interrupt is only reported while
// halted, where it wakes the CPU without being serviced.
func (i *Interrupts) Requested(halted bool, ienable, iflag uint8) (uint8, bool) {
	if !i.ime && !halted {
		return 0, false
	}

	for _, handler := range handlers {
		if ienable&iflag&handler != 0 {
			return handler, true
		}
	}

	return 0, false
}

// HandlerAddress returns the fixed vector an interrupt mask dispatches to.
func HandlerAddress(interrupt uint8) (uint16, error) {
	switch interrupt {
	case VBlankInterrupt:
		return 0x0040, nil
	case LCDStatInterrupt:
		return 0x0048, nil
	case TimerInterrupt:
		return 0x0050, nil
	case SerialInterrupt:
		return 0x0058, nil
	case JoypadInterrupt:
		return 0x0060, nil
	default:
		return 0, &InvalidInterruptError{Mask: interrupt}
	}
}
