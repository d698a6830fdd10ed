package addr

// interrupts
const (
	// IF is the address for the Interrupt Flags register.
	IF uint16 = 0xFF0F
	// IE is the address for the Interrupt Enable register.
	IE uint16 = 0xFFFF
)

// joypad
const (
	// P1 is used to read the Joypad state.
	P1 uint16 = 0xFF00
)

// serial I/O
const (
	// SB (Serial transfer data, 0xFF01)
	//
	// Holds the 8-bit data to be transmitted. After a transfer completes, SB
	// contains the received byte from the peer (0xFF when nothing is connected).
	SB uint16 = 0xFF01
	// SC (Serial transfer control, 0xFF02)
	//  - Bit 7 (Start): Writing 1 starts an 8-bit transfer.
	//  - Bit 0 (Clock): 1=internal clock, 0=external clock.
	//  - On completion, the Serial interrupt (IF bit 3) is requested.
	SC uint16 = 0xFF02
)

// timers
const (
	// DIV is the divider register. Incremented 16384 times/s, writing to it resets it.
	DIV uint16 = 0xFF04
	// TIMA is the timer counter register. Generates an interrupt when it overflows.
	TIMA uint16 = 0xFF05
	// TMA is the timer modulo register. When TIMA overflows, this data will be loaded.
	TMA uint16 = 0xFF06
	// TAC is the timer control register. Used to start/stop and control the timer clock.
	TAC uint16 = 0xFF07
)

// lcd registers (stubbed, kept for address decoding)
const (
	// LCDC is the LCD Control register.
	LCDC uint16 = 0xFF40
	// LY is the LCDC Y-Coordinate (readonly) register.
	LY uint16 = 0xFF44
	// WX is the Window X Position register, the last LCD register.
	WX uint16 = 0xFF4B
)

// audio registers (stubbed, kept for address decoding)
const (
	// AudioStart is the first audio register (NR10).
	AudioStart uint16 = 0xFF10
	// AudioEnd is the last byte of wave pattern RAM.
	AudioEnd uint16 = 0xFF3F
)

// oam
const (
	// OAMStart is the start of OAM memory (40 sprites * 4 bytes each).
	OAMStart uint16 = 0xFE00
	// OAMEnd is the end of OAM memory.
	OAMEnd uint16 = 0xFE9F
)

// Interrupt is an enum that represents one of the possible interrupts.
type Interrupt uint8

const (
	// VBlankInterrupt is fired when the GPU has completed a frame.
	VBlankInterrupt Interrupt = 1
	// LCDSTATInterrupt is fired based on one of the conditions in the LCDSTAT register.
	LCDSTATInterrupt Interrupt = 1 << 1
	// TimerInterrupt is fired when the timer register (TIMA) overflows (i.e. goes from 0xFF to 0x00).
	TimerInterrupt Interrupt = 1 << 2
	// SerialInterrupt is fired when a serial transfer has completed on the game link port.
	SerialInterrupt Interrupt = 1 << 3
	// JoypadInterrupt is fired on a button press.
	JoypadInterrupt Interrupt = 1 << 4
)
