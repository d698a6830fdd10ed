package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verso/go-dotmatrix/dotmatrix/addr"
)

func TestTimer_divCadence(t *testing.T) {
	timer := NewTimer()

	timer.Tick(255)
	assert.Equal(t, byte(0x00), timer.Read(addr.DIV))

	timer.Tick(1)
	assert.Equal(t, byte(0x01), timer.Read(addr.DIV))

	timer.Tick(256 * 10)
	assert.Equal(t, byte(0x0B), timer.Read(addr.DIV))
}

func TestTimer_divReset(t *testing.T) {
	timer := NewTimer()

	timer.Tick(300)
	timer.Write(addr.DIV, 0xAB)
	assert.Equal(t, byte(0x00), timer.Read(addr.DIV))

	// the prescaler restarts as well: a full period is needed again
	timer.Tick(255)
	assert.Equal(t, byte(0x00), timer.Read(addr.DIV))
	timer.Tick(1)
	assert.Equal(t, byte(0x01), timer.Read(addr.DIV))
}

func TestTimer_timaDisabledByDefault(t *testing.T) {
	timer := NewTimer()

	timer.Tick(4096)
	assert.Equal(t, byte(0x00), timer.Read(addr.TIMA))
}

func TestTimer_timaCadence(t *testing.T) {
	testCases := []struct {
		desc   string
		tac    byte
		period int
	}{
		{desc: "select 00 is 1024 cycles", tac: 0x04, period: 1024},
		{desc: "select 01 is 16 cycles", tac: 0x05, period: 16},
		{desc: "select 10 is 64 cycles", tac: 0x06, period: 64},
		{desc: "select 11 is 256 cycles", tac: 0x07, period: 256},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			timer := NewTimer()
			timer.Write(addr.TAC, tC.tac)

			timer.Tick(tC.period - 1)
			assert.Equal(t, byte(0x00), timer.Read(addr.TIMA))
			timer.Tick(1)
			assert.Equal(t, byte(0x01), timer.Read(addr.TIMA))
		})
	}
}

func TestTimer_overflowReloadsAndRequestsInterrupt(t *testing.T) {
	fired := 0
	timer := NewTimer()
	timer.TimerInterruptHandler = func() { fired++ }

	timer.Write(addr.TAC, 0x05) // enable, 16-cycle period
	timer.Write(addr.TMA, 0xFE)
	timer.Write(addr.TIMA, 0xFF)

	timer.Tick(16)
	assert.Equal(t, byte(0xFE), timer.Read(addr.TIMA))
	assert.Equal(t, 1, fired)
}

func TestTimer_tacReadBack(t *testing.T) {
	timer := NewTimer()
	assert.Equal(t, byte(0xF8), timer.Read(addr.TAC))

	timer.Write(addr.TAC, 0x05)
	assert.Equal(t, byte(0xFD), timer.Read(addr.TAC))

	timer.Write(addr.TAC, 0x03)
	assert.Equal(t, byte(0xFB), timer.Read(addr.TAC))
}
