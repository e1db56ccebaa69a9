package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-nesio/nes/addr"
)

var readOrder = []Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}

// strobe performs the usual 1 -> 0 sequence games use before reading.
func strobe(c *Controller) {
	c.Write(addr.JOY1, 0x01)
	c.Write(addr.JOY1, 0x00)
}

func TestPowerOnState(t *testing.T) {
	c := New(PortOne)
	assert.Equal(t, Shifting, c.State())
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, byte(0), c.Expansion())
}

func TestStrobeTransitions(t *testing.T) {
	tests := []struct {
		name       string
		writes     []byte
		wantState  State
		wantCursor int
	}{
		{"rising edge latches", []byte{0x01}, Latching, 0},
		{"falling edge shifts", []byte{0x01, 0x00}, Shifting, 0},
		{"repeated high stays latching", []byte{0x01, 0x01, 0x03}, Latching, 0},
		{"repeated low stays shifting", []byte{0x00, 0x00, 0x06}, Shifting, 0},
		{"high bits do not strobe", []byte{0x01, 0x00, 0xFE}, Shifting, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(PortOne)
			for _, w := range tt.writes {
				c.Write(addr.JOY1, w)
			}
			assert.Equal(t, tt.wantState, c.State())
			assert.Equal(t, tt.wantCursor, c.Cursor())
		})
	}
}

func TestShiftReadOrder(t *testing.T) {
	for _, pressed := range readOrder {
		t.Run(pressed.String(), func(t *testing.T) {
			c := New(PortOne)
			c.Press(pressed)
			strobe(c)

			for i, b := range readOrder {
				want := byte(0)
				if b == pressed {
					want = 1
				}
				assert.Equal(t, want, c.Read(addr.JOY1), "read %d (%s)", i, b)
			}
		})
	}
}

func TestShiftSamplesLiveState(t *testing.T) {
	c := New(PortOne)
	strobe(c)

	// change inputs between reads: each read sees the value at read time
	for i, b := range readOrder {
		if i%2 == 0 {
			c.Press(b)
		}
		want := byte(0)
		if i%2 == 0 {
			want = 1
		}
		assert.Equal(t, want, c.Read(addr.JOY1), "read %d (%s)", i, b)
		c.Release(b)
	}
	assert.Equal(t, 8, c.Cursor())
}

func TestExhaustedRegisterReadsOne(t *testing.T) {
	c := New(PortOne)
	strobe(c)

	for rangeIdx := 0; rangeIdx < ButtonCount; rangeIdx++ {
		c.Read(addr.JOY1)
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, byte(1), c.Read(addr.JOY1), "extra read %d", i)
	}
	assert.Equal(t, ButtonCount, c.Cursor())

	c.Press(ButtonA)
	strobe(c)
	assert.Equal(t, byte(1), c.Read(addr.JOY1))
	assert.Equal(t, byte(0), c.Read(addr.JOY1))
}

// While the strobe bit is held at 1 every read returns live A. Hardware
// latches on bit 0 set, so this is the "held" property with that polarity.
func TestLatchingTracksButtonA(t *testing.T) {
	c := New(PortOne)
	c.Press(ButtonB)
	c.Write(addr.JOY1, 0x01)

	for rangeIdx := 0; rangeIdx < 10; rangeIdx++ {
		assert.Equal(t, byte(0), c.Read(addr.JOY1))
	}

	c.Press(ButtonA)
	assert.Equal(t, byte(1), c.Read(addr.JOY1))
	c.Release(ButtonA)
	assert.Equal(t, byte(0), c.Read(addr.JOY1))
	c.Press(ButtonA)
	assert.Equal(t, byte(1), c.Read(addr.JOY1))

	assert.Equal(t, 0, c.Cursor(), "cursor never advances while latching")
}

func TestFallingEdgeResetsCursor(t *testing.T) {
	c := New(PortOne)
	c.SetButtons([ButtonCount]bool{ButtonA: true, ButtonStart: true})

	strobe(c)
	c.Read(addr.JOY1)
	c.Read(addr.JOY1)
	c.Read(addr.JOY1)
	require.Equal(t, 3, c.Cursor())

	// second 1 -> 0 discards the half-read sequence
	strobe(c)
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, byte(1), c.Read(addr.JOY1)) // A
	assert.Equal(t, byte(0), c.Read(addr.JOY1)) // B
	assert.Equal(t, byte(0), c.Read(addr.JOY1)) // Select
	assert.Equal(t, byte(1), c.Read(addr.JOY1)) // Start
}

func TestReadOnlyUsesBitZero(t *testing.T) {
	c := New(PortOne)
	c.SetButtons([ButtonCount]bool{true, true, true, true, true, true, true, true})
	strobe(c)

	for rangeIdx := 0; rangeIdx < 12; rangeIdx++ {
		assert.Equal(t, byte(0), c.Read(addr.JOY1)&0xFE)
	}
}

func TestExpansionBits(t *testing.T) {
	c := New(PortOne)
	c.Write(addr.JOY1, 0x07)
	assert.Equal(t, byte(0x03), c.Expansion())
	assert.Equal(t, Latching, c.State())

	c.Write(addr.JOY1, 0x05)
	assert.Equal(t, byte(0x02), c.Expansion())
	assert.Equal(t, Latching, c.State())
}

func TestUnsupportedAddresses(t *testing.T) {
	one := New(PortOne)
	two := New(PortTwo)

	assert.PanicsWithError(t, "controller: write 0x4017: unsupported register address", func() {
		one.Write(addr.JOY2, 0x01)
	})
	assert.PanicsWithError(t, "controller: read 0x4017: unsupported register address", func() {
		one.Read(addr.JOY2)
	})
	assert.PanicsWithError(t, "controller: read 0x4016: unsupported register address", func() {
		two.Read(addr.JOY1)
	})
	assert.PanicsWithError(t, "controller: read 0x4000: unsupported register address", func() {
		one.Read(0x4000)
	})
	assert.NotPanics(t, func() {
		two.Write(addr.JOY1, 0x01)
		two.Read(addr.JOY2)
	})
}

func TestButtonString(t *testing.T) {
	assert.Equal(t, "Select", ButtonSelect.String())
	assert.Equal(t, "Right", ButtonRight.String())
	assert.Equal(t, "Unknown", Button(9).String())
	assert.False(t, New(PortOne).Pressed(Button(9)))
}
