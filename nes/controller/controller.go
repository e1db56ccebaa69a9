package controller

import (
	"log/slog"

	"github.com/valerio/go-nesio/nes/addr"
	"github.com/valerio/go-nesio/nes/bit"
)

// Button is a standard controller button, numbered in shift-register order.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// ButtonCount is the length of the shift register.
const ButtonCount = 8

var buttonNames = [ButtonCount]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}

// State is the strobe state of the shift register.
type State uint8

const (
	// Shifting: strobe low, each read returns the next button.
	Shifting State = iota
	// Latching: strobe high, the register keeps reloading and every read
	// returns the live state of A.
	Latching
)

func (s State) String() string {
	if s == Latching {
		return "Latching"
	}
	return "Shifting"
}

// Port identifies which data register a controller answers on.
type Port uint8

const (
	PortOne Port = iota
	PortTwo
)

func (p Port) String() string {
	if p == PortTwo {
		return "2"
	}
	return "1"
}

// Address returns the data register of the port.
func (p Port) Address() uint16 {
	if p == PortTwo {
		return addr.JOY2
	}
	return addr.JOY1
}

// Controller emulates a standard NES joypad: a 4021 shift register loaded
// from eight buttons, strobed through JOY1 and read one bit at a time.
type Controller struct {
	port    Port
	buttons [ButtonCount]bool
	latch   byte
	state   State
	cursor  int
	logger  *slog.Logger
}

// New creates a controller answering reads on the given port.
// Power-on state is Shifting with the cursor at A.
func New(port Port) *Controller {
	return &Controller{
		port:   port,
		state:  Shifting,
		logger: slog.Default(),
	}
}

// Write handles a CPU write to the strobe register. Only JOY1 is accepted,
// the strobe line is shared by both ports.
//
// Transitions on bit 0:
//   - 0 -> 1: enter Latching, reads return the live A button
//   - 1 -> 0: enter Shifting with the cursor back at A
//   - unchanged: only the latched byte is updated
//
// Bits 1-2 drive the expansion port outputs, they are stored and exposed
// through Expansion but have no effect on the shift register.
func (c *Controller) Write(address uint16, value byte) {
	if address != addr.JOY1 {
		addr.Unsupported("controller", "write", address)
	}

	prev := c.latch
	c.latch = value
	if !bit.Changed(0, prev, value) {
		return
	}

	if bit.IsSet(0, value) {
		c.state = Latching
	} else {
		c.state = Shifting
	}
	c.cursor = 0
	c.logger.Debug("controller strobe", "port", c.port, "state", c.state)
}

// Read handles a CPU read of the port's data register and returns the
// current bit in bit 0; the other bits are 0.
//
// Once all eight buttons have been shifted out, reads return 1 until the
// next strobe, as official controllers do.
func (c *Controller) Read(address uint16) byte {
	if address != c.port.Address() {
		addr.Unsupported("controller", "read", address)
	}

	if c.state == Latching {
		return bit.FromBool(c.buttons[ButtonA])
	}

	if c.cursor >= ButtonCount {
		return 1
	}

	value := bit.FromBool(c.buttons[c.cursor])
	c.cursor++
	return value
}

// Press marks a button as held.
func (c *Controller) Press(b Button) {
	if b < ButtonCount {
		c.buttons[b] = true
	}
}

// Release marks a button as released.
func (c *Controller) Release(b Button) {
	if b < ButtonCount {
		c.buttons[b] = false
	}
}

// SetButtons replaces the state of all buttons, indexed by Button.
func (c *Controller) SetButtons(buttons [ButtonCount]bool) {
	c.buttons = buttons
}

func (c *Controller) Pressed(b Button) bool {
	return b < ButtonCount && c.buttons[b]
}

func (c *Controller) State() State { return c.state }

// Cursor returns the index of the next button to be shifted out, 8 once
// the register is exhausted.
func (c *Controller) Cursor() int { return c.cursor }

// Expansion returns bits 1-2 of the last strobe write.
func (c *Controller) Expansion() byte { return (c.latch >> 1) & 0x03 }

func (c *Controller) Port() Port { return c.port }
