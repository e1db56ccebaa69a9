package addr

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAddress is raised when a device is handed a register address
// it does not claim. It always points at a routing bug in the caller.
var ErrUnsupportedAddress = errors.New("unsupported register address")

// Error carries the device and address of a rejected register access.
type Error struct {
	Device  string
	Op      string
	Address uint16
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s 0x%04X: %v", e.Device, e.Op, e.Address, ErrUnsupportedAddress)
}

func (e *Error) Unwrap() error {
	return ErrUnsupportedAddress
}

// Unsupported panics with an *Error for the given device access.
func Unsupported(device, op string, address uint16) {
	panic(&Error{Device: device, Op: op, Address: address})
}
