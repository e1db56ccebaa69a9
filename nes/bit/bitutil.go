package bit

// Combine joins a high and low byte into a 16 bit address.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// IsSet reports whether the bit at index is 1.
func IsSet(index, value uint8) bool {
	return (value>>index)&1 == 1
}

// FromBool returns 1 for true and 0 for false.
func FromBool(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Changed reports whether the bit at index differs between prev and next.
func Changed(index, prev, next uint8) bool {
	return IsSet(index, prev^next)
}
