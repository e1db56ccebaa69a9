package memory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-nesio/nes/addr"
	"github.com/valerio/go-nesio/nes/bit"
)

type memRegion uint8

const (
	regionRAM memRegion = iota
	regionPPU
	regionIO
	regionCart
)

const cartSize = 0x10000 - int(addr.CartStart)

// Device is a memory mapped register block.
type Device interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// WriteOnlyDevice is a register block with no readable registers, like the
// OAM DMA trigger.
type WriteOnlyDevice interface {
	Write(address uint16, value byte)
}

// Bus is the CPU address space. It owns internal RAM and a flat cartridge
// area, and routes register accesses to the attached devices. Devices
// left nil make their registers behave as plain storage.
type Bus struct {
	OAM   Device
	DMA   WriteOnlyDevice
	Ports Device

	ram       [addr.RAMSize]byte
	ppuLatch  byte // last value written to any PPU register
	io        [0x20]byte
	cart      []byte
	regionMap [256]memRegion
}

func New() *Bus {
	b := &Bus{
		cart: make([]byte, cartSize),
	}
	initRegionMap(b)
	return b
}

func initRegionMap(b *Bus) {
	// RAM and mirrors: 0x0000-0x1FFF
	for i := 0x00; i <= 0x1F; i++ {
		b.regionMap[i] = regionRAM
	}
	// PPU registers and mirrors: 0x2000-0x3FFF
	for i := 0x20; i <= 0x3F; i++ {
		b.regionMap[i] = regionPPU
	}
	// APU and IO: 0x4000-0x401F, the rest of the page is cartridge space
	b.regionMap[0x40] = regionIO
	// Cartridge: 0x4100-0xFFFF
	for i := 0x41; i <= 0xFF; i++ {
		b.regionMap[i] = regionCart
	}
}

// LoadPRG copies data into cartridge space starting at address.
func (b *Bus) LoadPRG(address uint16, data []byte) error {
	if address < addr.CartStart {
		return fmt.Errorf("load at 0x%04X: below cartridge space", address)
	}
	start := int(address - addr.CartStart)
	if start+len(data) > len(b.cart) {
		return fmt.Errorf("load at 0x%04X: %d bytes overflow cartridge space", address, len(data))
	}
	copy(b.cart[start:], data)
	slog.Debug("Loaded PRG data", "addr", fmt.Sprintf("0x%04X", address), "bytes", len(data))
	return nil
}

func (b *Bus) Read(address uint16) byte {
	switch b.regionMap[address>>8] {
	case regionRAM:
		return b.ram[address%addr.RAMSize]
	case regionPPU:
		reg := addr.PPURegistersStart + address%8
		if reg == addr.OAMDATA && b.OAM != nil {
			return b.OAM.Read(reg)
		}
		return b.ppuLatch
	case regionIO:
		if address > addr.APURegistersEnd {
			return b.cart[address-addr.CartStart]
		}
		if (address == addr.JOY1 || address == addr.JOY2) && b.Ports != nil {
			return b.Ports.Read(address)
		}
		return b.io[address-addr.APURegistersStart]
	case regionCart:
		return b.cart[address-addr.CartStart]
	default:
		panic(fmt.Sprintf("Attempted read at unmapped address: 0x%X", address))
	}
}

// DMARead is Read as seen by the DMA unit. A register no device claims,
// like JOY2 with port two unplugged, reads as open bus (the high address
// byte) instead of failing, so every page can be copied.
func (b *Bus) DMARead(address uint16) (value byte) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, addr.ErrUnsupportedAddress) {
			panic(r)
		}
		value = bit.High(address)
	}()
	return b.Read(address)
}

func (b *Bus) Write(address uint16, value byte) {
	switch b.regionMap[address>>8] {
	case regionRAM:
		b.ram[address%addr.RAMSize] = value
	case regionPPU:
		reg := addr.PPURegistersStart + address%8
		b.ppuLatch = value
		if (reg == addr.OAMADDR || reg == addr.OAMDATA) && b.OAM != nil {
			b.OAM.Write(reg, value)
		}
	case regionIO:
		if address > addr.APURegistersEnd {
			b.cart[address-addr.CartStart] = value
			return
		}
		b.io[address-addr.APURegistersStart] = value
		if address == addr.OAMDMA && b.DMA != nil {
			b.DMA.Write(address, value)
			return
		}
		if address == addr.JOY1 && b.Ports != nil {
			b.Ports.Write(address, value)
			return
		}
	case regionCart:
		b.cart[address-addr.CartStart] = value
	default:
		panic(fmt.Sprintf("Attempted write at unmapped address: 0x%X", address))
	}
}
