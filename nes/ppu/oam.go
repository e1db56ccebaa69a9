package ppu

import (
	"github.com/valerio/go-nesio/nes/addr"
)

// OAMSize is the size of the primary object attribute memory (64 sprites,
// 4 bytes each).
const OAMSize = 256

// Sprite is a decoded OAM entry.
type Sprite struct {
	Y         uint8
	TileIndex uint8
	Attr      uint8
	X         uint8
	OAMIndex  int
}

// OAM holds object attribute memory and the OAMADDR cursor.
// Both OAMDATA writes and DMA copies start at the cursor and wrap.
type OAM struct {
	data   [OAMSize]byte
	cursor uint8
}

func NewOAM() *OAM {
	return &OAM{}
}

// CopyDMA receives an OAM DMA: next is called once per byte with the
// destination offset, starting at OAMADDR. OAMADDR is left unchanged,
// having wrapped all the way around.
func (o *OAM) CopyDMA(next func(dest uint8) byte) {
	dest := o.cursor
	for rangeIdx := 0; rangeIdx < OAMSize; rangeIdx++ {
		o.data[dest] = next(dest)
		dest++
	}
}

func (o *OAM) Write(address uint16, value byte) {
	switch address {
	case addr.OAMADDR:
		o.cursor = value
	case addr.OAMDATA:
		o.data[o.cursor] = value
		o.cursor++
	default:
		addr.Unsupported("oam", "write", address)
	}
}

// Read returns the byte at OAMADDR without moving the cursor.
func (o *OAM) Read(address uint16) byte {
	if address != addr.OAMDATA {
		addr.Unsupported("oam", "read", address)
	}
	return o.data[o.cursor]
}

// Cursor returns the current OAMADDR value.
func (o *OAM) Cursor() uint8 { return o.cursor }

// Bytes returns a copy of the whole table.
func (o *OAM) Bytes() [OAMSize]byte { return o.data }

// Sprite decodes the entry at index (0-63).
func (o *OAM) Sprite(index int) Sprite {
	base := (index & 0x3F) * 4
	return Sprite{
		Y:         o.data[base],
		TileIndex: o.data[base+1],
		Attr:      o.data[base+2],
		X:         o.data[base+3],
		OAMIndex:  index & 0x3F,
	}
}
