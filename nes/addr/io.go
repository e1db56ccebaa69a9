package addr

// ppu registers, mirrored every 8 bytes through 0x3FFF
const (
	// PPU control register.
	PPUCTRL uint16 = 0x2000
	// PPU mask register.
	PPUMASK uint16 = 0x2001
	// PPU status register.
	PPUSTATUS uint16 = 0x2002
	// OAM address register, the destination cursor for OAMDATA and OAM DMA.
	OAMADDR uint16 = 0x2003
	// OAM data register.
	OAMDATA uint16 = 0x2004
	// Scroll register.
	PPUSCROLL uint16 = 0x2005
	// VRAM address register.
	PPUADDR uint16 = 0x2006
	// VRAM data register.
	PPUDATA uint16 = 0x2007

	PPURegistersStart uint16 = 0x2000
	PPURegistersEnd   uint16 = 0x3FFF
)

// APU and I/O registers
// Reference: https://www.nesdev.org/wiki/2A03
const (
	APURegistersStart uint16 = 0x4000
	APURegistersEnd   uint16 = 0x401F

	// DMC channel
	DMCFreq    uint16 = 0x4010 // IRQ enable, loop, rate
	DMCRaw     uint16 = 0x4011 // Direct load
	DMCStart   uint16 = 0x4012 // Sample address
	DMCLength  uint16 = 0x4013 // Sample length
	OAMDMA     uint16 = 0x4014 // Sprite DMA trigger, value is the source page
	SNDCHN     uint16 = 0x4015 // Sound channel enable and status
	JOY1       uint16 = 0x4016 // Controller strobe (write), port one data (read)
	JOY2       uint16 = 0x4017 // Port two data (read), APU frame counter (write)
	FrameCount uint16 = JOY2
)

// Internal RAM and cartridge space
const (
	RAMStart  uint16 = 0x0000
	RAMEnd    uint16 = 0x1FFF
	RAMSize          = 0x0800
	CartStart uint16 = 0x4020
)
