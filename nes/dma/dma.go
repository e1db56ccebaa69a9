package dma

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/valerio/go-nesio/nes/addr"
	"github.com/valerio/go-nesio/nes/bit"
)

const (
	// PageSize is the number of bytes moved by a single OAM DMA.
	PageSize = 256
	// OAMTransferCycles is the CPU stall of an OAM DMA started on an even
	// cycle: 256 read/write pairs plus the halt cycle. One more alignment
	// cycle is added when the transfer starts on an odd cycle.
	OAMTransferCycles = 513
	// DMCFetchCycles is the usual stall for one DMC sample fetch.
	DMCFetchCycles = 4
)

// MemoryReader is the CPU address space as seen by the DMA unit.
type MemoryReader interface {
	Read(address uint16) byte
}

// ReaderFunc adapts a plain read function to MemoryReader.
type ReaderFunc func(address uint16) byte

func (f ReaderFunc) Read(address uint16) byte { return f(address) }

// ObjectTable is the PPU side of an OAM DMA. CopyDMA must call next once
// per destination byte, PageSize times; the table picks the destination
// (usually starting at OAMADDR) and passes it as dest.
type ObjectTable interface {
	CopyDMA(next func(dest uint8) byte)
}

// stall buffers the cycles owed to the CPU between two drains.
// dmcCycles can be fed from another goroutine, everything else belongs to
// the emulation loop.
type stall struct {
	dmcCycles  atomic.Uint64
	oamPending bool
}

func (s *stall) drain(parity uint64) int {
	cycles := int(s.dmcCycles.Swap(0))
	if s.oamPending {
		cycles += OAMTransferCycles + int(parity&1)
		s.oamPending = false
	}
	return cycles
}

// Engine emulates the 2A03 DMA unit: OAM page copies and the cycle cost of
// both OAM and DMC transfers.
type Engine struct {
	mem    MemoryReader
	oam    ObjectTable
	stall  stall
	logger *slog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for transfer tracing.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// New creates a DMA engine reading from mem and copying into oam.
// The engine does not own either of them.
func New(mem MemoryReader, oam ObjectTable, opts ...Option) *Engine {
	e := &Engine{
		mem:    mem,
		oam:    oam,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TriggerOAM copies the 256 bytes of page (page<<8 .. page<<8|0xFF) into
// the object table, offset 0 first, and schedules the CPU stall.
// Unmapped pages are the memory's problem: whatever it returns is copied.
// Reads past the end of the page wrap back to its start.
func (e *Engine) TriggerOAM(page byte) {
	var offset uint8
	e.oam.CopyDMA(func(dest uint8) byte {
		value := e.mem.Read(bit.Combine(page, offset))
		offset++
		return value
	})
	e.stall.oamPending = true
	e.logger.Debug("OAM DMA", "page", fmt.Sprintf("0x%02X", page))
}

// AddDMCCycles charges cycles stolen by a DMC sample fetch.
// Safe to call from a goroutine other than the emulation loop.
func (e *Engine) AddDMCCycles(cycles int) {
	if cycles <= 0 {
		return
	}
	e.stall.dmcCycles.Add(uint64(cycles))
}

// Drain returns every cycle the CPU owes since the last drain and clears
// the pending state. parity is the CPU cycle counter, only its low bit is
// used. A second drain with nothing new in between returns 0.
func (e *Engine) Drain(parity uint64) int {
	return e.stall.drain(parity)
}

// Pending reports the buffered DMC cycles and whether an OAM transfer is
// waiting to be charged, without draining.
func (e *Engine) Pending() (dmcCycles int, oam bool) {
	return int(e.stall.dmcCycles.Load()), e.stall.oamPending
}

// Write handles CPU writes routed to the DMA unit. Only OAMDMA is claimed.
func (e *Engine) Write(address uint16, value byte) {
	if address != addr.OAMDMA {
		addr.Unsupported("dma", "write", address)
	}
	e.TriggerOAM(value)
}
