package nes

import (
	"log/slog"

	"github.com/valerio/go-nesio/nes/controller"
	"github.com/valerio/go-nesio/nes/dma"
	"github.com/valerio/go-nesio/nes/memory"
	"github.com/valerio/go-nesio/nes/ppu"
)

// Console wires the CPU bus, the DMA unit, OAM and the controller ports,
// and keeps the processor side of the cycle accounting.
type Console struct {
	bus   *memory.Bus
	dma   *dma.Engine
	oam   *ppu.OAM
	ports *controller.Ports

	cycles  uint64 // CPU cycles elapsed, stalls included
	stalled uint64 // cycles lost to DMA
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger handed to the DMA unit.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func New(opts ...Option) *Console {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Console{
		bus:   memory.New(),
		oam:   ppu.NewOAM(),
		ports: controller.NewPorts(),
	}
	c.dma = dma.New(dma.ReaderFunc(c.bus.DMARead), c.oam, dma.WithLogger(o.logger))

	c.bus.OAM = c.oam
	c.bus.DMA = c.dma
	c.bus.Ports = c.ports
	return c
}

// Tick advances the CPU clock by the cycles of one instruction, then
// charges any pending DMA stall. The DMA parity is taken from the clock
// after the instruction, which is when the halt would start.
// Returns the stalled cycles.
func (c *Console) Tick(cycles int) int {
	if cycles > 0 {
		c.cycles += uint64(cycles)
	}
	stall := c.dma.Drain(c.cycles)
	c.cycles += uint64(stall)
	c.stalled += uint64(stall)
	return stall
}

// FetchDMCSample reads one sample byte for the DMC channel and charges the
// fetch to the CPU.
func (c *Console) FetchDMCSample(address uint16) byte {
	value := c.bus.Read(address)
	c.dma.AddDMCCycles(dma.DMCFetchCycles)
	return value
}

func (c *Console) Cycles() uint64 { return c.cycles }

// Stalled returns the total cycles lost to DMA so far.
func (c *Console) Stalled() uint64 { return c.stalled }

func (c *Console) Bus() *memory.Bus { return c.bus }

func (c *Console) DMA() *dma.Engine { return c.dma }

func (c *Console) OAM() *ppu.OAM { return c.oam }

func (c *Console) Ports() *controller.Ports { return c.ports }
