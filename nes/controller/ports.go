package controller

import (
	"log/slog"

	"github.com/valerio/go-nesio/nes/addr"
)

// Ports holds the two controller ports. Port one is always plugged, port
// two stays empty until PlugSecond is called; reads of JOY2 with nothing
// plugged are rejected as an unsupported address.
type Ports struct {
	One *Controller
	Two *Controller
}

func NewPorts() *Ports {
	return &Ports{One: New(PortOne)}
}

// PlugSecond connects a controller to port two and returns it.
func (p *Ports) PlugSecond() *Controller {
	if p.Two == nil {
		p.Two = New(PortTwo)
		// keep the strobe line in sync with port one
		p.Two.Write(addr.JOY1, p.One.latch)
		slog.Debug("controller plugged", "port", PortTwo)
	}
	return p.Two
}

// Controller returns the controller on port, nil if nothing is plugged.
func (p *Ports) Controller(port Port) *Controller {
	if port == PortTwo {
		return p.Two
	}
	return p.One
}

// Write strobes every plugged controller. JOY2 writes belong to the APU
// frame counter and are not claimed here.
func (p *Ports) Write(address uint16, value byte) {
	if address != addr.JOY1 {
		addr.Unsupported("ports", "write", address)
	}
	p.One.Write(address, value)
	if p.Two != nil {
		p.Two.Write(address, value)
	}
}

func (p *Ports) Read(address uint16) byte {
	switch address {
	case addr.JOY1:
		return p.One.Read(address)
	case addr.JOY2:
		if p.Two == nil {
			addr.Unsupported("ports", "read", address)
		}
		return p.Two.Read(address)
	default:
		addr.Unsupported("ports", "read", address)
		return 0
	}
}
