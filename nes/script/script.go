// Package script runs line-oriented register access scripts against a
// console. It is the headless way to drive the DMA unit and the
// controller ports from the command line and from tests.
//
//	# comments start with '#'
//	plug2                  connect a controller to port two
//	poke 0200 01 02 03     store bytes from an address on
//	write 4014 02          CPU write
//	read 4016              CPU read, prints the value
//	expect 01              fail unless the last read returned 01
//	press 1 start          hold a button on controller 1 or 2
//	release 1 start
//	fetch c000             DMC sample fetch through the bus
//	dmc 4                  add DMC stall cycles
//	tick 4                 run an instruction of n cycles, charge stalls
//	drain                  charge pending stalls without advancing
//
// Addresses and bytes are hex, cycle counts decimal.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/valerio/go-nesio/nes"
	"github.com/valerio/go-nesio/nes/addr"
	"github.com/valerio/go-nesio/nes/controller"
)

// ErrExpectation is returned when an expect command does not match.
var ErrExpectation = errors.New("expectation failed")

// Error locates a failure in the script.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var buttonsByName = map[string]controller.Button{
	"a":      controller.ButtonA,
	"b":      controller.ButtonB,
	"select": controller.ButtonSelect,
	"start":  controller.ButtonStart,
	"up":     controller.ButtonUp,
	"down":   controller.ButtonDown,
	"left":   controller.ButtonLeft,
	"right":  controller.ButtonRight,
}

type runner struct {
	console  *nes.Console
	out      io.Writer
	lastRead byte
	hasRead  bool
}

// Run executes the script read from r against console, writing one line
// to w for every read, fetch, tick and drain.
func Run(ctx context.Context, console *nes.Console, r io.Reader, w io.Writer) error {
	run := &runner{console: console, out: w}
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}

		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(strings.ToLower(text))
		if len(fields) == 0 {
			continue
		}

		slog.Debug("script", "line", line, "command", fields[0])
		if err := run.exec(fields[0], fields[1:]); err != nil {
			return &Error{Line: line, Err: err}
		}
	}
	return scanner.Err()
}

// exec runs one command. Register contract violations raised by the
// devices come back as errors.
func (r *runner) exec(cmd string, args []string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var addrErr *addr.Error
			if e, ok := rec.(error); ok && errors.As(e, &addrErr) {
				err = addrErr
				return
			}
			panic(rec)
		}
	}()

	switch cmd {
	case "write":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		value, err := parseByte(args[1])
		if err != nil {
			return err
		}
		r.console.Bus().Write(address, value)

	case "poke":
		if len(args) < 2 {
			return fmt.Errorf("poke: want an address and at least one byte")
		}
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		for i, arg := range args[1:] {
			value, err := parseByte(arg)
			if err != nil {
				return err
			}
			r.console.Bus().Write(address+uint16(i), value)
		}

	case "read", "fetch":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		if cmd == "read" {
			r.lastRead = r.console.Bus().Read(address)
		} else {
			r.lastRead = r.console.FetchDMCSample(address)
		}
		r.hasRead = true
		fmt.Fprintf(r.out, "%s %04x = %02x\n", cmd, address, r.lastRead)

	case "expect":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		want, err := parseByte(args[0])
		if err != nil {
			return err
		}
		if !r.hasRead {
			return fmt.Errorf("%w: nothing read yet", ErrExpectation)
		}
		if r.lastRead != want {
			return fmt.Errorf("%w: got %02x, want %02x", ErrExpectation, r.lastRead, want)
		}

	case "press", "release":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		c, err := r.controller(args[0])
		if err != nil {
			return err
		}
		button, ok := buttonsByName[args[1]]
		if !ok {
			return fmt.Errorf("unknown button %q", args[1])
		}
		if cmd == "press" {
			c.Press(button)
		} else {
			c.Release(button)
		}

	case "plug2":
		r.console.Ports().PlugSecond()

	case "dmc":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		cycles, err := parseCycles(args[0])
		if err != nil {
			return err
		}
		r.console.DMA().AddDMCCycles(cycles)

	case "tick", "drain":
		cycles := 0
		if cmd == "tick" {
			if err := wantArgs(cmd, args, 1); err != nil {
				return err
			}
			if cycles, err = parseCycles(args[0]); err != nil {
				return err
			}
		}
		stall := r.console.Tick(cycles)
		fmt.Fprintf(r.out, "%s stall=%d cycles=%d\n", cmd, stall, r.console.Cycles())

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *runner) controller(arg string) (*controller.Controller, error) {
	switch arg {
	case "1":
		return r.console.Ports().One, nil
	case "2":
		if c := r.console.Ports().Two; c != nil {
			return c, nil
		}
		return nil, errors.New("controller 2 is not plugged")
	default:
		return nil, fmt.Errorf("unknown controller %q", arg)
	}
}

func wantArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: want %d arguments, got %d", cmd, n, len(args))
	}
	return nil
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("bad byte %q: %w", s, err)
	}
	return byte(v), nil
}

func parseCycles(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("bad cycle count %q", s)
	}
	return v, nil
}
