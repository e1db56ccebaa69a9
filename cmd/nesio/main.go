package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/valerio/go-nesio/nes"
	"github.com/valerio/go-nesio/nes/backend/terminal"
	"github.com/valerio/go-nesio/nes/script"
	"github.com/valerio/go-nesio/nes/timing"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running nesio", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "nesio"
	app.Description = "NES sprite DMA and controller port emulation"
	app.Usage = "nesio [options] <command>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level (debug, info, warn, error)",
			Value:  "info",
			EnvVar: "NESIO_LOG_LEVEL",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run a register access script, '-' reads from stdin",
			ArgsUsage: "<script>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "second-controller",
					Usage: "Plug a controller into port two before running",
				},
			},
			Action: runScript,
		},
		{
			Name:  "pad",
			Usage: "Show live controller reads in the terminal",
			Flags: []cli.Flag{
				cli.BoolTFlag{
					Name:  "fps-limit",
					Usage: "Pace frames at the NTSC rate",
				},
				cli.BoolFlag{
					Name:  "second-controller",
					Usage: "Plug a controller into port two",
				},
			},
			Action: runPad,
		},
	}
	return app
}

func setupLogging(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q: %v", c.String("log-level"), err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

func runScript(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "run")
		return errors.New("no script path provided")
	}

	path := c.Args().First()
	var src io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	console := nes.New(nes.WithLogger(slog.Default().With("component", "dma")))
	if c.Bool("second-controller") {
		console.Ports().PlugSecond()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := script.Run(ctx, console, src, c.App.Writer); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("Script completed", "cycles", console.Cycles(), "stalled", console.Stalled())
	return nil
}

func runPad(c *cli.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	// the screen owns the terminal, keep logs out of it
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	console := nes.New(nes.WithLogger(slog.Default()))
	if c.Bool("second-controller") {
		console.Ports().PlugSecond()
	}

	limiter := timing.NewNoOpLimiter()
	if c.BoolT("fps-limit") {
		ticker := timing.NewTickerLimiter()
		defer ticker.Stop()
		limiter = ticker
	}

	backend := terminal.New(console, screen, limiter)
	if err := backend.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return backend.Run(ctx)
}
