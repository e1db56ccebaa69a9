package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-nesio/nes"
	"github.com/valerio/go-nesio/nes/addr"
	"github.com/valerio/go-nesio/nes/controller"
	"github.com/valerio/go-nesio/nes/input"
	"github.com/valerio/go-nesio/nes/input/action"
	"github.com/valerio/go-nesio/nes/input/event"
	"github.com/valerio/go-nesio/nes/timing"
)

// Key expiry timeout - slightly longer than typical key repeat interval.
// Terminals have no key release events, a key is released when it stops
// repeating.
const keyTimeout = 100 * time.Millisecond

const (
	// shadow OAM page uploaded by the OAM DMA action
	dmaPage = 0x02
	// sample address used by the DMC fetch action
	dmcSampleAddr = 0xC000
)

// Backend is a terminal front-end that strobes and reads the controller
// ports once per frame, the way a game's NMI handler does, and shows the
// bits shifted out along with the DMA stall counters.
type Backend struct {
	screen  tcell.Screen
	console *nes.Console
	input   *input.Manager
	limiter timing.Limiter
	now     func() time.Time

	running bool
	paused  bool
	frame   int

	keyStates  map[action.Action]time.Time
	activeKeys map[action.Action]bool

	reads     [2][controller.ButtonCount]byte
	lastStall int
}

// New creates a terminal backend for console drawing on screen.
func New(console *nes.Console, screen tcell.Screen, limiter timing.Limiter) *Backend {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	return &Backend{
		screen:     screen,
		console:    console,
		input:      input.NewManager(console.Ports()),
		limiter:    limiter,
		now:        time.Now,
		keyStates:  make(map[action.Action]time.Time),
		activeKeys: make(map[action.Action]bool),
	}
}

// Init initializes the screen and the front-end actions.
func (t *Backend) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.input.On(action.EmulatorQuit, event.Press, func() { t.running = false })
	t.input.On(action.EmulatorPauseToggle, event.Press, func() { t.paused = !t.paused })
	t.input.On(action.EmulatorOAMDMA, event.Press, func() {
		t.console.Bus().Write(addr.OAMDMA, dmaPage)
	})
	t.input.On(action.EmulatorDMCFetch, event.Press, func() {
		t.console.FetchDMCSample(dmcSampleAddr)
	})

	t.running = true
	slog.Info("Terminal backend initialized")
	return nil
}

// Run updates frames until quit is requested or ctx is done.
func (t *Backend) Run(ctx context.Context) error {
	defer t.Cleanup()
	for t.running {
		if ctx.Err() != nil {
			return nil
		}
		t.Update()
		t.limiter.WaitForNextFrame()
	}
	return nil
}

// Update processes pending input, emulates one frame and renders it.
func (t *Backend) Update() {
	for t.screen.HasPendingEvent() {
		t.handleEvent(t.screen.PollEvent())
	}
	t.expireKeys()

	if !t.paused {
		t.emulateFrame()
	}
	t.draw()
}

func (t *Backend) Cleanup() {
	t.screen.Fini()
}

// Running reports whether quit has not been requested yet.
func (t *Backend) Running() bool { return t.running }

func (t *Backend) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act, ok := input.GetDefaultMapping(keyName(ev))
		if !ok {
			return
		}
		if act.IsController() {
			t.keyStates[act] = t.now()
			return
		}
		t.input.Trigger(act, event.Press)
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// expireKeys turns the key repeat stream into press/hold/release events.
func (t *Backend) expireKeys() {
	now := t.now()
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}
		currentlyActive[act] = true
		if t.activeKeys[act] {
			t.input.Trigger(act, event.Hold)
		} else {
			t.input.Trigger(act, event.Press)
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			t.input.Trigger(act, event.Release)
		}
	}
	t.activeKeys = currentlyActive
}

func (t *Backend) emulateFrame() {
	bus := t.console.Bus()
	bus.Write(addr.JOY1, 0x01)
	bus.Write(addr.JOY1, 0x00)

	for i := 0; i < controller.ButtonCount; i++ {
		t.reads[0][i] = bus.Read(addr.JOY1)
	}
	if t.console.Ports().Two != nil {
		for i := 0; i < controller.ButtonCount; i++ {
			t.reads[1][i] = bus.Read(addr.JOY2)
		}
	}

	t.lastStall = t.console.Tick(timing.CyclesPerFrame)
	t.frame++
}

func (t *Backend) draw() {
	t.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	normal := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	pressed := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	t.drawText(0, 0, "nesio - controller shift register", title)

	y := 2
	for port := 0; port < 2; port++ {
		label := fmt.Sprintf("Port %d:", port+1)
		t.drawText(0, y, label, normal)
		if port == 1 && t.console.Ports().Two == nil {
			t.drawText(len(label)+1, y, "(unplugged)", dim)
			y++
			continue
		}

		x := len(label) + 1
		for i := 0; i < controller.ButtonCount; i++ {
			cell := fmt.Sprintf("%s:%d", controller.Button(i), t.reads[port][i])
			style := normal
			if t.reads[port][i] == 1 {
				style = pressed
			}
			t.drawText(x, y, cell, style)
			x += len(cell) + 1
		}
		y++
	}

	y++
	t.drawText(0, y, fmt.Sprintf("Frame: %d  Cycles: %d", t.frame, t.console.Cycles()), normal)
	y++
	t.drawText(0, y, fmt.Sprintf("Stalled: %d  Last stall: %d", t.console.Stalled(), t.lastStall), normal)
	if t.paused {
		t.drawText(0, y+1, "PAUSED", title)
	}
	t.drawText(0, y+3, "z/x/Tab/Enter/arrows: pad  d: OAM DMA  s: DMC fetch  Space: pause  q: quit", dim)

	t.screen.Show()
}

func (t *Backend) drawText(x, y int, text string, style tcell.Style) {
	width, height := t.screen.Size()
	if y >= height {
		return
	}
	for _, ch := range text {
		if x >= width {
			return
		}
		t.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// keyName converts a tcell key event to the names used by input.DefaultKeyMap.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space"
		}
		return strings.ToLower(string(ev.Rune()))
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyEscape:
		return "Escape"
	default:
		return ""
	}
}
