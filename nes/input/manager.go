package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-nesio/nes/controller"
	"github.com/valerio/go-nesio/nes/input/action"
	"github.com/valerio/go-nesio/nes/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager routes input actions: controller actions go straight to the
// controller buttons, everything else to registered callbacks.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	ports         *controller.Ports
	now           func() time.Time
}

func NewManager(ports *controller.Ports) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		ports:         ports,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if act.IsController() {
		m.setButton(act, evt)
		return
	}

	// Debounce front-end Press and Release events, buttons never are
	if evt == event.Press || evt == event.Release {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if last, ok := m.lastTriggered[act][evt]; ok && now.Sub(last) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}

func (m *Manager) setButton(act action.Action, evt event.Type) {
	if m.ports == nil {
		return
	}
	port, button := ControllerButton(act)
	c := m.ports.Controller(port)
	if c == nil {
		slog.Debug("Input for unplugged controller", "port", port, "button", button)
		return
	}

	switch evt {
	case event.Press, event.Hold:
		c.Press(button)
	case event.Release:
		c.Release(button)
	}
}

// ControllerButton maps a controller action to its port and button.
func ControllerButton(act action.Action) (controller.Port, controller.Button) {
	if act >= action.P2ButtonA && act <= action.P2DPadRight {
		return controller.PortTwo, controller.Button(act - action.P2ButtonA)
	}
	return controller.PortOne, controller.Button(act - action.P1ButtonA)
}
