package input

import "github.com/valerio/go-nesio/nes/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
var DefaultKeyMap = map[string]action.Action{
	// Player one
	"z":     action.P1ButtonA,
	"x":     action.P1ButtonB,
	"Enter": action.P1ButtonStart,
	"Tab":   action.P1ButtonSelect,
	"Up":    action.P1DPadUp,
	"Down":  action.P1DPadDown,
	"Left":  action.P1DPadLeft,
	"Right": action.P1DPadRight,

	// Player two
	"k": action.P2ButtonA,
	"l": action.P2ButtonB,
	"o": action.P2ButtonStart,
	"p": action.P2ButtonSelect,
	"i": action.P2DPadUp,
	"j": action.P2DPadLeft,
	"m": action.P2DPadDown,
	";": action.P2DPadRight,

	// Front-end controls
	"d":      action.EmulatorOAMDMA,
	"s":      action.EmulatorDMCFetch,
	"Space":  action.EmulatorPauseToggle,
	"Escape": action.EmulatorQuit,
	"q":      action.EmulatorQuit,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
