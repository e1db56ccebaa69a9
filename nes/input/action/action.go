package action

// Action represents input actions that can be performed in the front-end
type Action int

const (
	// Player one controller
	P1ButtonA Action = iota
	P1ButtonB
	P1ButtonSelect
	P1ButtonStart
	P1DPadUp
	P1DPadDown
	P1DPadLeft
	P1DPadRight

	// Player two controller
	P2ButtonA
	P2ButtonB
	P2ButtonSelect
	P2ButtonStart
	P2DPadUp
	P2DPadDown
	P2DPadLeft
	P2DPadRight

	// Front-end features
	EmulatorOAMDMA
	EmulatorDMCFetch
	EmulatorPauseToggle
	EmulatorQuit
)

// IsController reports whether the action maps to a controller button.
func (a Action) IsController() bool {
	return a >= P1ButtonA && a <= P2DPadRight
}
