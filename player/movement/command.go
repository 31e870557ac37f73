package movement

import "github.com/oomph-ac/pmove/game"

// Command is the input of a single simulated frame. It is consumed by exactly one call to Resolve.
type Command struct {
	// Msec is the duration of the frame in milliseconds. Callers cap it at game.MaxCommandMsec.
	Msec    uint8
	Buttons game.Buttons
	// Angles holds the quantized pitch, yaw and roll of the view.
	Angles [3]int16

	// ForwardMove, SideMove and UpMove are movement intents bounded to ±game.MaxMoveIntent.
	ForwardMove int16
	SideMove    int16
	UpMove      int16

	Impulse    uint8
	LightLevel uint8
}
