package movement

import (
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/oerror"
)

// Physics holds the movement tunables. Client and server must use identical values for prediction
// to agree with the authoritative result.
type Physics struct {
	MaxSpeed        float32
	DuckSpeed       float32
	Accelerate      float32
	AirAccelerate   float32
	WaterAccelerate float32
	Friction        float32
	WaterFriction   float32
	WaterSpeed      float32
	StopSpeed       float32
	JumpSpeed       float32
	StepSize        float32
	MaxVelocity     float32
}

// DefaultPhysics returns the stock movement tunables.
func DefaultPhysics() Physics {
	return Physics{
		MaxSpeed:        game.DefaultMaxSpeed,
		DuckSpeed:       game.DefaultDuckSpeed,
		Accelerate:      game.DefaultAccelerate,
		AirAccelerate:   game.DefaultAirAccelerate,
		WaterAccelerate: game.DefaultWaterAccelerate,
		Friction:        game.DefaultFriction,
		WaterFriction:   game.DefaultWaterFriction,
		WaterSpeed:      game.DefaultWaterSpeed,
		StopSpeed:       game.DefaultStopSpeed,
		JumpSpeed:       game.DefaultJumpSpeed,
		StepSize:        game.DefaultStepSize,
		MaxVelocity:     game.DefaultMaxVelocity,
	}
}

// Validate returns an error if any of the tunables would make the simulation misbehave.
func (p Physics) Validate() error {
	fields := []struct {
		name string
		v    float32
	}{
		{"MaxSpeed", p.MaxSpeed},
		{"DuckSpeed", p.DuckSpeed},
		{"Accelerate", p.Accelerate},
		{"AirAccelerate", p.AirAccelerate},
		{"WaterAccelerate", p.WaterAccelerate},
		{"Friction", p.Friction},
		{"WaterFriction", p.WaterFriction},
		{"WaterSpeed", p.WaterSpeed},
		{"StopSpeed", p.StopSpeed},
		{"JumpSpeed", p.JumpSpeed},
		{"StepSize", p.StepSize},
	}
	for _, f := range fields {
		if f.v < 0 {
			return oerror.New("physics: %s must not be negative (got %v)", f.name, f.v)
		}
	}
	if p.MaxVelocity <= 0 {
		return oerror.New("physics: MaxVelocity must be positive (got %v)", p.MaxVelocity)
	}
	return nil
}
