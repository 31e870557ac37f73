package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// Move bundles the input, output and collision capabilities of a single Resolve call. It is built
// fresh by the caller for every frame and is never persisted.
type Move struct {
	// State is read at the start of Resolve and written back at the end.
	State State
	Cmd   Command

	// Trace sweeps a box through the world. If nil, the entity is always grounded and moves
	// without collision.
	Trace TraceFunc
	// PointContents returns the contents at a point. If nil, the entity is never in liquid.
	PointContents PointContentsFunc

	ViewAngles mgl32.Vec3
	ViewHeight float32
	// Mins and Maxs are overwritten by Resolve and need not be set by the caller.
	Mins, Maxs mgl32.Vec3

	GroundEntity Entity
	WaterType    game.Contents
	WaterLevel   int

	touch    [game.MaxTouch]Entity
	numTouch int
}

// Touched returns the objects touched during the call, in the order they were first touched. The
// returned slice aliases the Move and is only valid until the next call to Resolve.
func (m *Move) Touched() []Entity {
	return m.touch[:m.numTouch]
}

// addTouch records e as touched. Duplicate entities and entities past the capacity are dropped.
func (m *Move) addTouch(e Entity) {
	if e == nil || m.numTouch >= game.MaxTouch {
		return
	}
	for i := 0; i < m.numTouch; i++ {
		if m.touch[i] == e {
			return
		}
	}
	m.touch[m.numTouch] = e
	m.numTouch++
}

func (m *Move) resetTouch() {
	for i := 0; i < m.numTouch; i++ {
		m.touch[i] = nil
	}
	m.numTouch = 0
}

// selectBox sets the bounding box and view height from the ducked flag.
func (m *Move) selectBox() {
	m.Mins = game.PlayerMins
	if m.State.Has(FlagDucked) {
		m.Maxs = game.DuckedMaxs
		m.ViewHeight = game.DuckedViewHeight
		return
	}
	m.Maxs = game.StandingMaxs
	m.ViewHeight = game.StandingViewHeight
}
