package movement

import (
	"github.com/oomph-ac/pmove/game"
)

// Options define simulator behaviour.
type Options struct {
	Physics Physics

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Simulator resolves movement with a fixed set of options. A Simulator holds no per-call state and
// may be shared between goroutines.
type Simulator struct {
	Options Options
}

// NewSimulator returns a Simulator using opts.
func NewSimulator(opts Options) *Simulator {
	return &Simulator{Options: opts}
}

var defaultSimulator = NewSimulator(Options{Physics: DefaultPhysics()})

// Resolve resolves m with the default physics.
func Resolve(m *Move) {
	defaultSimulator.Resolve(m)
}

// Resolve advances the entity described by m by one frame, mutating m in place. Frames with a
// non-positive duration leave m untouched.
func (s *Simulator) Resolve(m *Move) {
	dt := float32(m.Cmd.Msec) * 0.001
	if dt > game.MaxFrameTime {
		dt = game.MaxFrameTime
	}
	if dt <= 0 {
		return
	}

	ctx := newCtx(m, &s.Options)
	defer putCtx(ctx)

	ctx.dt = dt
	ctx.origin = m.State.Origin
	ctx.velocity = m.State.Velocity

	m.selectBox()
	ctx.decodeAngles()
	m.resetTouch()

	ctx.debugf("resolve: type=%v origin=%v vel=%v flags=%08b dt=%v", m.State.Type, ctx.origin, ctx.velocity, m.State.Flags, dt)
	switch m.State.Type {
	case TypeSpectator:
		ctx.spectatorMove()
	case TypeDead, TypeGib:
		m.ViewAngles[2] = game.DeadViewRoll
		ctx.ballistic()
	case TypeNormal:
		ctx.ballistic()
	case TypeFreeze:
	}

	ctx.clampVelocity()
	m.State.Origin = ctx.origin
	m.State.Velocity = ctx.velocity
}

// ballistic is the gravity-driven movement shared by normal, dead and gibbed entities.
func (ctx *movementContext) ballistic() {
	ctx.categorize()
	ctx.tickTimer()

	s := &ctx.m.State
	switch {
	case s.Has(FlagTimeTeleport):
		// Teleport pause: the entity stays exactly where it was put.
		ctx.releaseInput()
		return
	case s.Has(FlagTimeWaterJump):
		ctx.gravity()
		if ctx.velocity[2] < 0 {
			s.Flags &^= FlagTimeMask
			s.Time = 0
		}
		ctx.releaseInput()
		ctx.stepSlideMove()
		return
	}

	ctx.friction()
	ctx.gravity()
	ctx.checkJump()
	ctx.checkDuck()

	if ctx.m.WaterLevel >= 2 {
		ctx.waterMove()
	} else {
		ctx.walkMove()
	}
}

// releaseInput applies the jump and duck edges while the entity has no control over its movement.
func (ctx *movementContext) releaseInput() {
	if ctx.m.Cmd.UpMove <= 0 {
		ctx.m.State.set(FlagJumpHeld, false)
	}
	ctx.checkDuck()
}
