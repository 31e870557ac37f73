package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// movementContext holds the working state of one Resolve call. It is owned by that call alone, so
// independent entities can be resolved concurrently.
type movementContext struct {
	m     *Move
	phys  Physics
	debug func(format string, args ...any)

	origin   mgl32.Vec3
	velocity mgl32.Vec3
	dt       float32

	forward, right, up mgl32.Vec3
}

func (ctx *movementContext) debugf(format string, args ...any) {
	if ctx.debug != nil {
		ctx.debug(format, args...)
	}
}

// decodeAngles sets the view angles from the command plus the persisted correction, then computes
// the basis vectors.
func (ctx *movementContext) decodeAngles() {
	m := ctx.m
	for i := 0; i < 3; i++ {
		m.ViewAngles[i] = game.ShortToAngle(m.Cmd.Angles[i] + m.State.DeltaAngles[i])
	}
	ctx.forward, ctx.right, ctx.up = game.AngleVectors(m.ViewAngles)
}

func (ctx *movementContext) categorize() {
	m := ctx.m
	c := Categorize(ctx.origin, m.Mins, m.Maxs, m.ViewHeight, m.Trace, m.PointContents)
	m.WaterLevel, m.WaterType = c.WaterLevel, c.WaterType
	m.GroundEntity = c.GroundEntity
	m.State.set(FlagOnGround, c.OnGround)
	m.addTouch(c.GroundEntity)
	ctx.debugf("categorize: onGround=%v ground=%v waterLevel=%d waterType=%d", c.OnGround, c.GroundEntity, c.WaterLevel, c.WaterType)
}

// tickTimer counts the movement timer down and clears the timed flags once it runs out.
func (ctx *movementContext) tickTimer() {
	s := &ctx.m.State
	if s.Time == 0 {
		return
	}
	units := ctx.m.Cmd.Msec / game.TimerUnitMsec
	if units == 0 {
		units = 1
	}
	if units >= s.Time {
		s.Flags &^= FlagTimeMask
		s.Time = 0
		ctx.debugf("tickTimer: timer expired")
		return
	}
	s.Time -= units
}

func (ctx *movementContext) friction() {
	ctx.velocity = ctx.phys.ApplyFriction(ctx.velocity, ctx.m.State.Has(FlagOnGround), ctx.m.WaterLevel, ctx.dt)
}

func (ctx *movementContext) gravity() {
	if ctx.m.State.Has(FlagOnGround) {
		ctx.velocity[2] = 0
		return
	}
	ctx.velocity[2] -= float32(ctx.m.State.Gravity * ctx.dt)
}

// checkJump fires a jump on the rising edge of upward input while grounded.
func (ctx *movementContext) checkJump() {
	s := &ctx.m.State
	if s.Has(FlagOnGround) && ctx.m.Cmd.UpMove > 0 && !s.Has(FlagJumpHeld) && !s.Has(FlagTimeLand) {
		ctx.velocity[2] = ctx.phys.JumpSpeed
		s.set(FlagOnGround, false)
		s.set(FlagJumpHeld, true)
		ctx.m.GroundEntity = nil
		ctx.debugf("checkJump: jumped with vel=%v", ctx.velocity)
	}
	if ctx.m.Cmd.UpMove <= 0 {
		s.set(FlagJumpHeld, false)
	}
}

// checkDuck updates the ducked flag from the sign of the upward input and reselects the bounding
// box. An entity only stands up if the standing box fits where it is.
func (ctx *movementContext) checkDuck() {
	m := ctx.m
	switch {
	case m.Cmd.UpMove < 0:
		m.State.set(FlagDucked, true)
	case m.State.Has(FlagDucked):
		if m.Trace != nil {
			if tr := m.Trace(ctx.origin, game.PlayerMins, game.StandingMaxs, ctx.origin); tr.AllSolid {
				ctx.debugf("checkDuck: no room to stand up")
				break
			}
		}
		m.State.set(FlagDucked, false)
	}
	m.selectBox()
}

func (ctx *movementContext) clampVelocity() {
	ctx.velocity = ClampVelocity(ctx.velocity, ctx.phys.MaxVelocity)
}

// stepSlideMove moves the working origin with the working velocity through the world.
func (ctx *movementContext) stepSlideMove() {
	m := ctx.m
	res := SlideMove(SlideInput{
		Origin:   ctx.origin,
		Velocity: ctx.velocity,
		Mins:     m.Mins,
		Maxs:     m.Maxs,
		Dt:       ctx.dt,
		OnGround: m.State.Has(FlagOnGround),
		StepSize: ctx.phys.StepSize,
		Trace:    m.Trace,
		Touch:    m.addTouch,
	})
	ctx.origin, ctx.velocity = res.Origin, res.Velocity
	ctx.debugf("stepSlideMove: origin=%v vel=%v planes=%d stepped=%v stuck=%v", res.Origin, res.Velocity, res.NumPlanes, res.Stepped, res.Stuck)
}

// wishVelocity builds the horizontal desired velocity from the forward and side intents.
func (ctx *movementContext) wishVelocity() mgl32.Vec3 {
	fmove, smove := float32(ctx.m.Cmd.ForwardMove), float32(ctx.m.Cmd.SideMove)
	return mgl32.Vec3{
		float32(ctx.forward[0]*fmove) + float32(ctx.right[0]*smove),
		float32(ctx.forward[1]*fmove) + float32(ctx.right[1]*smove),
		0,
	}
}
