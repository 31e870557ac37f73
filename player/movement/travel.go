package movement

import (
	"github.com/oomph-ac/pmove/game"
)

// walkMove accelerates toward the wish velocity on the ground or in the air, then slides.
func (ctx *movementContext) walkMove() {
	wishVel := ctx.wishVelocity()
	wishDir, wishSpeed := game.Normalize(wishVel)

	maxSpeed := ctx.phys.MaxSpeed
	if ctx.m.State.Has(FlagDucked) {
		maxSpeed = ctx.phys.DuckSpeed
	}
	if wishSpeed > maxSpeed {
		wishSpeed = maxSpeed
	}

	if ctx.m.State.Has(FlagOnGround) {
		ctx.velocity = Accelerate(ctx.velocity, wishDir, wishSpeed, ctx.phys.Accelerate, ctx.dt)
		// Grounded entities never carry upward velocity into the slide.
		if ctx.velocity[2] > 0 {
			ctx.velocity[2] = 0
		}
		if ctx.velocity[0] == 0 && ctx.velocity[1] == 0 {
			ctx.debugf("walkMove: standing still")
			return
		}
	} else {
		ctx.velocity = AirAccelerate(ctx.velocity, wishDir, wishSpeed, ctx.phys.AirAccelerate, ctx.dt)
	}
	ctx.debugf("walkMove: wishDir=%v wishSpeed=%v vel=%v", wishDir, wishSpeed, ctx.velocity)
	ctx.stepSlideMove()
}
