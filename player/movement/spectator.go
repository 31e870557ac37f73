package movement

import (
	"github.com/oomph-ac/pmove/game"
)

// spectatorMove flies freely with the input velocity. No collision queries are made.
func (ctx *movementContext) spectatorMove() {
	vel := ctx.wishVelocity()
	vel[2] = float32(ctx.m.Cmd.UpMove)
	if speed := game.Length(vel); speed > ctx.phys.MaxSpeed {
		vel = game.Scale(vel, ctx.phys.MaxSpeed/speed)
	}
	ctx.velocity = vel
	ctx.origin = game.VectorMA(ctx.origin, ctx.dt, vel)
	ctx.debugf("spectatorMove: origin=%v vel=%v", ctx.origin, ctx.velocity)
}
