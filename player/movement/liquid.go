package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// WaterWishVelocity returns the desired swimming velocity for the given intents and basis vectors.
// Without any input the entity sinks at game.WaterSinkSpeed.
func WaterWishVelocity(cmd Command, forward, right mgl32.Vec3) mgl32.Vec3 {
	fmove, smove := float32(cmd.ForwardMove), float32(cmd.SideMove)
	wishVel := mgl32.Vec3{
		float32(forward[0]*fmove) + float32(right[0]*smove),
		float32(forward[1]*fmove) + float32(right[1]*smove),
		float32(cmd.UpMove),
	}
	if cmd.ForwardMove == 0 && cmd.SideMove == 0 && cmd.UpMove == 0 {
		wishVel[2] -= game.WaterSinkSpeed
	}
	return wishVel
}

// waterMove swims toward the wish velocity, including vertical input, then slides.
func (ctx *movementContext) waterMove() {
	wishDir, wishSpeed := game.Normalize(WaterWishVelocity(ctx.m.Cmd, ctx.forward, ctx.right))
	if wishSpeed > ctx.phys.WaterSpeed {
		wishSpeed = ctx.phys.WaterSpeed
	}
	ctx.velocity = Accelerate(ctx.velocity, wishDir, wishSpeed, ctx.phys.WaterAccelerate, ctx.dt)
	ctx.debugf("waterMove: wishDir=%v wishSpeed=%v vel=%v", wishDir, wishSpeed, ctx.velocity)
	ctx.stepSlideMove()
}
