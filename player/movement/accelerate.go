package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// ApplyFriction returns vel slowed by ground and water friction over dt seconds.
func (p Physics) ApplyFriction(vel mgl32.Vec3, grounded bool, waterLevel int, dt float32) mgl32.Vec3 {
	speed := game.Length(vel)
	if speed < 1 {
		vel[0], vel[1] = 0, 0
		return vel
	}

	var drop float32
	if grounded {
		control := speed
		if control < p.StopSpeed {
			control = p.StopSpeed
		}
		drop += float32(float32(control*p.Friction) * dt)
	}
	if waterLevel > 0 {
		drop += float32(float32(float32(speed*p.WaterFriction)*float32(waterLevel)) * dt)
	}

	newSpeed := speed - drop
	if newSpeed < 0 {
		newSpeed = 0
	}
	newSpeed /= speed
	return game.Scale(vel, newSpeed)
}

// Accelerate returns vel accelerated toward wishDir*wishSpeed. Nothing is added if the speed along
// wishDir already meets wishSpeed.
func Accelerate(vel, wishDir mgl32.Vec3, wishSpeed, accel, dt float32) mgl32.Vec3 {
	addSpeed := wishSpeed - game.Dot(vel, wishDir)
	if addSpeed <= 0 {
		return vel
	}
	accelSpeed := float32(float32(accel*dt) * wishSpeed)
	if accelSpeed > addSpeed {
		accelSpeed = addSpeed
	}
	return game.VectorMA(vel, accelSpeed, wishDir)
}

// AirAccelerate is Accelerate with the add-speed limit computed from a wish speed capped at
// game.AirWishCap. The added speed is still scaled by the uncapped wishSpeed.
func AirAccelerate(vel, wishDir mgl32.Vec3, wishSpeed, accel, dt float32) mgl32.Vec3 {
	wishSpd := wishSpeed
	if wishSpd > game.AirWishCap {
		wishSpd = game.AirWishCap
	}
	addSpeed := wishSpd - game.Dot(vel, wishDir)
	if addSpeed <= 0 {
		return vel
	}
	accelSpeed := float32(float32(accel*wishSpeed) * dt)
	if accelSpeed > addSpeed {
		accelSpeed = addSpeed
	}
	return game.VectorMA(vel, accelSpeed, wishDir)
}

// ClipVelocity returns in with its component into the plane of normal removed, scaled by
// overbounce. Resulting components within game.StopEpsilon of zero are snapped to zero.
func ClipVelocity(in, normal mgl32.Vec3, overbounce float32) mgl32.Vec3 {
	backoff := float32(game.Dot(in, normal) * overbounce)
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		out[i] = in[i] - float32(normal[i]*backoff)
		if out[i] > -game.StopEpsilon && out[i] < game.StopEpsilon {
			out[i] = 0
		}
	}
	return out
}

// ClampVelocity scales vel down proportionally if its length exceeds max.
func ClampVelocity(vel mgl32.Vec3, max float32) mgl32.Vec3 {
	speed := game.Length(vel)
	if speed > max {
		return game.Scale(vel, max/speed)
	}
	return vel
}
