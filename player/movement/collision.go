package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// SlideInput is the input of SlideMove.
type SlideInput struct {
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3
	Mins     mgl32.Vec3
	Maxs     mgl32.Vec3
	Dt       float32

	// OnGround enables the stair-step fallback.
	OnGround bool
	StepSize float32

	// Trace may be nil, in which case the box moves without collision.
	Trace TraceFunc
	// Touch, if not nil, is called with every entity hit while sliding.
	Touch func(Entity)
}

// SlideResult is the outcome of SlideMove.
type SlideResult struct {
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3

	// Stuck is set if a trace reported the box to be entirely inside solid.
	Stuck bool
	// Stepped is set if the stair-step path was adopted.
	Stepped bool
	// Planes holds the normals of the planes clipped against, in order.
	Planes    [game.MaxClipPlanes]mgl32.Vec3
	NumPlanes int
}

// SlideMove moves a box through the world for Dt seconds, sliding along every surface it hits. If the
// box started on the ground and the last surface hit was too steep to stand on, the move is retried
// from StepSize units higher, which lets the box climb stairs without losing speed.
func SlideMove(in SlideInput) SlideResult {
	if in.Trace == nil {
		return SlideResult{Origin: game.VectorMA(in.Origin, in.Dt, in.Velocity), Velocity: in.Velocity}
	}

	res := slide(in)
	if res.Stuck || !in.OnGround || res.NumPlanes == 0 {
		return res
	}
	// Only the most recently hit plane decides whether a step is attempted.
	if res.Planes[res.NumPlanes-1][2] >= game.MinStepNormal {
		return res
	}
	if end, ok := tryStep(in, res.Origin); ok {
		res.Origin, res.Velocity, res.Stepped = end, in.Velocity, true
	}
	return res
}

// slide performs up to game.MaxBumps traces, clipping the velocity against each plane hit.
func slide(in SlideInput) SlideResult {
	res := SlideResult{Origin: in.Origin, Velocity: in.Velocity}
	timeLeft := in.Dt

	for bump := 0; bump < game.MaxBumps; bump++ {
		end := game.VectorMA(res.Origin, timeLeft, res.Velocity)
		tr := in.Trace(res.Origin, in.Mins, in.Maxs, end)
		if tr.AllSolid {
			res.Velocity[2] = 0
			res.Stuck = true
			return res
		}
		if tr.Fraction > 0 {
			res.Origin = tr.EndPos
		}
		if tr.Fraction == 1 {
			break
		}
		if in.Touch != nil && tr.Entity != nil {
			in.Touch(tr.Entity)
		}

		timeLeft -= float32(timeLeft * tr.Fraction)

		normal := tr.Plane.Normal
		if res.NumPlanes < game.MaxClipPlanes {
			res.Planes[res.NumPlanes] = normal
			res.NumPlanes++
		}
		res.Velocity = ClipVelocity(res.Velocity, normal, game.Overbounce)
		res.Velocity = clipCrease(res.Velocity, normal, res.Planes[:res.NumPlanes])

		// Never bounce back against the direction the move started in.
		if game.Dot(res.Velocity, in.Velocity) <= 0 {
			res.Velocity = mgl32.Vec3{}
			break
		}
	}
	return res
}

// clipCrease keeps vel from re-entering a plane hit earlier in the same move. If it does, vel is
// projected onto the crease formed by that plane and the one just hit. If the crease direction still
// enters a third plane, the box is wedged in a corner and vel is zeroed.
func clipCrease(vel, hit mgl32.Vec3, planes []mgl32.Vec3) mgl32.Vec3 {
	for i, p := range planes {
		if p == hit || game.Dot(vel, p) >= 0 {
			continue
		}
		dir, l := game.Normalize(game.Cross(hit, p))
		if l == 0 {
			continue
		}
		vel = game.Scale(dir, game.Dot(dir, vel))
		for j, q := range planes {
			if j == i || q == hit {
				continue
			}
			if game.Dot(vel, q) < 0 {
				return mgl32.Vec3{}
			}
		}
		return vel
	}
	return vel
}

// tryStep attempts to move the box from its original origin lifted by the step size, then back down
// again. The stepped end position is returned if the path is clear and carries the box further
// horizontally than the plain slide did.
func tryStep(in SlideInput, slideEnd mgl32.Vec3) (mgl32.Vec3, bool) {
	start := in.Origin
	up := mgl32.Vec3{start[0], start[1], start[2] + in.StepSize}
	tr := in.Trace(start, in.Mins, in.Maxs, up)
	if tr.AllSolid {
		return mgl32.Vec3{}, false
	}
	lifted := tr.EndPos

	ahead := mgl32.Vec3{
		lifted[0] + float32(in.Dt*in.Velocity[0]),
		lifted[1] + float32(in.Dt*in.Velocity[1]),
		lifted[2],
	}
	tr = in.Trace(lifted, in.Mins, in.Maxs, ahead)
	if tr.AllSolid || tr.StartSolid || tr.Fraction <= 0 {
		return mgl32.Vec3{}, false
	}
	lifted = tr.EndPos

	down := mgl32.Vec3{lifted[0], lifted[1], lifted[2] - in.StepSize}
	tr = in.Trace(lifted, in.Mins, in.Maxs, down)
	if tr.AllSolid {
		return mgl32.Vec3{}, false
	}
	if tr.Fraction < 1 && tr.Plane.Normal[2] < game.MinStepNormal {
		return mgl32.Vec3{}, false
	}

	stepDist := game.HorizontalLength(tr.EndPos.Sub(start))
	slideDist := game.HorizontalLength(slideEnd.Sub(start))
	if stepDist <= slideDist {
		return mgl32.Vec3{}, false
	}
	return tr.EndPos, true
}
