package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// Category is the medium and ground status of a position.
type Category struct {
	// WaterLevel is 0 when dry, 1 when the feet are submerged, 2 at the waist and 3 when the eyes are under.
	WaterLevel int
	WaterType  game.Contents

	OnGround     bool
	GroundEntity Entity
	// GroundPlane is the plane stood on. It is only meaningful when OnGround is set by a trace.
	GroundPlane Plane
}

// Categorize probes the world around origin to find the water level and whether the box stands on
// walkable ground. Without a trace capability the position always counts as grounded.
func Categorize(origin, mins, maxs mgl32.Vec3, viewHeight float32, trace TraceFunc, contents PointContentsFunc) Category {
	var c Category
	if contents != nil {
		point := mgl32.Vec3{origin[0], origin[1], origin[2] + mins[2] + 1}
		if cont := contents(point); cont.Has(game.MaskWater) {
			c.WaterType, c.WaterLevel = cont, 1

			point[2] = origin[2]
			if contents(point).Has(game.MaskWater) {
				c.WaterLevel = 2

				point[2] = origin[2] + viewHeight
				if contents(point).Has(game.MaskWater) {
					c.WaterLevel = 3
				}
			}
		}
	}

	if trace == nil {
		c.OnGround = true
		return c
	}
	point := mgl32.Vec3{origin[0], origin[1], origin[2] - game.GroundProbeDistance}
	tr := trace(origin, mins, maxs, point)
	if tr.Fraction == 1 || tr.Plane.Normal[2] < game.MinStepNormal {
		return c
	}
	c.OnGround, c.GroundEntity, c.GroundPlane = true, tr.Entity, tr.Plane
	return c
}
