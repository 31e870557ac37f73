package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
)

// DistEpsilon is how far a trace stops short of the surface it hits.
const DistEpsilon = float32(1.0 / 32.0)

// Trace sweeps the box described by mins and maxs from start to end, against every brush whose
// contents intersect mask and that is not owned by pass. A box that exactly touches a face is
// considered to be outside of the brush.
func (w *World) Trace(start, mins, maxs, end mgl32.Vec3, pass movement.Entity, mask game.Contents) movement.TraceResult {
	res := movement.TraceResult{Fraction: 1, EndPos: end}
	sweep := cube.Box(
		start[0]+mins[0], start[1]+mins[1], start[2]+mins[2],
		start[0]+maxs[0], start[1]+maxs[1], start[2]+maxs[2],
	).Extend(end.Sub(start)).Grow(1)

	w.RLock()
	defer w.RUnlock()

	for i := range w.brushes {
		b := &w.brushes[i]
		if !b.Contents.Has(mask) {
			continue
		}
		owner := b.owner()
		if pass != nil && movement.Entity(owner) == pass {
			continue
		}
		if !b.Box.IntersectsWith(sweep) {
			continue
		}

		c := clipBrush(b.Box, mins, maxs, start, end)
		switch {
		case c.allSolid:
			res.AllSolid, res.StartSolid = true, true
			res.Fraction, res.EndPos = 0, start
			res.Contents, res.Surface, res.Entity = b.Contents, b.Surface, owner
			return res
		case c.startSolid:
			res.StartSolid = true
			res.Contents, res.Surface, res.Entity = b.Contents, b.Surface, owner
		case c.hit && c.fraction < res.Fraction:
			res.Fraction = c.fraction
			res.Plane = c.plane
			res.Contents, res.Surface, res.Entity = b.Contents, b.Surface, owner
		}
	}

	if res.Fraction < 1 {
		res.EndPos = game.VectorMA(start, res.Fraction, end.Sub(start))
	}
	return res
}

type clip struct {
	hit        bool
	startSolid bool
	allSolid   bool
	fraction   float32
	plane      movement.Plane
}

// clipBrush clips the move of a box from start to end against a single brush. The brush is grown by
// the extents of the box so the move can be treated as the move of a point.
func clipBrush(box cube.BBox, mins, maxs, start, end mgl32.Vec3) clip {
	lo, hi := box.Min().Sub(maxs), box.Max().Sub(mins)

	var (
		c                  clip
		entered            bool
		enterFrac          = float32(-1)
		leaveFrac          = float32(1)
		startOut, getOut   bool
		enterAxis, enterSn int
	)
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]int{-1, 1} {
			var d1, d2 float32
			if sign > 0 {
				d1, d2 = start[axis]-hi[axis], end[axis]-hi[axis]
			} else {
				d1, d2 = lo[axis]-start[axis], lo[axis]-end[axis]
			}

			if d2 > 0 {
				getOut = true
			}
			if d1 >= 0 {
				startOut = true
			}
			// Outside this face and not moving into it: the move can never touch the brush.
			if d1 >= 0 && d2 >= d1 {
				return clip{}
			}
			// Behind this face for the whole move.
			if d1 < 0 && d2 <= 0 {
				continue
			}

			if d1 > d2 {
				if f := (d1 - DistEpsilon) / (d1 - d2); !entered || f > enterFrac {
					enterFrac, enterAxis, enterSn, entered = f, axis, sign, true
				}
			} else if f := (d1 + DistEpsilon) / (d1 - d2); f < leaveFrac {
				leaveFrac = f
			}
		}
	}

	if !startOut {
		c.startSolid = true
		c.allSolid = !getOut
		return c
	}
	if !entered || enterFrac >= leaveFrac {
		return c
	}
	if enterFrac < 0 {
		enterFrac = 0
	}
	c.hit, c.fraction = true, enterFrac
	c.plane.Normal[enterAxis] = float32(enterSn)
	if enterSn > 0 {
		c.plane.Dist = box.Max()[enterAxis]
	} else {
		c.plane.Dist = -box.Min()[enterAxis]
	}
	return c
}
