package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
)

// Entity is an opaque reference to an object that a trace may hit. A nil Entity means nothing was hit.
type Entity interface {
	EntityID() int32
}

// Plane is a collision plane in normal-distance form.
type Plane struct {
	Normal mgl32.Vec3
	Dist   float32
}

// Surface describes the material of a hit face.
type Surface struct {
	Name  string
	Flags game.SurfaceFlags
	Value int32
}

// TraceResult is the outcome of sweeping a box through the world.
type TraceResult struct {
	// AllSolid is set when the entire move was inside solid.
	AllSolid bool
	// StartSolid is set when the box overlapped solid at the start position.
	StartSolid bool
	// Fraction is the portion of the move completed, in [0, 1].
	Fraction float32
	EndPos   mgl32.Vec3
	Plane    Plane
	Surface  *Surface
	Contents game.Contents
	Entity   Entity
}

// TraceFunc sweeps the box described by mins and maxs from start to end.
type TraceFunc func(start, mins, maxs, end mgl32.Vec3) TraceResult

// PointContentsFunc returns the contents at a point.
type PointContentsFunc func(point mgl32.Vec3) game.Contents
