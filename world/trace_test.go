package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/oomph-ac/pmove/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	boxMins = game.PlayerMins
	boxMaxs = game.StandingMaxs
)

func floor() Brush {
	return NewBrush(mgl32.Vec3{-1000, -1000, -16}, mgl32.Vec3{1000, 1000, 0}, game.ContentsSolid)
}

func TestTraceHitsFloor(t *testing.T) {
	w := New(floor())
	tr := w.Trace(mgl32.Vec3{0, 0, 100}, boxMins, boxMaxs, mgl32.Vec3{0, 0, 0}, nil, game.MaskPlayerSolid)

	assert.False(t, tr.StartSolid)
	assert.False(t, tr.AllSolid)
	assert.InDelta(t, (76-DistEpsilon)/100, tr.Fraction, 1e-6)
	assert.InDelta(t, 24+DistEpsilon, tr.EndPos[2], 1e-4)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, tr.Plane.Normal)
	assert.Zero(t, tr.Plane.Dist)
	assert.Equal(t, game.ContentsSolid, tr.Contents)
	assert.Equal(t, movement.Entity(Worldspawn), tr.Entity)
}

func TestTraceMiss(t *testing.T) {
	w := New(floor())
	end := mgl32.Vec3{500, 20, 100}
	tr := w.Trace(mgl32.Vec3{0, 0, 100}, boxMins, boxMaxs, end, nil, game.MaskPlayerSolid)

	assert.Equal(t, float32(1), tr.Fraction)
	assert.Equal(t, end, tr.EndPos)
	assert.Nil(t, tr.Entity)
}

func TestTraceTouchingIsOutside(t *testing.T) {
	w := New(floor())
	start, end := mgl32.Vec3{0, 0, 24}, mgl32.Vec3{300, 0, 24}

	tr := w.Trace(start, boxMins, boxMaxs, end, nil, game.MaskPlayerSolid)
	assert.Equal(t, float32(1), tr.Fraction)
	assert.False(t, tr.StartSolid)

	tr = w.Trace(start, boxMins, boxMaxs, start, nil, game.MaskPlayerSolid)
	assert.False(t, tr.AllSolid)

	// Moving into the face from a touching start is blocked immediately.
	tr = w.Trace(start, boxMins, boxMaxs, mgl32.Vec3{0, 0, 20}, nil, game.MaskPlayerSolid)
	assert.Zero(t, tr.Fraction)
	assert.Equal(t, start, tr.EndPos)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, tr.Plane.Normal)
}

func TestTraceStartSolid(t *testing.T) {
	w := New(floor())

	tr := w.Trace(mgl32.Vec3{0, 0, 10}, boxMins, boxMaxs, mgl32.Vec3{0, 0, 50}, nil, game.MaskPlayerSolid)
	assert.True(t, tr.StartSolid)
	assert.False(t, tr.AllSolid)
	assert.Equal(t, float32(1), tr.Fraction)

	start := mgl32.Vec3{0, 0, 10}
	tr = w.Trace(start, boxMins, boxMaxs, mgl32.Vec3{10, 0, 10}, nil, game.MaskPlayerSolid)
	assert.True(t, tr.AllSolid)
	assert.True(t, tr.StartSolid)
	assert.Zero(t, tr.Fraction)
	assert.Equal(t, start, tr.EndPos)
}

func TestTraceNearestBrushWins(t *testing.T) {
	near := NewBrush(mgl32.Vec3{100, -50, 0}, mgl32.Vec3{120, 50, 100}, game.ContentsSolid)
	near.Entity = &Entity{ID: 5, Name: "crate"}
	far := NewBrush(mgl32.Vec3{200, -50, 0}, mgl32.Vec3{220, 50, 100}, game.ContentsSolid)
	w := New(floor(), far, near)

	tr := w.Trace(mgl32.Vec3{0, 0, 24}, boxMins, boxMaxs, mgl32.Vec3{400, 0, 24}, nil, game.MaskPlayerSolid)
	assert.InDelta(t, 84-DistEpsilon, tr.EndPos[0], 1e-3)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, tr.Plane.Normal)
	assert.Equal(t, float32(-100), tr.Plane.Dist)
	assert.Equal(t, movement.Entity(near.Entity), tr.Entity)
}

func TestTraceFilters(t *testing.T) {
	door := &Entity{ID: 9, Name: "door"}
	wall := NewBrush(mgl32.Vec3{100, -50, 0}, mgl32.Vec3{120, 50, 100}, game.ContentsSolid)
	wall.Entity = door
	water := NewBrush(mgl32.Vec3{50, -50, 0}, mgl32.Vec3{80, 50, 100}, game.ContentsWater)
	w := New(wall, water)

	start, end := mgl32.Vec3{0, 0, 50}, mgl32.Vec3{300, 0, 50}

	tr := w.Trace(start, mgl32.Vec3{}, mgl32.Vec3{}, end, door, game.MaskPlayerSolid)
	assert.Equal(t, float32(1), tr.Fraction, "brushes owned by the passed entity are ignored")

	tr = w.Trace(start, mgl32.Vec3{}, mgl32.Vec3{}, end, nil, game.MaskPlayerSolid)
	assert.InDelta(t, 100-DistEpsilon, tr.EndPos[0], 1e-3)

	tr = w.Trace(start, mgl32.Vec3{}, mgl32.Vec3{}, end, nil, game.MaskWater)
	assert.InDelta(t, 50-DistEpsilon, tr.EndPos[0], 1e-3)
	assert.Equal(t, game.ContentsWater, tr.Contents)
	assert.Equal(t, movement.Entity(Worldspawn), tr.Entity)
}

func TestPointContents(t *testing.T) {
	w := New(
		floor(),
		NewBrush(mgl32.Vec3{-100, -100, 0}, mgl32.Vec3{100, 100, 50}, game.ContentsWater),
		NewBrush(mgl32.Vec3{-10, -10, 10}, mgl32.Vec3{10, 10, 20}, game.ContentsSlime),
	)

	assert.Equal(t, game.ContentsSolid, w.PointContents(mgl32.Vec3{0, 0, -8}))
	assert.Equal(t, game.ContentsWater, w.PointContents(mgl32.Vec3{50, 0, 25}))
	assert.Equal(t, game.ContentsWater|game.ContentsSlime, w.PointContents(mgl32.Vec3{0, 0, 15}))
	assert.Zero(t, w.PointContents(mgl32.Vec3{0, 0, 75}))
	assert.Equal(t, w.PointContents(mgl32.Vec3{0, 0, 15}), w.Contents()(mgl32.Vec3{0, 0, 15}))
}

func TestTracer(t *testing.T) {
	w := New(floor())
	tracer := w.Tracer(nil, game.MaskPlayerSolid)

	start, end := mgl32.Vec3{0, 0, 100}, mgl32.Vec3{0, 0, 0}
	assert.Equal(t, w.Trace(start, boxMins, boxMaxs, end, nil, game.MaskPlayerSolid), tracer(start, boxMins, boxMaxs, end))

	w.Add(NewBrush(mgl32.Vec3{-1000, -1000, 40}, mgl32.Vec3{1000, 1000, 60}, game.ContentsSolid))
	assert.Len(t, w.Brushes(), 2)
	tr := tracer(start, boxMins, boxMaxs, end)
	assert.InDelta(t, 84+DistEpsilon, tr.EndPos[2], 1e-3, "brushes added later are visible to existing tracers")
}

func TestFromSettings(t *testing.T) {
	w, err := FromSettings([]settings.Brush{
		{Mins: []float32{-100, -100, -16}, Maxs: []float32{100, 100, 0}, Contents: []string{"solid"}, Surface: "floor", SurfaceFlags: []string{"slick"}},
		{Mins: []float32{0, 0, 0}, Maxs: []float32{10, 10, 10}, Contents: []string{"solid"}, Entity: "door"},
		{Mins: []float32{20, 0, 0}, Maxs: []float32{30, 10, 10}, Contents: []string{"solid", "window"}, Entity: "door"},
		{Mins: []float32{40, 0, 0}, Maxs: []float32{50, 10, 10}, Contents: []string{"water"}, Entity: "pool"},
	})
	require.NoError(t, err)

	brushes := w.Brushes()
	require.Len(t, brushes, 4)
	assert.Nil(t, brushes[0].Entity)
	require.NotNil(t, brushes[0].Surface)
	assert.Equal(t, "floor", brushes[0].Surface.Name)
	assert.Equal(t, game.SurfaceSlick, brushes[0].Surface.Flags)

	assert.Same(t, brushes[1].Entity, brushes[2].Entity)
	assert.Equal(t, int32(1<<16), brushes[1].Entity.ID)
	assert.Equal(t, int32(1<<16+1), brushes[3].Entity.ID)
	assert.Equal(t, game.ContentsSolid|game.ContentsWindow, brushes[2].Contents)
	assert.Nil(t, brushes[1].Surface)

	_, err = FromSettings([]settings.Brush{{Mins: []float32{0, 0, 0}, Maxs: []float32{10, 10, 10}, Contents: []string{"lava-ish"}}})
	assert.ErrorContains(t, err, "brush 0")

	_, err = FromSettings([]settings.Brush{{Mins: []float32{0, 0}, Maxs: []float32{10, 10, 10}}})
	assert.Error(t, err)
}

func TestWorldIDs(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "worldspawn#0", Worldspawn.String())
	assert.Equal(t, int32(0), Worldspawn.EntityID())
}
