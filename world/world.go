package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/assert"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/sasha-s/go-deadlock"
)

var currentWorldId uint64

// Brush is an axis-aligned box of world geometry.
type Brush struct {
	Box      cube.BBox
	Contents game.Contents
	// Entity owns the brush. Brushes without an owner belong to Worldspawn.
	Entity  *Entity
	Surface *movement.Surface
}

// NewBrush returns a brush spanning min to max. It panics if the brush has no volume.
func NewBrush(min, max mgl32.Vec3, contents game.Contents) Brush {
	assert.Below(min, max, "brush")
	return Brush{Box: cube.Box(min[0], min[1], min[2], max[0], max[1], max[2]), Contents: contents}
}

func (b *Brush) owner() *Entity {
	if b.Entity == nil {
		return Worldspawn
	}
	return b.Entity
}

// World is a collection of brushes that boxes can be traced through. It is safe for concurrent use.
type World struct {
	id      uint64
	brushes []Brush

	deadlock.RWMutex
}

// New returns a world holding the brushes passed.
func New(brushes ...Brush) *World {
	currentWorldId++
	w := &World{id: currentWorldId}
	w.brushes = append(w.brushes, brushes...)
	return w
}

// ID returns the unique identifier of the world.
func (w *World) ID() uint64 {
	return w.id
}

// Add adds a brush to the world.
func (w *World) Add(b Brush) {
	w.Lock()
	defer w.Unlock()
	w.brushes = append(w.brushes, b)
}

// Brushes returns a copy of every brush in the world.
func (w *World) Brushes() []Brush {
	w.RLock()
	defer w.RUnlock()
	return append([]Brush(nil), w.brushes...)
}

// PointContents returns the combined contents of every brush strictly containing point.
func (w *World) PointContents(point mgl32.Vec3) game.Contents {
	w.RLock()
	defer w.RUnlock()

	var c game.Contents
	for i := range w.brushes {
		if w.brushes[i].Box.Vec3Within(point) {
			c |= w.brushes[i].Contents
		}
	}
	return c
}

// Tracer returns a trace capability that ignores brushes owned by pass and only collides with
// brushes whose contents intersect mask.
func (w *World) Tracer(pass movement.Entity, mask game.Contents) movement.TraceFunc {
	return func(start, mins, maxs, end mgl32.Vec3) movement.TraceResult {
		return w.Trace(start, mins, maxs, end, pass, mask)
	}
}

// Contents returns the point-contents capability of the world.
func (w *World) Contents() movement.PointContentsFunc {
	return w.PointContents
}
