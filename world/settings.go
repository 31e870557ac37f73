package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/oomph-ac/pmove/settings"
)

// FromSettings builds a world from the brushes of a configuration. Brushes naming the same entity share
// a single Entity, numbered from 1<<16 upwards so they never collide with player IDs.
func FromSettings(brushes []settings.Brush) (*World, error) {
	w := New()
	entities := make(map[string]*Entity)
	for i, b := range brushes {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("brush %d: %w", i, err)
		}
		contents, _ := b.ContentMask()
		flags, _ := b.SurfaceMask()

		brush := NewBrush(mgl32.Vec3{b.Mins[0], b.Mins[1], b.Mins[2]}, mgl32.Vec3{b.Maxs[0], b.Maxs[1], b.Maxs[2]}, contents)
		if b.Surface != "" || flags != 0 {
			brush.Surface = &movement.Surface{Name: b.Surface, Flags: flags}
		}
		if b.Entity != "" {
			ent, ok := entities[b.Entity]
			if !ok {
				ent = &Entity{ID: int32(1<<16 + len(entities)), Name: b.Entity}
				entities[b.Entity] = ent
			}
			brush.Entity = ent
		}
		w.brushes = append(w.brushes, brush)
	}
	return w, nil
}
