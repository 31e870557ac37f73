package player

import (
	"github.com/oomph-ac/pmove/assert"
	"github.com/oomph-ac/pmove/player/movement"
)

// Snapshot is the movement state of a player after a frame.
type Snapshot struct {
	Frame    uint64
	Checksum uint64
	State    movement.State
}

// History is a fixed-size circular buffer of snapshots, ordered by frame.
type History struct {
	buffer   []Snapshot
	capacity int
	head     int // Points to the next write position
	size     int
}

// NewHistory creates a new history with the specified capacity. A capacity below one is raised to one.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buffer:   make([]Snapshot, capacity),
		capacity: capacity,
	}
}

// Add inserts a snapshot, overwriting the oldest one if the history is full. Snapshots must be added
// in increasing frame order.
func (h *History) Add(s Snapshot) {
	if latest, ok := h.Latest(); ok {
		assert.IsTrue(s.Frame > latest.Frame, "history: frame %d added after frame %d", s.Frame, latest.Frame)
	}
	h.buffer[h.head] = s
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// Get retrieves a snapshot by frame, returns the snapshot and true if found
func (h *History) Get(frame uint64) (Snapshot, bool) {
	// Search backwards from most recent
	for i := 0; i < h.size; i++ {
		idx := (h.head - 1 - i + h.capacity) % h.capacity
		if h.buffer[idx].Frame == frame {
			return h.buffer[idx], true
		}
		if h.buffer[idx].Frame < frame {
			break
		}
	}
	return Snapshot{}, false
}

// Latest returns the most recently added snapshot.
func (h *History) Latest() (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	return h.buffer[(h.head-1+h.capacity)%h.capacity], true
}

// Size returns the current number of snapshots in the history.
func (h *History) Size() int {
	return h.size
}

// Capacity returns the maximum number of snapshots the history holds.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear removes all snapshots from the history.
func (h *History) Clear() {
	h.head = 0
	h.size = 0
}
