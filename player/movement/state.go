package movement

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// Type is the externally assigned movement type of an entity. Resolve never changes it.
type Type uint8

const (
	TypeNormal Type = iota
	TypeSpectator
	TypeDead
	TypeGib
	TypeFreeze
)

func (t Type) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeSpectator:
		return "spectator"
	case TypeDead:
		return "dead"
	case TypeGib:
		return "gib"
	case TypeFreeze:
		return "freeze"
	default:
		return "unknown"
	}
}

// ParseType returns the Type named by s, and false if no such type exists.
func ParseType(s string) (Type, bool) {
	for t := TypeNormal; t <= TypeFreeze; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return TypeNormal, false
}

// Flags is the movement status bitset persisted between calls.
type Flags uint8

const (
	FlagDucked Flags = 1 << iota
	FlagJumpHeld
	FlagOnGround
	FlagTimeWaterJump
	FlagTimeLand
	FlagTimeTeleport
	FlagNoPrediction
)

// FlagTimeMask holds every flag that is cleared when the movement timer expires.
const FlagTimeMask = FlagTimeWaterJump | FlagTimeLand | FlagTimeTeleport

// State is the kinematic state of an entity that persists across frames.
type State struct {
	Type     Type
	Origin   mgl32.Vec3
	Velocity mgl32.Vec3
	Flags    Flags
	// Time is the remaining duration of timed flags, in units of 8 milliseconds.
	Time    uint8
	Gravity float32
	// DeltaAngles is added to the command's view angles, letting the server rotate the view of an entity.
	DeltaAngles [3]int16
}

// Has returns true if all flags in f are set.
func (s State) Has(f Flags) bool {
	return s.Flags&f == f
}

func (s *State) set(f Flags, v bool) {
	if v {
		s.Flags |= f
	} else {
		s.Flags &^= f
	}
}

// stateEncodedSize is the length of the canonical encoding used by Checksum.
const stateEncodedSize = 1 + 12 + 12 + 1 + 1 + 4 + 6

// Checksum returns a hash over the canonical little-endian encoding of the state. Two states are
// bit-for-bit identical if and only if (barring collisions) their checksums match, which lets a
// predicting client and the authoritative server compare results cheaply.
func (s State) Checksum() uint64 {
	var buf [stateEncodedSize]byte
	buf[0] = byte(s.Type)
	off := 1
	for _, v := range [...]float32{s.Origin[0], s.Origin[1], s.Origin[2], s.Velocity[0], s.Velocity[1], s.Velocity[2]} {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	buf[off] = byte(s.Flags)
	buf[off+1] = s.Time
	off += 2
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(s.Gravity))
	off += 4
	for _, a := range s.DeltaAngles {
		binary.LittleEndian.PutUint16(buf[off:], uint16(a))
		off += 2
	}
	return xxh3.Hash(buf[:])
}
