package game

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Products in this file are wrapped in explicit float32 conversions. The conversion forces rounding
// of each product, which stops the compiler from fusing a multiply and an add into a single FMA
// instruction on architectures that have one. Client and server must produce identical bits.

const (
	degToRad = float32(3.14159265) / 180
	// AngleUnit converts a 16-bit quantized angle to degrees.
	AngleUnit = float32(360.0) / 65536.0
)

// AngleVectors returns the forward, right and up basis vectors of the given pitch, yaw and roll (in degrees).
func AngleVectors(angles mgl32.Vec3) (forward, right, up mgl32.Vec3) {
	sy, cy := sinCos(float32(angles[1] * degToRad))
	sp, cp := sinCos(float32(angles[0] * degToRad))
	sr, cr := sinCos(float32(angles[2] * degToRad))

	forward = mgl32.Vec3{float32(cp * cy), float32(cp * sy), -sp}
	right = mgl32.Vec3{
		float32(-1*sr*sp*cy) + float32(-1*cr*-sy),
		float32(-1*sr*sp*sy) + float32(-1*cr*cy),
		float32(-1 * sr * cp),
	}
	up = mgl32.Vec3{
		float32(cr*sp*cy) + float32(-sr*-sy),
		float32(cr*sp*sy) + float32(-sr*cy),
		float32(cr * cp),
	}
	return
}

// sinCos evaluates in double precision and narrows, matching the rest of the engine.
func sinCos(rad float32) (float32, float32) {
	return float32(math.Sin(float64(rad))), float32(math.Cos(float64(rad)))
}

// ShortToAngle converts a 16-bit quantized angle to degrees.
func ShortToAngle(v int16) float32 {
	return float32(float32(v) * AngleUnit)
}

// AngleToShort quantizes an angle in degrees to 16 bits, wrapping around a full turn.
func AngleToShort(deg float32) int16 {
	return int16(int32(float32(deg*65536.0/360.0)) & 0xFFFF)
}

// Dot returns the dot product of a and b.
func Dot(a, b mgl32.Vec3) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1]) + float32(a[2]*b[2])
}

// Length returns the euclidean length of v.
func Length(v mgl32.Vec3) float32 {
	return math32.Sqrt(Dot(v, v))
}

// Normalize returns v scaled to unit length along with its original length. A zero vector is
// returned unchanged.
func Normalize(v mgl32.Vec3) (mgl32.Vec3, float32) {
	l := Length(v)
	if l == 0 {
		return v, 0
	}
	il := 1 / l
	return mgl32.Vec3{float32(v[0] * il), float32(v[1] * il), float32(v[2] * il)}, l
}

// Cross returns the cross product of a and b.
func Cross(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(a[1]*b[2]) - float32(a[2]*b[1]),
		float32(a[2]*b[0]) - float32(a[0]*b[2]),
		float32(a[0]*b[1]) - float32(a[1]*b[0]),
	}
}

// Scale returns v multiplied by s.
func Scale(v mgl32.Vec3, s float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0] * s), float32(v[1] * s), float32(v[2] * s)}
}

// VectorMA returns start + dir*scale.
func VectorMA(start mgl32.Vec3, scale float32, dir mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		start[0] + float32(scale*dir[0]),
		start[1] + float32(scale*dir[1]),
		start[2] + float32(scale*dir[2]),
	}
}

// HorizontalLength returns the length of v ignoring the vertical component.
func HorizontalLength(v mgl32.Vec3) float32 {
	return math32.Sqrt(float32(v[0]*v[0]) + float32(v[1]*v[1]))
}
