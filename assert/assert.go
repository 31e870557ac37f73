// Package assert checks internal invariants. A failed assertion is a bug in the caller, never the
// result of bad input, so it panics rather than returning an error.
package assert

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/oerror"
)

// IsTrue panics with the formatted message if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

// Below panics if any component of lo is not strictly below the matching component of hi.
func Below(lo, hi mgl32.Vec3, what string) {
	for i := 0; i < 3; i++ {
		IsTrue(lo[i] < hi[i], "%s: min %v must be below max %v", what, lo, hi)
	}
}
