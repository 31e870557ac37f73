package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEntity int32

func (e mockEntity) EntityID() int32 {
	return int32(e)
}

// wallTrace returns a trace capability for a world holding nothing but an infinite wall whose face
// points towards -x at x.
func wallTrace(x float32, ent Entity) TraceFunc {
	return func(start, mins, maxs, end mgl32.Vec3) TraceResult {
		face := x - maxs[0]
		if end[0] <= face || start[0] >= end[0] {
			return TraceResult{Fraction: 1, EndPos: end}
		}
		f := (face - start[0]) / (end[0] - start[0])
		if f < 0 {
			f = 0
		}
		return TraceResult{
			Fraction: f,
			EndPos:   game.VectorMA(start, f, end.Sub(start)),
			Plane:    Plane{Normal: mgl32.Vec3{-1, 0, 0}, Dist: -x},
			Entity:   ent,
		}
	}
}

func TestApplyFriction(t *testing.T) {
	p := DefaultPhysics()

	vel := p.ApplyFriction(mgl32.Vec3{0.5, 0, 0.5}, true, 0, 0.1)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.5}, vel, "slow horizontal motion is stopped outright")

	vel = p.ApplyFriction(mgl32.Vec3{50, 0, 0}, true, 0, 0.1)
	assert.Equal(t, mgl32.Vec3{}, vel, "stop speed control removes slow motion in one frame")

	vel = p.ApplyFriction(mgl32.Vec3{300, 0, 0}, true, 0, 0.1)
	assert.InDelta(t, 120, vel[0], 1e-3)

	vel = p.ApplyFriction(mgl32.Vec3{0, 100, 0}, false, 2, 0.1)
	assert.InDelta(t, 80, vel[1], 1e-3)

	vel = p.ApplyFriction(mgl32.Vec3{0, 0, -300}, false, 0, 0.1)
	assert.Equal(t, mgl32.Vec3{0, 0, -300}, vel, "there is no friction in the air")
}

func TestAccelerate(t *testing.T) {
	dir := mgl32.Vec3{1, 0, 0}

	vel := Accelerate(mgl32.Vec3{}, dir, 300, 10, 0.01)
	assert.InDelta(t, 30, vel[0], 1e-4)

	vel = Accelerate(mgl32.Vec3{290, 0, 0}, dir, 300, 10, 0.1)
	assert.InDelta(t, 300, vel[0], 1e-4, "acceleration never overshoots the wish speed")

	vel = Accelerate(mgl32.Vec3{400, 0, 0}, dir, 300, 10, 0.1)
	assert.Equal(t, mgl32.Vec3{400, 0, 0}, vel, "faster entities are not slowed down")
}

func TestAirAccelerate(t *testing.T) {
	dir := mgl32.Vec3{0, 1, 0}

	vel := AirAccelerate(mgl32.Vec3{}, dir, 300, 10, 0.1)
	assert.InDelta(t, game.AirWishCap, vel[1], 1e-4)

	// The added speed scales with the uncapped wish speed.
	vel = AirAccelerate(mgl32.Vec3{}, dir, 300, 0.5, 0.1)
	assert.InDelta(t, 15, vel[1], 1e-4)

	vel = AirAccelerate(mgl32.Vec3{0, 30, 0}, dir, 300, 10, 0.1)
	assert.Equal(t, mgl32.Vec3{0, 30, 0}, vel)

	vel = AirAccelerate(mgl32.Vec3{}, dir, 300, game.DefaultAirAccelerate, 0.1)
	assert.Equal(t, mgl32.Vec3{}, vel)
}

func TestClipVelocity(t *testing.T) {
	out := ClipVelocity(mgl32.Vec3{100, 0.05, -50}, mgl32.Vec3{0, 0, 1}, game.Overbounce)
	assert.Equal(t, float32(100), out[0])
	assert.Zero(t, out[1], "components close to zero are snapped")
	assert.InDelta(t, 0.5, out[2], 1e-4)

	out = ClipVelocity(mgl32.Vec3{300, 0, 0}, mgl32.Vec3{-1, 0, 0}, 1)
	assert.Equal(t, mgl32.Vec3{}, out)
}

func TestClampVelocity(t *testing.T) {
	vel := ClampVelocity(mgl32.Vec3{3000, 4000, 0}, 2000)
	assert.InDelta(t, 2000, game.Length(vel), 1e-2)
	assert.InDelta(t, 1200, vel[0], 1e-2)
	assert.InDelta(t, 1600, vel[1], 1e-2)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ClampVelocity(mgl32.Vec3{1, 2, 3}, 2000))
}

func TestPhysicsValidate(t *testing.T) {
	require.NoError(t, DefaultPhysics().Validate())

	p := DefaultPhysics()
	p.Friction = -1
	assert.ErrorContains(t, p.Validate(), "Friction")

	p = DefaultPhysics()
	p.MaxVelocity = 0
	assert.ErrorContains(t, p.Validate(), "MaxVelocity")
}

func TestSlideAlongWall(t *testing.T) {
	var touched []Entity
	res := SlideMove(SlideInput{
		Velocity: mgl32.Vec3{300, 100, 0},
		Mins:     game.PlayerMins,
		Maxs:     game.StandingMaxs,
		Dt:       0.1,
		StepSize: game.DefaultStepSize,
		Trace:    wallTrace(40, mockEntity(3)),
		Touch:    func(e Entity) { touched = append(touched, e) },
	})

	assert.False(t, res.Stuck)
	assert.False(t, res.Stepped)
	require.Equal(t, 1, res.NumPlanes)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, res.Planes[0])
	assert.InDelta(t, -3, res.Velocity[0], 1e-3)
	assert.Equal(t, float32(100), res.Velocity[1])
	assert.InDelta(t, 10, res.Origin[1], 1e-3)
	assert.Less(t, res.Origin[0], float32(24))
	assert.Equal(t, []Entity{mockEntity(3)}, touched)
}

func TestSlideStuckInSolid(t *testing.T) {
	res := SlideMove(SlideInput{
		Origin:   mgl32.Vec3{1, 2, 3},
		Velocity: mgl32.Vec3{100, 0, 100},
		Dt:       0.1,
		OnGround: true,
		Trace: func(start, mins, maxs, end mgl32.Vec3) TraceResult {
			return TraceResult{AllSolid: true, StartSolid: true, EndPos: start}
		},
	})
	assert.True(t, res.Stuck)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, res.Origin)
	assert.Equal(t, mgl32.Vec3{100, 0, 0}, res.Velocity)
}

func TestSlideWithoutTrace(t *testing.T) {
	res := SlideMove(SlideInput{Origin: mgl32.Vec3{0, 0, 10}, Velocity: mgl32.Vec3{0, 0, -100}, Dt: 0.05})
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, res.Origin)
	assert.Equal(t, mgl32.Vec3{0, 0, -100}, res.Velocity)
}

func TestStepRejectedWhenNoFurther(t *testing.T) {
	// A wall too tall to step over: the lifted move hits the same face, so the slide result stands.
	res := SlideMove(SlideInput{
		Velocity: mgl32.Vec3{300, 0, 0},
		Mins:     game.PlayerMins,
		Maxs:     game.StandingMaxs,
		Dt:       0.1,
		OnGround: true,
		StepSize: game.DefaultStepSize,
		Trace:    wallTrace(40, nil),
	})
	assert.False(t, res.Stepped)
	assert.Equal(t, mgl32.Vec3{}, res.Velocity)
}

func TestClipCrease(t *testing.T) {
	wallX, wallY := mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}

	vel := clipCrease(mgl32.Vec3{300, 0, 50}, wallY, []mgl32.Vec3{wallX, wallY})
	assert.InDelta(t, 0, vel[0], 1e-4)
	assert.InDelta(t, 0, vel[1], 1e-4)
	assert.InDelta(t, 50, vel[2], 1e-4)

	ceiling := mgl32.Vec3{0, 0, -1}
	vel = clipCrease(mgl32.Vec3{300, 0, 50}, wallY, []mgl32.Vec3{wallX, ceiling, wallY})
	assert.Equal(t, mgl32.Vec3{}, vel, "a box wedged between three planes stops")

	vel = clipCrease(mgl32.Vec3{0, 0, 50}, wallY, []mgl32.Vec3{wallX, wallY})
	assert.Equal(t, mgl32.Vec3{0, 0, 50}, vel)
}

func TestCategorize(t *testing.T) {
	c := Categorize(mgl32.Vec3{}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, nil, nil)
	assert.True(t, c.OnGround)
	assert.Nil(t, c.GroundEntity)
	assert.Zero(t, c.WaterLevel)

	// Water below z=10 covers the feet and the waist, but not the eyes.
	water := func(p mgl32.Vec3) game.Contents {
		if p[2] < 10 {
			return game.ContentsWater
		}
		return 0
	}
	c = Categorize(mgl32.Vec3{}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, nil, water)
	assert.Equal(t, 2, c.WaterLevel)
	assert.Equal(t, game.ContentsWater, c.WaterType)

	c = Categorize(mgl32.Vec3{0, 0, 40}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, nil, water)
	assert.Zero(t, c.WaterLevel)
	c = Categorize(mgl32.Vec3{0, 0, -40}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, nil, water)
	assert.Equal(t, 3, c.WaterLevel)

	ground := func(normal mgl32.Vec3) TraceFunc {
		return func(start, mins, maxs, end mgl32.Vec3) TraceResult {
			return TraceResult{EndPos: start, Plane: Plane{Normal: normal}, Entity: mockEntity(9)}
		}
	}
	c = Categorize(mgl32.Vec3{}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, ground(mgl32.Vec3{0, 0, 1}), nil)
	assert.True(t, c.OnGround)
	assert.Equal(t, Entity(mockEntity(9)), c.GroundEntity)

	c = Categorize(mgl32.Vec3{}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, ground(mgl32.Vec3{0.8, 0, 0.6}), nil)
	assert.False(t, c.OnGround, "slopes steeper than the step normal cannot be stood on")
	assert.Nil(t, c.GroundEntity)

	air := func(start, mins, maxs, end mgl32.Vec3) TraceResult {
		return TraceResult{Fraction: 1, EndPos: end}
	}
	c = Categorize(mgl32.Vec3{}, game.PlayerMins, game.StandingMaxs, game.StandingViewHeight, air, nil)
	assert.False(t, c.OnGround)
}

func TestTouchListDeduplicates(t *testing.T) {
	var m Move
	m.addTouch(nil)
	for i := 0; i < game.MaxTouch+10; i++ {
		m.addTouch(mockEntity(i % (game.MaxTouch + 5)))
		m.addTouch(mockEntity(0))
	}
	touched := m.Touched()
	require.Len(t, touched, game.MaxTouch)
	assert.Equal(t, Entity(mockEntity(0)), touched[0])
	assert.Equal(t, Entity(mockEntity(1)), touched[1])

	m.resetTouch()
	assert.Empty(t, m.Touched())
}

func TestStateChecksum(t *testing.T) {
	st := State{
		Type:        TypeNormal,
		Origin:      mgl32.Vec3{1, 2, 3},
		Velocity:    mgl32.Vec3{4, 5, 6},
		Flags:       FlagOnGround,
		Gravity:     800,
		DeltaAngles: [3]int16{0, 90, 0},
	}
	assert.Equal(t, st.Checksum(), st.Checksum())

	changes := []func(*State){
		func(s *State) { s.Type = TypeDead },
		func(s *State) { s.Origin[2] = 3.0001 },
		func(s *State) { s.Velocity[0] = -4 },
		func(s *State) { s.Flags |= FlagDucked },
		func(s *State) { s.Time = 1 },
		func(s *State) { s.Gravity = 400 },
		func(s *State) { s.DeltaAngles[1] = -90 },
	}
	for i, change := range changes {
		other := st
		change(&other)
		assert.NotEqual(t, st.Checksum(), other.Checksum(), "change %d", i)
	}
}

func TestTypeAndFlags(t *testing.T) {
	for typ := TypeNormal; typ <= TypeFreeze; typ++ {
		parsed, ok := ParseType(typ.String())
		require.True(t, ok)
		assert.Equal(t, typ, parsed)
	}
	_, ok := ParseType("flying")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Type(200).String())

	var s State
	s.set(FlagDucked|FlagOnGround, true)
	assert.True(t, s.Has(FlagDucked))
	assert.True(t, s.Has(FlagDucked|FlagOnGround))
	assert.False(t, s.Has(FlagDucked|FlagJumpHeld))
	s.set(FlagDucked, false)
	assert.Equal(t, FlagOnGround, s.Flags)
}
