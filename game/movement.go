package game

import "github.com/go-gl/mathgl/mgl32"

const (
	DefaultMaxSpeed        = float32(300)
	DefaultDuckSpeed       = float32(100)
	DefaultAccelerate      = float32(10)
	DefaultAirAccelerate   = float32(0)
	DefaultWaterAccelerate = float32(10)
	DefaultFriction        = float32(6)
	DefaultWaterFriction   = float32(1)
	DefaultWaterSpeed      = float32(400)
	DefaultStopSpeed       = float32(100)
	DefaultJumpSpeed       = float32(270)
	DefaultStepSize        = float32(18)
	DefaultMaxVelocity     = float32(2000)
	DefaultGravity         = float32(800)

	// MinStepNormal is the smallest vertical normal component of a surface that can be stood on.
	MinStepNormal = float32(0.7)
	// Overbounce is the factor applied to the backoff when clipping velocity against a plane.
	Overbounce = float32(1.01)
	// StopEpsilon is the band around zero that clipped velocity components are snapped out of.
	StopEpsilon = float32(0.1)
	// GroundProbeDistance is how far below the origin the ground trace reaches.
	GroundProbeDistance = float32(0.25)
	// WaterSinkSpeed is subtracted from the vertical wish velocity when swimming without input.
	WaterSinkSpeed = float32(60)
	// AirWishCap caps the wish speed used to compute the add-speed in air.
	AirWishCap = float32(30)
	// DeadViewRoll is the view roll forced on dead and gibbed entities.
	DeadViewRoll = float32(40)

	MaxFrameTime   = float32(0.2)
	MaxCommandMsec = 250
	MaxMoveIntent  = 400

	MaxTouch      = 32
	MaxClipPlanes = 5
	MaxBumps      = 4

	// TimerUnitMsec is the resolution of the movement timer field.
	TimerUnitMsec = 8
	// TeleportPauseTime is the timer value hosts set after teleporting an entity.
	TeleportPauseTime = 14
)

var (
	// PlayerMins is the lower corner of the player box, shared by both presets.
	PlayerMins = mgl32.Vec3{-16, -16, -24}
	// StandingMaxs is the upper corner of the standing player box.
	StandingMaxs = mgl32.Vec3{16, 16, 32}
	// DuckedMaxs is the upper corner of the ducked player box.
	DuckedMaxs = mgl32.Vec3{16, 16, 4}
)

const (
	StandingViewHeight = float32(22)
	DuckedViewHeight   = float32(-2)
)
