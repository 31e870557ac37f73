package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/sirupsen/logrus"
)

// MaxHealth is the health a player spawns and respawns with.
const MaxHealth = 100

// World is the geometry a player moves through.
type World interface {
	// Trace sweeps a box from start to end, ignoring objects owned by pass and contents outside of mask.
	Trace(start, mins, maxs, end mgl32.Vec3, pass movement.Entity, mask game.Contents) movement.TraceResult
	// PointContents returns the contents at a point.
	PointContents(point mgl32.Vec3) game.Contents
}

// Player is an entity whose movement is driven by frame commands. A Player is not safe for concurrent
// use: callers must make sure only one goroutine runs Think for a player at a time.
type Player struct {
	id   int32
	name string
	ent  movement.Entity

	log *logrus.Entry
	Dbg *Debugger

	sim   *movement.Simulator
	world World

	state        movement.State
	viewAngles   mgl32.Vec3
	viewHeight   float32
	mins, maxs   mgl32.Vec3
	groundEntity movement.Entity
	waterLevel   int
	waterType    game.Contents
	health       int

	frame   uint64
	history *History
}

// New creates a new player. The entity passed is the object other traces see when they hit the player,
// and is ignored by the player's own traces. opts.Debugf is replaced so simulation logs are routed
// through the player's debugger.
func New(id int32, name string, ent movement.Entity, log *logrus.Entry, opts movement.Options, w World, historySize int) *Player {
	p := &Player{
		id:      id,
		name:    name,
		ent:     ent,
		log:     log,
		world:   w,
		health:  MaxHealth,
		history: NewHistory(historySize),
	}
	p.Dbg = NewDebugger(log)
	opts.Debugf = func(format string, args ...any) {
		p.Dbg.Notify(DebugModeMovementSim, true, format, args...)
	}
	p.sim = movement.NewSimulator(opts)

	p.state.Gravity = game.DefaultGravity
	p.mins, p.maxs = game.PlayerMins, game.StandingMaxs
	p.viewHeight = game.StandingViewHeight
	return p
}

// ID returns the identifier of the player.
func (p *Player) ID() int32 {
	return p.id
}

// EntityID ...
func (p *Player) EntityID() int32 {
	return p.id
}

// Name returns the name of the player.
func (p *Player) Name() string {
	return p.name
}

// Entity returns the world entity representing the player.
func (p *Player) Entity() movement.Entity {
	return p.ent
}

// Log returns the logger of the player.
func (p *Player) Log() *logrus.Entry {
	return p.log
}

// State returns the persisted movement state of the player.
func (p *Player) State() movement.State {
	return p.state
}

// SetState overwrites the persisted movement state of the player.
func (p *Player) SetState(s movement.State) {
	p.state = s
	p.probeGround()
}

// Origin returns the position of the player.
func (p *Player) Origin() mgl32.Vec3 {
	return p.state.Origin
}

// Velocity returns the velocity of the player.
func (p *Player) Velocity() mgl32.Vec3 {
	return p.state.Velocity
}

// ViewAngles returns the view angles resolved in the last frame.
func (p *Player) ViewAngles() mgl32.Vec3 {
	return p.viewAngles
}

// ViewHeight returns the eye height above the origin resolved in the last frame.
func (p *Player) ViewHeight() float32 {
	return p.viewHeight
}

// BBox returns the extents of the player's box relative to its origin.
func (p *Player) BBox() (mins, maxs mgl32.Vec3) {
	return p.mins, p.maxs
}

// GroundEntity returns the entity the player is standing on, or nil if it is airborne.
func (p *Player) GroundEntity() movement.Entity {
	return p.groundEntity
}

// WaterLevel returns how deep the player is submerged, from 0 to 3.
func (p *Player) WaterLevel() int {
	return p.waterLevel
}

// Health returns the health of the player.
func (p *Player) Health() int {
	return p.health
}

// Dead returns true if the player is dead.
func (p *Player) Dead() bool {
	return p.health <= 0
}

// Frame returns the amount of frames the player has thought.
func (p *Player) Frame() uint64 {
	return p.frame
}

// Spawn places the player at origin with full health and no velocity.
func (p *Player) Spawn(origin mgl32.Vec3, t movement.Type) {
	gravity := p.state.Gravity
	p.state = movement.State{Type: t, Origin: origin, Gravity: gravity}
	p.health = MaxHealth
	p.mins, p.maxs = game.PlayerMins, game.StandingMaxs
	p.viewHeight = game.StandingViewHeight
	p.probeGround()
	p.log.WithField("origin", origin).Debug("spawned")
}

// Teleport moves the player to origin and holds it in place for a short time.
func (p *Player) Teleport(origin mgl32.Vec3) {
	p.state.Origin = origin
	p.state.Velocity = mgl32.Vec3{}
	p.state.Flags |= movement.FlagTimeTeleport
	p.state.Time = game.TeleportPauseTime
	p.probeGround()
	p.Dbg.Notify(DebugModeMovementSim, true, "teleported to %v", origin)
}

// probeGround finds the ground and water around the current origin, so that a player placed directly
// on the floor is not seen landing in its next frame.
func (p *Player) probeGround() {
	c := movement.Categorize(p.state.Origin, p.mins, p.maxs, p.viewHeight, p.trace, p.world.PointContents)
	p.groundEntity = c.GroundEntity
	p.waterLevel, p.waterType = c.WaterLevel, c.WaterType
}

// SetGravity sets the gravity applied to the player while airborne.
func (p *Player) SetGravity(g float32) {
	p.state.Gravity = g
}

// VerifyChecksum compares a checksum reported for a frame against the one recorded for it. The second
// return value is false if the frame is no longer, or not yet, in the history.
func (p *Player) VerifyChecksum(frame uint64, sum uint64) (match bool, known bool) {
	snap, ok := p.history.Get(frame)
	if !ok {
		return false, false
	}
	return snap.Checksum == sum, true
}

// History returns the state history of the player.
func (p *Player) History() *History {
	return p.history
}
