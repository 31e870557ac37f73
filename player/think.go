package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
)

const (
	// UseRange is how far in front of the eyes a player can use objects.
	UseRange = float32(96)
	// fallDamageSpeed is the downward speed a player must exceed for a landing to hurt.
	fallDamageSpeed = float32(300)
)

// Result describes what happened to a player during a frame.
type Result struct {
	Frame uint64
	// Moved is false if the player was dead at the start of the frame and had no control.
	Moved bool

	// Touched holds the objects touched while moving, in the order they were touched.
	Touched []movement.Entity
	// Used is the object the player used this frame, if any.
	Used movement.Entity

	Landed    bool
	Damage    int
	Died      bool
	Respawned bool

	Checksum uint64
}

// SanitizeCommand clamps the fields of a command received from a client to the bounds the movement
// simulation expects.
func SanitizeCommand(cmd movement.Command) movement.Command {
	if cmd.Msec > game.MaxCommandMsec {
		cmd.Msec = game.MaxCommandMsec
	}
	cmd.ForwardMove = clampIntent(cmd.ForwardMove)
	cmd.SideMove = clampIntent(cmd.SideMove)
	cmd.UpMove = clampIntent(cmd.UpMove)
	return cmd
}

func clampIntent(v int16) int16 {
	switch {
	case v > game.MaxMoveIntent:
		return game.MaxMoveIntent
	case v < -game.MaxMoveIntent:
		return -game.MaxMoveIntent
	}
	return v
}

// Think runs a single frame for the player with the command passed.
func (p *Player) Think(cmd movement.Command) Result {
	p.frame++
	res := Result{Frame: p.frame}
	cmd = SanitizeCommand(cmd)

	if p.Dead() {
		if cmd.Buttons.Has(game.ButtonAttack | game.ButtonUse) {
			p.respawn()
			res.Respawned = true
		} else {
			// Corpses keep falling, but have no control over their movement.
			res.Touched = p.move(movement.Command{Msec: cmd.Msec, Angles: cmd.Angles}, &res)
		}
		return p.record(res)
	}

	res.Moved = true
	res.Touched = p.move(cmd, &res)
	if cmd.Buttons.Has(game.ButtonUse) {
		res.Used = p.use()
	}
	return p.record(res)
}

// move resolves the movement of the player and applies fall damage. It returns a copy of the touched
// objects.
func (p *Player) move(cmd movement.Command, res *Result) []movement.Entity {
	oldVz := p.state.Velocity[2]
	wasGrounded := p.groundEntity != nil

	m := &movement.Move{
		State:         p.state,
		Cmd:           cmd,
		Trace:         p.trace,
		PointContents: p.world.PointContents,
	}
	p.sim.Resolve(m)
	if cmd.Msec == 0 {
		return nil
	}

	p.state = m.State
	p.viewAngles, p.viewHeight = m.ViewAngles, m.ViewHeight
	p.mins, p.maxs = m.Mins, m.Maxs
	p.waterLevel, p.waterType = m.WaterLevel, m.WaterType

	// Resolve categorizes before moving, so the ground is probed again at the final position to catch
	// a landing in the frame of the impact.
	after := movement.Categorize(m.State.Origin, m.Mins, m.Maxs, m.ViewHeight, p.trace, p.world.PointContents)
	p.groundEntity = after.GroundEntity
	if p.groundEntity != nil && !wasGrounded {
		res.Landed = true
		p.applyFallDamage(oldVz, res)
	}

	touched := m.Touched()
	if len(touched) == 0 {
		return nil
	}
	p.Dbg.Notify(DebugModeTouches, true, "touched %d objects: %v", len(touched), touched)
	return append([]movement.Entity(nil), touched...)
}

// trace is the trace capability handed to the movement simulation.
func (p *Player) trace(start, mins, maxs, end mgl32.Vec3) movement.TraceResult {
	return p.world.Trace(start, mins, maxs, end, p.ent, game.MaskPlayerSolid)
}

// FallDamage returns the damage dealt by landing with the vertical velocity passed.
func FallDamage(vz float32) int {
	if vz >= -fallDamageSpeed {
		return 0
	}
	speed := -vz
	switch {
	case speed > 700:
		return int(float32((speed - fallDamageSpeed) * 0.1))
	case speed > 500:
		return int(float32((speed - fallDamageSpeed) * 0.05))
	}
	return 0
}

func (p *Player) applyFallDamage(vz float32, res *Result) {
	dmg := FallDamage(vz)
	if dmg <= 0 || p.Dead() {
		return
	}
	p.health -= dmg
	res.Damage = dmg
	p.Dbg.Notify(DebugModeDamage, true, "fall damage %d at vz=%v (health=%d)", dmg, vz, p.health)
	if p.health <= 0 {
		p.health = 0
		p.state.Type = movement.TypeDead
		res.Died = true
		p.log.WithField("damage", dmg).Info("died from fall damage")
	}
}

func (p *Player) respawn() {
	p.health = MaxHealth
	p.state.Type = movement.TypeNormal
	p.log.Info("respawned")
}

// use traces a line forward from the eyes of the player and returns the object it hits.
func (p *Player) use() movement.Entity {
	forward, _, _ := game.AngleVectors(p.viewAngles)
	eye := p.state.Origin
	eye[2] += p.viewHeight
	end := game.VectorMA(eye, UseRange, forward)

	tr := p.world.Trace(eye, mgl32.Vec3{}, mgl32.Vec3{}, end, p.ent, game.MaskShot)
	if tr.Fraction == 1 || tr.Entity == nil {
		return nil
	}
	p.Dbg.Notify(DebugModeTouches, true, "used %v", tr.Entity)
	return tr.Entity
}

func (p *Player) record(res Result) Result {
	res.Checksum = p.state.Checksum()
	p.history.Add(Snapshot{Frame: res.Frame, Checksum: res.Checksum, State: p.state})
	return res
}
