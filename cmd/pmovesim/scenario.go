package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/oerror"
	"github.com/oomph-ac/pmove/player/movement"
	"gopkg.in/yaml.v3"
)

// scenario is a scripted run of frames for a set of players.
type scenario struct {
	Players []scenarioPlayer `yaml:"players"`
	Frames  []scenarioFrame  `yaml:"frames"`
}

type scenarioPlayer struct {
	Name   string    `yaml:"name"`
	Origin []float32 `yaml:"origin"`
	Type   string    `yaml:"type"`
}

type scenarioFrame struct {
	// Repeat is how many times the frame is run. Zero runs it once.
	Repeat   int                        `yaml:"repeat"`
	Commands map[string]scenarioCommand `yaml:"commands"`
}

type scenarioCommand struct {
	// Msec is the duration of the command. Zero uses the frame length of the server tick rate.
	Msec    uint8     `yaml:"msec"`
	Forward int16     `yaml:"forward"`
	Side    int16     `yaml:"side"`
	Up      int16     `yaml:"up"`
	Angles  []float32 `yaml:"angles"`
	Buttons []string  `yaml:"buttons"`
}

var buttonNames = map[string]game.Buttons{
	"attack": game.ButtonAttack,
	"use":    game.ButtonUse,
	"crouch": game.ButtonCrouch,
	"any":    game.ButtonAny,
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, fmt.Errorf("error reading scenario: %w", err)
	}
	return decodeScenario(data)
}

func decodeScenario(data []byte) (scenario, error) {
	var s scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return scenario{}, fmt.Errorf("error decoding scenario: %w", err)
	}
	names := make(map[string]struct{}, len(s.Players))
	for _, p := range s.Players {
		if p.Name == "" {
			return scenario{}, oerror.New("scenario player without a name")
		}
		if _, ok := names[p.Name]; ok {
			return scenario{}, oerror.New("duplicate scenario player %q", p.Name)
		}
		names[p.Name] = struct{}{}
		if _, err := p.origin(); err != nil {
			return scenario{}, err
		}
		if _, err := p.movementType(); err != nil {
			return scenario{}, err
		}
	}
	for i, f := range s.Frames {
		for name, c := range f.Commands {
			if _, ok := names[name]; !ok {
				return scenario{}, oerror.New("frame %d: unknown player %q", i, name)
			}
			if _, err := c.command(0); err != nil {
				return scenario{}, fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return s, nil
}

func (p scenarioPlayer) origin() (mgl32.Vec3, error) {
	if len(p.Origin) != 3 {
		return mgl32.Vec3{}, oerror.New("player %q: origin must have 3 components", p.Name)
	}
	return mgl32.Vec3{p.Origin[0], p.Origin[1], p.Origin[2]}, nil
}

func (p scenarioPlayer) movementType() (movement.Type, error) {
	if p.Type == "" {
		return movement.TypeNormal, nil
	}
	t, ok := movement.ParseType(p.Type)
	if !ok {
		return 0, oerror.New("player %q: unknown movement type %q", p.Name, p.Type)
	}
	return t, nil
}

// command converts the scenario command to a frame command lasting frameMsec unless it sets its own
// duration. Angles are given in degrees.
func (c scenarioCommand) command(frameMsec uint8) (movement.Command, error) {
	cmd := movement.Command{Msec: c.Msec, ForwardMove: c.Forward, SideMove: c.Side, UpMove: c.Up}
	if cmd.Msec == 0 {
		cmd.Msec = frameMsec
	}
	if len(c.Angles) > 3 {
		return cmd, oerror.New("angles have at most 3 components")
	}
	for i, a := range c.Angles {
		cmd.Angles[i] = game.AngleToShort(a)
	}
	for _, name := range c.Buttons {
		b, ok := buttonNames[name]
		if !ok {
			return cmd, oerror.New("unknown button %q", name)
		}
		cmd.Buttons |= b
	}
	return cmd, nil
}
