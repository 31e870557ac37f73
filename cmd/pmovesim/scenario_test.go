package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	sc, err := loadScenario("scenarios/stairs.yaml")
	require.NoError(t, err)
	require.Len(t, sc.Players, 3)
	require.Len(t, sc.Frames, 3)

	origin, err := sc.Players[1].origin()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 256, 24}, origin)

	typ, err := sc.Players[2].movementType()
	require.NoError(t, err)
	assert.Equal(t, movement.TypeSpectator, typ)

	assert.Equal(t, 20, sc.Frames[0].Repeat)
	cmd, err := sc.Frames[0].Commands["camera"].command(50)
	require.NoError(t, err)
	assert.Equal(t, uint8(25), cmd.Msec, "explicit durations are kept")
	assert.Equal(t, [3]int16{game.AngleToShort(-30), game.AngleToShort(45), 0}, cmd.Angles)
	assert.Equal(t, int16(400), cmd.ForwardMove)

	cmd, err = sc.Frames[2].Commands["crawler"].command(50)
	require.NoError(t, err)
	assert.Equal(t, uint8(50), cmd.Msec, "missing durations last one tick")
	assert.Equal(t, game.ButtonUse, cmd.Buttons)
}

func TestDecodeScenarioErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":         "players: [",
		"no name":        "players: [{origin: [0, 0, 0]}]",
		"duplicate":      "players: [{name: a, origin: [0, 0, 0]}, {name: a, origin: [1, 1, 1]}]",
		"origin":         "players: [{name: a, origin: [0, 0]}]",
		"type":           "players: [{name: a, origin: [0, 0, 0], type: ghost}]",
		"unknown player": "players: [{name: a, origin: [0, 0, 0]}]\nframes: [{commands: {b: {msec: 10}}}]",
		"button":         "players: [{name: a, origin: [0, 0, 0]}]\nframes: [{commands: {a: {buttons: [jump]}}}]",
		"angles":         "players: [{name: a, origin: [0, 0, 0]}]\nframes: [{commands: {a: {angles: [1, 2, 3, 4]}}}]",
	} {
		_, err := decodeScenario([]byte(doc))
		assert.Error(t, err, name)
	}

	_, err := loadScenario("scenarios/missing.yaml")
	assert.ErrorContains(t, err, "error reading scenario")
}
