package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/oerror"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything that can be configured for a pmove server.
type Settings struct {
	Server struct {
		// TickRate is the number of frames simulated per second. It sets the duration of commands that
		// do not carry one.
		TickRate int
		// MaxPlayers is the maximum amount of players that may be joined at once. Zero means no limit.
		MaxPlayers int
		// HistorySize is the amount of state checksums kept per player for desync detection.
		HistorySize int
	}
	Physics Physics
	Debug   struct {
		// Level is the logrus level the server logs at.
		Level string
		// MovementSim enables movement simulation logs for every player that joins.
		MovementSim bool
	}
	Sentry struct {
		DSN         string
		Environment string
	}
	World struct {
		Brushes []Brush
	}
}

// Physics mirrors movement.Physics and adds the gravity given to spawned players.
type Physics struct {
	MaxSpeed        float32
	DuckSpeed       float32
	Accelerate      float32
	AirAccelerate   float32
	WaterAccelerate float32
	Friction        float32
	WaterFriction   float32
	WaterSpeed      float32
	StopSpeed       float32
	JumpSpeed       float32
	StepSize        float32
	MaxVelocity     float32
	Gravity         float32
}

// Movement returns the movement tunables described by the physics settings.
func (p Physics) Movement() movement.Physics {
	return movement.Physics{
		MaxSpeed:        p.MaxSpeed,
		DuckSpeed:       p.DuckSpeed,
		Accelerate:      p.Accelerate,
		AirAccelerate:   p.AirAccelerate,
		WaterAccelerate: p.WaterAccelerate,
		Friction:        p.Friction,
		WaterFriction:   p.WaterFriction,
		WaterSpeed:      p.WaterSpeed,
		StopSpeed:       p.StopSpeed,
		JumpSpeed:       p.JumpSpeed,
		StepSize:        p.StepSize,
		MaxVelocity:     p.MaxVelocity,
	}
}

// Brush is a box of world geometry.
type Brush struct {
	Mins []float32
	Maxs []float32
	// Contents are content names such as "solid", "water" or "playerclip".
	Contents []string
	// Entity names the entity owning the brush. Brushes without one belong to the world.
	Entity string
	// Surface is the name of the brush's surface, and SurfaceFlags its flags such as "slick".
	Surface      string
	SurfaceFlags []string
}

// ContentMask returns the combined contents of the brush.
func (b Brush) ContentMask() (game.Contents, error) {
	var c game.Contents
	for _, name := range b.Contents {
		v, ok := game.ParseContents(name)
		if !ok {
			return 0, oerror.New("unknown contents %q", name)
		}
		c |= v
	}
	return c, nil
}

// SurfaceMask returns the combined surface flags of the brush.
func (b Brush) SurfaceMask() (game.SurfaceFlags, error) {
	var f game.SurfaceFlags
	for _, name := range b.SurfaceFlags {
		v, ok := game.ParseSurfaceFlag(name)
		if !ok {
			return 0, oerror.New("unknown surface flag %q", name)
		}
		f |= v
	}
	return f, nil
}

// Validate returns an error if the brush is malformed.
func (b Brush) Validate() error {
	if len(b.Mins) != 3 || len(b.Maxs) != 3 {
		return oerror.New("brush extents must have 3 components (got %d and %d)", len(b.Mins), len(b.Maxs))
	}
	for i := 0; i < 3; i++ {
		if b.Mins[i] >= b.Maxs[i] {
			return oerror.New("brush mins %v must be below maxs %v", b.Mins, b.Maxs)
		}
	}
	if _, err := b.ContentMask(); err != nil {
		return err
	}
	_, err := b.SurfaceMask()
	return err
}

// DefaultSettings returns the default settings: stock physics and a flat floor.
func DefaultSettings() Settings {
	s := Settings{}
	s.Server.TickRate = 20
	s.Server.HistorySize = 64

	p := movement.DefaultPhysics()
	s.Physics = Physics{
		MaxSpeed:        p.MaxSpeed,
		DuckSpeed:       p.DuckSpeed,
		Accelerate:      p.Accelerate,
		AirAccelerate:   p.AirAccelerate,
		WaterAccelerate: p.WaterAccelerate,
		Friction:        p.Friction,
		WaterFriction:   p.WaterFriction,
		WaterSpeed:      p.WaterSpeed,
		StopSpeed:       p.StopSpeed,
		JumpSpeed:       p.JumpSpeed,
		StepSize:        p.StepSize,
		MaxVelocity:     p.MaxVelocity,
		Gravity:         game.DefaultGravity,
	}

	s.Debug.Level = logrus.InfoLevel.String()
	s.Sentry.Environment = "development"

	s.World.Brushes = []Brush{{
		Mins:     []float32{-4096, -4096, -64},
		Maxs:     []float32{4096, 4096, 0},
		Contents: []string{"solid"},
		Surface:  "floor",
	}}
	return s
}

// Validate returns an error if the settings cannot be used to run a server.
func (s Settings) Validate() error {
	if s.Server.TickRate <= 0 {
		return oerror.New("server tick rate must be positive (got %d)", s.Server.TickRate)
	}
	if 1000/s.Server.TickRate > game.MaxCommandMsec {
		return oerror.New("server tick rate %d is below the minimum of %d", s.Server.TickRate, 1000/game.MaxCommandMsec)
	}
	if s.Server.TickRate > 1000 {
		return oerror.New("server tick rate %d is above the maximum of 1000", s.Server.TickRate)
	}
	if s.Server.HistorySize <= 0 {
		return oerror.New("server history size must be positive (got %d)", s.Server.HistorySize)
	}
	if err := s.Physics.Movement().Validate(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(s.Debug.Level); err != nil {
		return fmt.Errorf("invalid debug level: %w", err)
	}
	for i, b := range s.World.Brushes {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("world brush %d: %w", i, err)
		}
	}
	return nil
}

// FrameMsec returns the duration of a single server tick in milliseconds.
func (s Settings) FrameMsec() uint8 {
	return uint8(1000 / s.Server.TickRate)
}

// Encode returns the TOML encoding of the settings.
func (s Settings) Encode() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed encoding settings: %w", err)
	}
	return data, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := DefaultSettings().Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist
// or holds invalid settings. Fields missing from the file keep their default value.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}
	return Decode(data)
}

// Decode decodes TOML settings on top of the defaults and validates the result.
func Decode(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
