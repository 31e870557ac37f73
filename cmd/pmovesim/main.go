package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/pmove"
	"github.com/oomph-ac/pmove/game"
	"github.com/oomph-ac/pmove/player"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/oomph-ac/pmove/settings"
	"github.com/oomph-ac/pmove/world"
	"github.com/sirupsen/logrus"
)

var CLI struct {
	Debug    bool   `help:"Whether to enable debug logging."`
	Settings string `name:"config" help:"Settings file to load. The defaults are used when omitted." type:"existingfile" short:"c"`

	Run struct {
		Scenario string `arg:"" name:"scenario" help:"YAML scenario of frames to simulate." type:"existingfile"`
		Trace    bool   `help:"Log the movement simulation of every player."`
	} `cmd:"" help:"Simulate a scenario and print the trajectory of every player."`

	Config struct {
	} `cmd:"" help:"Write the default settings to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.InfoLevel

	ctx := kong.Parse(&CLI,
		kong.Name("pmovesim"),
		kong.Description("a deterministic player movement simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	switch ctx.Command() {
	case "run <scenario>":
		if err := runCommand(log); err != nil {
			writeError(err)
		}
	case "config":
		data, err := settings.DefaultSettings().Encode()
		if err != nil {
			writeError(err)
		}
		os.Stdout.Write(data)
	}
}

func loadSettings() (settings.Settings, error) {
	if CLI.Settings == "" {
		return settings.DefaultSettings(), nil
	}
	return settings.Load(CLI.Settings)
}

func runCommand(log *logrus.Logger) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if CLI.Debug {
		s.Debug.Level = logrus.DebugLevel.String()
	}
	if CLI.Run.Trace {
		s.Debug.MovementSim = true
		s.Debug.Level = logrus.DebugLevel.String()
	}
	level, err := logrus.ParseLevel(s.Debug.Level)
	if err != nil {
		return err
	}
	log.Level = level

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Sentry.DSN, Environment: s.Sentry.Environment}); err != nil {
			return fmt.Errorf("failed initialising sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:18066"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	sc, err := loadScenario(CLI.Run.Scenario)
	if err != nil {
		return err
	}
	w, err := world.FromSettings(s.World.Brushes)
	if err != nil {
		return fmt.Errorf("failed building world: %w", err)
	}
	srv, err := pmove.New(log, s, w)
	if err != nil {
		return err
	}
	defer srv.Close()
	srv.Handle(logHandler{log: log})

	ids := make(map[string]int32, len(sc.Players))
	for _, sp := range sc.Players {
		origin, _ := sp.origin()
		t, _ := sp.movementType()
		p, err := srv.Join(sp.Name, origin)
		if err != nil {
			return err
		}
		if t != movement.TypeNormal {
			st := p.State()
			st.Type = t
			p.SetState(st)
		}
		ids[sp.Name] = p.ID()
	}

	frameMsec := s.FrameMsec()
	speeds := make(map[int32]*game.Series, len(ids))
	start, frames := time.Now(), 0
	for _, f := range sc.Frames {
		cmds := make(map[int32]movement.Command, len(f.Commands))
		for name, c := range f.Commands {
			cmds[ids[name]], _ = c.command(frameMsec)
		}
		for i := 0; i < max(f.Repeat, 1); i++ {
			report := srv.Frame(cmds)
			frames++
			for _, r := range report.Results {
				logFrame(log, report.Frame, r)

				id := r.Player.ID()
				if speeds[id] == nil {
					speeds[id] = &game.Series{}
				}
				speeds[id].Add(game.HorizontalLength(r.Player.Velocity()))
			}
		}
	}

	for _, p := range srv.Players() {
		st := p.State()
		fields := logrus.Fields{
			"player":   p.Name(),
			"origin":   st.Origin,
			"velocity": st.Velocity,
			"health":   p.Health(),
			"checksum": fmt.Sprintf("%016x", st.Checksum()),
		}
		if s := speeds[p.ID()]; s != nil {
			fields["speed_mean"] = fmt.Sprintf("%.2f", s.Mean())
			fields["speed_median"] = fmt.Sprintf("%.2f", s.Median())
			fields["speed_stddev"] = fmt.Sprintf("%.2f", s.StandardDeviation())
			fields["speed_max"] = fmt.Sprintf("%.2f", s.Max())
		}
		log.WithFields(fields).Info("final state")
	}
	log.Infof("simulated %d frames in %v", frames, time.Since(start))
	return nil
}

func logFrame(log *logrus.Logger, frame uint64, r pmove.PlayerResult) {
	st := r.Player.State()
	log.WithFields(logrus.Fields{
		"frame":    frame,
		"player":   r.Player.Name(),
		"origin":   st.Origin,
		"velocity": st.Velocity,
		"flags":    fmt.Sprintf("%07b", st.Flags),
		"water":    r.Player.WaterLevel(),
	}).Info("moved")
}

type logHandler struct {
	pmove.NopHandler
	log *logrus.Logger
}

func (h logHandler) HandleTouch(p *player.Player, other movement.Entity) {
	h.log.WithFields(logrus.Fields{"player": p.Name(), "other": other}).Debug("touched")
}

func (h logHandler) HandleUse(p *player.Player, other movement.Entity) {
	h.log.WithFields(logrus.Fields{"player": p.Name(), "other": other}).Info("used")
}

func (h logHandler) HandleDeath(p *player.Player) {
	h.log.WithField("player", p.Name()).Warn("died")
}
