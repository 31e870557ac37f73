package pmove

import (
	"fmt"
	"runtime"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pmove/oerror"
	"github.com/oomph-ac/pmove/player"
	"github.com/oomph-ac/pmove/player/movement"
	"github.com/oomph-ac/pmove/settings"
	"github.com/oomph-ac/pmove/worker"
	"github.com/oomph-ac/pmove/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Handler handles events produced while simulating frames. Handlers are called from the goroutine
// running Server.Frame, after every player has moved, in the order players joined.
type Handler interface {
	// HandleTouch is called for every object a player touched while moving.
	HandleTouch(p *player.Player, other movement.Entity)
	// HandleUse is called when a player uses an object.
	HandleUse(p *player.Player, other movement.Entity)
	// HandleDeath is called when a player dies.
	HandleDeath(p *player.Player)
}

// NopHandler implements Handler and does nothing.
type NopHandler struct{}

func (NopHandler) HandleTouch(*player.Player, movement.Entity) {}
func (NopHandler) HandleUse(*player.Player, movement.Entity)   {}
func (NopHandler) HandleDeath(*player.Player)                  {}

var _ Handler = NopHandler{}

// Server simulates the movement of every joined player, one frame at a time.
type Server struct {
	log      *logrus.Logger
	settings settings.Settings
	world    *world.World
	opts     movement.Options
	pool     *worker.Pool

	mu      deadlock.RWMutex
	players *orderedmap.OrderedMap[int32, *player.Player]
	nextID  int32
	frame   uint64
	h       Handler
}

// PlayerResult is the result of a frame for a single player.
type PlayerResult struct {
	Player *player.Player
	Result player.Result
}

// FrameReport holds the results of every player that moved in a frame, in the order they joined.
type FrameReport struct {
	Frame   uint64
	Results []PlayerResult
}

// New returns a server simulating players in w using the settings passed.
func New(log *logrus.Logger, s settings.Settings, w *world.World) (*Server, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &Server{
		log:      log,
		settings: s,
		world:    w,
		opts:     movement.Options{Physics: s.Physics.Movement()},
		pool:     worker.New(runtime.NumCPU()),
		players:  orderedmap.NewOrderedMap[int32, *player.Player](),
		nextID:   1,
		h:        NopHandler{},
	}, nil
}

// Handle sets the handler of the server. Passing nil resets it to a NopHandler.
func (s *Server) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

// World returns the world players move through.
func (s *Server) World() *world.World {
	return s.world
}

// Join spawns a new player at origin.
func (s *Server) Join(name string, origin mgl32.Vec3) (*player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit := s.settings.Server.MaxPlayers; limit > 0 && s.players.Len() >= limit {
		return nil, oerror.New("server is full (%d players)", limit)
	}
	id := s.nextID
	s.nextID++

	log := s.log.WithFields(logrus.Fields{"player": name, "id": id})
	ent := &world.Entity{ID: id, Name: name}
	p := player.New(id, name, ent, log, s.opts, s.world, s.settings.Server.HistorySize)
	p.SetGravity(s.settings.Physics.Gravity)
	p.Spawn(origin, movement.TypeNormal)
	p.Dbg.Set(player.DebugModeMovementSim, s.settings.Debug.MovementSim)

	s.players.Set(id, p)
	log.Info("joined")
	return p, nil
}

// Leave removes the player with the id passed. It returns false if no such player exists.
func (s *Server) Leave(id int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players.Get(id)
	if !ok {
		return false
	}
	s.players.Delete(id)
	p.Log().Info("left")
	return true
}

// Player returns the player with the id passed.
func (s *Server) Player(id int32) (*player.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players.Get(id)
}

// Players returns every player in the order they joined.
func (s *Server) Players() []*player.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*player.Player, 0, s.players.Len())
	for el := s.players.Front(); el != nil; el = el.Next() {
		list = append(list, el.Value)
	}
	return list
}

// Len returns the number of joined players.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players.Len()
}

// Frame runs a frame for every player that has a command in cmds. Players are simulated concurrently
// on the worker pool, each by a single goroutine. Events are handled once every player has moved.
func (s *Server) Frame(cmds map[int32]movement.Command) FrameReport {
	s.mu.Lock()
	s.frame++
	report := FrameReport{Frame: s.frame}
	h := s.h

	var jobs []func()
	for _, id := range s.players.Keys() {
		cmd, ok := cmds[id]
		if !ok {
			continue
		}
		p, _ := s.players.Get(id)
		report.Results = append(report.Results, PlayerResult{Player: p})

		i := len(report.Results) - 1
		jobs = append(jobs, func() {
			report.Results[i].Result = p.Think(cmd)
		})
	}
	s.mu.Unlock()

	s.pool.Run(jobs...)

	for _, r := range report.Results {
		for _, other := range r.Result.Touched {
			h.HandleTouch(r.Player, other)
		}
		if r.Result.Used != nil {
			h.HandleUse(r.Player, r.Result.Used)
		}
		if r.Result.Died {
			h.HandleDeath(r.Player)
		}
	}
	return report
}

// Close stops the worker pool of the server.
func (s *Server) Close() {
	s.pool.Close()
}
