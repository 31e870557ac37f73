package player

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const (
	DebugModeMovementSim = iota
	DebugModeTouches
	DebugModeDamage
	debugModeCount
)

// DebugModeList holds the names of every debug mode, indexed by mode.
var DebugModeList = []string{"movement_sim", "touches", "damage"}

// ParseDebugMode returns the debug mode with the name passed.
func ParseDebugMode(name string) (int, bool) {
	for mode, n := range DebugModeList {
		if n == name {
			return mode, true
		}
	}
	return 0, false
}

// Debugger routes per-player diagnostics to the player's logger when the matching mode is enabled.
type Debugger struct {
	log   *logrus.Entry
	modes [debugModeCount]atomic.Bool
}

// NewDebugger returns a Debugger with every mode disabled.
func NewDebugger(log *logrus.Entry) *Debugger {
	return &Debugger{log: log}
}

// Toggle flips the mode passed and returns its new value.
func (d *Debugger) Toggle(mode int) bool {
	for {
		old := d.modes[mode].Load()
		if d.modes[mode].CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Set enables or disables the mode passed.
func (d *Debugger) Set(mode int, enabled bool) {
	d.modes[mode].Store(enabled)
}

// Enabled returns true if the mode passed is enabled.
func (d *Debugger) Enabled(mode int) bool {
	return d.modes[mode].Load()
}

// Notify logs the message if the mode is enabled and cond holds.
func (d *Debugger) Notify(mode int, cond bool, msg string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.WithField("debug", DebugModeList[mode]).Debug(fmt.Sprintf(msg, args...))
}
