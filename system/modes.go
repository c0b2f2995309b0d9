package system

import (
	"time"

	"github.com/bearpark/bear-slice/engine"
	"github.com/bearpark/bear-slice/event"
)

// ModeController switches timed modes and owns their expiry timers
type ModeController struct {
	world  *World
	expiry map[string]engine.TimerID

	// OnChange runs after any mode switches on or off
	OnChange func()
}

// NewModeController creates a controller over the world's mode set
func NewModeController(w *World) *ModeController {
	return &ModeController{world: w, expiry: make(map[string]engine.TimerID)}
}

// Activate switches name on for d; re-activation restarts the countdown
func (m *ModeController) Activate(name string, d time.Duration, multiplier, spawnFactor float64) {
	w := m.world
	if w.Round.Terminal {
		return
	}
	if id, ok := m.expiry[name]; ok {
		w.Timers.Cancel(id)
	}
	w.Modes.Activate(name, w.Now(), d, multiplier, spawnFactor)
	gen := w.Timers.Generation()
	m.expiry[name] = w.Timers.After(d, func() {
		if gen != w.Timers.Generation() {
			return
		}
		m.expire(name)
	})
	w.Stats.ModesActive.Store(int64(len(w.Modes.Names())))
	w.Emit(event.EventModeActivated, &event.ModePayload{Name: name, Duration: d})
	if m.OnChange != nil {
		m.OnChange()
	}
}

func (m *ModeController) expire(name string) {
	w := m.world
	delete(m.expiry, name)
	mode, _ := w.Modes.Get(name)
	if !w.Modes.Deactivate(name) {
		return
	}
	w.Stats.ModesActive.Store(int64(len(w.Modes.Names())))
	w.Emit(event.EventModeDeactivated, &event.ModePayload{Name: name, Duration: mode.Duration})
	if m.OnChange != nil {
		m.OnChange()
	}
}

// Active reports whether name is on
func (m *ModeController) Active(name string) bool {
	return m.world.Modes.Active(name)
}

// Reset drops every mode and timer without notifications
func (m *ModeController) Reset() {
	for name, id := range m.expiry {
		m.world.Timers.Cancel(id)
		delete(m.expiry, name)
	}
	m.world.Modes.Clear()
	m.world.Stats.ModesActive.Store(0)
}
