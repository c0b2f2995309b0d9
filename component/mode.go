package component

import (
	"sort"
	"time"
)

// Timed mode names
const (
	ModeFrenzy = "frenzy"
	ModeOnFire = "on-fire"
	ModeBurst  = "burst"
	ModeChaos  = "chaos"
)

// modeOrder fixes fold order so products are reproducible
var modeOrder = []string{ModeFrenzy, ModeOnFire, ModeBurst, ModeChaos}

// Mode is one timed modifier
type Mode struct {
	Active      bool
	ExpiresAt   time.Duration
	Duration    time.Duration
	Multiplier  float64 // Applied to slice points
	SpawnFactor float64 // Applied to the spawn interval
}

// ModeSet maps mode name to its timed state
type ModeSet struct {
	modes map[string]Mode
}

// NewModeSet creates an empty set
func NewModeSet() *ModeSet {
	return &ModeSet{modes: make(map[string]Mode)}
}

// Activate switches name on until now+d
func (m *ModeSet) Activate(name string, now, d time.Duration, multiplier, spawnFactor float64) {
	m.modes[name] = Mode{
		Active:      true,
		ExpiresAt:   now + d,
		Duration:    d,
		Multiplier:  multiplier,
		SpawnFactor: spawnFactor,
	}
}

// Deactivate switches name off; returns false if it was not active
func (m *ModeSet) Deactivate(name string) bool {
	mode, ok := m.modes[name]
	if !ok || !mode.Active {
		return false
	}
	delete(m.modes, name)
	return true
}

// Active reports whether name is on
func (m *ModeSet) Active(name string) bool {
	return m.modes[name].Active
}

// Get returns the state of name
func (m *ModeSet) Get(name string) (Mode, bool) {
	mode, ok := m.modes[name]
	return mode, ok
}

// Names returns active mode names in fold order
func (m *ModeSet) Names() []string {
	names := make([]string, 0, len(m.modes))
	for _, n := range modeOrder {
		if m.modes[n].Active {
			names = append(names, n)
		}
	}
	var extra []string
	for n, mode := range m.modes {
		if mode.Active && !isKnownMode(n) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Multiplier folds every active point multiplier
func (m *ModeSet) Multiplier() float64 {
	mult := 1.0
	for _, n := range m.Names() {
		mult *= m.modes[n].Multiplier
	}
	return mult
}

// SpawnFactor folds every active spawn interval factor
func (m *ModeSet) SpawnFactor() float64 {
	f := 1.0
	for _, n := range m.Names() {
		f *= m.modes[n].SpawnFactor
	}
	return f
}

// Clear switches every mode off
func (m *ModeSet) Clear() {
	clear(m.modes)
}

// Snapshot returns a copy keyed by name
func (m *ModeSet) Snapshot() map[string]Mode {
	out := make(map[string]Mode, len(m.modes))
	for k, v := range m.modes {
		out[k] = v
	}
	return out
}

func isKnownMode(name string) bool {
	for _, n := range modeOrder {
		if n == name {
			return true
		}
	}
	return false
}
