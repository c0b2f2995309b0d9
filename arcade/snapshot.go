package arcade

import (
	"time"

	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/system"
)

// Snapshot is a read-only copy of engine state for renderers and tests
type Snapshot struct {
	Now           time.Duration
	Round         component.RoundState
	Combo         component.ComboState
	Bonus         component.BonusState
	BonusState    string
	BonusMotion   string
	BonusLeft     time.Duration // Until the ladder finalizes without another hit
	Objects       []component.Object
	Trail         []component.Sample
	Modes         map[string]component.Mode
	Level         system.Level
	SpawnInterval time.Duration
	Paused        bool
	BestScore     int
}

// Snapshot copies the current state
func (e *Engine) Snapshot() Snapshot {
	w := e.world
	s := Snapshot{
		Now:           w.Now(),
		Round:         w.Round,
		Combo:         w.Combo,
		Bonus:         w.Bonus,
		BonusState:    e.bonus.StateName(),
		BonusLeft:     e.bonus.WindowLeft(),
		Objects:       w.Objects.Snapshot(),
		Trail:         w.Trail.Samples(),
		Modes:         w.Modes.Snapshot(),
		Level:         e.difficulty.Level(),
		SpawnInterval: e.spawner.Interval(),
		Paused:        e.paused,
		BestScore:     e.best,
	}
	if m := e.bonus.Motion(); m != nil {
		s.BonusMotion = m.Kind.String()
	}
	return s
}
