package component

import (
	"time"

	"github.com/bearpark/bear-slice/vmath"
)

// RoundState is the per-round scoreboard
// Once Terminal is set nothing mutates until restart
type RoundState struct {
	ID        string
	Lives     int
	Score     int
	Terminal  bool
	Slices    int // Items sliced, including items auto-cleared by a bonus
	Perfect   int
	Missed    int
	BestScore int // Best score known at round start
}

// LoseLife decrements lives, clamped at zero; returns the new count
func (r *RoundState) LoseLife() int {
	if r.Lives > 0 {
		r.Lives--
	}
	return r.Lives
}

// ComboState tracks the windowed combo and consecutive slice streak
type ComboState struct {
	Count  int // Slices inside the current combo window
	Max    int // Highest Count this round
	Streak int // Consecutive slices without a life lost

	// Quality tracking
	LastSliceAt   time.Duration
	HasSliced     bool
	PerfectStreak int
}

// Reset clears the windowed counter only
func (c *ComboState) Reset() {
	c.Count = 0
}

// BonusState is the bonus ladder bookkeeping for the single tracked object
type BonusState struct {
	ObjectID  ObjectID
	Hits      int
	Points    int
	Phase     int
	LastHitAt time.Duration
	Origin    vmath.Vec2 // Hover anchor the motion phases orbit
	StartedAt time.Duration
}

// Clear returns to the idle state
func (b *BonusState) Clear() {
	*b = BonusState{}
}
