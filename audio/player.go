// Package audio turns engine notifications into short procedural sound cues.
package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/status"
)

// Config controls the output device and levels
type Config struct {
	SampleRate int
	Volume     float64
	Muted      bool
}

// DefaultConfig returns the reference audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate: parameter.AudioSampleRate,
		Volume:     parameter.AudioMasterVolume,
	}
}

// CuePlayer plays a cue for each relevant notification
// Without a working output device every call is a no-op
type CuePlayer struct {
	mu    sync.Mutex
	cfg   Config
	rate  beep.SampleRate
	mixer *beep.Mixer
	ready bool
	muted atomic.Bool

	last map[Cue]time.Time
	now  func() time.Time

	statPlayed     *atomic.Int64
	statSuppressed *atomic.Int64
}

// NewCuePlayer creates an uninitialised player; reg may be nil
func NewCuePlayer(cfg Config, reg *status.Registry) *CuePlayer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	p := &CuePlayer{
		cfg:            cfg,
		rate:           beep.SampleRate(cfg.SampleRate),
		mixer:          &beep.Mixer{},
		last:           make(map[Cue]time.Time),
		now:            time.Now,
		statPlayed:     reg.Ints.Get("audio.cues"),
		statSuppressed: reg.Ints.Get("audio.suppressed"),
	}
	p.muted.Store(cfg.Muted)
	return p
}

// Init opens the speaker; on failure the player stays silent
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("audio: speaker unavailable: %v", err)
		return errors.Wrap(err, "audio: init speaker")
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Ready reports whether an output device is attached
func (p *CuePlayer) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// EventTypes lists the notifications that produce cues
func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSliceQuality,
		event.EventSpectacularSlice,
		event.EventHazardHit,
		event.EventObjectMissed,
		event.EventBonusProgress,
		event.EventBonusFinished,
		event.EventModeActivated,
		event.EventRoundOver,
	}
}

// HandleEvent plays the cue for ev
func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	cue, step := CueFor(ev)
	p.Play(cue, step)
}

// Play queues cue on the mixer; returns false when nothing was queued
func (p *CuePlayer) Play(cue Cue, step int) bool {
	if cue == CueNone || p.muted.Load() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return false
	}

	now := p.now()
	// Ladder hits are distinct notes and never collapse
	if cue != CueBonusHit {
		if prev, ok := p.last[cue]; ok && now.Sub(prev) < parameter.MinCueGap {
			p.statSuppressed.Add(1)
			return false
		}
	}
	p.last[cue] = now

	s := Build(cue, step, p.rate, p.cfg.Volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.statPlayed.Add(1)
	return true
}

// SetMuted silences or restores cues
func (p *CuePlayer) SetMuted(m bool) { p.muted.Store(m) }

// ToggleMute flips the mute state and returns the new value
func (p *CuePlayer) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports the mute state
func (p *CuePlayer) Muted() bool { return p.muted.Load() }

// Close drops queued cues and releases the device
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.ready = false
}
