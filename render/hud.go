package render

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
)

// Banner is a transient HUD message
type Banner struct {
	Text  string
	Until time.Duration // Game time; zero keeps it until replaced
}

// HUD collects the notifications the screen reports as banners
type HUD struct {
	mu       sync.Mutex
	banner   Banner
	over     bool
	nearMiss int
}

// NewHUD creates an empty HUD
func NewHUD() *HUD {
	return &HUD{}
}

// EventTypes lists the notifications shown as banners
func (h *HUD) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSliceQuality,
		event.EventSpectacularSlice,
		event.EventNearMiss,
		event.EventHazardHit,
		event.EventBonusStarted,
		event.EventBonusFinished,
		event.EventModeActivated,
		event.EventDifficultyIncreased,
		event.EventTimeDifficultyIncreased,
		event.EventRoundStarted,
		event.EventRoundOver,
	}
}

// HandleEvent updates the banner from ev
func (h *HUD) HandleEvent(ev event.GameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch p := ev.Payload.(type) {
	case *event.SliceQualityPayload:
		if p.Quality == event.QualityPerfect {
			h.show(ev.At, fmt.Sprintf("PERFECT +%d", p.Points))
		}
	case *event.SpectacularPayload:
		h.show(ev.At, fmt.Sprintf("SPECTACULAR x%d  +%d", p.Count, p.Bonus))
	case *event.NearMissPayload:
		h.nearMiss++
		if h.banner.Until <= ev.At {
			h.banner = Banner{Text: "close!", Until: ev.At + parameter.NearMissBannerDuration}
		}
	case *event.BonusFinishedPayload:
		h.show(ev.At, fmt.Sprintf("BONUS %d HITS  +%d", p.Hits, p.Points))
	case *event.ModePayload:
		h.show(ev.At, strings.ToUpper(p.Name)+"!")
	case *event.DifficultyPayload:
		if ev.Type == event.EventTimeDifficultyIncreased {
			h.show(ev.At, fmt.Sprintf("TIME LEVEL %d", p.Level))
		} else {
			h.show(ev.At, fmt.Sprintf("LEVEL %d", p.Level))
		}
	case *event.RoundStartedPayload:
		h.banner, h.over, h.nearMiss = Banner{}, false, 0
	case *event.RoundOverPayload:
		h.over = true
		text := fmt.Sprintf("FINAL %d", p.FinalScore)
		if p.IsNewBest {
			text += "  NEW BEST"
		}
		h.banner = Banner{Text: text}
	case *event.ObjectPayload:
		switch ev.Type {
		case event.EventHazardHit:
			h.show(ev.At, "BOOM")
		case event.EventBonusStarted:
			h.show(ev.At, "BONUS! keep slicing")
		}
	}
}

func (h *HUD) show(at time.Duration, text string) {
	if h.over {
		return
	}
	h.banner = Banner{Text: text, Until: at + parameter.BannerDuration}
}

// Banner returns the message visible at game time now
func (h *HUD) Banner(now time.Duration) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.banner.Text == "" || (h.banner.Until != 0 && now >= h.banner.Until) {
		return "", false
	}
	return h.banner.Text, true
}

// NearMisses returns the close calls seen this round
func (h *HUD) NearMisses() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.nearMiss
}
