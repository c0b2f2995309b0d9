package audio

import (
	"github.com/gopxl/beep"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/parameter"
)

// Cue identifies a sound effect
type Cue int

const (
	CueNone Cue = iota
	CueSlice
	CuePerfect
	CueSpectacular
	CueHazard
	CueMiss
	CueBonusHit
	CueBonusEnd
	CueMode
	CueRoundOver
)

var cueNames = [...]string{
	CueNone:        "none",
	CueSlice:       "slice",
	CuePerfect:     "perfect",
	CueSpectacular: "spectacular",
	CueHazard:      "hazard",
	CueMiss:        "miss",
	CueBonusHit:    "bonus-hit",
	CueBonusEnd:    "bonus-end",
	CueMode:        "mode",
	CueRoundOver:   "round-over",
}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// CueFor maps a notification to its cue; step is the ladder position for bonus hits
func CueFor(ev event.GameEvent) (cue Cue, step int) {
	switch ev.Type {
	case event.EventSliceQuality:
		if p, ok := ev.Payload.(*event.SliceQualityPayload); ok && p.Quality == event.QualityPerfect {
			return CuePerfect, 0
		}
		return CueSlice, 0
	case event.EventSpectacularSlice:
		return CueSpectacular, 0
	case event.EventHazardHit:
		return CueHazard, 0
	case event.EventObjectMissed:
		return CueMiss, 0
	case event.EventBonusProgress:
		if p, ok := ev.Payload.(*event.BonusProgressPayload); ok {
			return CueBonusHit, p.HitIndex
		}
		return CueBonusHit, 0
	case event.EventBonusFinished:
		return CueBonusEnd, 0
	case event.EventModeActivated:
		return CueMode, 0
	case event.EventRoundOver:
		return CueRoundOver, 0
	}
	return CueNone, 0
}

// Build renders cue as a finite streamer; nil for CueNone
func Build(cue Cue, step int, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueSlice:
		s = beep.Mix(
			newVolume(tone(0, parameter.SliceCueDuration, parameter.SliceCueAttack, parameter.SliceCueRelease, WaveNoise, rate), 0.5),
			newVolume(tone(660, parameter.SliceCueDuration, parameter.SliceCueAttack, parameter.SliceCueRelease, WaveSine, rate), 0.5),
		)

	case CuePerfect:
		// A5 then E6
		s = beep.Seq(
			tone(880, parameter.PerfectCueNoteDuration, parameter.PerfectCueAttack, parameter.PerfectCueRelease, WaveSquare, rate),
			tone(1318.51, parameter.PerfectCueNoteDuration, parameter.PerfectCueAttack, parameter.PerfectCueRelease, WaveSquare, rate),
		)

	case CueHazard:
		s = beep.Mix(
			newVolume(tone(0, parameter.HazardCueDuration, parameter.HazardCueAttack, parameter.HazardCueRelease, WaveNoise, rate), 0.55),
			newVolume(tone(60, parameter.HazardCueDuration, parameter.HazardCueAttack, parameter.HazardCueRelease, WaveSine, rate), 0.45),
		)

	case CueMiss:
		s = tone(110, parameter.MissCueDuration, parameter.MissCueAttack, parameter.MissCueRelease, WaveSaw, rate)

	case CueBonusHit:
		freq := 523.25
		for i := 1; i < step; i++ {
			freq *= parameter.BonusCueStep
		}
		s = tone(freq, parameter.BonusCueDuration, parameter.BonusCueAttack, parameter.BonusCueRelease, WaveSquare, rate)

	case CueBonusEnd, CueSpectacular, CueMode:
		s = fanfare(rate, 523.25, 659.25, 783.99)

	case CueRoundOver:
		s = fanfare(rate, 392.00, 329.63, 261.63)

	default:
		return nil
	}
	return newVolume(s, volume)
}

// fanfare plays notes back to back
func fanfare(rate beep.SampleRate, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = tone(f, parameter.FanfareNoteDuration, parameter.FanfareAttack, parameter.FanfareRelease, WaveSquare, rate)
	}
	return beep.Seq(notes...)
}
