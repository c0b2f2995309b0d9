package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines output latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMasterVolume scales every cue
	AudioMasterVolume = 0.6

	// MinCueGap suppresses repeats of the same cue inside this window
	MinCueGap = 40 * time.Millisecond
)

// Slice Cue
const (
	SliceCueDuration = 90 * time.Millisecond
	SliceCueAttack   = 5 * time.Millisecond
	SliceCueRelease  = 60 * time.Millisecond
)

// Perfect Cue
const (
	PerfectCueNoteDuration = 70 * time.Millisecond
	PerfectCueAttack       = 5 * time.Millisecond
	PerfectCueRelease      = 40 * time.Millisecond
)

// Hazard Cue
const (
	HazardCueDuration = 450 * time.Millisecond
	HazardCueAttack   = 5 * time.Millisecond
	HazardCueRelease  = 380 * time.Millisecond
)

// Miss Cue
const (
	MissCueDuration = 160 * time.Millisecond
	MissCueAttack   = 5 * time.Millisecond
	MissCueRelease  = 60 * time.Millisecond
)

// Bonus Cue
const (
	BonusCueDuration = 60 * time.Millisecond
	BonusCueAttack   = 3 * time.Millisecond
	BonusCueRelease  = 40 * time.Millisecond

	// BonusCueStep raises pitch by this ratio per ladder hit
	BonusCueStep = 1.03
)

// Fanfare Cue (mode activation, spectacular slice, round over)
const (
	FanfareNoteDuration = 110 * time.Millisecond
	FanfareAttack       = 5 * time.Millisecond
	FanfareRelease      = 70 * time.Millisecond
)
