package event

import "sync"

var (
	registryOnce sync.Once
	nameToType   = make(map[string]EventType)
	typeToName   = make(map[EventType]string)
)

// registerType maps a wire name to an EventType
func registerType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

func initRegistry() {
	registryOnce.Do(func() {
		registerType("tick", EventTick)

		registerType("score-changed", EventScoreChanged)
		registerType("lives-changed", EventLivesChanged)
		registerType("combo-changed", EventComboChanged)
		registerType("streak-changed", EventStreakChanged)
		registerType("slice-quality", EventSliceQuality)
		registerType("spectacular-slice", EventSpectacularSlice)
		registerType("near-miss", EventNearMiss)

		registerType("round-started", EventRoundStarted)
		registerType("round-over", EventRoundOver)
		registerType("object-spawned", EventObjectSpawned)
		registerType("object-missed", EventObjectMissed)
		registerType("hazard-hit", EventHazardHit)
		registerType("paused", EventPaused)
		registerType("resumed", EventResumed)

		registerType("bonus-started", EventBonusStarted)
		registerType("bonus-progress", EventBonusProgress)
		registerType("bonus-finished", EventBonusFinished)
		registerType("auto-slice", EventAutoSlice)

		registerType("mode-activated", EventModeActivated)
		registerType("mode-deactivated", EventModeDeactivated)
		registerType("difficulty-increased", EventDifficultyIncreased)
		registerType("time-difficulty-increased", EventTimeDifficultyIncreased)
	})
}

// String returns the wire name of the event type
func (t EventType) String() string {
	initRegistry()
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "unknown"
}

// LookupType returns the EventType for a wire name
func LookupType(name string) (EventType, bool) {
	initRegistry()
	et, ok := nameToType[name]
	return et, ok
}
