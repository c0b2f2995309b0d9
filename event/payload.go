package event

import "time"

// ScoreChangedPayload carries the running score
type ScoreChangedPayload struct {
	Score int `json:"score" msgpack:"score"`
	Delta int `json:"delta" msgpack:"delta"`
}

// LivesChangedPayload carries the remaining lives
type LivesChangedPayload struct {
	Lives int `json:"lives" msgpack:"lives"`
}

// ComboChangedPayload carries the combo counter and its round maximum
type ComboChangedPayload struct {
	Count int `json:"count" msgpack:"count"`
	Max   int `json:"max" msgpack:"max"`
}

// StreakChangedPayload carries the consecutive slice streak
type StreakChangedPayload struct {
	Streak int `json:"streak" msgpack:"streak"`
}

// SliceQuality classifies a slice
type SliceQuality string

const (
	QualityNormal  SliceQuality = "normal"
	QualityPerfect SliceQuality = "perfect"
)

// SliceQualityPayload describes one scored object
type SliceQualityPayload struct {
	ObjectID uint64       `json:"object_id" msgpack:"object_id"`
	Quality  SliceQuality `json:"quality" msgpack:"quality"`
	Points   int          `json:"points" msgpack:"points"`
	X        float64      `json:"x" msgpack:"x"`
	Y        float64      `json:"y" msgpack:"y"`
}

// SpectacularPayload describes a large batch
type SpectacularPayload struct {
	Count int `json:"count" msgpack:"count"`
	Bonus int `json:"bonus" msgpack:"bonus"`
}

// NearMissPayload describes a close pass
type NearMissPayload struct {
	ObjectID uint64  `json:"object_id" msgpack:"object_id"`
	Distance float64 `json:"distance" msgpack:"distance"`
}

// RoundStartedPayload describes a fresh round
type RoundStartedPayload struct {
	RoundID   string `json:"round_id" msgpack:"round_id"`
	Lives     int    `json:"lives" msgpack:"lives"`
	BestScore int    `json:"best_score" msgpack:"best_score"`
}

// RoundOverPayload is the terminal round result
type RoundOverPayload struct {
	RoundID    string `json:"round_id" msgpack:"round_id"`
	FinalScore int    `json:"final_score" msgpack:"final_score"`
	IsNewBest  bool   `json:"is_new_best" msgpack:"is_new_best"`
}

// ObjectPayload identifies a spawnable object
type ObjectPayload struct {
	ObjectID uint64  `json:"object_id" msgpack:"object_id"`
	Kind     string  `json:"kind" msgpack:"kind"`
	Variant  string  `json:"variant,omitempty" msgpack:"variant"`
	Pattern  string  `json:"pattern,omitempty" msgpack:"pattern"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
}

// BonusProgressPayload reports a ladder hit
type BonusProgressPayload struct {
	HitIndex int `json:"hit_index" msgpack:"hit_index"`
	Points   int `json:"points" msgpack:"points"`
	MaxHits  int `json:"max_hits" msgpack:"max_hits"`
}

// BonusFinishedPayload reports the ladder outcome
type BonusFinishedPayload struct {
	Hits     int  `json:"hits" msgpack:"hits"`
	Points   int  `json:"points" msgpack:"points"`
	Complete bool `json:"complete" msgpack:"complete"`
}

// AutoSlicePayload reports objects neutralized on bonus entry
type AutoSlicePayload struct {
	Cleared int `json:"cleared" msgpack:"cleared"`
	Removed int `json:"removed" msgpack:"removed"`
}

// ModePayload names a timed mode
type ModePayload struct {
	Name     string        `json:"name" msgpack:"name"`
	Duration time.Duration `json:"duration" msgpack:"duration"`
}

// DifficultyPayload carries a new level
type DifficultyPayload struct {
	Level int `json:"level" msgpack:"level"`
}
