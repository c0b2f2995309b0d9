package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDefaultTuning(t *testing.T) {
	tun := Default()

	if tun.Lives != 3 {
		t.Errorf("Lives = %d, want 3", tun.Lives)
	}
	if tun.ComboTimeWindow != time.Second {
		t.Errorf("ComboTimeWindow = %v, want 1s", tun.ComboTimeWindow)
	}
	if tun.BonusMaxHits != 20 || tun.BonusPointsPerHit != 25 {
		t.Errorf("bonus ladder = %d x %d, want 20 x 25", tun.BonusMaxHits, tun.BonusPointsPerHit)
	}
	if len(tun.Variants) != 12 {
		t.Errorf("variants = %d, want 12", len(tun.Variants))
	}
	if tun.HitRadius() != 75 {
		t.Errorf("HitRadius() = %v, want 75", tun.HitRadius())
	}
	if len(tun.Values()) != len(Keys()) {
		t.Errorf("Values() has %d keys, want %d", len(tun.Values()), len(Keys()))
	}
}

func TestFromMapOverrides(t *testing.T) {
	tun, err := FromMap(map[string]float64{
		"lives":           5,
		"comboTimeWindow": 750,
		"gravity":         1200.5,
	}, nil)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if tun.Lives != 5 || tun.ComboTimeWindow != 750*time.Millisecond || tun.Gravity != 1200.5 {
		t.Errorf("overrides not applied: lives=%d combo=%v gravity=%v", tun.Lives, tun.ComboTimeWindow, tun.Gravity)
	}
	if v, _ := tun.Value("lives"); v != 5 {
		t.Errorf("Value(lives) = %v, want 5", v)
	}
}

func TestFromMapRejects(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]float64
		variants []Variant
		wantKey  string
	}{
		{"negative lives", map[string]float64{"lives": -1}, nil, "lives"},
		{"fractional count", map[string]float64{"maxMultiCount": 2.5}, nil, "maxMultiCount"},
		{"probability above one", map[string]float64{"goldenChance": 1.5}, nil, "goldenChance"},
		{"zero interval", map[string]float64{"difficultyInterval": 0}, nil, "difficultyInterval"},
		{"short trail", map[string]float64{"bladeTrailLength": 1}, nil, "bladeTrailLength"},
		{"unknown key", map[string]float64{"livez": 3}, nil, "livez"},
		{"ladder too long", map[string]float64{"bonusMaxHits": 21}, nil, "bonusMaxHits"},
		{"zero weights", nil, []Variant{{Key: "a", Points: 1, Weight: 0}}, "total weight"},
		{"negative weight", nil, []Variant{{Key: "a", Points: 1, Weight: -1}, {Key: "b", Points: 1, Weight: 1}}, "weight"},
		{"empty table", nil, []Variant{}, "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.values, tt.variants)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tt.wantKey) {
				t.Errorf("error %q does not mention %q", verr.Error(), tt.wantKey)
			}
		})
	}
}

func TestFromMapReportsEveryProblem(t *testing.T) {
	_, err := FromMap(map[string]float64{"lives": 0, "goldenChance": 2, "speedCap": -1}, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Problems) != 3 {
		t.Errorf("Problems = %v, want 3 entries", verr.Problems)
	}
}

func TestDecodeTOML(t *testing.T) {
	src := `
[tuning]
lives = 4
perfectMultiplier = 2.5

[[variant]]
key = "plum"
points = 7
weight = 3

[[variant]]
key = "pear"
points = 9
weight = 1.5
tint = 0x00FF00
`
	tun, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tun.Lives != 4 || tun.PerfectMultiplier != 2.5 {
		t.Errorf("tuning not applied: %+v", tun.Values())
	}
	if len(tun.Variants) != 2 || tun.Variants[1].Tint != 0x00FF00 || tun.TotalWeight() != 4.5 {
		t.Errorf("variants = %+v", tun.Variants)
	}
}

func TestDecodeRejectsUnknownSection(t *testing.T) {
	if _, err := Decode(strings.NewReader("[physics]\ngravity = 3\n")); err == nil {
		t.Error("expected error for unknown section")
	}
	if _, err := Decode(strings.NewReader("[tuning]\nlives = \"three\"\n")); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestEncodeRoundTripKeepsDigest(t *testing.T) {
	orig, err := FromMap(map[string]float64{"lives": 7, "gravity": 1000}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, orig); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if orig.Digest() != back.Digest() {
		t.Error("digest changed across encode/decode")
	}
}

func TestDigestSensitivity(t *testing.T) {
	a := Default()
	b := Default()
	if a.Digest() != b.Digest() {
		t.Fatal("equal tunings must share a digest")
	}
	c, _ := FromMap(map[string]float64{"lives": 4}, nil)
	if a.Digest() == c.Digest() {
		t.Error("different tunings must not share a digest")
	}
	if len(a.Digest()) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a.Digest()))
	}
}

func TestValidateSeesFieldEdits(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantKey string
	}{
		{"lives", func(tu *Tuning) { tu.Lives = -2 }, "lives"},
		{"bonus radius", func(tu *Tuning) { tu.BonusHitRadius = -80 }, "bonusHitRadius"},
		{"combo window", func(tu *Tuning) { tu.ComboTimeWindow = 0 }, "comboTimeWindow"},
		{"bonus hits", func(tu *Tuning) { tu.BonusMaxHits = 25 }, "bonusMaxHits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := Default()
			if err := tu.Validate(); err != nil {
				t.Fatalf("default tuning invalid: %v", err)
			}
			tt.mutate(tu)
			err := tu.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tt.wantKey) {
				t.Errorf("error %q does not name %s", verr.Error(), tt.wantKey)
			}
		})
	}
}

func TestValuesFollowFieldEdits(t *testing.T) {
	tu := Default()
	before := tu.Digest()
	tu.Lives = 7
	tu.ComboTimeWindow = 1500 * time.Millisecond

	if v, _ := tu.Value("lives"); v != 7 {
		t.Errorf("Value(lives) = %v, want 7", v)
	}
	if v := tu.Values()["comboTimeWindow"]; v != 1500 {
		t.Errorf("comboTimeWindow = %v, want 1500", v)
	}
	if tu.Digest() == before {
		t.Error("digest ignored field edits")
	}
}
