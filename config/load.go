package config

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bearpark/bear-slice/vmath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"lukechampine.com/blake3"
)

// ValidationError lists every offending key of a rejected configuration
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid tuning: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Defaults returns the flat reference configuration
func Defaults() map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f.key] = f.def
	}
	return out
}

// Default returns the validated reference tuning
func Default() *Tuning {
	t, err := FromMap(nil, nil)
	if err != nil {
		// Reference values are constants; failure is a programming error
		panic(err)
	}
	return t
}

// FromMap overlays values on the defaults and validates the result
// A nil variants slice selects the reference table
func FromMap(values map[string]float64, variants []Variant) (*Tuning, error) {
	verr := &ValidationError{}
	merged := Defaults()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := fieldIndex[k]; !ok {
			verr.add("%s: unknown key", k)
			continue
		}
		merged[k] = values[k]
	}

	t := &Tuning{}
	for _, f := range fields {
		v := merged[f.key]
		if problem := f.check(v); problem != "" {
			verr.add("%s=%v: %s", f.key, v, problem)
			continue
		}
		f.apply(t, v)
	}

	if variants == nil {
		variants = DefaultVariants()
	}
	t.Variants = append([]Variant(nil), variants...)
	validateCross(t, verr)

	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return t, nil
}

// Validate re-checks every field as currently set
func (t *Tuning) Validate() error {
	if t == nil {
		return &ValidationError{Problems: []string{"tuning: nil"}}
	}
	verr := &ValidationError{}
	for _, f := range fields {
		v := f.read(t)
		if problem := f.check(v); problem != "" {
			verr.add("%s=%v: %s", f.key, v, problem)
		}
	}
	validateCross(t, verr)
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// validateCross checks constraints spanning several keys
func validateCross(t *Tuning, verr *ValidationError) {
	if t.BonusMaxHits > 20 {
		verr.add("bonusMaxHits=%d: must be <= 20", t.BonusMaxHits)
	}
	if t.MinBombChance > t.MaxBombChance {
		verr.add("minBombChance: must not exceed maxBombChance")
	}
	if t.MinMultiChance > t.MaxMultiChance {
		verr.add("minMultiChance: must not exceed maxMultiChance")
	}

	if len(t.Variants) == 0 {
		verr.add("variants: table is empty")
		return
	}
	seen := make(map[string]bool, len(t.Variants))
	for i, v := range t.Variants {
		if v.Key == "" {
			verr.add("variant[%d]: missing key", i)
		} else if seen[v.Key] {
			verr.add("variant[%d]: duplicate key %q", i, v.Key)
		}
		seen[v.Key] = true
		if v.Weight < 0 || !vmath.IsFinite(v.Weight) {
			verr.add("variant %q: weight must be a finite number >= 0", v.Key)
		}
		if v.Points < 0 {
			verr.add("variant %q: points must be >= 0", v.Key)
		}
	}
	if t.TotalWeight() <= 0 {
		verr.add("variants: total weight must be > 0")
	}
}

// fileFormat is the on-disk layout
//
//	[tuning]
//	lives = 5
//
//	[[variant]]
//	key = "red_mask"
//	points = 10
//	weight = 100
type fileFormat struct {
	Tuning   map[string]any   `toml:"tuning"`
	Variants []map[string]any `toml:"variant"`
}

// Load reads a TOML tuning file over the defaults
func Load(path string) (*Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open tuning file")
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// Decode parses TOML tuning from r over the defaults
func Decode(r io.Reader) (*Tuning, error) {
	var ff fileFormat
	md, err := toml.NewDecoder(r).Decode(&ff)
	if err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, k := range undecoded {
			names[i] = k.String()
		}
		return nil, errors.Errorf("unknown sections: %s", strings.Join(names, ", "))
	}

	values := make(map[string]float64, len(ff.Tuning))
	for k, raw := range ff.Tuning {
		v, ok := toFloat(raw)
		if !ok {
			return nil, errors.Errorf("tuning.%s: expected a number, got %T", k, raw)
		}
		values[k] = v
	}

	var variants []Variant
	for i, raw := range ff.Variants {
		v, err := decodeVariant(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "variant[%d]", i)
		}
		variants = append(variants, v)
	}

	return FromMap(values, variants)
}

func decodeVariant(raw map[string]any) (Variant, error) {
	var v Variant
	for k, val := range raw {
		switch k {
		case "key":
			s, ok := val.(string)
			if !ok {
				return v, errors.New("key must be a string")
			}
			v.Key = s
		case "points", "weight", "tint":
			n, ok := toFloat(val)
			if !ok {
				return v, errors.Errorf("%s must be a number", k)
			}
			switch k {
			case "points":
				v.Points = int(n)
			case "weight":
				v.Weight = n
			case "tint":
				v.Tint = uint32(n)
			}
		default:
			return v, errors.Errorf("unknown field %q", k)
		}
	}
	return v, nil
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Encode writes t in the Load format
func Encode(w io.Writer, t *Tuning) error {
	variants := make([]map[string]any, len(t.Variants))
	for i, v := range t.Variants {
		variants[i] = map[string]any{
			"key":    v.Key,
			"points": v.Points,
			"weight": v.Weight,
			"tint":   int64(v.Tint),
		}
	}
	ff := struct {
		Tuning   map[string]float64 `toml:"tuning"`
		Variants []map[string]any   `toml:"variant"`
	}{Tuning: t.Values(), Variants: variants}

	return errors.Wrap(toml.NewEncoder(w).Encode(ff), "encode toml")
}

// Digest fingerprints the configuration
// Equal tunings always produce equal digests regardless of key order
func (t *Tuning) Digest() string {
	values := t.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := blake3.New(32, nil)
	for _, k := range keys {
		io.WriteString(h, k+"="+strconv.FormatFloat(values[k], 'g', -1, 64)+"\n")
	}
	for _, v := range t.Variants {
		fmt.Fprintf(h, "variant=%s,%d,%s,%d\n", v.Key, v.Points, strconv.FormatFloat(v.Weight, 'g', -1, 64), v.Tint)
	}
	return hex.EncodeToString(h.Sum(nil))
}
