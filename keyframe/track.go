// Package keyframe interpolates a single property between keyframes.
package keyframe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/brianchirls/popcorn-boilerplate/codec"
	"github.com/brianchirls/popcorn-boilerplate/timing"
)

// Keyframe anchors a value at a normalized position T.
type Keyframe struct {
	T      float64
	Values []float64
	// Timing overrides the track's curve for the segment starting here.
	Timing timing.Func
}

// Track is the ordered keyframes of one animated property.
type Track struct {
	name       string
	keyframes  []Keyframe
	timing     timing.Func
	template   []string
	sideEffect func(value interface{})
}

// Build decodes spec into a Track. Keyframes whose values cannot be parsed,
// whose key is not a position, or whose number count differs from the
// first decoded keyframe are dropped. The template comes from the first
// keyframe that has one, so a bare number can sit beside "100px". Build
// returns false when nothing survives; a track with a single keyframe is
// Static.
func Build(name string, spec Keyframes) (*Track, bool) {
	tr := &Track{
		name:   name,
		timing: timing.Resolve(spec.Timing),
	}

	explicit := make(map[string]bool, len(spec.Frames))
	for _, f := range spec.Frames {
		explicit[strings.TrimSpace(f.Key)] = true
	}

	width := -1
	for _, f := range spec.Frames {
		t, ok := position(f.Key, explicit)
		if !ok {
			continue
		}
		v, ok := codec.Parse(f.Value)
		if !ok {
			continue
		}
		if width < 0 {
			width = len(v.Numbers)
		} else if len(v.Numbers) != width {
			continue
		}
		if tr.template == nil {
			tr.template = v.Template
		}

		kf := Keyframe{T: t, Values: v.Numbers}
		if f.Timing != nil && !sameSpec(f.Timing, spec.Timing) {
			kf.Timing = timing.Resolve(f.Timing)
		}
		tr.keyframes = append(tr.keyframes, kf)
	}

	if len(tr.keyframes) == 0 {
		return nil, false
	}

	sort.SliceStable(tr.keyframes, func(i, j int) bool {
		return tr.keyframes[i].T < tr.keyframes[j].T
	})

	return tr, true
}

func position(key string, explicit map[string]bool) (float64, bool) {
	key = strings.TrimSpace(key)
	switch {
	case key == "from" && !explicit["0"]:
		return 0, true
	case key == "to" && !explicit["1"]:
		return 1, true
	}
	t, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0, false
	}
	return t, true
}

func sameSpec(a, b interface{}) bool {
	as, ok := a.(string)
	if !ok {
		return false
	}
	bs, ok := b.(string)
	return ok && as == bs
}

// Name is the animated property's name.
func (tr *Track) Name() string {
	return tr.name
}

// Static reports whether the track holds a single value and never needs
// per-frame updates.
func (tr *Track) Static() bool {
	return len(tr.keyframes) == 1
}

// Keyframes returns a copy of the sorted keyframes.
func (tr *Track) Keyframes() []Keyframe {
	out := make([]Keyframe, len(tr.keyframes))
	copy(out, tr.keyframes)
	return out
}

// OnUpdate sets a callback that receives every interpolated value.
func (tr *Track) OnUpdate(fn func(value interface{})) {
	tr.sideEffect = fn
}

// Interpolate returns the property's value at fraction. Fractions before
// the first keyframe or after the last clamp to that keyframe's value.
func (tr *Track) Interpolate(fraction float64) interface{} {
	kfs := tr.keyframes
	next := sort.Search(len(kfs), func(i int) bool {
		return kfs[i].T > fraction
	})

	var values []float64
	switch {
	case next == 0:
		values = kfs[0].Values
	case next == len(kfs):
		values = kfs[len(kfs)-1].Values
	default:
		from, to := kfs[next-1], kfs[next]
		curve := from.Timing
		if curve == nil {
			curve = tr.timing
		}
		f := curve((fraction - from.T) / (to.T - from.T))
		values = make([]float64, len(from.Values))
		for i := range values {
			values[i] = from.Values[i] + (to.Values[i]-from.Values[i])*f
		}
	}

	value := codec.Recombine(values, tr.template)
	if tr.sideEffect != nil {
		tr.sideEffect(value)
	}
	return value
}
