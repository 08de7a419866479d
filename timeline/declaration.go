package timeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/brianchirls/popcorn-boilerplate/keyframe"
	"github.com/brianchirls/popcorn-boilerplate/util"
)

// Options holds an interval's option values. Animated properties are
// written back here on every update.
type Options map[string]interface{}

// Float returns the named option as a float64.
func (o Options) Float(name string) (float64, bool) {
	return toFloat(o[name])
}

// String returns the named option when it is a string.
func (o Options) String(name string) (string, bool) {
	s, ok := o[name].(string)
	return s, ok
}

func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Property names an animated property and its declaration.
type Property struct {
	Name string
	Spec keyframe.PropertySpec
}

// Observers are optional callbacks run after the behavior's own hooks.
type Observers struct {
	OnSetup    func(opts Options) error
	OnStart    func(opts Options) error
	OnFrame    func(opts Options, t float64) error
	OnEnd      func(opts Options) error
	OnTeardown func(opts Options) error
}

// Declaration describes one interval to add to a timeline.
type Declaration struct {
	// Start and End are seconds or timestamps such as "01:02.5". When nil
	// the "start"/"in" and "end"/"out" options are used; End finally
	// defaults to the timeline duration.
	Start interface{}
	End   interface{}

	Options   Options
	Animate   []Property
	Observers Observers
}

func (d Declaration) window(duration, framerate float64) (float64, float64, error) {
	start, err := firstTime(framerate, d.Start, d.Options["start"], d.Options["in"])
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	if math.IsNaN(start) {
		start = 0
	}

	end, err := firstTime(framerate, d.End, d.Options["end"], d.Options["out"])
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	if math.IsNaN(end) {
		end = duration
		if end <= 0 {
			end = math.MaxFloat64
		}
	}
	if end < start {
		end = start
	}

	return start, end, nil
}

// firstTime converts the first non-nil candidate to seconds. It returns
// NaN when every candidate is nil.
func firstTime(framerate float64, candidates ...interface{}) (float64, error) {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if s, ok := c.(string); ok {
			return util.ToSeconds(s, framerate)
		}
		if f, ok := toFloat(c); ok {
			return f, nil
		}
		return 0, fmt.Errorf("%v: %w", c, util.ErrTimecode)
	}
	return math.NaN(), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
