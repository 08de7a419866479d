// Package script loads timeline declarations from YAML.
//
//	duration: 30
//	framerate: 25
//	events:
//	  - behavior: style
//	    start: 0
//	    end: "00:05"
//	    target: media
//	    animate:
//	      opacity:
//	        timing: ease-in-out
//	        from: 0
//	        0.5: {value: 0.8, timing: linear}
//	        to: 1
//	      color: "#ff0000"
//
// Every event key other than behavior and animate becomes an option.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/brianchirls/popcorn-boilerplate/keyframe"
	"github.com/brianchirls/popcorn-boilerplate/timeline"
)

// ErrNoBehavior is returned for an event without a behavior name.
var ErrNoBehavior = errors.New("event has no behavior")

// Script is a parsed timeline file.
type Script struct {
	Duration  float64
	Framerate float64
	Events    []Event
}

// Event is one declared interval.
type Event struct {
	Behavior    string
	Declaration timeline.Declaration
}

type rawScript struct {
	Duration  float64         `yaml:"duration"`
	Framerate float64         `yaml:"framerate"`
	Events    []yaml.MapSlice `yaml:"events"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script.
func Parse(data []byte) (*Script, error) {
	var raw rawScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := &Script{
		Duration:  raw.Duration,
		Framerate: raw.Framerate,
		Events:    make([]Event, 0, len(raw.Events)),
	}
	for i, item := range raw.Events {
		e, err := parseEvent(item)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		s.Events = append(s.Events, e)
	}
	return s, nil
}

func parseEvent(item yaml.MapSlice) (Event, error) {
	e := Event{Declaration: timeline.Declaration{Options: make(timeline.Options)}}
	for _, kv := range item {
		key := fmt.Sprint(kv.Key)
		switch key {
		case "behavior":
			e.Behavior = fmt.Sprint(kv.Value)
		case "animate":
			props, ok := kv.Value.(yaml.MapSlice)
			if !ok {
				return e, fmt.Errorf("animate must be a mapping, got %T", kv.Value)
			}
			for _, p := range props {
				e.Declaration.Animate = append(e.Declaration.Animate, timeline.Property{
					Name: fmt.Sprint(p.Key),
					Spec: propertySpec(p.Value),
				})
			}
		default:
			e.Declaration.Options[key] = convert(kv.Value)
		}
	}

	if e.Behavior == "" {
		return e, ErrNoBehavior
	}
	return e, nil
}

func propertySpec(v interface{}) keyframe.PropertySpec {
	m, ok := v.(yaml.MapSlice)
	if !ok {
		return keyframe.Scalar{Value: convert(v)}
	}

	var kfs keyframe.Keyframes
	for _, kv := range m {
		key := fmt.Sprint(kv.Key)
		if key == "timing" {
			kfs.Timing = convert(kv.Value)
			continue
		}

		f := keyframe.Frame{Key: key, Value: convert(kv.Value)}
		if pair, ok := kv.Value.(yaml.MapSlice); ok {
			f.Value = nil
			for _, field := range pair {
				switch fmt.Sprint(field.Key) {
				case "value":
					f.Value = convert(field.Value)
				case "timing":
					f.Timing = convert(field.Value)
				}
			}
		}
		kfs.Frames = append(kfs.Frames, f)
	}
	return kfs
}

// convert turns YAML mappings into string keyed maps.
func convert(v interface{}) interface{} {
	switch v := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]interface{}, len(v))
		for _, kv := range v {
			out[fmt.Sprint(kv.Key)] = convert(kv.Value)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = convert(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = convert(val)
		}
		return out
	}
	return v
}

// NewTimeline creates an empty timeline with the script's duration and
// framerate.
func (s *Script) NewTimeline() *timeline.Timeline {
	tl := timeline.New(s.Duration)
	tl.Framerate = s.Framerate
	return tl
}

// Apply adds every event to tl. It stops at the first event that cannot be
// added.
func (s *Script) Apply(tl *timeline.Timeline) error {
	for i, e := range s.Events {
		if _, err := tl.Add(e.Behavior, e.Declaration); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}
