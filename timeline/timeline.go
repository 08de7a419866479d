// Package timeline schedules behaviors against a playback clock. Each
// declared behavior becomes an Interval that starts when the clock enters
// its window, receives a frame on every tick inside it, ends when the
// clock leaves, and animates its declared properties along the way.
//
// A Timeline and everything it owns is driven from a single goroutine.
package timeline

import (
	"errors"
	"fmt"
	"log"

	"github.com/brianchirls/popcorn-boilerplate/keyframe"
)

// ErrUnknownBehavior is returned when adding an interval for a behavior
// that was never registered.
var ErrUnknownBehavior = errors.New("unknown behavior")

// Timeline owns one Registry and the behaviors that can be declared on it.
type Timeline struct {
	// Duration is the media length in seconds; intervals without an end
	// run until it.
	Duration float64
	// Framerate resolves ";ff" frame suffixes in timestamps.
	Framerate float64
	// Logger receives hook failures. It defaults to the standard logger.
	Logger *log.Logger

	registry  *Registry
	behaviors map[string]Factory
	current   float64
}

// New creates a Timeline for media of the given duration.
func New(duration float64) *Timeline {
	tl := new(Timeline)
	tl.Duration = duration
	tl.registry = NewRegistry()
	tl.behaviors = make(map[string]Factory)
	return tl
}

// Register makes a behavior available under name, replacing any previous
// behavior with that name.
func (tl *Timeline) Register(name string, factory Factory) {
	tl.behaviors[name] = factory
}

// Registry returns the timeline's intervals.
func (tl *Timeline) Registry() *Registry {
	return tl.registry
}

// Current is the time of the last tick.
func (tl *Timeline) Current() float64 {
	return tl.current
}

func (tl *Timeline) logger() *log.Logger {
	if tl.Logger != nil {
		return tl.Logger
	}
	return log.Default()
}

// Add declares a new interval for the named behavior. The interval is
// registered before the behavior's factory runs, and set up once before
// Add returns.
func (tl *Timeline) Add(behavior string, decl Declaration) (*Interval, error) {
	factory, ok := tl.behaviors[behavior]
	if !ok {
		return nil, fmt.Errorf("%s: %w", behavior, ErrUnknownBehavior)
	}

	start, end, err := decl.window(tl.Duration, tl.Framerate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", behavior, err)
	}

	iv := &Interval{
		behavior:  behavior,
		start:     start,
		end:       end,
		options:   decl.Options.clone(),
		animate:   make(map[string]keyframe.PropertySpec, len(decl.Animate)),
		observers: decl.Observers,
		logger:    tl.logger(),
	}
	iv.options["start"] = start
	iv.options["end"] = end
	for _, p := range decl.Animate {
		iv.animate[p.Name] = p.Spec
		if v, ok := keyframe.Static(p.Spec); ok {
			iv.options[p.Name] = v
		}
	}

	tl.registry.Insert(iv)

	iv.guard("factory", func() error {
		if hooks := factory(iv.options, iv); hooks != nil {
			iv.hooks = *hooks
		}
		return nil
	})
	iv.bindDeclared(decl.Animate)
	iv.setup()

	return iv, nil
}

// Remove tears down iv.
func (tl *Timeline) Remove(iv *Interval) {
	iv.Teardown()
}

// Tick advances the clock to t. Intervals the clock has left are ended
// first, then intervals containing t are started if needed and framed,
// all in registry order.
func (tl *Timeline) Tick(t float64) {
	tl.current = t

	tl.registry.Each(func(iv *Interval) {
		if iv.state == Active && !iv.Contains(t) {
			iv.Deactivate(t)
		}
	})
	tl.registry.Each(func(iv *Interval) {
		if !iv.Contains(t) {
			return
		}
		if iv.state != Active {
			iv.Activate(t)
		}
		iv.Frame(t)
	})
}

// Destroy tears down every interval.
func (tl *Timeline) Destroy() {
	tl.registry.Each(func(iv *Interval) {
		iv.Teardown()
	})
}
