package timeline

import (
	"log"
	"sort"

	"github.com/brianchirls/popcorn-boilerplate/keyframe"
)

// State is an interval's position in its lifecycle.
type State int

const (
	// Idle intervals have not started, or have ended and may start again.
	Idle State = iota
	// Active intervals contain the current time.
	Active
	// Ended intervals were active and the clock has left their window.
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Hooks are a behavior's lifecycle callbacks. Any of them may be nil.
type Hooks struct {
	Setup    func(opts Options) error
	Start    func(iv *Interval, opts Options) error
	Frame    func(iv *Interval, opts Options, t float64) error
	End      func(iv *Interval, opts Options) error
	Teardown func(opts Options) error
}

// A Factory builds a behavior for one declaration. It may call the
// interval's Animate methods and create a container; returning nil is the
// same as returning empty Hooks.
type Factory func(opts Options, iv *Interval) *Hooks

// Surface is a set of named presentation properties, such as an element's
// style, that animated options can be written to.
type Surface interface {
	// Property returns the current value of name. ok is false when the
	// surface has no such property.
	Property(name string) (value interface{}, ok bool)
	SetProperty(name string, value interface{})
}

// Container is a presentation element owned by an interval.
type Container interface {
	Attached() bool
	Detach()
}

// binding ties an option to a surface property so the property can be
// restored when the interval ends.
type binding struct {
	surface   Surface
	name      string
	static    interface{}
	hasStatic bool
	backup    interface{}
}

// Interval is one scheduled behavior instance.
type Interval struct {
	behavior string
	start    float64
	end      float64
	options  Options
	animate  map[string]keyframe.PropertySpec

	tracks   []*keyframe.Track
	bindings []*binding

	hooks     Hooks
	observers Observers
	state     State
	torndown  bool

	registry  *Registry
	container Container
	logger    *log.Logger
}

// Behavior is the name the interval's behavior was registered under.
func (iv *Interval) Behavior() string {
	return iv.behavior
}

// Start is the beginning of the interval in seconds.
func (iv *Interval) Start() float64 {
	return iv.start
}

// End is the end of the interval in seconds.
func (iv *Interval) End() float64 {
	return iv.end
}

// Contains reports whether t falls in [start, end).
func (iv *Interval) Contains(t float64) bool {
	return t >= iv.start && t < iv.end
}

// State reports the lifecycle state.
func (iv *Interval) State() State {
	return iv.state
}

// Options returns the live options, including current animated values.
func (iv *Interval) Options() Options {
	return iv.options
}

// Registry returns the registry holding the interval, or nil once it has
// been torn down.
func (iv *Interval) Registry() *Registry {
	return iv.registry
}

// Container returns the interval's container, if any.
func (iv *Interval) Container() Container {
	return iv.container
}

// SetContainer records the presentation element the interval owns. It is
// detached on teardown.
func (iv *Interval) SetContainer(c Container) {
	iv.container = c
}

// NextSibling returns the first later interval in the registry whose
// container is attached, so a new container can be inserted before it.
func (iv *Interval) NextSibling() *Interval {
	if iv.registry == nil {
		return nil
	}
	return iv.registry.NextSibling(iv)
}

// Fraction maps t to normalized time within the interval.
func (iv *Interval) Fraction(t float64) float64 {
	if iv.end == iv.start {
		return 0
	}
	return (t - iv.start) / (iv.end - iv.start)
}

// Animate binds the named option to its declared keyframes. fn, when not
// nil, receives every interpolated value. Animate reports whether the
// option is animated; a plain or single-keyframe value is stored in the
// options once and false is returned.
func (iv *Interval) Animate(name string, fn func(value interface{})) bool {
	spec, ok := iv.animate[name]
	if !ok {
		return false
	}

	if v, ok := keyframe.Static(spec); ok {
		iv.options[name] = v
		return false
	}

	kfs, ok := spec.(keyframe.Keyframes)
	if !ok {
		return false
	}
	tr, ok := keyframe.Build(name, kfs)
	if !ok {
		return false
	}
	if tr.Static() {
		iv.options[name] = tr.Interpolate(0)
		return false
	}

	tr.OnUpdate(func(value interface{}) {
		iv.options[name] = value
		if fn != nil {
			fn(value)
		}
	})

	for i, existing := range iv.tracks {
		if existing.Name() == name {
			iv.tracks[i] = tr
			return true
		}
	}
	iv.tracks = append(iv.tracks, tr)
	return true
}

// AnimateSurface binds every option the surface recognizes. Animated
// options are written to the surface each frame; the rest are applied
// when the interval starts. The surface's previous values are restored
// when the interval ends. An option is bound to at most one surface.
func (iv *Interval) AnimateSurface(s Surface) bool {
	names := make(map[string]bool, len(iv.options)+len(iv.animate))
	for name := range iv.options {
		names[name] = true
	}
	for name := range iv.animate {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	animated := false
	for _, name := range sorted {
		if _, ok := s.Property(name); !ok {
			continue
		}
		if iv.bound(name) {
			continue
		}

		name := name
		b := &binding{surface: s, name: name}
		if iv.Animate(name, func(value interface{}) { s.SetProperty(name, value) }) {
			animated = true
		} else if v, ok := iv.options[name]; ok {
			b.static, b.hasStatic = v, true
		}
		iv.bindings = append(iv.bindings, b)
	}

	return animated
}

func (iv *Interval) bound(name string) bool {
	for _, b := range iv.bindings {
		if b.name == name {
			return true
		}
	}
	return false
}

// Tracks returns the properties that are updated every frame.
func (iv *Interval) Tracks() []*keyframe.Track {
	out := make([]*keyframe.Track, len(iv.tracks))
	copy(out, iv.tracks)
	return out
}

func (iv *Interval) isAnimated(name string) bool {
	for _, tr := range iv.tracks {
		if tr.Name() == name {
			return true
		}
	}
	return false
}

// bindDeclared animates declared properties the behavior did not bind
// itself, so their values still reach the options.
func (iv *Interval) bindDeclared(props []Property) {
	for _, p := range props {
		if !iv.isAnimated(p.Name) {
			iv.Animate(p.Name, nil)
		}
	}
}

func (iv *Interval) update(fraction float64) {
	for _, tr := range iv.tracks {
		tr.Interpolate(fraction)
	}
}
