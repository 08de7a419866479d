package keyframe

// PropertySpec describes how a property is declared: either a plain value
// or a set of keyframes.
type PropertySpec interface {
	isPropertySpec()
}

// Scalar is a property with a single fixed value.
type Scalar struct {
	Value interface{}
}

// Keyframes is a property animated across an interval. Frames are kept in
// declaration order so equal positions sort stably.
type Keyframes struct {
	Frames []Frame
	// Timing is the default curve for every segment: a timing.Func or a
	// spec string such as "ease-in-out".
	Timing interface{}
}

// Frame is one declared keyframe. Key is "from", "to" or a position such
// as "0.25". Timing, when set, overrides the default curve for the
// segment that starts at this frame.
type Frame struct {
	Key    string
	Value  interface{}
	Timing interface{}
}

func (Scalar) isPropertySpec()    {}
func (Keyframes) isPropertySpec() {}

// Static returns the spec's value if it is a Scalar.
func Static(spec PropertySpec) (interface{}, bool) {
	s, ok := spec.(Scalar)
	if !ok {
		return nil, false
	}
	return s.Value, true
}
