package timing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A Func maps normalized time to an eased fraction. Results outside [0,1]
// are allowed for curves that overshoot.
type Func func(t float64) float64

// A Factory builds a Func from optional numeric parameters. Factories
// substitute defaults for missing or invalid parameters and never fail.
type Factory func(args ...float64) Func

var specRegex = regexp.MustCompile(`^([A-Za-z\-]+)(\((([\-+]?[0-9]*\.?[0-9]+)(,\s*([\-+]?[0-9]*\.?[0-9]+))*)\))?$`)

var factories = map[string]Factory{}

func register(name string, f Factory) {
	factories[name] = f
}

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

func linear(args ...float64) Func {
	return Linear
}

func init() {
	register("linear", linear)
	register("step-start", stepStart)
	register("step", stepStart)
	register("step-end", stepEnd)
	registerBezier()
	registerPower()
	registerFamilies()
	register("bounce", bounce)
	registerPenner()
}

// Resolve returns the curve described by spec. A Func or plain function is
// returned unchanged; a string of the form "name" or "name(a, b, ...)"
// invokes the named factory with the parsed arguments. Anything else,
// including unknown names and malformed strings, resolves to Linear.
func Resolve(spec interface{}) Func {
	switch s := spec.(type) {
	case Func:
		if s != nil {
			return s
		}
	case func(float64) float64:
		if s != nil {
			return s
		}
	case string:
		return Parse(s)
	}
	return Linear
}

// Parse resolves a textual timing spec such as "ease-in" or
// "cubic-bezier(0.1, 0.7, 1.0, 0.1)".
func Parse(spec string) Func {
	m := specRegex.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return Linear
	}

	var args []float64
	if m[3] != "" {
		for _, a := range strings.Split(m[3], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return Linear
			}
			args = append(args, v)
		}
	}

	return Named(m[1], args...)
}

// Named invokes the factory registered under name.
func Named(name string, args ...float64) Func {
	f, ok := factories[name]
	if !ok {
		return Linear
	}
	fn := f(args...)
	if fn == nil {
		return Linear
	}
	return fn
}

// Names lists the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// arg returns args[i], or NaN when it is missing.
func arg(args []float64, i int) float64 {
	if i < len(args) {
		return args[i]
	}
	return nan
}
