package timing

import "math"

const (
	defaultGravity = 9.8 * 4
	defaultBounce  = 0.5625
	maxArcs        = 15
	minArcDuration = 0.005
)

// arc is one parabola of a bouncing ball: it starts at t0, ends at t1,
// peaks at x0 with height h below the ground line at 1.
type arc struct {
	t0, t1 float64
	x0     float64
	h      float64
}

// Bounce models a ball dropped from height 1 that loses a fraction of its
// height on every bounce. Non-positive gravity and negative bounce values
// fall back to the defaults.
func Bounce(gravity, rebound float64) Func {
	if math.IsNaN(gravity) || gravity <= 0 {
		gravity = defaultGravity
	}
	if math.IsNaN(rebound) || rebound < 0 {
		rebound = defaultBounce
	}

	arcs := []arc{{t0: 0, t1: math.Sqrt(2 / gravity), x0: 0, h: 1}}
	prev := arcs[0]
	for diff := 1.0; len(arcs) < maxArcs && diff > minArcDuration; {
		h := prev.h * rebound
		next := arc{
			t0: prev.t1,
			t1: prev.t1 + 2*math.Sqrt(2*h/gravity),
			h:  h,
		}
		next.x0 = (next.t0 + next.t1) / 2
		diff = next.t1 - next.t0
		arcs = append(arcs, next)
		prev = next
	}

	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		var a arc
		for _, a = range arcs {
			if t < a.t1 {
				break
			}
		}
		if t > a.t1 {
			return 1
		}
		x := t - a.x0
		return 0.5*gravity*x*x - a.h + 1
	}
}

func bounce(args ...float64) Func {
	return Bounce(arg(args, 0), arg(args, 1))
}
