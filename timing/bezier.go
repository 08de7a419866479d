package timing

import "math"

const (
	bezierIterations = 10
	bezierEpsilon    = 1e-4
)

// CubicBezier returns the CSS cubic-bezier() curve with control points
// (p1, p2) and (p3, p4). NaN parameters fall back to the "ease" curve's
// values; the y coordinates p2 and p4 are clamped to [0, 1].
func CubicBezier(p1, p2, p3, p4 float64) Func {
	if math.IsNaN(p1) {
		p1 = 0.25
	}
	if math.IsNaN(p2) {
		p2 = 0.1
	}
	if math.IsNaN(p3) {
		p3 = 0.25
	}
	if math.IsNaN(p4) {
		p4 = 1
	}
	p2 = math.Min(math.Max(p2, 0), 1)
	p4 = math.Min(math.Max(p4, 0), 1)

	cx := 3 * p1
	bx := 3*(p3-p1) - cx
	ax := 1 - cx - bx
	cy := 3 * p2
	by := 3*(p4-p2) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 {
		return u * (cx + u*(bx+u*ax))
	}
	sampleY := func(u float64) float64 {
		return u * (cy + u*(by+u*ay))
	}
	slopeX := func(u float64) float64 {
		return cx + u*(2*bx+3*ax*u)
	}

	// Newton's method recovers the curve parameter whose x is t.
	solve := func(t float64) float64 {
		u := t
		for i := 0; i < bezierIterations; i++ {
			z := sampleX(u) - t
			if math.Abs(z) < bezierEpsilon {
				break
			}
			d := slopeX(u)
			if d == 0 {
				break
			}
			u -= z / d
		}
		return u
	}

	return func(t float64) float64 {
		return sampleY(solve(t))
	}
}

func registerBezier() {
	register("cubic-bezier", func(args ...float64) Func {
		return CubicBezier(arg(args, 0), arg(args, 1), arg(args, 2), arg(args, 3))
	})
	register("ease", fixed(CubicBezier(0.25, 0.1, 0.25, 1)))
	register("ease-in", fixed(CubicBezier(0.42, 0, 1, 1)))
	register("ease-in-out", fixed(CubicBezier(0.42, 0, 0.58, 1)))
	register("ease-out", fixed(CubicBezier(0, 0, 0.58, 1)))
}
