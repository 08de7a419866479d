package timing

import (
	"math"

	"github.com/fogleman/ease"
)

var nan = math.NaN()

func stepStart(args ...float64) Func {
	n := arg(args, 0)
	if math.IsNaN(n) || n < 1 {
		return Linear
	}
	return func(t float64) float64 {
		return math.Floor(t*n) / n
	}
}

func stepEnd(args ...float64) Func {
	n := arg(args, 0)
	if math.IsNaN(n) || n < 1 {
		return Linear
	}
	return func(t float64) float64 {
		return math.Ceil(t*n) / n
	}
}

// Power returns t^n, accelerating from zero. Negative or NaN n gives Linear.
func Power(n float64) Func {
	if math.IsNaN(n) || n < 0 {
		return Linear
	}
	return func(t float64) float64 {
		return math.Pow(t, n)
	}
}

// PowerOut is the mirror of Power, decelerating into one.
func PowerOut(n float64) Func {
	if math.IsNaN(n) || n < 0 {
		return Linear
	}
	return func(t float64) float64 {
		return 1 - math.Pow(math.Abs(t-1), n)
	}
}

// PowerInOut accelerates through the first half and decelerates through the second.
func PowerInOut(n float64) Func {
	if math.IsNaN(n) || n < 0 {
		return Linear
	}
	return func(t float64) float64 {
		if t < 0.5 {
			return 0.5 * math.Pow(t*2, n)
		}
		return -0.5 * (math.Pow(math.Abs(t*2-2), n) - 2)
	}
}

func registerPower() {
	register("ease-in-power", func(args ...float64) Func { return Power(arg(args, 0)) })
	register("ease-out-power", func(args ...float64) Func { return PowerOut(arg(args, 0)) })
	register("ease-in-out-power", func(args ...float64) Func { return PowerInOut(arg(args, 0)) })
}

func fixed(f Func) Factory {
	return func(args ...float64) Func {
		return f
	}
}

type family struct {
	in, out, inOut Func
}

func registerFamilies() {
	families := map[string]family{
		"quad":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
		"cubic": {ease.InCubic, ease.OutCubic, ease.InOutCubic},
		"quart": {ease.InQuart, ease.OutQuart, ease.InOutQuart},
		"quint": {ease.InQuint, ease.OutQuint, ease.InOutQuint},
		"sine":  {ease.InSine, ease.OutSine, ease.InOutSine},
		"exp":   {ease.InExpo, ease.OutExpo, ease.InOutExpo},
		"circ":  {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	}
	for name, f := range families {
		register("ease-in-"+name, fixed(f.in))
		register("ease-out-"+name, fixed(f.out))
		register("ease-in-out-"+name, fixed(f.inOut))
	}
}

// registerPenner adds the overshooting families from Robert Penner's set.
func registerPenner() {
	register("ease-in-elastic", fixed(ease.InElastic))
	register("ease-out-elastic", fixed(ease.OutElastic))
	register("ease-in-out-elastic", fixed(ease.InOutElastic))
	register("ease-in-back", fixed(ease.InBack))
	register("ease-out-back", fixed(ease.OutBack))
	register("ease-in-out-back", fixed(ease.InOutBack))
}
