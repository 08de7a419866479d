package timeline

import (
	"runtime/debug"
)

// guard runs a user callback, logging a returned error or panic instead of
// letting it reach the clock.
func (iv *Interval) guard(hook string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			iv.logger.Printf("%s: %s panicked: %v\n%s", iv.behavior, hook, r, debug.Stack())
		}
	}()
	if err := fn(); err != nil {
		iv.logger.Printf("%s: %s failed: %v", iv.behavior, hook, err)
	}
}

func (iv *Interval) setup() {
	if fn := iv.hooks.Setup; fn != nil {
		iv.guard("setup", func() error { return fn(iv.options) })
	}
	if fn := iv.observers.OnSetup; fn != nil {
		iv.guard("onSetup", func() error { return fn(iv.options) })
	}
}

// Activate moves the interval into Active: surface values are saved and
// replaced, every track is set to its first keyframe, then the start hook
// and OnStart observer run. Active or torn down intervals are unaffected.
func (iv *Interval) Activate(t float64) {
	if iv.torndown || iv.state == Active {
		return
	}

	for _, b := range iv.bindings {
		b.backup, _ = b.surface.Property(b.name)
		if b.hasStatic {
			b.surface.SetProperty(b.name, b.static)
		}
	}

	iv.state = Active
	iv.update(0)

	if fn := iv.hooks.Start; fn != nil {
		iv.guard("start", func() error { return fn(iv, iv.options) })
	}
	if fn := iv.observers.OnStart; fn != nil {
		iv.guard("onStart", func() error { return fn(iv.options) })
	}
}

// Frame updates every track for time t and runs the frame hook and
// OnFrame observer. It does nothing unless the interval is Active.
func (iv *Interval) Frame(t float64) {
	if iv.torndown || iv.state != Active {
		return
	}

	iv.update(iv.Fraction(t))

	if fn := iv.hooks.Frame; fn != nil {
		iv.guard("frame", func() error { return fn(iv, iv.options, t) })
	}
	if fn := iv.observers.OnFrame; fn != nil {
		iv.guard("onFrame", func() error { return fn(iv.options, t) })
	}
}

// Deactivate moves an Active interval to Ended: tracks are set to their
// last keyframe, saved surface values restored, then the end hook and
// OnEnd observer run.
func (iv *Interval) Deactivate(t float64) {
	if iv.torndown || iv.state != Active {
		return
	}

	iv.update(1)
	for _, b := range iv.bindings {
		b.surface.SetProperty(b.name, b.backup)
	}
	iv.state = Ended

	if fn := iv.hooks.End; fn != nil {
		iv.guard("end", func() error { return fn(iv, iv.options) })
	}
	if fn := iv.observers.OnEnd; fn != nil {
		iv.guard("onEnd", func() error { return fn(iv.options) })
	}
}

// Teardown runs the OnTeardown observer and teardown hook, detaches the
// container and removes the interval from its registry. Calling it again
// does nothing.
func (iv *Interval) Teardown() {
	if iv.torndown {
		return
	}
	iv.torndown = true

	if fn := iv.observers.OnTeardown; fn != nil {
		iv.guard("onTeardown", func() error { return fn(iv.options) })
	}
	if fn := iv.hooks.Teardown; fn != nil {
		iv.guard("teardown", func() error { return fn(iv.options) })
	}

	if c := iv.container; c != nil {
		if c.Attached() {
			c.Detach()
		}
		iv.container = nil
	}

	if r := iv.registry; r != nil {
		r.Remove(iv)
	}
}

// TornDown reports whether Teardown has run.
func (iv *Interval) TornDown() bool {
	return iv.torndown
}
