// Package behaviors holds the behaviors the host player registers on
// every timeline.
package behaviors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brianchirls/popcorn-boilerplate/stream"
	"github.com/brianchirls/popcorn-boilerplate/timeline"
	"github.com/brianchirls/popcorn-boilerplate/util"
)

// DefaultTarget is the stage element used when an event names none.
const DefaultTarget = "media"

var (
	lineBreaks = regexp.MustCompile(`[\n\r]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Register adds every behavior in this package to tl, drawing on stage.
func Register(tl *timeline.Timeline, stage *stream.Stage) {
	tl.Register("style", Style(stage))
	tl.Register("words", Words(stage))
}

func target(stage *stream.Stage, opts timeline.Options) *stream.Element {
	name, _ := opts.String("target")
	if name == "" {
		name = DefaultTarget
	}
	return stage.Target(name)
}

func classes(opts timeline.Options) []string {
	return util.ToStrings(opts["classes"], whitespace)
}

// Style animates the target element's style and adds the "classes" option
// to it until the event is removed.
func Style(stage *stream.Stage) timeline.Factory {
	return func(opts timeline.Options, iv *timeline.Interval) *timeline.Hooks {
		el := target(stage, opts)
		iv.AnimateSurface(el.Style())

		added := classes(opts)
		el.AddClass(added...)

		return &timeline.Hooks{
			Teardown: func(timeline.Options) error {
				el.RemoveClass(added...)
				return nil
			},
		}
	}
}

// Words adds a text layer to the target element, ordered with the layers
// of other events, and marks it "active" while the clock is inside the
// event. Lines in "text" are split on line breaks. The "style" option is
// applied as inline CSS, and the layer's style can be animated.
func Words(stage *stream.Stage) timeline.Factory {
	return func(opts timeline.Options, iv *timeline.Interval) *timeline.Hooks {
		var text []string
		for _, line := range util.ToArray(opts["text"], lineBreaks) {
			text = append(text, fmt.Sprint(line))
		}
		if len(text) == 0 {
			return nil
		}

		layer := stream.NewElement("words")
		layer.Text = text
		layer.Link, _ = opts.String("link")
		layer.AddClass(classes(opts)...)
		if css, ok := opts.String("style"); ok {
			ApplyCSS(layer.Style(), css)
		}

		var next *stream.Element
		if sibling := iv.NextSibling(); sibling != nil {
			next, _ = sibling.Container().(*stream.Element)
		}
		target(stage, opts).InsertBefore(layer, next)
		iv.SetContainer(layer)
		iv.AnimateSurface(layer.Style())

		return &timeline.Hooks{
			Start: func(*timeline.Interval, timeline.Options) error {
				layer.AddClass("active")
				return nil
			},
			End: func(*timeline.Interval, timeline.Options) error {
				layer.RemoveClass("active")
				return nil
			},
		}
	}
}

// ApplyCSS sets the declarations in an inline CSS string such as
// "color: red; opacity: 0.5". Unknown properties are ignored by the style.
func ApplyCSS(s *stream.Style, css string) {
	for _, decl := range strings.Split(css, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if name == "" || value == "" {
			continue
		}
		s.SetProperty(name, value)
	}
}
