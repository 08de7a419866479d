package stream

import (
	"sort"
)

// StyleProperties are the properties an Element's style accepts.
var StyleProperties = []string{
	"background-color",
	"border",
	"bottom",
	"color",
	"display",
	"font-size",
	"height",
	"left",
	"margin",
	"opacity",
	"padding",
	"right",
	"top",
	"transform",
	"visibility",
	"width",
	"z-index",
}

var knownStyle = func() map[string]bool {
	m := make(map[string]bool, len(StyleProperties))
	for _, p := range StyleProperties {
		m[p] = true
	}
	return m
}()

// Style is an Element's set of presentation properties.
type Style struct {
	values map[string]interface{}
}

func newStyle() *Style {
	return &Style{values: make(map[string]interface{})}
}

// Property returns the value of a known style property.
func (s *Style) Property(name string) (interface{}, bool) {
	if !knownStyle[name] {
		return nil, false
	}
	return s.values[name], true
}

// SetProperty sets a style property. A nil value clears it.
func (s *Style) SetProperty(name string, value interface{}) {
	if !knownStyle[name] {
		return
	}
	if value == nil {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}

// Values copies the properties that are set.
func (s *Style) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Element is a node on the Stage: either a named target or a layer
// created by a behavior inside one.
type Element struct {
	Name string
	Kind string
	Text []string
	Link string

	classes  []string
	style    *Style
	parent   *Element
	children []*Element
}

// NewElement creates a detached element.
func NewElement(kind string) *Element {
	return &Element{Kind: kind, style: newStyle()}
}

// Style returns the element's style.
func (e *Element) Style() *Style {
	return e.style
}

// Attached reports whether the element has a parent.
func (e *Element) Attached() bool {
	return e.parent != nil
}

// Detach removes the element from its parent.
func (e *Element) Detach() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// InsertBefore attaches child under e, before next when next is one of
// e's children, otherwise at the end.
func (e *Element) InsertBefore(child, next *Element) {
	child.Detach()
	child.parent = e
	for i, c := range e.children {
		if c == next {
			e.children = append(e.children, nil)
			copy(e.children[i+1:], e.children[i:])
			e.children[i] = child
			return
		}
	}
	e.children = append(e.children, child)
}

// Children returns the attached children in document order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AddClass adds classes that are not already present.
func (e *Element) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
}

// RemoveClass removes classes.
func (e *Element) RemoveClass(classes ...string) {
	for _, c := range classes {
		for i, existing := range e.classes {
			if existing == c {
				e.classes = append(e.classes[:i], e.classes[i+1:]...)
				break
			}
		}
	}
}

// HasClass reports whether the element has class c.
func (e *Element) HasClass(c string) bool {
	for _, existing := range e.classes {
		if existing == c {
			return true
		}
	}
	return false
}

// Classes returns a copy of the element's classes.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Stage is the presentation surface: a set of named target elements.
type Stage struct {
	targets map[string]*Element
}

// NewStage creates an empty Stage.
func NewStage() *Stage {
	return &Stage{targets: make(map[string]*Element)}
}

// Target returns the named element, creating it on first use.
func (s *Stage) Target(name string) *Element {
	if e, ok := s.targets[name]; ok {
		return e
	}
	e := NewElement("target")
	e.Name = name
	s.targets[name] = e
	return e
}

// Targets lists the target names in sorted order.
func (s *Stage) Targets() []string {
	names := make([]string, 0, len(s.targets))
	for name := range s.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
