package stream

import (
	"encoding/json"
	"strings"

	"github.com/brianchirls/popcorn-boilerplate/codec"
	"github.com/lucasb-eyer/go-colorful"
)

// colourProperties are summarized as hex in each Node.
var colourProperties = []string{"color", "background-color"}

// Node is the state of one Element within a Frame.
type Node struct {
	Name     string                 `json:"name,omitempty"`
	Kind     string                 `json:"kind"`
	Text     []string               `json:"text,omitempty"`
	Link     string                 `json:"link,omitempty"`
	Classes  []string               `json:"classes,omitempty"`
	Style    map[string]interface{} `json:"style,omitempty"`
	Colours  map[string]string      `json:"colours,omitempty"`
	Children []Node                 `json:"children,omitempty"`
}

// Frame is a snapshot of a Stage at one point on the clock.
type Frame struct {
	Time    float64 `json:"time"`
	Targets []Node  `json:"targets"`
}

// NewFrame captures the stage at time t.
func NewFrame(t float64, stage *Stage) *Frame {
	f := new(Frame)
	f.Time = t
	for _, name := range stage.Targets() {
		f.Targets = append(f.Targets, snapshot(stage.Target(name)))
	}
	return f
}

func snapshot(e *Element) Node {
	n := Node{
		Name:  e.Name,
		Kind:  e.Kind,
		Text:  e.Text,
		Link:  e.Link,
		Style: e.style.Values(),
	}
	if classes := e.Classes(); len(classes) > 0 {
		n.Classes = classes
	}
	if len(n.Style) == 0 {
		n.Style = nil
	}

	for _, p := range colourProperties {
		if c, ok := Swatch(n.Style[p]); ok {
			if n.Colours == nil {
				n.Colours = make(map[string]string)
			}
			n.Colours[p] = c.Hex()
		}
	}

	for _, child := range e.children {
		n.Children = append(n.Children, snapshot(child))
	}
	return n
}

// Swatch converts a colour property value such as "rgb(255, 0, 0)" or
// "#f00" to a colour. Alpha is dropped.
func Swatch(value interface{}) (colorful.Color, bool) {
	s, ok := value.(string)
	if !ok {
		return colorful.Color{}, false
	}
	v, ok := codec.Parse(strings.TrimSpace(s))
	if !ok || len(v.Numbers) < 3 || len(v.Template) == 0 {
		return colorful.Color{}, false
	}
	fn := strings.ToLower(v.Template[0])
	if fn != "rgb(" && fn != "rgba(" {
		return colorful.Color{}, false
	}

	c := colorful.Color{
		R: v.Numbers[0] / 255.0,
		G: v.Numbers[1] / 255.0,
		B: v.Numbers[2] / 255.0,
	}
	return c.Clamped(), true
}

// MarshalBinary encodes the frame as JSON for publishing.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(f)
}
