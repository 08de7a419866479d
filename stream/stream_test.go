package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/brianchirls/popcorn-boilerplate/keyframe"
	"github.com/brianchirls/popcorn-boilerplate/timeline"
)

type recorder struct {
	frames []*Frame
}

func (r *recorder) Publish(f *Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool   { return true }
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	mqtt.Client
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.qos = qos
	c.payload = payload.([]byte)
	return &fakeToken{err: c.err}
}

func fadeShow(t *testing.T, duration float64) *Show {
	t.Helper()
	stage := NewStage()
	tl := timeline.New(duration)
	tl.Register("fade", func(opts timeline.Options, iv *timeline.Interval) *timeline.Hooks {
		iv.AnimateSurface(stage.Target("media").Style())
		return nil
	})
	_, err := tl.Add("fade", timeline.Declaration{
		Start: 0,
		End:   1,
		Animate: []timeline.Property{
			{Name: "opacity", Spec: keyframe.Keyframes{Frames: []keyframe.Frame{
				{Key: "from", Value: 0},
				{Key: "to", Value: 1},
			}}},
			{Name: "color", Spec: keyframe.Keyframes{Frames: []keyframe.Frame{
				{Key: "from", Value: "#000000"},
				{Key: "to", Value: "#ff0000"},
			}}},
		},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return &Show{Timeline: tl, Stage: stage}
}

func TestStyleAllowList(t *testing.T) {
	s := newStyle()
	if _, ok := s.Property("opacity"); !ok {
		t.Errorf("Expected opacity to be a style property")
	}
	if _, ok := s.Property("volume"); ok {
		t.Errorf("Expected volume not to be a style property")
	}

	s.SetProperty("volume", 1)
	s.SetProperty("opacity", 0.5)
	if fmt.Sprint(s.Values()) != "map[opacity:0.5]" {
		t.Errorf("Expected map[opacity:0.5], got %v", s.Values())
	}

	s.SetProperty("opacity", nil)
	if len(s.Values()) != 0 {
		t.Errorf("Expected nil to clear opacity, got %v", s.Values())
	}
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("target")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")

	parent.InsertBefore(a, nil)
	parent.InsertBefore(c, nil)
	parent.InsertBefore(b, c)

	var kinds []string
	for _, e := range parent.Children() {
		kinds = append(kinds, e.Kind)
	}
	if strings.Join(kinds, "") != "abc" {
		t.Errorf("Expected abc, got %v", kinds)
	}

	b.Detach()
	if b.Attached() {
		t.Errorf("Expected b to be detached")
	}
	if len(parent.Children()) != 2 {
		t.Errorf("Expected 2 children, got %d", len(parent.Children()))
	}
	b.Detach()
}

func TestClasses(t *testing.T) {
	e := NewElement("layer")
	e.AddClass("a", "b", "a", "")
	if fmt.Sprint(e.Classes()) != "[a b]" {
		t.Errorf("Expected [a b], got %v", e.Classes())
	}
	e.RemoveClass("a", "missing")
	if fmt.Sprint(e.Classes()) != "[b]" {
		t.Errorf("Expected [b], got %v", e.Classes())
	}
	if !e.HasClass("b") || e.HasClass("a") {
		t.Errorf("Unexpected classes %v", e.Classes())
	}
}

func TestSwatch(t *testing.T) {
	tests := []struct {
		value interface{}
		hex   string
		ok    bool
	}{
		{"rgb(255, 0, 0)", "#ff0000", true},
		{"rgba(0,128,0,0.5)", "#008000", true},
		{"#00f", "#0000ff", true},
		{"rgb(300, -4, 0)", "#ff0000", true},
		{"10px", "", false},
		{0.5, "", false},
		{nil, "", false},
	}

	for _, test := range tests {
		c, ok := Swatch(test.value)
		if ok != test.ok {
			t.Errorf("Swatch(%v): expected ok %v, got %v", test.value, test.ok, ok)
			continue
		}
		if ok && c.Hex() != test.hex {
			t.Errorf("Swatch(%v): expected %s, got %s", test.value, test.hex, c.Hex())
		}
	}
}

func TestStepPublishesFrame(t *testing.T) {
	rec := new(recorder)
	show := fadeShow(t, 2)
	s := NewStreamer(Config{}, rec, show)

	if err := s.Step(0.5); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if len(rec.frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(rec.frames))
	}

	f := rec.frames[0]
	if f.Time != 0.5 || len(f.Targets) != 1 {
		t.Fatalf("Unexpected frame %+v", f)
	}
	media := f.Targets[0]
	if media.Name != "media" {
		t.Errorf("Expected media, got %s", media.Name)
	}
	if media.Style["opacity"] != 0.5 {
		t.Errorf("Expected opacity 0.5, got %v", media.Style["opacity"])
	}
	if media.Style["color"] != "rgb(128,0,0)" {
		t.Errorf("Expected rgb(128,0,0), got %v", media.Style["color"])
	}
	if media.Colours["color"] != "#800000" {
		t.Errorf("Expected #800000, got %v", media.Colours["color"])
	}

	s.Step(1.5)
	after := rec.frames[1].Targets[0]
	if len(after.Style) != 0 {
		t.Errorf("Expected style restored after end, got %v", after.Style)
	}
}

func TestFrameJSON(t *testing.T) {
	stage := NewStage()
	target := stage.Target("footnotes")
	layer := NewElement("words")
	layer.Text = []string{"hello"}
	layer.AddClass("active")
	target.InsertBefore(layer, nil)

	b, err := NewFrame(1.25, stage).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	var decoded struct {
		Time    float64 `json:"time"`
		Targets []struct {
			Name     string `json:"name"`
			Children []struct {
				Kind    string   `json:"kind"`
				Text    []string `json:"text"`
				Classes []string `json:"classes"`
			} `json:"children"`
		} `json:"targets"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Time != 1.25 || decoded.Targets[0].Name != "footnotes" {
		t.Errorf("Unexpected frame %s", b)
	}
	child := decoded.Targets[0].Children[0]
	if child.Kind != "words" || child.Text[0] != "hello" || child.Classes[0] != "active" {
		t.Errorf("Unexpected child in %s", b)
	}
}

func TestMQTTPublisher(t *testing.T) {
	client := new(fakeClient)
	p := NewMQTTPublisher(client, "popcorn/frames", 1)

	if err := p.Publish(&Frame{Time: 2}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if client.topic != "popcorn/frames" || client.qos != 1 {
		t.Errorf("Unexpected topic %s qos %d", client.topic, client.qos)
	}
	if !strings.Contains(string(client.payload), `"time":2`) {
		t.Errorf("Unexpected payload %s", client.payload)
	}

	client.err = errors.New("broker gone")
	if err := p.Publish(&Frame{}); err == nil {
		t.Errorf("Expected an error from a failed publish")
	}
}

func TestRunStopsAtDuration(t *testing.T) {
	rec := new(recorder)
	var config Config
	config.Playback.FPS = 200
	s := NewStreamer(config, rec, fadeShow(t, 0.05))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rec.frames) == 0 {
		t.Fatalf("Expected frames to be published")
	}
	last := rec.frames[len(rec.frames)-1]
	if last.Time != 0.05 {
		t.Errorf("Expected final frame at 0.05, got %v", last.Time)
	}
}

func TestLoadSwapsShow(t *testing.T) {
	rec := new(recorder)
	var config Config
	config.Playback.FPS = 200
	first := fadeShow(t, 10)
	s := NewStreamer(config, rec, first)

	second := fadeShow(t, 0.02)
	discarded := fadeShow(t, 10)
	s.Load(discarded)
	s.Load(second)

	if discarded.Timeline.Registry().Len() != 0 {
		t.Errorf("Expected the replaced pending show to be destroyed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if first.Timeline.Registry().Len() != 0 {
		t.Errorf("Expected the first show to be destroyed")
	}
}

type failing struct{}

func (failing) Publish(*Frame) error { return errors.New("down") }

func TestPublishers(t *testing.T) {
	a, b := new(recorder), new(recorder)
	ps := Publishers{a, failing{}, b}

	err := ps.Publish(&Frame{Time: 1})
	if err == nil || err.Error() != "down" {
		t.Errorf("Expected the failure to be reported, got %v", err)
	}
	if len(a.frames) != 1 || len(b.frames) != 1 {
		t.Errorf("Expected every publisher to receive the frame")
	}

	if err := (Publishers{a}).Publish(&Frame{}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestLogPublisherSkipsRepeats(t *testing.T) {
	var buf strings.Builder
	p := &LogPublisher{Logger: log.New(&buf, "", 0)}
	stage := NewStage()
	stage.Target("media").Style().SetProperty("opacity", 1)

	p.Publish(NewFrame(0, stage))
	p.Publish(NewFrame(0.1, stage))
	stage.Target("media").Style().SetProperty("opacity", 0)
	p.Publish(NewFrame(0.2, stage))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "0.200 ") {
		t.Errorf("Unexpected line %s", lines[1])
	}
}
