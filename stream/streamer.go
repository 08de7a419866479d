package stream

import (
	"context"
	"log"
	"time"

	"github.com/brianchirls/popcorn-boilerplate/timeline"
)

// Show is a timeline together with the stage its behaviors draw on.
type Show struct {
	Timeline *timeline.Timeline
	Stage    *Stage
}

// Streamer drives a Show from a wall clock and publishes a Frame on every
// tick.
type Streamer struct {
	publisher Publisher
	fps       float64
	loop      bool
	show      *Show
	reload    chan *Show
	logger    *log.Logger
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, publisher Publisher, show *Show) *Streamer {
	config.Defaults()

	s := new(Streamer)
	s.publisher = publisher
	s.fps = config.Playback.FPS
	s.loop = config.Playback.Loop
	s.show = show
	s.reload = make(chan *Show, 1)
	s.logger = log.Default()
	return s
}

// SetLogger replaces the logger used for publish failures.
func (s *Streamer) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Load queues a replacement show. It is swapped in before the next tick
// and the old show is destroyed. A show that was queued and never swapped
// in is destroyed too.
func (s *Streamer) Load(show *Show) {
	for {
		select {
		case s.reload <- show:
			return
		default:
		}
		select {
		case pending := <-s.reload:
			pending.Timeline.Destroy()
		default:
		}
	}
}

// Step ticks the show's timeline to t and publishes the resulting frame.
func (s *Streamer) Step(t float64) error {
	s.show.Timeline.Tick(t)
	return s.publisher.Publish(NewFrame(t, s.show.Stage))
}

func (s *Streamer) swap(show *Show) {
	t := s.show.Timeline.Current()
	s.show.Timeline.Destroy()
	s.show = show
	s.logger.Printf("Reloaded show at %.3fs with %d intervals", t, show.Timeline.Registry().Len())
}

// Run steps the show until ctx is done, or until the end of the timeline
// when not looping.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(time.Duration(float64(time.Second) / s.fps))
	defer publishTimer.Stop()
	defer func() { s.show.Timeline.Destroy() }()

	started := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case show := <-s.reload:
			s.swap(show)
		case now := <-publishTimer.C:
			t := now.Sub(started).Seconds()
			duration := s.show.Timeline.Duration
			finished := false
			if duration > 0 && t >= duration {
				if s.loop {
					started = now
					t = 0
				} else {
					t = duration
					finished = true
				}
			}

			if err := s.Step(t); err != nil {
				s.logger.Printf("Frame %.3f: %v", t, err)
			}
			if finished {
				return nil
			}
		}
	}
}
