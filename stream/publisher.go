package stream

import (
	"errors"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends encoded frames somewhere.
type Publisher interface {
	Publish(f *Frame) error
}

// Publishers sends every frame to each of its publishers.
type Publishers []Publisher

// Publish calls every publisher and joins their errors.
func (ps Publishers) Publish(f *Frame) error {
	var errs []error
	for _, p := range ps {
		if err := p.Publish(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MQTTPublisher publishes frames to a broker topic.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// NewMQTTPublisher creates a Publisher on an already configured client.
func NewMQTTPublisher(client mqtt.Client, topic string, qos byte) *MQTTPublisher {
	p := new(MQTTPublisher)
	p.client = client
	p.topic = topic
	p.qos = qos
	return p
}

// Publish sends f and waits for the broker to accept it.
func (p *MQTTPublisher) Publish(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, p.qos, false, b)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}

// LogPublisher writes frames to a logger. It is used when no broker is
// configured.
type LogPublisher struct {
	Logger *log.Logger
	last   string
}

// Publish logs f when it differs from the previous frame, ignoring time.
func (p *LogPublisher) Publish(f *Frame) error {
	b, err := (&Frame{Targets: f.Targets}).MarshalBinary()
	if err != nil {
		return err
	}
	if string(b) == p.last {
		return nil
	}
	p.last = string(b)

	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("%.3f %s", f.Time, b)
	return nil
}
