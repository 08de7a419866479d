package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gopkg.in/yaml.v2"

	"github.com/brianchirls/popcorn-boilerplate/api"
	"github.com/brianchirls/popcorn-boilerplate/behaviors"
	"github.com/brianchirls/popcorn-boilerplate/script"
	"github.com/brianchirls/popcorn-boilerplate/stream"
)

type app struct {
	Config   stream.Config
	Client   mqtt.Client
	Server   *api.Server
	Streamer *stream.Streamer
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, using defaults", configPath)
		a.Config.Defaults()
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&a.Config); err != nil {
		return err
	}
	a.Config.Defaults()
	return nil
}

func loadShow(path string) (*stream.Show, error) {
	sc, err := script.Load(path)
	if err != nil {
		return nil, err
	}

	tl := sc.NewTimeline()
	stage := stream.NewStage()
	behaviors.Register(tl, stage)
	if err := sc.Apply(tl); err != nil {
		tl.Destroy()
		return nil, err
	}
	return &stream.Show{Timeline: tl, Stage: stage}, nil
}

func (a *app) publishers() stream.Publishers {
	var ps stream.Publishers
	if a.Config.Mqtt.URL != "" {
		options := mqtt.NewClientOptions().
			AddBroker(a.Config.Mqtt.URL).
			SetClientID(a.Config.Mqtt.ClientID).
			SetUsername(a.Config.Mqtt.Username).
			SetPassword(a.Config.Mqtt.Password).
			SetKeepAlive(30 * time.Second).
			SetPingTimeout(5 * time.Second).
			SetOnConnectHandler(func(mqtt.Client) { log.Println("Connected") })
		a.Client = mqtt.NewClient(options)
		ps = append(ps, stream.NewMQTTPublisher(a.Client, a.Config.Mqtt.Topics.Frames, a.Config.Mqtt.QoS))
	}
	if a.Config.API.Addr != "" {
		a.Server = api.NewServer(a.Config.API.Static)
		ps = append(ps, a.Server)
	}
	if len(ps) == 0 {
		ps = append(ps, new(stream.LogPublisher))
	}
	return ps
}

func (a *app) watch(ctx context.Context, path string) {
	w, err := script.NewWatcher(path)
	if err != nil {
		log.Printf("Not watching %s: %v", path, err)
		return
	}
	go func() {
		<-ctx.Done()
		w.Close()
	}()

	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			show, err := loadShow(path)
			if err != nil {
				log.Printf("Reload failed: %v", err)
				continue
			}
			a.Streamer.Load(show)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

func (a *app) run(ctx context.Context) error {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		defer a.Client.Disconnect(250)
	}
	if a.Server != nil {
		go func() {
			if err := a.Server.Serve(ctx, a.Config.API.Addr); err != nil {
				log.Printf("API server stopped: %v", err)
			}
		}()
	}
	if a.Config.Playback.Watch {
		go a.watch(ctx, a.Config.Playback.Script)
	}

	err := a.Streamer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	scriptPath := flag.String("script", "", "YAML timeline script, overriding the config.")
	flag.Parse()

	// Read the config
	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		log.Fatalf("Config: %v", err)
	}
	if *scriptPath != "" {
		a.Config.Playback.Script = *scriptPath
	}
	log.Printf("Config: %+v", a.Config.Playback)

	show, err := loadShow(a.Config.Playback.Script)
	if err != nil {
		log.Fatalf("Script: %v", err)
	}
	a.Streamer = stream.NewStreamer(a.Config, a.publishers(), show)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil {
		log.Fatal(err)
	}
}
