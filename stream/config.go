package stream

// Config is the host configuration read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		QoS      byte   `yaml:"qos"`
		Topics   struct {
			Frames string `yaml:"frames"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	API struct {
		Addr   string `yaml:"addr"`
		Static string `yaml:"static"`
	} `yaml:"api"`
	Playback struct {
		Script string  `yaml:"script"`
		FPS    float64 `yaml:"fps"`
		Loop   bool    `yaml:"loop"`
		Watch  bool    `yaml:"watch"`
	} `yaml:"playback"`
}

// Defaults fills in unset values.
func (c *Config) Defaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "popcorn"
	}
	if c.Mqtt.Topics.Frames == "" {
		c.Mqtt.Topics.Frames = "popcorn/frames"
	}
	if c.Playback.FPS <= 0 {
		c.Playback.FPS = 30
	}
	if c.Playback.Script == "" {
		c.Playback.Script = "timeline.yaml"
	}
}
