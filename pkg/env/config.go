// Package env collects the configuration shared by the rcio binaries.
//
// Values are resolved in order: built-in defaults, RCIO_* environment
// variables, the YAML file named by -config, then explicit flags.
package env

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/rcio.go/pkg/rcio/device"
	"github.com/robotalks/rcio.go/pkg/rcio/serial"
	"github.com/robotalks/rcio.go/pkg/rcio/transport"
)

// Config provides the options to reach the coprocessor and the broker.
type Config struct {
	ConfigFile string `yaml:"-"`

	Device   string `yaml:"device"`
	BaudRate int    `yaml:"baud"`
	// Sim replaces the serial port with a simulated coprocessor.
	Sim bool `yaml:"sim"`

	Retries          int           `yaml:"retries"`
	RetryDelay       time.Duration `yaml:"retry_delay"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	PollInterval     time.Duration `yaml:"poll_interval"`

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL   string        `yaml:"mqtt"`
	Type            string        `yaml:"type"`
	ID              string        `yaml:"id"`
	PublishInterval time.Duration `yaml:"publish_interval"`
}

var defaultConfig = Config{
	Device:           serial.DefaultDevice,
	BaudRate:         serial.DefaultBaudRate,
	Retries:          transport.DefaultRetries,
	HandshakeTimeout: device.DefaultHandshakeTimeout,
	PollInterval:     device.DefaultPollInterval,
	MQTTBrokerURL:    "mqtt://localhost:1883/robo/",
	Type:             "rcio",
	PublishInterval:  50 * time.Millisecond,
}

func init() {
	defaultConfig.ApplyEnv(os.Getenv)
	if defaultConfig.ID == "" {
		defaultConfig.ID = MachineID()
	}
}

// ApplyEnv overrides fields from RCIO_* variables looked up by getenv.
// Malformed values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if val := getenv("RCIO_DEVICE"); val != "" {
		c.Device = val
	}
	if val, err := strconv.Atoi(getenv("RCIO_BAUD")); err == nil {
		c.BaudRate = val
	}
	if val, err := strconv.ParseBool(getenv("RCIO_SIM")); err == nil {
		c.Sim = val
	}
	if val := getenv("RCIO_MQTT_URL"); val != "" {
		c.MQTTBrokerURL = val
	}
	if val := getenv("RCIO_ID"); val != "" {
		c.ID = val
	}
	if val := getenv("RCIO_CONFIG"); val != "" {
		c.ConfigFile = val
	}
}

// BindFlags registers command line flags on fs, bound to c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML config file")
	fs.StringVar(&c.Device, "dev", c.Device, "Serial device of the coprocessor")
	fs.IntVar(&c.BaudRate, "baud", c.BaudRate, "Serial baud rate")
	fs.BoolVar(&c.Sim, "sim", c.Sim, "Use a simulated coprocessor")
	fs.IntVar(&c.Retries, "retries", c.Retries, "Attempts per register transfer")
	fs.DurationVar(&c.RetryDelay, "retry-delay", c.RetryDelay, "Delay between attempts")
	fs.DurationVar(&c.HandshakeTimeout, "handshake-timeout", c.HandshakeTimeout, "Handshake timeout")
	fs.DurationVar(&c.PollInterval, "handshake-poll", c.PollInterval, "Handshake poll interval")
	fs.StringVar(&c.MQTTBrokerURL, "mqtt", c.MQTTBrokerURL, "MQTT broker URL")
	fs.StringVar(&c.Type, "type", c.Type, "Controller type")
	fs.StringVar(&c.ID, "id", c.ID, "Controller ID")
	fs.DurationVar(&c.PublishInterval, "publish-interval", c.PublishInterval, "RC input publish interval")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	defaultConfig.BindFlags(flag.CommandLine)
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load overlays the YAML file at path on c.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Resolve loads ConfigFile, if any, then re-applies the flags explicitly
// set on fs so they take precedence over the file. Call after fs.Parse.
func (c *Config) Resolve(fs *flag.FlagSet) error {
	if c.ConfigFile != "" {
		set := make(map[string]string)
		fs.Visit(func(f *flag.Flag) {
			if f.Name != "config" {
				set[f.Name] = f.Value.String()
			}
		})
		if err := c.Load(c.ConfigFile); err != nil {
			return err
		}
		for name, val := range set {
			if err := fs.Set(name, val); err != nil {
				return err
			}
		}
	}
	return c.Validate()
}

// Validate checks the values are usable.
func (c *Config) Validate() error {
	if !c.Sim && c.Device == "" {
		return fmt.Errorf("serial device must be specified")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if c.Retries <= 0 {
		return fmt.Errorf("invalid retries %d", c.Retries)
	}
	if c.HandshakeTimeout <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("handshake timeout and poll interval must be positive")
	}
	return nil
}
