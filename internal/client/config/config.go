package config

import (
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/flagx"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
)

// Config holds runtime settings for the clinicadmin CLI.
type Config struct {
	APIBaseURL  string
	RosaBaseURL string
	// PayloadSecret is the passphrase shared with the backend for encrypted
	// endpoints. It also keys the local session sealing.
	PayloadSecret  string
	RequestTimeout time.Duration
	// FetchLimit is the "limit" sent when a list view fetches the whole
	// collection before filtering locally.
	FetchLimit int
	PageSize   int
	DataDir    string
	LogLevel   string
	LogBackend string
}

// ConfigFlags are every flag consumed by the config loader, for
// flagx.StripArgs.
var ConfigFlags = append([]string{"-a", "-r", "-s", "-t", "-p", "-d"}, flagx.ConfigFileFlags...)

var ErrNoPayloadSecret = errors.New("payload secret is not configured (use -s or CLINIC_PAYLOAD_SECRET)")

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.RosaBaseURL = ""
	c.PayloadSecret = ""
	c.RequestTimeout = 15 * time.Second
	c.FetchLimit = 1000
	c.PageSize = 10
	c.DataDir = "~/.clinicadmin"
	c.LogLevel = "warn"
	c.LogBackend = logging.BackendSlog
}

// RosaURL is the rosa base URL, falling back to the API base URL.
func (c *Config) RosaURL() string {
	if c.RosaBaseURL != "" {
		return c.RosaBaseURL
	}
	return c.APIBaseURL
}

// Validate reports settings the client cannot work without.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is empty")
	}
	if c.PayloadSecret == "" {
		return ErrNoPayloadSecret
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// Load builds a Config from args (without the program name): defaults, then
// JSON, then environment, then flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.JsonConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
