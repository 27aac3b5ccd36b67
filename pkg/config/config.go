// Package config holds the static configuration of the Graphite web UI
// module: the Graphite base URI, the graph template directory and an
// optional data-source subfolder.
//
// A Config is built once, either from a YAML file (Load) or from the raw
// option map handed over by the console's module loader (FromMap), and is
// read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/kylerisse/graphiteui/pkg/perfdata"
	"github.com/miekg/dns"
	"github.com/shirou/gopsutil/v4/host"
	"gopkg.in/yaml.v3"
)

// ServerNamePlaceholder in the URI is replaced by the local host name.
const ServerNamePlaceholder = "YOURSERVERNAME"

// ErrMissingURI is returned when no Graphite URI is configured.
var ErrMissingURI = errors.New("config: the Graphite web UI module is missing the uri parameter")

// hostname resolves the local machine name. Tests replace it.
var hostname = localHostname

// Config is the module configuration.
type Config struct {
	// URI is the Graphite base URL, always ending in "/".
	URI string `yaml:"uri"`

	// TemplatesPath is the directory holding *.graph template files.
	TemplatesPath string `yaml:"templates_path"`

	// DataSource is an optional sanitized subfolder appended to the host
	// identifier in Graphite targets.
	DataSource string `yaml:"graphite_data_source"`
}

// Option tweaks a Config built with New.
type Option func(*Config)

// WithTemplatesPath sets the graph template directory.
func WithTemplatesPath(path string) Option {
	return func(c *Config) {
		c.TemplatesPath = path
	}
}

// WithDataSource sets the Graphite data-source subfolder.
func WithDataSource(ds string) Option {
	return func(c *Config) {
		c.DataSource = ds
	}
}

// New builds a Config for the given URI.
func New(uri string, opts ...Option) (*Config, error) {
	cfg := &Config{URI: uri}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.finish()
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: could not read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: could not parse YAML in %s: %w", path, err)
	}

	return cfg.finish()
}

// FromMap builds a Config from a raw module option map.
//
// Required key: "uri" (string).
// Optional keys:
//   - "templates_path" (string) - graph template directory (default: os.TempDir())
//   - "graphite_data_source" (string) - Graphite subfolder for host data
func FromMap(options map[string]any) (*Config, error) {
	var cfg Config
	var err error

	if cfg.URI, err = stringOption(options, "uri"); err != nil {
		return nil, err
	}
	if cfg.TemplatesPath, err = stringOption(options, "templates_path"); err != nil {
		return nil, err
	}
	if cfg.DataSource, err = stringOption(options, "graphite_data_source"); err != nil {
		return nil, err
	}

	return cfg.finish()
}

// stringOption returns the string stored under key, or "" if absent.
func stringOption(options map[string]any, key string) (string, error) {
	raw, ok := options[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("config: '%s' must be a string, got %T", key, raw)
	}
	return s, nil
}

func (c *Config) finish() (*Config, error) {
	c.applyDefaults()
	if err := c.normalize(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.TemplatesPath == "" {
		c.TemplatesPath = os.TempDir()
	}
}

func (c *Config) normalize() error {
	c.URI = strings.TrimSpace(c.URI)
	if c.URI == "" {
		return ErrMissingURI
	}
	if !strings.HasSuffix(c.URI, "/") {
		c.URI += "/"
	}

	if strings.Contains(c.URI, ServerNamePlaceholder) {
		name, err := hostname()
		if err != nil {
			return fmt.Errorf("config: could not resolve local host name for %s: %w", ServerNamePlaceholder, err)
		}
		c.URI = strings.ReplaceAll(c.URI, ServerNamePlaceholder, name)
	}

	c.DataSource = perfdata.Sanitize(c.DataSource)
	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.URI)
	if err != nil {
		return fmt.Errorf("config: invalid uri %q: %w", c.URI, err)
	}
	// A relative base such as "/graphite/" is resolved by the browser.
	if u.Host == "" {
		return nil
	}

	h := u.Hostname()
	if net.ParseIP(h) == nil {
		if _, ok := dns.IsDomainName(h); !ok {
			return fmt.Errorf("config: uri host %q is not a valid host name", h)
		}
	}
	return nil
}

// localHostname returns the machine's host name.
func localHostname() (string, error) {
	info, err := host.Info()
	if err == nil && info.Hostname != "" {
		return info.Hostname, nil
	}
	return os.Hostname()
}
