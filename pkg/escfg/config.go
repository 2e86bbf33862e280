// Package escfg loads the YAML configuration cmd/eslcli can start from
// (--config), and watches it for edits (SPEC_FULL.md §1.2). It is
// ambient infrastructure spec.md itself is silent on —
// every long-running process in this module's domain needs a way to
// point at an address, a password, and an event format without
// recompiling.
package escfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jg-phare/esl/pkg/frame"
)

// ClientConfig configures an outbound pkg/client.Client.
type ClientConfig struct {
	Address      string `yaml:"address"`
	Password     string `yaml:"password"`
	EventFormat  string `yaml:"event_format"`
	EventFilters []struct {
		Header string `yaml:"header"`
		Value  string `yaml:"value"`
	} `yaml:"event_filters"`
}

// ListenerConfig configures an inbound pkg/listener.Listener.
type ListenerConfig struct {
	Address     string `yaml:"address"`
	JournalPath string `yaml:"journal_path"`
	MonitorAddr string `yaml:"monitor_address"`
}

// Config is the top-level shape of the YAML file. cmd/eslcli reads it
// via --config and takes only the client address and password from it;
// cmd/eslserver does not read it.
type Config struct {
	Client   *ClientConfig   `yaml:"client"`
	Listener *ListenerConfig `yaml:"listener"`
}

// Format returns the configured event format, defaulting to "plain"
// the way the original rsesl source and spec.md §4.4 both do when a
// caller never calls set_event_format.
func (c *ClientConfig) Format() frame.FormatType {
	if c == nil || c.EventFormat == "" {
		return frame.FormatPlain
	}
	ft, err := frame.ParseFormatType(c.EventFormat)
	if err != nil {
		return frame.FormatPlain
	}
	return ft
}

// Load reads and parses a Config from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("escfg: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("escfg: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
