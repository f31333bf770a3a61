package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Hanaasagi/patgen/pkg/clipboard"
	"github.com/Hanaasagi/patgen/pkg/tabular"
)

type Config struct {
	Core     CoreConfig     `toml:"core"`
	Template TemplateConfig `toml:"template"`
	Verify   VerifyConfig   `toml:"verify"`
	Tabular  TabularConfig  `toml:"tabular"`
}

type CoreConfig struct {
	LogLevel  string   `toml:"log_level"`
	Copy      bool     `toml:"copy"`
	Clipboard []string `toml:"clipboard"`
}

type TemplateConfig struct {
	Author      string `toml:"author"`
	Email       string `toml:"email"`
	Company     string `toml:"company"`
	Description string `toml:"description"`
	Debug       bool   `toml:"debug"`
}

type VerifyConfig struct {
	IgnoreSpace bool `toml:"ignore_space"`
}

type TabularConfig struct {
	Divider         string `toml:"divider"`
	LeadingGapSlack int    `toml:"leading_gap_slack"`
	OneLineMarker   string `toml:"one_line_marker"`
	MultiLineMarker string `toml:"multi_line_marker"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			LogLevel:  "info",
			Copy:      false,
			Clipboard: []string{clipboard.TargetTmux, clipboard.TargetSystem, clipboard.TargetOSC52},
		},
		Verify: VerifyConfig{
			IgnoreSpace: true,
		},
		Tabular: TabularConfig{
			LeadingGapSlack: tabular.DefaultLeadingGapSlack,
			OneLineMarker:   tabular.DefaultOneLineMarker,
			MultiLineMarker: tabular.DefaultMultiLineMarker,
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	return config, nil
}

// WriteConfig encodes config as TOML.
func WriteConfig(w io.Writer, config *Config) error {
	return toml.NewEncoder(w).Encode(config)
}
