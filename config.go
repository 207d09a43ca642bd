package dbfader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/michaelquigley/df/dd"
)

type Config struct {
	Card   int           `yaml:"card"`
	Strips []StripConfig `dd:"+required" yaml:"strips"`
}

type StripConfig struct {
	Name           string    `dd:"+required" yaml:"name"`
	Stereo         bool      `yaml:"stereo,omitempty"`
	Increments     []float32 `yaml:"increments,omitempty"`      // defaults to DefaultIncrements
	NeutralLevel   float32   `yaml:"neutral_level"`             // double-click level
	PeakBufferSize int       `yaml:"peak_buffer_size,omitempty"` // if 0, DefaultPeakBufferSize
	FineDragRatio  float32   `yaml:"fine_drag_ratio,omitempty"`  // if 0, DefaultFineDragRatio
	RectHandle     float32   `yaml:"rect_handle,omitempty"`      // if > 0, a rect handle with this aspect ratio
	Level          float32   `yaml:"level"`                      // initial level without hardware
	Controls       []string  `yaml:"controls,omitempty"`         // hardware volume controls, ganged
	Levels         []string  `yaml:"levels,omitempty"`           // hardware level meters
	MaxDb          float32   `yaml:"max_db,omitempty"`           // if 0, DefaultMaxDb
}

func MainConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dbfader", "console.yaml"), nil
}

func LoadMainConfig() (*Config, error) {
	configPath, err := MainConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfig(configPath)
}

func LoadConfig(path string) (*Config, error) {
	cfg, err := dd.NewFromYAML[Config](path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

// Validate checks every strip and that strip names, which identify faders, are unique
func (cfg *Config) Validate() error {
	if len(cfg.Strips) == 0 {
		return configErrorf("strips", "at least one strip is required")
	}
	seen := make(map[string]bool)
	for i, sc := range cfg.Strips {
		if sc.Name == "" {
			return fmt.Errorf("strip %d: %w", i, configErrorf("name", "required"))
		}
		if seen[sc.Name] {
			return fmt.Errorf("strip %d (%s): %w", i, sc.Name, configErrorf("name", "duplicate"))
		}
		seen[sc.Name] = true
		if _, err := sc.FaderConfig(); err != nil {
			return fmt.Errorf("strip %d (%s): %w", i, sc.Name, err)
		}
	}
	return nil
}

// Channels returns 2 for stereo strips and 1 otherwise
func (sc StripConfig) Channels() int {
	if sc.Stereo {
		return 2
	}
	return 1
}

// HardwareMaxDb returns the configured dB at the hardware maximum
func (sc StripConfig) HardwareMaxDb() float32 {
	if sc.MaxDb != 0 {
		return sc.MaxDb
	}
	return DefaultMaxDb
}

// FaderConfig fills unset fields with defaults and validates the result
func (sc StripConfig) FaderConfig() (FaderConfig, error) {
	cfg := DefaultFaderConfig()
	if len(sc.Increments) > 0 {
		cfg.Increments = Increments(sc.Increments)
	}
	cfg.NeutralLevel = sc.NeutralLevel
	if sc.PeakBufferSize != 0 {
		cfg.PeakBufferSize = sc.PeakBufferSize
	}
	if sc.FineDragRatio != 0 {
		cfg.FineDragRatio = sc.FineDragRatio
	}
	if sc.RectHandle > 0 {
		cfg.Handle = HandleRect
		cfg.HandleAspect = sc.RectHandle
	}
	if err := cfg.Validate(); err != nil {
		return FaderConfig{}, err
	}
	return cfg, nil
}

// DefaultConfig is a single synthetic stereo strip, used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Strips: []StripConfig{
			{Name: "Main", Stereo: true, Level: -20},
		},
	}
}
