package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkoval-dev/nightraid/internal/model"
)

// Config holds all configuration for the combat core host.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"` // debug | info | warn | error

	// Session role: the host's state is authoritative for enemies.
	IsHost bool `yaml:"is_host"`

	Network NetworkConfig `yaml:"network"`
	Room    RoomConfig    `yaml:"room"`
	Frame   FrameConfig   `yaml:"frame"`

	// Variant stat table; merged over the built-in defaults.
	Variants map[model.Variant]model.VariantStats `yaml:"variants"`

	// Difficulty multipliers applied to every spawn.
	Difficulty model.DifficultyMultipliers `yaml:"difficulty"`
}

// NetworkConfig holds transport parameters for the damage-message hub.
type NetworkConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// WriteTimeoutMs bounds each websocket write.
	WriteTimeoutMs int `yaml:"write_timeout_ms"`

	// SendBuffer is the per-peer outbound queue size.
	SendBuffer int `yaml:"send_buffer"`
}

// RoomConfig describes the playable room geometry.
type RoomConfig struct {
	FloorLevel float64 `yaml:"floor_level"`
	HalfExtent float64 `yaml:"half_extent"` // room half-width from center
	Margin     float64 `yaml:"margin"`      // boundary margin enemies keep
}

// FrameConfig drives the host frame loop.
type FrameConfig struct {
	TickRate int `yaml:"tick_rate"` // frames/sec
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		IsHost:   true,
		Network: NetworkConfig{
			BindAddress:    "0.0.0.0",
			Port:           7777,
			WriteTimeoutMs: 5000,
			SendBuffer:     64,
		},
		Room: RoomConfig{
			FloorLevel: 0,
			HalfExtent: 9,
			Margin:     0.5,
		},
		Frame: FrameConfig{
			TickRate: 30,
		},
		Variants:   model.DefaultVariantStats(),
		Difficulty: model.DefaultDifficulty(),
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Refill variants absent from the file so a config that only tunes one
	// variant keeps the others spawnable.
	defaults := model.DefaultVariantStats()
	for v, stats := range defaults {
		if _, ok := cfg.Variants[v]; !ok {
			cfg.Variants[v] = stats
		}
	}

	return cfg, nil
}
