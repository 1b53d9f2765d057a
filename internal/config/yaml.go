// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"dwflag/pkg/bitint"
)

// Config is the main application configuration, loaded from YAML.
type Config struct {
	Debug       bool              `yaml:"debug"`       // Enable debug mode (verbose logging).
	LogLevel    string            `yaml:"log_level"`   // Logging level ("debug", "info", "warn", "error").
	Flagging    FlaggingConfig    `yaml:"flagging"`    // Detection run settings.
	Spectrogram SpectrogramConfig `yaml:"spectrogram"` // STFT settings for WAV-derived spectrograms.
	Output      OutputConfig      `yaml:"output"`      // Flag mask output settings.
	Transport   TransportConfig   `yaml:"transport"`   // Result publishing settings.
}

// FlaggingConfig holds settings for a detection run.
type FlaggingConfig struct {
	Algorithm string `yaml:"algorithm"` // Registered algorithm name (see `dwflag list`).
	Channel   int    `yaml:"channel"`   // Channel index for single_channel runs.
	ExecMode  string `yaml:"exec_mode"` // Column-loop scheduling: "sequential" or "parallel".
}

// SpectrogramConfig holds STFT settings used when building a spectrogram
// from a recorded WAV file.
type SpectrogramConfig struct {
	FFTSize int    `yaml:"fft_size"` // Number of points per frame (power of 2).
	Window  string `yaml:"window"`   // Window function name (e.g. "Hann", "Hamming").
}

// OutputConfig holds settings for writing flag masks to disk.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Directory to write mask files into.
}

// TransportConfig holds settings for publishing flag-run summaries.
type TransportConfig struct {
	UDPEnabled       bool   `yaml:"udp_enabled"`        // Send binary summary packets over UDP.
	UDPTargetAddress string `yaml:"udp_target_address"` // Target address for UDP packets, "host:port".
	WSEnabled        bool   `yaml:"ws_enabled"`         // Serve JSON summaries to WebSocket clients.
	WSAddress        string `yaml:"ws_address"`         // Listen address for the WebSocket server.
}

// Load reads configuration from a YAML file at path. An empty path
// searches the default location ("config.yaml") and falls back to
// built-in defaults when no file exists. Environment overrides are
// applied after loading, then the final configuration is validated.
func Load(path string) (*Config, error) {
	cfg := Config{
		Debug:    false,
		LogLevel: "info",
		Flagging: FlaggingConfig{
			Algorithm: DefaultAlgorithm,
			Channel:   DefaultChannel,
			ExecMode:  DefaultExecMode,
		},
		Spectrogram: SpectrogramConfig{
			FFTSize: DefaultFFTSize,
			Window:  DefaultWindow,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Transport: TransportConfig{
			UDPEnabled:       false,
			UDPTargetAddress: DefaultUDPTargetAddress,
			WSEnabled:        false,
			WSAddress:        DefaultWSAddress,
		},
	}

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return &cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides win over file values.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the toolkit cannot run with.
func (c *Config) Validate() error {
	switch c.Flagging.ExecMode {
	case "sequential", "parallel":
	default:
		return fmt.Errorf("flagging.exec_mode must be \"sequential\" or \"parallel\", got %q", c.Flagging.ExecMode)
	}

	if !bitint.IsPowerOfTwo(c.Spectrogram.FFTSize) {
		return fmt.Errorf("spectrogram.fft_size must be a power of 2, got %d", c.Spectrogram.FFTSize)
	}
	if c.Spectrogram.FFTSize < MinFFTSize || c.Spectrogram.FFTSize > MaxFFTSize {
		return fmt.Errorf("spectrogram.fft_size must be in [%d, %d], got %d", MinFFTSize, MaxFFTSize, c.Spectrogram.FFTSize)
	}

	if c.Flagging.Channel < 0 {
		return fmt.Errorf("flagging.channel must be non-negative, got %d", c.Flagging.Channel)
	}

	if c.Transport.UDPEnabled && c.Transport.UDPTargetAddress == "" {
		return fmt.Errorf("transport.udp_target_address must be set when UDP is enabled")
	}
	if c.Transport.WSEnabled && c.Transport.WSAddress == "" {
		return fmt.Errorf("transport.ws_address must be set when WebSocket is enabled")
	}

	return nil
}

// applyEnvOverrides applies DW_* environment variables on top of the
// loaded configuration.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("DW_DEBUG"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Debug = bVal
		}
	}
	if val, ok := os.LookupEnv("DW_EXEC_MODE"); ok {
		c.Flagging.ExecMode = val
	}
	if val, ok := os.LookupEnv("DW_UDP_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Transport.UDPEnabled = bVal
		}
	}
	if val, ok := os.LookupEnv("DW_UDP_TARGET_ADDRESS"); ok {
		c.Transport.UDPTargetAddress = val
	}
	if val, ok := os.LookupEnv("DW_WS_ADDRESS"); ok {
		c.Transport.WSAddress = val
	}
}
