// SPDX-License-Identifier: MIT
// Package config defines the toolkit's runtime configuration: defaults as
// package constants, a YAML file layout, and environment overrides.
package config

// Defaults and limits for the flagging toolkit.
const (
	// Flagging defaults
	DefaultAlgorithm = "even_odd"   // registered algorithm to run
	DefaultChannel   = 0            // channel for single_channel runs
	DefaultExecMode  = "sequential" // column-loop scheduling, {sequential, parallel}

	// Spectrogram construction defaults
	DefaultFFTSize = 1024   // STFT size, power of 2
	DefaultWindow  = "Hann" // STFT window function
	MinFFTSize     = 16
	MaxFFTSize     = 65536

	// Output defaults
	DefaultOutputDir = "." // directory for written flag masks

	// Transport defaults
	DefaultUDPTargetAddress = "127.0.0.1:9090"
	DefaultWSAddress        = ":8080"
)
