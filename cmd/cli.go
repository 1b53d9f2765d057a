// SPDX-License-Identifier: MIT
// Package cmd parses command line arguments into the runtime
// configuration and implements the one-off commands.
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"dwflag/internal/config"
	"dwflag/internal/rfi"
	"dwflag/pkg/build"
)

// Options holds the parts of an invocation that are not configuration:
// the input file, the config path, and any one-off command.
type Options struct {
	ConfigPath string
	Input      string // WAV file to build the spectrogram from
	Command    string // one-off command ("list") or empty
}

// ParseArgs parses the command line, loads the YAML configuration, and
// applies explicit flags on top of it. Flag values only override the
// file when they were actually set on the command line.
func ParseArgs() (*config.Config, *Options, error) {
	buildInfo := build.GetBuildFlags()
	opts := &Options{}

	var (
		algorithm  string
		channel    int
		execMode   string
		fftSize    int
		windowName string
		outputDir  string
		udpEnabled bool
		udpTarget  string
		wsEnabled  bool
		wsAddr     string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name + " [flags] input.wav",
		Short:         "RFI flagging toolkit for single-dish radio telescope spectrograms",
		Version:       buildInfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("an input WAV file is required (or use the 'list' command)")
			}
			opts.Input = args[0]
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered detection algorithms",
		Run: func(cmd *cobra.Command, args []string) {
			opts.Command = "list"
		},
	}
	rootCmd.AddCommand(listCmd)

	// Configuration file
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"Path to YAML configuration file (default: ./config.yaml if present)")

	// Flagging configuration
	rootCmd.PersistentFlags().StringVarP(&algorithm, "algorithm", "a", config.DefaultAlgorithm,
		"Detection algorithm to run. Use 'list' to see the registry.")
	rootCmd.PersistentFlags().IntVarP(&channel, "channel", "c", config.DefaultChannel,
		"Channel index for the single_channel algorithm")
	rootCmd.PersistentFlags().StringVarP(&execMode, "mode", "m", config.DefaultExecMode,
		"Column-loop execution mode: sequential or parallel")

	// Spectrogram configuration
	rootCmd.PersistentFlags().IntVarP(&fftSize, "fft-size", "f", config.DefaultFFTSize,
		"STFT size in points (power of 2, sets the channel count)")
	rootCmd.PersistentFlags().StringVarP(&windowName, "window", "w", config.DefaultWindow,
		"STFT window function (Hann, Hamming, Blackman, ...)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", config.DefaultOutputDir,
		"Directory to write flag mask files into")

	// Transport configuration
	rootCmd.PersistentFlags().BoolVar(&udpEnabled, "udp", false,
		"Publish a binary run summary over UDP")
	rootCmd.PersistentFlags().StringVar(&udpTarget, "udp-target", config.DefaultUDPTargetAddress,
		"Target address for UDP summaries")
	rootCmd.PersistentFlags().BoolVar(&wsEnabled, "ws", false,
		"Serve JSON run summaries to WebSocket clients")
	rootCmd.PersistentFlags().StringVar(&wsAddr, "ws-addr", config.DefaultWSAddress,
		"Listen address for the WebSocket server")

	// Debug configuration
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	// Explicit flags win over file and environment values.
	flags := rootCmd.PersistentFlags()
	if flags.Changed("algorithm") {
		cfg.Flagging.Algorithm = algorithm
	}
	if flags.Changed("channel") {
		cfg.Flagging.Channel = channel
	}
	if flags.Changed("mode") {
		cfg.Flagging.ExecMode = execMode
	}
	if flags.Changed("fft-size") {
		cfg.Spectrogram.FFTSize = fftSize
	}
	if flags.Changed("window") {
		cfg.Spectrogram.Window = windowName
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("udp") {
		cfg.Transport.UDPEnabled = udpEnabled
	}
	if flags.Changed("udp-target") {
		cfg.Transport.UDPTargetAddress = udpTarget
	}
	if flags.Changed("ws") {
		cfg.Transport.WSEnabled = wsEnabled
	}
	if flags.Changed("ws-addr") {
		cfg.Transport.WSAddress = wsAddr
	}
	if verbose {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, opts, nil
}

// ListAlgorithms prints the registered detection algorithms with their
// flag products and default parameters.
func ListAlgorithms() {
	for _, name := range rfi.Names() {
		alg, err := rfi.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Printf("%s\n    %s\n", alg.Name(), alg.Description())

		products := alg.Products()
		if len(products) == 0 {
			fmt.Printf("    products: none\n")
		} else {
			fmt.Printf("    products:\n")
			for _, p := range products {
				fmt.Printf("      %d: %s\n", p.Label, p.Name)
			}
		}

		params := alg.DefaultParams()
		if len(params) > 0 {
			names := make([]string, 0, len(params))
			for k := range params {
				names = append(names, k)
			}
			sort.Strings(names)
			fmt.Printf("    parameters:\n")
			for _, k := range names {
				fmt.Printf("      %s = %g\n", k, params[k])
			}
		}
		fmt.Println()
	}
}
