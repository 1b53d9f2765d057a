// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"dwflag/cmd"
	"dwflag/internal/config"
	applog "dwflag/internal/log"
	"dwflag/internal/rfi"
	"dwflag/internal/spectrogram"
	"dwflag/internal/transport"
	"dwflag/internal/transport/udp"
	"dwflag/pkg/build"
)

// main drives one flagging pass in three phases:
//
// 1. Startup:
//   - Initialize build information
//   - Parse command line arguments and configuration
//   - Execute one-off commands if requested
//
// 2. Run:
//   - Build the spectrogram from the input WAV file
//   - Execute the selected detection algorithm
//   - Write flag masks and publish the run summary
//
// 3. Shutdown:
//   - Close transports; when serving WebSocket clients, keep the feed
//     alive until a termination signal arrives
func main() {
	// ==================== STARTUP PHASE ====================

	if err := build.Initialize(); err != nil {
		// Development builds have no ldflags; defaults are fine.
		applog.Debugf("build info unavailable: %v", err)
	}

	cfg, opts, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}
	if cfg.Debug {
		applog.SetLevel(applog.LevelDebug)
	}

	// One-off commands do not need a spectrogram.
	if opts.Command == "list" {
		cmd.ListAlgorithms()
		return
	}

	// ==================== RUN PHASE ====================

	results, err := runFlagging(cfg, opts.Input)
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if err := writeMasks(results, cfg.Output.Dir, opts.Input); err != nil {
		applog.Fatalf("%v", err)
	}

	summary := transport.Summarize(results)
	transports, err := openTransports(cfg)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	for _, tr := range transports {
		if err := tr.Send(summary); err != nil {
			applog.Errorf("failed to publish summary: %v", err)
		}
	}

	// ==================== SHUTDOWN PHASE ====================

	if cfg.Transport.WSEnabled {
		// Keep the WebSocket feed up for connected clients until
		// interrupted.
		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		applog.Infof("serving run summary on ws://%s/flags, Ctrl-C to exit", cfg.Transport.WSAddress)
		<-done
	}

	for _, tr := range transports {
		if err := tr.Close(); err != nil {
			applog.Errorf("error closing transport: %v", err)
		}
	}
}

// runFlagging builds the spectrogram and executes the configured
// detection algorithm, returning one flag set per selected product.
func runFlagging(cfg *config.Config, input string) ([]rfi.FlagSet, error) {
	win, err := spectrogram.ParseWindowFunc(cfg.Spectrogram.Window)
	if err != nil {
		return nil, err
	}

	spec, err := spectrogram.FromWAV(input, cfg.Spectrogram.FFTSize, win)
	if err != nil {
		return nil, err
	}
	applog.Infof("spectrogram: %d time rows x %d channels", spec.Rows(), spec.Cols())

	mode, err := rfi.ParseExecMode(cfg.Flagging.ExecMode)
	if err != nil {
		return nil, err
	}

	alg, err := rfi.Lookup(cfg.Flagging.Algorithm)
	if err != nil {
		return nil, err
	}

	params := rfi.Params{"channel": float64(cfg.Flagging.Channel)}
	det := rfi.NewDetector(mode)

	results, err := rfi.Run(det, spec.Data(), spec.Rows(), spec.Cols(), alg, nil, params)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		applog.Infof("product %d (%s): %d cells flagged", r.Product.Label, r.Product.Name, countMask(r.Mask))
	}
	return results, nil
}

// writeMasks writes one mask file per flag product next to the input
// name: <dir>/<input base>.<algorithm>.<product>.mask
func writeMasks(results []rfi.FlagSet, dir, input string) error {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	for _, r := range results {
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.%s.mask", base, r.Algorithm, strings.ToLower(r.Product.Name)))
		if err := r.WriteFile(path); err != nil {
			return err
		}
		applog.Infof("wrote %s", path)
	}
	return nil
}

// openTransports opens every enabled publishing transport, always
// including the logging sink.
func openTransports(cfg *config.Config) ([]transport.Transport, error) {
	out := []transport.Transport{transport.NewLoggingTransport()}

	if cfg.Transport.UDPEnabled {
		sender, err := udp.NewSender(cfg.Transport.UDPTargetAddress)
		if err != nil {
			return nil, err
		}
		pub, err := udp.NewPublisher(sender)
		if err != nil {
			return nil, err
		}
		pub.Start()
		out = append(out, pub)
	}

	if cfg.Transport.WSEnabled {
		out = append(out, transport.NewWebSocketTransport(cfg.Transport.WSAddress))
	}

	return out, nil
}

func countMask(mask []byte) int {
	n := 0
	for _, b := range mask {
		if b != 0 {
			n++
		}
	}
	return n
}
