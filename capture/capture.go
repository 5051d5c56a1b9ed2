// Package capture streams samples from a board to a file while reporting
// throughput once per second.
package capture

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

type Options struct {
	// Counters is shared with whoever else may request stop, such as
	// WatchSignals. A fresh set is used when nil.
	Counters  *Counters
	Reporters []Reporter
	Interval  time.Duration
	// Stdout receives the sample rate listing and progress banners.
	Stdout io.Writer
	Log    *log.Logger
}

type Result struct {
	Bytes   uint64
	Dropped uint64
	Summary Summary
}

// Run configures rx, records its stream to cfg.Output until stop is
// requested or the device stops streaming, then stops the stream and closes
// the output. Closing the board is left to the caller.
func Run(ctx context.Context, rx radio.Receiver, cfg Config, opts Options) (Result, error) {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	counters := opts.Counters
	if counters == nil {
		counters = NewCounters()
	}

	printSampleRates(rx, stdout, logger)

	if err := Configure(rx, cfg, logger); err != nil {
		return Result{}, err
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return Result{}, fmt.Errorf("cannot open %q: %w", cfg.Output, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Errorf("Could not close %q: %v", cfg.Output, err)
		}
	}()
	fmt.Fprintf(stdout, "Writing to '%s'\n", cfg.Output)

	reporters := opts.Reporters
	if cfg.StatsFile != "" {
		stats, err := os.Create(cfg.StatsFile)
		if err != nil {
			return Result{}, fmt.Errorf("cannot open %q: %w", cfg.StatsFile, err)
		}
		defer stats.Close()
		reporters = append(reporters, NewCSVReporter(stats, logger))
	}

	recorder := NewRecorder(out, counters, logger)

	fmt.Fprintln(stdout, "Starting stream... (Press Ctrl+C to stop)")
	if err := rx.StartRx(recorder.OnTransfer); err != nil {
		return Result{}, fmt.Errorf("start_rx failed: %w", err)
	}

	monitor := &Monitor{
		Stream:         rx,
		Counters:       counters,
		BytesPerSample: radio.BytesPerSample(cfg.SampleType),
		Interval:       opts.Interval,
		Reporters:      reporters,
		Log:            logger,
	}
	monitor.Run(ctx)

	for _, r := range reporters {
		if c, ok := r.(*ConsoleReporter); ok {
			c.Finish()
		}
	}
	fmt.Fprintln(stdout, "Stopping ...")
	if err := rx.StopRx(); err != nil {
		logger.Errorf("Could not stop streaming: %v", err)
	}

	res := Result{
		Bytes:   counters.Bytes(),
		Dropped: counters.Dropped(),
		Summary: monitor.Summary(),
	}
	logger.Info("Capture summary",
		"bytes", res.Bytes,
		"dropped", res.Dropped,
		"mean_msps", fmt.Sprintf("%.3f", res.Summary.MeanMSPS),
		"stddev_msps", fmt.Sprintf("%.3f", res.Summary.StdDevMSPS))
	return res, nil
}

func printSampleRates(rx radio.Receiver, w io.Writer, logger *log.Logger) {
	rates, err := rx.SampleRates()
	if err != nil {
		logger.Warnf("Could not read sample rates: %v", err)
		return
	}
	if len(rates) > 0 {
		fmt.Fprintln(w, "Available sample rates:")
		for _, r := range rates {
			fmt.Fprintf(w, "  %d (%.3f MSPS)\n", r, float64(r)/1e6)
		}
	}
	fmt.Fprintln(w)
}
