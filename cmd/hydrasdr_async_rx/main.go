package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/app"
	"github.com/jrwynneiii/hydrasdr-tools/capture"
	"github.com/jrwynneiii/hydrasdr-tools/config"
	"github.com/jrwynneiii/hydrasdr-tools/radio"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/libhydrasdr"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/soapy"
	"github.com/jrwynneiii/hydrasdr-tools/tui"
)

const version = "1.0.0"

var cli struct {
	app.Common `embed:""`

	Freq       uint64 `short:"f" default:"${freq}" placeholder:"HZ" help:"Set RF frequency in Hz."`
	SampleRate uint32 `short:"s" name:"samplerate" default:"${sample_rate}" placeholder:"SPS" help:"Set sample rate."`
	SampleType int    `short:"t" name:"type" default:"${sample_type}" help:"Set sample type: 0=FloatIQ, 1=FloatReal, 2=Int16IQ, 3=Int16Real, 5=Raw."`
	Gain       uint8  `short:"g" default:"${gain}" placeholder:"0-21" help:"Linearity gain."`
	Bias       uint8  `short:"b" default:"${bias_tee}" placeholder:"0|1" help:"Bias-T off/on."`
	Output     string `short:"o" default:"${output}" type:"path" help:"Output file."`

	Serial string `default:"${serial}" placeholder:"SERIAL" help:"Open board with specified 64bits serial number."`
	Stats  string `default:"${stats}" type:"path" help:"Append per second throughput rows to this CSV file."`
	Tui    bool   `help:"Show a terminal dashboard instead of the status line."`
}

func main() {
	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	conf, vars := app.Setup()
	kong.Parse(&cli,
		kong.Name("hydrasdr_async_rx"),
		kong.Description("Stream samples from a HydraSDR board into a raw file."),
		vars,
	)
	cli.ApplyLogging()

	fmt.Printf("HydraSDR Async RX Tool v%s\n", version)
	if cli.Bias > 1 {
		return errors.New("-b shall be 0 or 1")
	}

	serial, err := app.ParseSerial(cli.Serial, os.Stdout)
	if err != nil {
		return err
	}
	drv, err := app.OpenDriver(cli.Driver, conf)
	if err != nil {
		return err
	}
	board, err := app.OpenBoard(drv, serial)
	if err != nil {
		return err
	}
	defer func() {
		if err := board.Close(); err != nil {
			log.Errorf("close() failed: %v", err)
		}
	}()
	log.Info("Device opened.")

	cfg := capture.Config{
		Frequency:  cli.Freq,
		SampleRate: cli.SampleRate,
		SampleType: radio.SampleType(cli.SampleType),
		Gain:       cli.Gain,
		BiasTee:    cli.Bias == 1,
		Output:     cli.Output,
		StatsFile:  cli.Stats,
	}

	ctx := context.Background()
	counters := capture.NewCounters()
	stopSignals := capture.WatchSignals(ctx, counters, log.Default(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer stopSignals()

	opts := capture.Options{
		Counters: counters,
		Interval: time.Second,
		Log:      log.Default(),
	}
	if cli.Tui {
		err = runDashboard(ctx, board, cfg, opts, serial, conf.Tui)
	} else {
		opts.Reporters = []capture.Reporter{capture.NewConsoleReporter(os.Stdout)}
		_, err = capture.Run(ctx, board, cfg, opts)
	}
	if err != nil {
		return err
	}
	log.Info("Done.")
	return nil
}

func runDashboard(ctx context.Context, board radio.Board, cfg capture.Config, opts capture.Options, serial *uint64, tuiConf config.TuiConf) error {
	header := tui.Header{
		Frequency:  cfg.Frequency,
		SampleRate: cfg.SampleRate,
		SampleType: cfg.SampleType.String(),
		Output:     cfg.Output,
	}
	if serial != nil {
		header.Serial = radio.FormatSerial(*serial)
	} else if p, err := board.PartIDSerialNo(); err == nil {
		header.Serial = radio.FormatSerial(p.Serial())
	}

	dash := tui.New(header, radio.BytesPerSample(cfg.SampleType), tuiConf)
	opts.Reporters = []capture.Reporter{dash}
	opts.Stdout = dash.Writer()

	errs := make(chan error, 1)
	go func() {
		_, err := capture.Run(ctx, board, cfg, opts)
		opts.Counters.RequestStop()
		errs <- err
	}()

	if err := dash.Run(opts.Counters); err != nil {
		opts.Counters.RequestStop()
		<-errs
		return fmt.Errorf("could not start UI: %w", err)
	}
	return <-errs
}
