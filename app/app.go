// Package app holds the setup shared by the hydrasdr command line tools.
package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/config"
	"github.com/jrwynneiii/hydrasdr-tools/radio"
	"github.com/jrwynneiii/hydrasdr-tools/radio/mock"
)

// Common are the flags every tool accepts. Embed it in the tool's CLI
// struct.
type Common struct {
	Driver  string `default:"${driver}" help:"Device backend to use (${drivers})."`
	Verbose bool   `help:"Prints debug output"`
}

// Setup loads the configuration and returns it with the kong variables
// that turn it into flag defaults.
func Setup() (config.Config, kong.Vars) {
	conf, err := config.Load(config.SearchPaths())
	if err != nil {
		log.Errorf("Could not load configuration, using defaults: %v", err)
		conf = config.Default()
	}
	return conf, Vars(conf)
}

func Vars(conf config.Config) kong.Vars {
	return kong.Vars{
		"driver":      conf.Radio.Driver,
		"drivers":     strings.Join(radio.Drivers(), ", "),
		"serial":      conf.Radio.Serial,
		"freq":        strconv.FormatUint(conf.Capture.Frequency, 10),
		"sample_rate": strconv.FormatUint(uint64(conf.Capture.SampleRate), 10),
		"sample_type": strconv.Itoa(conf.Capture.SampleType),
		"gain":        strconv.FormatUint(uint64(conf.Capture.Gain), 10),
		"bias_tee":    boolFlag(conf.Capture.BiasTee),
		"output":      conf.Capture.Output,
		"stats":       conf.Capture.StatsFile,
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (c Common) ApplyLogging() {
	if c.Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// OpenDriver looks the backend up by name. The simulated driver is shaped
// by the mock section of the configuration.
func OpenDriver(name string, conf config.Config) (radio.Driver, error) {
	drv, err := radio.Lookup(name)
	if err != nil {
		return nil, err
	}
	if m, ok := drv.(*mock.Driver); ok {
		m.SetBoards(MockBoards(conf.Mock)...)
	}
	log.Debugf("Using driver %s, library version %s", drv.Name(), drv.LibVersion())
	return drv, nil
}

func MockBoards(conf config.MockConf) []mock.BoardConfig {
	boards := make([]mock.BoardConfig, conf.Boards)
	for i := range boards {
		b := mock.DefaultBoard()
		b.Serial += uint64(i)
		if conf.Interval > 0 {
			b.Interval = conf.Interval
		}
		b.SamplesPerTransfer = conf.SamplesPerTransfer
		b.MaxTransfers = conf.MaxTransfers
		b.DroppedPerTransfer = conf.DroppedPerTransfer
		boards[i] = b
	}
	return boards
}

// ParseSerial parses the -s argument and echoes the serial that will be
// opened. An empty argument selects the first free board.
func ParseSerial(s string, w io.Writer) (*uint64, error) {
	if s == "" {
		return nil, nil
	}
	serial, err := radio.ParseU64(s)
	if err != nil {
		return nil, fmt.Errorf("bad serial number: %w", err)
	}
	fmt.Fprintf(w, "Board serial number to open: %s\n", radio.FormatSerial(serial))
	return &serial, nil
}

func OpenBoard(drv radio.Driver, serial *uint64) (radio.Board, error) {
	if serial != nil {
		b, err := drv.OpenSerial(*serial)
		if err != nil {
			return nil, fmt.Errorf("open_sn(%s) failed: %w", radio.FormatSerial(*serial), err)
		}
		return b, nil
	}
	b, err := drv.Open()
	if err != nil {
		return nil, fmt.Errorf("open() failed: %w", err)
	}
	return b, nil
}
