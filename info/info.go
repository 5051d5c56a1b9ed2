// Package info prints the identity of every HydraSDR board that can be
// opened.
package info

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

var ErrNoBoard = errors.New("no board could be opened")

type Options struct {
	// Serial restricts the report to the board with that serial number.
	Serial *uint64
	// Probe asks drivers implementing radio.Prober to describe their
	// backend first.
	Probe bool
	Out   io.Writer
	Log   *log.Logger
}

// Report opens boards until the driver runs out of them, then prints one
// block per board and closes it. It fails only when not even one board
// opens.
func Report(drv radio.Driver, opts Options) (int, error) {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}

	fmt.Fprintf(opts.Out, "hydrasdr_lib_version: %s\n", drv.LibVersion())

	if p, ok := drv.(radio.Prober); ok && opts.Probe {
		p.Probe(logger)
	}

	boards, err := openAll(drv, opts.Serial)
	if len(boards) == 0 {
		return 0, fmt.Errorf("%w: %w", ErrNoBoard, err)
	}
	for i, b := range boards {
		describe(b, i+1, opts.Out, logger)
	}
	return len(boards), nil
}

// openAll returns the opened boards and the error that ended the scan.
func openAll(drv radio.Driver, serial *uint64) ([]radio.Board, error) {
	var boards []radio.Board
	for {
		var (
			b   radio.Board
			err error
		)
		if serial != nil {
			b, err = drv.OpenSerial(*serial)
		} else {
			b, err = drv.Open()
		}
		if err != nil {
			return boards, err
		}
		boards = append(boards, b)
	}
}

func describe(b radio.Board, n int, w io.Writer, logger *log.Logger) {
	fmt.Fprintf(w, "\nFound HydraSDR board %d\n", n)
	defer func() {
		fmt.Fprintf(w, "Close board %d\n", n)
		if err := b.Close(); err != nil {
			logger.Errorf("close board %d failed: %v", n, err)
		}
	}()

	if id, name, err := b.BoardID(); err != nil {
		logger.Errorf("board_id_read() failed: %v", err)
	} else {
		fmt.Fprintf(w, "Board ID Number: %d (%s)\n", id, name)
	}

	if fw, err := b.Firmware(); err != nil {
		logger.Errorf("version_string_read() failed: %v", err)
	} else {
		fmt.Fprintf(w, "Firmware Version: %s\n", fw)
	}

	if p, err := b.PartIDSerialNo(); err != nil {
		logger.Errorf("board_partid_serialno_read() failed: %v", err)
	} else {
		fmt.Fprintf(w, "Part ID Number: 0x%08X 0x%08X\n", p.PartID[0], p.PartID[1])
		fmt.Fprintf(w, "Serial Number: %s\n", radio.FormatSerial(p.Serial()))
	}

	rates, err := b.SampleRates()
	if err != nil {
		logger.Errorf("get_samplerates() failed: %v", err)
		return
	}
	fmt.Fprintln(w, "Supported sample rates:")
	for _, r := range rates {
		fmt.Fprintf(w, "\t%f MSPS\n", float64(r)*0.000001)
	}
}
