// Package mock is a simulated HydraSDR board. It backs the tests and can be
// selected at runtime with --driver mock to exercise the tools without
// hardware.
package mock

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

const DriverName = "mock"

type BoardConfig struct {
	Serial      uint64
	BoardID     uint8
	BoardName   string
	Firmware    string
	PartID      [2]uint32
	SampleRates []uint32

	// Interval is the delay between two delivered transfers.
	Interval time.Duration
	// SamplesPerTransfer fixes the transfer size. Zero derives it from the
	// sample rate and Interval.
	SamplesPerTransfer int
	// MaxTransfers stops streaming after that many deliveries. Zero streams
	// until StopRx.
	MaxTransfers       int
	DroppedPerTransfer uint64

	// Fail makes the named operation (e.g. "SetFrequency") return the error.
	Fail map[string]error
}

func DefaultBoard() BoardConfig {
	return BoardConfig{
		Serial:      0x36A8C8DC2B4A1E53,
		BoardID:     0,
		BoardName:   "HYDRASDR RFONE",
		Firmware:    "HydraSDR RFOne v1.0.0 (mock)",
		PartID:      [2]uint32{0x6906002B, 0x00000030},
		SampleRates: []uint32{10000000, 5000000, 2500000},
		Interval:    10 * time.Millisecond,
	}
}

type Driver struct {
	mu      sync.Mutex
	version radio.LibVersion
	boards  []*Board
}

func New(boards ...BoardConfig) *Driver {
	d := &Driver{version: radio.LibVersion{Major: 1, Minor: 0, Revision: 0}}
	d.SetBoards(boards...)
	return d
}

func init() {
	radio.Register(New(DefaultBoard()))
}

// SetBoards replaces the simulated boards. Boards that are currently open
// keep working but can no longer be opened again.
func (d *Driver) SetBoards(cfgs ...BoardConfig) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boards = d.boards[:0]
	for _, cfg := range cfgs {
		d.boards = append(d.boards, newBoard(cfg))
	}
}

func (d *Driver) Name() string {
	return DriverName
}

func (d *Driver) LibVersion() radio.LibVersion {
	return d.version
}

// Board returns the i-th simulated board for inspection.
func (d *Driver) Board(i int) *Board {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.boards[i]
}

func (d *Driver) Open() (radio.Board, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.boards {
		if b.acquire() {
			return b, nil
		}
	}
	return nil, radio.ErrNotFound
}

func (d *Driver) OpenSerial(serial uint64) (radio.Board, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.boards {
		if b.cfg.Serial != serial {
			continue
		}
		if !b.acquire() {
			return nil, radio.ErrBusy
		}
		return b, nil
	}
	return nil, radio.ErrNotFound
}

// noise fills transfers with something that is not all zeroes.
func noise(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

func (d *Driver) Probe(logger *log.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	logger.Infof("Simulating %d boards", len(d.boards))
	for i, b := range d.boards {
		logger.Info("Board", "index", i, "name", b.cfg.BoardName, "serial", radio.FormatSerial(b.cfg.Serial))
	}
}
