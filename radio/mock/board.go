package mock

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

const maxLinearityGain = 21

type Board struct {
	cfg BoardConfig

	mu     sync.Mutex
	open   bool
	closes int
	calls  []string

	frequency  uint64
	sampleRate uint32
	sampleType radio.SampleType
	gain       uint8
	biasTee    bool

	levels [radio.NumPorts][radio.NumPins]gpio.Level
	dirs   [radio.NumPorts][radio.NumPins]radio.Direction

	streaming atomic.Bool
	stop      chan struct{}
	done      chan struct{}
}

func newBoard(cfg BoardConfig) *Board {
	if len(cfg.SampleRates) == 0 {
		cfg.SampleRates = DefaultBoard().SampleRates
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultBoard().Interval
	}
	b := &Board{
		cfg:        cfg,
		sampleRate: cfg.SampleRates[len(cfg.SampleRates)-1],
		sampleType: radio.Int16IQ,
	}
	// LED1, R828D enable and Bias-T enable are outputs on the real board.
	b.dirs[0][12] = radio.Output
	b.dirs[1][7] = radio.Output
	b.dirs[1][13] = radio.Output
	b.levels[1][7] = gpio.High
	return b
}

func (b *Board) acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return false
	}
	b.open = true
	return true
}

// call records the operation and returns its configured failure, if any.
// Callers hold b.mu.
func (b *Board) call(op string) error {
	b.calls = append(b.calls, op)
	if !b.open {
		return radio.ErrInvalidParam
	}
	if err, ok := b.cfg.Fail[op]; ok {
		return err
	}
	return nil
}

// Calls returns the operations issued so far, in order.
func (b *Board) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// Closes reports how many times Close was called.
func (b *Board) Closes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closes
}

func (b *Board) Serial() uint64 {
	return b.cfg.Serial
}

func (b *Board) Settings() (frequency uint64, sampleRate uint32, sampleType radio.SampleType, gain uint8, biasTee bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frequency, b.sampleRate, b.sampleType, b.gain, b.biasTee
}

// Close releases the board even when stopping the stream fails.
func (b *Board) Close() error {
	stopErr := b.StopRx()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closes++
	if !b.open {
		return errors.Join(stopErr, radio.ErrInvalidParam)
	}
	b.open = false
	return stopErr
}

func (b *Board) BoardID() (uint8, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("BoardID"); err != nil {
		return 0, "", err
	}
	return b.cfg.BoardID, b.cfg.BoardName, nil
}

func (b *Board) Firmware() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("Firmware"); err != nil {
		return "", err
	}
	return b.cfg.Firmware, nil
}

func (b *Board) PartIDSerialNo() (radio.PartIDSerialNo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("PartIDSerialNo"); err != nil {
		return radio.PartIDSerialNo{}, err
	}
	return radio.PartIDSerialNo{
		PartID:   b.cfg.PartID,
		SerialNo: [4]uint32{0, 0, uint32(b.cfg.Serial >> 32), uint32(b.cfg.Serial)},
	}, nil
}

func (b *Board) SampleRates() ([]uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SampleRates"); err != nil {
		return nil, err
	}
	return append([]uint32(nil), b.cfg.SampleRates...), nil
}

func (b *Board) SetFrequency(hz uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SetFrequency"); err != nil {
		return err
	}
	b.frequency = hz
	return nil
}

// SetSampleRate accepts either one of the advertised rates or an index into
// the rate list, like the library does.
func (b *Board) SetSampleRate(sps uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SetSampleRate"); err != nil {
		return err
	}
	if int(sps) < len(b.cfg.SampleRates) {
		b.sampleRate = b.cfg.SampleRates[sps]
		return nil
	}
	for _, rate := range b.cfg.SampleRates {
		if rate == sps {
			b.sampleRate = sps
			return nil
		}
	}
	return radio.ErrInvalidParam
}

func (b *Board) SetSampleType(t radio.SampleType) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SetSampleType"); err != nil {
		return err
	}
	if !t.Valid() {
		return radio.ErrInvalidParam
	}
	b.sampleType = t
	return nil
}

func (b *Board) SetLinearityGain(gain uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SetLinearityGain"); err != nil {
		return err
	}
	if gain > maxLinearityGain {
		return radio.ErrInvalidParam
	}
	b.gain = gain
	return nil
}

func (b *Board) SetBiasTee(enabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("SetBiasTee"); err != nil {
		return err
	}
	b.biasTee = enabled
	b.levels[1][13] = gpio.Level(enabled)
	return nil
}

func (b *Board) StartRx(cb radio.Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("StartRx"); err != nil {
		return err
	}
	if b.stop != nil {
		return radio.ErrBusy
	}
	n := b.cfg.SamplesPerTransfer
	if n <= 0 {
		n = int(float64(b.sampleRate) * b.cfg.Interval.Seconds())
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	b.streaming.Store(true)
	go b.deliver(cb, b.sampleType, n, b.stop, b.done)
	return nil
}

func (b *Board) deliver(cb radio.Callback, stype radio.SampleType, count int, stop, done chan struct{}) {
	defer close(done)
	defer b.streaming.Store(false)

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	rng := noise(b.cfg.Serial)
	buf := make([]byte, count*radio.BytesPerSample(stype))
	for sent := 0; b.cfg.MaxTransfers == 0 || sent < b.cfg.MaxTransfers; sent++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		rng.Read(buf)
		t := radio.Transfer{
			Samples:        buf,
			SampleCount:    count,
			DroppedSamples: b.cfg.DroppedPerTransfer,
			SampleType:     stype,
		}
		if !cb(&t) {
			return
		}
	}
}

// StopRx ends the delivery goroutine and waits for it to return.
func (b *Board) StopRx() error {
	b.mu.Lock()
	stop, done := b.stop, b.done
	b.stop, b.done = nil, nil
	b.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.Fail["StopRx"]
}

func (b *Board) IsStreaming() bool {
	return b.streaming.Load()
}

func checkAddress(port, pin uint8) error {
	if port > radio.MaxPort || pin > radio.MaxPin {
		return radio.ErrInvalidParam
	}
	return nil
}

func (b *Board) GPIORead(port, pin uint8) (gpio.Level, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("GPIORead"); err != nil {
		return gpio.Low, err
	}
	if err := checkAddress(port, pin); err != nil {
		return gpio.Low, err
	}
	return b.levels[port][pin], nil
}

func (b *Board) GPIODirRead(port, pin uint8) (radio.Direction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("GPIODirRead"); err != nil {
		return radio.Input, err
	}
	if err := checkAddress(port, pin); err != nil {
		return radio.Input, err
	}
	return b.dirs[port][pin], nil
}

func (b *Board) GPIOWrite(port, pin uint8, level gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.call("GPIOWrite"); err != nil {
		return err
	}
	if err := checkAddress(port, pin); err != nil {
		return err
	}
	b.levels[port][pin] = level
	b.dirs[port][pin] = radio.Output
	return nil
}

var _ radio.Board = (*Board)(nil)
