//go:build cgo

package soapy

import (
	"encoding/binary"
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"

	"github.com/pothosware/go-soapy-sdr/pkg/device"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

const readTimeoutUs = 100000

type Board struct {
	dev     *device.SDRDevice
	serial  string
	release func()

	mu         sync.Mutex
	sampleType radio.SampleType
	stop       chan struct{}
	done       chan struct{}
	streaming  atomic.Bool
}

func (b *Board) Close() error {
	if b.dev == nil {
		return radio.ErrInvalidParam
	}
	if err := b.StopRx(); err != nil {
		return err
	}
	err := b.dev.Unmake()
	b.dev = nil
	b.release()
	if err != nil {
		log.Errorf("Could not close SoapySDR device: %v", err)
		return radio.ErrOther
	}
	return nil
}

// BoardID is not exposed by SoapySDR.
func (b *Board) BoardID() (uint8, string, error) {
	return 0, "", radio.ErrUnsupported
}

func (b *Board) Firmware() (string, error) {
	info := b.dev.GetHardwareInfo()
	if fw, ok := info["firmware"]; ok {
		return fw, nil
	}
	if fw, ok := info["version"]; ok {
		return fw, nil
	}
	return b.dev.GetHardwareKey(), nil
}

func (b *Board) PartIDSerialNo() (radio.PartIDSerialNo, error) {
	serial, err := strconv.ParseUint(b.serial, 16, 64)
	if err != nil {
		return radio.PartIDSerialNo{}, radio.ErrUnsupported
	}
	return radio.PartIDSerialNo{
		SerialNo: [4]uint32{0, 0, uint32(serial >> 32), uint32(serial)},
	}, nil
}

func (b *Board) SampleRates() ([]uint32, error) {
	rates := b.dev.ListSampleRates(device.DirectionRX, 0)
	out := make([]uint32, 0, len(rates))
	for _, r := range rates {
		out = append(out, uint32(r))
	}
	return out, nil
}

func (b *Board) SetFrequency(hz uint64) error {
	log.Debugf("Setting frequency to %d", hz)
	if err := b.dev.SetFrequency(device.DirectionRX, 0, float64(hz), nil); err != nil {
		log.Debugf("Could not set frequency! %s", err.Error())
		return radio.ErrInvalidParam
	}
	return nil
}

func (b *Board) SetSampleRate(sps uint32) error {
	log.Debugf("Setting sample rate to %d", sps)
	if err := b.dev.SetSampleRate(device.DirectionRX, 0, float64(sps)); err != nil {
		log.Debugf("Could not set sample rate! %s", err.Error())
		return radio.ErrInvalidParam
	}
	return nil
}

// SetSampleType accepts the two stream formats this driver converts:
// complex float32 and complex int16.
func (b *Board) SetSampleType(t radio.SampleType) error {
	switch t {
	case radio.Float32IQ, radio.Int16IQ:
	case radio.Float32Real, radio.Int16Real, radio.Uint16Real, radio.Raw:
		return radio.ErrUnsupported
	default:
		return radio.ErrInvalidParam
	}
	b.mu.Lock()
	b.sampleType = t
	b.mu.Unlock()
	return nil
}

func (b *Board) SetLinearityGain(gain uint8) error {
	if err := b.dev.SetGain(device.DirectionRX, 0, float64(gain)); err != nil {
		log.Debugf("Could not set gain! %s", err.Error())
		return radio.ErrInvalidParam
	}
	return nil
}

func (b *Board) SetBiasTee(enabled bool) error {
	if err := b.dev.WriteSetting("biastee", strconv.FormatBool(enabled)); err != nil {
		log.Debugf("Could not set bias-tee! %s", err.Error())
		return radio.ErrInvalidParam
	}
	return nil
}

// StartRx sets up and activates an IQ stream, then reads it from a goroutine
// and hands every block to cb.
func (b *Board) StartRx(cb radio.Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop != nil {
		return radio.ErrBusy
	}

	var r reader
	var err error
	log.Debug("Creating the IQ stream")
	switch b.sampleType {
	case radio.Float32IQ:
		r, err = newCF32Reader(b.dev)
	default:
		r, err = newCS16Reader(b.dev)
	}
	if err != nil {
		log.Errorf("Could not setup SDR stream! %s", err.Error())
		return radio.ErrStreamingThreadErr
	}

	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	b.streaming.Store(true)
	go b.deliver(r, cb, b.sampleType, b.stop, b.done)
	return nil
}

func (b *Board) deliver(r reader, cb radio.Callback, stype radio.SampleType, stop, done chan struct{}) {
	defer close(done)
	defer b.streaming.Store(false)
	defer r.close()

	drops := dropCounter{block: r.blockSize()}
	for {
		select {
		case <-stop:
			return
		default:
		}
		samples, n, err := r.read()
		switch drops.triage(err) {
		case stopReading:
			log.Errorf("SoapySDR stream read failed: %v", err)
			return
		case retryRead:
			if err != nil {
				log.Debugf("SoapySDR stream read: %v", err)
			}
			continue
		}
		if n == 0 {
			continue
		}
		t := &radio.Transfer{Samples: samples, SampleCount: n, SampleType: stype, DroppedSamples: drops.take()}
		if !cb(t) {
			return
		}
	}
}

func (b *Board) StopRx() error {
	b.mu.Lock()
	stop, done := b.stop, b.done
	b.stop, b.done = nil, nil
	b.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

func (b *Board) IsStreaming() bool {
	return b.streaming.Load()
}

func (b *Board) GPIORead(port, pin uint8) (gpio.Level, error) {
	return gpio.Low, radio.ErrUnsupported
}

func (b *Board) GPIODirRead(port, pin uint8) (radio.Direction, error) {
	return radio.Input, radio.ErrUnsupported
}

func (b *Board) GPIOWrite(port, pin uint8, level gpio.Level) error {
	return radio.ErrUnsupported
}

// reader wraps one activated SoapySDR stream and returns its samples in the
// byte layout the library would deliver.
type reader interface {
	read() ([]byte, int, error)
	blockSize() uint64
	close()
}

type cs16Reader struct {
	stream *device.SDRStreamCS16
	buf    [][]int16
	out    []byte
	mtu    uint
}

func newCS16Reader(dev *device.SDRDevice) (*cs16Reader, error) {
	stream, err := dev.SetupSDRStreamCS16(device.DirectionRX, []uint{0}, nil)
	if err != nil {
		return nil, err
	}
	mtu := uint(stream.GetMTU())
	r := &cs16Reader{
		stream: stream,
		buf:    [][]int16{make([]int16, 2*mtu)},
		out:    make([]byte, 4*mtu),
		mtu:    mtu,
	}
	log.Debug("Activating IQ stream...")
	if err := stream.Activate(0, 0, 0); err != nil {
		stream.Close()
		return nil, err
	}
	return r, nil
}

func (r *cs16Reader) read() ([]byte, int, error) {
	flags := make([]int, 1)
	_, n, err := r.stream.Read(r.buf, r.mtu, flags, readTimeoutUs)
	if err != nil {
		return nil, 0, err
	}
	for i, v := range r.buf[0][:2*n] {
		binary.LittleEndian.PutUint16(r.out[2*i:], uint16(v))
	}
	return r.out[:4*n], int(n), nil
}

func (r *cs16Reader) blockSize() uint64 { return uint64(r.mtu) }

func (r *cs16Reader) close() {
	log.Debug("Deactivating IQ stream...")
	if err := r.stream.Deactivate(0, 0); err != nil {
		log.Errorf("Could not deactivate the IQ stream! %s", err.Error())
	}
	if err := r.stream.Close(); err != nil {
		log.Errorf("Could not close the IQ stream! %s", err.Error())
	}
}

type cf32Reader struct {
	stream *device.SDRStreamCF32
	buf    [][]complex64
	out    []byte
	mtu    uint
}

func newCF32Reader(dev *device.SDRDevice) (*cf32Reader, error) {
	stream, err := dev.SetupSDRStreamCF32(device.DirectionRX, []uint{0}, nil)
	if err != nil {
		return nil, err
	}
	mtu := uint(stream.GetMTU())
	r := &cf32Reader{
		stream: stream,
		buf:    [][]complex64{make([]complex64, mtu)},
		out:    make([]byte, 8*mtu),
		mtu:    mtu,
	}
	log.Debug("Activating IQ stream...")
	if err := stream.Activate(0, 0, 0); err != nil {
		stream.Close()
		return nil, err
	}
	return r, nil
}

func (r *cf32Reader) read() ([]byte, int, error) {
	flags := make([]int, 1)
	_, n, err := r.stream.Read(r.buf, r.mtu, flags, readTimeoutUs)
	if err != nil {
		return nil, 0, err
	}
	for i, v := range r.buf[0][:n] {
		binary.LittleEndian.PutUint32(r.out[8*i:], math.Float32bits(real(v)))
		binary.LittleEndian.PutUint32(r.out[8*i+4:], math.Float32bits(imag(v)))
	}
	return r.out[:8*n], int(n), nil
}

func (r *cf32Reader) blockSize() uint64 { return uint64(r.mtu) }

func (r *cf32Reader) close() {
	log.Debug("Deactivating IQ stream...")
	if err := r.stream.Deactivate(0, 0); err != nil {
		log.Errorf("Could not deactivate the IQ stream! %s", err.Error())
	}
	if err := r.stream.Close(); err != nil {
		log.Errorf("Could not close the IQ stream! %s", err.Error())
	}
}

var _ radio.Board = (*Board)(nil)
