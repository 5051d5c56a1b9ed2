//go:build cgo

// Package libhydrasdr drives HydraSDR boards through the vendor library.
package libhydrasdr

/*
#cgo CFLAGS: -I/usr/local/include/libhydrasdr -I/usr/include/libhydrasdr
#cgo LDFLAGS: -L/usr/local/lib -lhydrasdr

#include <stdint.h>
#include <stdlib.h>
#include <hydrasdr.h>

extern int goRxCallback(hydrasdr_transfer_t *transfer);

static inline int rxCallback(hydrasdr_transfer_t *transfer) {
	return goRxCallback(transfer);
}

static inline int startRx(struct hydrasdr_device *dev, uintptr_t handle) {
	return hydrasdr_start_rx(dev, rxCallback, (void *)handle);
}
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"

	"periph.io/x/conn/v3/gpio"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

const (
	DriverName = "libhydrasdr"

	versionStringLen = 255
)

type Driver struct{}

func init() {
	radio.Register(Driver{})
}

func (Driver) Name() string {
	return DriverName
}

func (Driver) LibVersion() radio.LibVersion {
	var v C.hydrasdr_lib_version_t
	C.hydrasdr_lib_version(&v)
	return radio.LibVersion{
		Major:    uint32(v.major_version),
		Minor:    uint32(v.minor_version),
		Revision: uint32(v.revision),
	}
}

func (Driver) Open() (radio.Board, error) {
	var dev *C.struct_hydrasdr_device
	if err := toError(C.hydrasdr_open(&dev)); err != nil {
		return nil, err
	}
	return &Board{dev: dev}, nil
}

func (Driver) OpenSerial(serial uint64) (radio.Board, error) {
	var dev *C.struct_hydrasdr_device
	if err := toError(C.hydrasdr_open_sn(&dev, C.uint64_t(serial))); err != nil {
		return nil, err
	}
	return &Board{dev: dev}, nil
}

// toError maps a library status to a radio.Error carrying the library's own
// symbolic name.
func toError(ret C.int) error {
	if ret == C.HYDRASDR_SUCCESS {
		return nil
	}
	return &radio.Error{Code: int(ret), Name: C.GoString(C.hydrasdr_error_name(C.enum_hydrasdr_error(ret)))}
}

type Board struct {
	dev *C.struct_hydrasdr_device

	mu     sync.Mutex
	handle cgo.Handle
}

func (b *Board) Close() error {
	if b.dev == nil {
		return radio.ErrInvalidParam
	}
	return release(b.StopRx, func() error {
		err := toError(C.hydrasdr_close(b.dev))
		b.dev = nil
		return err
	})
}

func (b *Board) BoardID() (uint8, string, error) {
	var id C.uint8_t
	if err := toError(C.hydrasdr_board_id_read(b.dev, &id)); err != nil {
		return 0, "", err
	}
	return uint8(id), C.GoString(C.hydrasdr_board_id_name(C.enum_hydrasdr_board_id(id))), nil
}

func (b *Board) Firmware() (string, error) {
	buf := make([]byte, versionStringLen+1)
	if err := toError(C.hydrasdr_version_string_read(b.dev, (*C.char)(unsafe.Pointer(&buf[0])), versionStringLen)); err != nil {
		return "", err
	}
	return C.GoString((*C.char)(unsafe.Pointer(&buf[0]))), nil
}

func (b *Board) PartIDSerialNo() (radio.PartIDSerialNo, error) {
	var ps C.hydrasdr_read_partid_serialno_t
	if err := toError(C.hydrasdr_board_partid_serialno_read(b.dev, &ps)); err != nil {
		return radio.PartIDSerialNo{}, err
	}
	var out radio.PartIDSerialNo
	for i := range out.PartID {
		out.PartID[i] = uint32(ps.part_id[i])
	}
	for i := range out.SerialNo {
		out.SerialNo[i] = uint32(ps.serial_no[i])
	}
	return out, nil
}

// SampleRates queries the count first, then the list, as the library
// expects.
func (b *Board) SampleRates() ([]uint32, error) {
	var count C.uint32_t
	if err := toError(C.hydrasdr_get_samplerates(b.dev, &count, 0)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	rates := make([]C.uint32_t, count)
	if err := toError(C.hydrasdr_get_samplerates(b.dev, &rates[0], count)); err != nil {
		return nil, err
	}
	out := make([]uint32, len(rates))
	for i, r := range rates {
		out[i] = uint32(r)
	}
	return out, nil
}

func (b *Board) SetFrequency(hz uint64) error {
	return toError(C.hydrasdr_set_freq(b.dev, C.uint64_t(hz)))
}

func (b *Board) SetSampleRate(sps uint32) error {
	return toError(C.hydrasdr_set_samplerate(b.dev, C.uint32_t(sps)))
}

func (b *Board) SetSampleType(t radio.SampleType) error {
	return toError(C.hydrasdr_set_sample_type(b.dev, C.enum_hydrasdr_sample_type(t)))
}

func (b *Board) SetLinearityGain(gain uint8) error {
	return toError(C.hydrasdr_set_linearity_gain(b.dev, C.uint8_t(gain)))
}

func (b *Board) SetBiasTee(enabled bool) error {
	var v C.uint8_t
	if enabled {
		v = 1
	}
	return toError(C.hydrasdr_set_rf_bias(b.dev, v))
}

func (b *Board) StartRx(cb radio.Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle != 0 {
		return radio.ErrBusy
	}
	h := cgo.NewHandle(cb)
	err := start(
		func() error { return toError(C.startRx(b.dev, C.uintptr_t(h))) },
		func() error { return toError(C.hydrasdr_stop_rx(b.dev)) },
	)
	if err != nil {
		h.Delete()
		return err
	}
	b.handle = h
	return nil
}

// StopRx returns once the library's streaming thread is gone, so the
// callback handle can be released.
func (b *Board) StopRx() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == 0 {
		return nil
	}
	err := toError(C.hydrasdr_stop_rx(b.dev))
	b.handle.Delete()
	b.handle = 0
	return err
}

func (b *Board) IsStreaming() bool {
	return C.hydrasdr_is_streaming(b.dev) == C.HYDRASDR_TRUE
}

func (b *Board) GPIORead(port, pin uint8) (gpio.Level, error) {
	var v C.uint8_t
	if err := toError(C.hydrasdr_gpio_read(b.dev, C.hydrasdr_gpio_port_t(port), C.hydrasdr_gpio_pin_t(pin), &v)); err != nil {
		return gpio.Low, err
	}
	return gpio.Level(v != 0), nil
}

func (b *Board) GPIODirRead(port, pin uint8) (radio.Direction, error) {
	var v C.uint8_t
	if err := toError(C.hydrasdr_gpiodir_read(b.dev, C.hydrasdr_gpio_port_t(port), C.hydrasdr_gpio_pin_t(pin), &v)); err != nil {
		return radio.Input, err
	}
	if v == 1 {
		return radio.Output, nil
	}
	return radio.Input, nil
}

func (b *Board) GPIOWrite(port, pin uint8, level gpio.Level) error {
	var v C.uint8_t
	if level {
		v = 1
	}
	return toError(C.hydrasdr_gpio_write(b.dev, C.hydrasdr_gpio_port_t(port), C.hydrasdr_gpio_pin_t(pin), v))
}
