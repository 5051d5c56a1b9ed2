package radio

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"periph.io/x/conn/v3/gpio"
)

type SampleType int

const (
	Float32IQ SampleType = iota
	Float32Real
	Int16IQ
	Int16Real
	Uint16Real
	Raw
	SampleTypeEnd
)

var sampleTypeNames = map[SampleType]string{
	Float32IQ:   "FloatIQ",
	Float32Real: "FloatReal",
	Int16IQ:     "Int16IQ",
	Int16Real:   "Int16Real",
	Uint16Real:  "Uint16Real",
	Raw:         "Raw",
}

func (t SampleType) String() string {
	if name, ok := sampleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SampleType(%d)", int(t))
}

// Valid reports whether t is inside the library's sample type enumeration.
func (t SampleType) Valid() bool {
	return t >= Float32IQ && t < SampleTypeEnd
}

// BytesPerSample is the size of one sample of type t, I and Q combined for
// the IQ types. Unknown types fall back to the raw stream size.
func BytesPerSample(t SampleType) int {
	switch t {
	case Float32IQ:
		return 8
	case Float32Real:
		return 4
	case Int16IQ:
		return 4
	case Int16Real, Uint16Real, Raw:
		return 2
	default:
		return 2
	}
}

// Transfer is one block of samples handed to a Callback by the streaming
// path. Samples is only valid for the duration of the callback.
type Transfer struct {
	Samples        []byte
	SampleCount    int
	DroppedSamples uint64
	SampleType     SampleType
}

// Callback receives delivered sample blocks. Returning false asks the driver
// to stop delivering.
type Callback func(t *Transfer) bool

type LibVersion struct {
	Major    uint32
	Minor    uint32
	Revision uint32
}

func (v LibVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

type PartIDSerialNo struct {
	PartID   [2]uint32
	SerialNo [4]uint32
}

// Serial is the 64 bit board serial number made of the two low words.
func (p PartIDSerialNo) Serial() uint64 {
	return uint64(p.SerialNo[2])<<32 | uint64(p.SerialNo[3])
}

type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "out(1)"
	}
	return "in(0)"
}

const (
	NumPorts = 8
	NumPins  = 32

	MaxPort = NumPorts - 1
	MaxPin  = NumPins - 1
)

type Identity interface {
	BoardID() (id uint8, name string, err error)
	Firmware() (string, error)
	PartIDSerialNo() (PartIDSerialNo, error)
	SampleRates() ([]uint32, error)
}

type Receiver interface {
	SampleRates() ([]uint32, error)
	SetFrequency(hz uint64) error
	SetSampleRate(sps uint32) error
	SetSampleType(t SampleType) error
	SetLinearityGain(gain uint8) error
	SetBiasTee(enabled bool) error
	StartRx(cb Callback) error
	StopRx() error
	IsStreaming() bool
}

type GPIO interface {
	GPIORead(port, pin uint8) (gpio.Level, error)
	GPIODirRead(port, pin uint8) (Direction, error)
	GPIOWrite(port, pin uint8, level gpio.Level) error
}

// Board is one opened device. Close releases it and must be called exactly
// once.
type Board interface {
	io.Closer
	Identity
	Receiver
	GPIO
}

type Driver interface {
	Name() string
	LibVersion() LibVersion
	// Open opens the first board not already in use.
	Open() (Board, error)
	OpenSerial(serial uint64) (Board, error)
}

// Prober is implemented by drivers that can describe their backend, such
// as loaded modules or attached devices, without opening a board.
type Prober interface {
	Probe(logger *log.Logger)
}

// FormatSerial renders a serial number the way the board reports it.
func FormatSerial(serial uint64) string {
	return fmt.Sprintf("0x%08X%08X", uint32(serial>>32), uint32(serial))
}
