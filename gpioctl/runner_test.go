package gpioctl

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
	"github.com/jrwynneiii/hydrasdr-tools/radio/mock"
)

type access struct {
	op        string
	port, pin uint8
}

// recorder is a GPIO bank that remembers every access.
type recorder struct {
	accesses []access
	failAt   int
	high     map[[2]uint8]bool
}

func (r *recorder) fail(op string, port, pin uint8) error {
	r.accesses = append(r.accesses, access{op, port, pin})
	if r.failAt > 0 && len(r.accesses) == r.failAt {
		return radio.ErrLibusb
	}
	return nil
}

func (r *recorder) GPIORead(port, pin uint8) (gpio.Level, error) {
	if err := r.fail("read", port, pin); err != nil {
		return gpio.Low, err
	}
	return gpio.Level(r.high[[2]uint8{port, pin}]), nil
}

func (r *recorder) GPIODirRead(port, pin uint8) (radio.Direction, error) {
	return radio.Input, r.fail("dir", port, pin)
}

func (r *recorder) GPIOWrite(port, pin uint8, level gpio.Level) error {
	if err := r.fail("write", port, pin); err != nil {
		return err
	}
	if r.high == nil {
		r.high = map[[2]uint8]bool{}
	}
	r.high[[2]uint8{port, pin}] = bool(level)
	return nil
}

func (r *recorder) reads() []access {
	var out []access
	for _, a := range r.accesses {
		if a.op == "read" {
			out = append(out, a)
		}
	}
	return out
}

func newRunner(dev radio.GPIO) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	return &Runner{Dev: dev, Out: &out, Log: log.New(io.Discard)}, &out
}

func TestRunSingleRead(t *testing.T) {
	_, prog, err := ParseArgs([]string{"-p", "0", "-n", "12", "-r"})
	require.NoError(t, err)

	drv := mock.New(mock.DefaultBoard())
	b, err := drv.Open()
	require.NoError(t, err)
	defer b.Close()

	r, out := newRunner(b)
	require.NoError(t, r.Run(prog))
	assert.Equal(t, "gpio[0][12] -> 0x00 out(1)\n", out.String())
	assert.Equal(t, []string{"GPIORead", "GPIODirRead"}, drv.Board(0).Calls())
}

func TestRunReadAllPortMajor(t *testing.T) {
	dev := &recorder{}
	r, out := newRunner(dev)
	require.NoError(t, r.Run(Program{{Kind: Read}}))

	reads := dev.reads()
	require.Len(t, reads, radio.NumPorts*radio.NumPins)
	for i, a := range reads {
		assert.Equal(t, uint8(i/radio.NumPins), a.port)
		assert.Equal(t, uint8(i%radio.NumPins), a.pin)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 256)
	assert.Equal(t, "gpio[0][ 0] -> 0x00 in(0)", lines[0])
	assert.Equal(t, "gpio[7][31] -> 0x00 in(0)", lines[255])
}

func TestRunReadPort(t *testing.T) {
	dev := &recorder{}
	r, _ := newRunner(dev)
	require.NoError(t, r.Run(Program{{Kind: SetPort, Value: 3}, {Kind: Read}}))

	reads := dev.reads()
	require.Len(t, reads, radio.NumPins)
	for i, a := range reads {
		assert.Equal(t, access{"read", 3, uint8(i)}, a)
	}
}

func TestRunWriteCarriesAddress(t *testing.T) {
	dev := &recorder{}
	r, out := newRunner(dev)
	prog := Program{
		{Kind: SetPort, Value: 1},
		{Kind: SetPin, Value: 13},
		{Kind: Write, Value: 1, Level: gpio.High},
		{Kind: Read},
		{Kind: SetPin, Value: 7},
		{Kind: Write, Value: 0, Level: gpio.Low},
	}
	require.NoError(t, r.Run(prog))
	assert.Equal(t, "0x01 -> gpio[1][13]\n"+
		"gpio[1][13] -> 0x01 in(0)\n"+
		"0x00 -> gpio[1][ 7]\n", out.String())
}

func TestRunWriteWithoutAddress(t *testing.T) {
	for _, prog := range []Program{
		{{Kind: Write, Level: gpio.High}},
		{{Kind: SetPort, Value: 0}, {Kind: Write, Level: gpio.High}},
		{{Kind: SetPin, Value: 0}, {Kind: Write, Level: gpio.High}},
	} {
		dev := &recorder{}
		r, _ := newRunner(dev)
		err := r.Run(prog)
		assert.ErrorIs(t, err, ErrAddressUnset, fmt.Sprint(prog))
		assert.Empty(t, dev.accesses)
	}
}

func TestRunAbortsOnDeviceFailure(t *testing.T) {
	dev := &recorder{failAt: 5}
	r, out := newRunner(dev)
	err := r.Run(Program{{Kind: Read}, {Kind: SetPort, Value: 0}, {Kind: SetPin, Value: 0}, {Kind: Write, Level: gpio.High}})
	require.Error(t, err)
	assert.ErrorIs(t, err, radio.ErrLibusb)

	// read p0n0, dir p0n0, read p0n1, dir p0n1, read p0n2 fails
	assert.Len(t, dev.accesses, 5)
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}
