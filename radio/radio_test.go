package radio_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
	_ "github.com/jrwynneiii/hydrasdr-tools/radio/mock"
)

func TestBytesPerSample(t *testing.T) {
	cases := map[radio.SampleType]int{
		radio.Float32IQ:      8,
		radio.Float32Real:    4,
		radio.Int16IQ:        4,
		radio.Int16Real:      2,
		radio.Uint16Real:     2,
		radio.Raw:            2,
		radio.SampleType(99): 2,
	}
	for st, want := range cases {
		assert.Equal(t, want, radio.BytesPerSample(st), st.String())
	}
}

func TestSampleTypeValid(t *testing.T) {
	assert.True(t, radio.Float32IQ.Valid())
	assert.True(t, radio.Raw.Valid())
	assert.False(t, radio.SampleTypeEnd.Valid())
	assert.False(t, radio.SampleType(-1).Valid())
	assert.Equal(t, "SampleType(-1)", radio.SampleType(-1).String())
}

func TestStatusError(t *testing.T) {
	assert.NoError(t, radio.StatusError(radio.Success))

	err := radio.StatusError(-6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, radio.ErrBusy))
	assert.False(t, errors.Is(err, radio.ErrNotFound))
	assert.Equal(t, "HYDRASDR_ERROR_BUSY (-6)", err.Error())

	wrapped := fmt.Errorf("failed set frequency: %w", radio.StatusError(-1000))
	assert.ErrorIs(t, wrapped, radio.ErrLibusb)

	assert.Equal(t, "unknown", radio.ErrorName(-42))
	assert.Equal(t, "HYDRASDR_TRUE", radio.ErrorName(radio.True))
}

func TestFormatSerial(t *testing.T) {
	assert.Equal(t, "0x36A8C8DC2B4A1E53", radio.FormatSerial(0x36A8C8DC2B4A1E53))
	assert.Equal(t, "0x0000000000000001", radio.FormatSerial(1))
}

func TestPartIDSerialNo(t *testing.T) {
	p := radio.PartIDSerialNo{SerialNo: [4]uint32{0, 0, 0x36A8C8DC, 0x2B4A1E53}}
	assert.Equal(t, uint64(0x36A8C8DC2B4A1E53), p.Serial())
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "out(1)", radio.Output.String())
	assert.Equal(t, "in(0)", radio.Input.String())
}

func TestLibVersionString(t *testing.T) {
	assert.Equal(t, "1.0.3", radio.LibVersion{Major: 1, Revision: 3}.String())
}

func TestLookup(t *testing.T) {
	d, err := radio.Lookup("MOCK")
	require.NoError(t, err)
	assert.Equal(t, "mock", d.Name())
	assert.Contains(t, radio.Drivers(), "mock")

	_, err = radio.Lookup("rtlsdr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock")
}

func TestParseU64(t *testing.T) {
	cases := map[string]uint64{
		"0x1A":               26,
		"0X1a":               26,
		"0b101":              5,
		"0B11":               3,
		"42":                 42,
		"0":                  0,
		"07":                 7,
		"0x36A8C8DC2B4A1E53": 0x36A8C8DC2B4A1E53,
	}
	for in, want := range cases {
		got, err := radio.ParseU64(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := radio.ParseU64("42abc")
	assert.ErrorIs(t, err, radio.ErrNotANumber)
	_, err = radio.ParseU64("0x10000000000000000")
	assert.ErrorIs(t, err, radio.ErrOutOfRange)

	for _, in := range []string{"42abc", "", "0x", "0b", "0b102", "0xZZ", "-1", "0x10000000000000000"} {
		_, err := radio.ParseU64(in)
		assert.Error(t, err, in)
	}
}
