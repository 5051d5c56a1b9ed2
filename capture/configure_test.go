package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
	"github.com/jrwynneiii/hydrasdr-tools/radio/mock"
)

var configureSteps = []string{
	"SetFrequency",
	"SetSampleRate",
	"SetSampleType",
	"SetLinearityGain",
	"SetBiasTee",
}

func openMock(t *testing.T, cfg mock.BoardConfig) (radio.Board, *mock.Board) {
	t.Helper()
	drv := mock.New(cfg)
	b, err := drv.Open()
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, drv.Board(0)
}

func defaultConfig() Config {
	return Config{
		Frequency:  433920000,
		SampleRate: 2500000,
		SampleType: radio.Float32IQ,
		Gain:       21,
		BiasTee:    true,
	}
}

func TestConfigureAppliesInOrder(t *testing.T) {
	b, board := openMock(t, mock.DefaultBoard())

	require.NoError(t, Configure(b, defaultConfig(), quietLogger()))
	assert.Equal(t, configureSteps, board.Calls())

	freq, rate, st, gain, bias := board.Settings()
	assert.Equal(t, uint64(433920000), freq)
	assert.Equal(t, uint32(2500000), rate)
	assert.Equal(t, radio.Float32IQ, st)
	assert.Equal(t, uint8(21), gain)
	assert.True(t, bias)
}

func TestConfigureStopsAtFirstFailure(t *testing.T) {
	for i, step := range configureSteps {
		t.Run(step, func(t *testing.T) {
			cfg := mock.DefaultBoard()
			cfg.Fail = map[string]error{step: radio.ErrLibusb}
			b, board := openMock(t, cfg)

			err := Configure(b, defaultConfig(), quietLogger())
			require.Error(t, err)
			assert.True(t, errors.Is(err, radio.ErrLibusb))
			assert.Contains(t, err.Error(), "HYDRASDR_ERROR_LIBUSB")
			assert.Equal(t, configureSteps[:i+1], board.Calls())
		})
	}
}

func TestConfigureRejectsUnknownSampleType(t *testing.T) {
	for _, st := range []radio.SampleType{-1, radio.SampleTypeEnd, 42} {
		b, board := openMock(t, mock.DefaultBoard())
		cfg := defaultConfig()
		cfg.SampleType = st

		err := Configure(b, cfg, quietLogger())
		assert.ErrorIs(t, err, ErrInvalidSampleType)
		assert.Equal(t, configureSteps[:2], board.Calls())
	}
}

func TestConfigureGainOutOfRange(t *testing.T) {
	b, _ := openMock(t, mock.DefaultBoard())
	cfg := defaultConfig()
	cfg.Gain = 22

	err := Configure(b, cfg, quietLogger())
	assert.ErrorIs(t, err, radio.ErrInvalidParam)
	assert.Contains(t, err.Error(), "failed set linearity gain")
}
