package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrwynneiii/hydrasdr-tools/config"
	"github.com/jrwynneiii/hydrasdr-tools/radio"
	"github.com/jrwynneiii/hydrasdr-tools/radio/mock"
)

func TestParseSerial(t *testing.T) {
	var out bytes.Buffer
	serial, err := ParseSerial("0x36A8C8DC2B4A1E53", &out)
	require.NoError(t, err)
	require.NotNil(t, serial)
	assert.Equal(t, uint64(0x36A8C8DC2B4A1E53), *serial)
	assert.Equal(t, "Board serial number to open: 0x36A8C8DC2B4A1E53\n", out.String())

	serial, err = ParseSerial("", &out)
	require.NoError(t, err)
	assert.Nil(t, serial)

	_, err = ParseSerial("42abc", &out)
	assert.ErrorIs(t, err, radio.ErrNotANumber)
}

func TestOpenDriverShapesMock(t *testing.T) {
	conf := config.Default()
	conf.Mock.Boards = 3
	conf.Mock.Interval = time.Millisecond
	conf.Mock.MaxTransfers = 2

	drv, err := OpenDriver("mock", conf)
	require.NoError(t, err)
	m := drv.(*mock.Driver)
	defer m.SetBoards(mock.DefaultBoard())

	serial := mock.DefaultBoard().Serial + 2
	b, err := OpenBoard(drv, &serial)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, serial, m.Board(2).Serial())

	_, err = OpenBoard(drv, &serial)
	assert.ErrorIs(t, err, radio.ErrBusy)
	assert.Contains(t, err.Error(), "open_sn(0x36A8C8DC2B4A1E55)")
}

func TestOpenDriverUnknown(t *testing.T) {
	_, err := OpenDriver("airspy", config.Default())
	assert.Error(t, err)
}

func TestVars(t *testing.T) {
	conf := config.Default()
	conf.Capture.BiasTee = true
	vars := Vars(conf)
	assert.Equal(t, "100000000", vars["freq"])
	assert.Equal(t, "2500000", vars["sample_rate"])
	assert.Equal(t, "2", vars["sample_type"])
	assert.Equal(t, "1", vars["bias_tee"])
	assert.Equal(t, "libhydrasdr", vars["driver"])
}
