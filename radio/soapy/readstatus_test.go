package soapy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pothosware/go-soapy-sdr/pkg/sdrerror"
	"github.com/stretchr/testify/assert"
)

func TestReadTriage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want readAction
	}{
		{"ok", nil, deliverBlock},
		{"timeout", sdrerror.Err(-1), retryRead},
		{"stream error", sdrerror.Err(-2), stopReading},
		{"corruption", sdrerror.Err(-3), stopReading},
		{"overflow", sdrerror.Err(-4), retryRead},
		{"unknown", sdrerror.Err(-99), stopReading},
		{"wrapped timeout", fmt.Errorf("read: %w", sdrerror.Err(-1)), retryRead},
		{"foreign", errors.New("usb gone"), stopReading},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := dropCounter{block: 1024}
			assert.Equal(t, c.want, d.triage(c.err))
		})
	}
}

func TestOverflowCountsIntoNextBlock(t *testing.T) {
	d := dropCounter{block: 1024}

	assert.Equal(t, retryRead, d.triage(sdrerror.Err(-4)))
	assert.Equal(t, retryRead, d.triage(sdrerror.Err(-1)))
	assert.Equal(t, retryRead, d.triage(sdrerror.Err(-4)))
	assert.Equal(t, deliverBlock, d.triage(nil))
	assert.Equal(t, uint64(2048), d.take())

	assert.Equal(t, deliverBlock, d.triage(nil))
	assert.Zero(t, d.take())
}
