package soapy

import (
	"errors"

	"github.com/pothosware/go-soapy-sdr/pkg/sdrerror"
)

type readAction int

const (
	deliverBlock readAction = iota
	retryRead
	stopReading
)

// dropCounter turns SoapySDR read statuses into delivery decisions and
// carries overflow losses over to the next delivered block.
type dropCounter struct {
	// block is the number of samples counted as lost per overflow. SoapySDR
	// does not report the real amount, so one stream MTU is assumed.
	block   uint64
	pending uint64
}

func (d *dropCounter) triage(err error) readAction {
	if err == nil {
		return deliverBlock
	}
	var sdrErr sdrerror.SDRError
	if !errors.As(err, &sdrErr) {
		return stopReading
	}
	switch sdrErr.(type) {
	case *sdrerror.Timeout:
		return retryRead
	case *sdrerror.Overflow:
		d.pending += d.block
		return retryRead
	}
	return stopReading
}

// take returns the samples lost since the last delivered block and resets
// the count.
func (d *dropCounter) take() uint64 {
	n := d.pending
	d.pending = 0
	return n
}
