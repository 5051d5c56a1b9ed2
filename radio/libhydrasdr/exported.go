//go:build cgo

package libhydrasdr

// #include <hydrasdr.h>
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

// goRxCallback runs on the library's streaming thread for every sample
// block. The transfer context carries the cgo.Handle of the Go callback.
//
//export goRxCallback
func goRxCallback(t *C.hydrasdr_transfer_t) C.int {
	cb, ok := cgo.Handle(uintptr(t.ctx)).Value().(radio.Callback)
	if !ok {
		return 1
	}

	stype := radio.SampleType(t.sample_type)
	size := int(t.sample_count) * radio.BytesPerSample(stype)
	var samples []byte
	if t.samples != nil && size > 0 {
		samples = unsafe.Slice((*byte)(t.samples), size)
	}

	if cb(&radio.Transfer{
		Samples:        samples,
		SampleCount:    int(t.sample_count),
		DroppedSamples: uint64(t.dropped_samples),
		SampleType:     stype,
	}) {
		return 0
	}
	return 1
}
