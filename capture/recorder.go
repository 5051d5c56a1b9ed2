package capture

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

// Recorder relays delivered sample blocks to a writer and keeps the byte and
// drop counters.
type Recorder struct {
	w        io.Writer
	counters *Counters
	log      *log.Logger
}

// NewRecorder builds the delivery callback. w may be nil, in which case only
// the counters move.
func NewRecorder(w io.Writer, counters *Counters, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{w: w, counters: counters, log: logger}
}

// OnTransfer is the radio.Callback. It runs on the driver's delivery path and
// never asks the driver to stop: stopping is done by the foreground through
// StopRx. A short write is logged and the block still counts as delivered.
func (r *Recorder) OnTransfer(t *radio.Transfer) bool {
	if r.counters.Stopped() {
		return true
	}

	if t.DroppedSamples > 0 {
		r.counters.AddDropped(t.DroppedSamples)
	}

	chunk := ChunkBytes(t.SampleCount, t.SampleType)
	if r.w != nil && chunk > 0 {
		buf := t.Samples
		if len(buf) > chunk {
			buf = buf[:chunk]
		}
		n, err := r.w.Write(buf)
		if err != nil || n != chunk {
			r.log.Error("Disk write error", "written", n, "chunk", chunk, "err", err)
		}
	}

	r.counters.AddBytes(uint64(chunk))
	return true
}

// ChunkBytes is the size in bytes of count samples of type t.
func ChunkBytes(count int, t radio.SampleType) int {
	if count <= 0 {
		return 0
	}
	return count * radio.BytesPerSample(t)
}
