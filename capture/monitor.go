package capture

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type Reporter interface {
	Report(s Snapshot)
}

type ReporterFunc func(s Snapshot)

func (f ReporterFunc) Report(s Snapshot) {
	f(s)
}

type StreamState interface {
	IsStreaming() bool
}

// Monitor polls the device and the counters once per Interval until stop
// is requested.
type Monitor struct {
	Stream         StreamState
	Counters       *Counters
	BytesPerSample int
	Interval       time.Duration
	Reporters      []Reporter
	Now            func() time.Time
	Log            *log.Logger

	meter *Meter
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Run blocks until stop is requested by someone else, the device stops
// streaming or ctx ends. The latter two request stop themselves.
func (m *Monitor) Run(ctx context.Context) {
	logger := m.Log
	if logger == nil {
		logger = log.Default()
	}
	interval := m.Interval
	if interval <= 0 {
		interval = time.Second
	}
	m.meter = NewMeter(m.BytesPerSample, m.now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Counters.RequestStop()
			return
		case <-m.Counters.Done():
			return
		case <-ticker.C:
		}

		if !m.Stream.IsStreaming() {
			logger.Error("Device stopped streaming")
			m.Counters.RequestStop()
			return
		}
		if m.Counters.Stopped() {
			return
		}

		s := m.meter.Sample(m.now(), m.Counters.Bytes(), m.Counters.Dropped())
		for _, r := range m.Reporters {
			r.Report(s)
		}
	}
}

func (m *Monitor) Summary() Summary {
	if m.meter == nil {
		return Summary{}
	}
	return m.meter.Summary()
}
