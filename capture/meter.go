package capture

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

const bytesPerMB = 1024 * 1024

type Snapshot struct {
	Elapsed  time.Duration
	InstMSPS float64
	AvgMSPS  float64
	Bytes    uint64
	Dropped  uint64
}

func (s Snapshot) VolumeMB() float64 {
	return float64(s.Bytes) / bytesPerMB
}

// MSPS converts bytes delivered over d into mega samples per second.
func MSPS(bytes uint64, bytesPerSample int, d time.Duration) float64 {
	secs := d.Seconds()
	if secs <= 0 || bytesPerSample <= 0 {
		return 0
	}
	return (float64(bytes) / float64(bytesPerSample)) / (secs * 1e6)
}

// Meter turns the running byte counter into instantaneous and average
// rates.
type Meter struct {
	bps       int
	start     time.Time
	last      time.Time
	lastBytes uint64
	rates     []float64
}

func NewMeter(bytesPerSample int, start time.Time) *Meter {
	return &Meter{bps: bytesPerSample, start: start, last: start}
}

func (m *Meter) Sample(now time.Time, bytes, dropped uint64) Snapshot {
	s := Snapshot{
		Elapsed:  now.Sub(m.start),
		InstMSPS: MSPS(bytes-m.lastBytes, m.bps, now.Sub(m.last)),
		AvgMSPS:  MSPS(bytes, m.bps, now.Sub(m.start)),
		Bytes:    bytes,
		Dropped:  dropped,
	}
	m.rates = append(m.rates, s.InstMSPS)
	m.last = now
	m.lastBytes = bytes
	return s
}

type Summary struct {
	Samples    int
	MeanMSPS   float64
	StdDevMSPS float64
}

func (m *Meter) Summary() Summary {
	s := Summary{Samples: len(m.rates)}
	switch len(m.rates) {
	case 0:
	case 1:
		s.MeanMSPS = m.rates[0]
	default:
		s.MeanMSPS, s.StdDevMSPS = stat.MeanStdDev(m.rates, nil)
	}
	return s
}
