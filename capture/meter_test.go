package capture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMSPS(t *testing.T) {
	assert.InDelta(t, 2.5, MSPS(10000000, 4, time.Second), 1e-9)
	assert.InDelta(t, 1.25, MSPS(10000000, 8, time.Second), 1e-9)
	assert.Zero(t, MSPS(100, 4, 0))
	assert.Zero(t, MSPS(100, 0, time.Second))
}

func TestMeterInstantAndAverage(t *testing.T) {
	t0 := time.Unix(1700000000, 0)
	m := NewMeter(4, t0)

	s := m.Sample(t0.Add(time.Second), 10000000, 0)
	assert.Equal(t, time.Second, s.Elapsed)
	assert.InDelta(t, 2.5, s.InstMSPS, 1e-9)
	assert.InDelta(t, 2.5, s.AvgMSPS, 1e-9)

	s = m.Sample(t0.Add(2*time.Second), 12000000, 7)
	assert.InDelta(t, 0.5, s.InstMSPS, 1e-9)
	assert.InDelta(t, 1.5, s.AvgMSPS, 1e-9)
	assert.Equal(t, uint64(7), s.Dropped)
	assert.InDelta(t, 12000000.0/(1024*1024), s.VolumeMB(), 1e-9)
}

func TestMeterCaptureScenario(t *testing.T) {
	t0 := time.Unix(0, 0)
	m := NewMeter(4, t0)

	elapsed := 3 * time.Second
	s := m.Sample(t0.Add(elapsed), 8000000, 0)
	want := (8000000.0 / 4) / (elapsed.Seconds() * 1000000)
	assert.InDelta(t, want, s.AvgMSPS, 1e-12)
}

func TestMeterSummary(t *testing.T) {
	t0 := time.Unix(0, 0)
	m := NewMeter(2, t0)
	assert.Equal(t, Summary{}, m.Summary())

	m.Sample(t0.Add(time.Second), 2000000, 0)
	sum := m.Summary()
	assert.Equal(t, 1, sum.Samples)
	assert.InDelta(t, 1.0, sum.MeanMSPS, 1e-9)
	assert.Zero(t, sum.StdDevMSPS)

	m.Sample(t0.Add(2*time.Second), 8000000, 0)
	sum = m.Summary()
	assert.Equal(t, 2, sum.Samples)
	assert.InDelta(t, 2.0, sum.MeanMSPS, 1e-9)
	assert.InDelta(t, math.Sqrt2, sum.StdDevMSPS, 1e-9)
}
