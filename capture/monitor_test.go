package capture

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	on atomic.Bool
}

func (f *fakeStream) IsStreaming() bool {
	return f.on.Load()
}

func newFakeStream() *fakeStream {
	f := &fakeStream{}
	f.on.Store(true)
	return f
}

func runMonitor(ctx context.Context, m *Monitor) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not return")
	}
}

func TestMonitorStopsWhenStreamingEnds(t *testing.T) {
	stream := newFakeStream()
	counters := NewCounters()
	var reports []Snapshot
	m := &Monitor{
		Stream:         stream,
		Counters:       counters,
		BytesPerSample: 4,
		Interval:       2 * time.Millisecond,
		Log:            quietLogger(),
		Reporters: []Reporter{ReporterFunc(func(s Snapshot) {
			reports = append(reports, s)
			counters.AddBytes(4000)
			if len(reports) == 3 {
				stream.on.Store(false)
			}
		})},
	}

	waitDone(t, runMonitor(context.Background(), m))
	assert.True(t, counters.Stopped())
	require.Len(t, reports, 3)
	assert.Equal(t, uint64(8000), reports[2].Bytes)
	assert.Equal(t, 3, m.Summary().Samples)
}

func TestMonitorReturnsOnStopRequest(t *testing.T) {
	counters := NewCounters()
	m := &Monitor{
		Stream:         newFakeStream(),
		Counters:       counters,
		BytesPerSample: 4,
		Interval:       time.Hour,
		Log:            quietLogger(),
	}

	done := runMonitor(context.Background(), m)
	counters.RequestStop()
	waitDone(t, done)
}

func TestMonitorContextCancelRequestsStop(t *testing.T) {
	counters := NewCounters()
	m := &Monitor{
		Stream:         newFakeStream(),
		Counters:       counters,
		BytesPerSample: 4,
		Interval:       time.Hour,
		Log:            quietLogger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runMonitor(ctx, m)
	cancel()
	waitDone(t, done)
	assert.True(t, counters.Stopped())
}

func TestMonitorUsesClock(t *testing.T) {
	stream := newFakeStream()
	counters := NewCounters()
	t0 := time.Unix(1000, 0)
	tick := 0
	var got Snapshot
	m := &Monitor{
		Stream:         stream,
		Counters:       counters,
		BytesPerSample: 4,
		Interval:       time.Millisecond,
		Log:            quietLogger(),
		Now: func() time.Time {
			now := t0.Add(time.Duration(tick) * time.Second)
			tick++
			return now
		},
		Reporters: []Reporter{ReporterFunc(func(s Snapshot) {
			got = s
			stream.on.Store(false)
		})},
	}
	counters.AddBytes(10000000)

	waitDone(t, runMonitor(context.Background(), m))
	assert.Equal(t, time.Second, got.Elapsed)
	assert.InDelta(t, 2.5, got.AvgMSPS, 1e-9)
	assert.InDelta(t, 2.5, got.InstMSPS, 1e-9)
}
