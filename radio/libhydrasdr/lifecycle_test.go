package libhydrasdr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errStop  = errors.New("stop failed")
	errClose = errors.New("close failed")
	errStart = errors.New("start failed")
)

func TestReleaseClosesAfterFailedStop(t *testing.T) {
	var closed int
	err := release(
		func() error { return errStop },
		func() error { closed++; return nil },
	)
	assert.Equal(t, 1, closed)
	assert.ErrorIs(t, err, errStop)
}

func TestReleaseJoinsErrors(t *testing.T) {
	err := release(
		func() error { return errStop },
		func() error { return errClose },
	)
	assert.ErrorIs(t, err, errStop)
	assert.ErrorIs(t, err, errClose)

	assert.NoError(t, release(
		func() error { return nil },
		func() error { return nil },
	))
}

func TestFailedStartIsStopped(t *testing.T) {
	var stopped int
	err := start(
		func() error { return errStart },
		func() error { stopped++; return nil },
	)
	assert.ErrorIs(t, err, errStart)
	assert.Equal(t, 1, stopped)

	stopped = 0
	assert.NoError(t, start(
		func() error { return nil },
		func() error { stopped++; return nil },
	))
	assert.Zero(t, stopped)
}
