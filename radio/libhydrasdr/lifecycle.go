package libhydrasdr

import "errors"

// release stops streaming and closes the device. The device is closed even
// when stopping fails, so the handle is never leaked.
func release(stop, closeDev func() error) error {
	stopErr := stop()
	return errors.Join(stopErr, closeDev())
}

// start begins streaming. A failed start is followed by a stop so the
// library can tear down whatever part of the stream it had set up.
func start(startRx, stopRx func() error) error {
	err := startRx()
	if err == nil {
		return nil
	}
	return errors.Join(err, stopRx())
}
