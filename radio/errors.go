package radio

import "fmt"

// Error is a status code returned by the device library together with its
// symbolic name.
type Error struct {
	Code int
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Name, e.Code)
}

// Is matches any *Error with the same code, so errors built from a raw
// library status compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

const (
	Success = 0
	True    = 1
)

var (
	ErrInvalidParam       = &Error{-2, "HYDRASDR_ERROR_INVALID_PARAM"}
	ErrNotFound           = &Error{-5, "HYDRASDR_ERROR_NOT_FOUND"}
	ErrBusy               = &Error{-6, "HYDRASDR_ERROR_BUSY"}
	ErrNoMem              = &Error{-11, "HYDRASDR_ERROR_NO_MEM"}
	ErrUnsupported        = &Error{-12, "HYDRASDR_ERROR_UNSUPPORTED"}
	ErrLibusb             = &Error{-1000, "HYDRASDR_ERROR_LIBUSB"}
	ErrThread             = &Error{-1001, "HYDRASDR_ERROR_THREAD"}
	ErrStreamingThreadErr = &Error{-1002, "HYDRASDR_ERROR_STREAMING_THREAD_ERR"}
	ErrStreamingStopped   = &Error{-1003, "HYDRASDR_ERROR_STREAMING_STOPPED"}
	ErrOther              = &Error{-9999, "HYDRASDR_ERROR_OTHER"}
)

var knownErrors = []*Error{
	ErrInvalidParam,
	ErrNotFound,
	ErrBusy,
	ErrNoMem,
	ErrUnsupported,
	ErrLibusb,
	ErrThread,
	ErrStreamingThreadErr,
	ErrStreamingStopped,
	ErrOther,
}

// ErrorName returns the symbolic name of a library status code.
func ErrorName(code int) string {
	switch code {
	case Success:
		return "HYDRASDR_SUCCESS"
	case True:
		return "HYDRASDR_TRUE"
	}
	for _, e := range knownErrors {
		if e.Code == code {
			return e.Name
		}
	}
	return "unknown"
}

// StatusError converts a library status code to an error, nil on success.
func StatusError(code int) error {
	if code == Success {
		return nil
	}
	return &Error{Code: code, Name: ErrorName(code)}
}
