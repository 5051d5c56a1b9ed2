package radio

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("out of range")
)

// ParseU64 parses a decimal, 0x hex or 0b binary number. The prefix is only
// recognised when something follows it, so "0x" alone is rejected as
// decimal.
func ParseU64(s string) (uint64, error) {
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, digits = 16, s[2:]
		case 'b', 'B':
			base, digits = 2, s[2:]
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", s, ErrOutOfRange)
		}
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	return v, nil
}
