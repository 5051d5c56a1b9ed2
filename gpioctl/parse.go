package gpioctl

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/gpio"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

// ParseU8 parses a decimal number between 0 and 255.
func ParseU8(s string) (uint8, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", s, radio.ErrOutOfRange)
		}
		return 0, fmt.Errorf("%q: %w", s, radio.ErrNotANumber)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%q: %w", s, radio.ErrOutOfRange)
	}
	return uint8(v), nil
}

func parseBounded(s, what string, max uint8) (uint8, error) {
	v, err := ParseU8(s)
	if err == nil && v > max {
		err = fmt.Errorf("%q: %w", s, radio.ErrOutOfRange)
	}
	if err != nil {
		return 0, fmt.Errorf("%s shall be between 0 and %d: %w", what, max, err)
	}
	return v, nil
}

func ParsePort(s string) (uint8, error) {
	return parseBounded(s, "port", radio.MaxPort)
}

func ParsePin(s string) (uint8, error) {
	return parseBounded(s, "pin", radio.MaxPin)
}

func ParseLevel(s string) (gpio.Level, error) {
	v, err := parseBounded(s, "value", 1)
	if err != nil {
		return gpio.Low, err
	}
	return gpio.Level(v == 1), nil
}
