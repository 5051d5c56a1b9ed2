package capture

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jrwynneiii/hydrasdr-tools/radio"
)

var ErrInvalidSampleType = errors.New("invalid sample type")

type Config struct {
	Frequency  uint64
	SampleRate uint32
	SampleType radio.SampleType
	Gain       uint8
	BiasTee    bool
	Output     string
	StatsFile  string
}

// Configure applies cfg in the fixed order frequency, sample rate, sample
// type, gain, bias-tee. It stops at the first failure and leaves the board
// as the library left it.
func Configure(rx radio.Receiver, cfg Config, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	logger.Infof("Frequency:   %d Hz", cfg.Frequency)
	if err := rx.SetFrequency(cfg.Frequency); err != nil {
		return fmt.Errorf("failed set frequency: %w", err)
	}

	logger.Infof("Samplerate:  %d SPS", cfg.SampleRate)
	if err := rx.SetSampleRate(cfg.SampleRate); err != nil {
		return fmt.Errorf("failed set sample rate: %w", err)
	}

	if !cfg.SampleType.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidSampleType, int(cfg.SampleType))
	}
	logger.Infof("Sample type: %d (%s)", int(cfg.SampleType), cfg.SampleType)
	if err := rx.SetSampleType(cfg.SampleType); err != nil {
		return fmt.Errorf("failed set sample type: %w", err)
	}

	logger.Infof("Gain:        %d", cfg.Gain)
	if err := rx.SetLinearityGain(cfg.Gain); err != nil {
		return fmt.Errorf("failed set linearity gain: %w", err)
	}

	logger.Infof("Bias-T:      %t", cfg.BiasTee)
	if err := rx.SetBiasTee(cfg.BiasTee); err != nil {
		return fmt.Errorf("failed set bias tee: %w", err)
	}
	if cfg.BiasTee {
		logger.Warn("Bias-T ENABLED.")
	}
	return nil
}
