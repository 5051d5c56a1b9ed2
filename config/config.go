package config

import "time"

type Config struct {
	Radio   RadioConf   `koanf:"radio"`
	Capture CaptureConf `koanf:"capture"`
	Tui     TuiConf     `koanf:"tui"`
	Mock    MockConf    `koanf:"mock"`
}

type RadioConf struct {
	Driver string `koanf:"driver"`
	Serial string `koanf:"serial"`
}

type CaptureConf struct {
	Frequency  uint64 `koanf:"frequency"`
	SampleRate uint32 `koanf:"sample_rate"`
	SampleType int    `koanf:"sample_type"`
	Gain       uint8  `koanf:"gain"`
	BiasTee    bool   `koanf:"bias_tee"`
	Output     string `koanf:"output"`
	StatsFile  string `koanf:"stats_file"`
}

type TuiConf struct {
	RefreshMs       int     `koanf:"refresh_ms"`
	DropWarnPct     float64 `koanf:"drops_warn_pct"`
	DropCritPct     float64 `koanf:"drops_crit_pct"`
	PlotPoints      int     `koanf:"plot_points"`
	EnableLogOutput bool    `koanf:"enable_log_output"`
}

type MockConf struct {
	Boards             int           `koanf:"boards"`
	Interval           time.Duration `koanf:"interval"`
	SamplesPerTransfer int           `koanf:"samples_per_transfer"`
	MaxTransfers       int           `koanf:"max_transfers"`
	DroppedPerTransfer uint64        `koanf:"dropped_per_transfer"`
}

func Default() Config {
	return Config{
		Radio: RadioConf{
			Driver: "libhydrasdr",
		},
		Capture: CaptureConf{
			Frequency:  100000000,
			SampleRate: 2500000,
			SampleType: 2,
			Gain:       10,
			Output:     "capture.bin",
		},
		Tui: TuiConf{
			RefreshMs:       1000,
			DropWarnPct:     0.1,
			DropCritPct:     1,
			PlotPoints:      120,
			EnableLogOutput: true,
		},
		Mock: MockConf{
			Boards:   1,
			Interval: 10 * time.Millisecond,
		},
	}
}
