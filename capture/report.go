package capture

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// ConsoleReporter prints one status line per snapshot. On a terminal the
// line is overwritten in place.
type ConsoleReporter struct {
	w         io.Writer
	overwrite bool
	printed   bool
}

func NewConsoleReporter(f *os.File) *ConsoleReporter {
	return &ConsoleReporter{w: f, overwrite: term.IsTerminal(int(f.Fd()))}
}

func NewLineReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (c *ConsoleReporter) Report(s Snapshot) {
	end := "\n"
	if c.overwrite {
		end = "\r"
	}
	fmt.Fprintf(c.w, "Time %4.0fs | Inst %5.2f MSPS | Avg %5.2f MSPS | Vol %7.2f MB | Drops %d%s",
		s.Elapsed.Seconds(),
		s.InstMSPS,
		s.AvgMSPS,
		s.VolumeMB(),
		s.Dropped,
		end)
	c.printed = true
}

// Finish moves past an overwritten status line.
func (c *ConsoleReporter) Finish() {
	if c.overwrite && c.printed {
		fmt.Fprintln(c.w)
	}
}

var csvHeader = []string{
	"elapsed_s",
	"inst_msps",
	"avg_msps",
	"volume_mb",
	"dropped_samples",
}

// CSVReporter appends one row per snapshot. Write failures are logged only.
type CSVReporter struct {
	w   *csv.Writer
	log *log.Logger
}

func NewCSVReporter(w io.Writer, logger *log.Logger) *CSVReporter {
	if logger == nil {
		logger = log.Default()
	}
	c := &CSVReporter{w: csv.NewWriter(w), log: logger}
	c.write(csvHeader)
	return c
}

func (c *CSVReporter) Report(s Snapshot) {
	c.write([]string{
		strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 3, 64),
		strconv.FormatFloat(s.InstMSPS, 'f', 4, 64),
		strconv.FormatFloat(s.AvgMSPS, 'f', 4, 64),
		strconv.FormatFloat(s.VolumeMB(), 'f', 2, 64),
		strconv.FormatUint(s.Dropped, 10),
	})
}

func (c *CSVReporter) write(row []string) {
	if err := c.w.Write(row); err != nil {
		c.log.Warnf("error while writing stats line: %s", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.log.Warnf("error flushing stats: %s", err)
	}
}
