package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jrwynneiii/hydrasdr-tools/capture"
)

// Header is the static part of the stats table.
type Header struct {
	Serial     string
	Frequency  uint64
	SampleRate uint32
	SampleType string
	Output     string
}

type StatsTableData struct {
	tview.TableContentReadOnly

	mu     sync.Mutex
	header Header
	last   capture.Snapshot
}

var statsLabels = []string{
	"Board:",
	"Frequency:",
	"Sample rate:",
	"Sample type:",
	"Output:",
	"Elapsed:",
	"Inst rate:",
	"Avg rate:",
	"Volume:",
	"Dropped samples:",
}

func (d *StatsTableData) set(s capture.Snapshot) {
	d.mu.Lock()
	d.last = s
	d.mu.Unlock()
}

func (d *StatsTableData) GetRowCount() int {
	return len(statsLabels)
}

func (d *StatsTableData) GetColumnCount() int {
	return 2
}

func (d *StatsTableData) GetCell(row, column int) *tview.TableCell {
	if row < 0 || row >= len(statsLabels) {
		return nil
	}
	if column == 0 {
		return tview.NewTableCell(statsLabels[row]).SetTextColor(tcell.ColorLightSkyBlue)
	}

	d.mu.Lock()
	h, s := d.header, d.last
	d.mu.Unlock()

	switch row {
	case 0:
		return tview.NewTableCell(h.Serial)
	case 1:
		return tview.NewTableCell(fmt.Sprintf("%.6f MHz", float64(h.Frequency)/1e6))
	case 2:
		return tview.NewTableCell(fmt.Sprintf("%.3f MSPS", float64(h.SampleRate)/1e6))
	case 3:
		return tview.NewTableCell(h.SampleType)
	case 4:
		return tview.NewTableCell(h.Output)
	case 5:
		return tview.NewTableCell(s.Elapsed.Truncate(time.Second).String())
	case 6:
		return tview.NewTableCell(fmt.Sprintf("%.2f MSPS", s.InstMSPS))
	case 7:
		return tview.NewTableCell(fmt.Sprintf("%.2f MSPS", s.AvgMSPS))
	case 8:
		return tview.NewTableCell(fmt.Sprintf("%.2f MB", s.VolumeMB()))
	case 9:
		color := tcell.ColorGreen
		if s.Dropped > 0 {
			color = tcell.ColorRed
		}
		return tview.NewTableCell(fmt.Sprintf("%d", s.Dropped)).SetTextColor(color)
	}
	return tview.NewTableCell("ERROR")
}
