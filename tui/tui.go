// Package tui is a terminal dashboard for a running capture.
package tui

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/navidys/tvxwidgets"
	"github.com/rivo/tview"

	"github.com/jrwynneiii/hydrasdr-tools/capture"
	"github.com/jrwynneiii/hydrasdr-tools/config"
)

// Dashboard shows the capture snapshots. It implements capture.Reporter.
type Dashboard struct {
	conf config.TuiConf
	bps  int

	app        *tview.Application
	page       *tview.Flex
	stats      *StatsTableData
	ratePlot   *tvxwidgets.Plot
	dropsGauge *tvxwidgets.UtilModeGauge
	LogOut     *tview.TextView

	mu    sync.Mutex
	rates []float64
	avgs  []float64
	drops float64
}

func New(header Header, bytesPerSample int, conf config.TuiConf) *Dashboard {
	d := &Dashboard{
		conf:  conf,
		bps:   bytesPerSample,
		app:   tview.NewApplication(),
		stats: &StatsTableData{header: header},
	}

	d.LogOut = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)
	d.LogOut.SetChangedFunc(func() {
		d.LogOut.ScrollToEnd()
	})
	d.LogOut.SetBorder(true).SetTitle("Log Output")

	statsTable := tview.NewTable().SetContent(d.stats)
	statsTable.SetSelectable(false, false).SetBorder(true).SetTitle("Capture")

	d.ratePlot = tvxwidgets.NewPlot()
	d.ratePlot.SetLineColor([]tcell.Color{tcell.ColorLightSkyBlue, tcell.ColorGreen})
	d.ratePlot.SetMarker(tvxwidgets.PlotMarkerBraille)
	d.ratePlot.SetBorder(true)
	d.ratePlot.SetTitle("Throughput (MSPS, inst/avg)")

	d.dropsGauge = tvxwidgets.NewUtilModeGauge()
	d.dropsGauge.SetLabel("Dropped samples: ")
	d.dropsGauge.SetLabelColor(tcell.ColorLightSkyBlue)
	d.dropsGauge.SetWarnPercentage(conf.DropWarnPct)
	d.dropsGauge.SetCritPercentage(conf.DropCritPct)
	d.dropsGauge.SetEmptyColor(tcell.ColorBlack)
	d.dropsGauge.SetBorder(false)

	gaugeBox := tview.NewFlex().SetDirection(tview.FlexRow)
	gaugeBox.AddItem(d.dropsGauge, 0, 1, false)
	gaugeBox.SetTitle("Stream Health")
	gaugeBox.SetBorder(true)

	leftCol := tview.NewFlex().SetDirection(tview.FlexRow)
	leftCol.AddItem(statsTable, 0, 3, false)
	leftCol.AddItem(gaugeBox, 3, 0, false)

	rightCol := tview.NewFlex().SetDirection(tview.FlexRow)
	rightCol.AddItem(d.ratePlot, 0, 3, false)
	if conf.EnableLogOutput {
		rightCol.AddItem(d.LogOut, 0, 2, false)
	}

	d.page = tview.NewFlex().SetDirection(tview.FlexColumn)
	d.page.AddItem(leftCol, 0, 2, false)
	d.page.AddItem(rightCol, 0, 5, false)
	return d
}

// Writer is where console text goes while the dashboard owns the terminal.
func (d *Dashboard) Writer() io.Writer {
	if d.conf.EnableLogOutput {
		return tview.ANSIWriter(d.LogOut)
	}
	return io.Discard
}

func (d *Dashboard) Report(s capture.Snapshot) {
	d.update(s)
}

func (d *Dashboard) update(s capture.Snapshot) {
	d.stats.set(s)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.rates = appendBounded(d.rates, s.InstMSPS, d.conf.PlotPoints)
	d.avgs = appendBounded(d.avgs, s.AvgMSPS, d.conf.PlotPoints)
	d.drops = DropPercent(s, d.bps)
}

// apply pushes the latest values into the widgets. It runs on the UI
// goroutine.
func (d *Dashboard) apply() {
	d.mu.Lock()
	data := [][]float64{
		append([]float64(nil), d.rates...),
		append([]float64(nil), d.avgs...),
	}
	drops := d.drops
	d.mu.Unlock()

	if len(data[0]) > 0 {
		d.ratePlot.SetData(data)
	}
	d.dropsGauge.SetValue(drops)
}

// DropPercent is the share of samples lost out of those the device produced.
func DropPercent(s capture.Snapshot, bytesPerSample int) float64 {
	if bytesPerSample <= 0 {
		return 0
	}
	total := float64(s.Bytes)/float64(bytesPerSample) + float64(s.Dropped)
	if total == 0 {
		return 0
	}
	return float64(s.Dropped) / total * 100
}

func appendBounded(vals []float64, v float64, max int) []float64 {
	vals = append(vals, v)
	if max > 0 && len(vals) > max {
		vals = vals[len(vals)-max:]
	}
	return vals
}

// Run takes over the terminal until the capture stops. Quitting the UI with
// q, Esc or Ctrl+C requests stop.
func (d *Dashboard) Run(counters *capture.Counters) error {
	if d.conf.EnableLogOutput {
		log.SetOutput(d.LogOut)
		defer log.SetOutput(os.Stderr)
	}

	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			counters.RequestStop()
			return nil
		}
		return ev
	})

	go func() {
		refresh := time.Duration(d.conf.RefreshMs) * time.Millisecond
		if refresh <= 0 {
			refresh = time.Second
		}
		ticker := time.NewTicker(refresh)
		defer ticker.Stop()
		for {
			select {
			case <-counters.Done():
				d.app.QueueUpdate(d.app.Stop)
				return
			case <-ticker.C:
				d.app.QueueUpdateDraw(d.apply)
			}
		}
	}()

	return d.app.SetRoot(d.page, true).EnableMouse(true).Run()
}
