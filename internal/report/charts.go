package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"server-availability/internal/models"
)

// ErrNoLatencyData is returned when no result in the batch carries an RTT
var ErrNoLatencyData = errors.New("no latency data to chart")

// SaveLatencyChart renders the latency chart for summary into a PNG file
func SaveLatencyChart(path string, summary models.RunSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := WriteLatencyChart(file, summary); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// WriteLatencyChart renders one bar per reachable host, valued by RTT in ms
func WriteLatencyChart(w io.Writer, summary models.RunSummary) error {
	var (
		bars   []chart.Value
		maxRTT float64
	)

	for _, r := range summary.Results {
		if !r.Reachable || r.RTT <= 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: r.Host,
			Value: r.RTT,
		})
		if r.RTT > maxRTT {
			maxRTT = r.RTT
		}
	}

	if len(bars) == 0 {
		return ErrNoLatencyData
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Echo Latency (%d/%d hosts available)", summary.Reachable(), len(summary.Results)),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: maxRTT * 1.1,
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render latency chart: %w", err)
	}
	return nil
}
