package market

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/neurotrade/neurotrade/internal/models"
)

// RenderSeriesChart renders a PNG line chart of close prices.
// Returns raw PNG bytes.
func RenderSeriesChart(symbol string, points []models.SeriesPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = float64(i)
		yValues[i] = p.Close
	}

	// Sparse x-axis labels: first, middle, last.
	ticks := []chart.Tick{
		{Value: 0, Label: points[0].Label},
		{Value: float64(len(points) / 2), Label: points[len(points)/2].Label},
		{Value: float64(len(points) - 1), Label: points[len(points)-1].Label},
	}

	priceSeries := chart.ContinuousSeries{
		Name: fmt.Sprintf("%s Price", symbol),
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("00c5d4"),
			StrokeWidth: 2.0,
			FillColor:   drawing.ColorFromHex("00c5d4").WithAlpha(40),
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%d points)", symbol, len(points)),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{priceSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
