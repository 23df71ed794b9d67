package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/neurotrade/neurotrade/internal/models"
)

const intradayInterval = "5min"

// seriesFunction maps a resolution to the Alpha Vantage function name.
func seriesFunction(res models.SeriesResolution) string {
	switch res {
	case models.ResolutionIntraday:
		return "TIME_SERIES_INTRADAY"
	case models.ResolutionWeekly:
		return "TIME_SERIES_WEEKLY"
	default:
		return "TIME_SERIES_DAILY"
	}
}

// GetSeries retrieves the historical close series for a timeframe, ordered
// oldest to newest. The payload key varies by function ("Time Series
// (Daily)", "Weekly Time Series", ...) so it is located by substring.
func (c *Client) GetSeries(ctx context.Context, symbol string, timeframe models.Timeframe) ([]models.SeriesPoint, error) {
	symbol = models.NormalizeSymbol(symbol)
	function := seriesFunction(timeframe.Resolution())

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")
	if function == "TIME_SERIES_INTRADAY" {
		params.Set("interval", intradayInterval)
	}

	raw, err := c.query(ctx, function, params)
	if err != nil {
		return nil, err
	}

	var payload json.RawMessage
	for key, value := range raw {
		if strings.Contains(key, "Time Series") {
			payload = value
			break
		}
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: no series data for %s", ErrSymbolNotFound, symbol)
	}

	var bars map[string]map[string]string
	if err := json.Unmarshal(payload, &bars); err != nil {
		return nil, fmt.Errorf("failed to parse series: %w", err)
	}

	labels := make([]string, 0, len(bars))
	for label := range bars {
		labels = append(labels, label)
	}
	// Labels are ISO-style timestamps, so a lexicographic sort is
	// chronological.
	sort.Strings(labels)

	points := make([]models.SeriesPoint, 0, len(labels))
	for _, label := range labels {
		closeStr := bars[label]["4. close"]
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}
		points = append(points, models.SeriesPoint{Label: label, Close: closePrice})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty series for %s", ErrSymbolNotFound, symbol)
	}
	return points, nil
}
