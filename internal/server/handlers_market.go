package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/neurotrade/neurotrade/internal/clients/alphavantage"
	"github.com/neurotrade/neurotrade/internal/models"
)

// --- Market data handlers ---

func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/quote/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	quote, err := s.app.MarketService.GetQuote(r.Context(), symbol)
	if err != nil {
		writeMarketError(w, symbol, err)
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

func (s *Server) handleMarketTicker(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	items, err := s.app.MarketService.GetTickerTape(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Ticker tape error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

func (s *Server) handleMarketNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/market/news/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	news, err := s.app.MarketService.GetNews(r.Context(), symbol)
	if err != nil {
		writeMarketError(w, symbol, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": models.NormalizeSymbol(symbol),
		"items":  news,
		"count":  len(news),
	})
}

func (s *Server) handleMarketSeries(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	timeframe := parseTimeframe(r)
	if !timeframe.Valid() {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported timeframe %q", timeframe))
		return
	}

	points, err := s.app.MarketService.GetSeries(r.Context(), symbol, timeframe)
	if err != nil {
		writeMarketError(w, symbol, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":    models.NormalizeSymbol(symbol),
		"timeframe": timeframe,
		"points":    points,
		"count":     len(points),
	})
}

func (s *Server) handleMarketChart(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	timeframe := parseTimeframe(r)
	if !timeframe.Valid() {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported timeframe %q", timeframe))
		return
	}

	png, err := s.app.MarketService.RenderChart(r.Context(), symbol, timeframe)
	if err != nil {
		writeMarketError(w, symbol, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// parseTimeframe reads the timeframe query parameter, defaulting to 1d.
func parseTimeframe(r *http.Request) models.Timeframe {
	tf := r.URL.Query().Get("timeframe")
	if tf == "" {
		return models.Timeframe1D
	}
	return models.Timeframe(tf)
}

// writeMarketError maps upstream client errors onto HTTP status codes.
func writeMarketError(w http.ResponseWriter, symbol string, err error) {
	switch {
	case errors.Is(err, alphavantage.ErrSymbolNotFound):
		WriteError(w, http.StatusNotFound, fmt.Sprintf("No data for symbol %s", models.NormalizeSymbol(symbol)))
	case errors.Is(err, alphavantage.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, "Market data provider rate limit reached, try again shortly")
	default:
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Market data error: %v", err))
	}
}
