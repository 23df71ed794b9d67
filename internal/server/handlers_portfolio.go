package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/neurotrade/neurotrade/internal/models"
)

// --- Portfolio handlers ---

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, s.app.TradingService.Portfolio())
}

func (s *Server) handlePortfolioValuation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	portfolio := s.app.TradingService.Portfolio()
	valuation, err := s.app.ValuationService.Valuate(r.Context(), portfolio)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Valuation error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, valuation)
}

func (s *Server) handleTradeExecute(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Type   string `json:"type"`
		Symbol string `json:"symbol"`
		Shares int64  `json:"shares"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.TradingService.Execute(r.Context(), models.TradeType(req.Type), req.Symbol, req.Shares)
	if err != nil {
		if models.IsRejection(err) {
			WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), models.RejectionCode(err))
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	txns, err := s.app.TradingService.Transactions(r.Context(), limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing transactions: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
	})
}
