package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestRejectionCode(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{ErrInvalidQuantity, "invalid_quantity"},
		{ErrPriceUnavailable, "price_unavailable"},
		{ErrInsufficientFunds, "insufficient_funds"},
		{ErrInsufficientShares, "insufficient_shares"},
		{errors.New("boom"), ""},
		{fmt.Errorf("%w: need 500.00, have 100.00", ErrInsufficientFunds), "insufficient_funds"},
	}

	for _, c := range cases {
		if got := RejectionCode(c.err); got != c.code {
			t.Errorf("RejectionCode(%v): got %q, want %q", c.err, got, c.code)
		}
	}
}

func TestIsRejection(t *testing.T) {
	if !IsRejection(ErrInsufficientShares) {
		t.Error("expected rejection")
	}
	if IsRejection(errors.New("transport down")) {
		t.Error("plain error should not be a rejection")
	}
}

func TestTradeTypeValid(t *testing.T) {
	if !TradeTypeBuy.Valid() || !TradeTypeSell.Valid() {
		t.Error("buy and sell should be valid")
	}
	if TradeType("short").Valid() {
		t.Error("unknown type should be invalid")
	}
}
