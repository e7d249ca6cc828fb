package venueb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/karb/arbitrage-engine/internal/apperror"
)

func TestParseOrderBookDecodesLevels(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"status":"0000","data":{"timestamp":"1700000000000","order_currency":"BTC","payment_currency":"KRW",
		"bids":[{"price":"100","quantity":"1"},{"price":"99","quantity":"2"}],
		"asks":[{"price":"102","quantity":"1"},{"price":"101","quantity":"2"}]}}`)

	ob, err := p.ParseOrderBook("BTC_KRW", raw)
	if err != nil {
		t.Fatalf("ParseOrderBook returned error: %v", err)
	}
	if len(ob.Bids) != 2 || len(ob.Asks) != 2 {
		t.Fatalf("expected 2 bids and 2 asks, got %d/%d", len(ob.Bids), len(ob.Asks))
	}
}

func TestParseOrderBookRejectsNonSuccessStatus(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"status":"5600","message":"internal error"}`)
	_, err := p.ParseOrderBook("BTC_KRW", raw)
	if apperror.GetCode(err) != apperror.CodeParserVenueStatus {
		t.Fatalf("expected CodeParserVenueStatus, got %v", err)
	}
}

func TestParseBalancesUsesKeyPrefixScheme(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"status":"0000","data":{"available_btc":"1.5","in_use_btc":"0.5","total_btc":"2.0"}}`)
	balances, err := p.ParseBalances(raw)
	if err != nil {
		t.Fatalf("ParseBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(balances))
	}
	b := balances[0]
	if b.Currency != "BTC" {
		t.Fatalf("expected currency BTC, got %s", b.Currency)
	}
	if !b.Available.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("expected available 1.5, got %s", b.Available)
	}
	if !b.Total.Equal(decimal.RequireFromString("2.0")) {
		t.Fatalf("expected total 2.0, got %s", b.Total)
	}
}

func TestParseBalancesFallsBackToComputedTotalWhenAbsent(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"status":"0000","data":{"available_krw":"1000","in_use_krw":"500"}}`)
	balances, err := p.ParseBalances(raw)
	if err != nil {
		t.Fatalf("ParseBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(balances))
	}
	if !balances[0].Total.Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("expected computed total 1500, got %s", balances[0].Total)
	}
}

func TestParseOrderResultAssertsSuccessStatus(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"status":"5100","message":"bad request"}`)
	_, err := p.ParseOrderResult(raw)
	if apperror.GetCode(err) != apperror.CodeParserVenueStatus {
		t.Fatalf("expected CodeParserVenueStatus, got %v", err)
	}
}
