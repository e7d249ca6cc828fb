package venuea

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseOrderBookExpandsOrderbookUnitsIntoParallelSides(t *testing.T) {
	p := NewParser()
	raw := []byte(`[{"market":"KRW-BTC","timestamp":1700000000000,"orderbook_units":[
		{"ask_price":"101","bid_price":"100","ask_size":"1.5","bid_size":"2.5"},
		{"ask_price":"102","bid_price":"99","ask_size":"0.5","bid_size":"0.3"}
	]}]`)

	ob, err := p.ParseOrderBook("KRW-BTC", raw)
	if err != nil {
		t.Fatalf("ParseOrderBook returned error: %v", err)
	}
	if len(ob.Bids) != 2 || len(ob.Asks) != 2 {
		t.Fatalf("expected 2 bids and 2 asks, got %d/%d", len(ob.Bids), len(ob.Asks))
	}
	if !ob.Bids[0].Price.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected first bid price 100, got %s", ob.Bids[0].Price)
	}
	if !ob.Asks[0].Price.Equal(decimal.RequireFromString("101")) {
		t.Fatalf("expected first ask price 101, got %s", ob.Asks[0].Price)
	}
}

func TestParseOrderBookAcceptsBareObjectAsWellAsArray(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"market":"KRW-BTC","timestamp":1,"orderbook_units":[{"ask_price":"1","bid_price":"1","ask_size":"1","bid_size":"1"}]}`)
	if _, err := p.ParseOrderBook("KRW-BTC", raw); err != nil {
		t.Fatalf("ParseOrderBook should accept a bare object: %v", err)
	}
}

func TestParseBalancesComputesTotalAsAvailablePlusLocked(t *testing.T) {
	p := NewParser()
	raw := []byte(`[{"currency":"BTC","balance":"1.5","locked":"0.5"}]`)
	balances, err := p.ParseBalances(raw)
	if err != nil {
		t.Fatalf("ParseBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(balances))
	}
	if !balances[0].Total.Equal(decimal.RequireFromString("2")) {
		t.Fatalf("expected total 2, got %s", balances[0].Total)
	}
}

func TestParseOrderResultOmitsAveragePriceWhenZeroOrAbsent(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"uuid":"abc","market":"KRW-BTC","state":"done","executed_volume":"1","avg_price":"0"}`)
	result, err := p.ParseOrderResult(raw)
	if err != nil {
		t.Fatalf("ParseOrderResult returned error: %v", err)
	}
	if result.HasAveragePrice {
		t.Fatal("avg_price of \"0\" must not be treated as a real average price")
	}
}

func TestParseOrderResultSetsAveragePriceWhenPresent(t *testing.T) {
	p := NewParser()
	raw := []byte(`{"uuid":"abc","market":"KRW-BTC","state":"done","executed_volume":"1","avg_price":"101.5"}`)
	result, err := p.ParseOrderResult(raw)
	if err != nil {
		t.Fatalf("ParseOrderResult returned error: %v", err)
	}
	if !result.HasAveragePrice || !result.AveragePrice.Equal(decimal.RequireFromString("101.5")) {
		t.Fatalf("expected average price 101.5, got %v (has=%v)", result.AveragePrice, result.HasAveragePrice)
	}
}
