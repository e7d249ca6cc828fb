// Package domain holds the risk bounded context's view of account state:
// the balances available on each venue at the moment a signal is evaluated.
package domain

import (
	"strings"

	venuedomain "github.com/karb/arbitrage-engine/business/venue/domain"
)

// BalanceState is a snapshot of both venues' balances, keyed by currency
// code (upper-cased) for O(1) lookup during an evaluation.
type BalanceState struct {
	A map[string]venuedomain.Balance
	B map[string]venuedomain.Balance
}

// NewBalanceState indexes balancesA/B by currency.
func NewBalanceState(balancesA, balancesB []venuedomain.Balance) *BalanceState {
	state := &BalanceState{
		A: make(map[string]venuedomain.Balance, len(balancesA)),
		B: make(map[string]venuedomain.Balance, len(balancesB)),
	}
	for _, b := range balancesA {
		state.A[strings.ToUpper(b.Currency)] = b
	}
	for _, b := range balancesB {
		state.B[strings.ToUpper(b.Currency)] = b
	}
	return state
}

// Available returns the available balance of currency on venue ("venue-a";
// any other value selects venue B), or zero if unknown.
func (s *BalanceState) Available(venue, currency string) venuedomain.Balance {
	currency = strings.ToUpper(currency)
	if venue == "venue-a" {
		return s.A[currency]
	}
	return s.B[currency]
}
