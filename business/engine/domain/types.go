// Package domain holds the engine bounded context's own types: the set of
// collaborators each traded pair needs, bundled so the Engine can iterate
// over pairs uniformly.
package domain

import (
	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	obApp "github.com/karb/arbitrage-engine/business/orderbook/app"
	riskApp "github.com/karb/arbitrage-engine/business/risk/app"
	strategyApp "github.com/karb/arbitrage-engine/business/strategy/app"
)

// PairContext bundles one traded pair's per-venue orderbook managers and
// its strategy/risk/execution collaborators.
type PairContext struct {
	SymbolA string
	SymbolB string

	ManagerA *obApp.Manager
	ManagerB *obApp.Manager

	Strategy *strategyApp.Strategy
	Risk     *riskApp.Manager
	Executor *execApp.Executor
}
