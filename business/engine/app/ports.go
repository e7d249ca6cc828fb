// Package app implements the engine bounded context: the tick loop that
// evaluates every traded pair's strategy against its live orderbooks and
// dispatches execution for whichever signal clears risk.
package app

import (
	"context"

	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
)

// Reporter is notified of the engine's activity for display (console, TUI,
// or any future sink) without the engine itself depending on how it is shown.
type Reporter interface {
	Start(ctx context.Context) error
	ReportSignal(signal *strategydomain.Signal)
	ReportExecution(result execApp.ExecutionResult)
	ReportConnectionStatus(venue string, connected bool)
	Stop() error
}
