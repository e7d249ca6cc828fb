// Package infra contains infrastructure adapters for the engine context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
)

// ConsoleReporter implements engine.Reporter for plain stdout output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Arbitrage Engine Started")
	fmt.Fprintln(r.out, "========================")
	return nil
}

// ReportSignal outputs a detected arbitrage signal to the console.
func (r *ConsoleReporter) ReportSignal(signal *strategydomain.Signal) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintf(r.out, "[%s] SIGNAL  %s\n", time.Now().Format("15:04:05"), signal.Direction)
	fmt.Fprintf(r.out, "  buy  %s @ %s\n", signal.BuyVenue, signal.BuyPrice.String())
	fmt.Fprintf(r.out, "  sell %s @ %s\n", signal.SellVenue, signal.SellPrice.String())
	fmt.Fprintf(r.out, "  volume %s   spread %s\n", signal.Volume.String(), signal.SpreadRate.String())
}

// ReportExecution outputs a dispatched trade's outcome.
func (r *ConsoleReporter) ReportExecution(result execApp.ExecutionResult) {
	status := "OK"
	if err := result.Err(); err != nil {
		status = "FAILED: " + err.Error()
	}
	fmt.Fprintf(r.out, "  executed: buy=%s sell=%s -> %s\n", result.Buy.Venue, result.Sell.Venue, status)
}

// ReportConnectionStatus outputs connection status changes.
func (r *ConsoleReporter) ReportConnectionStatus(venue string, connected bool) {
	status := "disconnected"
	if connected {
		status = "connected"
	}
	fmt.Fprintf(r.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), venue, status)
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Arbitrage Engine Stopped")
	return nil
}
