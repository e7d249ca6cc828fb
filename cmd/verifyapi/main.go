// Package main implements verifyapi, a one-shot connectivity smoke test:
// it hits each configured venue's public orderbook endpoint once and
// reports whether the venue is reachable, without placing any orders or
// requiring signed credentials.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/karb/arbitrage-engine/business/venue/infra/common"
	"github.com/karb/arbitrage-engine/business/venue/infra/venuea"
	"github.com/karb/arbitrage-engine/business/venue/infra/venueb"
	"github.com/karb/arbitrage-engine/internal/config"
	"github.com/karb/arbitrage-engine/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	okA := checkVenueA(ctx, cfg, log)
	okB := checkVenueB(ctx, cfg, log)

	if !okA || !okB {
		os.Exit(1)
	}
}

func checkVenueA(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) bool {
	gw, err := venuea.NewGateway(common.Settings{
		Name:         "venue-a",
		RestBase:     cfg.Exchanges.A.RestBase,
		WebSocketURL: cfg.Exchanges.A.WebSocketURL,
	}, log)
	if err != nil {
		fmt.Printf("venue-a: FAIL (%v)\n", err)
		return false
	}
	wrapper := venuea.NewWrapper(gw, log)
	defer wrapper.Close()

	if _, err := wrapper.GetOrderBook(ctx, cfg.Trading.SymbolA); err != nil {
		fmt.Printf("venue-a: FAIL (%v)\n", err)
		return false
	}
	fmt.Println("venue-a: OK")
	return true
}

func checkVenueB(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) bool {
	gw, err := venueb.NewGateway(common.Settings{
		Name:         "venue-b",
		RestBase:     cfg.Exchanges.B.RestBase,
		WebSocketURL: cfg.Exchanges.B.WebSocketURL,
	}, log)
	if err != nil {
		fmt.Printf("venue-b: FAIL (%v)\n", err)
		return false
	}
	wrapper := venueb.NewWrapper(gw, log)
	defer wrapper.Close()

	if _, err := wrapper.GetOrderBook(ctx, cfg.Trading.SymbolB); err != nil {
		fmt.Printf("venue-b: FAIL (%v)\n", err)
		return false
	}
	fmt.Println("venue-b: OK")
	return true
}
