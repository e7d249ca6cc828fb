// Package app defines the venue-neutral ports every concrete venue
// implements: Gateway handles transport and signing, Parser decodes venue
// payloads into domain types, Wrapper composes the two into the operations
// the rest of the system calls.
package app

import (
	"context"

	"github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/shopspring/decimal"
)

// RequestOptions configures one Gateway.Request call.
type RequestOptions struct {
	Signed  bool
	Headers map[string]string
}

// Gateway is the low-level transport: REST requests and websocket streams,
// with per-venue rate limiting and signing applied uniformly.
type Gateway interface {
	// Request performs a REST call against the venue and decodes the JSON
	// response body into out (if non-nil).
	Request(ctx context.Context, method, endpoint string, params map[string]string, out interface{}, opts RequestOptions) error

	// WSConnect opens a websocket connection to the venue's streaming endpoint.
	WSConnect(ctx context.Context) (WSConn, error)

	// Close releases any held connections.
	Close() error
}

// WSConn is the minimal websocket surface the orderbook feed needs.
type WSConn interface {
	WriteJSON(ctx context.Context, v interface{}) error
	ReadMessage(ctx context.Context) ([]byte, error)
	Close() error
}

// Parser decodes raw venue payloads into domain types.
type Parser interface {
	ParseOrderBook(symbol string, raw []byte) (*domain.OrderBook, error)
	ParseBalances(raw []byte) ([]domain.Balance, error)
	ParseOrderResult(raw []byte) (*domain.OrderResult, error)
}

// Wrapper composes Gateway+Parser into the operations the trading pipeline
// calls, hiding each venue's endpoint paths, payload shapes and unit
// conventions behind one interface.
type Wrapper interface {
	GetOrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error)
	GetBalances(ctx context.Context) ([]domain.Balance, error)
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error)
	CancelOrder(ctx context.Context, orderID string) error
	GetOrderStatus(ctx context.Context, orderID string) (*domain.OrderResult, error)

	// BuyMarket places a market buy. amount is quote units on venues whose
	// wrapper treats market buys as quote-denominated, base units otherwise.
	BuyMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.OrderResult, error)
	// SellMarket places a market sell for amount base units.
	SellMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.OrderResult, error)

	// SubscribeOrderBook opens a streaming subscription, invoking onUpdate
	// for every full-book push the venue sends, until ctx is cancelled.
	SubscribeOrderBook(ctx context.Context, symbol string, onUpdate func(*domain.OrderBook)) error

	Close() error
}
