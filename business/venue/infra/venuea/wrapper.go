package venuea

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// Wrapper composes Gateway+Parser into the operations the trading pipeline
// calls, hiding this venue's endpoint paths and market-order unit
// convention: a "buy" market order is quote-denominated (ord_type=price,
// the "price" field holds KRW to spend); a "sell" market order is
// base-denominated (ord_type=market, the "volume" field holds the base
// quantity to sell).
type Wrapper struct {
	gw     *Gateway
	parser *Parser
	log    logger.LoggerInterface
}

// NewWrapper builds a Wrapper around an already-constructed Gateway.
func NewWrapper(gw *Gateway, log logger.LoggerInterface) *Wrapper {
	return &Wrapper{gw: gw, parser: NewParser(), log: log}
}

func (w *Wrapper) GetOrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	var raw json.RawMessage
	err := w.gw.Request(ctx, "GET", "/v1/orderbook", map[string]string{"markets": symbol}, &raw, app.RequestOptions{})
	if err != nil {
		return nil, err
	}
	return w.parser.ParseOrderBook(symbol, raw)
}

func (w *Wrapper) GetBalances(ctx context.Context) ([]domain.Balance, error) {
	var raw json.RawMessage
	err := w.gw.Request(ctx, "GET", "/v1/accounts", nil, &raw, app.RequestOptions{Signed: true})
	if err != nil {
		return nil, err
	}
	return w.parser.ParseBalances(raw)
}

func (w *Wrapper) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	params := map[string]string{
		"market": req.Symbol,
		"side":   string(req.Side),
	}
	switch req.OrderType {
	case domain.OrderTypeMarketQuote:
		params["ord_type"] = "price"
		params["price"] = req.Quantity.String()
	case domain.OrderTypeMarketBase:
		params["ord_type"] = "market"
		params["volume"] = req.Quantity.String()
	case domain.OrderTypeLimit:
		params["ord_type"] = "limit"
		params["volume"] = req.Quantity.String()
		params["price"] = req.Price.String()
	default:
		return nil, apperror.New(apperror.CodeGatewayError, apperror.WithContext(venueName+": unsupported order type"))
	}

	var raw json.RawMessage
	if err := w.gw.Request(ctx, "POST", "/v1/orders", params, &raw, app.RequestOptions{Signed: true}); err != nil {
		return nil, err
	}
	return w.parser.ParseOrderResult(raw)
}

func (w *Wrapper) CancelOrder(ctx context.Context, orderID string) error {
	return w.gw.Request(ctx, "DELETE", "/v1/order", map[string]string{"uuid": orderID}, nil, app.RequestOptions{Signed: true})
}

func (w *Wrapper) GetOrderStatus(ctx context.Context, orderID string) (*domain.OrderResult, error) {
	var raw json.RawMessage
	if err := w.gw.Request(ctx, "GET", "/v1/order", map[string]string{"uuid": orderID}, &raw, app.RequestOptions{Signed: true}); err != nil {
		return nil, err
	}
	return w.parser.ParseOrderResult(raw)
}

func (w *Wrapper) BuyMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.OrderResult, error) {
	return w.PlaceOrder(ctx, domain.OrderRequest{
		Venue:     venueName,
		Symbol:    symbol,
		Side:      domain.SideBuy,
		OrderType: domain.OrderTypeMarketQuote,
		Quantity:  amount,
	})
}

func (w *Wrapper) SellMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.OrderResult, error) {
	return w.PlaceOrder(ctx, domain.OrderRequest{
		Venue:     venueName,
		Symbol:    symbol,
		Side:      domain.SideSell,
		OrderType: domain.OrderTypeMarketBase,
		Quantity:  amount,
	})
}

// SubscribeOrderBook opens the venue's websocket and issues this venue's
// array-of-frames subscribe message: [{"ticket":...},{"type":"orderbook","codes":[symbol]}].
func (w *Wrapper) SubscribeOrderBook(ctx context.Context, symbol string, onUpdate func(*domain.OrderBook)) error {
	conn, err := w.gw.WSConnect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	subscribeMsg := []map[string]interface{}{
		{"ticket": uuid.NewString()},
		{"type": "orderbook", "codes": []string{symbol}},
	}
	if err := conn.WriteJSON(ctx, subscribeMsg); err != nil {
		return apperror.New(apperror.CodeGatewayWebSocket, apperror.WithCause(err),
			apperror.WithContext(venueName+": subscribe failed"))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := conn.ReadMessage(ctx)
		if err != nil {
			return apperror.New(apperror.CodeGatewayWebSocket, apperror.WithCause(err),
				apperror.WithContext(venueName+": read failed"))
		}

		ob, err := w.parser.ParseOrderBook(symbol, raw)
		if err != nil {
			w.log.Warn(ctx, venueName+": dropping unparseable orderbook push", "error", err.Error())
			continue
		}
		onUpdate(ob)
	}
}

func (w *Wrapper) Close() error {
	return w.gw.Close()
}

var _ app.Wrapper = (*Wrapper)(nil)
