package venueb

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/business/venue/domain"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/logger"
)

// Wrapper composes Gateway+Parser into the operations the trading pipeline
// calls. Symbols on this venue are base-first (BTC_KRW); both market order
// sides are base-denominated, unlike the quote-first venue.
type Wrapper struct {
	gw     *Gateway
	parser *Parser
	log    logger.LoggerInterface
}

// NewWrapper builds a Wrapper around an already-constructed Gateway.
func NewWrapper(gw *Gateway, log logger.LoggerInterface) *Wrapper {
	return &Wrapper{gw: gw, parser: NewParser(), log: log}
}

// splitSymbol turns "BTC_KRW" into its order/payment currency pair.
func splitSymbol(symbol string) (order, payment string) {
	parts := strings.SplitN(symbol, "_", 2)
	if len(parts) != 2 {
		return symbol, "KRW"
	}
	return parts[0], parts[1]
}

func (w *Wrapper) GetOrderBook(ctx context.Context, symbol string) (*domain.OrderBook, error) {
	order, payment := splitSymbol(symbol)
	var raw json.RawMessage
	err := w.gw.Request(ctx, "GET", "/public/orderbook/"+order+"_"+payment, nil, &raw, app.RequestOptions{})
	if err != nil {
		return nil, err
	}
	return w.parser.ParseOrderBook(symbol, raw)
}

func (w *Wrapper) GetBalances(ctx context.Context) ([]domain.Balance, error) {
	var raw json.RawMessage
	err := w.gw.Request(ctx, "POST", "/info/balance", map[string]string{"currency": "ALL"}, &raw, app.RequestOptions{Signed: true})
	if err != nil {
		return nil, err
	}
	return w.parser.ParseBalances(raw)
}

func (w *Wrapper) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	order, payment := splitSymbol(req.Symbol)

	var endpoint string
	params := map[string]string{
		"order_currency":   order,
		"payment_currency": payment,
	}

	switch {
	case req.OrderType == domain.OrderTypeMarketBase && req.Side == domain.SideBuy:
		endpoint = "/trade/market_buy"
		params["units"] = req.Quantity.String()
	case req.OrderType == domain.OrderTypeMarketBase && req.Side == domain.SideSell:
		endpoint = "/trade/market_sell"
		params["units"] = req.Quantity.String()
	case req.OrderType == domain.OrderTypeLimit:
		endpoint = "/trade/place"
		params["units"] = req.Quantity.String()
		params["price"] = req.Price.String()
		if req.Side == domain.SideBuy {
			params["type"] = "bid"
		} else {
			params["type"] = "ask"
		}
	default:
		return nil, apperror.New(apperror.CodeGatewayError, apperror.WithContext(venueName+": unsupported order type"))
	}

	var raw json.RawMessage
	if err := w.gw.Request(ctx, "POST", endpoint, params, &raw, app.RequestOptions{Signed: true}); err != nil {
		return nil, err
	}
	return w.parser.ParseOrderResult(raw)
}

func (w *Wrapper) CancelOrder(ctx context.Context, orderID string) error {
	return w.gw.Request(ctx, "POST", "/trade/cancel", map[string]string{"order_id": orderID}, nil, app.RequestOptions{Signed: true})
}

func (w *Wrapper) GetOrderStatus(ctx context.Context, orderID string) (*domain.OrderResult, error) {
	var raw json.RawMessage
	err := w.gw.Request(ctx, "POST", "/info/order_detail", map[string]string{"order_id": orderID}, &raw, app.RequestOptions{Signed: true})
	if err != nil {
		return nil, err
	}
	return w.parser.ParseOrderResult(raw)
}

func (w *Wrapper) BuyMarket(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.OrderResult, error) {
	return w.PlaceOrder(ctx, domain.OrderRequest{
		Venue:     venueName,
		Symbol:    symbol,
		Side:      domain.SideBuy,
		OrderType: domain.OrderTypeMarketBase,
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
// single-object subscribe message: {"type":"orderbookdepth","symbols":[symbol]}.
func (w *Wrapper) SubscribeOrderBook(ctx context.Context, symbol string, onUpdate func(*domain.OrderBook)) error {
	conn, err := w.gw.WSConnect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	order, payment := splitSymbol(symbol)
	wireSymbol := order + "_" + payment
	subscribeMsg := map[string]interface{}{
		"type":    "orderbookdepth",
		"symbols": []string{wireSymbol},
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
