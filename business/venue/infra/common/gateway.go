// Package common holds the gateway scaffolding shared by both venue
// implementations: instrumented HTTP transport, per-venue rate limiting,
// and websocket dialing. Each venue wraps BaseGateway and supplies only its
// own signing and request-shaping rules.
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/coder/websocket"

	"github.com/karb/arbitrage-engine/business/venue/app"
	"github.com/karb/arbitrage-engine/internal/apperror"
	"github.com/karb/arbitrage-engine/internal/httpclient"
	"github.com/karb/arbitrage-engine/internal/logger"
	"github.com/karb/arbitrage-engine/internal/ratelimit"
)

// DefaultLimits are the per-venue token-bucket defaults observed operationally.
type DefaultLimits struct {
	PublicCapacity  int
	PublicRate      float64
	PrivateCapacity int
	PrivateRate     float64
}

// Settings configures a venue's gateway.
type Settings struct {
	Name           string
	RestBase       string
	WebSocketURL   string
	AccessKey      string
	SecretKey      string
	Limits         DefaultLimits
}

// SignedHeaders is the hook each venue implements to attach auth headers
// (and, for request bodies that need folding, to report nothing here since
// body mutation happens in the venue's own Request override).
type SignedHeaders func(ctx context.Context, method, endpoint string, params map[string]string, secretKey, accessKey string) (map[string]string, error)

// BaseGateway implements the transport concerns shared by both venues:
// lazy HTTP client construction, public/private token buckets, default
// headers, status>=400 error mapping, and websocket dialing.
type BaseGateway struct {
	settings     Settings
	logger       logger.LoggerInterface
	httpClient   httpclient.Client
	publicLimit  *ratelimit.Limiter
	privateLimit *ratelimit.Limiter
	sign         SignedHeaders
}

// NewBaseGateway builds a BaseGateway. sign is nil for venues that only
// issue unsigned calls.
func NewBaseGateway(settings Settings, log logger.LoggerInterface, sign SignedHeaders) (*BaseGateway, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithBaseURL(settings.RestBase),
		httpclient.WithProviderName(settings.Name),
		httpclient.WithHeaders(map[string]string{
			"User-Agent": "k-arb/0.1",
		}),
	)
	if err != nil {
		return nil, apperror.New(apperror.CodeGatewayError, apperror.WithCause(err),
			apperror.WithContext(settings.Name+": failed to build http client"))
	}

	return &BaseGateway{
		settings:     settings,
		logger:       log,
		httpClient:   client,
		publicLimit:  ratelimit.NewWithBurst(settings.Limits.PublicRate, settings.Limits.PublicCapacity),
		privateLimit: ratelimit.NewWithBurst(settings.Limits.PrivateRate, settings.Limits.PrivateCapacity),
		sign:         sign,
	}, nil
}

// chooseLimiter picks the public or private bucket for a call.
func (g *BaseGateway) chooseLimiter(signed bool) *ratelimit.Limiter {
	if signed {
		return g.privateLimit
	}
	return g.publicLimit
}

// Request performs a REST call, applying rate limiting, signing and
// status-based error mapping uniformly. Venue-specific body shaping (e.g.
// venue B folding the endpoint into signed form params) is handled by the
// caller via the params map before Request is invoked, or by the embedding
// venue gateway's own Request method, which shadows this one.
func (g *BaseGateway) Request(ctx context.Context, method, endpoint string, params map[string]string, out interface{}, opts app.RequestOptions) error {
	if err := g.chooseLimiter(opts.Signed).Wait(ctx); err != nil {
		return apperror.New(apperror.CodeGatewayError, apperror.WithCause(err),
			apperror.WithContext(g.settings.Name+": rate limiter wait failed"))
	}

	headers := map[string]string{}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	if opts.Signed {
		if g.sign == nil || g.settings.AccessKey == "" || g.settings.SecretKey == "" {
			return apperror.New(apperror.CodeGatewayUnsigned,
				apperror.WithContext(g.settings.Name+": missing credentials for signed call"))
		}
		signed, err := g.sign(ctx, method, endpoint, params, g.settings.SecretKey, g.settings.AccessKey)
		if err != nil {
			return apperror.New(apperror.CodeGatewayError, apperror.WithCause(err),
				apperror.WithContext(g.settings.Name+": signing failed"))
		}
		for k, v := range signed {
			headers[k] = v
		}
	}

	req := g.httpClient.NewRequestWithOptions(
		httpclient.WithResponseErrorHandler(func(statusCode int, body []byte) error {
			if statusCode >= 400 {
				return apperror.New(apperror.CodeGatewayStatus,
					apperror.WithStatusCode(statusCode),
					apperror.WithContext(fmt.Sprintf("%s: %s %s -> %d: %s", g.settings.Name, method, endpoint, statusCode, string(body))))
			}
			return nil
		}),
	).SetHeaders(headers)

	isBodyMethod := method != "GET" && method != "DELETE"
	if isBodyMethod {
		form := url.Values{}
		for k, v := range params {
			form.Set(k, v)
		}
		req = req.SetHeader("Content-Type", "application/x-www-form-urlencoded").SetBody(form.Encode())
	} else {
		qp := map[string]string{}
		for k, v := range params {
			qp[k] = v
		}
		req = req.SetQueryParams(qp)
	}

	fullURL := strings.TrimRight(g.settings.RestBase, "/") + endpoint

	var resp *httpclient.Response
	var err error
	switch method {
	case "GET":
		resp, err = req.Get(ctx, fullURL)
	case "POST":
		resp, err = req.Post(ctx, fullURL)
	case "DELETE":
		resp, err = req.Delete(ctx, fullURL)
	default:
		return apperror.New(apperror.CodeGatewayError, apperror.WithContext("unsupported method "+method))
	}
	if err != nil {
		if apperror.IsAppError(err) {
			// Status >= 400: the response error handler already built a CodeGatewayStatus error.
			return err
		}
		return apperror.New(apperror.CodeGatewayError, apperror.WithCause(err),
			apperror.WithContext(g.settings.Name+": "+method+" "+endpoint))
	}

	if out != nil {
		if uErr := json.Unmarshal(resp.Body(), out); uErr != nil {
			return apperror.New(apperror.CodeGatewayError, apperror.WithCause(uErr),
				apperror.WithContext(g.settings.Name+": failed to decode response body"))
		}
	}

	return nil
}

// WSConnect opens a raw websocket connection to the venue's streaming
// endpoint with a 10 MiB read limit. It sends no ping heartbeat of its own;
// liveness depends on the server and on the caller's read context.
func (g *BaseGateway) WSConnect(ctx context.Context) (app.WSConn, error) {
	conn, _, err := websocket.Dial(ctx, g.settings.WebSocketURL, nil)
	if err != nil {
		return nil, apperror.New(apperror.CodeGatewayWebSocket, apperror.WithCause(err),
			apperror.WithContext(g.settings.Name+": websocket dial failed"))
	}
	conn.SetReadLimit(10 * 1024 * 1024)
	return &wsConn{conn: conn}, nil
}

// Close is a no-op: the instrumented HTTP client has no persistent
// connection to tear down beyond its pooled transport.
func (g *BaseGateway) Close() error {
	return nil
}

// wsConn adapts coder/websocket.Conn to the narrow app.WSConn surface.
type wsConn struct {
	conn *websocket.Conn
}

func (w *wsConn) WriteJSON(ctx context.Context, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.conn.Write(ctx, websocket.MessageText, b)
}

func (w *wsConn) ReadMessage(ctx context.Context) ([]byte, error) {
	_, data, err := w.conn.Read(ctx)
	return data, err
}

func (w *wsConn) Close() error {
	return w.conn.Close(websocket.StatusNormalClosure, "closing")
}
