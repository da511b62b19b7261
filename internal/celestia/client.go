// internal/celestia/client.go
//
// Minimal JSON-RPC client for a Celestia node, implementing attest.Sink.
//
// Only one call is used:
//
//	state.SubmitPayForBlob(blobs []Blob, cfg TxConfig) -> TxResponse
//
// Byte fields travel as base64 (the node's Go []byte JSON convention).
// The node authenticates with a JWT bearer token; the token is decoded
// locally (not verified, the node holds the secret) so an expired or
// read-only token fails before any request is sent.
package celestia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordtia/internal/attest"
)

const (
	// DefaultURL is the node's default local RPC address.
	DefaultURL = "http://localhost:10101"

	methodSubmitPayForBlob = "state.SubmitPayForBlob"

	namespaceVersionZero = 0
	namespacePrefixZeros = 18
	shareVersionZero     = 0
)

var (
	// ErrTokenExpired is returned when the auth token's exp claim has passed.
	ErrTokenExpired = errors.New("celestia: auth token expired")
	// ErrTokenScope is returned when the auth token cannot submit transactions.
	ErrTokenScope = errors.New("celestia: auth token lacks write permission")
)

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("celestia rpc error %d: %s", e.Code, e.Message)
}

// TxError is a transaction the node accepted but the chain rejected.
type TxError struct {
	Code   uint32
	TxHash string
	Log    string
}

func (e *TxError) Error() string {
	return fmt.Sprintf("celestia tx %s failed with code %d: %s", e.TxHash, e.Code, e.Log)
}

// Client talks to one node.
type Client struct {
	url    string
	token  string
	http   *http.Client
	now    func() time.Time
	nextID atomic.Int64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout bounds each request. Zero means no client-side limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithClock overrides the clock used to check token expiry.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// New builds a client for the node at url. An empty token sends no
// Authorization header (nodes started with --rpc.skip-auth).
func New(url, token string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{url: url, token: token, http: &http.Client{}, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// blob is the node's JSON shape of a share-version-0 blob.
type blob struct {
	Namespace    []byte `json:"namespace"`
	Data         []byte `json:"data"`
	ShareVersion uint8  `json:"share_version"`
}

// txConfig mirrors the node's state.TxConfig.
type txConfig struct {
	GasPrice          float64 `json:"gas_price,omitempty"`
	IsGasPriceSet     bool    `json:"is_gas_price_set,omitempty"`
	Gas               uint64  `json:"gas,omitempty"`
	KeyName           string  `json:"key_name,omitempty"`
	SignerAddress     string  `json:"signer_address,omitempty"`
	FeeGranterAddress string  `json:"fee_granter_address,omitempty"`
}

// txResponse is the subset of the node's TxResponse we read.
type txResponse struct {
	Height flexInt64 `json:"height"`
	TxHash string    `json:"txhash"`
	Code   uint32    `json:"code"`
	RawLog string    `json:"raw_log"`
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// Attest implements attest.Sink via state.SubmitPayForBlob.
func (c *Client) Attest(ctx context.Context, p attest.Payload, cfg attest.TxConfig) (attest.Receipt, error) {
	if err := c.checkToken(); err != nil {
		return attest.Receipt{}, err
	}

	tc := txConfig{
		Gas:               cfg.Gas,
		KeyName:           cfg.KeyName,
		SignerAddress:     cfg.SignerAddress,
		FeeGranterAddress: cfg.FeeGranterAddress,
	}
	if cfg.GasPrice > 0 {
		tc.GasPrice, tc.IsGasPriceSet = cfg.GasPrice, true
	}
	b := blob{Namespace: WireNamespace(p.Namespace), Data: p.Data, ShareVersion: shareVersionZero}

	var res txResponse
	if err := c.call(ctx, methodSubmitPayForBlob, []any{[]blob{b}, tc}, &res); err != nil {
		return attest.Receipt{}, err
	}
	if res.Code != 0 {
		return attest.Receipt{}, &TxError{Code: res.Code, TxHash: res.TxHash, Log: res.RawLog}
	}
	return attest.Receipt{Height: int64(res.Height), TxHash: res.TxHash}, nil
}

// WireNamespace expands a 10-byte tag into the 29-byte v0 namespace:
// version byte, 18 zero bytes, then the tag.
func WireNamespace(ns attest.Namespace) []byte {
	out := make([]byte, 1+namespacePrefixZeros+attest.NamespaceSize)
	out[0] = namespaceVersionZero
	copy(out[1+namespacePrefixZeros:], ns[:])
	return out
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("celestia: encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("celestia: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("celestia: %s: %w", method, err)
	}
	defer resp.Body.Close()
	log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("rpc call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("celestia: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("celestia: %s: http %d: %s", method, resp.StatusCode, bytes.TrimSpace(raw))
	}

	var rpcResp response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return fmt.Errorf("celestia: decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return fmt.Errorf("celestia: %s: empty result", method)
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("celestia: decode result: %w", err)
	}
	return nil
}

// checkToken decodes the bearer token and rejects it early when it is
// expired or does not grant write access.
func (c *Client) checkToken() error {
	if c.token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return fmt.Errorf("celestia: parse auth token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("celestia: auth token exp: %w", err)
	}
	if exp != nil && !c.now().Before(exp.Time) {
		return ErrTokenExpired
	}
	allow, ok := claims["Allow"]
	if !ok {
		return nil
	}
	perms, _ := allow.([]any)
	for _, p := range perms {
		if s, _ := p.(string); s == "write" || s == "admin" {
			return nil
		}
	}
	return ErrTokenScope
}

// flexInt64 accepts both JSON numbers and decimal strings.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("height %s: %w", b, err)
	}
	*f = flexInt64(n)
	return nil
}
