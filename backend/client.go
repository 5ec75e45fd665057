// Package backend talks to the remote GraphQL API that owns portfolios,
// assets and transactions.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"
	"github.com/rs/zerolog"

	"crypto-dashboard/metrics"
	"crypto-dashboard/portfolio"
	"crypto-dashboard/storage"
)

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrNotFound     = errors.New("not found")
	ErrGraphQL      = errors.New("graphql error")

	errUnexpectedStatus = errors.New("unexpected status")
)

// Caller identifies who a request is made for. Token is forwarded verbatim as
// a bearer token; UserID scopes cached data.
type Caller struct {
	UserID string
	Token  string
}

// Client is a GraphQL client with a read-through cache for the portfolio list
// and the market listings.
type Client struct {
	http     *http.Client
	gql      *graphql.Client
	cache    storage.KV
	cacheTTL time.Duration
	log      zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache enables caching of portfolio and market reads for ttl.
func WithCache(kv storage.KV, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = kv
		c.cacheTTL = ttl
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.http
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = statusTransport{base: base}
	c.gql = graphql.NewClient(endpoint, graphql.WithHTTPClient(&hc))
	return c
}

// statusTransport turns transport failures and non-200 answers into errors
// before the GraphQL layer tries to decode a body.
type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return nil, fmt.Errorf("%w %d: %s", errUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
}

func (c *Client) do(ctx context.Context, caller Caller, op, query string, vars map[string]any, out any) (err error) {
	defer func() { metrics.RecordBackendRequest(op, err) }()

	req := graphql.NewRequest(query)
	for k, v := range vars {
		req.Var(k, v)
	}
	if caller.Token != "" {
		req.Header.Set("Authorization", "Bearer "+caller.Token)
	}

	err = c.gql.Run(ctx, req, out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrUnavailable), errors.Is(err, errUnexpectedStatus):
		return fmt.Errorf("%s: %w", op, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case strings.HasPrefix(err.Error(), "graphql: "):
		// transport and status failures are handled above, so only the
		// response's error list is left with this prefix
		return fmt.Errorf("%w: %s: %s", ErrGraphQL, op, strings.TrimPrefix(err.Error(), "graphql: "))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func cacheKey(userID string) string {
	return "portfolios:" + userID
}

func cacheGet[T any](ctx context.Context, c *Client, key string) (T, bool) {
	var v T
	if c.cache == nil {
		return v, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("backend cache read failed")
	}
	if err != nil || !ok {
		metrics.RecordCacheLookup(false)
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable backend cache entry")
		metrics.RecordCacheLookup(false)
		return v, false
	}
	metrics.RecordCacheLookup(true)
	return v, true
}

func cacheSet(ctx context.Context, c *Client, key string, v any) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(raw), c.cacheTTL); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("backend cache write failed")
	}
}

// Portfolios returns the caller's portfolios, from cache when fresh.
func (c *Client) Portfolios(ctx context.Context, caller Caller) ([]portfolio.Portfolio, error) {
	ps, _, err := c.PortfoliosFresh(ctx, caller)
	return ps, err
}

// PortfoliosFresh is Portfolios that also reports whether the list was just
// fetched from the backend rather than served from cache.
func (c *Client) PortfoliosFresh(ctx context.Context, caller Caller) ([]portfolio.Portfolio, bool, error) {
	if caller.UserID != "" {
		if cached, ok := cacheGet[[]portfolio.Portfolio](ctx, c, cacheKey(caller.UserID)); ok {
			return cached, false, nil
		}
	}

	var data struct {
		Portfolios []portfolio.Portfolio `json:"portfolios"`
	}
	if err := c.do(ctx, caller, "portfolios", portfoliosQuery, nil, &data); err != nil {
		return nil, false, err
	}
	if data.Portfolios == nil {
		data.Portfolios = []portfolio.Portfolio{}
	}

	if caller.UserID != "" {
		cacheSet(ctx, c, cacheKey(caller.UserID), data.Portfolios)
	}
	return data.Portfolios, true, nil
}

// Invalidate drops the caller's cached portfolios so the next read refetches.
func (c *Client) Invalidate(ctx context.Context, caller Caller) {
	if c.cache == nil || caller.UserID == "" {
		return
	}
	if err := c.cache.Delete(ctx, cacheKey(caller.UserID)); err != nil {
		c.log.Warn().Err(err).Str("user_id", caller.UserID).Msg("portfolio cache invalidation failed")
	}
}

// PortfolioTransactions lists every transaction of one portfolio.
func (c *Client) PortfolioTransactions(ctx context.Context, caller Caller, portfolioID string) ([]portfolio.Transaction, error) {
	var data struct {
		Transactions *[]portfolio.Transaction `json:"portfolioTransactions"`
	}
	vars := map[string]any{"portfolioId": portfolioID}
	if err := c.do(ctx, caller, "portfolioTransactions", portfolioTransactionsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Transactions == nil {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, ErrNotFound)
	}
	return *data.Transactions, nil
}

type NewTransaction struct {
	PortfolioID     string
	AssetID         string
	TransactionType portfolio.TransactionType
	Amount          float64
	PricePerUnit    float64
	Notes           string
}

// AddTransaction submits a confirmed buy or sell and invalidates the caller's
// cached portfolios.
func (c *Client) AddTransaction(ctx context.Context, caller Caller, in NewTransaction) (portfolio.Transaction, error) {
	vars := map[string]any{
		"portfolioId":     in.PortfolioID,
		"assetId":         in.AssetID,
		"transactionType": string(in.TransactionType),
		"amount":          in.Amount,
		"pricePerUnit":    in.PricePerUnit,
	}
	if in.Notes != "" {
		vars["notes"] = in.Notes
	}

	var data struct {
		Transaction portfolio.Transaction `json:"addTransaction"`
	}
	if err := c.do(ctx, caller, "addTransaction", addTransactionMutation, vars, &data); err != nil {
		return portfolio.Transaction{}, err
	}

	c.Invalidate(ctx, caller)
	c.log.Info().
		Str("user_id", caller.UserID).
		Str("portfolio_id", in.PortfolioID).
		Str("asset_id", in.AssetID).
		Str("type", string(in.TransactionType)).
		Float64("amount", in.Amount).
		Msg("transaction submitted")
	return data.Transaction, nil
}
