package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"ciphmsg/internal/domain"
)

// DefaultQueryTimeout bounds each individual indexer call.
const DefaultQueryTimeout = 10 * time.Second

// Client queries the indexer over HTTP.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New returns a client for the indexer at base. A nil httpClient falls back
// to http.DefaultClient; a zero timeout falls back to DefaultQueryTimeout.
func New(base string, httpClient *http.Client, timeout time.Duration, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{base: base, http: httpClient, timeout: timeout, log: log}
}

// HandshakesBySender fetches the handshake entries address has sent.
func (c *Client) HandshakesBySender(ctx context.Context, address string, limit int) ([]domain.LedgerEntry, error) {
	return c.entries(ctx, "/handshakes/by-sender", url.Values{"address": {address}}, limit)
}

// HandshakesByReceiver fetches the handshake entries addressed to address.
func (c *Client) HandshakesByReceiver(ctx context.Context, address string, limit int) ([]domain.LedgerEntry, error) {
	return c.entries(ctx, "/handshakes/by-receiver", url.Values{"address": {address}}, limit)
}

// ContextualMessagesBySender fetches the contextual-message entries address
// has sent under alias.
func (c *Client) ContextualMessagesBySender(ctx context.Context, address, alias string, limit int) ([]domain.LedgerEntry, error) {
	return c.entries(ctx, "/contextual-messages/by-sender", url.Values{"address": {address}, "alias": {alias}}, limit)
}

// Handshakes issues the by-sender and by-receiver queries concurrently and
// joins the results only after both complete. A failed side degrades to an
// empty slice: staleness is acceptable because reconciliation is idempotent
// and callers re-run it periodically.
func (c *Client) Handshakes(ctx context.Context, address string, limit int) (sent, received []domain.LedgerEntry) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if sent, err = c.HandshakesBySender(ctx, address, limit); err != nil {
			c.log.Warn("by-sender query failed", zap.String("address", address), zap.Error(err))
			sent = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if received, err = c.HandshakesByReceiver(ctx, address, limit); err != nil {
			c.log.Warn("by-receiver query failed", zap.String("address", address), zap.Error(err))
			received = nil
		}
	}()
	wg.Wait()
	return sent, received
}

func (c *Client) entries(ctx context.Context, path string, q url.Values, limit int) ([]domain.LedgerEntry, error) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u := c.base + path + "?" + q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("indexer get %s: %s", path, resp.Status)
	}
	var out []domain.LedgerEntry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time assertion that Client implements domain.LedgerClient.
var _ domain.LedgerClient = (*Client)(nil)
