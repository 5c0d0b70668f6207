package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ledger/src/config"
	"ledger/src/utils"
	"ledger/src/utils/requests"

	"github.com/sirupsen/logrus"
)

// CacheHandlerI is the shared quote cache, normally backed by Redis so every
// instance of the service sees the same quotes.
type CacheHandlerI interface {
	Get(ctx context.Context, key string, result interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type ServiceClientI interface {
	CurrentPrice(ctx context.Context, symbol string) (*QuoteResponse, error)
}

// ServiceClient talks to the external quote provider. Quotes are cached for
// the configured TTL, in Redis when a handler is wired and in process memory
// otherwise.
type ServiceClient struct {
	API          *requests.ExternalAPIService
	BaseURL      string
	Token        string
	CacheTTL     time.Duration
	CacheHandler CacheHandlerI

	memory *utils.Cache[*QuoteResponse]
}

func NewClient(cfg *config.Config, cacheHandler CacheHandlerI) (*ServiceClient, error) {
	ttl := time.Duration(cfg.ExternalClients.Pricing.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ServiceClient{
		API:          requests.NewExternalAPIService(),
		BaseURL:      cfg.ExternalClients.Pricing.BaseURL,
		Token:        cfg.ExternalClients.Pricing.Token,
		CacheTTL:     ttl,
		CacheHandler: cacheHandler,
		memory:       utils.NewCache[*QuoteResponse](),
	}, nil
}

// CurrentPrice fetches the latest quote for a symbol, serving from cache
// when a fresh enough quote is already held.
func (c *ServiceClient) CurrentPrice(ctx context.Context, symbol string) (*QuoteResponse, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	if quote, ok := c.cachedQuote(ctx, symbol); ok {
		return quote, nil
	}

	endpoint := fmt.Sprintf("%s/v1/quotes/%s", c.BaseURL, url.PathEscape(symbol))
	resp, err := c.API.Get(ctx, endpoint, c.Token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewHTTPError(resp.StatusCode, fmt.Sprintf("failed to retrieve quote for %s: %s", symbol, resp.Status))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quote QuoteResponse
	if err = json.Unmarshal(responseBody, &quote); err != nil {
		return nil, err
	}

	c.cacheQuote(ctx, symbol, &quote)
	logrus.WithField("symbol", symbol).Debug("quote fetched from provider")
	return &quote, nil
}

func (c *ServiceClient) cachedQuote(ctx context.Context, symbol string) (*QuoteResponse, bool) {
	if c.CacheHandler != nil {
		var quote QuoteResponse
		found, err := c.CacheHandler.Get(ctx, cacheKey(symbol), &quote)
		if err != nil {
			logrus.WithError(err).Warn("quote cache read failed")
		} else if found {
			return &quote, true
		}
	}
	return c.memory.Get(symbol)
}

func (c *ServiceClient) cacheQuote(ctx context.Context, symbol string, quote *QuoteResponse) {
	if c.CacheHandler != nil {
		if err := c.CacheHandler.Set(ctx, cacheKey(symbol), quote, c.CacheTTL); err != nil {
			logrus.WithError(err).Warn("quote cache write failed")
		}
	}
	c.memory.Set(symbol, quote, c.CacheTTL)
}

func cacheKey(symbol string) string {
	return "quote:" + symbol
}
