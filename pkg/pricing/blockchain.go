package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultDomain    = "https://blockchain.info"
	DefaultEndpoint  = "/ticker"
	DefaultSymbol    = "USD"
	DefaultFieldName = "last"
	DefaultTimeout   = 5 * time.Second
)

// BlockchainConfig describes where the ticker lives and how to read it.
type BlockchainConfig struct {
	Domain    string
	Endpoint  string
	Symbol    string
	FieldName string
	Timeout   time.Duration
}

// BlockchainClient reads the BTC price from a blockchain.info style ticker:
// a JSON object keyed by currency symbol whose values hold the price fields.
type BlockchainClient struct {
	HTTPClient *http.Client
	URL        string
	Symbol     string
	FieldName  string
}

// NewBlockchainClient creates a new BlockchainClient, filling unset fields with defaults.
func NewBlockchainClient(cfg BlockchainConfig) *BlockchainClient {
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Symbol == "" {
		cfg.Symbol = DefaultSymbol
	}
	if cfg.FieldName == "" {
		cfg.FieldName = DefaultFieldName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &BlockchainClient{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		URL:        cfg.Domain + cfg.Endpoint,
		Symbol:     cfg.Symbol,
		FieldName:  cfg.FieldName,
	}
}

// Make sure we conform to the interface
var _ Source = (*BlockchainClient)(nil)

// BTCUSDPrice fetches the ticker and returns ticker[Symbol][FieldName].
func (c *BlockchainClient) BTCUSDPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch BTC price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var ticker map[string]map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, fmt.Errorf("failed to decode price response: %w", err)
	}

	fields, ok := ticker[c.Symbol]
	if !ok {
		return 0, fmt.Errorf("%w: symbol %s missing", ErrInvalidPrice, c.Symbol)
	}
	raw, ok := fields[c.FieldName]
	if !ok {
		return 0, fmt.Errorf("%w: field %s missing", ErrInvalidPrice, c.FieldName)
	}
	var price float64
	if err := json.Unmarshal(raw, &price); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}
	return price, nil
}
