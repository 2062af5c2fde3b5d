package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"SwapBoard/internal/model"
)

// DefaultZeroExURL is the 0x API root.
const DefaultZeroExURL = "https://api.0x.org"

// ZeroExClient relays swap price requests to the 0x tx-relay API.
type ZeroExClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewZeroExClient creates a new client with optional proxy support.
func NewZeroExClient(baseURL, apiKey, proxyURL string) *ZeroExClient {
	if baseURL == "" {
		baseURL = DefaultZeroExURL
	}
	return &ZeroExClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

// Price forwards query unchanged to /tx-relay/v1/swap/price. The chain id
// header is taken from the chainId parameter. The upstream body is kept in
// PriceQuote.Raw whatever its status.
func (c *ZeroExClient) Price(ctx context.Context, query url.Values) (*model.PriceQuote, error) {
	endpoint := c.BaseURL + "/tx-relay/v1/swap/price?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("0x-api-key", c.APIKey)
	req.Header.Set("0x-chain-id", query.Get("chainId"))

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("0x price: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("0x read body: %w", err)
	}
	quote := &model.PriceQuote{}
	if err := json.Unmarshal(body, quote); err != nil {
		return nil, fmt.Errorf("0x decode (status %d): %w", resp.StatusCode, err)
	}
	quote.Raw = body
	quote.Status = resp.StatusCode
	return quote, nil
}
