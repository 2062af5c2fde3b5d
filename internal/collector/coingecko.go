package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"SwapBoard/internal/chart"
	"SwapBoard/internal/model"
)

// DefaultCoinGeckoURL is the public v3 API root.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements SeriesFetcher using the CoinGecko market_chart API.
type CoinGeckoFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewCoinGeckoFetcher creates a fetcher throttled to perMinute requests.
// perMinute <= 0 disables throttling.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, perMinute int) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the subset of the market_chart response we read.
type marketChart struct {
	Prices any `json:"prices"`
}

func (f *CoinGeckoFetcher) FetchSeries(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("coingecko rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("vs_currency", pair.Quote)
	q.Set("days", period.DaysParam())
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", f.BaseURL, url.PathEscape(pair.Base), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Source: f.Name(), Status: resp.StatusCode, Body: string(body)}
	}

	var mc marketChart
	if err := json.Unmarshal(body, &mc); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}
	if mc.Prices == nil {
		return model.Series{}, nil
	}
	series, err := chart.Decode(mc.Prices)
	if err != nil {
		return nil, fmt.Errorf("coingecko prices: %w", err)
	}
	return series, nil
}
