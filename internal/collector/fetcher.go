package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"SwapBoard/internal/model"
)

// SeriesFetcher loads a price series for a pair over a period.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error)
	Name() string
}

// UpstreamError reports a non-2xx answer from a market-data provider.
type UpstreamError struct {
	Source string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d, body: %s", e.Source, e.Status, e.Body)
}

// newHTTPClient builds a client with a 30s timeout and optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
