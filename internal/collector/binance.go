package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"

	"SwapBoard/internal/model"
)

// BinanceFetcher implements SeriesFetcher from public Binance spot klines.
// It is used as a fallback when CoinGecko throttles.
type BinanceFetcher struct {
	client *binance.Client
	Assets map[string]string // maps CoinGecko id to Binance asset
	now    func() time.Time
}

// NewBinanceFetcher creates a public-endpoint client. baseURL may be empty.
func NewBinanceFetcher(baseURL string) *BinanceFetcher {
	client := binance.NewClient("", "")
	if baseURL != "" {
		client.BaseURL = baseURL
	}
	return &BinanceFetcher{
		client: client,
		Assets: map[string]string{
			"weth":          "ETH",
			"ethereum":      "ETH",
			"wmatic":        "POL",
			"matic-network": "POL",
			"bitcoin":       "BTC",
			"usd":           "USDT",
			"tether":        "USDT",
			"usdc":          "USDC",
			"usd-coin":      "USDC",
			"dai":           "DAI",
		},
		now: time.Now,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// klineInterval keeps each period within a single klines page.
var klineInterval = map[model.Period]string{
	model.PeriodOneHour:  "1m",
	model.PeriodOneDay:   "5m",
	model.PeriodOneWeek:  "1h",
	model.PeriodOneMonth: "4h",
	model.PeriodOneYear:  "1d",
}

func (f *BinanceFetcher) symbol(pair model.Pair) string {
	asset := func(id string) string {
		if a, ok := f.Assets[strings.ToLower(id)]; ok {
			return a
		}
		return strings.ToUpper(id)
	}
	return asset(pair.Base) + asset(pair.Quote)
}

func (f *BinanceFetcher) FetchSeries(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error) {
	interval, ok := klineInterval[period]
	if !ok {
		return nil, fmt.Errorf("binance: unsupported period %q", period)
	}
	symbol := f.symbol(pair)
	window := time.Duration(period.Days() * float64(24*time.Hour))
	start := f.now().Add(-window)

	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(start.UnixMilli()).
		Limit(1000).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s: %w", symbol, err)
	}

	series := make(model.Series, 0, len(klines))
	for _, k := range klines {
		c, err := strconv.ParseFloat(k.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("binance kline close %q: %w", k.Close, err)
		}
		series = append(series, model.Sample{Time: time.UnixMilli(k.OpenTime), Value: c})
	}
	return series, nil
}
