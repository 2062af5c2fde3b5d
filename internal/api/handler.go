package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"SwapBoard/internal/calculator"
	"SwapBoard/internal/chart"
	"SwapBoard/internal/collector"
	"SwapBoard/internal/model"
	"SwapBoard/internal/units"
)

// Error messages the dashboard matches on.
const (
	msgMissingParams = "Missing required query parameters"
	msgUpstreamChart = "Failed to fetch data from CoinGecko"
	msgChartInternal = "An error occurred while fetching data"
	msgPriceInternal = "Error fetching data from CoinGecko"
	msgNoChartData   = "No data available to display on chart."
	msgUnknownToken  = "Unknown token"

	defaultImageWidth  = 600
	defaultImageHeight = 320
	maxImageDimension  = 2000
)

// GetChart handles GET /api/chart and returns the raw [ts, price] pairs.
func (h *Handler) GetChart(c *gin.Context) {
	pair, period, ok := h.chartParams(c)
	if !ok {
		return
	}
	series, ok := h.loadSeries(c, pair, period)
	if !ok {
		return
	}
	if series == nil {
		series = model.Series{}
	}
	c.JSON(http.StatusOK, series)
}

type chartView struct {
	State        string            `json:"state"`
	Period       model.Period      `json:"period"`
	Wording      string            `json:"wording"`
	CurrentPrice string            `json:"currentPrice"`
	TimeDomain   [2]int64          `json:"timeDomain"`
	ValueDomain  [2]float64        `json:"valueDomain"`
	Width        float64           `json:"width"`
	Height       float64           `json:"height"`
	Ticks        chart.TickSpec    `json:"ticks"`
	TickLabels   []string          `json:"tickLabels"`
	TickOffsets  []float64         `json:"tickOffsets"`
	Stats        *calculator.Stats `json:"stats,omitempty"`
}

var noData = gin.H{"state": "no_data", "message": msgNoChartData}

// GetChartView handles GET /api/chart/view: scales and axis ticks for a viewport.
func (h *Handler) GetChartView(c *gin.Context) {
	pair, period, ok := h.chartParams(c)
	if !ok {
		return
	}
	bounds, ok := h.viewport(c)
	if !ok {
		return
	}
	series, ok := h.loadSeries(c, pair, period)
	if !ok {
		return
	}
	sc, err := chart.PlotScales(series, bounds, period)
	if err != nil {
		c.JSON(http.StatusOK, noData)
		return
	}
	spec := chart.MustFormatTick(period, sc.Width)

	view := chartView{
		State:        "ok",
		Period:       period,
		Wording:      period.Wording(),
		CurrentPrice: collector.CurrentPrice(series),
		TimeDomain:   [2]int64{sc.Time.Start().UnixMilli(), sc.Time.End().UnixMilli()},
		ValueDomain:  sc.Value.Domain,
		Width:        sc.Width,
		Height:       sc.Height,
		Ticks:        spec,
	}
	if st, err := calculator.Summarize(series); err == nil {
		view.Stats = &st
	}
	for _, t := range chart.Ticks(sc.Time, spec.Count) {
		view.TickLabels = append(view.TickLabels, spec.Format(t))
		view.TickOffsets = append(view.TickOffsets, sc.Time.ScaleTime(t))
	}
	c.JSON(http.StatusOK, view)
}

// GetTooltip handles GET /api/chart/tooltip: the sample under pointer x.
func (h *Handler) GetTooltip(c *gin.Context) {
	pair, period, ok := h.chartParams(c)
	if !ok {
		return
	}
	bounds, ok := h.viewport(c)
	if !ok {
		return
	}
	x, err := strconv.ParseFloat(c.Query("x"), 64)
	if err != nil {
		h.handleValidationError(c, errors.New("x must be a number"))
		return
	}
	series, ok := h.loadSeries(c, pair, period)
	if !ok {
		return
	}
	sc, err := chart.PlotScales(series, bounds, period)
	if err != nil {
		c.JSON(http.StatusOK, noData)
		return
	}
	tip, err := chart.Tooltip(series, sc, x)
	if err != nil {
		c.JSON(http.StatusOK, noData)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": "ok", "tooltip": tip})
}

// GetChartImage handles GET /api/chart.png. An optional sma=N draws an
// N-sample moving average over the price.
func (h *Handler) GetChartImage(c *gin.Context) {
	pair, period, ok := h.chartParams(c)
	if !ok {
		return
	}
	bounds, ok := h.viewport(c)
	if !ok {
		return
	}
	if bounds.Width < 1 {
		bounds.Width = defaultImageWidth
	}
	if bounds.Height < 1 {
		bounds.Height = defaultImageHeight
	}
	if bounds.Width > maxImageDimension || bounds.Height > maxImageDimension {
		h.handleValidationError(c, errors.New("width and height must not exceed 2000"))
		return
	}
	series, ok := h.loadSeries(c, pair, period)
	if !ok {
		return
	}

	var overlays []model.Series
	if v := c.Query("sma"); v != "" {
		window, err := strconv.Atoi(v)
		if err != nil || window <= 0 {
			h.handleValidationError(c, errors.New("sma must be a positive integer"))
			return
		}
		// a window longer than the series simply draws nothing
		if ma, err := calculator.MovingAverage(series, window); err == nil {
			overlays = append(overlays, ma)
		}
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, series, period, bounds.Width, bounds.Height, overlays...); err != nil {
		if errors.Is(err, chart.ErrInvalidSeries) {
			c.JSON(http.StatusNotFound, noData)
			return
		}
		h.handleError(c, err, http.StatusInternalServerError, msgChartInternal)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GetPrice handles GET /api/price and relays the 0x response body.
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	quote, err := h.quotes.Price(ctx, c.Request.URL.Query())
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, msgPriceInternal)
		return
	}
	c.Data(http.StatusOK, "application/json", quote.Raw)
}

// GetTokens handles GET /api/tokens. With symbol= or address= it returns the
// single matching token instead of the list.
func (h *Handler) GetTokens(c *gin.Context) {
	chainID := model.PolygonChainID
	if v := c.Query("chainId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			h.handleValidationError(c, errors.New("chainId must be an integer"))
			return
		}
		chainID = id
	}

	var (
		token model.Token
		found bool
	)
	switch symbol, address := c.Query("symbol"), c.Query("address"); {
	case symbol != "":
		token, found = model.TokenBySymbol(chainID, symbol)
	case address != "":
		token, found = model.TokenByAddress(chainID, address)
	default:
		tokens := model.TokensByChain(chainID)
		if tokens == nil {
			tokens = []model.Token{}
		}
		c.JSON(http.StatusOK, gin.H{
			"chainId":         chainID,
			"tokens":          tokens,
			"defaultBuyToken": model.DefaultQuoteCurrency(chainID),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownToken})
		return
	}
	c.JSON(http.StatusOK, token)
}

// GetUnits handles GET /api/units?amount=&decimals=&dir=parse|format|half.
func (h *Handler) GetUnits(c *gin.Context) {
	amount := c.Query("amount")
	dir := c.DefaultQuery("dir", "parse")
	decimals, err := strconv.Atoi(c.DefaultQuery("decimals", "18"))
	if amount == "" || err != nil {
		h.handleValidationError(c, errors.New("amount and integer decimals are required"))
		return
	}

	var result string
	switch dir {
	case "parse":
		result, err = units.ParseUnits(amount, decimals)
	case "format":
		result, err = units.FormatUnits(amount, decimals)
	case "half":
		result, err = units.Half(amount)
	default:
		err = errors.New("dir must be parse, format or half")
	}
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

func (h *Handler) chartParams(c *gin.Context) (model.Pair, model.Period, bool) {
	sell, buy, p := c.Query("sellToken"), c.Query("buyToken"), c.Query("period")
	if sell == "" || buy == "" || p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParams})
		return model.Pair{}, "", false
	}
	period, err := model.ParsePeriod(p)
	if err != nil {
		h.handleValidationError(c, err)
		return model.Pair{}, "", false
	}
	return model.Pair{Base: coinGeckoID(sell), Quote: coinGeckoID(buy)}, period, true
}

// coinGeckoID maps a registry symbol or contract address on the default chain
// to its CoinGecko id. Anything else is taken to be an id already.
func coinGeckoID(token string) string {
	if t, ok := model.TokenBySymbol(model.PolygonChainID, token); ok && t.CoinGeckoID != "" {
		return t.CoinGeckoID
	}
	if t, ok := model.TokenByAddress(model.PolygonChainID, token); ok && t.CoinGeckoID != "" {
		return t.CoinGeckoID
	}
	return token
}

func (h *Handler) viewport(c *gin.Context) (model.ViewportBounds, bool) {
	parse := func(name string) (float64, error) {
		v := c.Query(name)
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return 0, errors.New(name + " must be a non-negative number")
		}
		return f, nil
	}
	var (
		bounds model.ViewportBounds
		err    error
	)
	if bounds.Width, err = parse("width"); err != nil {
		h.handleValidationError(c, err)
		return model.ViewportBounds{}, false
	}
	if bounds.Height, err = parse("height"); err != nil {
		h.handleValidationError(c, err)
		return model.ViewportBounds{}, false
	}
	return bounds, true
}

func (h *Handler) loadSeries(c *gin.Context, pair model.Pair, period model.Period) (model.Series, bool) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	series, err := h.charts.Series(ctx, pair, period)
	if err != nil {
		var ue *collector.UpstreamError
		if errors.As(err, &ue) {
			h.handleError(c, err, ue.Status, msgUpstreamChart)
		} else {
			h.handleError(c, err, http.StatusInternalServerError, msgChartInternal)
		}
		return nil, false
	}
	return series, true
}

// handleError logs the error and sends the user-facing message.
func (h *Handler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	log.Printf("[ERROR] %s %s request_id=%s status=%d: %v",
		c.Request.Method, c.Request.URL.Path, requestID(c), statusCode, err)
	c.JSON(statusCode, gin.H{"error": userMessage})
}

func (h *Handler) handleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
