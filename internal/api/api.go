package api

import (
	"context"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"SwapBoard/internal/model"
)

const (
	DefaultTimeout      = 30 * time.Second
	ServiceName         = "swapboard"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// ChartService returns the price series for a pair and period.
type ChartService interface {
	Series(ctx context.Context, pair model.Pair, period model.Period) (model.Series, error)
}

// QuoteService relays swap price requests.
type QuoteService interface {
	Price(ctx context.Context, query url.Values) (*model.PriceQuote, error)
}

// Handler serves the dashboard API.
type Handler struct {
	charts ChartService
	quotes QuoteService
}

// NewHandler creates a new API handler.
func NewHandler(charts ChartService, quotes QuoteService) *Handler {
	return &Handler{charts: charts, quotes: quotes}
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	api.GET("/chart", h.GetChart)
	api.GET("/chart/view", h.GetChartView)
	api.GET("/chart/tooltip", h.GetTooltip)
	api.GET("/chart.png", h.GetChartImage)
	api.GET("/price", h.GetPrice)
	api.GET("/tokens", h.GetTokens)
	api.GET("/units", h.GetUnits)

	return router
}
