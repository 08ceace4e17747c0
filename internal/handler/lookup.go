package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/stocks"
	"github.com/langly/backend/internal/collab/weather"
)

type weatherLookup interface {
	Lookup(ctx context.Context, location string) (*weather.Report, error)
}

type stockLookup interface {
	Lookup(ctx context.Context, ticker string) (*stocks.Quote, error)
}

// LookupHandler 天气与股票的直查接口，围绕采集客户端的薄封装
type LookupHandler struct {
	weather         weatherLookup
	stocks          stockLookup
	defaultLocation string
	watchlist       []string
}

func NewLookupHandler(weatherClient weatherLookup, stockClient stockLookup, defaultLocation string, watchlist []string) *LookupHandler {
	return &LookupHandler{
		weather:         weatherClient,
		stocks:          stockClient,
		defaultLocation: defaultLocation,
		watchlist:       watchlist,
	}
}

func (h *LookupHandler) Weather(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		location = h.defaultLocation
	}

	report, err := h.weather.Lookup(c.Request.Context(), location)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *LookupHandler) Stock(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))
	quote, err := h.stocks.Lookup(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Watchlist 批量查询自选股，单支失败不影响其余
func (h *LookupHandler) Watchlist(c *gin.Context) {
	tickers := h.watchlist
	if param := c.Query("tickers"); param != "" {
		tickers = nil
		for _, t := range strings.Split(param, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				tickers = append(tickers, t)
			}
		}
	}

	quotes := make([]*stocks.Quote, 0, len(tickers))
	failed := make([]string, 0)
	for _, ticker := range tickers {
		quote, err := h.stocks.Lookup(c.Request.Context(), ticker)
		if err != nil {
			klog.Warningf("自选股查询失败: ticker=%s, error=%v", ticker, err)
			failed = append(failed, ticker)
			continue
		}
		quotes = append(quotes, quote)
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "failed": failed})
}
