package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/klog/v2"
)

const defaultQuoteURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Quote 单只股票行情
type Quote struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PreviousClose float64 `json:"previousClose"`
}

// Client 行情客户端，走 Yahoo 图表接口
type Client struct {
	QuoteURL string
	Client   *http.Client
}

func NewClient() *Client {
	return &Client{
		QuoteURL: defaultQuoteURL,
		Client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Lookup 查询单只股票，批量查询时单只失败互不影响，由调用方逐只处理
func (c *Client) Lookup(ctx context.Context, ticker string) (*Quote, error) {
	klog.V(6).Infof("行情查询: ticker=%s", ticker)

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/%s", c.QuoteURL, ticker), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("quote error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	meta := chart.Chart.Result[0].Meta
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	price := meta.RegularMarketPrice
	change := 0.0
	pct := 0.0
	if price != 0 && prev != 0 {
		change = price - prev
		pct = change / prev * 100
	}
	name := meta.ShortName
	if name == "" {
		name = ticker
	}

	return &Quote{
		Ticker:        ticker,
		Name:          name,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
		PreviousClose: prev,
	}, nil
}
