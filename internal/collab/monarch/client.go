package monarch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/langly/backend/internal/pkg/cache"
	"k8s.io/klog/v2"
)

// Account 资金账户
type Account struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
}

// Transaction 交易流水
type Transaction struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// Budget 分类预算
type Budget struct {
	Category  string  `json:"category"`
	Budgeted  float64 `json:"budgeted"`
	Actual    float64 `json:"actual"`
	Remaining float64 `json:"remaining"`
}

// Cashflow 收支概览
type Cashflow struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savingsRate"`
}

// Client Monarch 财务客户端，Token 鉴权，带 5 分钟 TTL 缓存
type Client struct {
	BaseURL string
	Token   string
	Client  *http.Client
	cache   *cache.Cache
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache: cache.New(5 * time.Minute),
	}
}

func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	if cached, ok := c.cache.Get("accounts"); ok {
		return cached.([]Account), nil
	}
	var accounts []Account
	if err := c.get(ctx, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	c.cache.Set("accounts", accounts)
	return accounts, nil
}

func (c *Client) GetTransactions(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	cacheKey := fmt.Sprintf("transactions:%d", limit)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]Transaction), nil
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	var transactions []Transaction
	if err := c.get(ctx, "/transactions", params, &transactions); err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey, transactions)
	return transactions, nil
}

func (c *Client) GetBudgets(ctx context.Context) ([]Budget, error) {
	if cached, ok := c.cache.Get("budgets"); ok {
		return cached.([]Budget), nil
	}
	var budgets []Budget
	if err := c.get(ctx, "/budgets", nil, &budgets); err != nil {
		return nil, err
	}
	c.cache.Set("budgets", budgets)
	return budgets, nil
}

func (c *Client) GetCashflow(ctx context.Context) (*Cashflow, error) {
	if cached, ok := c.cache.Get("cashflow"); ok {
		return cached.(*Cashflow), nil
	}
	var cashflow Cashflow
	if err := c.get(ctx, "/cashflow", nil, &cashflow); err != nil {
		return nil, err
	}
	c.cache.Set("cashflow", &cashflow)
	return &cashflow, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	rawURL := c.BaseURL + path
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		klog.Warningf("Monarch 请求失败: path=%s, status=%d", path, resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Invalidate 清除缓存，写路径调用
func (c *Client) Invalidate(prefix string) {
	c.cache.Invalidate(prefix)
}
