package kindora

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/langly/backend/internal/pkg/cache"
	"k8s.io/klog/v2"
)

// Event 家庭日历事件
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	MemberIDs   []string `json:"memberIds"`
	Color       string   `json:"color"`
	Completed   bool     `json:"completed"`
}

// Member 家庭成员
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Client Kindora 家庭日历客户端
// 服务端到服务端调用，X-API-Key 鉴权，带 30 秒 TTL 缓存
type Client struct {
	BaseURL  string
	APIKey   string
	FamilyID string
	Client   *http.Client
	cache    *cache.Cache
	now      func() time.Time
}

func NewClient(baseURL, apiKey, familyID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		FamilyID: familyID,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(30 * time.Second),
		now:   time.Now,
	}
}

// GetToday 返回今天的事件
func (c *Client) GetToday(ctx context.Context) ([]Event, error) {
	today := c.now().Format("2006-01-02")
	return c.getEvents(ctx, today, today)
}

// GetUpcoming 返回未来 N 天的事件
func (c *Client) GetUpcoming(ctx context.Context, days int) ([]Event, error) {
	if days <= 0 {
		days = 7
	}
	start := c.now().Format("2006-01-02")
	end := c.now().AddDate(0, 0, days).Format("2006-01-02")
	return c.getEvents(ctx, start, end)
}

// GetFamilyMembers 返回家庭成员列表
func (c *Client) GetFamilyMembers(ctx context.Context) ([]Member, error) {
	if cached, ok := c.cache.Get("members"); ok {
		return cached.([]Member), nil
	}

	var members []Member
	if err := c.get(ctx, "/api/members", nil, &members); err != nil {
		return nil, err
	}
	c.cache.Set("members", members)
	return members, nil
}

// getEvents 按日期范围过滤事件，按开始时间排序
func (c *Client) getEvents(ctx context.Context, startDate, endDate string) ([]Event, error) {
	cacheKey := fmt.Sprintf("events:%s:%s", startDate, endDate)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]Event), nil
	}

	var raw []Event
	if err := c.get(ctx, "/api/events", nil, &raw); err != nil {
		return nil, err
	}

	var filtered []Event
	for _, ev := range raw {
		if startDate != "" && ev.StartTime < startDate {
			continue
		}
		if endDate != "" && ev.StartTime > endDate+"T23:59:59" {
			continue
		}
		filtered = append(filtered, ev)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartTime < filtered[j].StartTime
	})

	c.cache.Set(cacheKey, filtered)
	return filtered, nil
}

func (c *Client) get(ctx context.Context, path string, extra url.Values, out any) error {
	params := url.Values{}
	params.Set("familyId", c.FamilyID)
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)
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
		klog.Warningf("Kindora 请求失败: path=%s, status=%d", path, resp.StatusCode)
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
