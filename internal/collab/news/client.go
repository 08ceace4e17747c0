package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"k8s.io/klog/v2"
)

const defaultFeedURL = "https://news.google.com/rss/search"

// Section 新闻板块，按查询词抓取
type Section struct {
	Name  string
	Query string
}

// Headline 单条新闻
type Headline struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
	Section string `json:"section"`
}

// Client 新闻客户端，基于 RSS 检索
type Client struct {
	FeedURL string
	PerFeed int
	Client  *http.Client
}

func NewClient() *Client {
	return &Client{
		FeedURL: defaultFeedURL,
		PerFeed: 5,
		Client: &http.Client{
			Timeout: 6 * time.Second,
		},
	}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Source      string `xml:"source"`
}

// Search 按板块抓取新闻，单板块失败不影响其他板块
func (c *Client) Search(ctx context.Context, sections []Section) ([]Headline, error) {
	var headlines []Headline
	var lastErr error

	for _, section := range sections {
		items, err := c.fetchSection(ctx, section)
		if err != nil {
			klog.Warningf("新闻板块抓取失败: section=%s, error=%v", section.Name, err)
			lastErr = err
			continue
		}
		headlines = append(headlines, items...)
	}

	if len(headlines) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all news sections failed: %w", lastErr)
	}
	return headlines, nil
}

func (c *Client) fetchSection(ctx context.Context, section Section) ([]Headline, error) {
	params := url.Values{}
	params.Set("q", section.Query)

	req, err := http.NewRequestWithContext(ctx, "GET", c.FeedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	limit := c.PerFeed
	if limit <= 0 {
		limit = 5
	}
	var headlines []Headline
	for i, item := range feed.Channel.Items {
		if i >= limit {
			break
		}
		headlines = append(headlines, Headline{
			Title:   item.Title,
			Source:  item.Source,
			Link:    item.Link,
			Snippet: item.Description,
			Date:    item.PubDate,
			Section: section.Name,
		})
	}
	return headlines, nil
}
