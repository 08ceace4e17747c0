package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/news"
)

type newsSource interface {
	Search(ctx context.Context, sections []news.Section) ([]news.Headline, error)
}

// NewsTool 新闻检索工具
type NewsTool struct {
	client newsSource
}

// NewNewsTool 创建新闻检索工具
func NewNewsTool(client newsSource) *NewsTool {
	klog.V(6).Infof("[NewsTool] 创建工具实例")
	return &NewsTool{client: client}
}

// Info 返回工具信息
func (t *NewsTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "search_news",
		Desc: "Search recent news headlines for a topic",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {
				Type:     schema.String,
				Desc:     "Topic or keywords to search for",
				Required: true,
			},
		}),
	}, nil
}

// InvokableRun 检索新闻，返回 JSON 标题列表
func (t *NewsTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[NewsTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	args.Query = strings.TrimSpace(args.Query)
	if args.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	klog.V(6).Infof("[NewsTool] 检索新闻: query=%s", args.Query)

	headlines, err := t.client.Search(ctx, []news.Section{{Name: "Search", Query: args.Query}})
	if err != nil {
		klog.Warningf("[NewsTool] 新闻检索失败: query=%s, error=%v", args.Query, err)
		return "", err
	}

	result, err := json.Marshal(headlines)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
