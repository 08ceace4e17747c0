package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/stocks"
)

type stockLookup interface {
	Lookup(ctx context.Context, ticker string) (*stocks.Quote, error)
}

// StockTool 股票报价查询工具
type StockTool struct {
	client stockLookup
}

// NewStockTool 创建股票查询工具
func NewStockTool(client stockLookup) *StockTool {
	klog.V(6).Infof("[StockTool] 创建工具实例")
	return &StockTool{client: client}
}

// Info 返回工具信息
func (t *StockTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "lookup_stock",
		Desc: "Get the latest quote for a stock ticker",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"ticker": {
				Type:     schema.String,
				Desc:     "Stock ticker symbol, e.g. AAPL",
				Required: true,
			},
		}),
	}, nil
}

// InvokableRun 执行股票查询，返回 JSON 报价
func (t *StockTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[StockTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	args.Ticker = strings.ToUpper(strings.TrimSpace(args.Ticker))
	if args.Ticker == "" {
		return "", fmt.Errorf("ticker is required")
	}

	klog.V(6).Infof("[StockTool] 查询报价: ticker=%s", args.Ticker)

	quote, err := t.client.Lookup(ctx, args.Ticker)
	if err != nil {
		klog.Warningf("[StockTool] 报价查询失败: ticker=%s, error=%v", args.Ticker, err)
		return "", err
	}

	result, err := json.Marshal(quote)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
