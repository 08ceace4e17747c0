package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/monarch"
)

type financeSource interface {
	GetAccounts(ctx context.Context) ([]monarch.Account, error)
	GetTransactions(ctx context.Context, limit int) ([]monarch.Transaction, error)
	GetBudgets(ctx context.Context) ([]monarch.Budget, error)
	GetCashflow(ctx context.Context) (*monarch.Cashflow, error)
}

// FinanceTool 家庭财务查询工具
type FinanceTool struct {
	client financeSource
}

// NewFinanceTool 创建财务查询工具
func NewFinanceTool(client financeSource) *FinanceTool {
	klog.V(6).Infof("[FinanceTool] 创建工具实例")
	return &FinanceTool{client: client}
}

// Info 返回工具信息
func (t *FinanceTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "get_finance",
		Desc: "Get family finance data. scope 'accounts' for balances, 'transactions' for recent spending, 'budgets' for category budgets, 'overview' for the monthly cashflow summary",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"scope": {
				Type:     schema.String,
				Desc:     "One of: accounts, transactions, budgets, overview",
				Required: true,
			},
			"limit": {
				Type: schema.Integer,
				Desc: "Maximum transactions to return for scope 'transactions' (optional, default 10)",
			},
		}),
	}, nil
}

// InvokableRun 按范围查询财务数据，返回 JSON 结果
func (t *FinanceTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Scope string `json:"scope"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[FinanceTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	klog.V(6).Infof("[FinanceTool] 查询财务: scope=%s, limit=%d", args.Scope, args.Limit)

	var payload any
	var err error
	switch args.Scope {
	case "accounts":
		payload, err = t.client.GetAccounts(ctx)
	case "transactions":
		payload, err = t.client.GetTransactions(ctx, args.Limit)
	case "budgets":
		payload, err = t.client.GetBudgets(ctx)
	case "overview":
		payload, err = t.client.GetCashflow(ctx)
	default:
		return "", fmt.Errorf("unknown scope %q, expected accounts, transactions, budgets or overview", args.Scope)
	}
	if err != nil {
		klog.Warningf("[FinanceTool] 财务查询失败: scope=%s, error=%v", args.Scope, err)
		return "", err
	}

	result, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
