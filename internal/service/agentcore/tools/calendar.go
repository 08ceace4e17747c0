package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/kindora"
)

type calendarSource interface {
	GetToday(ctx context.Context) ([]kindora.Event, error)
	GetUpcoming(ctx context.Context, days int) ([]kindora.Event, error)
	GetFamilyMembers(ctx context.Context) ([]kindora.Member, error)
}

// CalendarTool 家庭日历查询工具
type CalendarTool struct {
	client calendarSource
}

// NewCalendarTool 创建日历查询工具
func NewCalendarTool(client calendarSource) *CalendarTool {
	klog.V(6).Infof("[CalendarTool] 创建工具实例")
	return &CalendarTool{client: client}
}

// Info 返回工具信息
func (t *CalendarTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "get_calendar_events",
		Desc: "Get family calendar events. scope 'today' for today's schedule, 'upcoming' for the next N days, 'members' for the family member list",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"scope": {
				Type:     schema.String,
				Desc:     "One of: today, upcoming, members",
				Required: true,
			},
			"days": {
				Type: schema.Integer,
				Desc: "Number of days ahead for scope 'upcoming' (optional, default 7)",
			},
		}),
	}, nil
}

// InvokableRun 按范围查询日历，返回 JSON 结果
func (t *CalendarTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Scope string `json:"scope"`
		Days  int    `json:"days"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[CalendarTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Days <= 0 {
		args.Days = 7
	}

	klog.V(6).Infof("[CalendarTool] 查询日历: scope=%s, days=%d", args.Scope, args.Days)

	var payload any
	var err error
	switch args.Scope {
	case "today":
		payload, err = t.client.GetToday(ctx)
	case "upcoming":
		payload, err = t.client.GetUpcoming(ctx, args.Days)
	case "members":
		payload, err = t.client.GetFamilyMembers(ctx)
	default:
		return "", fmt.Errorf("unknown scope %q, expected today, upcoming or members", args.Scope)
	}
	if err != nil {
		klog.Warningf("[CalendarTool] 日历查询失败: scope=%s, error=%v", args.Scope, err)
		return "", err
	}

	result, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
