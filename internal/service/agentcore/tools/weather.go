package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/collab/weather"
)

type weatherLookup interface {
	Lookup(ctx context.Context, location string) (*weather.Report, error)
}

// WeatherTool 天气查询工具
// 实现 Eino 的 tool.InvokableTool 接口
type WeatherTool struct {
	client          weatherLookup
	defaultLocation string
}

// NewWeatherTool 创建天气查询工具
// defaultLocation: 未提供地点时的默认地点
func NewWeatherTool(client weatherLookup, defaultLocation string) *WeatherTool {
	klog.V(6).Infof("[WeatherTool] 创建工具实例: defaultLocation=%s", defaultLocation)
	return &WeatherTool{client: client, defaultLocation: defaultLocation}
}

// Info 返回工具信息
func (t *WeatherTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "lookup_weather",
		Desc: "Get current weather and a short forecast for a location",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"location": {
				Type: schema.String,
				Desc: "City name, optionally with state, e.g. 'Morristown, NJ' (optional, defaults to home location)",
			},
		}),
	}, nil
}

// InvokableRun 执行天气查询，返回 JSON 结果
func (t *WeatherTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[WeatherTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.Location == "" {
		args.Location = t.defaultLocation
	}

	klog.V(6).Infof("[WeatherTool] 查询天气: location=%s", args.Location)

	report, err := t.client.Lookup(ctx, args.Location)
	if err != nil {
		klog.Warningf("[WeatherTool] 天气查询失败: location=%s, error=%v", args.Location, err)
		return "", err
	}

	result, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
