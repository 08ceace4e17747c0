package travel

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/service/agentcore"
)

type agentRunner interface {
	Run(ctx context.Context, instruction string, sink agentcore.Sink)
}

type workerPool interface {
	Submit(task func()) error
}

type activityPublisher interface {
	Publish(ctx context.Context, event eventbus.ActivityEvent) error
}

// Service 旅行洞察服务
// 行程研究比普通聊天更耗时，墙钟时限独立配置（默认 180 秒）
type Service struct {
	runner       agentRunner
	pool         workerPool
	bus          activityPublisher
	timeout      time.Duration
	pollInterval time.Duration
}

// NewService 创建旅行洞察服务
func NewService(runner agentRunner, pool workerPool, bus activityPublisher, timeout time.Duration) *Service {
	return &Service{
		runner:       runner,
		pool:         pool,
		bus:          bus,
		timeout:      timeout,
		pollInterval: 200 * time.Millisecond,
	}
}

// GenerateInsights 生成旅行洞察，事件按顺序回调 emit
// 恰好以一个终止事件结束
func (s *Service) GenerateInsights(ctx context.Context, req *InsightsRequest, emit func(agentcore.AgentEvent)) {
	if req.Destination == "" {
		emit(agentcore.ErrorEvent("Destination is required"))
		return
	}

	klog.V(6).Infof("生成旅行洞察: destination=%s", req.Destination)
	prompt := BuildPrompt(req)

	queue := agentcore.NewQueue()
	err := s.pool.Submit(func() {
		s.runner.Run(context.Background(), prompt, queue)
	})
	if err != nil {
		klog.Errorf("提交旅行 Agent worker 失败: %v", err)
		emit(agentcore.ErrorEvent("The assistant is busy right now, please try again."))
		return
	}

	var toolsUsed []string
	terminal := agentcore.Dispatch(queue, s.timeout, s.pollInterval, func(event agentcore.AgentEvent) {
		if event.Type == agentcore.EventToolStart {
			toolsUsed = append(toolsUsed, event.Tool)
		}
		emit(event)
	})

	if terminal.Type == agentcore.EventDone && s.bus != nil {
		if err := s.bus.Publish(ctx, eventbus.ActivityEvent{
			Type:      eventbus.ActivityEventRecorded,
			Source:    "travel",
			EventType: "insights",
			Summary:   fmt.Sprintf("Insights: %s", req.Destination),
			Metadata: map[string]any{
				"tools":        toolsUsed,
				"response_len": len(terminal.Output),
			},
		}); err != nil {
			klog.Warningf("旅行活动事件发布失败: %v", err)
		}
	}
}
