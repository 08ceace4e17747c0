package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/intent"
	"github.com/langly/backend/internal/service/agentcore"
	"github.com/langly/backend/internal/service/fastpath"
)

const summaryMaxLen = 80

type classifier interface {
	Classify(message string) *intent.RouteDescriptor
}

type fastExecutor interface {
	Execute(ctx context.Context, rd *intent.RouteDescriptor) *fastpath.Result
}

type agentRunner interface {
	Run(ctx context.Context, instruction string, sink agentcore.Sink)
}

type workerPool interface {
	Submit(task func()) error
}

type activityPublisher interface {
	Publish(ctx context.Context, event eventbus.ActivityEvent) error
}

// Service 消息派发服务
// 每条消息先走意图分类，命中则由快速通路直接应答，
// 未命中或快速通路崩溃则提交 Agent worker 并排空其事件队列
type Service struct {
	classifier   classifier
	executor     fastExecutor
	runner       agentRunner
	pool         workerPool
	bus          activityPublisher
	timeout      time.Duration
	pollInterval time.Duration
}

// NewService 创建消息派发服务
// timeout: Agent 通路的墙钟时限
func NewService(classifier classifier, executor fastExecutor, runner agentRunner, pool workerPool, bus activityPublisher, timeout time.Duration) *Service {
	return &Service{
		classifier:   classifier,
		executor:     executor,
		runner:       runner,
		pool:         pool,
		bus:          bus,
		timeout:      timeout,
		pollInterval: 200 * time.Millisecond,
	}
}

// HandleMessage 处理一条用户消息，事件按顺序回调 emit
// 恰好以一个终止事件结束，不向外抛异常
func (s *Service) HandleMessage(ctx context.Context, message string, emit func(agentcore.AgentEvent)) {
	messageID := uuid.NewString()
	klog.V(6).Infof("处理消息: id=%s, len=%d", messageID, len(message))

	if rd := s.classifier.Classify(message); rd != nil {
		if s.runFastPath(ctx, messageID, message, rd, emit) {
			return
		}
		klog.Warningf("快速通路执行崩溃，降级到 Agent 通路: id=%s, route=%s", messageID, rd.Route)
	}
	s.runAgentPath(messageID, message, emit)
}

// runFastPath 执行快速通路，返回是否成功应答
// 崩溃时返回 false，由调用方降级到 Agent 通路
func (s *Service) runFastPath(ctx context.Context, messageID, message string, rd *intent.RouteDescriptor, emit func(agentcore.AgentEvent)) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			klog.Errorf("快速通路 panic: route=%s, err=%v", rd.Route, rec)
			handled = false
		}
	}()

	klog.V(6).Infof("快速通路命中: route=%s, label=%s", rd.Route, rd.Label)
	result := s.executor.Execute(ctx, rd)

	if result.Tool != "" {
		emit(agentcore.ToolStartEvent(result.Tool, ""))
		emit(agentcore.ToolResultEvent(result.Response))
	}
	emit(agentcore.DoneEvent(result.Response))

	s.logActivity(ctx, "fast_query", message, map[string]any{
		"message_id":   messageID,
		"route":        string(rd.Route),
		"label":        rd.Label,
		"response_len": len(result.Response),
	})
	return true
}

// runAgentPath 提交 Agent worker 并排空事件队列
func (s *Service) runAgentPath(messageID, message string, emit func(agentcore.AgentEvent)) {
	queue := agentcore.NewQueue()

	// worker 使用独立 context，超时后被放弃而非强杀，靠步数上限自行终止
	err := s.pool.Submit(func() {
		s.runner.Run(context.Background(), message, queue)
	})
	if err != nil {
		klog.Errorf("提交 Agent worker 失败: %v", err)
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

	// 仅成功完成计入活动流
	if terminal.Type == agentcore.EventDone {
		s.logActivity(context.Background(), "query", message, map[string]any{
			"message_id":   messageID,
			"tools":        toolsUsed,
			"response_len": len(terminal.Output),
		})
	}
}

// logActivity 发布聊天活动事件，失败只告警不影响应答
func (s *Service) logActivity(ctx context.Context, eventType, message string, metadata map[string]any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, eventbus.ActivityEvent{
		Type:      eventbus.ActivityEventRecorded,
		Source:    "chat",
		EventType: eventType,
		Summary:   "Q: " + truncateSummary(message, summaryMaxLen),
		Metadata:  metadata,
	}); err != nil {
		klog.Warningf("聊天活动事件发布失败: %v", err)
	}
}

func truncateSummary(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
