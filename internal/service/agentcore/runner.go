package agentcore

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

const defaultMaxSteps = 8

const defaultSystemPrompt = "You are Langly, a helpful personal assistant for the family. " +
	"Use the available tools when they help answer the question. " +
	"Answer concisely in markdown."

// Runner 工具调用 Agent
// 自带步数上限，超时被派发循环放弃后也能自行终止，不会无限执行
type Runner struct {
	chatModel    model.ToolCallingChatModel
	tools        []tool.InvokableTool
	maxSteps     int
	systemPrompt string
}

func NewRunner(chatModel model.ToolCallingChatModel, tools []tool.InvokableTool, maxSteps int) *Runner {
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	return &Runner{
		chatModel:    chatModel,
		tools:        tools,
		maxSteps:     maxSteps,
		systemPrompt: defaultSystemPrompt,
	}
}

// Run 执行一次 Agent 调用，过程事件按顺序推入 sink
// 任何失败都转成终止 error 事件，不向外抛异常
func (r *Runner) Run(ctx context.Context, instruction string, sink Sink) {
	defer func() {
		if rec := recover(); rec != nil {
			klog.Errorf("Agent 执行 panic: %v", rec)
			sink.Emit(ErrorEvent(fmt.Sprintf("agent crashed: %v", rec)))
		}
	}()

	toolInfos, toolIndex, err := r.indexTools(ctx)
	if err != nil {
		sink.Emit(ErrorEvent(fmt.Sprintf("tool setup failed: %v", err)))
		return
	}

	chatModel := r.chatModel
	if len(toolInfos) > 0 {
		chatModel, err = r.chatModel.WithTools(toolInfos)
		if err != nil {
			sink.Emit(ErrorEvent(fmt.Sprintf("tool binding failed: %v", err)))
			return
		}
	}

	messages := []*schema.Message{
		schema.SystemMessage(r.systemPrompt),
		schema.UserMessage(instruction),
	}

	for step := 0; step < r.maxSteps; step++ {
		klog.V(6).Infof("Agent 执行循环: step=%d/%d", step+1, r.maxSteps)

		resp, err := chatModel.Generate(ctx, messages)
		if err != nil {
			klog.Errorf("Agent 模型调用失败: %v", err)
			sink.Emit(ErrorEvent(fmt.Sprintf("model call failed: %v", err)))
			return
		}

		// 无工具调用即为最终回答
		if len(resp.ToolCalls) == 0 {
			sink.Emit(DoneEvent(resp.Content))
			return
		}

		// 工具调用前的推理文本作为 thinking 事件透出
		if resp.Content != "" {
			sink.Emit(ThinkingEvent(resp.Content))
		}

		messages = append(messages, resp)

		for _, toolCall := range resp.ToolCalls {
			name := toolCall.Function.Name
			args := toolCall.Function.Arguments
			sink.Emit(ToolStartEvent(name, args))

			output := r.invokeTool(ctx, toolIndex, name, args)
			sink.Emit(ToolResultEvent(output))

			messages = append(messages, schema.ToolMessage(output, toolCall.ID))
		}
	}

	sink.Emit(ErrorEvent(fmt.Sprintf("exceeded maximum tool call rounds (%d)", r.maxSteps)))
}

// indexTools 收集工具信息并建立名称索引
func (r *Runner) indexTools(ctx context.Context) ([]*schema.ToolInfo, map[string]tool.InvokableTool, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	index := make(map[string]tool.InvokableTool, len(r.tools))
	for _, t := range r.tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("tool info failed: %w", err)
		}
		infos = append(infos, info)
		index[info.Name] = t
	}
	return infos, index, nil
}

// invokeTool 执行单个工具调用，失败转成文本结果回传给模型
func (r *Runner) invokeTool(ctx context.Context, index map[string]tool.InvokableTool, name, args string) string {
	t, ok := index[name]
	if !ok {
		klog.Warningf("Agent 请求了未知工具: name=%s", name)
		return fmt.Sprintf("Error: unknown tool %q", name)
	}
	output, err := t.InvokableRun(ctx, args)
	if err != nil {
		klog.Warningf("工具执行失败: name=%s, error=%v", name, err)
		return fmt.Sprintf("Error executing tool: %v", err)
	}
	return output
}
