package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/model"
	"github.com/langly/backend/internal/repository"
)

type activityPublisher interface {
	Publish(ctx context.Context, event eventbus.ActivityEvent) error
}

// AddTodoTool 待办新增工具
// 每次调用恰好写入一条记录并发布一条活动事件
type AddTodoTool struct {
	repo repository.TodoRepository
	bus  activityPublisher
}

// NewAddTodoTool 创建待办新增工具
func NewAddTodoTool(repo repository.TodoRepository, bus activityPublisher) *AddTodoTool {
	return &AddTodoTool{repo: repo, bus: bus}
}

// Info 返回工具信息
func (t *AddTodoTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "add_todo",
		Desc: "Add a new item to the todo list",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"task": {
				Type:     schema.String,
				Desc:     "Task description",
				Required: true,
			},
		}),
	}, nil
}

// InvokableRun 新增待办并发布活动事件
func (t *AddTodoTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	var args struct {
		Task string `json:"task"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		klog.Errorf("[AddTodoTool] 参数解析失败: %v", err)
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	args.Task = strings.TrimSpace(args.Task)
	if args.Task == "" {
		return "", fmt.Errorf("task is required")
	}

	todo := &model.Todo{Task: args.Task}
	if err := t.repo.Create(todo); err != nil {
		klog.Errorf("[AddTodoTool] 创建待办失败: %v", err)
		return "", err
	}

	if t.bus != nil {
		if err := t.bus.Publish(ctx, eventbus.ActivityEvent{
			Type:      eventbus.ActivityEventRecorded,
			Source:    "todos",
			EventType: "created",
			Summary:   fmt.Sprintf("Added todo: %s", args.Task),
			Metadata:  map[string]any{"todo_id": todo.ID},
		}); err != nil {
			klog.Warningf("[AddTodoTool] 活动事件发布失败: %v", err)
		}
	}

	result, _ := json.Marshal(map[string]any{"id": todo.ID, "task": todo.Task, "done": todo.Done})
	return string(result), nil
}

// ListTodosTool 待办列表工具
type ListTodosTool struct {
	repo repository.TodoRepository
}

// NewListTodosTool 创建待办列表工具
func NewListTodosTool(repo repository.TodoRepository) *ListTodosTool {
	return &ListTodosTool{repo: repo}
}

// Info 返回工具信息
func (t *ListTodosTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        "list_todos",
		Desc:        "List all todo items with their completion status",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

// InvokableRun 返回全部待办的 JSON 列表
func (t *ListTodosTool) InvokableRun(ctx context.Context, arguments string, opts ...tool.Option) (string, error) {
	todos, err := t.repo.List()
	if err != nil {
		klog.Errorf("[ListTodosTool] 查询待办失败: %v", err)
		return "", err
	}

	items := make([]map[string]any, 0, len(todos))
	for _, todo := range todos {
		items = append(items, map[string]any{"id": todo.ID, "task": todo.Task, "done": todo.Done})
	}
	result, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
