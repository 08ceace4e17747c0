package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langly/backend/internal/collab/stocks"
	"github.com/langly/backend/internal/collab/weather"
	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/model"
)

// fakeTodoRepo 内存待办仓库，记录创建次数
type fakeTodoRepo struct {
	todos  []model.Todo
	nextID uint
}

func (r *fakeTodoRepo) Create(todo *model.Todo) error {
	r.nextID++
	todo.ID = r.nextID
	r.todos = append(r.todos, *todo)
	return nil
}

func (r *fakeTodoRepo) List() ([]model.Todo, error)      { return r.todos, nil }
func (r *fakeTodoRepo) Get(id uint) (*model.Todo, error) { return nil, nil }
func (r *fakeTodoRepo) Save(todo *model.Todo) error      { return nil }
func (r *fakeTodoRepo) Delete(id uint) error             { return nil }

// fakeBus 记录发布事件的事件总线
type fakeBus struct {
	events []eventbus.ActivityEvent
}

func (b *fakeBus) Publish(ctx context.Context, event eventbus.ActivityEvent) error {
	b.events = append(b.events, event)
	return nil
}

// fakeWeather 固定返回报告的天气客户端
type fakeWeather struct {
	report  *weather.Report
	err     error
	lastLoc string
}

func (f *fakeWeather) Lookup(ctx context.Context, location string) (*weather.Report, error) {
	f.lastLoc = location
	return f.report, f.err
}

type fakeStocks struct {
	quote *stocks.Quote
	err   error
}

func (f *fakeStocks) Lookup(ctx context.Context, ticker string) (*stocks.Quote, error) {
	return f.quote, f.err
}

func TestAddTodoToolCreatesOnceAndPublishes(t *testing.T) {
	repo := &fakeTodoRepo{}
	bus := &fakeBus{}
	tool := NewAddTodoTool(repo, bus)

	out, err := tool.InvokableRun(context.Background(), `{"task":"buy milk"}`)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "buy milk", result["task"])

	require.Len(t, repo.todos, 1)
	assert.Equal(t, "buy milk", repo.todos[0].Task)

	require.Len(t, bus.events, 1)
	assert.Equal(t, "todos", bus.events[0].Source)
	assert.Equal(t, "created", bus.events[0].EventType)
}

func TestAddTodoToolRejectsEmptyTask(t *testing.T) {
	tool := NewAddTodoTool(&fakeTodoRepo{}, &fakeBus{})
	_, err := tool.InvokableRun(context.Background(), `{"task":"  "}`)
	require.Error(t, err)
}

func TestListTodosTool(t *testing.T) {
	repo := &fakeTodoRepo{}
	require.NoError(t, repo.Create(&model.Todo{Task: "walk Jax"}))
	tool := NewListTodosTool(repo)

	out, err := tool.InvokableRun(context.Background(), `{}`)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "walk Jax", items[0]["task"])
}

func TestWeatherToolDefaultLocation(t *testing.T) {
	client := &fakeWeather{report: &weather.Report{Location: "Morristown, New Jersey", TempF: 72}}
	tool := NewWeatherTool(client, "Morristown, NJ")

	out, err := tool.InvokableRun(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Equal(t, "Morristown, NJ", client.lastLoc)
	assert.Contains(t, out, "Morristown, New Jersey")
}

func TestWeatherToolPropagatesError(t *testing.T) {
	client := &fakeWeather{err: errors.New("geocoding failed")}
	tool := NewWeatherTool(client, "Morristown, NJ")

	_, err := tool.InvokableRun(context.Background(), `{"location":"Nowhereville"}`)
	require.Error(t, err)
}

func TestStockToolNormalizesTicker(t *testing.T) {
	tool := NewStockTool(&fakeStocks{quote: &stocks.Quote{Ticker: "AAPL", Price: 230.12}})

	out, err := tool.InvokableRun(context.Background(), `{"ticker":" aapl "}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"AAPL"`)

	_, err = tool.InvokableRun(context.Background(), `{"ticker":""}`)
	require.Error(t, err)
}

func TestToolInfosHaveUniqueNames(t *testing.T) {
	ctx := context.Background()
	tools := []interface {
		Info(ctx context.Context) (*schema.ToolInfo, error)
	}{
		NewWeatherTool(&fakeWeather{}, "Morristown, NJ"),
		NewStockTool(&fakeStocks{}),
		NewAddTodoTool(&fakeTodoRepo{}, &fakeBus{}),
		NewListTodosTool(&fakeTodoRepo{}),
	}

	seen := map[string]bool{}
	for _, tl := range tools {
		info, err := tl.Info(ctx)
		require.NoError(t, err)
		assert.False(t, seen[info.Name], "工具名重复: %s", info.Name)
		seen[info.Name] = true
	}
}
