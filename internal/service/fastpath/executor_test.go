package fastpath

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/langly/backend/internal/collab/kindora"
	"github.com/langly/backend/internal/collab/monarch"
	"github.com/langly/backend/internal/collab/news"
	"github.com/langly/backend/internal/collab/stocks"
	"github.com/langly/backend/internal/collab/sysinfo"
	"github.com/langly/backend/internal/collab/weather"
	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/intent"
	"github.com/langly/backend/internal/model"
)

// mockWeatherClient 天气客户端 Mock
type mockWeatherClient struct {
	report *weather.Report
	err    error
}

func (m *mockWeatherClient) Lookup(ctx context.Context, location string) (*weather.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockStockClient 行情客户端 Mock，按代码返回预置行情
type mockStockClient struct {
	quotes map[string]*stocks.Quote
}

func (m *mockStockClient) Lookup(ctx context.Context, ticker string) (*stocks.Quote, error) {
	if q, ok := m.quotes[ticker]; ok {
		return q, nil
	}
	return nil, errors.New("quote unavailable")
}

// mockTodoStore 待办存储 Mock，记录创建次数
type mockTodoStore struct {
	todos       []model.Todo
	createCalls int
	createErr   error
}

func (m *mockTodoStore) Create(todo *model.Todo) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	todo.ID = uint(m.createCalls)
	m.todos = append(m.todos, *todo)
	return nil
}

func (m *mockTodoStore) List() ([]model.Todo, error) {
	return m.todos, nil
}

// mockNoteStore 笔记存储 Mock
type mockNoteStore struct {
	notes []model.Note
}

func (m *mockNoteStore) List() ([]model.Note, error) {
	return m.notes, nil
}

// mockPublisher 活动事件 Mock，记录发布的事件
type mockPublisher struct {
	events []eventbus.ActivityEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event eventbus.ActivityEvent) error {
	m.events = append(m.events, event)
	return nil
}

// mockCalendarClient 日历客户端 Mock
type mockCalendarClient struct {
	today    []kindora.Event
	upcoming []kindora.Event
	members  []kindora.Member
	err      error
}

func (m *mockCalendarClient) GetToday(ctx context.Context) ([]kindora.Event, error) {
	return m.today, m.err
}

func (m *mockCalendarClient) GetUpcoming(ctx context.Context, days int) ([]kindora.Event, error) {
	return m.upcoming, m.err
}

func (m *mockCalendarClient) GetFamilyMembers(ctx context.Context) ([]kindora.Member, error) {
	return m.members, m.err
}

// mockFinanceClient 财务客户端 Mock
type mockFinanceClient struct {
	accounts     []monarch.Account
	transactions []monarch.Transaction
	budgets      []monarch.Budget
	cashflow     *monarch.Cashflow
	err          error
}

func (m *mockFinanceClient) GetAccounts(ctx context.Context) ([]monarch.Account, error) {
	return m.accounts, m.err
}

func (m *mockFinanceClient) GetTransactions(ctx context.Context, limit int) ([]monarch.Transaction, error) {
	return m.transactions, m.err
}

func (m *mockFinanceClient) GetBudgets(ctx context.Context) ([]monarch.Budget, error) {
	return m.budgets, m.err
}

func (m *mockFinanceClient) GetCashflow(ctx context.Context) (*monarch.Cashflow, error) {
	return m.cashflow, m.err
}

// mockNewsClient 新闻客户端 Mock
type mockNewsClient struct {
	headlines []news.Headline
	err       error
}

func (m *mockNewsClient) Search(ctx context.Context, sections []news.Section) ([]news.Headline, error) {
	return m.headlines, m.err
}

func newTestExecutor(opts Options) *Executor {
	if opts.OwnerName == "" {
		opts.OwnerName = "Michael"
	}
	if opts.Watchlist == nil {
		opts.Watchlist = []string{"AAPL", "TSLA"}
	}
	if opts.SysRead == nil {
		opts.SysRead = func(ctx context.Context) (*sysinfo.Stats, error) {
			return &sysinfo.Stats{Hostname: "testhost", CPUPercent: 12.5, CPUCount: 8,
				MemPercent: 40.0, MemUsedGB: 6.4, MemTotalGB: 16.0,
				DiskPercent: 55.0, DiskUsedGB: 250, DiskTotalGB: 500,
				OS: "linux", Release: "6.1"}, nil
		}
	}
	return NewExecutor(opts)
}

func TestHandleGreetingByHour(t *testing.T) {
	e := newTestExecutor(Options{})

	cases := []struct {
		hour     int
		contains string
	}{
		{9, "Good morning, Michael!"},
		{14, "Good afternoon, Michael!"},
		{20, "Good evening, Michael!"},
	}
	for _, tc := range cases {
		e.now = func() time.Time {
			return time.Date(2026, 8, 28, tc.hour, 0, 0, 0, time.UTC)
		}
		result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteGreeting})
		if !strings.Contains(result.Response, tc.contains) {
			t.Errorf("hour %d: expected %q in %q", tc.hour, tc.contains, result.Response)
		}
		if result.Tool != "" {
			t.Errorf("greeting should not report a tool, got %q", result.Tool)
		}
	}
}

func TestHandleDatetimeFormat(t *testing.T) {
	e := newTestExecutor(Options{})
	e.now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 4, 0, 0, time.UTC)
	}

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteDatetime})
	if !strings.Contains(result.Response, "**Friday, August 28, 2026 at 03:04 PM**") {
		t.Errorf("unexpected datetime format: %q", result.Response)
	}
	if result.Tool != "DateTime" {
		t.Errorf("expected DateTime tool, got %q", result.Tool)
	}
}

func TestHandleWeatherSuccess(t *testing.T) {
	e := newTestExecutor(Options{
		Weather: &mockWeatherClient{report: &weather.Report{
			Location: "Boston, Massachusetts", TempF: 72.4, FeelsLikeF: 74.6,
			Humidity: 55, Description: "Partly cloudy", WindSpeedMph: 8.3,
			Forecast: []weather.ForecastDay{{Date: "2026-08-28", MaxTempF: 81, MinTempF: 63, Description: "Mainly clear"}},
		}},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteWeather,
		Params: intent.Params{Location: "Boston"},
	})

	if !strings.Contains(result.Response, "Boston") {
		t.Errorf("response should contain location, got %q", result.Response)
	}
	// 温度取整展示
	if !strings.Contains(result.Response, "72°F") {
		t.Errorf("temperature should round to whole degrees, got %q", result.Response)
	}
	if result.Tool != "Weather" {
		t.Errorf("expected Weather tool, got %q", result.Tool)
	}
}

func TestHandleWeatherFailureNeverThrows(t *testing.T) {
	e := newTestExecutor(Options{
		Weather: &mockWeatherClient{err: errors.New("connection refused")},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteWeather,
		Params: intent.Params{Location: "Boston"},
	})

	if result.Response == "" {
		t.Fatalf("failure response must be non-empty")
	}
	if !strings.Contains(result.Response, "Boston") {
		t.Errorf("failure response should name the location, got %q", result.Response)
	}
}

func TestHandleStocksFormatting(t *testing.T) {
	e := newTestExecutor(Options{
		Stocks: &mockStockClient{quotes: map[string]*stocks.Quote{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Price: 1234.5, Change: 2.345, ChangePercent: 1.23},
			"TSLA": {Ticker: "TSLA", Name: "Tesla, Inc.", Price: 250.1, Change: -3.21, ChangePercent: -1.27},
		}},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteStocks,
		Params: intent.Params{Tickers: []string{"AAPL", "TSLA"}},
	})

	// 上涨带正号、两位小数，百分比一位小数，价格带千位分隔
	if !strings.Contains(result.Response, "**$1,234.50** (+2.35, +1.2%)") {
		t.Errorf("unexpected gain formatting: %q", result.Response)
	}
	if !strings.Contains(result.Response, "(-3.21, -1.3%)") {
		t.Errorf("unexpected loss formatting: %q", result.Response)
	}
}

func TestHandleStocksPerTickerFailureIsolation(t *testing.T) {
	e := newTestExecutor(Options{
		Stocks: &mockStockClient{quotes: map[string]*stocks.Quote{
			"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Price: 180, Change: 1, ChangePercent: 0.5},
		}},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteStocks,
		Params: intent.Params{Tickers: []string{"AAPL", "ZZZZ"}},
	})

	if !strings.Contains(result.Response, "Apple Inc.") {
		t.Errorf("successful ticker should render, got %q", result.Response)
	}
	if !strings.Contains(result.Response, "**ZZZZ**: Unable to fetch data") {
		t.Errorf("failed ticker should degrade in place, got %q", result.Response)
	}
}

func TestHandleTodoAddMutatesOnceAndLogsActivity(t *testing.T) {
	store := &mockTodoStore{}
	bus := &mockPublisher{}
	e := newTestExecutor(Options{Todos: store, Bus: bus})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteTodoAdd,
		Params: intent.Params{Task: "buy diapers"},
	})

	if store.createCalls != 1 {
		t.Errorf("add_todo should be called exactly once, got %d", store.createCalls)
	}
	if !strings.Contains(result.Response, "buy diapers") {
		t.Errorf("confirmation should contain the task, got %q", result.Response)
	}
	if len(bus.events) != 1 || bus.events[0].Source != "todos" || bus.events[0].EventType != "created" {
		t.Errorf("expected one todos/created activity event, got %+v", bus.events)
	}
}

func TestHandleTodoList(t *testing.T) {
	store := &mockTodoStore{todos: []model.Todo{
		{Task: "call dentist", Done: false},
		{Task: "buy milk", Done: true},
	}}
	e := newTestExecutor(Options{Todos: store})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteTodoList})
	if !strings.Contains(result.Response, "**Todos** (1/2 complete)") {
		t.Errorf("unexpected header: %q", result.Response)
	}
	if !strings.Contains(result.Response, "- [ ] call dentist") || !strings.Contains(result.Response, "- [x] buy milk") {
		t.Errorf("unexpected checklist: %q", result.Response)
	}
}

func TestHandleTodoListEmpty(t *testing.T) {
	e := newTestExecutor(Options{Todos: &mockTodoStore{}})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteTodoList})
	if !strings.Contains(result.Response, "Your todo list is empty") {
		t.Errorf("unexpected empty response: %q", result.Response)
	}
}

func TestHandleWatchlistUsesDefaultBasket(t *testing.T) {
	client := &mockStockClient{quotes: map[string]*stocks.Quote{
		"AAPL": {Ticker: "AAPL", Name: "Apple Inc.", Price: 180, Change: 1, ChangePercent: 0.5},
		"TSLA": {Ticker: "TSLA", Name: "Tesla, Inc.", Price: 250, Change: -1, ChangePercent: -0.4},
	}}
	e := newTestExecutor(Options{Stocks: client, Watchlist: []string{"AAPL", "TSLA"}})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteWatchlist})
	if !strings.Contains(result.Response, "Apple Inc.") || !strings.Contains(result.Response, "Tesla, Inc.") {
		t.Errorf("watchlist should render all basket tickers, got %q", result.Response)
	}
}

func TestHandleCalendarAndFinance(t *testing.T) {
	e := newTestExecutor(Options{
		Calendar: &mockCalendarClient{
			today:   []kindora.Event{{Title: "Soccer practice", StartTime: "2026-08-28T16:00:00"}},
			members: []kindora.Member{{Name: "Carolyn"}, {Name: "Sebby"}},
		},
		Finance: &mockFinanceClient{
			accounts: []monarch.Account{{Name: "Checking", Type: "depository", Balance: 5250.75}},
			cashflow: &monarch.Cashflow{Income: 12000, Expenses: 8500, Savings: 3500, SavingsRate: 29.2},
		},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteCalendarToday})
	if !strings.Contains(result.Response, "Soccer practice") || !strings.Contains(result.Response, "4:00 PM") {
		t.Errorf("unexpected calendar response: %q", result.Response)
	}

	result = e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteCalendarFamily})
	if !strings.Contains(result.Response, "Carolyn") || !strings.Contains(result.Response, "Sebby") {
		t.Errorf("unexpected family response: %q", result.Response)
	}

	result = e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteFinanceAccounts})
	if !strings.Contains(result.Response, "$5,250.75") {
		t.Errorf("currency should use thousands separators, got %q", result.Response)
	}

	result = e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteFinanceOverview})
	if !strings.Contains(result.Response, "(29.2%)") {
		t.Errorf("savings rate should show one decimal, got %q", result.Response)
	}
}

func TestHandleFinanceFailureNeverThrows(t *testing.T) {
	e := newTestExecutor(Options{
		Finance: &mockFinanceClient{err: errors.New("auth expired")},
	})

	for _, route := range []intent.Route{
		intent.RouteFinanceAccounts, intent.RouteFinanceTransactions,
		intent.RouteFinanceBudgets, intent.RouteFinanceOverview,
	} {
		result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: route})
		if result.Response == "" {
			t.Errorf("route %s: failure response must be non-empty", route)
		}
	}
}

func TestHandleNews(t *testing.T) {
	e := newTestExecutor(Options{
		News: &mockNewsClient{headlines: []news.Headline{
			{Title: "Local headline", Link: "https://example.com/a", Source: "Example", Section: "Top Stories"},
		}},
	})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{
		Route:  intent.RouteNews,
		Params: intent.Params{Query: "morning news"},
	})
	if !strings.Contains(result.Response, "Local headline") {
		t.Errorf("unexpected news response: %q", result.Response)
	}
}

func TestHandleSystem(t *testing.T) {
	e := newTestExecutor(Options{})

	result := e.Execute(context.Background(), &intent.RouteDescriptor{Route: intent.RouteSystem})
	if !strings.Contains(result.Response, "**System Status** — testhost") {
		t.Errorf("unexpected system response: %q", result.Response)
	}
	if !strings.Contains(result.Response, "- **CPU:** 12.5% (8 cores)") {
		t.Errorf("unexpected cpu line: %q", result.Response)
	}
}
