package fastpath

import (
	"context"
	"fmt"
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
	"k8s.io/klog/v2"
)

// Result 快速路径执行结果
// Response 永远非空，底层失败也转成面向用户的文本，绝不向上抛异常
type Result struct {
	Response string `json:"response"`
	Tool     string `json:"tool,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// 协作方接口，按消费方定义便于测试替换
type weatherClient interface {
	Lookup(ctx context.Context, location string) (*weather.Report, error)
}

type stockClient interface {
	Lookup(ctx context.Context, ticker string) (*stocks.Quote, error)
}

type newsClient interface {
	Search(ctx context.Context, sections []news.Section) ([]news.Headline, error)
}

type calendarClient interface {
	GetToday(ctx context.Context) ([]kindora.Event, error)
	GetUpcoming(ctx context.Context, days int) ([]kindora.Event, error)
	GetFamilyMembers(ctx context.Context) ([]kindora.Member, error)
}

type financeClient interface {
	GetAccounts(ctx context.Context) ([]monarch.Account, error)
	GetTransactions(ctx context.Context, limit int) ([]monarch.Transaction, error)
	GetBudgets(ctx context.Context) ([]monarch.Budget, error)
	GetCashflow(ctx context.Context) (*monarch.Cashflow, error)
}

type todoStore interface {
	Create(todo *model.Todo) error
	List() ([]model.Todo, error)
}

type noteStore interface {
	List() ([]model.Note, error)
}

type activityPublisher interface {
	Publish(ctx context.Context, event eventbus.ActivityEvent) error
}

type systemReader func(ctx context.Context) (*sysinfo.Stats, error)

// Executor 快速路径执行器
// 每个路由只做一次有界的协作方调用并格式化为用户可读文本
type Executor struct {
	weather   weatherClient
	stocks    stockClient
	news      newsClient
	calendar  calendarClient
	finance   financeClient
	todos     todoStore
	notes     noteStore
	bus       activityPublisher
	sysRead   systemReader
	ownerName string
	watchlist []string
	now       func() time.Time
}

type Options struct {
	Weather   weatherClient
	Stocks    stockClient
	News      newsClient
	Calendar  calendarClient
	Finance   financeClient
	Todos     todoStore
	Notes     noteStore
	Bus       activityPublisher
	SysRead   systemReader
	OwnerName string
	Watchlist []string
}

func NewExecutor(opts Options) *Executor {
	sysRead := opts.SysRead
	if sysRead == nil {
		sysRead = sysinfo.Read
	}
	return &Executor{
		weather:   opts.Weather,
		stocks:    opts.Stocks,
		news:      opts.News,
		calendar:  opts.Calendar,
		finance:   opts.Finance,
		todos:     opts.Todos,
		notes:     opts.Notes,
		bus:       opts.Bus,
		sysRead:   sysRead,
		ownerName: opts.OwnerName,
		watchlist: opts.Watchlist,
		now:       time.Now,
	}
}

// Execute 执行一个快速路径路由
// 不返回 error: 任何失败都转成 Result.Response 里的一句话说明
func (e *Executor) Execute(ctx context.Context, rd *intent.RouteDescriptor) *Result {
	klog.V(6).Infof("执行快速路径: route=%s, label=%s", rd.Route, rd.Label)

	switch rd.Route {
	case intent.RouteGreeting:
		return e.handleGreeting()
	case intent.RouteDatetime:
		return e.handleDatetime()
	case intent.RouteWeather:
		return e.handleWeather(ctx, rd.Params.Location)
	case intent.RouteStocks:
		return e.handleStocks(ctx, rd.Params.Tickers)
	case intent.RouteWatchlist:
		return e.handleStocks(ctx, e.watchlist)
	case intent.RouteTodoList:
		return e.handleTodoList()
	case intent.RouteTodoAdd:
		return e.handleTodoAdd(ctx, rd.Params.Task)
	case intent.RouteNoteList:
		return e.handleNoteList()
	case intent.RouteSystem:
		return e.handleSystem(ctx)
	case intent.RouteNews:
		return e.handleNews(ctx, rd.Params.Query)
	case intent.RouteCalendarToday:
		return e.handleCalendarToday(ctx)
	case intent.RouteCalendarWeek:
		return e.handleCalendarWeek(ctx, rd.Params.Days)
	case intent.RouteCalendarFamily:
		return e.handleCalendarFamily(ctx)
	case intent.RouteFinanceAccounts:
		return e.handleFinanceAccounts(ctx)
	case intent.RouteFinanceTransactions:
		return e.handleFinanceTransactions(ctx)
	case intent.RouteFinanceBudgets:
		return e.handleFinanceBudgets(ctx)
	case intent.RouteFinanceOverview:
		return e.handleFinanceOverview(ctx)
	default:
		return &Result{Response: "I'm not sure how to handle that."}
	}
}

func (e *Executor) handleGreeting() *Result {
	hour := e.now().Hour()
	var greeting string
	switch {
	case hour < 12:
		greeting = fmt.Sprintf("Good morning, %s!", e.ownerName)
	case hour < 17:
		greeting = fmt.Sprintf("Good afternoon, %s!", e.ownerName)
	default:
		greeting = fmt.Sprintf("Good evening, %s!", e.ownerName)
	}
	return &Result{
		Response: fmt.Sprintf("%s How can I help you and the family today?", greeting),
	}
}

func (e *Executor) handleDatetime() *Result {
	now := e.now()
	formatted := now.Format("Monday, January 02, 2006 at 03:04 PM")
	return &Result{
		Response: fmt.Sprintf("It's **%s**.", formatted),
		Tool:     "DateTime",
		Data:     map[string]string{"datetime": now.Format(time.RFC3339)},
	}
}
