package intent

// Route 快速路径路由标识
type Route string

const (
	RouteGreeting            Route = "greeting"
	RouteDatetime            Route = "datetime"
	RouteWeather             Route = "weather"
	RouteStocks              Route = "stocks"
	RouteWatchlist           Route = "watchlist"
	RouteTodoAdd             Route = "todo_add"
	RouteTodoList            Route = "todo_list"
	RouteNoteList            Route = "note_list"
	RouteSystem              Route = "system"
	RouteNews                Route = "news"
	RouteCalendarToday       Route = "calendar_today"
	RouteCalendarWeek        Route = "calendar_week"
	RouteCalendarFamily      Route = "calendar_family"
	RouteFinanceAccounts     Route = "finance_accounts"
	RouteFinanceTransactions Route = "finance_transactions"
	RouteFinanceBudgets      Route = "finance_budgets"
	RouteFinanceOverview     Route = "finance_overview"
)

// Params 路由参数，字段按路由选填
type Params struct {
	Location string   // weather
	Tickers  []string // stocks
	Task     string   // todo_add
	Days     int      // calendar_week
	Query    string   // news
}

// RouteDescriptor 分类结果，由分类器产生、执行器消费一次
// Label 仅用于界面展示，不参与任何分支判断
type RouteDescriptor struct {
	Route  Route
	Params Params
	Label  string
}
