package intent

import (
	"fmt"
	"strings"
)

// Classifier 快速路径意图分类器
// 纯函数式分类: 相同输入永远得到相同路由，不做任何 I/O
type Classifier struct {
	defaultLocation string
}

func NewClassifier(defaultLocation string) *Classifier {
	return &Classifier{defaultLocation: defaultLocation}
}

// Classify 对用户消息分类，返回快速路径路由，无法分类返回 nil 表示交给完整 Agent
// 规则按优先级排列，先命中先生效，后续规则不再判断
func (c *Classifier) Classify(message string) *RouteDescriptor {
	msg := strings.TrimSpace(message)

	// 复杂信号优先级最高，命中即走完整 Agent
	if complexSignals.MatchString(msg) {
		return nil
	}

	// 短问候直接应答，限制 5 个词以内防止长句误判
	if greetingPatterns.MatchString(msg) && len(strings.Fields(msg)) <= 5 {
		return &RouteDescriptor{Route: RouteGreeting, Label: "Greeting"}
	}

	if timePatterns.MatchString(msg) {
		return &RouteDescriptor{Route: RouteDatetime, Label: "Date & Time"}
	}

	if weatherPatterns.MatchString(msg) {
		location := extractLocation(msg, c.defaultLocation)
		return &RouteDescriptor{
			Route:  RouteWeather,
			Params: Params{Location: location},
			Label:  fmt.Sprintf("Weather: %s", location),
		}
	}

	// 股票: 关键词命中或出现已知代码/公司名均触发
	tickers := extractTickers(msg)
	if stockPatterns.MatchString(msg) || len(tickers) > 0 {
		if len(tickers) > 0 {
			return &RouteDescriptor{
				Route:  RouteStocks,
				Params: Params{Tickers: tickers},
				Label:  fmt.Sprintf("Stocks: %s", strings.Join(tickers, ", ")),
			}
		}
		// 泛指 "my stocks" 之类走默认自选股
		if watchlistPatterns.MatchString(msg) {
			return &RouteDescriptor{Route: RouteWatchlist, Label: "Watchlist"}
		}
	}

	if todoAddPatterns.MatchString(msg) {
		if task := extractTodoTask(msg); task != "" {
			return &RouteDescriptor{
				Route:  RouteTodoAdd,
				Params: Params{Task: task},
				Label:  fmt.Sprintf("Add todo: %s", task),
			}
		}
	}

	if todoPatterns.MatchString(msg) && !todoAddPatterns.MatchString(msg) {
		return &RouteDescriptor{Route: RouteTodoList, Label: "Todos"}
	}

	if notesPatterns.MatchString(msg) {
		return &RouteDescriptor{Route: RouteNoteList, Label: "Notes"}
	}

	if systemPatterns.MatchString(msg) {
		return &RouteDescriptor{Route: RouteSystem, Label: "System Info"}
	}

	if newsPatterns.MatchString(msg) {
		return &RouteDescriptor{
			Route:  RouteNews,
			Params: Params{Query: msg},
			Label:  "News",
		}
	}

	// 日历: 排除新建日程类消息，按时间提示细分子路由
	if calendarPatterns.MatchString(msg) && !calendarAddPatterns.MatchString(msg) {
		switch {
		case calendarFamilyRe.MatchString(msg):
			return &RouteDescriptor{Route: RouteCalendarFamily, Label: "Calendar: Family"}
		case calendarDaysRe.MatchString(msg), calendarWeekRe.MatchString(msg):
			days := extractCalendarDays(msg)
			return &RouteDescriptor{
				Route:  RouteCalendarWeek,
				Params: Params{Days: days},
				Label:  fmt.Sprintf("Calendar: Next %d days", days),
			}
		case calendarTodayRe.MatchString(msg):
			return &RouteDescriptor{Route: RouteCalendarToday, Label: "Calendar: Today"}
		default:
			return &RouteDescriptor{Route: RouteCalendarToday, Label: "Calendar: Today"}
		}
	}

	if financePatterns.MatchString(msg) {
		switch {
		case financeBudgetsRe.MatchString(msg):
			return &RouteDescriptor{Route: RouteFinanceBudgets, Label: "Finance: Budgets"}
		case financeTxRe.MatchString(msg):
			return &RouteDescriptor{Route: RouteFinanceTransactions, Label: "Finance: Transactions"}
		case financeOverviewRe.MatchString(msg):
			return &RouteDescriptor{Route: RouteFinanceOverview, Label: "Finance: Overview"}
		default:
			return &RouteDescriptor{Route: RouteFinanceAccounts, Label: "Finance: Accounts"}
		}
	}

	return nil
}
