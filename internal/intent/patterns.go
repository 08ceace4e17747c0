package intent

import "regexp"

var (
	greetingPatterns = regexp.MustCompile(`(?i)^(hey|hi|hello|howdy|yo|sup|what'?s up|good (morning|afternoon|evening)|greetings)\b`)

	weatherPatterns = regexp.MustCompile(`(?i)\b(weather|temperature|temp|forecast|rain|snow|sunny|cloudy|humid|wind)\b`)

	stockPatterns = regexp.MustCompile(`(?i)\b(stock|stocks|price|ticker|market|share|shares|portfolio|watchlist)\b`)

	// 显式股票代码，1-5 个大写字母
	tickerRe = regexp.MustCompile(`\b([A-Z]{1,5})\b`)

	watchlistPatterns = regexp.MustCompile(`(?i)\b(my stocks|my portfolio|watchlist)\b`)

	todoPatterns = regexp.MustCompile(`(?i)\b(todos?|to-?dos?|tasks?|todo list|task list)\b`)

	// 双向匹配: "add X to my todos" 或 "todos: add X"
	todoAddPatterns = regexp.MustCompile(`(?i)\b(add|create|new|make)\b.+\b(todos?|to-?dos?|tasks?)\b|\b(todos?|to-?dos?|tasks?)\b.+\b(add|create)\b`)

	notesPatterns = regexp.MustCompile(`(?i)\b(notes?|notebook)\b`)

	timePatterns = regexp.MustCompile(`(?i)\b(what time|current time|date and time|what date|today'?s date|what day)\b`)

	systemPatterns = regexp.MustCompile(`(?i)\b(system (status|info|stats)|cpu|memory|disk|uptime)\b`)

	newsPatterns = regexp.MustCompile(`(?i)\b(news|headlines?|digest|briefing|what'?s happening)\b`)

	calendarPatterns    = regexp.MustCompile(`(?i)\b(calendar|schedule|agenda|events?|appointments?)\b`)
	calendarAddPatterns = regexp.MustCompile(`(?i)\b(add|schedule|book|create)\b.+\b(events?|appointments?)\b`)
	calendarTodayRe     = regexp.MustCompile(`(?i)\btoday\b`)
	calendarWeekRe      = regexp.MustCompile(`(?i)\b(this week|next week|upcoming)\b`)
	calendarDaysRe      = regexp.MustCompile(`(?i)\bnext\s+(\d+)\s+days?\b`)
	calendarFamilyRe    = regexp.MustCompile(`(?i)\b(family members?|who'?s in)\b`)

	financePatterns   = regexp.MustCompile(`(?i)\b(net worth|balance|accounts?|budgets?|spending|cashflow|cash flow|recurring|transactions?|purchases?)\b`)
	financeBudgetsRe  = regexp.MustCompile(`(?i)\b(budgets?|spending)\b`)
	financeTxRe       = regexp.MustCompile(`(?i)\b(transactions?|purchases?)\b`)
	financeOverviewRe = regexp.MustCompile(`(?i)\b(cashflow|cash flow|income|savings)\b`)

	// 命中复杂信号的消息始终交给完整 Agent 处理
	complexSignals = regexp.MustCompile(`(?i)\b(compare|analyze|explain|why|how does|write|create a|generate|summarize|translate|search the web|look up|find me|research|calculate|convert|send email|and also|and then|after that|help me)\b`)
)

// knownTickers 自然语言中识别的已知股票代码
var knownTickers = map[string]bool{
	"AAPL": true, "TSLA": true, "GOOGL": true, "GOOG": true, "MSFT": true,
	"AMZN": true, "META": true, "NVDA": true, "AMD": true, "NFLX": true,
	"SNOW": true, "PLTR": true, "SPY": true, "QQQ": true, "DIS": true,
	"BABA": true, "INTC": true, "UBER": true, "LYFT": true, "SQ": true,
	"SHOP": true, "PYPL": true, "COIN": true, "ROKU": true, "SNAP": true,
	"PINS": true, "TWLO": true, "CRM": true, "ORCL": true, "IBM": true,
	"BA": true, "JPM": true, "GS": true, "V": true, "MA": true,
	"WMT": true, "TGT": true,
}

// tickerNameEntry 公司名到代码的映射条目，固定顺序保证分类结果可复现
type tickerNameEntry struct {
	name   string
	ticker string
}

var tickerNameMap = []tickerNameEntry{
	{"apple", "AAPL"}, {"tesla", "TSLA"}, {"google", "GOOGL"}, {"alphabet", "GOOGL"},
	{"microsoft", "MSFT"}, {"amazon", "AMZN"}, {"meta", "META"}, {"facebook", "META"},
	{"nvidia", "NVDA"}, {"amd", "AMD"}, {"netflix", "NFLX"}, {"snowflake", "SNOW"},
	{"palantir", "PLTR"}, {"disney", "DIS"}, {"uber", "UBER"}, {"spotify", "SPOT"},
	{"shopify", "SHOP"}, {"paypal", "PYPL"}, {"coinbase", "COIN"}, {"intel", "INTC"},
	{"salesforce", "CRM"}, {"oracle", "ORCL"}, {"ibm", "IBM"}, {"boeing", "BA"},
	{"walmart", "WMT"}, {"target", "TGT"}, {"visa", "V"}, {"mastercard", "MA"},
}
