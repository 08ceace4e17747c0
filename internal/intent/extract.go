package intent

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	locationInForRe = regexp.MustCompile(`(?i)(?:weather|temperature|forecast)\s+(?:in|for|at)\s+(.+?)(?:\?|$|\.)`)
	locationLikeRe  = regexp.MustCompile(`(?i)(?:like|conditions?)\s+in\s+(.+?)(?:\?|$|\.)`)
)

// extractLocation 从消息中提取地点，提取不到返回默认地点
func extractLocation(message, defaultLocation string) string {
	if m := locationInForRe.FindStringSubmatch(message); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), "?. ")
	}
	if m := locationLikeRe.FindStringSubmatch(message); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), "?. ")
	}
	return defaultLocation
}

// extractTickers 从消息中提取股票代码
// 先按公司名匹配，再按显式大写代码匹配，顺序固定
func extractTickers(message string) []string {
	var tickers []string
	seen := make(map[string]bool)

	lower := strings.ToLower(message)
	for _, entry := range tickerNameMap {
		if strings.Contains(lower, entry.name) && !seen[entry.ticker] {
			tickers = append(tickers, entry.ticker)
			seen[entry.ticker] = true
		}
	}

	for _, m := range tickerRe.FindAllStringSubmatch(message, -1) {
		candidate := m[1]
		if knownTickers[candidate] && !seen[candidate] {
			tickers = append(tickers, candidate)
			seen[candidate] = true
		}
	}

	return tickers
}

// todoTaskPatterns 按优先级排列: 引号内文本 > "add X to my todos" > "add todo: X"
var todoTaskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add\s+"([^"]+)"`),
	regexp.MustCompile(`(?i)add\s+'([^']+)'`),
	regexp.MustCompile(`(?i)add\s+(.+?)\s+to\s+(?:my\s+)?(?:todo|task)`),
	regexp.MustCompile(`(?i)(?:add|create)\s+(?:a\s+)?(?:todo|task)\s*:?\s*(.+?)(?:\.|$)`),
}

// extractTodoTask 从添加待办的消息中提取任务文本，提取失败返回空串
func extractTodoTask(message string) string {
	for _, pattern := range todoTaskPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil {
			return strings.Trim(strings.TrimSpace(m[1]), "?. ")
		}
	}
	return ""
}

// extractCalendarDays 提取 "next N days" 的天数，默认 7 天
func extractCalendarDays(message string) int {
	if m := calendarDaysRe.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 7
}
