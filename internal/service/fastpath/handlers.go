package fastpath

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/langly/backend/internal/collab/news"
	"github.com/langly/backend/internal/eventbus"
	"github.com/langly/backend/internal/model"
	"k8s.io/klog/v2"
)

func (e *Executor) handleWeather(ctx context.Context, location string) *Result {
	report, err := e.weather.Lookup(ctx, location)
	if err != nil {
		klog.Warningf("天气快速路径失败: location=%s, error=%v", location, err)
		return &Result{
			Response: fmt.Sprintf("Couldn't fetch weather for %s: %v", location, err),
			Tool:     "Weather",
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** — %s\n\n", report.Location, report.Description)
	fmt.Fprintf(&b, "- **Temperature:** %.0f°F (feels like %.0f°F)\n", report.TempF, report.FeelsLikeF)
	fmt.Fprintf(&b, "- **Humidity:** %.0f%%\n", report.Humidity)
	fmt.Fprintf(&b, "- **Wind:** %.0f mph", report.WindSpeedMph)

	if len(report.Forecast) > 0 {
		b.WriteString("\n\n**Forecast:**\n")
		for _, day := range report.Forecast {
			fmt.Fprintf(&b, "- %s: %.0f°F – %.0f°F %s\n", day.Date, day.MinTempF, day.MaxTempF, day.Description)
		}
	}

	return &Result{Response: b.String(), Tool: "Weather", Data: report}
}

func (e *Executor) handleStocks(ctx context.Context, tickers []string) *Result {
	var lines []string
	var raw []any

	// 单只失败互不影响
	for _, ticker := range tickers {
		quote, err := e.stocks.Lookup(ctx, ticker)
		if err != nil {
			klog.Warningf("行情快速路径失败: ticker=%s, error=%v", ticker, err)
			lines = append(lines, fmt.Sprintf("**%s**: Unable to fetch data", ticker))
			raw = append(raw, map[string]any{"ticker": ticker, "error": true})
			continue
		}
		sign := ""
		if quote.Change >= 0 {
			sign = "+"
		}
		lines = append(lines, fmt.Sprintf("**%s** (%s): **$%s** (%s%.2f, %s%.1f%%)",
			quote.Name, quote.Ticker, humanize.FormatFloat("#,###.##", quote.Price),
			sign, quote.Change, sign, quote.ChangePercent))
		raw = append(raw, quote)
	}

	if len(lines) == 0 {
		return &Result{Response: "No tickers to look up.", Tool: "Stocks"}
	}
	return &Result{Response: strings.Join(lines, "\n"), Tool: "Stocks", Data: raw}
}

func (e *Executor) handleTodoList() *Result {
	todos, err := e.todos.List()
	if err != nil {
		klog.Warningf("待办列表快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your todos: %v", err), Tool: "Todos"}
	}
	if len(todos) == 0 {
		return &Result{
			Response: "Your todo list is empty. Add one with \"Add [task] to my todos\".",
			Tool:     "Todos",
		}
	}

	done := 0
	var lines []string
	for _, t := range todos {
		check := "[ ]"
		if t.Done {
			check = "[x]"
			done++
		}
		lines = append(lines, fmt.Sprintf("- %s %s", check, t.Task))
	}

	header := fmt.Sprintf("**Todos** (%d/%d complete)\n\n", done, len(todos))
	return &Result{Response: header + strings.Join(lines, "\n"), Tool: "Todos", Data: todos}
}

func (e *Executor) handleTodoAdd(ctx context.Context, task string) *Result {
	todo := &model.Todo{Task: task}
	if err := e.todos.Create(todo); err != nil {
		klog.Warningf("添加待办失败: task=%s, error=%v", task, err)
		return &Result{Response: fmt.Sprintf("Couldn't add that todo: %v", err), Tool: "Todos"}
	}

	// 活动日志尽力而为，失败不影响成功路径
	if e.bus != nil {
		if err := e.bus.Publish(ctx, eventbus.ActivityEvent{
			Type:      eventbus.ActivityEventRecorded,
			Source:    "todos",
			EventType: "created",
			Summary:   fmt.Sprintf("Created todo: %s", task),
		}); err != nil {
			klog.Warningf("待办活动日志发布失败: %v", err)
		}
	}

	return &Result{
		Response: fmt.Sprintf("Added to your todos: **%s**", task),
		Tool:     "Todos",
		Data:     todo,
	}
}

func (e *Executor) handleNoteList() *Result {
	notes, err := e.notes.List()
	if err != nil {
		klog.Warningf("笔记列表快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch your notes: %v", err), Tool: "Notes"}
	}
	if len(notes) == 0 {
		return &Result{Response: "No notes yet.", Tool: "Notes"}
	}

	lines := []string{fmt.Sprintf("**Notes** (%d total)\n", len(notes))}
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("- %s", n.Title))
	}
	return &Result{Response: strings.Join(lines, "\n"), Tool: "Notes", Data: notes}
}

func (e *Executor) handleSystem(ctx context.Context) *Result {
	stats, err := e.sysRead(ctx)
	if err != nil {
		klog.Warningf("系统状态快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't read system stats: %v", err), Tool: "System"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**System Status** — %s\n\n", stats.Hostname)
	fmt.Fprintf(&b, "- **CPU:** %.1f%% (%d cores)\n", stats.CPUPercent, stats.CPUCount)
	fmt.Fprintf(&b, "- **Memory:** %.1f%% (%.1f / %.1f GB)\n", stats.MemPercent, stats.MemUsedGB, stats.MemTotalGB)
	fmt.Fprintf(&b, "- **Disk:** %.1f%% (%.0f / %.0f GB)\n", stats.DiskPercent, stats.DiskUsedGB, stats.DiskTotalGB)
	fmt.Fprintf(&b, "- **OS:** %s %s", stats.OS, stats.Release)

	return &Result{Response: b.String(), Tool: "System", Data: stats}
}

func (e *Executor) handleNews(ctx context.Context, query string) *Result {
	sections := []news.Section{{Name: "Top Stories", Query: query}}
	headlines, err := e.news.Search(ctx, sections)
	if err != nil {
		klog.Warningf("新闻快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch the news: %v", err), Tool: "News"}
	}
	if len(headlines) == 0 {
		return &Result{Response: "No headlines found right now.", Tool: "News"}
	}

	var b strings.Builder
	b.WriteString("**News Briefing**\n")
	section := ""
	for _, h := range headlines {
		if h.Section != section {
			section = h.Section
			fmt.Fprintf(&b, "\n**%s**\n", section)
		}
		if h.Source != "" {
			fmt.Fprintf(&b, "- [%s](%s) — %s\n", h.Title, h.Link, h.Source)
		} else {
			fmt.Fprintf(&b, "- [%s](%s)\n", h.Title, h.Link)
		}
	}
	return &Result{Response: b.String(), Tool: "News", Data: headlines}
}
