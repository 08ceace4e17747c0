package fastpath

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/langly/backend/internal/collab/kindora"
	"k8s.io/klog/v2"
)

func (e *Executor) handleCalendarToday(ctx context.Context) *Result {
	events, err := e.calendar.GetToday(ctx)
	if err != nil {
		klog.Warningf("日历快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch today's calendar: %v", err), Tool: "Calendar"}
	}
	if len(events) == 0 {
		return &Result{Response: "Nothing on the calendar today.", Tool: "Calendar"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Today's Schedule** (%d events)\n\n", len(events))
	for _, ev := range events {
		fmt.Fprintf(&b, "- **%s** %s\n", eventTime(ev), ev.Title)
	}
	return &Result{Response: b.String(), Tool: "Calendar", Data: events}
}

func (e *Executor) handleCalendarWeek(ctx context.Context, days int) *Result {
	if days <= 0 {
		days = 7
	}
	events, err := e.calendar.GetUpcoming(ctx, days)
	if err != nil {
		klog.Warningf("日历快速路径失败: days=%d, error=%v", days, err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch the upcoming calendar: %v", err), Tool: "Calendar"}
	}
	if len(events) == 0 {
		return &Result{Response: fmt.Sprintf("Nothing on the calendar for the next %d days.", days), Tool: "Calendar"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Next %d Days** (%d events)\n\n", days, len(events))
	for _, ev := range events {
		fmt.Fprintf(&b, "- %s: **%s** at %s\n", eventDate(ev), ev.Title, eventTime(ev))
	}
	return &Result{Response: b.String(), Tool: "Calendar", Data: events}
}

func (e *Executor) handleCalendarFamily(ctx context.Context) *Result {
	members, err := e.calendar.GetFamilyMembers(ctx)
	if err != nil {
		klog.Warningf("家庭成员快速路径失败: %v", err)
		return &Result{Response: fmt.Sprintf("Couldn't fetch family members: %v", err), Tool: "Calendar"}
	}
	if len(members) == 0 {
		return &Result{Response: "No family members found on the calendar.", Tool: "Calendar"}
	}

	var b strings.Builder
	b.WriteString("**Family Members**\n\n")
	for _, m := range members {
		fmt.Fprintf(&b, "- %s\n", m.Name)
	}
	return &Result{Response: b.String(), Tool: "Calendar", Data: members}
}

// eventTime 取事件开始时刻的 "3:04 PM" 展示，解析失败原样返回
func eventTime(ev kindora.Event) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ev.StartTime); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return ev.StartTime
}

func eventDate(ev kindora.Event) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ev.StartTime); err == nil {
			return t.Format("Mon Jan 2")
		}
	}
	if len(ev.StartTime) >= 10 {
		return ev.StartTime[:10]
	}
	return ev.StartTime
}
