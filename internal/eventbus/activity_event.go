package eventbus

import "context"

type ActivityEventType string

const (
	ActivityEventRecorded ActivityEventType = "ActivityRecorded"
)

// ActivityEvent 活动事件，由聊天、待办、旅行等来源发布
type ActivityEvent struct {
	Type      ActivityEventType
	Source    string // chat, todos, travel
	EventType string // query, fast_query, created, insights
	Summary   string
	Metadata  map[string]any
}

type ActivityEventHandler = func(ctx context.Context, event ActivityEvent) error
