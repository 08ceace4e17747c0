package agentcore

// EventType Agent 事件类型
type EventType string

const (
	EventToken      EventType = "token"
	EventThinking   EventType = "thinking"
	EventToolStart  EventType = "tool_start"
	EventToolResult EventType = "tool_result"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// 事件载荷截断上限，约束内存与前端负载
const (
	maxThinkingLen   = 1000
	maxToolResultLen = 2000
)

// AgentEvent Agent 执行过程事件，经线程安全队列流向派发循环
// 每次调用恰好产生一个终止事件 (done 或 error)，终止后不再有事件
type AgentEvent struct {
	Type   EventType `json:"type"`
	Text   string    `json:"text,omitempty"`   // token, thinking
	Tool   string    `json:"tool,omitempty"`   // tool_start
	Input  string    `json:"input,omitempty"`  // tool_start
	Output string    `json:"output,omitempty"` // tool_result, done
	Err    string    `json:"error,omitempty"`  // error
}

// Terminal 是否为终止事件
func (e AgentEvent) Terminal() bool {
	return e.Type == EventDone || e.Type == EventError
}

func TokenEvent(text string) AgentEvent {
	return AgentEvent{Type: EventToken, Text: text}
}

func ThinkingEvent(text string) AgentEvent {
	return AgentEvent{Type: EventThinking, Text: truncate(text, maxThinkingLen)}
}

func ToolStartEvent(tool, input string) AgentEvent {
	return AgentEvent{Type: EventToolStart, Tool: tool, Input: input}
}

func ToolResultEvent(output string) AgentEvent {
	return AgentEvent{Type: EventToolResult, Output: truncate(output, maxToolResultLen)}
}

func DoneEvent(output string) AgentEvent {
	return AgentEvent{Type: EventDone, Output: output}
}

func ErrorEvent(message string) AgentEvent {
	return AgentEvent{Type: EventError, Err: message}
}

// truncate 按字符截断，避免截断多字节字符
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// Sink Agent 事件接收端，由执行侧按顺序推入
type Sink interface {
	Emit(event AgentEvent)
}
