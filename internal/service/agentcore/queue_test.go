package agentcore

import (
	"testing"
	"time"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Emit(ThinkingEvent("step one"))
	q.Emit(ToolStartEvent("lookup_weather", `{"location":"Morristown, NJ"}`))
	q.Emit(ToolResultEvent(`{"tempF":72}`))
	q.Emit(DoneEvent("All set."))

	want := []EventType{EventThinking, EventToolStart, EventToolResult, EventDone}
	for i, wantType := range want {
		event, ok := q.TryPop()
		if !ok {
			t.Fatalf("事件 %d 缺失", i)
		}
		if event.Type != wantType {
			t.Errorf("事件 %d 类型 = %s, 期望 %s", i, event.Type, wantType)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("队列应已排空")
	}
}

func TestQueueDoneAfterTerminal(t *testing.T) {
	q := NewQueue()
	if q.Done() {
		t.Fatal("新队列不应处于终止状态")
	}
	q.Emit(DoneEvent("final answer"))
	if !q.Done() {
		t.Fatal("终止事件后 Done 应为 true")
	}

	// 终止后的事件被丢弃，不会出现在消费侧
	q.Emit(TokenEvent("late"))
	if event, ok := q.TryPop(); !ok || event.Type != EventDone {
		t.Fatalf("期望仅剩终止事件, got=%v ok=%v", event.Type, ok)
	}
	if _, ok := q.TryPop(); ok {
		t.Error("终止后推入的事件不应入队")
	}
}

func TestQueueErrorIsTerminal(t *testing.T) {
	q := NewQueue()
	q.Emit(ErrorEvent("model call failed"))
	if !q.Done() {
		t.Fatal("error 事件也应置终止标志")
	}
	event, ok := q.TryPop()
	if !ok || event.Type != EventError || event.Err != "model call failed" {
		t.Fatalf("意外的终止事件: %+v", event)
	}
}

func TestQueueBlocksWhenFullWithoutDropping(t *testing.T) {
	q := NewQueue()
	total := queueCapacity + 50

	produced := make(chan struct{})
	go func() {
		// 超出容量的突发事件，生产者在通道满时阻塞而非丢弃
		for i := 0; i < total; i++ {
			q.Emit(ToolResultEvent(`{"seq":1}`))
		}
		q.Emit(DoneEvent("final answer"))
		close(produced)
	}()

	// 等生产者打满通道并进入阻塞后再开始排空
	time.Sleep(20 * time.Millisecond)

	count := 0
	var last AgentEvent
	for {
		last = <-q.Events()
		count++
		if last.Terminal() {
			break
		}
	}
	if count != total+1 {
		t.Errorf("事件数 = %d, 期望 %d, 不允许丢弃", count, total+1)
	}
	if last.Type != EventDone {
		t.Errorf("最后一个事件 = %s, 期望 done", last.Type)
	}

	select {
	case <-produced:
	case <-time.After(time.Second):
		t.Fatal("排空后生产者应已全部入队返回")
	}
}

func TestQueueAbandonUnblocksProducer(t *testing.T) {
	q := NewQueue()
	for i := 0; i < queueCapacity; i++ {
		q.Emit(TokenEvent("x"))
	}

	returned := make(chan struct{})
	go func() {
		q.Emit(DoneEvent("orphaned"))
		close(returned)
	}()

	// 通道已满且无人消费，Emit 应保持阻塞
	select {
	case <-returned:
		t.Fatal("通道满且未放弃时 Emit 不应返回")
	case <-time.After(20 * time.Millisecond):
	}

	q.Abandon()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Abandon 后 Emit 应立即返回")
	}

	// 被丢弃的终止事件不置终止标志，放弃后的推入全部丢弃
	if q.Done() {
		t.Error("放弃后丢弃的终止事件不应置 Done")
	}
	q.Emit(TokenEvent("late"))
}

func TestEventTruncation(t *testing.T) {
	long := make([]byte, 3000)
	for i := range long {
		long[i] = 'a'
	}
	thinking := ThinkingEvent(string(long))
	if len(thinking.Text) != maxThinkingLen {
		t.Errorf("thinking 长度 = %d, 期望 %d", len(thinking.Text), maxThinkingLen)
	}
	result := ToolResultEvent(string(long))
	if len(result.Output) != maxToolResultLen {
		t.Errorf("tool_result 长度 = %d, 期望 %d", len(result.Output), maxToolResultLen)
	}
	// done 事件不截断
	done := DoneEvent(string(long))
	if len(done.Output) != 3000 {
		t.Errorf("done 输出不应被截断, got %d", len(done.Output))
	}
}

func TestTruncateMultiByte(t *testing.T) {
	s := "日本語テキスト"
	out := truncate(s, 3)
	if out != "日本語" {
		t.Errorf("truncate = %q, 期望按字符截断", out)
	}
}
