package agentcore

import (
	"sync"
	"sync/atomic"

	"k8s.io/klog/v2"
)

const queueCapacity = 128

// Queue 单生产者单消费者事件队列
// 生产者先推入终止事件再置完成标志，消费者据此判断可安全退出；
// 通道满时生产者阻塞等待消费侧排空，事件不丢失、顺序不变
type Queue struct {
	events      chan AgentEvent
	done        atomic.Bool
	abandoned   chan struct{}
	abandonOnce sync.Once
}

func NewQueue() *Queue {
	return &Queue{
		events:    make(chan AgentEvent, queueCapacity),
		abandoned: make(chan struct{}),
	}
}

// Emit 推入事件，实现 Sink
// 终止之后与消费者放弃之后的事件直接丢弃，其余情况阻塞直到入队成功
func (q *Queue) Emit(event AgentEvent) {
	if q.done.Load() {
		klog.Warningf("事件队列已终止，丢弃事件: type=%s", event.Type)
		return
	}
	select {
	case <-q.abandoned:
		klog.Warningf("消费者已放弃队列，丢弃事件: type=%s", event.Type)
		return
	default:
	}
	select {
	case <-q.abandoned:
		klog.Warningf("消费者已放弃队列，丢弃事件: type=%s", event.Type)
		return
	case q.events <- event:
	}
	if event.Terminal() {
		q.done.Store(true)
	}
}

// Abandon 消费侧放弃队列，解除生产者阻塞，此后推入的事件被丢弃
func (q *Queue) Abandon() {
	q.abandonOnce.Do(func() {
		close(q.abandoned)
	})
}

// Events 事件通道，供消费侧 select
func (q *Queue) Events() <-chan AgentEvent {
	return q.events
}

// Done 生产者是否已发出终止事件
func (q *Queue) Done() bool {
	return q.done.Load()
}

// TryPop 非阻塞取事件，用于完成后的残留排空
func (q *Queue) TryPop() (AgentEvent, bool) {
	select {
	case event := <-q.events:
		return event, true
	default:
		return AgentEvent{}, false
	}
}
