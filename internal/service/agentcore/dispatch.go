package agentcore

import (
	"fmt"
	"time"

	"k8s.io/klog/v2"
)

const defaultPollInterval = 200 * time.Millisecond

// Dispatch 排空事件队列直至终止事件或墙钟超时
// 事件严格按生产顺序透出；超时后合成 error 终止事件并放弃 worker，
// worker 不被强杀，靠自身步数上限终止，其后续事件被队列丢弃
func Dispatch(queue *Queue, timeout time.Duration, pollInterval time.Duration, emit func(AgentEvent)) AgentEvent {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case event := <-queue.Events():
			emit(event)
			if event.Terminal() {
				return event
			}

		case <-tick.C:
			// 终止标志先于通道读取可见时，残留事件在此排空
			if !queue.Done() {
				continue
			}
			for {
				event, ok := queue.TryPop()
				if !ok {
					// 终止标志已置但队列中无终止事件，合成 error 保证恰好一个终止事件
					klog.Errorf("事件队列已终止但未排出终止事件")
					event := ErrorEvent("Agent stream ended unexpectedly")
					emit(event)
					return event
				}
				emit(event)
				if event.Terminal() {
					return event
				}
			}

		case <-deadline.C:
			klog.Warningf("Agent 执行超时，放弃 worker: timeout=%v", timeout)
			queue.Abandon()
			event := ErrorEvent(fmt.Sprintf("Agent timed out after %d seconds", int(timeout/time.Second)))
			emit(event)
			return event
		}
	}
}
