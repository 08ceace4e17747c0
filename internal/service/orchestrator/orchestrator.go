package orchestrator

import (
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"k8s.io/klog/v2"
)

var ErrPoolStopped = errors.New("worker pool is stopped")

// WorkerPool Agent 执行协程池
// 每条进入 Agent 通路的消息对应一个 worker，池上限约束并发模型调用数
// 超时后被派发循环放弃的 worker 继续运行直至自行终止，不做强杀
type WorkerPool struct {
	pool     *ants.Pool
	stopOnce sync.Once
}

// NewWorkerPool 创建协程池
// maxWorkers: 并发 worker 上限
func NewWorkerPool(maxWorkers int) (*WorkerPool, error) {
	pool, err := ants.NewPool(maxWorkers,
		ants.WithNonblocking(false),
		ants.WithMaxBlockingTasks(1000),
		ants.WithExpiryDuration(5*time.Minute),
	)
	if err != nil {
		klog.Errorf("ants pool initialization failed: %v", err)
		return nil, err
	}
	klog.V(6).Infof("Agent 协程池已创建: maxWorkers=%d", maxWorkers)
	return &WorkerPool{pool: pool}, nil
}

// Submit 提交一个 Agent worker
// 池满时阻塞等待空位，而不是丢弃消息
func (p *WorkerPool) Submit(task func()) error {
	if err := p.pool.Submit(task); err != nil {
		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrPoolStopped
		}
		klog.Errorf("提交 Agent worker 到协程池失败: %v", err)
		return err
	}
	return nil
}

// Running 当前运行中的 worker 数
func (p *WorkerPool) Running() int {
	return p.pool.Running()
}

// Stop 停止协程池，等待运行中的 worker 完成
// 超时上限覆盖最长的 Agent 墙钟时限（旅行规划 180 秒）
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		running := p.pool.Running()
		if running > 0 {
			klog.V(6).Infof("等待 %d 个运行中的 worker 完成 (超时: 4min)", running)
		}
		if err := p.pool.ReleaseTimeout(4 * time.Minute); err != nil {
			klog.Warningf("协程池停止超时，部分 worker 可能被放弃: %v", err)
			return
		}
		klog.V(6).Infof("Agent 协程池已停止")
	})
}
