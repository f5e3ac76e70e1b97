package store

import (
	"context"
	"fmt"
	"sync"

	"evorun/pkg/model"
)

// MemoryLedger 纯内存实现，用于测试以及没有配置 Etcd 的场景
// 数据随进程消失，Sequencer 本身不依赖任何持久化
type MemoryLedger struct {
	mu   sync.Mutex
	jobs map[string]model.Job
	runs map[string]model.Run
	logs map[string]string

	subscribers []chan JobEvent
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		jobs: make(map[string]model.Job),
		runs: make(map[string]model.Run),
		logs: make(map[string]string),
	}
}

func (m *MemoryLedger) CreateJob(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	m.jobs[job.ID] = *job
	m.mu.Unlock()

	m.notify(JobEvent{Type: JobCreate, Job: cloneJob(job)})
	return nil
}

func (m *MemoryLedger) UpdateJob(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	m.jobs[job.ID] = *job
	m.mu.Unlock()

	m.notify(JobEvent{Type: JobUpdate, Job: cloneJob(job)})
	return nil
}

func (m *MemoryLedger) GetJob(ctx context.Context, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", id)
	}
	return &job, nil
}

func (m *MemoryLedger) SaveJobLog(ctx context.Context, jobID string, logs string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[jobID] = logs
	return nil
}

func (m *MemoryLedger) GetJobLog(ctx context.Context, jobID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.logs[jobID]
	if !ok {
		return "", fmt.Errorf("log not found for job %s", jobID)
	}
	return content, nil
}

// WatchJobs 返回一个带缓冲的事件通道
// 缓冲满时事件会被丢弃：台账的观察者掉队不能拖慢执行
func (m *MemoryLedger) WatchJobs(ctx context.Context) <-chan JobEvent {
	ch := make(chan JobEvent, 64)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		for i, sub := range m.subscribers {
			if sub == ch {
				m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (m *MemoryLedger) SaveRun(ctx context.Context, run *model.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *MemoryLedger) GetRun(ctx context.Context, id string) (*model.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return &run, nil
}

func (m *MemoryLedger) notify(event JobEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default: // 观察者太慢，丢弃
		}
	}
}

func cloneJob(job *model.Job) *model.Job {
	copied := *job
	return &copied
}
