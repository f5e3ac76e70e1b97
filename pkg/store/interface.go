package store

import (
	"context"

	"evorun/pkg/model"
)

// JobEventType 定义监听事件类型
type JobEventType int

const (
	JobCreate JobEventType = iota
	JobUpdate
	JobDelete
)

// JobEvent 包装了存储层中发生的任务变化
// 外部观察者 (evorun-cli -watch) 通过这个结构体跟踪实验进度
type JobEvent struct {
	Type JobEventType
	Job  *model.Job
}

// Store 接口定义了 Sequencer 对运行台账的所有需求
// 台账只负责可观测性：写入失败绝不影响任务的顺序执行
// 任何实现了这个接口的 Struct (EtcdLedger / MemoryLedger) 都可以被注入
type Store interface {
	// --- Job 相关 ---

	// CreateJob 记录新构造的任务
	CreateJob(ctx context.Context, job *model.Job) error

	// GetJob 获取单个任务详情
	GetJob(ctx context.Context, id string) (*model.Job, error)

	// UpdateJob 更新任务状态 (Sequencer 状态流转时调用)
	UpdateJob(ctx context.Context, job *model.Job) error

	// SaveJobLog 保存任务的控制台输出
	SaveJobLog(ctx context.Context, jobID string, logs string) error
	GetJobLog(ctx context.Context, jobID string) (string, error)

	// WatchJobs 监听任务变化 (返回一个只读通道)
	WatchJobs(ctx context.Context) <-chan JobEvent

	// --- Run 相关 ---

	// SaveRun 写入/更新整次批量实验的顶层记录
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
}
