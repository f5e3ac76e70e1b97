package model

import "time"

// RunState 整次批量实验的最终状态
type RunState string

const (
	RunRunning RunState = "RUNNING"
	RunSuccess RunState = "SUCCESS"
	RunFailed  RunState = "FAILED"
)

// Run 一次批量实验的顶层记录 (一个 Run 包含 |文本| x |重复| 个 Job)
type Run struct {
	ID        string    `json:"id"` // UUID
	TotalJobs int       `json:"total_jobs"`
	Completed int       `json:"completed"`
	State     RunState  `json:"state"`
	FailedJob string    `json:"failed_job,omitempty"` // 失败时记录是哪个任务
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
