package model

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type JobState int

const (
	JobPending JobState = iota // 等待执行
	JobRunning                 // 正在执行
	JobSuccess                 // 执行成功
	JobFailed                  // 执行失败
)

// Job 代表对外部优化器 (main.py) 的一次完整调用
// 输入字段构造后不再修改，只有 Status 会被 Sequencer 更新
type Job struct {
	ID   string `json:"id"`
	Name string `json:"name"` // 形如 text_01_Rep2

	// 本次调用的具体规格
	ReferenceText string   `json:"reference_text"` // 参考文本路径 (实验输入)
	Repetition    int      `json:"repetition"`     // 重复编号
	Command       []string `json:"command"`        // 完整命令行 (解释器 + 脚本 + 参数)

	// 执行状态
	Status struct {
		State     JobState  `json:"state"`
		ExitCode  int       `json:"exit_code"`
		Error     string    `json:"error,omitempty"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	} `json:"status"`
}

// JobName 根据参考文本和重复编号生成可读的任务名
// 例如 reference_texts/text_01.txt + 2 -> text_01_Rep2
func JobName(referenceText string, repetition int) string {
	base := filepath.Base(referenceText)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_Rep" + strconv.Itoa(repetition)
}
