package executor

import (
	"context"
	"errors"
	"fmt"

	"evorun/pkg/model"
)

// Executor 执行后端接口：同步运行一个 Job，返回捕获的控制台输出
// 任意时刻最多只有一个外部进程在运行 (Sequencer 串行调用)
type Executor interface {
	Run(ctx context.Context, job *model.Job) (string, error)
}

// ExitError 外部进程以非零状态退出
// 这是整个系统唯一的业务错误类型：退出码需要原样向上传递
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("external process exited with code %d", e.Code)
}

// ExitCode 从错误链中提取外部进程的退出码
// 不是进程失败 (比如启动失败) 时返回 1
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
