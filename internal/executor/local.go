package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"evorun/pkg/model"
)

// LocalExecutor 直接在本机启动外部进程 (默认后端)
type LocalExecutor struct{}

func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{}
}

func (e *LocalExecutor) Run(ctx context.Context, job *model.Job) (string, error) {
	if len(job.Command) == 0 {
		return "", fmt.Errorf("job %s has an empty command", job.ID)
	}

	cmd := exec.CommandContext(ctx, job.Command[0], job.Command[1:]...)

	// stdout 和 stderr 合并捕获，成功后整体写入台账
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// 非零退出：退出码必须原样向上传递
			return string(output), &ExitError{Code: exitErr.ExitCode()}
		}
		// 进程根本没起来 (解释器路径错误等)
		return string(output), fmt.Errorf("start %s: %w", job.Command[0], err)
	}
	return string(output), nil
}
