package tuner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"evorun/internal/config"
	"evorun/internal/executor"
)

// Run 调用外部调参器 irace，一次性任务
// irace 自己读取工作目录里的场景文件，这里只负责拉起进程并传递退出码
func Run(ctx context.Context, cfg config.TunerConfig) error {
	// 1. 场景文件必须存在，提前检查避免 irace 的晦涩报错
	if _, err := os.Stat(cfg.Scenario); err != nil {
		return fmt.Errorf("scenario file %s: %w", cfg.Scenario, err)
	}

	// 2. irace 路径来自静态配置，不做任何动态查询
	cmd := exec.CommandContext(ctx, cfg.Binary, "--scenario", cfg.Scenario)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Printf("[Tuner] ▶ TUNER STARTED | cmd: %s --scenario %s", cfg.Binary, cfg.Scenario)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Printf("[Tuner] ❌ TUNER FAILED (exit %d)", exitErr.ExitCode())
			return &executor.ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("start %s: %w", cfg.Binary, err)
	}

	log.Printf("[Tuner] ✅ TUNER FINISHED")
	return nil
}
