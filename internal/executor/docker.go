package executor

import (
	"bytes"
	"context"
	"log"

	"evorun/internal/config"
	"evorun/pkg/model"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// DockerExecutor 在容器内执行优化器，保证每个任务的运行环境一致
type DockerExecutor struct {
	cli *client.Client
	cfg config.ExecutorConfig
}

// NewDockerExecutor 初始化 Docker 客户端
func NewDockerExecutor(cfg config.ExecutorConfig) (*DockerExecutor, error) {
	// 自动从环境变量或默认路径连接本地 Docker
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithVersion("1.44"))
	if err != nil {
		return nil, err
	}
	return &DockerExecutor{cli: cli, cfg: cfg}, nil
}

// Run 真正执行任务的方法
func (e *DockerExecutor) Run(ctx context.Context, job *model.Job) (string, error) {
	log.Printf("🐳 [Docker] Starting job %s...", job.Name)

	// 1. 构造容器配置
	// 参考文本和输出目录通过配置里的 bind 挂载进容器
	hostConfig := &container.HostConfig{
		Binds: e.cfg.Mounts,
	}
	if !e.cfg.Limits.IsZero() {
		hostConfig.Resources = container.Resources{
			NanoCPUs: e.cfg.Limits.MilliCPU * 1_000_000,
			Memory:   e.cfg.Limits.Memory,
		}
	}

	// 2. 创建容器 (Create Container)
	resp, err := e.cli.ContainerCreate(ctx, &container.Config{
		Image: e.cfg.Image,
		Cmd:   job.Command,
		Tty:   false,
	}, hostConfig, nil, nil, "")
	if err != nil {
		return "", err
	}

	containerID := resp.ID
	log.Printf("   -> Container created: %s", containerID[:12])

	// 3. 启动容器 (Start Container)
	if err := e.cli.ContainerStart(ctx, containerID, types.ContainerStartOptions{}); err != nil {
		return "", err
	}

	// 4. 等待容器结束 (Wait)，记录退出码
	var exitCode int64
	statusCh, errCh := e.cli.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return "", err
		}
	case status := <-statusCh:
		exitCode = status.StatusCode
	}

	// 5. 获取日志 (Logs)
	outReader, err := e.cli.ContainerLogs(ctx, containerID, types.ContainerLogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return "", err
	}
	defer outReader.Close()

	// stdcopy 会把 docker 的多路复用流拆分，写入 buf
	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, outReader); err != nil {
		return "", err
	}

	// 6. 清理容器 (Remove)
	e.cli.ContainerRemove(ctx, containerID, types.ContainerRemoveOptions{})

	// 7. 非零退出码与本地后端同样处理
	if exitCode != 0 {
		return buf.String(), &ExitError{Code: int(exitCode)}
	}
	return buf.String(), nil
}
