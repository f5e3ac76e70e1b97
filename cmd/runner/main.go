package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"evorun/internal/artifacts"
	"evorun/internal/config"
	"evorun/internal/executor"
	"evorun/internal/sequencer"
	"evorun/pkg/store"
)

func main() {
	configPath := flag.String("config", "evorun.yaml", "Path to the run configuration file")
	flag.Parse()

	// 1. 加载配置 (一次加载，整个运行期间只读)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 2. 选择执行后端
	var exec executor.Executor
	switch cfg.Executor.Type {
	case config.ExecutorDocker:
		exec, err = executor.NewDockerExecutor(cfg.Executor)
		if err != nil {
			log.Fatalf("❌ Failed to init docker executor: %v", err)
		}
	default:
		exec = executor.NewLocalExecutor()
	}

	// 3. 运行台账：配置了 Etcd 就用 Etcd，否则退化为内存台账
	var ledger store.Store
	if len(cfg.Etcd.Endpoints) > 0 {
		etcdLedger, err := store.NewEtcdLedger(cfg.Etcd.Endpoints)
		if err != nil {
			log.Fatalf("❌ Failed to connect to etcd: %v", err)
		}
		log.Println("Connected to Etcd successfully.")
		ledger = etcdLedger
	} else {
		ledger = store.NewMemoryLedger()
	}

	// 4. 产物上传 (可选)
	var uploader *artifacts.Uploader
	if cfg.Minio.Endpoint != "" {
		uploader, err = artifacts.New(cfg.Minio)
		if err != nil {
			log.Fatalf("❌ Failed to init artifact uploader: %v", err)
		}
	}

	// 5. Ctrl+C 时取消正在运行的外部进程
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down runner...")
		cancel()
	}()

	// 6. 串行执行整个任务网格，失败即停
	seq := sequencer.New(cfg, exec, ledger, uploader)
	if err := seq.RunAll(ctx); err != nil {
		// 外部进程的退出码原样传出去
		os.Exit(executor.ExitCode(err))
	}
}
