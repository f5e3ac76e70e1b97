package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"evorun/pkg/model"
	"evorun/pkg/store"
)

// 操作员工具：对着 Etcd 台账翻任务日志、实时看实验进度
func main() {
	// --- 1. 定义命令行参数 ---
	endpoints := flag.String("endpoints", "localhost:2379", "Comma separated etcd endpoints")
	jobIDToGet := flag.String("getlog", "", "Get logs for a specific Job ID")
	runIDToGet := flag.String("getrun", "", "Get the record of a specific Run ID")
	watch := flag.Bool("watch", false, "Stream job state changes")
	flag.Parse()

	// --- 2. 连接 Etcd ---
	ledger, err := store.NewEtcdLedger(strings.Split(*endpoints, ","))
	if err != nil {
		log.Fatalf("❌ Failed to connect to etcd: %v", err)
	}

	// --- 3. 分支 A: 查看日志模式 ---
	if *jobIDToGet != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logs, err := ledger.GetJobLog(ctx, *jobIDToGet)
		if err != nil {
			log.Fatalf("❌ Failed to get logs: %v", err)
		}

		fmt.Printf("\n📄 Logs for Job [%s]:\n", *jobIDToGet)
		fmt.Println("================================================")
		fmt.Println(logs)
		fmt.Println("================================================")
		return
	}

	// --- 4. 分支 B: 查看 Run 记录 ---
	if *runIDToGet != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		run, err := ledger.GetRun(ctx, *runIDToGet)
		if err != nil {
			log.Fatalf("❌ Failed to get run: %v", err)
		}

		fmt.Printf("\n🧪 Run [%s]: %s (%d/%d jobs)\n", run.ID, run.State, run.Completed, run.TotalJobs)
		if run.FailedJob != "" {
			fmt.Printf("   Failed at: %s\n", run.FailedJob)
		}
		return
	}

	// --- 5. 分支 C: 实时跟踪模式 ---
	if *watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			cancel()
		}()

		fmt.Println("👀 Watching job state changes (Ctrl+C to stop)...")
		for event := range ledger.WatchJobs(ctx) {
			fmt.Printf("   [%s] %s -> %s\n",
				time.Now().Format("15:04:05"), event.Job.Name, stateName(event.Job.Status.State))
		}
		return
	}

	flag.Usage()
}

func stateName(state model.JobState) string {
	switch state {
	case model.JobPending:
		return "PENDING"
	case model.JobRunning:
		return "RUNNING"
	case model.JobSuccess:
		return "SUCCESS"
	case model.JobFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
