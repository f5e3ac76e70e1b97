package main

import (
	"context"
	"fmt"
	"os"

	"evorun/internal/bridge"
	"evorun/internal/config"
)

// target-runner 由 irace 调用，调用约定是位置参数：
//
//	target-runner <configID> <instanceID> <seed> <instance> [候选参数标志...]
//
// 成功时 stdout 上只打印一行 cost，irace 只读这一行；
// 任何失败都写到 stderr 并以退出码 1 告诉 irace 本次评估作废。
func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cand, err := bridge.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cost, err := bridge.New(cfg).Evaluate(context.Background(), cand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(bridge.FormatCost(cost))
}

// loadConfig irace 不传配置路径，所以支持环境变量覆盖，默认当前目录
func loadConfig() (*config.Config, error) {
	path := os.Getenv("EVORUN_CONFIG")
	if path == "" {
		path = "evorun.yaml"
	}
	return config.Load(path)
}
