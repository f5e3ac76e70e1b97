package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"evorun/internal/config"
	"evorun/internal/executor"
	"evorun/internal/tuner"
)

func main() {
	configPath := flag.String("config", "evorun.yaml", "Path to the run configuration file")
	scenario := flag.String("scenario", "", "Override the scenario file from the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *scenario != "" {
		cfg.Tuner.Scenario = *scenario
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down tuner...")
		cancel()
	}()

	// 一次性任务：拉起 irace 并等它结束
	if err := tuner.Run(ctx, cfg.Tuner); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(executor.ExitCode(err))
	}
}
