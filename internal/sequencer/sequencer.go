package sequencer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"evorun/internal/artifacts"
	"evorun/internal/config"
	"evorun/internal/executor"
	"evorun/pkg/model"
	"evorun/pkg/store"

	"github.com/google/uuid"
)

// Sequencer 批量实验的核心：按固定顺序串行执行整个任务网格
// 失败即停：第一个非零退出码终止整个序列，退出码原样向上传递
type Sequencer struct {
	cfg      *config.Config
	executor executor.Executor
	ledger   store.Store         // 运行台账，可为 nil
	uploader *artifacts.Uploader // 产物上传，可为 nil

	runID string
}

func New(cfg *config.Config, exec executor.Executor, ledger store.Store, uploader *artifacts.Uploader) *Sequencer {
	return &Sequencer{
		cfg:      cfg,
		executor: exec,
		ledger:   ledger,
		uploader: uploader,
		runID:    uuid.NewString(),
	}
}

func (s *Sequencer) RunID() string {
	return s.runID
}

// BuildJobs 枚举 参考文本 x 重复编号 的笛卡尔积
// 外层按文本列表顺序，内层按重复列表顺序，总数恒为 |文本| x |重复|
func (s *Sequencer) BuildJobs() []*model.Job {
	jobs := make([]*model.Job, 0, len(s.cfg.ReferenceTexts)*len(s.cfg.Repetitions))

	for _, text := range s.cfg.ReferenceTexts {
		for _, rep := range s.cfg.Repetitions {
			name := model.JobName(text, rep)
			job := &model.Job{
				ID:            s.runID + "-" + name,
				Name:          name,
				ReferenceText: text,
				Repetition:    rep,
				Command:       s.buildCommand(text),
			}
			job.Status.State = model.JobPending
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// buildCommand 拼接完整命令行：解释器 + 脚本 + 固定参数 + 本任务的输入输出
func (s *Sequencer) buildCommand(referenceText string) []string {
	cmd := []string{s.cfg.Python, s.cfg.Script}
	cmd = append(cmd, s.cfg.Params.Args()...)
	cmd = append(cmd,
		"--reference_text", referenceText,
		"--outdir_base", s.cfg.OutdirBase,
	)
	return cmd
}

// RunAll 串行执行所有任务
// 同一时刻只有一个外部进程在运行，每个任务都阻塞等待其结束
func (s *Sequencer) RunAll(ctx context.Context) error {
	jobs := s.BuildJobs()

	run := &model.Run{
		ID:        s.runID,
		TotalJobs: len(jobs),
		State:     model.RunRunning,
		StartTime: time.Now(),
	}
	s.saveRun(ctx, run)

	log.Printf("[Runner] 🚀 Run %s: %d texts x %d reps = %d jobs",
		s.runID, len(s.cfg.ReferenceTexts), len(s.cfg.Repetitions), len(jobs))

	for i, job := range jobs {
		s.record(func() error { return s.ledger.CreateJob(ctx, job) })

		log.Printf("[Runner] ▶ JOB STARTED (%d/%d): %s | cmd: %s",
			i+1, len(jobs), job.Name, strings.Join(job.Command, " "))

		// 1. 状态流转 Pending -> Running
		job.Status.State = model.JobRunning
		job.Status.StartTime = time.Now()
		s.record(func() error { return s.ledger.UpdateJob(ctx, job) })

		// 2. 同步执行外部进程
		output, err := s.executor.Run(ctx, job)
		job.Status.EndTime = time.Now()

		// 3. 根据结果更新最终状态
		if err != nil {
			job.Status.State = model.JobFailed
			job.Status.ExitCode = executor.ExitCode(err)
			job.Status.Error = err.Error()
			s.record(func() error { return s.ledger.UpdateJob(ctx, job) })
			s.saveOutput(ctx, job, output)

			run.State = model.RunFailed
			run.FailedJob = job.Name
			run.EndTime = time.Now()
			s.saveRun(ctx, run)

			// 失败即停，后面的任务一个也不再执行
			log.Printf("[Runner] ❌ JOB FAILED: %s (exit %d) | cmd: %s",
				job.Name, job.Status.ExitCode, strings.Join(job.Command, " "))
			return fmt.Errorf("job %s: %w", job.Name, err)
		}

		job.Status.State = model.JobSuccess
		s.record(func() error { return s.ledger.UpdateJob(ctx, job) })
		s.saveOutput(ctx, job, output)
		s.uploadOutput(ctx, job, output)

		run.Completed = i + 1
		s.saveRun(ctx, run)

		log.Printf("[Runner] ✅ JOB SUCCEEDED (%d/%d): %s (took %v)",
			i+1, len(jobs), job.Name, job.Status.EndTime.Sub(job.Status.StartTime).Round(time.Second))
	}

	run.State = model.RunSuccess
	run.EndTime = time.Now()
	s.saveRun(ctx, run)

	log.Printf("[Runner] 🎉 ALL JOBS COMPLETE: %d jobs finished", len(jobs))
	return nil
}

// ---------------------------------------------------------
// 台账与产物都只是可观测性：出错打日志，绝不中断执行
// ---------------------------------------------------------

func (s *Sequencer) record(fn func() error) {
	if s.ledger == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("[Runner] Failed to update ledger: %v", err)
	}
}

func (s *Sequencer) saveRun(ctx context.Context, run *model.Run) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.SaveRun(ctx, run); err != nil {
		log.Printf("[Runner] Failed to save run record: %v", err)
	}
}

func (s *Sequencer) saveOutput(ctx context.Context, job *model.Job, output string) {
	if s.ledger == nil || output == "" {
		return
	}
	if err := s.ledger.SaveJobLog(ctx, job.ID, output); err != nil {
		log.Printf("[Runner] Failed to save job log: %v", err)
	} else {
		log.Printf("📝 Logs saved for job %s", job.Name)
	}
}

func (s *Sequencer) uploadOutput(ctx context.Context, job *model.Job, output string) {
	if s.uploader == nil {
		return
	}
	if err := s.uploader.UploadConsoleLog(ctx, s.runID, job.Name, output); err != nil {
		log.Printf("[Runner] Failed to upload artifact for %s: %v", job.Name, err)
	}
}
