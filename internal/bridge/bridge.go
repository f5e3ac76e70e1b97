// Package bridge 实现 irace 的 target runner：
// irace 每评估一个候选参数组合就调用一次本程序，
// 这里把候选参数翻译成优化器的命令行，跑完后读出最终适应度，
// 并以 cost = 1 - fitness 的形式返回给 irace (irace 做的是最小化)。
package bridge

import (
	"context"
	"flag"
	"fmt"
	"math"

	"evorun/internal/config"
	"evorun/internal/executor"
	"evorun/pkg/model"
)

// Candidate irace 传入的一个候选参数组合
// 位置参数：configID instanceID seed instancePath，之后是候选的调参标志
type Candidate struct {
	ConfigID   string
	InstanceID string
	Seed       string
	Instance   string // 参考文本路径 (irace 的 instance)

	N             int
	Generations   int
	ProbMutation  float64
	ProbCrossover float64
	KPerc         float64 // 锦标赛规模占种群的比例
	ElitPerc      float64 // 精英数量占种群的比例
}

// ParseArgs 解析 irace 的调用约定
func ParseArgs(args []string) (*Candidate, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("expected at least 4 positional args (configID instanceID seed instance), got %d", len(args))
	}

	cand := &Candidate{
		ConfigID:   args[0],
		InstanceID: args[1],
		Seed:       args[2],
		Instance:   args[3],
	}

	fs := flag.NewFlagSet("target-runner", flag.ContinueOnError)
	fs.IntVar(&cand.N, "n", -1, "population size")
	fs.IntVar(&cand.Generations, "generations", -1, "number of generations")
	fs.Float64Var(&cand.ProbMutation, "prob_mutation", -1, "mutation probability")
	fs.Float64Var(&cand.ProbCrossover, "prob_crossover", -1, "crossover probability")
	fs.Float64Var(&cand.KPerc, "k_perc", -1, "tournament size as a fraction of n")
	fs.Float64Var(&cand.ElitPerc, "elit_perc", -1, "elite count as a fraction of n")
	if err := fs.Parse(args[4:]); err != nil {
		return nil, err
	}

	if cand.N <= 0 || cand.Generations <= 0 {
		return nil, fmt.Errorf("candidate is missing --n or --generations")
	}
	if cand.ProbMutation < 0 || cand.ProbCrossover < 0 || cand.KPerc < 0 || cand.ElitPerc < 0 {
		return nil, fmt.Errorf("candidate is missing one of --prob_mutation --prob_crossover --k_perc --elit_perc")
	}
	return cand, nil
}

// Params 把百分比参数翻译成优化器需要的整数
// k 至少为 3 (锦标赛最小规模)，精英至少保留 1 个
func (c *Candidate) Params() model.Params {
	k := int(math.Ceil(c.KPerc * float64(c.N)))
	if k < 3 {
		k = 3
	}
	elite := int(math.Ceil(c.ElitPerc * float64(c.N)))
	if elite < 1 {
		elite = 1
	}

	return model.Params{
		N:             c.N,
		Generations:   c.Generations,
		K:             k,
		EliteSize:     elite,
		ProbCrossover: c.ProbCrossover,
		ProbMutation:  c.ProbMutation,
	}
}

// Bridge 一次候选评估的执行器
type Bridge struct {
	cfg  *config.Config
	exec executor.Executor
}

func New(cfg *config.Config) *Bridge {
	return &Bridge{cfg: cfg, exec: executor.NewLocalExecutor()}
}

// Evaluate 运行优化器并返回 irace 需要的 cost
func (b *Bridge) Evaluate(ctx context.Context, cand *Candidate) (float64, error) {
	params := cand.Params()

	// 1. 构造并执行一次优化器调用
	cmd := []string{b.cfg.Python, b.cfg.Script}
	cmd = append(cmd, params.Args()...)
	cmd = append(cmd,
		"--reference_text", cand.Instance,
		"--outdir_base", b.cfg.OutdirBase,
	)

	job := &model.Job{
		ID:      "irace-" + cand.ConfigID + "-" + cand.InstanceID + "-" + cand.Seed,
		Name:    "irace-candidate-" + cand.ConfigID,
		Command: cmd,
	}
	if _, err := b.exec.Run(ctx, job); err != nil {
		return 0, fmt.Errorf("optimizer run failed: %w", err)
	}

	// 2. 找到刚刚产生的结果目录，读出最后一代的 max_fitness
	execDir, err := LatestExecDir(b.cfg.OutdirBase)
	if err != nil {
		return 0, err
	}
	fitness, err := FinalMaxFitness(execDir)
	if err != nil {
		return 0, err
	}

	// 3. irace 做最小化，所以返回 1 - fitness
	return Cost(fitness), nil
}

// Cost 适应度到 irace 成本的换算
func Cost(fitness float64) float64 {
	return 1.0 - fitness
}

// FormatCost irace 只读取 stdout 上的这一行
func FormatCost(cost float64) string {
	return fmt.Sprintf("%.6f", cost)
}
