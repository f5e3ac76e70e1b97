package config

import (
	"fmt"
	"os"

	"evorun/pkg/model"

	"gopkg.in/yaml.v3"
)

// 执行后端类型
const (
	ExecutorLocal  = "local"  // 直接 os/exec 调用本机解释器
	ExecutorDocker = "docker" // 在容器内执行优化器
)

// Config 一次批量实验的全部配置，启动时加载一次，之后只读
type Config struct {
	// 外部优化器
	Python string `yaml:"python"` // 解释器路径 (通常指向 venv 里的 python)
	Script string `yaml:"script"` // main.py 的路径

	// 实验网格：参考文本 x 重复编号，顺序即执行顺序
	ReferenceTexts []string `yaml:"reference_texts"`
	Repetitions    []int    `yaml:"repetitions"`

	OutdirBase string       `yaml:"outdir_base"` // 传给 --outdir_base
	Params     model.Params `yaml:"params"`

	Executor ExecutorConfig `yaml:"executor"`
	Etcd     EtcdConfig     `yaml:"etcd"`
	Minio    MinioConfig    `yaml:"minio"`
	Tuner    TunerConfig    `yaml:"tuner"`
}

type ExecutorConfig struct {
	Type   string         `yaml:"type"`   // local | docker
	Image  string         `yaml:"image"`  // docker 后端使用的镜像
	Mounts []string       `yaml:"mounts"` // bind 挂载 (host:container)
	Limits model.Resource `yaml:"limits"` // 容器资源上限
}

// EtcdConfig 运行台账，可选；Endpoints 为空则退化为内存台账
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
}

// MinioConfig 结果产物上传，可选；Endpoint 为空则不上传
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// TunerConfig irace 调用
// irace 的安装路径必须静态配置，不再通过包管理器动态查询
type TunerConfig struct {
	Binary   string `yaml:"binary"`   // irace 可执行文件路径
	Scenario string `yaml:"scenario"` // 场景文件，默认 scenario.txt
}

// Default 返回与外部优化器默认值一致的配置
func Default() *Config {
	return &Config{
		Python:     "python3",
		Script:     "main.py",
		OutdirBase: "exec",
		Params: model.Params{
			N:             30,
			Generations:   10,
			K:             3,
			EliteSize:     2,
			ProbCrossover: 0.8,
			ProbMutation:  0.1,
		},
		Executor: ExecutorConfig{Type: ExecutorLocal},
		Tuner:    TunerConfig{Binary: "irace", Scenario: "scenario.txt"},
	}
}

// Load 读取 YAML 配置文件并做合法性检查
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Python == "" {
		return fmt.Errorf("python interpreter path is required")
	}
	if c.Script == "" {
		return fmt.Errorf("optimizer script path is required")
	}
	if c.OutdirBase == "" {
		return fmt.Errorf("outdir_base is required")
	}
	if c.Params.N <= 0 {
		return fmt.Errorf("params.n must be positive, got %d", c.Params.N)
	}
	if c.Params.Generations <= 0 {
		return fmt.Errorf("params.generations must be positive, got %d", c.Params.Generations)
	}
	if c.Params.ProbCrossover < 0 || c.Params.ProbCrossover > 1 {
		return fmt.Errorf("params.prob_crossover must be in [0,1], got %g", c.Params.ProbCrossover)
	}
	if c.Params.ProbMutation < 0 || c.Params.ProbMutation > 1 {
		return fmt.Errorf("params.prob_mutation must be in [0,1], got %g", c.Params.ProbMutation)
	}

	switch c.Executor.Type {
	case ExecutorLocal:
	case ExecutorDocker:
		if c.Executor.Image == "" {
			return fmt.Errorf("executor.image is required for the docker backend")
		}
	default:
		return fmt.Errorf("unknown executor type: %q", c.Executor.Type)
	}
	return nil
}
