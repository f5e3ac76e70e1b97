package model

// Resource 容器化执行时施加的资源上限 (仅 Docker 后端使用)
type Resource struct {
	MilliCPU int64 `yaml:"milli_cpu" json:"milli_cpu"`
	Memory   int64 `yaml:"memory" json:"memory"`
}

func (r Resource) IsZero() bool {
	return r.MilliCPU == 0 && r.Memory == 0
}
