package model

import "strconv"

// Params 固定的 GA 参数集，对一次批量实验中的所有任务完全相同
// 加载一次之后不再修改
type Params struct {
	N             int     `yaml:"n" json:"n"`                           // 种群大小
	Generations   int     `yaml:"generations" json:"generations"`       // 迭代代数
	K             int     `yaml:"k" json:"k"`                           // 锦标赛选择规模
	EliteSize     int     `yaml:"elite_size" json:"elite_size"`         // 精英保留数量
	ProbCrossover float64 `yaml:"prob_crossover" json:"prob_crossover"` // 交叉概率
	ProbMutation  float64 `yaml:"prob_mutation" json:"prob_mutation"`   // 变异概率
}

// Args 按固定顺序展开为命令行参数
// 顺序必须稳定：--n --generations --k --elite_size --prob_crossover --prob_mutation
func (p Params) Args() []string {
	return []string{
		"--n", strconv.Itoa(p.N),
		"--generations", strconv.Itoa(p.Generations),
		"--k", strconv.Itoa(p.K),
		"--elite_size", strconv.Itoa(p.EliteSize),
		"--prob_crossover", strconv.FormatFloat(p.ProbCrossover, 'g', -1, 64),
		"--prob_mutation", strconv.FormatFloat(p.ProbMutation, 'g', -1, 64),
	}
}
