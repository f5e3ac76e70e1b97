package bridge

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// main.py 为每次运行创建的目录名格式 (来自外部优化器的约定)
var execDirPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`)

// LatestExecDir 在输出基目录下找到最新创建的实验目录
// 优化器自己决定目录名 (时间戳)，这里按修改时间取最新的一个
func LatestExecDir(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("read exec dir %s: %w", base, err)
	}

	var latest string
	var latestMod int64
	for _, entry := range entries {
		if !entry.IsDir() || !execDirPattern.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = entry.Name()
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no result directory found in %s", base)
	}
	return filepath.Join(base, latest), nil
}

// FinalMaxFitness 读取 metrics_log.csv 最后一代的 max_fitness
func FinalMaxFitness(execDir string) (float64, error) {
	path := filepath.Join(execDir, "metrics_log.csv")
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open metrics log: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("%s has no data rows", path)
	}

	// 1. 在表头里定位 max_fitness 列
	header := records[0]
	col := -1
	for i, name := range header {
		if name == "max_fitness" {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, fmt.Errorf("%s has no max_fitness column", path)
	}

	// 2. 取最后一行 (最后一代)
	last := records[len(records)-1]
	if col >= len(last) {
		return 0, fmt.Errorf("%s last row is too short", path)
	}

	fitness, err := strconv.ParseFloat(last[col], 64)
	if err != nil {
		return 0, fmt.Errorf("parse max_fitness %q: %w", last[col], err)
	}
	return fitness, nil
}
