package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evorun.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
python: /opt/venv/bin/python
script: ../main.py
outdir_base: exec
reference_texts:
  - reference_texts/text_01.txt
  - reference_texts/text_02.txt
repetitions: [1, 2, 3]
params:
  n: 100
  generations: 50
  k: 5
  elite_size: 4
  prob_crossover: 0.9
  prob_mutation: 0.05
etcd:
  endpoints: ["localhost:2379"]
tuner:
  binary: /usr/local/bin/irace
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/venv/bin/python", cfg.Python)
	assert.Equal(t, []int{1, 2, 3}, cfg.Repetitions)
	assert.Equal(t, 100, cfg.Params.N)
	assert.Equal(t, 0.05, cfg.Params.ProbMutation)
	assert.Equal(t, []string{"localhost:2379"}, cfg.Etcd.Endpoints)
	assert.Equal(t, "/usr/local/bin/irace", cfg.Tuner.Binary)

	// defaults survive a partial file
	assert.Equal(t, ExecutorLocal, cfg.Executor.Type)
	assert.Equal(t, "scenario.txt", cfg.Tuner.Scenario)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.ReferenceTexts = []string{"text_01.txt"}
		cfg.Repetitions = []int{1}
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects non-positive n", func(t *testing.T) {
		cfg := valid()
		cfg.Params.N = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive generations", func(t *testing.T) {
		cfg := valid()
		cfg.Params.Generations = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects probability outside [0,1]", func(t *testing.T) {
		cfg := valid()
		cfg.Params.ProbCrossover = 1.5
		assert.Error(t, cfg.Validate())

		cfg = valid()
		cfg.Params.ProbMutation = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty interpreter", func(t *testing.T) {
		cfg := valid()
		cfg.Python = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("docker backend requires an image", func(t *testing.T) {
		cfg := valid()
		cfg.Executor.Type = ExecutorDocker
		assert.Error(t, cfg.Validate())

		cfg.Executor.Image = "evorun:latest"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects unknown executor type", func(t *testing.T) {
		cfg := valid()
		cfg.Executor.Type = "kubernetes"
		assert.Error(t, cfg.Validate())
	})
}
