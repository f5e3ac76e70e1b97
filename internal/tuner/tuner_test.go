package tuner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"evorun/internal/config"
	"evorun/internal/executor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.txt")
	require.NoError(t, os.WriteFile(path, []byte("maxExperiments = 300\n"), 0o644))
	return path
}

func TestRun_MissingScenario(t *testing.T) {
	cfg := config.TunerConfig{
		Binary:   "true",
		Scenario: filepath.Join(t.TempDir(), "scenario.txt"),
	}
	err := Run(context.Background(), cfg)
	require.Error(t, err)
}

func TestRun_Success(t *testing.T) {
	cfg := config.TunerConfig{Binary: "true", Scenario: scenarioFile(t)}
	assert.NoError(t, Run(context.Background(), cfg))
}

func TestRun_ExitCodePropagated(t *testing.T) {
	cfg := config.TunerConfig{Binary: "false", Scenario: scenarioFile(t)}

	err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, 1, executor.ExitCode(err))
}

func TestRun_MissingBinary(t *testing.T) {
	cfg := config.TunerConfig{Binary: "/nonexistent/irace", Scenario: scenarioFile(t)}

	err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, 1, executor.ExitCode(err))
}
