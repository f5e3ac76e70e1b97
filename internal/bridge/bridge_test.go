package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Run("full candidate", func(t *testing.T) {
		cand, err := ParseArgs([]string{
			"7", "2", "12345", "reference_texts/text_01.txt",
			"--n", "100", "--generations", "30",
			"--prob_mutation", "0.02", "--prob_crossover", "0.85",
			"--k_perc", "0.05", "--elit_perc", "0.02",
		})
		require.NoError(t, err)

		assert.Equal(t, "7", cand.ConfigID)
		assert.Equal(t, "12345", cand.Seed)
		assert.Equal(t, "reference_texts/text_01.txt", cand.Instance)
		assert.Equal(t, 100, cand.N)
		assert.Equal(t, 0.85, cand.ProbCrossover)
	})

	t.Run("missing positional args", func(t *testing.T) {
		_, err := ParseArgs([]string{"7", "2", "12345"})
		require.Error(t, err)
	})

	t.Run("missing candidate flags", func(t *testing.T) {
		_, err := ParseArgs([]string{"7", "2", "12345", "text.txt", "--n", "100"})
		require.Error(t, err)
	})
}

func TestCandidateParams_PercentageTranslation(t *testing.T) {
	t.Run("ceil of fractions", func(t *testing.T) {
		cand := &Candidate{N: 100, Generations: 10, KPerc: 0.125, ElitPerc: 0.033}
		p := cand.Params()

		assert.Equal(t, 13, p.K)        // ceil(0.125*100) with the 12.5 rounded up
		assert.Equal(t, 4, p.EliteSize) // ceil(0.033*100)
	})

	t.Run("tournament floor of 3", func(t *testing.T) {
		cand := &Candidate{N: 10, Generations: 10, KPerc: 0.01, ElitPerc: 0.5}
		assert.Equal(t, 3, cand.Params().K)
	})

	t.Run("at least one elite", func(t *testing.T) {
		cand := &Candidate{N: 10, Generations: 10, KPerc: 0.5, ElitPerc: 0.0}
		assert.Equal(t, 1, cand.Params().EliteSize)
	})
}

func TestCost(t *testing.T) {
	// irace minimizes, so a better fitness must give a lower cost
	assert.InDelta(t, 0.25, Cost(0.75), 1e-9)
	assert.Equal(t, "0.250000", FormatCost(Cost(0.75)))
	assert.Equal(t, "1.000000", FormatCost(Cost(0)))
}

func TestLatestExecDir(t *testing.T) {
	base := t.TempDir()

	older := filepath.Join(base, "2026-08-28_10-00-00")
	newer := filepath.Join(base, "2026-08-29_09-30-00")
	noise := filepath.Join(base, "not-a-result")
	require.NoError(t, os.Mkdir(older, 0o755))
	require.NoError(t, os.Mkdir(newer, 0o755))
	require.NoError(t, os.Mkdir(noise, 0o755))

	// selection is by modification time, not by name
	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))
	require.NoError(t, os.Chtimes(noise, now.Add(time.Hour), now.Add(time.Hour)))

	dir, err := LatestExecDir(base)
	require.NoError(t, err)
	assert.Equal(t, newer, dir)
}

func TestLatestExecDir_Empty(t *testing.T) {
	_, err := LatestExecDir(t.TempDir())
	require.Error(t, err)
}

func TestFinalMaxFitness(t *testing.T) {
	dir := t.TempDir()
	csv := "generation,mean_fitness,max_fitness\n" +
		"0,0.41,0.55\n" +
		"1,0.52,0.63\n" +
		"2,0.60,0.71\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics_log.csv"), []byte(csv), 0o644))

	fitness, err := FinalMaxFitness(dir)
	require.NoError(t, err)
	assert.InDelta(t, 0.71, fitness, 1e-9)
}

func TestFinalMaxFitness_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := FinalMaxFitness(t.TempDir())
		require.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		dir := t.TempDir()
		csv := "generation,mean_fitness\n0,0.5\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics_log.csv"), []byte(csv), 0o644))

		_, err := FinalMaxFitness(dir)
		require.Error(t, err)
	})

	t.Run("no data rows", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics_log.csv"),
			[]byte("generation,max_fitness\n"), 0o644))

		_, err := FinalMaxFitness(dir)
		require.Error(t, err)
	})
}
