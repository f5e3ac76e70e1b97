package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobName(t *testing.T) {
	assert.Equal(t, "text_01_Rep1", JobName("reference_texts/text_01.txt", 1))
	assert.Equal(t, "text_03_Rep3", JobName("text_03.txt", 3))
	assert.Equal(t, "corpus_Rep12", JobName("/data/corpus", 12))
}

func TestParamsArgs_Order(t *testing.T) {
	p := Params{
		N:             100,
		Generations:   50,
		K:             5,
		EliteSize:     4,
		ProbCrossover: 0.8,
		ProbMutation:  0.05,
	}

	// the flag order is part of the optimizer's CLI contract
	assert.Equal(t, []string{
		"--n", "100",
		"--generations", "50",
		"--k", "5",
		"--elite_size", "4",
		"--prob_crossover", "0.8",
		"--prob_mutation", "0.05",
	}, p.Args())
}
