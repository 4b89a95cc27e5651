package main

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/gapso/internal/problem"
	"github.com/cwbudde/gapso/internal/store"
)

func baseRunConfig(algo string) store.RunConfig {
	return store.RunConfig{
		Algorithm:     algo,
		Problem:       "sphere",
		Dim:           2,
		Iterations:    10,
		PopSize:       20,
		Seed:          3,
		CrossoverRate: 0.8,
		MutationRate:  0.1,
		Crossover:     "two",
		Precision:     1e-3,
		W:             0.8,
		C1:            2,
		C2:            2,
	}
}

func TestNewOptimizer(t *testing.T) {
	for _, algo := range algorithms {
		optimizer, rc, err := newOptimizer(baseRunConfig(algo))
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}

		prob, err := problem.Lookup("sphere", 2)
		if err != nil {
			t.Fatal(err)
		}
		res, err := optimizer.Solve(context.Background(), prob)
		if err != nil {
			t.Fatalf("%s: Solve failed: %v", algo, err)
		}
		if res.Algorithm != algo {
			t.Errorf("Algorithm = %s, want %s", res.Algorithm, algo)
		}

		switch algo {
		case "ga":
			if rc.Crossover != "two-point" || rc.W != 0 {
				t.Errorf("ga: unexpected normalized config %+v", rc)
			}
		case "pso", "mayfly":
			if rc.Crossover != "" || rc.Precision != 0 {
				t.Errorf("%s: GA knobs should be cleared, got %+v", algo, rc)
			}
		}
	}
}

func TestNewOptimizerRejects(t *testing.T) {
	_, _, err := newOptimizer(baseRunConfig("annealing"))
	if !errors.Is(err, problem.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unknown algorithm, got %v", err)
	}

	rc := baseRunConfig("ga")
	rc.Crossover = "three"
	if _, _, err := newOptimizer(rc); err == nil {
		t.Error("Expected error for unknown crossover mode")
	}

	rc = baseRunConfig("mayfly")
	rc.PopSize = 5
	if _, _, err := newOptimizer(rc); err == nil {
		t.Error("Expected error for small mayfly population")
	}
}

func TestSummarize(t *testing.T) {
	s := summarize("ga", []float64{1, 2, 3, 4}, 100)

	if s.Runs != 4 || s.Evals != 100 {
		t.Errorf("Unexpected counts: %+v", s)
	}
	if s.Mean != 2.5 {
		t.Errorf("Mean = %f, want 2.5", s.Mean)
	}
	// sample standard deviation of 1..4
	if math.Abs(s.StdDev-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("StdDev = %f, want %f", s.StdDev, math.Sqrt(5.0/3.0))
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("Min/Max = %f/%f, want 1/4", s.Min, s.Max)
	}

	single := summarize("pso", []float64{7}, 10)
	if single.StdDev != 0 || single.Mean != 7 {
		t.Errorf("Unexpected single-run summary: %+v", single)
	}
}

func TestWriteBenchTable(t *testing.T) {
	var buf bytes.Buffer
	writeBenchTable(&buf, []benchSummary{
		summarize("ga", []float64{1, 2}, 220),
		summarize("pso", []float64{0.5, 0.5}, 550),
	})

	out := buf.String()
	for _, want := range []string{"ALGO", "ga", "pso", "220", "550"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
