package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/gapso/internal/problem"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare optimizers over repeated seeded runs",
	Long: `Runs every selected optimizer on the same problem with --runs consecutive
seeds starting at --seed and prints summary statistics of the best values.
Runs execute concurrently; each run is sequential on its own.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringSlice("algos", algorithms, "Optimizers to compare")
	benchCmd.Flags().Int("runs", 10, "Seeded runs per optimizer")
	benchCmd.Flags().Int("jobs", runtime.NumCPU(), "Maximum concurrent runs")
	addSolverFlags(benchCmd)
	rootCmd.AddCommand(benchCmd)
}

// benchSummary holds statistics over the best values of one optimizer.
type benchSummary struct {
	Algorithm string
	Runs      int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	Evals     int
}

func summarize(algo string, best []float64, evals int) benchSummary {
	s := benchSummary{Algorithm: algo, Runs: len(best), Evals: evals}
	if len(best) == 0 {
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(best, nil)
	if len(best) == 1 {
		s.StdDev = 0
	}
	s.Min = floats.Min(best)
	s.Max = floats.Max(best)
	return s
}

func runBench(cmd *cobra.Command, args []string) error {
	base, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	algos := viper.GetStringSlice("algos")
	runs := viper.GetInt("runs")
	jobs := viper.GetInt("jobs")
	if runs <= 0 {
		return fmt.Errorf("%w: runs must be > 0 (got %d)", problem.ErrInvalidArgument, runs)
	}
	if jobs <= 0 {
		jobs = 1
	}

	// Fail fast on bad settings before spawning anything.
	if _, err := problem.Lookup(base.Problem, base.Dim); err != nil {
		return err
	}
	for _, algo := range algos {
		rc := base
		rc.Algorithm = strings.TrimSpace(algo)
		if _, _, err := newOptimizer(rc); err != nil {
			return err
		}
	}

	slog.Info("Starting benchmark", "problem", base.Problem, "dim", base.Dim, "algos", algos, "runs", runs, "jobs", jobs)

	best := make([][]float64, len(algos))
	evals := make([]int, len(algos))
	for i := range best {
		best[i] = make([]float64, runs)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for a, algo := range algos {
		for r := 0; r < runs; r++ {
			rc := base
			rc.Algorithm = strings.TrimSpace(algo)
			rc.Seed = base.Seed + int64(r)
			g.Go(func() error {
				prob, err := problem.Lookup(rc.Problem, rc.Dim)
				if err != nil {
					return err
				}
				optimizer, _, err := newOptimizer(rc)
				if err != nil {
					return err
				}
				res, err := optimizer.Solve(ctx, prob)
				if err != nil {
					return fmt.Errorf("%s seed %d: %w", rc.Algorithm, rc.Seed, err)
				}
				// Slots are disjoint per goroutine.
				best[a][r] = res.Best
				if r == 0 {
					evals[a] = res.Evaluations
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	summaries := make([]benchSummary, len(algos))
	for a, algo := range algos {
		summaries[a] = summarize(strings.TrimSpace(algo), best[a], evals[a])
	}
	writeBenchTable(os.Stdout, summaries)
	return nil
}

func writeBenchTable(out io.Writer, summaries []benchSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGO\tRUNS\tMEAN\tSTDDEV\tMIN\tMAX\tEVALS/RUN")
	fmt.Fprintln(w, "----\t----\t----\t------\t---\t---\t---------")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.6g\t%.3g\t%.6g\t%.6g\t%d\n",
			s.Algorithm, s.Runs, s.Mean, s.StdDev, s.Min, s.Max, s.Evals)
	}
	w.Flush()
}
