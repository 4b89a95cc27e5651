package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/gapso/internal/opt"
	"github.com/cwbudde/gapso/internal/problem"
	"github.com/cwbudde/gapso/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single optimization",
	Long: `Runs one optimizer on a benchmark problem and prints the best value and
decision vector. With --save the result and its best-so-far trace are stored
under <data-dir>/runs/<id>/.`,
	RunE: runOptimization,
}

func init() {
	runCmd.Flags().String("algo", "ga", "Optimizer: ga, pso, mayfly")
	addSolverFlags(runCmd)
	runCmd.Flags().Bool("save", false, "Store the run record and trace")
	runCmd.Flags().String("data-dir", "./data", "Base directory for run storage")
	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	rc, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	prob, err := problem.Lookup(rc.Problem, rc.Dim)
	if err != nil {
		return err
	}
	optimizer, rc, err := newOptimizer(rc)
	if err != nil {
		return err
	}

	slog.Info("Starting optimization", "algo", rc.Algorithm, "problem", rc.Problem, "dim", rc.Dim, "seed", rc.Seed)

	res, solveErr := optimizer.Solve(cmd.Context(), prob)
	if res == nil {
		return fmt.Errorf("optimization failed: %w", solveErr)
	}
	if solveErr != nil {
		slog.Warn("Optimization interrupted, reporting best so far", "steps", res.Steps, "error", solveErr)
	}

	writeResult(os.Stdout, prob, res)

	if viper.GetBool("save") {
		runID, err := saveRun(viper.GetString("data-dir"), res, rc)
		if err != nil {
			return errors.Join(solveErr, err)
		}
		fmt.Printf("Saved run %s\n", runID)
	}

	return solveErr
}

// writeResult prints the best value and position. For constrained problems the
// raw objective and remaining violation at the position are shown as well,
// since an infeasible point found while the penalty weight was still zero can
// stay the best for the whole run.
func writeResult(out io.Writer, prob *problem.Problem, res *opt.Result) {
	fmt.Fprintf(out, "%s: best %.6g at step %d of %d (%d evaluations, %s)\n",
		res.Algorithm, res.Best, res.BestStep, res.Steps, res.Evaluations, res.Duration)
	fmt.Fprintf(out, "x = %v\n", res.BestData)
	if prob.NumConstraints() > 0 && len(res.BestData) == prob.Dim {
		violation := prob.Violation(res.BestData)
		fmt.Fprintf(out, "objective %.6g, violation %.6g", prob.Objective(res.BestData), violation)
		if violation > 0 {
			fmt.Fprint(out, " (infeasible)")
		}
		fmt.Fprintln(out)
	}
}

// saveRun writes the record and trace of res under a fresh run id.
func saveRun(dataDir string, res *opt.Result, rc store.RunConfig) (string, error) {
	runStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to create run store: %w", err)
	}

	runID := uuid.New().String()
	if err := runStore.SaveRecord(runID, store.NewRecord(runID, res, rc)); err != nil {
		return "", fmt.Errorf("failed to save record: %w", err)
	}

	tw, err := store.NewTraceWriter(dataDir, runID)
	if err != nil {
		return "", err
	}
	if err := tw.WriteSeries(res.Series); err != nil {
		tw.Close()
		return "", fmt.Errorf("failed to write trace: %w", err)
	}
	if err := tw.Flush(); err != nil {
		tw.Close()
		return "", err
	}
	if err := tw.Close(); err != nil {
		return "", err
	}

	slog.Info("Run saved", "run_id", runID, "path", runStore.RunDir(runID), "trace", tw.Path(), "points", len(res.Series))
	return runID, nil
}
