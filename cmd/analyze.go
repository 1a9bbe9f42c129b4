package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/callqa-cli/internal/export"
	"github.com/sells-group/callqa-cli/internal/ingest"
)

var (
	analyzeInput     string
	analyzeChecklist string
	analyzeOutJSON   string
	analyzeOutCSV    string
	analyzeRankCSV   string
	analyzeRunID     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a batch of transcripts from a CSV or XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(analyzeChecklist)
		if err != nil {
			return err
		}

		items, err := ingest.Load(analyzeInput)
		if err != nil {
			return err
		}

		runID := analyzeRunID
		if runID == "" {
			runID = uuid.NewString()
		}
		zap.L().Info("starting batch analysis",
			zap.String("run_id", runID),
			zap.String("input", analyzeInput),
			zap.Int("items", len(items)),
		)

		res := env.Pipeline.Run(ctx, runID, items, env.Checklist)
		if !res.Success {
			return eris.Errorf("batch failed: %s", res.Error)
		}

		var g errgroup.Group
		if analyzeOutJSON != "" {
			g.Go(func() error { return export.WriteJSON(analyzeOutJSON, res) })
		}
		if analyzeOutCSV != "" {
			g.Go(func() error { return export.WriteCSV(analyzeOutCSV, res.Results) })
		}
		if analyzeRankCSV != "" {
			g.Go(func() error { return export.WriteRankingsCSV(analyzeRankCSV, res.Agents) })
		}
		if err := g.Wait(); err != nil {
			return err
		}

		degraded := 0
		for _, r := range res.Results {
			if r.Degraded() {
				degraded++
			}
		}
		fmt.Printf("Run %s: %d items, %d findings, %d themes, avg score %.1f",
			res.RunID, res.Summary.TotalItems, res.Summary.TotalFindings,
			res.Summary.ThemeCount, res.Summary.AvgSeverityScore)
		if degraded > 0 {
			fmt.Printf(" (%d degraded)", degraded)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "input CSV/XLSX file (required)")
	analyzeCmd.Flags().StringVar(&analyzeChecklist, "checklist", "", "checklist file (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeOutJSON, "out-json", "results.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&analyzeOutCSV, "out-csv", "", "optional per-transcript CSV path")
	analyzeCmd.Flags().StringVar(&analyzeRankCSV, "out-rankings", "", "optional agent rankings CSV path")
	analyzeCmd.Flags().StringVar(&analyzeRunID, "run-id", "", "run identifier (default: random)")
	analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}
