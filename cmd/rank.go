package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/callqa-cli/internal/export"
	"github.com/sells-group/callqa-cli/internal/model"
	"github.com/sells-group/callqa-cli/internal/scoring"
)

var (
	rankResults string
	rankOutCSV  string
)

// rank recomputes theme analytics and the agent leaderboard from a saved
// results JSON without any model calls. Useful for re-ranking under a
// different scoring scheme.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Recompute agent rankings and theme stats from saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(rankResults)
		if err != nil {
			return eris.Wrap(err, "rank: read results file")
		}

		var res model.BatchResult
		if err := json.Unmarshal(data, &res); err != nil {
			return eris.Wrap(err, "rank: parse results file")
		}
		if !res.Success {
			return eris.New("rank: results file records a failed batch")
		}

		sc := scoringConfig()
		res.ThemeStats = sc.ThemeStats(res.Results)
		res.Agents = sc.RankAgents(res.Results)
		res.Summary = scoring.Summarize(res.Results, res.Themes, time.Now())

		fmt.Printf("%-4s %-12s %-20s %8s %8s %6s\n", "Rank", "Agent", "Name", "Comp", "Score", "Grade")
		for _, a := range res.Agents {
			fmt.Printf("%-4d %-12s %-20s %7.1f%% %8.1f %6s\n",
				a.Rank, a.AgentID, a.AgentName, a.ComplianceRate, a.CompositeScore, a.Grade)
		}
		for _, s := range scoring.Suggestions(res.ThemeStats) {
			fmt.Println(s)
		}

		if rankOutCSV != "" {
			return export.WriteRankingsCSV(rankOutCSV, res.Agents)
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().StringVarP(&rankResults, "results", "r", "results.json", "saved results JSON")
	rankCmd.Flags().StringVar(&rankOutCSV, "out-rankings", "", "optional rankings CSV path")
	rootCmd.AddCommand(rankCmd)
}
