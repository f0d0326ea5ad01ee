// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/history"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded generation runs",
	Long: `Runs queries the local history database. Use list for recent runs, show
for one run's full call log, and stats for aggregate per-agent call counts.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}

		fmt.Printf("%-5s %-40s %-7s %-9s %-8s %s\n", "ID", "TOPIC", "PASSED", "REVISIONS", "EXPORT", "CREATED")
		for _, r := range runs {
			topic := r.Topic
			if len(topic) > 40 {
				topic = topic[:37] + "..."
			}
			fmt.Printf("%-5d %-40s %-7t %-9d %-8s %s\n",
				r.ID, topic, r.CritiquePassed, r.RevisionsMade, r.ExportStatus,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one run with its full agent call log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Run %d: %s\n", run.ID, run.Topic)
		fmt.Printf("  created:             %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  critique passed:     %t\n", run.CritiquePassed)
		fmt.Printf("  revisions made:      %d\n", run.RevisionsMade)
		fmt.Printf("  research calls:      %d initial, %d additional\n", run.ResearchCallCount, run.AdditionalResearchCallCount)
		fmt.Printf("  article:             %d chars\n", run.ArticleChars)
		fmt.Printf("  research:            %d chars\n", run.ResearchChars)
		fmt.Printf("  export:              %s\n", run.ExportStatus)
		fmt.Println("  call log:")
		for _, rec := range run.Calls {
			fmt.Printf("    #%-3d %-15s %-12s revision=%d\n", rec.CallID, rec.AgentName, rec.CallType, rec.RevisionCount)
		}
		return nil
	},
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate statistics across all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Summarize(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Runs:           %d\n", stats.Runs)
		fmt.Printf("Passed:         %d\n", stats.Passed)
		fmt.Printf("Avg revisions:  %.1f\n", stats.AvgRevisions)
		fmt.Println("Calls per agent:")

		agents := make([]string, 0, len(stats.CallsPerAgent))
		for name := range stats.CallsPerAgent {
			agents = append(agents, name)
		}
		sort.Strings(agents)
		for _, name := range agents {
			fmt.Printf("  %-15s %d\n", name, stats.CallsPerAgent[name])
		}
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg := loadConfig()
	return history.NewStore(cfg.History)
}

func init() {
	runsListCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}
