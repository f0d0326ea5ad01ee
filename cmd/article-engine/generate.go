// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/export"
	"github.com/pdiddy/article-engine/internal/history"
	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/internal/workflow"
	"github.com/pdiddy/article-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a LinkedIn article for a topic",
	Long: `Generate runs the full workflow for a topic: research, draft, the bounded
critique/revision loop (with supplementary research when the critique calls
for it), then header image, promotional post, and SEO metadata. The result is
exported as an article package and recorded in the run history.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("max-revisions", 0, "revision budget for the critique loop (default 3)")
	generateCmd.Flags().String("model", "", "chat model identifier")
	generateCmd.Flags().String("output-dir", "", "directory for the exported article package")
	generateCmd.Flags().Bool("no-export", false, "skip exporting the article package")
	generateCmd.Flags().Bool("no-history", false, "skip recording the run in history")
	generateCmd.Flags().Bool("verbose", false, "log every agent call and routing decision")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	cfg := loadConfig()

	if v, _ := cmd.Flags().GetInt("max-revisions"); v > 0 {
		cfg.Workflow.MaxRevisions = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.AI.Model = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.Export.OutputDir = v
	}
	if v, _ := cmd.Flags().GetBool("no-export"); v {
		cfg.Export.ExportDocument = false
		cfg.Export.ExportImage = false
	}
	if v, _ := cmd.Flags().GetBool("no-history"); v {
		cfg.History.Disabled = true
	}

	backend, err := llm.NewOpenAIBackend(cfg.AI)
	if err != nil {
		return err
	}
	creative, err := llm.NewOpenAIBackend(cfg.CreativeAI)
	if err != nil {
		return err
	}

	orch := workflow.New(
		llm.WithRetry(backend, cfg.AI.MaxRetries),
		llm.WithRetry(creative, cfg.CreativeAI.MaxRetries),
		creative,
		cfg,
	)
	if cfg.Export.Enabled() {
		orch.Exporter = export.NewPackager(cfg.Export)
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		orch.Observer = workflow.WriterObserver{W: os.Stderr}
	}

	output, err := orch.Run(context.Background(), topic, os.Stdout)
	if err != nil {
		return err
	}

	if !cfg.History.Disabled {
		if err := recordRun(cfg.History, output); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run failed: %v\n", err)
		}
	}

	printSummary(output)
	return nil
}

func recordRun(cfg types.HistoryConfig, output *types.FinalOutput) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.RecordRun(context.Background(), output)
	if err != nil {
		return err
	}
	fmt.Printf("recorded as run %d\n", id)
	return nil
}

func printSummary(output *types.FinalOutput) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Revisions made:       %d\n", output.RevisionsMade)
	fmt.Printf("Critique passed:      %t\n", output.CritiquePassed)
	fmt.Printf("Additional research:  %d call(s)\n", output.AdditionalResearchCallCount)
	fmt.Printf("Agent calls:          %d\n", len(output.CallLog))
	fmt.Printf("Article:              %d chars\n", len(output.Article))
	if output.LinkedInPost != "" {
		fmt.Printf("\nLinkedIn post:\n%s\n", output.LinkedInPost)
	}
	if len(output.Hashtags) > 0 {
		fmt.Printf("\nHashtags: %s\n", strings.Join(output.Hashtags, " "))
	}
	if len(output.SEOKeywords) > 0 {
		fmt.Printf("Keywords: %s\n", strings.Join(output.SEOKeywords, ", "))
	}
	switch output.ExportStatus {
	case types.ExportOK:
		fmt.Printf("\nExported:\n  document: %s\n  image:    %s\n  metadata: %s\n",
			output.ExportPaths.Document, output.ExportPaths.Image, output.ExportPaths.Metadata)
	case types.ExportFailed:
		fmt.Println("\nExport failed; article content was kept.")
	}
}
