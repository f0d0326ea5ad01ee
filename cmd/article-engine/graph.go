// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the workflow graph",
	Long: `Graph renders the workflow topology as Graphviz DOT or a standalone HTML
page. With --run it annotates each node with the call counts of a recorded
run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		runArg, _ := cmd.Flags().GetString("run")

		var counts graph.CallCounts
		if runArg != "" {
			id, err := strconv.ParseInt(runArg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", runArg)
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
			counts = graph.CountCalls(run.Calls)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		switch format {
		case "dot":
			err = graph.WriteDOT(f, counts)
		case "html":
			err = graph.WriteHTML(f, counts)
		default:
			return fmt.Errorf("unknown format %q (want dot or html)", format)
		}
		if err != nil {
			return err
		}

		fmt.Printf("workflow graph written to %s\n", out)
		return nil
	},
}

func init() {
	graphCmd.Flags().String("format", "dot", "output format: dot or html")
	graphCmd.Flags().String("out", "workflow_graph.dot", "output file path")
	graphCmd.Flags().String("run", "", "annotate with call counts from a recorded run id")

	rootCmd.AddCommand(graphCmd)
}
