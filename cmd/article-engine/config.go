// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		key := "not set"
		if cfg.AI.APIKey != "" {
			key = "set"
		}

		fmt.Println("Configuration:")
		fmt.Printf("  api key:               %s\n", key)
		fmt.Printf("  model:                 %s (temperature %.1f)\n", cfg.AI.Model, cfg.AI.Temperature)
		fmt.Printf("  creative model:        %s (temperature %.1f)\n", cfg.CreativeAI.Model, cfg.CreativeAI.Temperature)
		fmt.Printf("  max retries:           %d\n", cfg.AI.MaxRetries)
		fmt.Printf("  max revisions:         %d\n", cfg.Workflow.MaxRevisions)
		fmt.Printf("  output dir:            %s\n", cfg.Export.OutputDir)
		fmt.Printf("  export document:       %t\n", cfg.Export.ExportDocument)
		fmt.Printf("  export image:          %t\n", cfg.Export.ExportImage)
		fmt.Printf("  placeholder images:    %t\n", cfg.Export.PlaceholderImages)
		fmt.Printf("  history dir:           %s (disabled: %t)\n", cfg.History.Dir, cfg.History.Disabled)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
