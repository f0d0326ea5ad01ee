// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/secrets"
	"github.com/pdiddy/article-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the article-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "article-engine",
	Short: "LLM-driven LinkedIn article generation",
	Long: `article-engine generates a LinkedIn article from a topic by chaining
model calls through a bounded critique/revision loop, then produces supporting
content (header image, promotional post, hashtags and SEO keywords) and exports
the result as an article package.

Completed runs are recorded in a local history database; inspect them with the
runs subcommands, and render the workflow topology with graph.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-engine.yaml or ~/.config/article-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-engine"))
		}
	}

	viper.SetDefault("export.export_document", true)
	viper.SetDefault("export.export_image", true)
	viper.SetDefault("export.placeholder_images", true)

	viper.SetEnvPrefix("ARTICLE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the run configuration from the config file, environment,
// and loaded secrets.
func loadConfig() types.ArticleConfig {
	cfg := types.ArticleConfig{
		AI: types.AIConfig{
			Model:       viper.GetString("ai.model"),
			Temperature: viper.GetFloat64("ai.temperature"),
			APIKey:      viper.GetString("ai.api_key"),
			BaseURL:     viper.GetString("ai.base_url"),
			MaxRetries:  viper.GetInt("ai.max_retries"),
		},
		CreativeAI: types.AIConfig{
			Model:       viper.GetString("creative_ai.model"),
			Temperature: viper.GetFloat64("creative_ai.temperature"),
		},
		Workflow: types.WorkflowConfig{
			MaxRevisions: viper.GetInt("workflow.max_revisions"),
		},
		Export: types.ExportConfig{
			OutputDir:         viper.GetString("export.output_dir"),
			ExportDocument:    viper.GetBool("export.export_document"),
			ExportImage:       viper.GetBool("export.export_image"),
			PlaceholderImages: viper.GetBool("export.placeholder_images"),
		},
		History: types.HistoryConfig{
			Dir:      viper.GetString("history.dir"),
			Disabled: viper.GetBool("history.disabled"),
		},
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = loadedSecrets[secrets.OpenAIKey]
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
