// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared configuration and domain types for the
// article generation pipeline.
package types

// AIConfig holds shared settings for stages that call a text-generation API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4-turbo-preview").
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature for the model.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (for proxies or compatible servers).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls
	// (default 3). Retries happen inside the backend wrapper, never in the
	// workflow itself.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// WorkflowConfig holds settings for the revision loop.
type WorkflowConfig struct {
	// MaxRevisions bounds the critique/revise loop (default 3).
	MaxRevisions int `json:"max_revisions" yaml:"max_revisions"`
}

// ExportConfig holds settings for the export phase.
type ExportConfig struct {
	// OutputDir is the directory for exported article packages (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ExportDocument controls whether the HTML article document is written.
	ExportDocument bool `json:"export_document" yaml:"export_document"`

	// ExportImage controls whether the article image is downloaded to JPEG.
	ExportImage bool `json:"export_image" yaml:"export_image"`

	// PlaceholderImages writes a placeholder file when the image URL is a
	// degraded sentinel or the download fails.
	PlaceholderImages bool `json:"placeholder_images" yaml:"placeholder_images"`
}

// Enabled reports whether any export target is switched on.
func (c ExportConfig) Enabled() bool {
	return c.ExportDocument || c.ExportImage
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory holding the history SQLite database (default
	// "history").
	Dir string `json:"dir" yaml:"dir"`

	// Disabled turns off run recording.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// ArticleConfig groups all settings for an article generation run.
type ArticleConfig struct {
	// AI configures the default chat model used by most stages.
	AI AIConfig `json:"ai" yaml:"ai"`

	// CreativeAI configures the model used for image-prompt generation.
	// Zero values fall back to AI with a higher temperature.
	CreativeAI AIConfig `json:"creative_ai" yaml:"creative_ai"`

	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}

// WithDefaults fills unset fields with their documented defaults and returns
// the result.
func (c ArticleConfig) WithDefaults() ArticleConfig {
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4-turbo-preview"
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.7
	}
	if c.AI.MaxRetries <= 0 {
		c.AI.MaxRetries = 3
	}
	if c.CreativeAI.Model == "" {
		c.CreativeAI.Model = c.AI.Model
	}
	if c.CreativeAI.Temperature == 0 {
		c.CreativeAI.Temperature = 0.9
	}
	if c.CreativeAI.APIKey == "" {
		c.CreativeAI.APIKey = c.AI.APIKey
	}
	if c.CreativeAI.BaseURL == "" {
		c.CreativeAI.BaseURL = c.AI.BaseURL
	}
	if c.CreativeAI.MaxRetries <= 0 {
		c.CreativeAI.MaxRetries = c.AI.MaxRetries
	}
	if c.Workflow.MaxRevisions <= 0 {
		c.Workflow.MaxRevisions = 3
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "output"
	}
	if c.History.Dir == "" {
		c.History.Dir = "history"
	}
	return c
}
