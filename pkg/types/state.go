// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ResearchSeparator marks appended supplementary research inside
// ArticleState.ResearchText. Later stages detect supplementary research by
// scanning for this marker, so its exact text is part of the contract.
const ResearchSeparator = "--- ADDITIONAL RESEARCH ---"

// ImagePlaceholderPrefix starts the sentinel written to ImageURL when image
// generation fails and the run continues with a degraded image field.
const ImagePlaceholderPrefix = "[Image Error: "

// ArticleState is the single mutable record threaded through every workflow
// stage. It is created once per generation run with zeroed counters and empty
// text fields, owned exclusively by the orchestrator, and discarded once the
// run produces a FinalOutput.
type ArticleState struct {
	// Topic is set once at creation and never mutated.
	Topic string

	// ResearchText is append-only: the initial research stage writes it and
	// each additional-research call appends under ResearchSeparator.
	ResearchText string

	// ArticleText is fully overwritten by the draft stage and by every
	// revision, never appended to.
	ArticleText string

	// CritiquePassed is set by each critique evaluation; initially false.
	CritiquePassed bool

	// CritiqueFeedback is replaced (not appended) on each critique run.
	// Empty when the critique passed.
	CritiqueFeedback []string

	// RevisionCount is incremented by exactly 1 each time a revision
	// completes. It never exceeds MaxRevisions.
	RevisionCount int

	// MaxRevisions is fixed for the run (default 3).
	MaxRevisions int

	// ResearchCallCount counts initial research calls (0 or 1 per run).
	ResearchCallCount int

	// AdditionalResearchCallCount counts supplementary research calls.
	AdditionalResearchCallCount int

	// CallLog records one entry per stage invocation, append-only.
	CallLog []CallRecord

	// Supporting content, write-once after the revision loop exits.
	ImagePrompt  string
	ImageURL     string
	LinkedInPost string
	Hashtags     []string
	SEOKeywords  []string
}

// NewArticleState returns a run-initial state for topic. maxRevisions values
// below 1 fall back to the default of 3.
func NewArticleState(topic string, maxRevisions int) *ArticleState {
	if maxRevisions < 1 {
		maxRevisions = 3
	}
	return &ArticleState{
		Topic:            topic,
		CritiqueFeedback: []string{},
		MaxRevisions:     maxRevisions,
	}
}

// CallRecord is one entry in the call log. Immutable once appended.
type CallRecord struct {
	// CallID is a 1-based sequence number; values are exactly 1..len(CallLog).
	CallID int `json:"call_id" yaml:"call_id"`

	// AgentName identifies the stage that made the call, e.g. "ResearchAgent".
	AgentName string `json:"agent_name" yaml:"agent_name"`

	// CallType tags the invocation: "initial", "revision_2", "additional_1",
	// "final".
	CallType string `json:"call_type" yaml:"call_type"`

	// Timestamp records when the call was logged. Informational only.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Counter snapshots at the moment of the call.
	RevisionCount               int `json:"revision_count" yaml:"revision_count"`
	ResearchCallCount           int `json:"research_calls" yaml:"research_calls"`
	AdditionalResearchCallCount int `json:"additional_research_calls" yaml:"additional_research_calls"`
}

// LogCall appends a CallRecord for agentName/callType and returns it. CallIDs
// are assigned monotonically starting at 1 with no gaps.
func (s *ArticleState) LogCall(agentName, callType string) CallRecord {
	rec := CallRecord{
		CallID:                      len(s.CallLog) + 1,
		AgentName:                   agentName,
		CallType:                    callType,
		Timestamp:                   time.Now(),
		RevisionCount:               s.RevisionCount,
		ResearchCallCount:           s.ResearchCallCount,
		AdditionalResearchCallCount: s.AdditionalResearchCallCount,
	}
	s.CallLog = append(s.CallLog, rec)
	return rec
}

// HasAdditionalResearch reports whether any supplementary research has been
// appended to ResearchText.
func (s *ArticleState) HasAdditionalResearch() bool {
	return s.AdditionalResearchCallCount > 0
}

// ExportStatus reports the outcome of the export phase for a run.
type ExportStatus string

const (
	ExportSkipped ExportStatus = "skipped"
	ExportOK      ExportStatus = "ok"
	ExportFailed  ExportStatus = "failed"
)

// ExportPaths lists the files written by a successful export.
type ExportPaths struct {
	Document string `json:"document" yaml:"document"`
	Image    string `json:"image" yaml:"image"`
	Metadata string `json:"metadata" yaml:"metadata"`
}

// FinalOutput is the assembled result of a completed run. It is the record
// handed to the export collaborator and to the run-history store.
type FinalOutput struct {
	Topic                       string       `json:"topic" yaml:"topic"`
	Article                     string       `json:"article" yaml:"article"`
	ResearchData                string       `json:"research_data" yaml:"research_data"`
	CritiqueFeedback            []string     `json:"critique_feedback" yaml:"critique_feedback"`
	CritiquePassed              bool         `json:"critique_passed" yaml:"critique_passed"`
	ImagePrompt                 string       `json:"image_prompt" yaml:"image_prompt"`
	ImageURL                    string       `json:"image_url" yaml:"image_url"`
	LinkedInPost                string       `json:"linkedin_post" yaml:"linkedin_post"`
	Hashtags                    []string     `json:"hashtags" yaml:"hashtags"`
	SEOKeywords                 []string     `json:"seo_keywords" yaml:"seo_keywords"`
	RevisionsMade               int          `json:"revisions_made" yaml:"revisions_made"`
	ResearchCallCount           int          `json:"research_calls" yaml:"research_calls"`
	AdditionalResearchCallCount int          `json:"additional_research_calls" yaml:"additional_research_calls"`
	CallLog                     []CallRecord `json:"agent_call_log" yaml:"agent_call_log"`
	ExportStatus                ExportStatus `json:"export_status" yaml:"export_status"`
	ExportPaths                 *ExportPaths `json:"export_paths,omitempty" yaml:"export_paths,omitempty"`
}
