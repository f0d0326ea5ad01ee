// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/article-engine/pkg/types"
)

// stageBackend routes mock responses by recognizing the stage prompt
// preambles. Critique responses are consumed in order, with the last one
// repeated.
type stageBackend struct {
	research   string
	additional string
	draft      string
	critiques  []string

	critiqueIdx int
	revisionNum int
	draftErr    error
}

func (b *stageBackend) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.HasPrefix(prompt, "You are a research assistant preparing"):
		return b.research, nil
	case strings.HasPrefix(prompt, "You are a research assistant supplementing"):
		return b.additional, nil
	case strings.HasPrefix(prompt, "You are a professional writer"):
		if b.draftErr != nil {
			return "", b.draftErr
		}
		return b.draft, nil
	case strings.HasPrefix(prompt, "You are an editorial reviewer"):
		i := b.critiqueIdx
		if i >= len(b.critiques) {
			i = len(b.critiques) - 1
		}
		b.critiqueIdx++
		return b.critiques[i], nil
	case strings.HasPrefix(prompt, "You are an editor revising"):
		b.revisionNum++
		return fmt.Sprintf("revision %d", b.revisionNum), nil
	case strings.HasPrefix(prompt, "You are an art director"):
		return "image prompt", nil
	case strings.HasPrefix(prompt, "You are a social media manager"):
		return "promo post", nil
	case strings.HasPrefix(prompt, "You are an SEO specialist"):
		return "HASHTAGS: #a, #b\nKEYWORDS: k1, k2", nil
	default:
		return "", fmt.Errorf("unrecognized prompt: %.60q", prompt)
	}
}

type fixedImageBackend struct {
	url string
	err error
}

func (b *fixedImageBackend) GenerateImage(_ context.Context, _ string) (string, error) {
	return b.url, b.err
}

func testOrchestrator(backend *stageBackend, img *fixedImageBackend, maxRevisions int) *Orchestrator {
	cfg := types.ArticleConfig{
		Workflow: types.WorkflowConfig{MaxRevisions: maxRevisions},
	}
	return New(backend, backend, img, cfg)
}

func callTypes(log []types.CallRecord) []string {
	var out []string
	for _, rec := range log {
		out = append(out, rec.AgentName+"/"+rec.CallType)
	}
	return out
}

func assertCallIDsSequential(t *testing.T, log []types.CallRecord) {
	t.Helper()
	for i, rec := range log {
		if rec.CallID != i+1 {
			t.Errorf("call %d has id %d, want %d", i, rec.CallID, i+1)
		}
	}
}

func TestRunPassesFirstCritique(t *testing.T) {
	backend := &stageBackend{
		research:  strings.Repeat("r", 2500),
		draft:     "the article",
		critiques: []string{"PASS: YES"},
	}
	orch := testOrchestrator(backend, &fixedImageBackend{url: "https://img/1"}, 3)

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if output.RevisionsMade != 0 {
		t.Errorf("RevisionsMade = %d, want 0", output.RevisionsMade)
	}
	if !output.CritiquePassed {
		t.Error("CritiquePassed = false")
	}
	if output.Article != "the article" {
		t.Errorf("Article = %q", output.Article)
	}
	if output.ImageURL != "https://img/1" {
		t.Errorf("ImageURL = %q", output.ImageURL)
	}
	if output.LinkedInPost != "promo post" {
		t.Errorf("LinkedInPost = %q", output.LinkedInPost)
	}
	if len(output.Hashtags) != 2 || len(output.SEOKeywords) != 2 {
		t.Errorf("Hashtags = %q, SEOKeywords = %q", output.Hashtags, output.SEOKeywords)
	}
	if output.ExportStatus != types.ExportSkipped {
		t.Errorf("ExportStatus = %q", output.ExportStatus)
	}

	want := []string{
		"ResearchAgent/initial",
		"DraftAgent/initial",
		"CritiqueAgent/revision_1",
		"ImageAgent/final",
		"PostAgent/final",
		"SEOAgent/final",
	}
	got := callTypes(output.CallLog)
	if len(got) != len(want) {
		t.Fatalf("call log = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
	assertCallIDsSequential(t, output.CallLog)
}

func TestRunExhaustsRevisionBudget(t *testing.T) {
	// Critique always fails with non-research feedback: three revisions, then
	// the fourth evaluation exits with the article as-is.
	backend := &stageBackend{
		research:  strings.Repeat("r", 2500),
		draft:     "draft",
		critiques: []string{"PASS: NO\nISSUES:\n- weak conclusion"},
	}
	orch := testOrchestrator(backend, &fixedImageBackend{url: "u"}, 3)

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if output.RevisionsMade != 3 {
		t.Errorf("RevisionsMade = %d, want 3", output.RevisionsMade)
	}
	if output.CritiquePassed {
		t.Error("CritiquePassed = true, want false on the exhausted path")
	}
	if output.Article != "revision 3" {
		t.Errorf("Article = %q, want exactly the last revision", output.Article)
	}
	// 4 critique evaluations: the bound is maxRevisions+1.
	critiques := 0
	for _, rec := range output.CallLog {
		if rec.AgentName == "CritiqueAgent" {
			critiques++
		}
	}
	if critiques != 4 {
		t.Errorf("critique evaluations = %d, want 4", critiques)
	}
	// research + draft + 4 critiques + 3 revisions + 3 final stages.
	if len(output.CallLog) != 12 {
		t.Errorf("call log length = %d, want 12", len(output.CallLog))
	}
	assertCallIDsSequential(t, output.CallLog)
}

func TestRunAdditionalResearchThenPass(t *testing.T) {
	backend := &stageBackend{
		research:   strings.Repeat("r", 2500),
		additional: "supplementary facts",
		draft:      "draft",
		critiques: []string{
			"PASS: NO\nISSUES:\n- insufficient research on adoption",
			"PASS: YES",
		},
	}
	orch := testOrchestrator(backend, &fixedImageBackend{url: "u"}, 3)

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if output.AdditionalResearchCallCount != 1 {
		t.Errorf("AdditionalResearchCallCount = %d, want 1", output.AdditionalResearchCallCount)
	}
	if output.RevisionsMade != 1 {
		t.Errorf("RevisionsMade = %d, want 1", output.RevisionsMade)
	}
	if got := strings.Count(output.ResearchData, types.ResearchSeparator); got != 1 {
		t.Errorf("separator count = %d, want 1", got)
	}
	if !strings.HasPrefix(output.ResearchData, strings.Repeat("r", 2500)) {
		t.Error("original research not preserved as prefix")
	}

	want := []string{
		"ResearchAgent/initial",
		"DraftAgent/initial",
		"CritiqueAgent/revision_1",
		"ResearchAgent/additional_1",
		"ModeratorAgent/revision_1",
		"CritiqueAgent/revision_2",
		"ImageAgent/final",
		"PostAgent/final",
		"SEOAgent/final",
	}
	got := callTypes(output.CallLog)
	if len(got) != len(want) {
		t.Fatalf("call log = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
	assertCallIDsSequential(t, output.CallLog)
}

func TestRunFatalStageErrorAbortsWithoutOutput(t *testing.T) {
	backend := &stageBackend{
		research: "r",
		draftErr: errors.New("service unavailable"),
	}
	orch := testOrchestrator(backend, &fixedImageBackend{url: "u"}, 3)

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if output != nil {
		t.Error("output must be nil on a fatal error")
	}
	var genErr *types.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if genErr.Stage != "draft" {
		t.Errorf("Stage = %q, want draft", genErr.Stage)
	}
}

func TestRunEmptyTopicRejected(t *testing.T) {
	orch := testOrchestrator(&stageBackend{}, &fixedImageBackend{}, 3)

	_, err := orch.Run(context.Background(), "", io.Discard)
	var missing *types.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingFieldError", err)
	}
}

func TestRunImageFailureDegrades(t *testing.T) {
	backend := &stageBackend{
		research:  strings.Repeat("r", 2500),
		draft:     "draft",
		critiques: []string{"PASS: YES"},
	}
	orch := testOrchestrator(backend, &fixedImageBackend{err: errors.New("image service down")}, 3)

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatalf("image failure must not abort the run: %v", err)
	}
	if !strings.HasPrefix(output.ImageURL, types.ImagePlaceholderPrefix) {
		t.Errorf("ImageURL = %q, want placeholder", output.ImageURL)
	}
	if output.LinkedInPost == "" {
		t.Error("post stage did not run after image degradation")
	}
}

// --- export degradation ---

type fakeExporter struct {
	paths *types.ExportPaths
	err   error
}

func (f *fakeExporter) WritePackage(_ context.Context, _ *types.FinalOutput, _ string) (*types.ExportPaths, error) {
	return f.paths, f.err
}

func exportingOrchestrator(exp Exporter) (*Orchestrator, *stageBackend) {
	backend := &stageBackend{
		research:  strings.Repeat("r", 2500),
		draft:     "draft",
		critiques: []string{"PASS: YES"},
	}
	cfg := types.ArticleConfig{
		Export: types.ExportConfig{ExportDocument: true},
	}
	orch := New(backend, backend, &fixedImageBackend{url: "u"}, cfg)
	orch.Exporter = exp
	return orch, backend
}

func TestRunExportFailureKeepsContent(t *testing.T) {
	orch, _ := exportingOrchestrator(&fakeExporter{err: &types.ExportError{Err: errors.New("disk full")}})

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatalf("export failure must not abort the run: %v", err)
	}
	if output.ExportStatus != types.ExportFailed {
		t.Errorf("ExportStatus = %q, want failed", output.ExportStatus)
	}
	if output.Article != "draft" {
		t.Error("article content was lost on export failure")
	}
}

func TestRunExportSuccessRecordsPaths(t *testing.T) {
	paths := &types.ExportPaths{Document: "out/a.html", Metadata: "out/a.yaml"}
	orch, _ := exportingOrchestrator(&fakeExporter{paths: paths})

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if output.ExportStatus != types.ExportOK {
		t.Errorf("ExportStatus = %q, want ok", output.ExportStatus)
	}
	if output.ExportPaths == nil || output.ExportPaths.Document != "out/a.html" {
		t.Errorf("ExportPaths = %+v", output.ExportPaths)
	}
}

// --- observer ---

type countingObserver struct {
	calls     int
	decisions []Decision
}

func (o *countingObserver) StageCalled(types.CallRecord) { o.calls++ }
func (o *countingObserver) RouteDecided(_ string, d Decision, _ Snapshot) {
	o.decisions = append(o.decisions, d)
}

func TestObserverReceivesAllEvents(t *testing.T) {
	backend := &stageBackend{
		research:  strings.Repeat("r", 2500),
		draft:     "draft",
		critiques: []string{"PASS: NO\nISSUES:\n- weak conclusion", "PASS: YES"},
	}
	orch := testOrchestrator(backend, &fixedImageBackend{url: "u"}, 3)
	obs := &countingObserver{}
	orch.Observer = obs

	output, err := orch.Run(context.Background(), "topic", io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if obs.calls != len(output.CallLog) {
		t.Errorf("observer saw %d stage calls, log has %d", obs.calls, len(output.CallLog))
	}
	wantDecisions := []Decision{DecisionRevise, DecisionGenerate}
	if len(obs.decisions) != len(wantDecisions) {
		t.Fatalf("decisions = %v, want %v", obs.decisions, wantDecisions)
	}
	for i := range wantDecisions {
		if obs.decisions[i] != wantDecisions[i] {
			t.Errorf("decision %d = %q, want %q", i, obs.decisions[i], wantDecisions[i])
		}
	}
}
