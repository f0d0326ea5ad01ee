// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow contains the article-generation state machine: the
// orchestrator that sequences the stages, the router that drives the bounded
// critique/revise loop, and the observer surface for execution events.
package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/article-engine/internal/agents"
	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Exporter is the export collaborator. It consumes an assembled output and
// produces files on disk; failures wrap as ExportError.
type Exporter interface {
	WritePackage(ctx context.Context, output *types.FinalOutput, dir string) (*types.ExportPaths, error)
}

// Orchestrator runs one article-generation workflow at a time. A single
// ArticleState is owned by the orchestrator for the duration of a run and
// passed to each stage for in-place mutation; stages execute strictly
// sequentially.
type Orchestrator struct {
	research  *agents.ResearchAgent
	draft     *agents.DraftAgent
	critique  *agents.CritiqueAgent
	moderator *agents.ModeratorAgent
	image     *agents.ImageAgent
	post      *agents.PostAgent
	seo       *agents.SEOAgent

	maxRevisions int
	exportCfg    types.ExportConfig

	// Observer receives execution events. Defaults to NopObserver.
	Observer Observer

	// Exporter, when set and exporting is enabled, writes the article
	// package after assembly. An export failure degrades the output's
	// ExportStatus instead of failing the run.
	Exporter Exporter
}

// New builds an orchestrator. backend serves the text stages, creative serves
// image-prompt generation, and imageBackend produces the hosted image.
func New(backend, creative llm.Backend, imageBackend llm.ImageBackend, cfg types.ArticleConfig) *Orchestrator {
	cfg = cfg.WithDefaults()
	return &Orchestrator{
		research:     &agents.ResearchAgent{Backend: backend},
		draft:        &agents.DraftAgent{Backend: backend},
		critique:     &agents.CritiqueAgent{Backend: backend},
		moderator:    &agents.ModeratorAgent{Backend: backend},
		image:        &agents.ImageAgent{Backend: creative, ImageBackend: imageBackend},
		post:         &agents.PostAgent{Backend: backend},
		seo:          &agents.SEOAgent{Backend: backend},
		maxRevisions: cfg.Workflow.MaxRevisions,
		exportCfg:    cfg.Export,
		Observer:     NopObserver{},
	}
}

// logCall appends a CallRecord for the upcoming stage invocation and notifies
// the observer.
func (o *Orchestrator) logCall(state *types.ArticleState, agentName, callType string) {
	rec := state.LogCall(agentName, callType)
	o.Observer.StageCalled(rec)
}

// Run generates a complete article for topic. Progress lines go to w. Any
// fatal stage error aborts the run with no partial output; image and export
// failures degrade the corresponding fields instead.
func (o *Orchestrator) Run(ctx context.Context, topic string, w io.Writer) (*types.FinalOutput, error) {
	if topic == "" {
		return nil, &types.MissingFieldError{Stage: "workflow", Field: "topic"}
	}

	state := types.NewArticleState(topic, o.maxRevisions)

	fmt.Fprintf(w, "Generating article: %s\n", topic)

	fmt.Fprintln(w, "researching topic")
	o.logCall(state, "ResearchAgent", "initial")
	if err := o.research.Run(ctx, state); err != nil {
		return nil, err
	}

	fmt.Fprintln(w, "drafting article")
	o.logCall(state, "DraftAgent", "initial")
	if err := o.draft.Run(ctx, state); err != nil {
		return nil, err
	}

	if err := o.reviseLoop(ctx, state, w); err != nil {
		return nil, err
	}

	if err := o.supportingContent(ctx, state, w); err != nil {
		return nil, err
	}

	output := assemble(state)
	o.export(ctx, output, w)

	fmt.Fprintln(w, "article generation complete")
	return output, nil
}

// reviseLoop alternates critique evaluations with revision or supplementary
// research until the router decides to generate. The router's revision bound
// caps the loop at maxRevisions+1 critique evaluations.
func (o *Orchestrator) reviseLoop(ctx context.Context, state *types.ArticleState, w io.Writer) error {
	for {
		fmt.Fprintf(w, "critique evaluation %d/%d\n", state.RevisionCount+1, state.MaxRevisions+1)
		o.logCall(state, "CritiqueAgent", fmt.Sprintf("revision_%d", state.RevisionCount+1))
		if err := o.critique.Run(ctx, state); err != nil {
			return err
		}

		decision := Route(state)
		o.Observer.RouteDecided("critique", decision, snapshot(state))

		switch decision {
		case DecisionGenerate:
			if state.CritiquePassed {
				fmt.Fprintln(w, "article passed critique")
			} else {
				fmt.Fprintf(w, "max revisions (%d) reached, proceeding with current version\n", state.MaxRevisions)
			}
			return nil

		case DecisionAdditionalResearch:
			fmt.Fprintln(w, "conducting additional research")
			state.AdditionalResearchCallCount++
			o.logCall(state, "ResearchAgent", fmt.Sprintf("additional_%d", state.AdditionalResearchCallCount))
			if err := o.research.RunAdditional(ctx, state); err != nil {
				return err
			}
			// Supplementary research always feeds a revision attempt.
			if err := o.revise(ctx, state, w); err != nil {
				return err
			}

		case DecisionRevise:
			if err := o.revise(ctx, state, w); err != nil {
				return err
			}
		}
	}
}

func (o *Orchestrator) revise(ctx context.Context, state *types.ArticleState, w io.Writer) error {
	fmt.Fprintf(w, "revising article (revision %d)\n", state.RevisionCount+1)
	o.logCall(state, "ModeratorAgent", fmt.Sprintf("revision_%d", state.RevisionCount+1))
	return o.moderator.Run(ctx, state)
}

// supportingContent runs the image, post, and SEO stages in sequence. The
// stages are independent but kept sequential so call IDs stay in stage order.
func (o *Orchestrator) supportingContent(ctx context.Context, state *types.ArticleState, w io.Writer) error {
	fmt.Fprintln(w, "generating header image")
	o.logCall(state, "ImageAgent", "final")
	if err := o.image.Run(ctx, state); err != nil {
		return err
	}

	fmt.Fprintln(w, "writing promotional post")
	o.logCall(state, "PostAgent", "final")
	if err := o.post.Run(ctx, state); err != nil {
		return err
	}

	fmt.Fprintln(w, "generating hashtags and keywords")
	o.logCall(state, "SEOAgent", "final")
	return o.seo.Run(ctx, state)
}

// assemble builds the final output record from a completed state.
func assemble(state *types.ArticleState) *types.FinalOutput {
	return &types.FinalOutput{
		Topic:                       state.Topic,
		Article:                     state.ArticleText,
		ResearchData:                state.ResearchText,
		CritiqueFeedback:            state.CritiqueFeedback,
		CritiquePassed:              state.CritiquePassed,
		ImagePrompt:                 state.ImagePrompt,
		ImageURL:                    state.ImageURL,
		LinkedInPost:                state.LinkedInPost,
		Hashtags:                    state.Hashtags,
		SEOKeywords:                 state.SEOKeywords,
		RevisionsMade:               state.RevisionCount,
		ResearchCallCount:           state.ResearchCallCount,
		AdditionalResearchCallCount: state.AdditionalResearchCallCount,
		CallLog:                     state.CallLog,
		ExportStatus:                types.ExportSkipped,
	}
}

// export hands the output to the export collaborator when configured. The
// already-computed content is never discarded: a failure marks the output's
// export status and logs the error.
func (o *Orchestrator) export(ctx context.Context, output *types.FinalOutput, w io.Writer) {
	if o.Exporter == nil || !o.exportCfg.Enabled() {
		return
	}

	fmt.Fprintf(w, "exporting article package to %s\n", o.exportCfg.OutputDir)
	paths, err := o.Exporter.WritePackage(ctx, output, o.exportCfg.OutputDir)
	if err != nil {
		fmt.Fprintf(w, "export failed: %v\n", err)
		output.ExportStatus = types.ExportFailed
		return
	}
	output.ExportStatus = types.ExportOK
	output.ExportPaths = paths
}
