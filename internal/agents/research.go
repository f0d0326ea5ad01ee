// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agents implements the workflow stages. Each stage builds one
// templated prompt from the state, issues exactly one call to the
// text-generation backend, parses the response, and writes its designated
// state fields. Stages never retry; a failed call surfaces as a
// GenerationError for the orchestrator to handle.
package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// ResearchAgent gathers research material for the topic. It serves both the
// initial research stage and the supplementary research stage.
type ResearchAgent struct {
	Backend llm.Backend
}

// Run performs the initial research: it writes ResearchText and increments
// the research call counter.
func (a *ResearchAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.Topic == "" {
		return &types.MissingFieldError{Stage: "research", Field: "topic"}
	}

	prompt := fmt.Sprintf(researchPromptTemplate, state.Topic)
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "research", Err: err}
	}

	state.ResearchText = response
	state.ResearchCallCount++
	return nil
}

// RunAdditional performs supplementary research driven by critique feedback.
// The response is appended to ResearchText under the separator marker; prior
// research is never overwritten. An empty response appends nothing.
func (a *ResearchAgent) RunAdditional(ctx context.Context, state *types.ArticleState) error {
	if state.Topic == "" {
		return &types.MissingFieldError{Stage: "additional_research", Field: "topic"}
	}

	prompt := fmt.Sprintf(additionalResearchPromptTemplate, state.Topic, bulletList(state.CritiqueFeedback))
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "additional_research", Err: err}
	}

	if response != "" {
		state.ResearchText += "\n\n" + types.ResearchSeparator + "\n" + response
	}
	return nil
}
