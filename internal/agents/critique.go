// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// CritiqueAgent evaluates article quality and records pass/fail plus any
// extracted issues.
type CritiqueAgent struct {
	Backend llm.Backend
}

// Run replaces CritiquePassed and CritiqueFeedback from a fresh evaluation.
// Feedback is never accumulated across evaluations.
func (a *CritiqueAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ArticleText == "" {
		return &types.MissingFieldError{Stage: "critique", Field: "article_text"}
	}

	prompt := fmt.Sprintf(critiquePromptTemplate,
		state.Topic,
		state.ArticleText,
		state.ResearchText,
		state.RevisionCount,
		state.MaxRevisions,
	)
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "critique", Err: err}
	}

	passed, issues := parseCritique(response)
	state.CritiquePassed = passed
	state.CritiqueFeedback = issues
	return nil
}
