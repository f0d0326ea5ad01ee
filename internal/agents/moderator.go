// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// ModeratorAgent revises the article based on critique feedback.
type ModeratorAgent struct {
	Backend llm.Backend
}

// Run overwrites ArticleText with the revised version and increments the
// revision counter by exactly one.
func (a *ModeratorAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ArticleText == "" {
		return &types.MissingFieldError{Stage: "revise", Field: "article_text"}
	}

	prompt := fmt.Sprintf(moderatorPromptTemplate,
		state.ArticleText,
		state.ResearchText,
		bulletList(state.CritiqueFeedback),
		state.RevisionCount+1,
	)
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "revise", Err: err}
	}

	state.ArticleText = response
	state.RevisionCount++
	return nil
}
