// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// DraftAgent writes the first full article from the research material.
type DraftAgent struct {
	Backend llm.Backend
}

// Run overwrites ArticleText with a fresh draft. It requires non-empty
// research text.
func (a *DraftAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ResearchText == "" {
		return &types.MissingFieldError{Stage: "draft", Field: "research_text"}
	}

	prompt := fmt.Sprintf(draftPromptTemplate, state.Topic, state.ResearchText)
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "draft", Err: err}
	}

	state.ArticleText = response
	return nil
}
