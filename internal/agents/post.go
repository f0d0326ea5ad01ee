// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// postSummaryChars bounds the article excerpt included in the post prompt.
const postSummaryChars = 600

// PostAgent writes the promotional LinkedIn post for the article.
type PostAgent struct {
	Backend llm.Backend
}

// Run writes LinkedInPost, trimmed of surrounding whitespace.
func (a *PostAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ArticleText == "" {
		return &types.MissingFieldError{Stage: "post", Field: "article_text"}
	}

	prompt := fmt.Sprintf(postPromptTemplate, snippet(state.ArticleText, postSummaryChars))
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "post", Err: err}
	}

	state.LinkedInPost = strings.TrimSpace(response)
	return nil
}
