// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// seoExcerptChars bounds the article excerpt included in the SEO prompt.
const seoExcerptChars = 800

// SEOAgent generates hashtags and SEO keywords for the article.
type SEOAgent struct {
	Backend llm.Backend
}

// Run writes Hashtags and SEOKeywords. Missing response markers yield empty
// slices rather than errors.
func (a *SEOAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ArticleText == "" {
		return &types.MissingFieldError{Stage: "seo", Field: "article_text"}
	}

	prompt := fmt.Sprintf(seoPromptTemplate, state.Topic, snippet(state.ArticleText, seoExcerptChars))
	response, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "seo", Err: err}
	}

	state.Hashtags, state.SEOKeywords = parseSEO(response)
	return nil
}
