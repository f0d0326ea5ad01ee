// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-engine/internal/llm"
	"github.com/pdiddy/article-engine/pkg/types"
)

// articleSummaryChars bounds the article excerpt included in the image prompt.
const articleSummaryChars = 500

// ImageAgent produces an image prompt via the text backend and a hosted image
// URL via the image backend. It is the only stage that degrades instead of
// failing: an image-generation error writes a sentinel into ImageURL and the
// run continues.
type ImageAgent struct {
	Backend      llm.Backend
	ImageBackend llm.ImageBackend
}

// Run writes ImagePrompt and ImageURL. A text-generation failure is fatal; an
// image-generation failure leaves a placeholder URL.
func (a *ImageAgent) Run(ctx context.Context, state *types.ArticleState) error {
	if state.ArticleText == "" {
		return &types.MissingFieldError{Stage: "image", Field: "article_text"}
	}

	prompt := fmt.Sprintf(imagePromptTemplate, state.Topic, snippet(state.ArticleText, articleSummaryChars))
	imagePrompt, err := a.Backend.Generate(ctx, prompt)
	if err != nil {
		return &types.GenerationError{Stage: "image", Err: err}
	}
	state.ImagePrompt = imagePrompt

	url, err := a.ImageBackend.GenerateImage(ctx, imagePrompt)
	if err != nil {
		state.ImageURL = fmt.Sprintf("%s%v]", types.ImagePlaceholderPrefix, err)
		return nil
	}
	state.ImageURL = url
	return nil
}
