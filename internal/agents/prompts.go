// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"fmt"
	"strings"
)

// Prompt templates for each stage. The critique and SEO templates pin the
// response markers ("PASS: YES", "ISSUES:", "HASHTAGS:", "KEYWORDS:") that the
// parsers in parse.go rely on.

const researchPromptTemplate = `You are a research assistant preparing material for a LinkedIn article.

Topic: %s

Gather comprehensive research on this topic: key facts and statistics, current
industry trends, notable expert perspectives, concrete examples and case
studies, and recent developments. Organize the research into clearly labeled
sections. Be specific and cite the kind of source each point would come from.`

const additionalResearchPromptTemplate = `You are a research assistant supplementing earlier research for a LinkedIn article.

Topic: %s

A quality review raised the following issues with the current draft:
%s

Provide targeted supplementary research that addresses these issues. Focus on
filling the identified gaps: missing data, sources, recent developments, or
perspectives. Do not repeat research that would already be covered by a
general overview of the topic.`

const draftPromptTemplate = `You are a professional writer drafting a LinkedIn article.

Topic: %s

Research material:
%s

Write a complete LinkedIn article (800-1200 words) grounded in the research
above. Use an engaging opening hook, clear section headings in Markdown, and a
closing call to action. Maintain a professional but conversational tone.`

const critiquePromptTemplate = `You are an editorial reviewer evaluating a LinkedIn article draft.

Topic: %s

Article:
%s

Research material the article should draw on:
%s

Revision %d of at most %d has been applied so far.

Evaluate the article against these criteria: factual grounding in the research,
structure and readability, engagement for a LinkedIn audience, and completeness.

Respond in exactly one of two formats.
If the article meets the bar, respond with the single line:
PASS: YES
If it does not, respond with:
PASS: NO
ISSUES:
- <first issue>
- <second issue>
(one line per issue)`

const moderatorPromptTemplate = `You are an editor revising a LinkedIn article based on review feedback.

Current article:
%s

Research material:
%s

Review feedback to address:
%s

This is revision %d. Rewrite the article to resolve every feedback point while
preserving what already works. Return only the full revised article.`

const imagePromptTemplate = `You are an art director creating a text-to-image prompt for a LinkedIn article header image.

Topic: %s

Article summary:
%s

Write a single vivid image-generation prompt (no more than 80 words) for a
professional, modern header image. Describe composition, style, and mood. Do
not include any text or lettering in the image description.`

const postPromptTemplate = `You are a social media manager writing a LinkedIn post that promotes a new article.

Article summary:
%s

Write a short promotional post (under 150 words) with a strong hook, one or
two key takeaways, and an invitation to read the full article. Do not include
hashtags; they are generated separately.`

const seoPromptTemplate = `You are an SEO specialist generating discovery metadata for a LinkedIn article.

Topic: %s

Article excerpt:
%s

Respond with exactly two lines:
HASHTAGS: <5-8 hashtags, comma-separated, each starting with #>
KEYWORDS: <8-12 SEO keywords or phrases, comma-separated>`

// snippet returns at most n characters of s, marking truncation.
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// bulletList renders feedback issues as "- issue" lines.
func bulletList(issues []string) string {
	var b strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	return strings.TrimRight(b.String(), "\n")
}
