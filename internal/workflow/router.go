// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Decision is a routing label returned after each critique evaluation.
type Decision string

const (
	// DecisionGenerate exits the revision loop and proceeds to supporting
	// content, either because the critique passed or because the revision
	// budget is exhausted.
	DecisionGenerate Decision = "generate"

	// DecisionRevise routes to a revision attempt.
	DecisionRevise Decision = "revise"

	// DecisionAdditionalResearch routes to supplementary research followed by
	// a revision attempt.
	DecisionAdditionalResearch Decision = "additional_research"
)

// researchSufficientChars is the research-volume threshold below which a
// research-need signal in the feedback triggers supplementary research. A
// crude proxy for research depth.
const researchSufficientChars = 2000

// researchNeedTerms is the fixed vocabulary signaling that critique feedback
// calls for more research rather than a rewrite.
var researchNeedTerms = []string{
	"insufficient research", "lack of data", "missing sources", "outdated information",
	"need more research", "incomplete research", "limited sources", "more data needed",
	"insufficient data", "lack of sources", "missing research", "incomplete data",
	"limited research", "need more data", "insufficient sources", "more research needed",
	"recent developments", "current trends", "latest information", "up-to-date sources",
	"research integration", "utilize research", "use research data", "incorporate research",
}

// Route decides how to proceed after a critique evaluation. It is a pure
// function of the state and always evaluates in this order: pass, revision
// budget, research-need heuristic. The ordering guarantees termination: once
// supplementary research has run and the research volume is adequate, the
// heuristic falls through to revise, and the loop as a whole is bounded by
// MaxRevisions.
func Route(state *types.ArticleState) Decision {
	if state.CritiquePassed {
		return DecisionGenerate
	}
	if state.RevisionCount >= state.MaxRevisions {
		return DecisionGenerate
	}

	if needsMoreResearch(state.CritiqueFeedback) {
		noAdditionalYet := state.AdditionalResearchCallCount == 0
		researchThin := len(state.ResearchText) < researchSufficientChars
		if noAdditionalYet || researchThin {
			return DecisionAdditionalResearch
		}
	}
	return DecisionRevise
}

// needsMoreResearch reports whether any research-need term appears in the
// joined, lowercased feedback. An empty feedback list never matches.
func needsMoreResearch(feedback []string) bool {
	joined := strings.ToLower(strings.Join(feedback, "\n"))
	for _, term := range researchNeedTerms {
		if strings.Contains(joined, term) {
			return true
		}
	}
	return false
}
