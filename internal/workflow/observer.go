// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"fmt"
	"io"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Snapshot is the state summary attached to a routing decision event.
type Snapshot struct {
	CritiquePassed              bool
	RevisionCount               int
	MaxRevisions                int
	ResearchCallCount           int
	AdditionalResearchCallCount int
	ResearchChars               int
	FeedbackCount               int
}

// snapshot captures the routing-relevant state fields.
func snapshot(state *types.ArticleState) Snapshot {
	return Snapshot{
		CritiquePassed:              state.CritiquePassed,
		RevisionCount:               state.RevisionCount,
		MaxRevisions:                state.MaxRevisions,
		ResearchCallCount:           state.ResearchCallCount,
		AdditionalResearchCallCount: state.AdditionalResearchCallCount,
		ResearchChars:               len(state.ResearchText),
		FeedbackCount:               len(state.CritiqueFeedback),
	}
}

// Observer receives execution events: one StageCalled per stage invocation
// and one RouteDecided per routing decision. Observers never feed back into
// control flow.
type Observer interface {
	StageCalled(rec types.CallRecord)
	RouteDecided(from string, decision Decision, snap Snapshot)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) StageCalled(types.CallRecord)             {}
func (NopObserver) RouteDecided(string, Decision, Snapshot) {}

// WriterObserver logs events as plain lines to an io.Writer.
type WriterObserver struct {
	W io.Writer
}

func (o WriterObserver) StageCalled(rec types.CallRecord) {
	fmt.Fprintf(o.W, "call #%d: %s (%s) revision=%d\n",
		rec.CallID, rec.AgentName, rec.CallType, rec.RevisionCount)
}

func (o WriterObserver) RouteDecided(from string, decision Decision, snap Snapshot) {
	fmt.Fprintf(o.W, "route from %s: %s (passed=%t revisions=%d/%d research=%d chars, %d issues)\n",
		from, decision, snap.CritiquePassed, snap.RevisionCount, snap.MaxRevisions,
		snap.ResearchChars, snap.FeedbackCount)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) StageCalled(rec types.CallRecord) {
	for _, o := range m {
		o.StageCalled(rec)
	}
}

func (m MultiObserver) RouteDecided(from string, decision Decision, snap Snapshot) {
	for _, o := range m {
		o.RouteDecided(from, decision, snap)
	}
}
