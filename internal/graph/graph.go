// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph renders the workflow topology, optionally annotated with the
// call counts of a recorded run, as Graphviz DOT or a standalone HTML page.
package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Node kinds drive the coloring of the rendered graph.
const (
	kindInitial     = "initial"
	kindConditional = "conditional"
	kindRevision    = "revision"
	kindFinal       = "final"
)

// node is one workflow stage in the rendered topology.
type node struct {
	Name string
	Kind string
}

// edge is one transition; Label marks the critique routing edges.
type edge struct {
	From, To, Label string
}

// nodes and edges describe the orchestrator's state machine, including the
// three routes out of critique.
var nodes = []node{
	{"research", kindInitial},
	{"draft", kindRevision},
	{"critique", kindRevision},
	{"revise", kindRevision},
	{"additional_research", kindConditional},
	{"image", kindFinal},
	{"post", kindFinal},
	{"seo", kindFinal},
	{"assemble", kindFinal},
}

var edges = []edge{
	{"research", "draft", ""},
	{"draft", "critique", ""},
	{"critique", "revise", "revise"},
	{"critique", "additional_research", "needs research"},
	{"critique", "image", "pass"},
	{"additional_research", "revise", ""},
	{"revise", "critique", ""},
	{"image", "post", ""},
	{"post", "seo", ""},
	{"seo", "assemble", ""},
}

var kindColors = map[string]string{
	kindInitial:     "#4CAF50",
	kindConditional: "#FF9800",
	kindRevision:    "#2196F3",
	kindFinal:       "#9C27B0",
}

// CallCounts maps each node name to the number of times a recorded run
// invoked it.
type CallCounts map[string]int

// CountCalls tallies per-node invocations from a run's call log.
func CountCalls(log []types.CallRecord) CallCounts {
	counts := make(CallCounts)
	for _, rec := range log {
		counts[nodeForCall(rec)]++
	}
	return counts
}

// nodeForCall maps an agent call record onto its topology node.
func nodeForCall(rec types.CallRecord) string {
	switch rec.AgentName {
	case "ResearchAgent":
		if strings.HasPrefix(rec.CallType, "additional") {
			return "additional_research"
		}
		return "research"
	case "DraftAgent":
		return "draft"
	case "CritiqueAgent":
		return "critique"
	case "ModeratorAgent":
		return "revise"
	case "ImageAgent":
		return "image"
	case "PostAgent":
		return "post"
	case "SEOAgent":
		return "seo"
	default:
		return strings.ToLower(rec.AgentName)
	}
}

// WriteDOT writes the topology in Graphviz DOT format. A nil counts renders
// the static workflow; otherwise node labels carry call counts.
func WriteDOT(w io.Writer, counts CallCounts) error {
	var b strings.Builder
	b.WriteString("digraph workflow {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box, style=filled, fontcolor=white];\n")

	for _, n := range nodes {
		label := n.Name
		if counts != nil {
			// \n is a Graphviz line break inside the label.
			label = fmt.Sprintf(`%s\ncalls: %d`, n.Name, counts[n.Name])
		}
		fmt.Fprintf(&b, "  %q [label=\"%s\", fillcolor=%q];\n", n.Name, label, kindColors[n.Kind])
	}
	for _, e := range edges {
		if e.Label != "" {
			fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
		} else {
			fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteHTML writes a self-contained HTML page describing the topology and,
// when counts is non-nil, the per-node execution counts.
func WriteHTML(w io.Writer, counts CallCounts) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>article-engine workflow</title>\n")
	b.WriteString("<style>body{background:#222;color:#eee;font-family:monospace;padding:2rem}table{border-collapse:collapse;margin-bottom:2rem}td,th{border:1px solid #555;padding:.3rem .8rem;text-align:left}.swatch{display:inline-block;width:.8rem;height:.8rem;margin-right:.4rem}</style>\n")
	b.WriteString("</head>\n<body>\n<h1>Workflow graph</h1>\n")

	b.WriteString("<h2>Nodes</h2>\n<table>\n<tr><th>Node</th><th>Kind</th>")
	if counts != nil {
		b.WriteString("<th>Calls</th>")
	}
	b.WriteString("</tr>\n")
	for _, n := range nodes {
		fmt.Fprintf(&b, "<tr><td><span class=\"swatch\" style=\"background:%s\"></span>%s</td><td>%s</td>", kindColors[n.Kind], n.Name, n.Kind)
		if counts != nil {
			fmt.Fprintf(&b, "<td>%d</td>", counts[n.Name])
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")

	b.WriteString("<h2>Edges</h2>\n<table>\n<tr><th>From</th><th>To</th><th>Condition</th></tr>\n")
	for _, e := range edges {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n", e.From, e.To, e.Label)
	}
	b.WriteString("</table>\n</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}
