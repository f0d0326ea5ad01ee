// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import (
	"reflect"
	"testing"
)

func TestParseCritique(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantPassed bool
		wantIssues []string
	}{
		{
			name:       "pass marker alone",
			response:   "PASS: YES",
			wantPassed: true,
		},
		{
			name:       "pass marker with surrounding prose",
			response:   "The article is strong.\nPASS: YES\nWell done.",
			wantPassed: true,
		},
		{
			name:       "pass marker with issues section is a fail",
			response:   "PASS: YES\nISSUES:\n- contradiction in section 2",
			wantPassed: false,
			wantIssues: []string{"contradiction in section 2"},
		},
		{
			name:       "fail with issue list",
			response:   "PASS: NO\nISSUES:\n- A\n- B",
			wantPassed: false,
			wantIssues: []string{"A", "B"},
		},
		{
			name:       "fail strips bullets and blank lines",
			response:   "ISSUES:\n-  too vague \n\n- missing hook\n   \n",
			wantPassed: false,
			wantIssues: []string{"too vague", "missing hook"},
		},
		{
			name:       "fail without issues marker yields no feedback",
			response:   "This draft needs work.",
			wantPassed: false,
		},
		{
			name:       "empty response is a fail",
			response:   "",
			wantPassed: false,
		},
		{
			name:       "issue lines without bullet prefix survive",
			response:   "PASS: NO\nISSUES:\nweak conclusion\n- no data",
			wantPassed: false,
			wantIssues: []string{"weak conclusion", "no data"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, issues := parseCritique(tt.response)
			if passed != tt.wantPassed {
				t.Errorf("passed = %t, want %t", passed, tt.wantPassed)
			}
			if !reflect.DeepEqual(issues, tt.wantIssues) {
				t.Errorf("issues = %q, want %q", issues, tt.wantIssues)
			}
		})
	}
}

func TestParseSEO(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantHashtags []string
		wantKeywords []string
	}{
		{
			name:         "both markers",
			response:     "HASHTAGS: #ai, #golang, #dev\nKEYWORDS: ai agents, workflow, automation",
			wantHashtags: []string{"#ai", "#golang", "#dev"},
			wantKeywords: []string{"ai agents", "workflow", "automation"},
		},
		{
			name:         "missing keywords marker",
			response:     "HASHTAGS: #one",
			wantHashtags: []string{"#one"},
		},
		{
			name:         "missing hashtags marker",
			response:     "KEYWORDS: k1, k2",
			wantKeywords: []string{"k1", "k2"},
		},
		{
			name:     "no markers",
			response: "Sorry, I cannot help with that.",
		},
		{
			name:         "only first line after marker is used",
			response:     "HASHTAGS: #a, #b\nmore text, with, commas\nKEYWORDS: x",
			wantHashtags: []string{"#a", "#b"},
			wantKeywords: []string{"x"},
		},
		{
			name:         "whitespace and empty entries trimmed",
			response:     "HASHTAGS:  #a ,, #b , \nKEYWORDS: x ,  y ",
			wantHashtags: []string{"#a", "#b"},
			wantKeywords: []string{"x", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashtags, keywords := parseSEO(tt.response)
			if !reflect.DeepEqual(hashtags, tt.wantHashtags) {
				t.Errorf("hashtags = %q, want %q", hashtags, tt.wantHashtags)
			}
			if !reflect.DeepEqual(keywords, tt.wantKeywords) {
				t.Errorf("keywords = %q, want %q", keywords, tt.wantKeywords)
			}
		})
	}
}
