// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agents

import "strings"

// Response markers. These are a compatibility contract with the prompt
// templates; the parsing below is deliberately isolated here so the
// text-matching rules stay unit-testable on their own.
const (
	passMarker     = "PASS: YES"
	issuesMarker   = "ISSUES:"
	hashtagsMarker = "HASHTAGS:"
	keywordsMarker = "KEYWORDS:"
)

// parseCritique classifies a critique response. PASS requires the literal
// "PASS: YES" marker and the absence of "ISSUES:"; anything else is a FAIL.
// On FAIL, issues are the non-blank lines after the first "ISSUES:" marker,
// trimmed of a leading "- " and surrounding whitespace. A FAIL response with
// no "ISSUES:" marker yields a nil issue list.
func parseCritique(response string) (passed bool, issues []string) {
	if strings.Contains(response, passMarker) && !strings.Contains(response, issuesMarker) {
		return true, nil
	}
	_, after, found := strings.Cut(response, issuesMarker)
	if !found {
		return false, nil
	}
	for _, line := range strings.Split(after, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		issues = append(issues, line)
	}
	return false, issues
}

// parseSEO extracts hashtags and keywords from the first "HASHTAGS:" and
// "KEYWORDS:" lines of a response. A missing marker yields a nil slice.
func parseSEO(response string) (hashtags, keywords []string) {
	return markerLine(response, hashtagsMarker), markerLine(response, keywordsMarker)
}

// markerLine returns the comma-separated, trimmed values on the remainder of
// the first line containing marker.
func markerLine(response, marker string) []string {
	_, after, found := strings.Cut(response, marker)
	if !found {
		return nil
	}
	line, _, _ := strings.Cut(after, "\n")
	var values []string
	for _, v := range strings.Split(line, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
