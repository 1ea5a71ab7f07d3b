package buildsync

import (
	"strings"

	"github.com/pipesight/pipesight-api/pkg/contracts"
)

// runMatchesSelectors returns true when any selector includes the run; a build without
// selectors includes every run. Tag selectors require the run's head ref to be a known
// tag name and to satisfy the pattern, where a trailing * matches on prefix.
func runMatchesSelectors(run contracts.WorkflowRun, selectors []contracts.Selector, tagNames []string) bool {

	if len(selectors) == 0 {
		return true
	}

	for _, selector := range selectors {
		switch selector.Type {
		case contracts.SelectorTypeBranch:
			if run.HeadBranch == selector.Pattern {
				return true
			}
		case contracts.SelectorTypeWorkflow:
			if run.Name == selector.Pattern {
				return true
			}
		case contracts.SelectorTypeTag:
			if isKnownTag(run.HeadBranch, tagNames) && tagPatternMatches(run.HeadBranch, selector.Pattern) {
				return true
			}
		}
	}

	return false
}

func isKnownTag(headRef string, tagNames []string) bool {
	for _, tagName := range tagNames {
		if headRef == tagName {
			return true
		}
	}
	return false
}

func tagPatternMatches(tagName, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(tagName, strings.TrimSuffix(pattern, "*"))
	}
	return tagName == pattern
}
