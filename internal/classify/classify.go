// Package classify decides whether an article belongs in the feed at all
// and which subject labels it gets. Both checks are coarse keyword
// containment over the case-folded title+description; false positives are
// acceptable, misses are not.
package classify

import (
	"strings"

	"github.com/upscsamachar/newsfeed/internal/topics"
)

// Anchor terms keep clearly in-domain stories that use none of the
// taxonomy keywords.
const (
	anchorCountry    = "india"
	anchorGovernance = "government"
)

// containsAny reports whether any keyword occurs as a substring of text.
// text must already be lower-cased.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Relevant reports whether an article is in-domain: it must contain at
// least one taxonomy keyword or one of the anchor terms.
func Relevant(title, description string, tax topics.Taxonomy) bool {
	text := strings.ToLower(title + " " + description)
	if strings.Contains(text, anchorCountry) || strings.Contains(text, anchorGovernance) {
		return true
	}
	return containsAny(text, tax.AllKeywords())
}

// Assign returns up to max topic labels in taxonomy order. An article that
// matches nothing gets the fallback label, never an empty list.
func Assign(title, description string, tax topics.Taxonomy, max int) []string {
	text := strings.ToLower(title + " " + description)

	var labels []string
	for _, topic := range tax.Topics {
		if len(labels) >= max {
			break
		}
		if containsAny(text, topic.Keywords) {
			labels = append(labels, topic.Name)
		}
	}
	if len(labels) == 0 {
		labels = []string{topics.FallbackLabel}
	}
	return labels
}
