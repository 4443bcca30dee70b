package topics

import (
	"regexp"
	"strings"
)

const (
	// MaxTopics is the most topics GitHub accepts per repository.
	MaxTopics = 8

	// MaxTopicLen is GitHub's per-topic character limit.
	MaxTopicLen = 50
)

// separatorRegex splits raw model output into candidate topics. Models
// return either one topic per line or a comma-separated list.
var separatorRegex = regexp.MustCompile(`[\n,]`)

// disallowedRegex matches everything a GitHub topic may not contain.
var disallowedRegex = regexp.MustCompile(`[^a-z0-9-]`)

// Normalize turns free-form model output into a list of valid GitHub
// topics: lowercase, hyphenated, alphanumeric-plus-hyphen only, each at
// most MaxTopicLen characters, at most MaxTopics entries, first-seen order
// preserved. Normalizing an already-normalized list is a no-op.
func Normalize(raw string) []string {
	var out []string
	for _, t := range separatorRegex.Split(raw, -1) {
		t = strings.TrimSpace(t)
		t = strings.ToLower(t)
		t = strings.ReplaceAll(t, " ", "-")
		t = strings.ReplaceAll(t, "_", "-")
		t = disallowedRegex.ReplaceAllString(t, "")
		if t == "" || len(t) > MaxTopicLen {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTopics {
			break
		}
	}
	return out
}
