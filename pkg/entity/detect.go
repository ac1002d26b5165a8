package entity

import (
	"strings"

	"pomelo/pkg/common"
)

// Detect scans the question for known entity mentions. Surface forms are
// tested by case-insensitive substring containment in priority order
// (longest first), and each canonical name is emitted at most once even
// when several of its aliases match. An unrecognizable question, including
// the empty string, yields an empty result, never an error.
func (c *Catalog) Detect(text string) []common.Mention {
	textLower := strings.ToLower(text)

	seen := make(map[string]struct{})
	var mentions []common.Mention

	for _, surface := range c.surfaces {
		if !strings.Contains(textLower, surface) {
			continue
		}
		name := c.canonical[surface]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		mentions = append(mentions, common.Mention{
			Name:    name,
			Kind:    c.classify(name),
			Matched: surface,
		})
	}

	return mentions
}

// classify infers the kind of a canonical name: person when any of its
// tokens is a known person surname, organization otherwise.
func (c *Catalog) classify(name string) common.Kind {
	for _, token := range strings.Fields(strings.ToLower(name)) {
		if _, ok := c.surnames[token]; ok {
			return common.KindPerson
		}
	}
	return common.KindOrganization
}
