package entity

import (
	"strings"

	"pomelo/pkg/common"
)

// relationKeywords maps question phrasing to the relation it usually asks
// about. Ordered so hint output is deterministic.
var relationKeywords = []struct {
	relation common.Relation
	keywords []string
}{
	{common.RelationFounded, []string{"found", "start", "creat", "establish"}},
	{common.RelationLeads, []string{"lead", "run", "ceo", "head", "manage"}},
	{common.RelationWorksAt, []string{"work", "employ"}},
	{common.RelationInvestedIn, []string{"invest", "fund", "money"}},
	{common.RelationAcquired, []string{"acquir", "bought", "purchase"}},
	{common.RelationPartnersWith, []string{"partner", "collaborat", "work with"}},
	{common.RelationSupplies, []string{"supply", "provide", "sell"}},
}

// RelationHints guesses which relation labels a question is asking about by
// keyword stems. The hints are diagnostic only; retrieval never filters on
// them.
func RelationHints(text string) []common.Relation {
	textLower := strings.ToLower(text)

	var hints []common.Relation
	for _, entry := range relationKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(textLower, keyword) {
				hints = append(hints, entry.relation)
				break
			}
		}
	}
	return hints
}
