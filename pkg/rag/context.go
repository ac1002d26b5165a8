// Package rag renders structured graph facts into the natural-language
// grounding context handed to the answer generation stage.
package rag

import (
	"fmt"
	"strings"

	"pomelo/pkg/common"
	"pomelo/pkg/logger"

	"github.com/pkoukk/tiktoken-go"
)

// NoContextSentinel is returned by Render when there are no facts to ground
// an answer in. The value is a public contract: the pipeline compares the
// rendered context against it verbatim to decide whether the generation
// stage should run at all.
const NoContextSentinel = "No relevant information found in the knowledge graph."

// factTemplates maps each known relation to its sentence form. Relations
// absent from the table render as "<source> <relation> <target>".
var factTemplates = map[common.Relation]string{
	common.RelationFounded:      "%s founded %s",
	common.RelationCoFounded:    "%s co-founded %s",
	common.RelationLeads:        "%s leads %s",
	common.RelationWorksAt:      "%s works at %s",
	common.RelationInvestedIn:   "%s invested in %s",
	common.RelationAcquired:     "%s acquired %s",
	common.RelationPartnersWith: "%s partners with %s",
	common.RelationSupplies:     "%s supplies to %s",
}

// FormatFact converts a single fact into a natural-language sentence.
// Attribute fragments are appended after the templated clause in a fixed
// priority order: year, amount, role (only for "leads"), product.
func FormatFact(fact common.Fact) string {
	template, ok := factTemplates[fact.Relation]
	var sentence string
	if ok {
		sentence = fmt.Sprintf(template, fact.SourceName, fact.TargetName)
	} else {
		sentence = fmt.Sprintf("%s %s %s", fact.SourceName, fact.Relation, fact.TargetName)
	}

	var fragments []string
	if fact.Attrs.Year != 0 {
		fragments = append(fragments, fmt.Sprintf("in %d", fact.Attrs.Year))
	}
	if fact.Attrs.Amount != "" {
		fragments = append(fragments, fmt.Sprintf("(%s)", fact.Attrs.Amount))
	}
	if fact.Attrs.Role != "" && fact.Relation == common.RelationLeads {
		fragments = append(fragments, fmt.Sprintf("as %s", fact.Attrs.Role))
	}
	if fact.Attrs.Product != "" {
		fragments = append(fragments, fmt.Sprintf("(%s)", fact.Attrs.Product))
	}

	if len(fragments) > 0 {
		sentence += " " + strings.Join(fragments, " ")
	}
	return sentence
}

// Builder assembles grounding contexts from deduplicated facts. An optional
// token budget drops trailing facts until the rendered context fits, so
// oversized fact sets cannot blow the generation model's window.
//
// A Builder should be created using NewBuilder.
type Builder struct {
	tokenEncoder     string
	maxContextTokens int
}

// NewBuilderParams configures a Builder.
//
// TokenEncoder names a tiktoken encoding (e.g. "o200k_base") and
// MaxContextTokens caps the rendered context size. Leave either at its zero
// value to disable the budget.
type NewBuilderParams struct {
	TokenEncoder     string
	MaxContextTokens int
}

// NewBuilder creates a Builder with the provided parameters.
func NewBuilder(params NewBuilderParams) *Builder {
	return &Builder{
		tokenEncoder:     params.TokenEncoder,
		maxContextTokens: params.MaxContextTokens,
	}
}

// Render builds the grounding context: a header naming the detected
// entities (when any), then one sentence per fact in caller order. Empty
// input yields NoContextSentinel.
func (b *Builder) Render(facts []common.Fact, mentions []common.Mention) string {
	if len(facts) == 0 {
		return NoContextSentinel
	}

	context := render(facts, mentions)
	if b.tokenEncoder == "" || b.maxContextTokens <= 0 {
		return context
	}

	enc, err := tiktoken.GetEncoding(b.tokenEncoder)
	if err != nil {
		logger.Warn("Unknown token encoding, skipping context budget", "encoding", b.tokenEncoder, "err", err)
		return context
	}

	for len(facts) > 1 && len(enc.Encode(context, nil, nil)) > b.maxContextTokens {
		facts = facts[:len(facts)-1]
		context = render(facts, mentions)
	}
	return context
}

func render(facts []common.Fact, mentions []common.Mention) string {
	var parts []string

	if len(mentions) > 0 {
		names := make([]string, 0, len(mentions))
		for _, m := range mentions {
			names = append(names, m.Name)
		}
		parts = append(parts, fmt.Sprintf("Information about: %s", strings.Join(names, ", ")))
		parts = append(parts, "")
	}

	parts = append(parts, "Known facts:")
	for _, fact := range facts {
		parts = append(parts, "- "+FormatFact(fact))
	}

	return strings.Join(parts, "\n")
}
