package mapping

import "github.com/custodia-labs/crhp-archive/internal/core/domain"

var (
	eventTopicAliases  = []string{"eventTopic", "event_topic", "topic"}
	descriptionAliases = []string{"description", "definition"}
)

// MapGlossaryTerm converts a raw glossary document.
// Glossary documents share one shape across collection versions.
func MapGlossaryTerm(raw *domain.RawDocument) domain.GlossaryTerm {
	if raw == nil {
		return domain.GlossaryTerm{}
	}

	rec := domain.GlossaryTerm{ID: raw.ID}
	if raw.Fields == nil {
		return rec
	}
	rec.EventTopic = stringField(raw.Fields, eventTopicAliases)
	rec.Description = stringField(raw.Fields, descriptionAliases)
	return rec
}
