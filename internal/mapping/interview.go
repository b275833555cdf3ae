package mapping

import (
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// MapInterview converts a raw interview document read from collection c.
// A nil or non-existent document yields a record carrying only the id.
func MapInterview(raw *domain.RawDocument, c domain.Collection) domain.Interview {
	if raw == nil {
		return domain.Interview{}
	}

	rec := domain.Interview{ID: raw.ID}
	if raw.Fields == nil {
		return rec
	}

	table := fieldsFor(c).InterviewFields
	rec.DocumentName = stringField(raw.Fields, table.Aliases(collections.FieldDocumentName))
	rec.RoleSimplified = stringField(raw.Fields, table.Aliases(collections.FieldRoleSimplified))
	rec.Role = stringField(raw.Fields, table.Aliases(collections.FieldRole))
	rec.MainSummary = stringField(raw.Fields, table.Aliases(collections.FieldMainSummary))
	rec.VideoURL = stringField(raw.Fields, table.Aliases(collections.FieldVideoURL))
	return rec
}

// fieldsFor returns the strategy for c, or an empty one whose tables fall
// back to canonical field names.
func fieldsFor(c domain.Collection) collections.Strategy {
	s, ok := collections.Lookup(c)
	if !ok {
		return collections.Strategy{Collection: c}
	}
	return s
}
