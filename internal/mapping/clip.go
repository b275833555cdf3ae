package mapping

import (
	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// MapClip converts a raw clip (sub-summary) document read from collection c.
// InterviewID is taken from the parent reference the document was read under.
func MapClip(raw *domain.RawDocument, c domain.Collection) domain.Clip {
	if raw == nil {
		return domain.Clip{}
	}

	rec := domain.Clip{ID: raw.ID}
	if raw.Ref.Parent != nil {
		rec.InterviewID = raw.Ref.Parent.ID
	}
	if raw.Fields == nil {
		return rec
	}

	table := fieldsFor(c).ClipFields
	rec.Topic = stringField(raw.Fields, table.Aliases(collections.FieldTopic))
	rec.Summary = stringField(raw.Fields, table.Aliases(collections.FieldSummary))
	rec.Timestamp = timestampField(raw.Fields, table.Aliases(collections.FieldTimestamp))
	rec.Keywords = listField(raw.Fields, table.Aliases(collections.FieldKeywords))
	return rec
}
