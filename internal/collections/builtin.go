package collections

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// Built-in collection versions.
const (
	// Legacy is the first generation of the archive.
	Legacy domain.Collection = "interviewSummaries"

	// V2 is the current generation with snake_case interview keys.
	V2 domain.Collection = "interviewsV2"
)

func init() {
	Register(Strategy{
		Collection:          Legacy,
		InterviewCollection: "interviewSummaries",
		ClipSubcollection:   "subSummaries",
		NormalizeID:         strings.TrimSpace,
		InterviewFields: FieldTable{
			FieldDocumentName:   {"name", "documentName"},
			FieldRoleSimplified: {"roleSimplified", "role_simplified"},
			FieldRole:           {"role"},
			FieldMainSummary:    {"mainSummary", "summary"},
			FieldVideoURL:       {"videoEmbedLink", "video"},
		},
		ClipFields: FieldTable{
			FieldTopic:     {"title", "topic"},
			FieldSummary:   {"text", "summary"},
			FieldTimestamp: {"startTime", "timestamp"},
			FieldKeywords:  {"keywords"},
		},
	})

	Register(Strategy{
		Collection:          V2,
		InterviewCollection: "interviewsV2",
		ClipSubcollection:   "subSummaries",
		NormalizeID:         SnakeCase,
		InterviewFields: FieldTable{
			FieldDocumentName:   {"documentName"},
			FieldRoleSimplified: {"roleSimplified"},
			FieldRole:           {"role"},
			FieldMainSummary:    {"mainSummary"},
			FieldVideoURL:       {"videoEmbedLink"},
		},
		ClipFields: FieldTable{
			FieldTopic:     {"topic"},
			FieldSummary:   {"summary"},
			FieldTimestamp: {"timestamp"},
			FieldKeywords:  {"keywords"},
		},
	})
}

// SnakeCase lower-cases id and folds runs of whitespace, hyphens and
// underscores into single underscores. Leading and trailing separators are
// dropped.
func SnakeCase(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	pending := false
	for _, r := range strings.ToLower(id) {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pending = b.Len() > 0
		default:
			if pending {
				b.WriteByte('_')
				pending = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
