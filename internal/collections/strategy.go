package collections

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// Canonical field names used as keys of a FieldTable.
const (
	FieldDocumentName   = "documentName"
	FieldRoleSimplified = "roleSimplified"
	FieldRole           = "role"
	FieldMainSummary    = "mainSummary"
	FieldVideoURL       = "videoUrl"

	FieldTopic     = "topic"
	FieldSummary   = "summary"
	FieldTimestamp = "timestamp"
	FieldKeywords  = "keywords"
)

// DefaultGlossaryCollection is where glossary terms live in every version.
const DefaultGlossaryCollection = "events_and_topics"

// FieldTable maps a canonical field to the raw field names that may carry it,
// in order of preference.
type FieldTable map[string][]string

// Aliases returns the raw names for a canonical field.
// A field without an entry is looked up under its canonical name.
func (t FieldTable) Aliases(canonical string) []string {
	if names, ok := t[canonical]; ok && len(names) > 0 {
		return names
	}
	return []string{canonical}
}

// Strategy describes one collection version.
type Strategy struct {
	// Collection is the identifier the strategy is registered under.
	Collection domain.Collection

	// InterviewCollection is the top-level collection holding interviews.
	InterviewCollection string

	// ClipSubcollection is the sub-collection of an interview holding clips.
	ClipSubcollection string

	// NormalizeID turns a logical interview id into a store key.
	// It must be idempotent and free of I/O.
	NormalizeID func(id string) string

	InterviewFields FieldTable
	ClipFields      FieldTable
}

// InterviewRef returns the store address of an interview.
func (s Strategy) InterviewRef(logicalID string) domain.DocumentRef {
	return domain.DocumentRef{Collection: s.InterviewCollection, ID: s.normalize(logicalID)}
}

// ClipRef returns the store address of a clip nested under an interview.
func (s Strategy) ClipRef(logicalInterviewID, clipID string) domain.DocumentRef {
	return s.InterviewRef(logicalInterviewID).Child(s.ClipSubcollection, strings.TrimSpace(clipID))
}

func (s Strategy) normalize(id string) string {
	id = strings.TrimSpace(id)
	if s.NormalizeID == nil {
		return id
	}
	return s.NormalizeID(id)
}

var (
	mu         sync.RWMutex
	strategies = make(map[domain.Collection]Strategy)
)

// Register adds or replaces the strategy for s.Collection.
func Register(s Strategy) {
	mu.Lock()
	defer mu.Unlock()
	strategies[s.Collection] = s
}

// Lookup returns the strategy registered for c.
func Lookup(c domain.Collection) (Strategy, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := strategies[c]
	return s, ok
}

// Known returns all registered collection identifiers, sorted.
func Known() []domain.Collection {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]domain.Collection, 0, len(strategies))
	for c := range strategies {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Normalize maps a logical document id to the key valid for reads against
// collection c. Normalize(Normalize(id, c), c) == Normalize(id, c) for every
// registered strategy. Unknown collections leave the id unchanged apart from
// surrounding whitespace.
func Normalize(logicalID string, c domain.Collection) string {
	s, ok := Lookup(c)
	if !ok {
		return strings.TrimSpace(logicalID)
	}
	return s.normalize(logicalID)
}
