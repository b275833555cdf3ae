package driven

import "github.com/custodia-labs/crhp-archive/internal/core/domain"

// CollectionResolver selects the active collection version.
// Active has no failure mode; resolvers validate at construction.
type CollectionResolver interface {
	Active() domain.Collection
}
