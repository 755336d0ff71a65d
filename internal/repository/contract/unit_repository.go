package contract

import (
	"context"

	"knowledgebase-be/internal/entity"
)

// ScoredUnit wraps an IndexedUnit with its cosine distance to a query vector
// (smaller = more similar).
type ScoredUnit struct {
	Unit     *entity.IndexedUnit
	Distance float64
}

// UnitRepository is the nearest-neighbor index collaborator. Metadata filters
// are conjunctive equality matches: a unit qualifies only when every given
// key/value pair matches exactly.
type UnitRepository interface {
	Upsert(ctx context.Context, units []*entity.IndexedUnit) error
	Query(ctx context.Context, vector []float32, k int, filter map[string]interface{}) ([]*ScoredUnit, error)
	Delete(ctx context.Context, ids []string) error
	// Get returns all units matching the filter; a nil filter returns every
	// unit.
	Get(ctx context.Context, filter map[string]interface{}) ([]*entity.IndexedUnit, error)
	Count(ctx context.Context) (int64, error)
}
