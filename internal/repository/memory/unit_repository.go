package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"knowledgebase-be/internal/entity"
	"knowledgebase-be/internal/repository/contract"
)

// UnitRepository is a brute-force in-memory nearest-neighbor index. Used for
// tests and for running the service without Postgres. Cosine distance, exact
// scan; fine for small corpora.
type UnitRepository struct {
	mu    sync.RWMutex
	units map[string]*entity.IndexedUnit
}

func NewUnitRepository() contract.UnitRepository {
	return &UnitRepository{
		units: make(map[string]*entity.IndexedUnit),
	}
}

func (r *UnitRepository) Upsert(ctx context.Context, units []*entity.IndexedUnit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range units {
		r.units[u.Id] = u
	}
	return nil
}

func (r *UnitRepository) Query(ctx context.Context, vector []float32, k int, filter map[string]interface{}) ([]*contract.ScoredUnit, error) {
	if k <= 0 {
		k = 5
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var scored []*contract.ScoredUnit
	for _, u := range r.units {
		if !matchesFilter(u.Metadata, filter) {
			continue
		}
		scored = append(scored, &contract.ScoredUnit{
			Unit:     u,
			Distance: cosineDistance(vector, u.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

func (r *UnitRepository) Delete(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.units, id)
	}
	return nil
}

func (r *UnitRepository) Get(ctx context.Context, filter map[string]interface{}) ([]*entity.IndexedUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.IndexedUnit
	for _, u := range r.units {
		if matchesFilter(u.Metadata, filter) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (r *UnitRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.units)), nil
}

// matchesFilter applies conjunctive equality. Values are compared through
// their string form, matching how the JSONB-backed repository compares them.
func matchesFilter(metadata, filter map[string]interface{}) bool {
	for key, want := range filter {
		got, ok := metadata[key]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
