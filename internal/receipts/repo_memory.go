package receipts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Extraction // objectKey -> extraction
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Extraction)}
}

// Upsert stores the extraction, replacing any earlier row for the same
// object key. A replaced row keeps its original ID.
func (r *MemoryRepo) Upsert(ctx context.Context, ex Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.data[ex.ObjectKey]; ok {
		ex.ID = prev.ID
	}
	ex.Fields = copyFields(ex.Fields)
	r.data[ex.ObjectKey] = ex
	return nil
}

// GetByID returns the extraction with the given ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ex := range r.data {
		if ex.ID == id {
			return ex, nil
		}
	}
	return Extraction{}, ErrNotFound
}

// GetByObjectKey returns the extraction for the given object key.
func (r *MemoryRepo) GetByObjectKey(ctx context.Context, objectKey string) (Extraction, error) {
	if err := ctx.Err(); err != nil {
		return Extraction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.data[objectKey]
	if !ok {
		return Extraction{}, ErrNotFound
	}
	return ex, nil
}

// List returns extractions newest first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Extraction, 0, len(r.data))
	for _, ex := range r.data {
		all = append(all, ex)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].ProcessedAt.After(all[j].ProcessedAt)
	})

	if offset >= len(all) {
		return []Extraction{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
