package receipts

import "context"

// Repo defines persistence operations for receipt extractions.
type Repo interface {
	Upsert(ctx context.Context, ex Extraction) error
	GetByID(ctx context.Context, id string) (Extraction, error)
	GetByObjectKey(ctx context.Context, objectKey string) (Extraction, error)
	List(ctx context.Context, limit, offset int) ([]Extraction, error)
}
