package receipts

import (
	"errors"
	"time"
)

// ErrNotFound indicates no extraction exists for the given lookup.
var ErrNotFound = errors.New("receipt extraction not found")

// Extraction is the stored result of one processed receipt object. Rows are
// keyed by object key: storage notifications can be redelivered, and a
// reprocessed object must overwrite its earlier row, not duplicate it.
type Extraction struct {
	ID          string
	Bucket      string
	ObjectKey   string
	Fields      map[string]string
	ProcessedAt time.Time
}
