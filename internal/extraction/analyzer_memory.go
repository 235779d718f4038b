package extraction

import (
	"context"
	"sync"
)

// MemoryAnalyzer serves canned expense documents from memory. Unseeded
// objects analyze to zero documents, matching a receipt the real service
// finds nothing on.
type MemoryAnalyzer struct {
	mu   sync.RWMutex
	docs map[string][]ExpenseDocument
}

// NewMemoryAnalyzer constructs an empty MemoryAnalyzer.
func NewMemoryAnalyzer() *MemoryAnalyzer {
	return &MemoryAnalyzer{docs: make(map[string][]ExpenseDocument)}
}

// Seed registers the documents to return for an object.
func (a *MemoryAnalyzer) Seed(bucket, key string, docs ...ExpenseDocument) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[bucket+"/"+key] = docs
}

// AnalyzeExpense returns the seeded documents for the object, if any.
func (a *MemoryAnalyzer) AnalyzeExpense(ctx context.Context, bucket, key string) ([]ExpenseDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.docs[bucket+"/"+key], nil
}

var _ ExpenseAnalyzer = (*MemoryAnalyzer)(nil)
