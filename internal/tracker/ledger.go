package tracker

import (
	"context"
	"sync"
)

// Ledger persists how many times each category has been completed.
// Counts only ever grow.
type Ledger interface {
	// CompletionCount returns the number of completions recorded for a category.
	CompletionCount(ctx context.Context, categoryID string) (int, error)

	// IncrementCompletion records one more completion and returns the new count.
	IncrementCompletion(ctx context.Context, categoryID string) (int, error)
}

// MemoryLedger is an in-process Ledger, used when no store is configured.
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[string]int)}
}

func (l *MemoryLedger) CompletionCount(_ context.Context, categoryID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[categoryID], nil
}

func (l *MemoryLedger) IncrementCompletion(_ context.Context, categoryID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[categoryID]++
	return l.counts[categoryID], nil
}
