package mocks

import (
	"context"
	"sync"
)

// Transactor runs fn inline and records how many transactions ran and how
// many of them failed.
type Transactor struct {
	mu         sync.Mutex
	Calls      int
	RolledBack int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.Calls++
	if err != nil {
		t.RolledBack++
	}
	return err
}
