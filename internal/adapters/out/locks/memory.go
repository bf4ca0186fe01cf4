// Package locks implements ports.OrderLocker in process and on Redis.
package locks

import (
	"context"
	"fmt"
	"sync"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var _ ports.OrderLocker = (*MemoryLocker)(nil)

// MemoryLocker serialises transitions within one process. Entries are
// dropped once no caller holds or waits for them.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

type slot struct {
	held chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[kernel.UUID]*slot)}
}

func (l *MemoryLocker) Lock(ctx context.Context, id kernel.UUID) (ports.Unlock, error) {
	s := l.acquire(id)

	select {
	case s.held <- struct{}{}:
	case <-ctx.Done():
		l.release(id, s)
		return nil, fmt.Errorf("%w: order %s: %w", errs.ErrOrderIsBusy, id.String(), ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.held
			l.release(id, s)
		})
		return nil
	}, nil
}

func (l *MemoryLocker) acquire(id kernel.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[id]
	if !ok {
		s = &slot{held: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) release(id kernel.UUID, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}

// Len is the number of orders currently locked or waited on.
func (l *MemoryLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
