package repository

import (
	"context"
	"sync"

	"github.com/minhvu/sothuchi/internal/model"
)

// LocalStorage is a mutex-guarded append-only slice. It backs tests and the
// "memory" store backend.
type LocalStorage struct {
	mu      sync.Mutex
	records []model.Record
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

func (l *LocalStorage) Add(_ context.Context, record *model.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, *record)
	return nil
}

func (l *LocalStorage) GetAll(_ context.Context) ([]model.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Record, len(l.records))
	copy(out, l.records)
	return out, nil
}
