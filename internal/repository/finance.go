// Package repository holds the store adapters: Google Sheets (the production
// backend), SQLite and an in-memory store for tests and local runs.
package repository

import (
	"context"

	"github.com/minhvu/sothuchi/internal/model"
)

type Recorder interface {
	Add(ctx context.Context, record *model.Record) error
}

type Getter interface {
	GetAll(ctx context.Context) ([]model.Record, error)
}

// Store is what the service layer needs from a backend.
type Store interface {
	Recorder
	Getter
}
