package resource

import (
	"context"

	"github.com/Jeomhps/happier-hour-api/internal/db"
	"github.com/Jeomhps/happier-hour-api/internal/events"
)

// Package resource provides the generic CRUD handler every resource
// instantiates with its own table.
//
// This file defines the handler type and constructor only.
// The operations are split into dedicated, focused files:
// - list.go:   Handler.List
// - get.go:    Handler.Get
// - create.go: Handler.Create
// - update.go: Handler.Update
// - delete.go: Handler.Delete

// Row is a stored record that knows its primary key.
type Row interface {
	PrimaryKey() int64
}

// Store is the persistence a Handler needs. *db.Store[T] implements it.
type Store[T Row] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, values []any) (*T, error)
	Update(ctx context.Context, id int64, values []any) error
	Delete(ctx context.Context, id int64) error
}

// Config names a resource and describes its client-settable columns.
type Config struct {
	// Name is the path segment, e.g. "establishments".
	Name string
	// NotFound is the 404 message for get-by-id.
	NotFound string
	// Columns are the mutable columns in bind order.
	Columns []db.Column
}

// Handler runs list/get/create/update/delete for one resource.
type Handler[T Row] struct {
	cfg    Config
	store  Store[T]
	events events.Publisher
}

// New returns a handler. A nil publisher disables change events.
func New[T Row](cfg Config, s Store[T], pub events.Publisher) *Handler[T] {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler[T]{cfg: cfg, store: s, events: pub}
}

// Name returns the resource's path segment.
func (h *Handler[T]) Name() string { return h.cfg.Name }
