package establishments

import (
	"github.com/Jeomhps/happier-hour-api/internal/db"
	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/resource"
)

// Package establishments wires the establishments table to the generic
// resource handler. The CRUD operations live in package resource.

// Name is the path segment under /v1.
const Name = "establishments"

// NotFound is the get-by-id 404 message.
const NotFound = "Establishment with specified id does not exist."

// Handler serves /v1/establishments.
type Handler = resource.Handler[db.Establishment]

// New returns an establishments handler backed by x.
func New(x db.Executor, pub events.Publisher) *Handler {
	return resource.New[db.Establishment](
		resource.Config{Name: Name, NotFound: NotFound, Columns: db.Establishments.Columns},
		db.NewStore[db.Establishment](x, db.Establishments),
		pub,
	)
}
