package specials

import (
	"github.com/Jeomhps/happier-hour-api/internal/db"
	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/resource"
)

// Package specials wires the specials table to the generic resource
// handler. Specials bind their own seven columns (see db.Specials).

// Name is the path segment under /v1.
const Name = "specials"

// NotFound is the get-by-id 404 message.
const NotFound = "Special with specified id does not exist."

// Handler serves /v1/specials.
type Handler = resource.Handler[db.Special]

// New returns a specials handler backed by x.
func New(x db.Executor, pub events.Publisher) *Handler {
	return resource.New[db.Special](
		resource.Config{Name: Name, NotFound: NotFound, Columns: db.Specials.Columns},
		db.NewStore[db.Special](x, db.Specials),
		pub,
	)
}
