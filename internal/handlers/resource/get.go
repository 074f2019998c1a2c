package resource

import (
	"context"
	"errors"
	"net/http"

	"github.com/Jeomhps/happier-hour-api/internal/db"
	"github.com/Jeomhps/happier-hour-api/internal/errs"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// Get returns a single row (not a list) by id.
// - Invalid id -> 400 without touching the store.
// - No row -> 404 with the resource's own message.
func (h *Handler[T]) Get(ctx context.Context, rawID string) (common.Reply, error) {
	h.log(ctx, "get").Str("id", rawID).Msg("get called")

	id, err := parseID(rawID)
	if err != nil {
		return common.Reply{}, err
	}

	row, err := h.store.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return common.Reply{}, errs.New(errs.NotFound, h.cfg.NotFound)
	}
	if err != nil {
		return common.Reply{}, err
	}
	return common.Respond(http.StatusOK, row), nil
}
