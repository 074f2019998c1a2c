package resource

import (
	"context"

	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// Delete removes the row. Answers 204 whether or not a row existed.
func (h *Handler[T]) Delete(ctx context.Context, rawID string) (common.Reply, error) {
	h.log(ctx, "delete").Str("id", rawID).Msg("delete called")

	id, err := parseID(rawID)
	if err != nil {
		return common.Reply{}, err
	}

	if err := h.store.Delete(ctx, id); err != nil {
		return common.Reply{}, err
	}

	h.publish(ctx, events.Deleted, id)
	return common.NoContent(), nil
}
