package resource

import (
	"context"

	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// Update overwrites every mutable column of the row (full replace, no PATCH
// semantics). Answers 204 whether or not a row matched.
func (h *Handler[T]) Update(ctx context.Context, rawID string, body []byte) (common.Reply, error) {
	h.log(ctx, "update").Str("id", rawID).Msg("update called")

	id, err := parseID(rawID)
	if err != nil {
		return common.Reply{}, err
	}
	values, err := bind(body, h.cfg.Columns)
	if err != nil {
		return common.Reply{}, err
	}

	if err := h.store.Update(ctx, id, values); err != nil {
		return common.Reply{}, err
	}

	h.publish(ctx, events.Updated, id)
	return common.NoContent(), nil
}
