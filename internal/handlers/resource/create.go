package resource

import (
	"context"
	"net/http"

	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// Create inserts a row from a JSON object body and returns the stored row.
// Flow:
// 1) Bind each mutable column from the body (missing -> NULL)
// 2) Insert and read back by the generated id
// 3) Publish a created event
func (h *Handler[T]) Create(ctx context.Context, body []byte) (common.Reply, error) {
	h.log(ctx, "create").Msg("create called")

	values, err := bind(body, h.cfg.Columns)
	if err != nil {
		return common.Reply{}, err
	}

	row, err := h.store.Create(ctx, values)
	if err != nil {
		return common.Reply{}, err
	}

	h.publish(ctx, events.Created, (*row).PrimaryKey())
	return common.Respond(http.StatusCreated, row), nil
}
