package resource

import (
	"context"
	"net/http"

	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// List returns every row. An empty table is an empty list, not an error.
func (h *Handler[T]) List(ctx context.Context) (common.Reply, error) {
	h.log(ctx, "list").Msg("list called")

	rows, err := h.store.List(ctx)
	if err != nil {
		return common.Reply{}, err
	}
	if rows == nil {
		rows = []T{}
	}
	return common.Respond(http.StatusOK, rows), nil
}
