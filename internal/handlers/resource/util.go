package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jeomhps/happier-hour-api/internal/db"
	"github.com/Jeomhps/happier-hour-api/internal/errs"
	"github.com/Jeomhps/happier-hour-api/internal/events"
)

var (
	errInvalidID   = errs.New(errs.Validation, "Invalid id")
	errInvalidBody = errs.New(errs.Validation, "Invalid request body")
)

// publishTimeout bounds how long a change event may hold up a reply.
const publishTimeout = 2 * time.Second

// parseID accepts a trimmed, non-empty base-10 int64 literal.
func parseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errInvalidID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// bind decodes body as a JSON object and returns one value per column, in
// column order. Missing and null fields bind as nil; unknown keys are ignored.
func bind(body []byte, cols []db.Column) ([]any, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, errInvalidBody
	}

	out := make([]any, 0, len(cols))
	for _, c := range cols {
		raw, ok := fields[c.Name]
		if !ok {
			out = append(out, nil)
			continue
		}
		v, err := decodeValue(raw, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeValue(raw json.RawMessage, c db.Column) (any, error) {
	invalid := errs.New(errs.Validation, fmt.Sprintf("Invalid value for field %s", c.Name))

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalid
	}

	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if c.Kind == db.Timestamp {
			t, ok := parseTimestamp(x)
			if !ok {
				return nil, invalid
			}
			return t, nil
		}
		return x, nil
	case json.Number:
		if c.Kind == db.Timestamp {
			return nil, invalid
		}
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		if f, err := x.Float64(); err == nil {
			return f, nil
		}
		return x.String(), nil
	case bool:
		if c.Kind == db.Timestamp {
			return nil, invalid
		}
		return x, nil
	default:
		// objects and arrays have no column representation
		return nil, invalid
	}
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// publish emits a change event; a failure is logged and otherwise ignored.
func (h *Handler[T]) publish(ctx context.Context, action events.Action, id int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := events.Event{Resource: h.cfg.Name, Action: action, ID: id, At: time.Now().UTC()}
	if err := h.events.Publish(ctx, ev); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("resource", h.cfg.Name).
			Str("action", string(action)).
			Int64("id", id).
			Msg("publish change event failed")
	}
}

func (h *Handler[T]) log(ctx context.Context, op string) *zerolog.Event {
	return zerolog.Ctx(ctx).Info().Str("resource", h.cfg.Name).Str("op", op)
}
