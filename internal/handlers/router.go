package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Jeomhps/happier-hour-api/internal/errs"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// APIVersion is the first path segment every resource route starts with.
const APIVersion = "v1"

// Resource is one CRUD resource as the router sees it.
// *resource.Handler[T] implements it for every row type.
type Resource interface {
	Name() string
	List(ctx context.Context) (common.Reply, error)
	Get(ctx context.Context, id string) (common.Reply, error)
	Create(ctx context.Context, body []byte) (common.Reply, error)
	Update(ctx context.Context, id string, body []byte) (common.Reply, error)
	Delete(ctx context.Context, id string) (common.Reply, error)
}

// Request is what the front door hands the router.
type Request struct {
	Path   string
	Method string
	Body   []byte
}

// Router classifies requests by (method, segment count) and dispatches them
// to a registered resource:
//
//	GET    /v1/{resource}       -> List
//	GET    /v1/{resource}/{id}  -> Get
//	POST   /v1/{resource}       -> Create
//	PUT    /v1/{resource}/{id}  -> Update
//	DELETE /v1/{resource}/{id}  -> Delete
//
// Anything else is 400 "Invalid url".
type Router struct {
	resources map[string]Resource
}

func NewRouter(rs ...Resource) *Router {
	m := make(map[string]Resource, len(rs))
	for _, r := range rs {
		m[r.Name()] = r
	}
	return &Router{resources: m}
}

var errInvalidURL = errs.New(errs.Validation, "Invalid url")

// Segments splits path on "/" and drops the empty element a leading slash
// produces. "/v1/specials/3" -> ["v1", "specials", "3"].
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

// Dispatch handles one request start to finish. Every error is normalized
// here, once.
func (r *Router) Dispatch(ctx context.Context, req Request) common.Reply {
	reply, err := r.dispatch(ctx, req)
	if err == nil {
		return reply
	}

	reply = common.HandleError(err)
	log := zerolog.Ctx(ctx)
	ev := log.Warn()
	if reply.StatusCode >= http.StatusInternalServerError {
		ev = log.Error().Stack()
	}
	ev.Err(err).
		Str("kind", errs.KindOf(err).String()).
		Int("status", reply.StatusCode).
		Str("method", req.Method).
		Str("path", req.Path).
		Msg("request failed")
	return reply
}

func (r *Router) dispatch(ctx context.Context, req Request) (common.Reply, error) {
	segs := Segments(req.Path)
	if len(segs) < 2 || len(segs) > 3 || segs[0] != APIVersion {
		return common.Reply{}, errInvalidURL
	}
	h, ok := r.resources[segs[1]]
	if !ok {
		return common.Reply{}, errInvalidURL
	}

	switch n := len(segs); {
	case req.Method == http.MethodGet && n == 2:
		return h.List(ctx)
	case req.Method == http.MethodGet && n == 3:
		return h.Get(ctx, segs[2])
	case req.Method == http.MethodPost && n == 2:
		return h.Create(ctx, req.Body)
	case req.Method == http.MethodPut && n == 3:
		return h.Update(ctx, segs[2], req.Body)
	case req.Method == http.MethodDelete && n == 3:
		return h.Delete(ctx, segs[2])
	}
	return common.Reply{}, errInvalidURL
}
