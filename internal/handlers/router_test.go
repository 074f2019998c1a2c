package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeomhps/happier-hour-api/internal/errs"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

type call struct {
	op   string
	id   string
	body string
}

type fakeResource struct {
	name  string
	calls []call
	err   error
}

func (f *fakeResource) Name() string { return f.name }

func (f *fakeResource) record(c call) (common.Reply, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return common.Reply{}, f.err
	}
	switch c.op {
	case "update", "delete":
		return common.NoContent(), nil
	}
	return common.Respond(http.StatusOK, map[string]string{"op": c.op}), nil
}

func (f *fakeResource) List(context.Context) (common.Reply, error) {
	return f.record(call{op: "list"})
}

func (f *fakeResource) Get(_ context.Context, id string) (common.Reply, error) {
	return f.record(call{op: "get", id: id})
}

func (f *fakeResource) Create(_ context.Context, body []byte) (common.Reply, error) {
	return f.record(call{op: "create", body: string(body)})
}

func (f *fakeResource) Update(_ context.Context, id string, body []byte) (common.Reply, error) {
	return f.record(call{op: "update", id: id, body: string(body)})
}

func (f *fakeResource) Delete(_ context.Context, id string) (common.Reply, error) {
	return f.record(call{op: "delete", id: id})
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"v1", "specials", "3"}, Segments("/v1/specials/3"))
	assert.Equal(t, []string{"v1", "specials"}, Segments("/v1/specials"))
	assert.Equal(t, []string{"v1", "specials", ""}, Segments("/v1/specials/"))
	assert.Equal(t, []string{"v1", "specials"}, Segments("v1/specials"))
	assert.Equal(t, []string{""}, Segments("/"))
	assert.Empty(t, Segments(""))
}

func TestDispatchRoutes(t *testing.T) {
	cases := []struct {
		method string
		path   string
		body   string
		want   call
		status int
	}{
		{http.MethodGet, "/v1/establishments", "", call{op: "list"}, http.StatusOK},
		{http.MethodGet, "/v1/establishments/7", "", call{op: "get", id: "7"}, http.StatusOK},
		{http.MethodPost, "/v1/establishments", `{"name":"x"}`, call{op: "create", body: `{"name":"x"}`}, http.StatusOK},
		{http.MethodPut, "/v1/establishments/7", `{"name":"y"}`, call{op: "update", id: "7", body: `{"name":"y"}`}, http.StatusNoContent},
		{http.MethodDelete, "/v1/establishments/7", "", call{op: "delete", id: "7"}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			res := &fakeResource{name: "establishments"}
			r := NewRouter(res)

			rep := r.Dispatch(context.Background(), Request{Path: tc.path, Method: tc.method, Body: []byte(tc.body)})

			assert.Equal(t, tc.status, rep.StatusCode)
			require.Len(t, res.calls, 1)
			assert.Equal(t, tc.want, res.calls[0])
		})
	}
}

func TestDispatchInvalidURL(t *testing.T) {
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/v1"},
		{http.MethodGet, "/v2/establishments"},
		{http.MethodGet, "/v1/bars"},
		{http.MethodGet, "/v1/establishments/1/extra"},
		{http.MethodPost, "/v1/establishments/1"},
		{http.MethodPut, "/v1/establishments"},
		{http.MethodDelete, "/v1/establishments"},
		{http.MethodPatch, "/v1/establishments/1"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			res := &fakeResource{name: "establishments"}
			rep := NewRouter(res).Dispatch(context.Background(), Request{Path: tc.path, Method: tc.method})

			assert.Equal(t, http.StatusBadRequest, rep.StatusCode)
			assert.Equal(t, `"Invalid url"`, rep.Body)
			assert.Empty(t, res.calls)
		})
	}
}

func TestDispatchTrailingSlashReachesGet(t *testing.T) {
	res := &fakeResource{name: "specials"}
	NewRouter(res).Dispatch(context.Background(), Request{Path: "/v1/specials/", Method: http.MethodGet})

	require.Len(t, res.calls, 1)
	assert.Equal(t, call{op: "get", id: ""}, res.calls[0])
}

func TestDispatchNormalizesErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{errs.New(errs.NotFound, "gone"), http.StatusNotFound, `"gone"`},
		{errs.New(errs.Conflict, "dup"), http.StatusConflict, `"dup"`},
		{errs.New(errs.Unavailable, "down"), http.StatusServiceUnavailable, `"down"`},
		{assert.AnError, http.StatusInternalServerError, `"` + assert.AnError.Error() + `"`},
	}
	for _, tc := range cases {
		res := &fakeResource{name: "specials", err: tc.err}
		rep := NewRouter(res).Dispatch(context.Background(), Request{Path: "/v1/specials", Method: http.MethodGet})

		assert.Equal(t, tc.status, rep.StatusCode)
		assert.Equal(t, tc.body, rep.Body)
	}
}

func newEngine(r *Router, maxBody int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.RedirectTrailingSlash = false
	e.Any("/v1/*path", r.Gin(maxBody))
	e.NoRoute(r.Gin(maxBody))
	return e
}

func TestGinWritesJSON(t *testing.T) {
	e := newEngine(NewRouter(&fakeResource{name: "specials"}), 1<<20)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/specials", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"op":"list"}`, w.Body.String())
}

func TestGinNoContentHasNoBody(t *testing.T) {
	e := newEngine(NewRouter(&fakeResource{name: "specials"}), 1<<20)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/specials/4", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGinNoRouteIsInvalidURL(t *testing.T) {
	e := newEngine(NewRouter(&fakeResource{name: "specials"}), 1<<20)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nothing/here", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"Invalid url"`, w.Body.String())
}

func TestGinPassesBody(t *testing.T) {
	res := &fakeResource{name: "specials"}
	e := newEngine(NewRouter(res), 1<<20)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/specials", strings.NewReader(`{"name":"wings"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, res.calls, 1)
	assert.Equal(t, `{"name":"wings"}`, res.calls[0].body)
}

func TestGinRejectsOversizedBody(t *testing.T) {
	res := &fakeResource{name: "specials"}
	e := newEngine(NewRouter(res), 8)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/specials", strings.NewReader(`{"name":"a long name"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `"Request body too large"`, w.Body.String())
	assert.Empty(t, res.calls)
}
