package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jeomhps/happier-hour-api/internal/errs"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/common"
)

// Gin adapts the router to gin. Mount it on /v1/*path and NoRoute so every
// request shape gets the router's answer. Bodies above maxBody bytes are
// rejected with 400.
func (r *Router) Gin(maxBody int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				write(c, common.HandleError(errs.New(errs.Validation, "Request body too large")))
				return
			}
			write(c, common.HandleError(errs.Wrap(errs.Validation, err)))
			return
		}

		write(c, r.Dispatch(c.Request.Context(), Request{
			Path:   c.Request.URL.Path,
			Method: c.Request.Method,
			Body:   body,
		}))
	}
}

// write sends a reply. HTTP forbids a body on 204, so the JSON null literal
// a no-content reply carries stays off the wire.
func write(c *gin.Context, rep common.Reply) {
	if rep.StatusCode == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(rep.StatusCode, "application/json; charset=utf-8", []byte(rep.Body))
}
