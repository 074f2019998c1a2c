package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Jeomhps/happier-hour-api/internal/handlers"
	"github.com/Jeomhps/happier-hour-api/internal/middleware"
)

// Pinger is the health check's view of the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// Options configures the engine.
type Options struct {
	Logger       zerolog.Logger
	Router       *handlers.Router
	DB           Pinger
	MaxBodyBytes int64
}

// NewEngine builds the gin engine: recovery, request id, access log,
// /healthz, and the dispatcher on /v1/*path and every unmatched route.
func NewEngine(o Options) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(o.Logger))
	r.Use(middleware.RequestLogger())

	r.GET("/healthz", health(o.DB))

	dispatch := o.Router.Gin(o.MaxBodyBytes)
	r.Any("/"+handlers.APIVersion+"/*path", dispatch)
	r.NoRoute(dispatch)
	return r
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Run serves h on addr until ctx is done, then shuts down, giving in-flight
// requests up to shutdownTimeout to finish.
func Run(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
