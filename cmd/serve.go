package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Jeomhps/happier-hour-api/internal/events"
	"github.com/Jeomhps/happier-hour-api/internal/handlers"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/establishments"
	"github.com/Jeomhps/happier-hour-api/internal/handlers/specials"
	"github.com/Jeomhps/happier-hour-api/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start server",
	Long:  `Ensures the schema and starts the HTTP API`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd.Context(), log)
	defer stop()

	d, err := openDB(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("db open")
		return err
	}
	defer d.Close()

	if err := d.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("ensure schema")
		return err
	}

	var pub events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		a := events.NewAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		defer a.Close()
		pub = a
		log.Info().Str("queue", cfg.AMQPQueue).Msg("publishing change events")
	}

	router := handlers.NewRouter(
		establishments.New(d, pub),
		specials.New(d, pub),
	)

	gin.SetMode(gin.ReleaseMode)
	engine := server.NewEngine(server.Options{
		Logger:       log,
		Router:       router,
		DB:           d,
		MaxBodyBytes: cfg.HTTPMaxBodyBytes,
	})
	return server.Run(ctx, cfg.Addr, engine, cfg.HTTPShutdownTimeout, log)
}
