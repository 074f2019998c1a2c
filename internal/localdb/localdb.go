// Package localdb runs an in-memory MySQL-compatible server for local
// development, so the API can be started without a real MySQL.
package localdb

import (
	"context"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/server"
	"github.com/rs/zerolog"
)

// Serve listens on addr with one empty database named dbName and blocks
// until ctx is done or the server fails. Data is lost on exit.
func Serve(ctx context.Context, addr, dbName string, log zerolog.Logger) error {
	engine := sqle.NewDefault(memory.NewDBProvider(memory.NewDatabase(dbName)))

	s, err := server.NewDefaultServer(server.Config{Protocol: "tcp", Address: addr}, engine)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()
	log.Info().Str("addr", addr).Str("db", dbName).Msg("local database ready")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("stopping local database")
		return s.Close()
	}
}
