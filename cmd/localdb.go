package cmd

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/Jeomhps/happier-hour-api/internal/localdb"
)

// localdbCmd represents the localdb command
var localdbCmd = &cobra.Command{
	Use:   "localdb",
	Short: "Start localdb",
	Long:  `Starts an in-memory MySQL-compatible database on the configured host and port`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd.Context(), log)
		defer stop()

		return localdb.Serve(ctx, net.JoinHostPort(cfg.DBHost, cfg.DBPort), cfg.DBName, log)
	},
}

func init() {
	rootCmd.AddCommand(localdbCmd)
}
