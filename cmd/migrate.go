package cmd

import (
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema",
	Long:  `Connects to the database, creates any missing tables and exits`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd.Context(), log)
		defer stop()

		d, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.EnsureSchema(ctx); err != nil {
			return err
		}
		log.Info().Str("db", cfg.DBName).Msg("schema ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
