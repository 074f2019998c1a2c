package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jeomhps/happier-hour-api/internal/seed"
)

var seedAPI string

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load establishments and specials into a running API",
	Long: `Reads a YAML file of the form

  establishments: [...]
  specials: [...]

and creates every entry through POST /v1/{resource}.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.Load(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if len(f.Establishments)+len(f.Specials) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to seed.")
			return nil
		}
		if n := seed.Run(cmd.Context(), seed.NewClient(seedAPI), f, cmd.OutOrStdout()); n > 0 {
			return fmt.Errorf("%d entries failed", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedAPI, "api", "http://localhost:8080", "base URL of the API")
}
