package commands

import (
	"hansard-scraper/internal/render"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective configuration (the config file merged with the defaults).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return render.JSON(os.Stdout, config)
	},
}
