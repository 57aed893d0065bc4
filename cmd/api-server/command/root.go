package command

// root.go defines the mrp-server root command. Running it without a
// subcommand starts the API server.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X mrp/cmd/api-server/command.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mrp-server",
	Short: "mrp-server - Media Rating Platform API server",
	Long: `mrp-server runs the Media Rating Platform HTTP API. Users register and log in,
catalogue movies, series and games, rate them, and keep a list of favorites.

Configuration comes from the environment (and an optional .env file):
DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASS, HTTP_PORT, TOKEN_SECRET, REDIS_URL, ...

Use "mrp-server [command] --help" to see the available commands.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(versionCmd)
}
