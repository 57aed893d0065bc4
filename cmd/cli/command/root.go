package command

// root.go defines the root command for the mrp CLI and its global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mrp/cmd/cli/authentication"
	"mrp/cmd/cli/command/client"
)

var apiURL string // Global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "mrp",
	Short: "mrp - Media Rating Platform command line client",
	Long: `mrp talks to a running mrp-server. Use it to:
- Register and log in
- Search, filter and catalogue movies, series and games
- Rate media and moderate pending ratings
- Manage your favorites and view your statistics

Use "mrp [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("MRP_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(ratingCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(statsCmd)
}

// authenticatedClient returns a client carrying the stored token.
func authenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.LoadCredentials()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.Token)
	return c, nil
}
