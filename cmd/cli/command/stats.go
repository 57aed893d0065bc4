package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mrp/cmd/cli/authentication"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your rating statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.LoadCredentials()
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			username = creds.Username
		}
		if username == "" {
			return fmt.Errorf("username unknown, pass --username")
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		s, err := c.Statistics(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Statistics for %s\n", username)
		fmt.Fprintf(out, "Ratings given: %d (average %.2f)\n", s.TotalRatingsGiven, s.AverageScoreGiven)
		fmt.Fprintf(out, "Media created: %d (average received %.2f)\n", s.TotalMediaCreated, s.AverageRatingReceived)
		fmt.Fprintf(out, "Favorites: %d\n", s.TotalFavorites)
		fmt.Fprintf(out, "Favorite genre: %s\n", s.FavoriteGenre)
		if len(s.TopGenres) > 0 {
			fmt.Fprintf(out, "Top genres: %s\n", strings.Join(s.TopGenres, ", "))
		}
		return nil
	},
}

func init() {
	// only needed with MRP_TOKEN, the keyring remembers the login name
	statsCmd.Flags().StringP("username", "u", "", "Your username")
}
