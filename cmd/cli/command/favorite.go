package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Favorites commands",
	Long:    `List, add, remove and toggle your favorite media.`,
}

var listFavoritesCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorites, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		list, err := c.Favorites(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list favorites: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No favorites yet.")
			return nil
		}
		for _, m := range list {
			printMediaLine(out, m)
		}
		return nil
	},
}

var addFavoriteCmd = &cobra.Command{
	Use:   "add [media-id]",
	Short: "Add a media entry to your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.AddFavorite(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s to favorites\n", args[0])
		return nil
	},
}

var removeFavoriteCmd = &cobra.Command{
	Use:   "remove [media-id]",
	Short: "Remove a media entry from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.RemoveFavorite(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %s from favorites\n", args[0])
		return nil
	},
}

var toggleFavoriteCmd = &cobra.Command{
	Use:   "toggle [media-id]",
	Short: "Flip the favorite state of a media entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		fav, err := c.ToggleFavorite(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}
		state := "no longer a favorite"
		if fav {
			state = "now a favorite"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is %s\n", args[0], state)
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(listFavoritesCmd)
	favoriteCmd.AddCommand(addFavoriteCmd)
	favoriteCmd.AddCommand(removeFavoriteCmd)
	favoriteCmd.AddCommand(toggleFavoriteCmd)
}
