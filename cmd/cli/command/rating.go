package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrp/internal/microservices/http-api/dto"
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rating commands",
	Long:  `Edit or delete your ratings, and moderate pending ones.`,
}

var editRatingCmd = &cobra.Command{
	Use:   "edit [rating-id]",
	Short: "Change the stars and/or comment of your rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.UpdateRatingRequest
		if cmd.Flags().Changed("stars") {
			stars, _ := cmd.Flags().GetInt("stars")
			req.Stars = &stars
		}
		if cmd.Flags().Changed("comment") {
			comment, _ := cmd.Flags().GetString("comment")
			req.Comment = &comment
		}
		if req.Stars == nil && req.Comment == nil {
			return fmt.Errorf("nothing to change, pass --stars and/or --comment")
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		r, err := c.UpdateRating(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rating updated: %d/5, %s\n", r.Stars, r.ApprovalStatus)
		return nil
	},
}

var deleteRatingCmd = &cobra.Command{
	Use:   "delete [rating-id]",
	Short: "Delete your rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.DeleteRating(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rating %s deleted\n", args[0])
		return nil
	},
}

var pendingRatingsCmd = &cobra.Command{
	Use:   "pending",
	Short: "List ratings waiting for moderation",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		ratings, err := c.PendingRatings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list pending ratings: %w", err)
		}
		printRatings(cmd.OutOrStdout(), ratings)
		return nil
	},
}

func moderationCmd(use, short string, approve bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [rating-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authenticatedClient()
			if err != nil {
				return err
			}
			r, err := c.Moderate(cmd.Context(), args[0], approve)
			if err != nil {
				return fmt.Errorf("failed to %s rating: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Rating %s is now %s\n", r.ID, r.ApprovalStatus)
			return nil
		},
	}
}

func init() {
	ratingCmd.AddCommand(editRatingCmd)
	ratingCmd.AddCommand(deleteRatingCmd)
	ratingCmd.AddCommand(pendingRatingsCmd)
	ratingCmd.AddCommand(moderationCmd("approve", "Approve a pending rating", true))
	ratingCmd.AddCommand(moderationCmd("reject", "Reject a pending rating", false))

	editRatingCmd.Flags().Int("stars", 0, "New stars (1-5)")
	editRatingCmd.Flags().String("comment", "", "New comment")
}
