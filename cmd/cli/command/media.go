package command

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mrp/cmd/cli/command/client"
	"mrp/internal/microservices/http-api/dto"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Media catalogue commands",
	Long:  `Search, filter, inspect, create, delete and rate media entries.`,
}

var listMediaCmd = &cobra.Command{
	Use:   "list",
	Short: "List media, optionally searched, filtered and sorted",
	Example: `  mrp media list --query matrix
  mrp media list --genre sci-fi --type movie --min-year 1990 --sort score --desc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		for flag, param := range map[string]string{
			"query":    "query",
			"genre":    "genre",
			"type":     "type",
			"year":     "year",
			"min-year": "minYear",
			"max-year": "maxYear",
			"max-age":  "maxAge",
			"sort":     "sortBy",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				params.Set(param, v)
			}
		}
		if desc, _ := cmd.Flags().GetBool("desc"); desc {
			params.Set("sortOrder", "desc")
		}

		list, err := client.NewHTTPClient(apiURL).ListMedia(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("failed to list media: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No media found.")
			return nil
		}
		for _, m := range list {
			printMediaLine(out, m)
		}
		return nil
	},
}

var getMediaCmd = &cobra.Command{
	Use:   "get [media-id]",
	Short: "Show one media entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := client.NewHTTPClient(apiURL).GetMedia(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get media: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", m.Title, m.MediaType)
		fmt.Fprintf(out, "ID: %s\n", m.ID)
		if m.ReleaseYear != nil {
			fmt.Fprintf(out, "Year: %d\n", *m.ReleaseYear)
		}
		if m.Genres != "" {
			fmt.Fprintf(out, "Genres: %s\n", m.Genres)
		}
		if m.AgeRestriction != nil {
			fmt.Fprintf(out, "Age: %d+\n", *m.AgeRestriction)
		}
		if m.Description != "" {
			fmt.Fprintf(out, "\n%s\n\n", m.Description)
		}
		fmt.Fprintf(out, "Average score: %.2f/5 (%d ratings)\n", m.AverageScore, m.RatingCount)
		fmt.Fprintf(out, "Favorited by: %d\n", m.FavoriteCount)
		return nil
	},
}

var createMediaCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a media entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.MediaRequest
		req.Title, _ = cmd.Flags().GetString("title")
		req.Description, _ = cmd.Flags().GetString("description")
		req.MediaType, _ = cmd.Flags().GetString("type")
		req.Genres, _ = cmd.Flags().GetString("genres")
		if cmd.Flags().Changed("year") {
			year, _ := cmd.Flags().GetInt("year")
			req.ReleaseYear = &year
		}
		if cmd.Flags().Changed("age") {
			age, _ := cmd.Flags().GetInt("age")
			req.AgeRestriction = &age
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		id, err := c.CreateMedia(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create media: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Media created: %s\n", id)
		return nil
	},
}

var deleteMediaCmd = &cobra.Command{
	Use:   "delete [media-id]",
	Short: "Delete a media entry you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.DeleteMedia(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete media: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Media %s deleted\n", args[0])
		return nil
	},
}

var rateMediaCmd = &cobra.Command{
	Use:   "rate [media-id] [stars]",
	Short: "Rate a media entry (1-5 stars)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stars, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid stars: %w", err)
		}
		var comment *string
		if cmd.Flags().Changed("comment") {
			v, _ := cmd.Flags().GetString("comment")
			comment = &v
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		id, err := c.RateMedia(cmd.Context(), args[0], stars, comment)
		if err != nil {
			return fmt.Errorf("failed to rate media: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rating %s submitted, pending moderation\n", id)
		return nil
	},
}

var mediaRatingsCmd = &cobra.Command{
	Use:   "ratings [media-id]",
	Short: "List the approved ratings of a media entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ratings, err := client.NewHTTPClient(apiURL).MediaRatings(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list ratings: %w", err)
		}
		printRatings(cmd.OutOrStdout(), ratings)
		return nil
	},
}

func printMediaLine(out io.Writer, m dto.MediaResponse) {
	year := "----"
	if m.ReleaseYear != nil {
		year = strconv.Itoa(*m.ReleaseYear)
	}
	fmt.Fprintf(out, "%s  %-6s %s  %.2f  %s\n", m.ID, m.MediaType, year, m.AverageScore, m.Title)
}

func printRatings(out io.Writer, ratings []dto.RatingResponse) {
	if len(ratings) == 0 {
		fmt.Fprintln(out, "No ratings found.")
		return
	}
	for _, r := range ratings {
		fmt.Fprintf(out, "Rating: %s\n", r.ID)
		fmt.Fprintf(out, "Media: %s  User: %s\n", r.MediaID, r.UserID)
		fmt.Fprintf(out, "Stars: %d/5  Status: %s\n", r.Stars, r.ApprovalStatus)
		if r.Comment != nil && *r.Comment != "" {
			fmt.Fprintf(out, "Comment: %s\n", *r.Comment)
		}
		fmt.Fprintln(out, strings.Repeat("-", 50))
	}
}

func init() {
	mediaCmd.AddCommand(listMediaCmd)
	mediaCmd.AddCommand(getMediaCmd)
	mediaCmd.AddCommand(createMediaCmd)
	mediaCmd.AddCommand(deleteMediaCmd)
	mediaCmd.AddCommand(rateMediaCmd)
	mediaCmd.AddCommand(mediaRatingsCmd)

	listMediaCmd.Flags().StringP("query", "q", "", "Search title and description")
	listMediaCmd.Flags().String("genre", "", "Genre substring")
	listMediaCmd.Flags().String("type", "", "movie, series or game")
	listMediaCmd.Flags().String("year", "", "Exact release year")
	listMediaCmd.Flags().String("min-year", "", "Earliest release year")
	listMediaCmd.Flags().String("max-year", "", "Latest release year")
	listMediaCmd.Flags().String("max-age", "", "Highest age restriction")
	listMediaCmd.Flags().String("sort", "", "title, year or score")
	listMediaCmd.Flags().Bool("desc", false, "Sort descending")

	createMediaCmd.Flags().StringP("title", "t", "", "Title")
	createMediaCmd.Flags().StringP("description", "d", "", "Description")
	createMediaCmd.Flags().String("type", "", "movie, series or game")
	createMediaCmd.Flags().String("genres", "", "Comma separated genres")
	createMediaCmd.Flags().Int("year", 0, "Release year")
	createMediaCmd.Flags().Int("age", 0, "Age restriction")
	createMediaCmd.MarkFlagRequired("title")
	createMediaCmd.MarkFlagRequired("type")

	rateMediaCmd.Flags().StringP("comment", "c", "", "Optional comment")
}
