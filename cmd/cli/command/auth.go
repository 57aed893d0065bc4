package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrp/cmd/cli/authentication"
	"mrp/cmd/cli/command/client"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Register an account, log in and log out. The token is kept in the OS keyring.`,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Register(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Registration successful! Please login to continue.")
		fmt.Fprintf(out, "UserID: %s\n", resp.ID)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		token, err := client.NewHTTPClient(apiURL).Login(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := authentication.StoreCredentials(&authentication.StoredCredentials{Token: token, Username: username}); err != nil {
			return fmt.Errorf("could not store token: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", username)
		return nil
	},
}

// logoutCmd only forgets the local token; the server rotates it on the next login.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteCredentials(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringP("username", "u", "", "Username")
		c.Flags().StringP("password", "p", "", "Password")
		c.MarkFlagRequired("username")
		c.MarkFlagRequired("password")
	}
}
