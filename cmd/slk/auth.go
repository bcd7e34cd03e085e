package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify the configured credential",
	Long: `Verify the configured token against the workspace and report the
authenticated identity. Useful before scripting against the workspace.`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	identity, err := client.AuthTest(cmd.Context())
	if err != nil {
		exitClassified(err)
	}

	if humanOutput {
		fmt.Printf("Team:  %s (%s)\n", identity.Team, identity.TeamID)
		fmt.Printf("User:  %s (%s)\n", identity.User, identity.UserID)
		fmt.Printf("Token: %s\n", client.TokenKind())
		fmt.Printf("URL:   %s\n", identity.URL)
	} else {
		outputJSON(struct {
			Team   string `json:"team"`
			TeamID string `json:"team_id"`
			User   string `json:"user"`
			UserID string `json:"user_id"`
			BotID  string `json:"bot_id,omitempty"`
			Token  string `json:"token_kind"`
			URL    string `json:"url"`
		}{identity.Team, identity.TeamID, identity.User, identity.UserID, identity.BotID, string(client.TokenKind()), identity.URL})
	}

	return nil
}
