package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Link a LinkedIn account through the hosted OAuth flow",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, api, _ := newController()
		ctx := cmd.Context()

		oauthURL, err := api.OAuthURL(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Open this URL in a browser and complete the LinkedIn login:")
		color.Cyan("  %s", oauthURL)
		fmt.Println()
		fmt.Print("Press Enter once you have finished... ")
		_, _ = fmt.Scanln()
		fmt.Println("Waiting for the account to appear...")

		accountID, err := ctrl.WaitForAccount(ctx)
		if err != nil {
			return err
		}

		color.Green("Connected as %s (account %s)", ctrl.Profile().Name, accountID)
		return nil
	},
}
