package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <profile-url-or-id>",
	Short: "Fetch another person's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, api, _ := newController()
		if err := ctrl.Resume(cmd.Context()); err != nil {
			return err
		}
		if ctrl.AccountID() == "" {
			return fmt.Errorf("no account connected, run 'reachout connect' first")
		}

		profile, err := api.FetchProfile(cmd.Context(), args[0], ctrl.AccountID())
		if err != nil {
			return err
		}
		printProfile(profile)
		return nil
	},
}
