package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the connected account",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctrl, _, _ := newController()
		if err := ctrl.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}
