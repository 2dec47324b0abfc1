// Package cmd implements the reachout CLI: a terminal stand-in for the web
// frontend that drives the same HTTP surface.
package cmd

import (
	"github.com/spf13/cobra"

	"reachout/internal/apiclient"
	"reachout/internal/session"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "reachout",
	Short: "LinkedIn outreach from the terminal",
	Long:  "Connect a LinkedIn account, fetch profiles, draft outreach messages and send them.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "reachout server base URL")

	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(logoutCmd)
}

func newController() (*session.Controller, *apiclient.Client, session.Store) {
	api := apiclient.New(serverURL)
	store := session.NewFileStore(session.DefaultSessionPath())
	return session.NewController(api, store), api, store
}
