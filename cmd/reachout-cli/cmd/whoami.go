package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reachout/internal/model"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the connected account's profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, _, _ := newController()
		if err := ctrl.Resume(cmd.Context()); err != nil {
			return err
		}
		if ctrl.AccountID() == "" {
			return fmt.Errorf("no account connected, run 'reachout connect' first")
		}
		printProfile(ctrl.Profile())
		return nil
	},
}

func printProfile(p model.Profile) {
	color.New(color.Bold).Println(p.Name)
	if p.Headline != "" {
		fmt.Println(" ", p.Headline)
	}
	if p.JobTitle != "" && p.JobTitle != p.Headline {
		fmt.Println("  Title:   ", p.JobTitle)
	}
	if p.Company != "" {
		fmt.Println("  Company: ", p.Company)
	}
	if p.Industry != "" {
		fmt.Println("  Industry:", p.Industry)
	}
	if p.Location != "" {
		fmt.Println("  Location:", p.Location)
	}
	if p.PublicProfileURL != "" {
		fmt.Println("  URL:     ", p.PublicProfileURL)
	}
}
