package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reachout/internal/apiclient"
	"reachout/internal/session"
)

var (
	generateTarget     string
	generatePrompt     string
	generateVariations int
	generateAPIKey     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft outreach messages for a target profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, api, store := newController()
		if err := ctrl.Resume(cmd.Context()); err != nil {
			return err
		}
		if ctrl.AccountID() == "" {
			return fmt.Errorf("no account connected, run 'reachout connect' first")
		}

		apiKey := generateAPIKey
		if apiKey == "" {
			persisted, _ := store.Load()
			apiKey = persisted.OpenAIAPIKey
		}
		if !session.ValidAPIKeyShape(apiKey) {
			return fmt.Errorf("an OpenAI API key is required (--api-key or the session file)")
		}

		target, err := api.FetchProfile(cmd.Context(), generateTarget, ctrl.AccountID())
		if err != nil {
			return err
		}

		messages, err := api.GenerateMessages(cmd.Context(), apiclient.GenerateRequest{
			Target:       target,
			Sender:       ctrl.Profile(),
			CustomPrompt: generatePrompt,
			Variations:   generateVariations,
			OpenAIAPIKey: apiKey,
		})
		if err != nil {
			return err
		}

		for i, msg := range messages {
			color.New(color.Bold).Printf("--- Variant %d (%d chars) ---\n", i+1, len([]rune(msg)))
			fmt.Println(msg)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "target profile URL or identifier")
	generateCmd.Flags().StringVar(&generatePrompt, "prompt", "", "extra instruction for the draft")
	generateCmd.Flags().IntVar(&generateVariations, "variations", 1, "number of variants to draft (1-5)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "OpenAI API key (falls back to the session file)")
	_ = generateCmd.MarkFlagRequired("target")
}
