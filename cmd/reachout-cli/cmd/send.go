package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	sendRecipient string
	sendText      string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to a LinkedIn user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctrl, api, _ := newController()
		if err := ctrl.Resume(cmd.Context()); err != nil {
			return err
		}
		if ctrl.AccountID() == "" {
			return fmt.Errorf("no account connected, run 'reachout connect' first")
		}

		result, err := api.SendMessage(cmd.Context(), ctrl.AccountID(), sendRecipient, sendText)
		if err != nil {
			return err
		}

		color.Green("Sent (message %s at %s)", result.MessageID, result.SentAt)
		fmt.Println("Preview:", result.Preview)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendRecipient, "to", "", "recipient profile URL or provider id")
	sendCmd.Flags().StringVar(&sendText, "message", "", "message text (max 300 characters)")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("message")
}
