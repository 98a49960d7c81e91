package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRespondCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "respond <text>",
		Short: "Print the assistant reply to one message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatCfg, err := loadChatConfig(cmd)
			if err != nil {
				return err
			}
			responder, err := newResponder(chatCfg)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("message text is required")
			}
			turn := responder.Respond(text)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(turn)
			}

			fmt.Fprintln(out, turn.Text)
			for i, chip := range turn.Suggestions {
				fmt.Fprintf(out, "  [%d] %s\n", i+1, chip)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full turn as JSON")
	return cmd
}
