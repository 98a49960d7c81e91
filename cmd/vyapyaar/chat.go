package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/assistant"
	chatservice "github.com/vyapyaar/vyapyaar-ai/backend/internal/service/chat"
)

func newChatCmd() *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the business assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			chatCfg, err := loadChatConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delay") {
				chatCfg.TypingDelay = delay
			}

			responder, err := newResponder(chatCfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			assistantSvc, err := assistant.NewService(ctx, responder, nil, nil)
			if err != nil {
				return err
			}

			chatSvc := chatservice.NewService(assistantSvc, chatservice.Config{
				TypingDelay: chatCfg.TypingDelay,
				MaxTurns:    chatCfg.MaxTurns,
			}, nil, nil)
			defer chatSvc.Close()

			model, err := newChatModel(ctx, chatSvc)
			if err != nil {
				return err
			}
			defer model.cancel()

			_, err = tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 0, "typing delay before each reply (defaults to CHAT_TYPING_DELAY_MS)")
	return cmd
}
