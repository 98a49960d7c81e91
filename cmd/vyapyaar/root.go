package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/analysis/intent"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/config"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/rule"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vyapyaar",
		Short: "Vyapyaar helps first-time sellers start a business",
		Long: `Vyapyaar is the terminal companion of the Vyapyaar backend. It runs the
"start a business" assistant locally and generates selling guides.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine; flags and the environment still apply.
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().String("rules", "", "YAML rule table (defaults to CHAT_RULES_FILE, then the built-in table)")
	cmd.PersistentFlags().String("match", "", "keyword match mode: substring or word (defaults to CHAT_MATCH_MODE)")

	cmd.AddCommand(newRespondCmd(), newChatCmd(), newGuideCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadChatConfig merges the environment with the persistent flags.
func loadChatConfig(cmd *cobra.Command) (config.ChatConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.ChatConfig{}, err
	}
	chatCfg := cfg.Chat

	if rules, _ := cmd.Flags().GetString("rules"); rules != "" {
		chatCfg.RulesFile = rules
	}
	if match, _ := cmd.Flags().GetString("match"); match != "" {
		chatCfg.MatchMode = match
	}
	return chatCfg, nil
}

func newResponder(chatCfg config.ChatConfig) (*intent.Responder, error) {
	table, err := rule.LoadOrSeed(chatCfg.RulesFile)
	if err != nil {
		return nil, err
	}
	match, err := intent.ParseMatcher(chatCfg.MatchMode)
	if err != nil {
		return nil, err
	}
	return intent.New(table, intent.WithMatcher(match))
}
