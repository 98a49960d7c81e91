package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/service/guide"
)

func newGuideCmd() *cobra.Command {
	var data guide.ProductData
	var raw bool

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Generate the selling guide for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := guide.Build(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			markdown := g.Markdown()
			if raw || !isTerminal(out) {
				_, err = io.WriteString(out, markdown)
				return err
			}

			rendered, err := renderMarkdown(markdown)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&data.Category, "category", "", "product category")
	cmd.Flags().StringVar(&data.ProductName, "name", "", "product name")
	cmd.Flags().StringVar(&data.CostPrice, "cost", "", "cost price in rupees")
	cmd.Flags().StringVar(&data.Platform, "platform", "", "where you plan to sell")
	cmd.Flags().StringVar(&data.Description, "description", "", "short product description")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func renderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(markdown)
}
