package guide

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Step is one section of the listing guide.
type Step struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// Guide is the generated action plan for one product.
type Guide struct {
	Product ProductData `json:"product"`
	Pricing Pricing     `json:"pricing"`
	Steps   []Step      `json:"steps"`
}

// Rupees formats an amount with thousands separators.
func Rupees(amount int64) string {
	return "₹" + humanize.Comma(amount)
}

// Build generates the guide. data must already be valid.
func Build(data ProductData) (Guide, error) {
	if err := data.Validate(); err != nil {
		return Guide{}, err
	}
	cost, _ := data.Cost()
	pricing := PriceFor(cost)

	steps := []Step{
		{
			Title:       "Take Amazing Photos",
			Description: fmt.Sprintf("For %s, focus on:", strings.ToLower(data.Category)),
			Details: []string{
				"Use natural lighting or a ring light",
				"Show multiple angles (front, back, close-ups)",
				"Include size/scale references",
				"Keep backgrounds clean and simple",
				"Show the product in use if possible",
			},
		},
		{
			Title:       "Write Compelling Description",
			Description: "Based on your product, here's what to highlight:",
			Details: []string{
				fmt.Sprintf("Product name: %q", data.ProductName),
				"Key benefits and features",
				"Materials/ingredients used",
				"Size, color, and variant options",
				"Care instructions or usage tips",
			},
		},
		{
			Title:       "Smart Pricing Strategy",
			Description: fmt.Sprintf("For %s:", data.Platform),
			Details: []string{
				"Cost price: " + Rupees(pricing.Cost),
				"Suggested selling price: " + Rupees(pricing.Suggested),
				"Profit margin: " + Rupees(pricing.Profit),
				"Research competitor prices",
				"Consider platform fees and shipping",
			},
		},
		{
			Title:       "Optimize for Search",
			Description: "Make your listing discoverable:",
			Details: []string{
				fmt.Sprintf("Use relevant keywords for %s", data.Category),
				"Include brand name and model if applicable",
				"Add trending hashtags",
				"Choose the right category",
				"Fill all optional fields",
			},
		},
		{
			Title:       "Launch & Promote",
			Description: "Get your first sales:",
			Details: []string{
				"Share with friends and family first",
				"Join relevant WhatsApp/Facebook groups",
				"Offer launch discounts",
				"Ask for honest reviews",
				"Post on social media",
			},
		},
	}

	return Guide{Product: data, Pricing: pricing, Steps: steps}, nil
}

// Markdown renders the guide for terminals and print views.
func (g Guide) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Perfect! Here's Your Action Plan 🎯\n\n")
	fmt.Fprintf(&sb, "Customized guide for %q on %s\n\n", g.Product.ProductName, g.Product.Platform)

	sb.WriteString("## Your Product Summary\n\n")
	fmt.Fprintf(&sb, "- **Product:** %s\n", g.Product.ProductName)
	fmt.Fprintf(&sb, "- **Category:** %s\n", g.Product.Category)
	fmt.Fprintf(&sb, "- **Platform:** %s\n", g.Product.Platform)
	fmt.Fprintf(&sb, "- **Cost Price:** %s\n", Rupees(g.Pricing.Cost))
	fmt.Fprintf(&sb, "- **Suggested Price:** %s\n", Rupees(g.Pricing.Suggested))
	fmt.Fprintf(&sb, "- **Potential Profit:** %s\n\n", Rupees(g.Pricing.Profit))

	for i, step := range g.Steps {
		fmt.Fprintf(&sb, "## %d. %s\n\n%s\n\n", i+1, step.Title, step.Description)
		for _, detail := range step.Details {
			fmt.Fprintf(&sb, "- %s\n", detail)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("> Success is not just about the destination, but taking the first step. You've taken yours - now let's make it happen!\n")
	return sb.String()
}
