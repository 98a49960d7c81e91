package guide

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrProductDataMissing = errors.New("product data has not been captured yet")
	ErrInvalidCostPrice   = errors.New("cost price must be a whole number from 0 to 3002399751580330")
)

// MaxCostPrice keeps the suggested price exactly representable for JSON
// clients that decode numbers as float64.
const MaxCostPrice int64 = (1 << 53) / 3

// ProductData is the record captured by the "sell online" form.
type ProductData struct {
	Category    string `json:"category"`
	ProductName string `json:"productName"`
	CostPrice   string `json:"costPrice"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
}

// FieldError names a required field that was left empty.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate checks the required fields and the cost price.
func (p ProductData) Validate() error {
	required := []struct{ name, value string }{
		{"category", p.Category},
		{"productName", p.ProductName},
		{"costPrice", p.CostPrice},
		{"platform", p.Platform},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &FieldError{Field: f.name}
		}
	}
	_, err := p.Cost()
	return err
}

// Cost parses the captured cost price.
func (p ProductData) Cost() (int64, error) {
	cost, err := strconv.ParseInt(strings.TrimSpace(p.CostPrice), 10, 64)
	if err != nil || cost < 0 || cost > MaxCostPrice {
		return 0, ErrInvalidCostPrice
	}
	return cost, nil
}

// Pricing is the suggested price breakdown in rupees.
type Pricing struct {
	Cost      int64 `json:"cost"`
	Suggested int64 `json:"suggested"`
	Profit    int64 `json:"profit"`
}

// PriceFor applies the 2.5x markup and rounds half up. cost must be within
// [0, MaxCostPrice].
func PriceFor(cost int64) Pricing {
	suggested := (cost*5 + 1) / 2
	return Pricing{Cost: cost, Suggested: suggested, Profit: suggested - cost}
}
