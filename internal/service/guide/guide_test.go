package guide

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/store"
)

func sample() ProductData {
	return ProductData{
		Category:    "Fashion",
		ProductName: "Block-print Kurta",
		CostPrice:   "401",
		Description: "Hand block printed cotton kurta",
		Platform:    "Meesho",
	}
}

func TestPriceFor(t *testing.T) {
	cases := []struct {
		cost, suggested, profit int64
	}{
		{0, 0, 0},
		{100, 250, 150},
		{401, 1003, 602},
		{999, 2498, 1499},
		{MaxCostPrice, 7505999378950825, 4503599627370495},
	}
	for _, tc := range cases {
		p := PriceFor(tc.cost)
		assert.Equal(t, tc.suggested, p.Suggested, "cost %d", tc.cost)
		assert.Equal(t, tc.profit, p.Profit, "cost %d", tc.cost)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, sample().Validate())

	missing := sample()
	missing.Platform = " "
	var fieldErr *FieldError
	require.ErrorAs(t, missing.Validate(), &fieldErr)
	assert.Equal(t, "platform", fieldErr.Field)

	bad := sample()
	bad.CostPrice = "four hundred"
	require.ErrorIs(t, bad.Validate(), ErrInvalidCostPrice)

	negative := sample()
	negative.CostPrice = "-5"
	require.ErrorIs(t, negative.Validate(), ErrInvalidCostPrice)

	overflow := sample()
	overflow.CostPrice = "9223372036854775807"
	require.ErrorIs(t, overflow.Validate(), ErrInvalidCostPrice)

	aboveMax := sample()
	aboveMax.CostPrice = strconv.FormatInt(MaxCostPrice+1, 10)
	require.ErrorIs(t, aboveMax.Validate(), ErrInvalidCostPrice)

	atMax := sample()
	atMax.CostPrice = strconv.FormatInt(MaxCostPrice, 10)
	require.NoError(t, atMax.Validate())

	noDescription := sample()
	noDescription.Description = ""
	require.NoError(t, noDescription.Validate())
}

func TestBuild(t *testing.T) {
	g, err := Build(sample())
	require.NoError(t, err)

	require.Len(t, g.Steps, 5)
	assert.Equal(t, "For fashion, focus on:", g.Steps[0].Description)
	assert.Equal(t, `Product name: "Block-print Kurta"`, g.Steps[1].Details[0])
	assert.Equal(t, "For Meesho:", g.Steps[2].Description)
	assert.Equal(t, "Suggested selling price: ₹1,003", g.Steps[2].Details[1])
	assert.Equal(t, "Profit margin: ₹602", g.Steps[2].Details[2])
	assert.Equal(t, "Use relevant keywords for Fashion", g.Steps[3].Details[0])
}

func TestMarkdown(t *testing.T) {
	g, err := Build(sample())
	require.NoError(t, err)

	md := g.Markdown()
	assert.Contains(t, md, "**Suggested Price:** ₹1,003")
	assert.Contains(t, md, "## 5. Launch & Promote")
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "₹1,234,567", Rupees(1234567))
	assert.Equal(t, "₹0", Rupees(0))
}

func TestServiceGuideMissingProduct(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil, nil)

	_, err := svc.Guide(context.Background(), "s1")
	require.ErrorIs(t, err, ErrProductDataMissing)
}

func TestServiceRoundTripOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	s := store.NewRedisStore(mr.Addr(), "", 0)
	defer s.Close()
	svc := NewService(s, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.SaveProduct(ctx, "s1", sample()))

	got, err := svc.Product(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	g, err := svc.Guide(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(1003), g.Pricing.Suggested)
}

func TestServiceSaveRejectsInvalid(t *testing.T) {
	svc := NewService(store.NewMemoryStore(), nil, nil)
	bad := sample()
	bad.Category = ""

	err := svc.SaveProduct(context.Background(), "s1", bad)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)

	_, err = svc.Product(context.Background(), "s1")
	require.ErrorIs(t, err, ErrProductDataMissing)
}
