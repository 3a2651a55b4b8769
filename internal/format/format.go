// Package format reshapes raw Storefront API graphs into flat domain records
// and renders currency amounts. Everything here is pure; no I/O.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/shopify"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// narrowSymbols covers the currencies the store actually trades in; anything
// else is rendered with its ISO code as prefix.
var narrowSymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "$",
	"AUD": "$",
	"JOD": "JOD ",
}

// Price renders an amount in the given ISO currency with locale-aware digit
// grouping. The amount may be a number or a decimal string.
func Price(amount interface{}, currencyCode string) string {
	value, ok := toFloat(amount)
	if !ok {
		return fmt.Sprintf("%v %s", amount, currencyCode)
	}

	scale := 2
	if unit, err := currency.ParseISO(currencyCode); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	symbol, ok := narrowSymbols[strings.ToUpper(currencyCode)]
	if !ok {
		symbol = strings.ToUpper(currencyCode) + " "
	}

	return symbol + printer.Sprintf(fmt.Sprintf("%%.%df", scale), value)
}

func toFloat(amount interface{}) (float64, bool) {
	switch v := amount.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// FlattenImages extracts the image URLs from an edge list, preserving order.
func FlattenImages(edges []shopify.ImageEdge) []string {
	urls := make([]string, 0, len(edges))
	for _, edge := range edges {
		urls = append(urls, edge.Node.URL)
	}
	return urls
}

// FlattenVariants extracts the variants from an edge list, preserving order.
// Composite GID ids are shortened to their trailing path segment.
func FlattenVariants(edges []shopify.VariantEdge) []domain.Variant {
	variants := make([]domain.Variant, 0, len(edges))
	for _, edge := range edges {
		node := edge.Node
		variant := domain.Variant{
			ID:        ShortID(node.ID),
			Title:     node.Title,
			Available: node.AvailableForSale,
			SKU:       node.SKU,
			Price: domain.Money{
				Amount:       node.Price.Amount,
				CurrencyCode: node.Price.CurrencyCode,
			},
		}
		if node.CompareAtPrice != nil {
			variant.CompareAtPrice = &domain.Money{
				Amount:       node.CompareAtPrice.Amount,
				CurrencyCode: node.CompareAtPrice.CurrencyCode,
			}
		}
		if len(node.SelectedOptions) > 0 {
			variant.Options = make(map[string]string, len(node.SelectedOptions))
			for _, opt := range node.SelectedOptions {
				variant.Options[opt.Name] = opt.Value
			}
		}
		variants = append(variants, variant)
	}
	return variants
}

// ShortID returns the trailing path segment of a composite GID
// (gid://shopify/Product/123 -> 123). Plain ids pass through unchanged.
func ShortID(id string) string {
	if !strings.Contains(id, "/") {
		return id
	}
	parts := strings.Split(id, "/")
	return parts[len(parts)-1]
}

// CompareAtPrice returns the product's minimum compare-at price, but only if
// it is strictly greater than the minimum variant price.
func CompareAtPrice(node shopify.ProductNode) *domain.Money {
	compareAt := node.CompareAtPriceRange.MinVariantPrice
	if compareAt.Amount == "" {
		return nil
	}
	compareAtValue, err := strconv.ParseFloat(compareAt.Amount, 64)
	if err != nil {
		return nil
	}
	priceValue, err := strconv.ParseFloat(node.PriceRange.MinVariantPrice.Amount, 64)
	if err != nil {
		return nil
	}
	if compareAtValue <= priceValue {
		return nil
	}
	return &domain.Money{Amount: compareAt.Amount, CurrencyCode: compareAt.CurrencyCode}
}

// Product flattens a raw product node into the domain record served to
// clients.
func Product(node shopify.ProductNode) *domain.Product {
	price := node.PriceRange.MinVariantPrice
	product := &domain.Product{
		ID:              node.ID,
		Title:           node.Title,
		Handle:          node.Handle,
		Description:     node.Description,
		DescriptionHTML: node.DescriptionHTML,
		Available:       node.AvailableForSale,
		Vendor:          node.Vendor,
		ProductType:     node.ProductType,
		Tags:            node.Tags,
		Price: domain.Money{
			Amount:       price.Amount,
			CurrencyCode: price.CurrencyCode,
		},
		FormattedPrice: Price(price.Amount, price.CurrencyCode),
		Images:         FlattenImages(node.Images.Edges),
		Variants:       FlattenVariants(node.Variants.Edges),
	}
	if node.FeaturedImage != nil {
		product.Image = node.FeaturedImage.URL
	} else if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}
	if compareAt := CompareAtPrice(node); compareAt != nil {
		product.CompareAtPrice = compareAt
		product.FormattedCompareAtPrice = Price(compareAt.Amount, compareAt.CurrencyCode)
	}
	return product
}
