package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/format"
	"github.com/jafarshop/storefront/internal/shopify"
)

// mockProductService serves a canned catalog when no Storefront credentials
// are configured. It is selected once at startup; handlers never know which
// implementation they talk to.
type mockProductService struct {
	catalog []shopify.ProductNode
	logger  *zap.Logger
}

// NewMockProductService creates the demo-mode product service.
func NewMockProductService(logger *zap.Logger) ProductService {
	return &mockProductService{catalog: demoCatalog, logger: logger}
}

func (s *mockProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, node := range s.catalog {
		if node.ID == normalizeProductGID(id) || format.ShortID(node.ID) == id {
			return format.Product(node), nil
		}
	}
	return nil, nil
}

func (s *mockProductService) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	for _, node := range s.catalog {
		if node.Handle == handle {
			return format.Product(node), nil
		}
	}
	return nil, nil
}

func (s *mockProductService) List(ctx context.Context, limit int) ([]domain.Product, error) {
	limit = clampLimit(limit)
	products := make([]domain.Product, 0, len(s.catalog))
	for _, node := range s.catalog {
		if len(products) == limit {
			break
		}
		products = append(products, *format.Product(node))
	}
	return products, nil
}

func (s *mockProductService) Search(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchLength {
		return []domain.Product{}, nil
	}
	limit = clampLimit(limit)
	needle := strings.ToLower(term)
	products := make([]domain.Product, 0)
	for _, node := range s.catalog {
		if len(products) == limit {
			break
		}
		if mockMatches(node, needle) {
			products = append(products, *format.Product(node))
		}
	}
	return products, nil
}

func mockMatches(node shopify.ProductNode, needle string) bool {
	if strings.Contains(strings.ToLower(node.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(node.ProductType), needle) {
		return true
	}
	for _, tag := range node.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func strptr(s string) *string { return &s }

// demoCatalog is the canned inventory served in demo mode. Shapes mirror
// real Storefront API responses so the formatter path stays identical.
var demoCatalog = []shopify.ProductNode{
	{
		ID:               "gid://shopify/Product/9000000000001",
		Title:            "Classic Cotton Tee",
		Handle:           "classic-cotton-tee",
		Description:      "A soft, everyday t-shirt in heavyweight cotton.",
		DescriptionHTML:  "<p>A soft, everyday t-shirt in heavyweight cotton.</p>",
		AvailableForSale: true,
		Vendor:           "Jafar Basics",
		ProductType:      "Apparel",
		Tags:             []string{"tee", "cotton", "basics"},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.MoneyV2{Amount: "24.00", CurrencyCode: "USD"},
		},
		CompareAtPriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.MoneyV2{Amount: "32.00", CurrencyCode: "USD"},
		},
		FeaturedImage: &shopify.ImageNode{URL: "https://cdn.example.com/demo/tee-front.jpg", AltText: "Classic Cotton Tee"},
		Images: shopify.ImageConnection{Edges: []shopify.ImageEdge{
			{Node: shopify.ImageNode{URL: "https://cdn.example.com/demo/tee-front.jpg"}},
			{Node: shopify.ImageNode{URL: "https://cdn.example.com/demo/tee-back.jpg"}},
		}},
		Variants: shopify.VariantConnection{Edges: []shopify.VariantEdge{
			{Node: shopify.VariantNode{
				ID:               "gid://shopify/ProductVariant/9100000000001",
				Title:            "Small / Black",
				AvailableForSale: true,
				SKU:              strptr("TEE-BLK-S"),
				Price:            shopify.MoneyV2{Amount: "24.00", CurrencyCode: "USD"},
				CompareAtPrice:   &shopify.MoneyV2{Amount: "32.00", CurrencyCode: "USD"},
				SelectedOptions: []shopify.SelectedOption{
					{Name: "Size", Value: "Small"},
					{Name: "Color", Value: "Black"},
				},
			}},
			{Node: shopify.VariantNode{
				ID:               "gid://shopify/ProductVariant/9100000000002",
				Title:            "Medium / Black",
				AvailableForSale: false,
				SKU:              strptr("TEE-BLK-M"),
				Price:            shopify.MoneyV2{Amount: "24.00", CurrencyCode: "USD"},
				SelectedOptions: []shopify.SelectedOption{
					{Name: "Size", Value: "Medium"},
					{Name: "Color", Value: "Black"},
				},
			}},
		}},
	},
	{
		ID:               "gid://shopify/Product/9000000000002",
		Title:            "Canvas Tote Bag",
		Handle:           "canvas-tote-bag",
		Description:      "Roomy tote in natural canvas with reinforced straps.",
		DescriptionHTML:  "<p>Roomy tote in natural canvas with reinforced straps.</p>",
		AvailableForSale: true,
		Vendor:           "Jafar Basics",
		ProductType:      "Accessories",
		Tags:             []string{"tote", "canvas"},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.MoneyV2{Amount: "18.50", CurrencyCode: "USD"},
		},
		FeaturedImage: &shopify.ImageNode{URL: "https://cdn.example.com/demo/tote.jpg", AltText: "Canvas Tote Bag"},
		Images: shopify.ImageConnection{Edges: []shopify.ImageEdge{
			{Node: shopify.ImageNode{URL: "https://cdn.example.com/demo/tote.jpg"}},
		}},
		Variants: shopify.VariantConnection{Edges: []shopify.VariantEdge{
			{Node: shopify.VariantNode{
				ID:               "gid://shopify/ProductVariant/9100000000003",
				Title:            "Default Title",
				AvailableForSale: true,
				SKU:              strptr("TOTE-NAT"),
				Price:            shopify.MoneyV2{Amount: "18.50", CurrencyCode: "USD"},
			}},
		}},
	},
	{
		ID:               "gid://shopify/Product/9000000000003",
		Title:            "Enamel Coffee Mug",
		Handle:           "enamel-coffee-mug",
		Description:      "Campfire-style enamel mug, 350 ml.",
		DescriptionHTML:  "<p>Campfire-style enamel mug, 350 ml.</p>",
		AvailableForSale: false,
		Vendor:           "Jafar Home",
		ProductType:      "Kitchen",
		Tags:             []string{"mug", "enamel", "kitchen"},
		PriceRange: shopify.PriceRange{
			MinVariantPrice: shopify.MoneyV2{Amount: "12.00", CurrencyCode: "USD"},
		},
		FeaturedImage: &shopify.ImageNode{URL: "https://cdn.example.com/demo/mug.jpg", AltText: "Enamel Coffee Mug"},
		Images: shopify.ImageConnection{Edges: []shopify.ImageEdge{
			{Node: shopify.ImageNode{URL: "https://cdn.example.com/demo/mug.jpg"}},
		}},
		Variants: shopify.VariantConnection{Edges: []shopify.VariantEdge{
			{Node: shopify.VariantNode{
				ID:               "gid://shopify/ProductVariant/9100000000004",
				Title:            "Default Title",
				AvailableForSale: false,
				SKU:              strptr("MUG-ENML"),
				Price:            shopify.MoneyV2{Amount: "12.00", CurrencyCode: "USD"},
			}},
		}},
	},
}
