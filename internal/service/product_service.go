package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/format"
	"github.com/jafarshop/storefront/internal/shopify"
)

const (
	minSearchLength = 2
	defaultLimit    = 25
	maxLimit        = 100
)

// ProductService reads products from the catalog backend. Absence is not an
// error: lookups return (nil, nil) when the product does not exist, and the
// route layer decides what absence means.
type ProductService interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Product, error)
	List(ctx context.Context, limit int) ([]domain.Product, error)
	Search(ctx context.Context, term string, limit int) ([]domain.Product, error)
}

// Executor sends a GraphQL query and returns the raw data object.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
}

type productService struct {
	client Executor
	logger *zap.Logger
}

// NewProductService creates a product service backed by the Storefront API.
func NewProductService(client Executor, logger *zap.Logger) ProductService {
	return &productService{client: client, logger: logger}
}

// GetByID accepts either a raw numeric id or a full GID and normalizes to
// GID form before querying.
func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	variables := map[string]interface{}{
		"id": normalizeProductGID(id),
	}
	return s.fetchOne(ctx, shopify.ProductByIDQuery, variables)
}

func (s *productService) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	variables := map[string]interface{}{
		"handle": handle,
	}
	return s.fetchOne(ctx, shopify.ProductByHandleQuery, variables)
}

func (s *productService) List(ctx context.Context, limit int) ([]domain.Product, error) {
	variables := map[string]interface{}{
		"first": clampLimit(limit),
	}
	return s.fetchMany(ctx, variables)
}

// Search returns an empty list for terms shorter than two characters without
// calling upstream. The term travels as a GraphQL variable, never spliced
// into the query text.
func (s *productService) Search(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minSearchLength {
		return []domain.Product{}, nil
	}
	variables := map[string]interface{}{
		"first": clampLimit(limit),
		"query": term,
	}
	return s.fetchMany(ctx, variables)
}

func (s *productService) fetchOne(ctx context.Context, query string, variables map[string]interface{}) (*domain.Product, error) {
	data, err := s.client.Execute(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	var payload shopify.ProductPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse product response: %w", err)
	}
	if payload.Product == nil {
		return nil, nil
	}
	return format.Product(*payload.Product), nil
}

func (s *productService) fetchMany(ctx context.Context, variables map[string]interface{}) ([]domain.Product, error) {
	data, err := s.client.Execute(ctx, shopify.ProductsQuery, variables)
	if err != nil {
		return nil, err
	}

	var payload shopify.ProductsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	products := make([]domain.Product, 0, len(payload.Products.Edges))
	for _, edge := range payload.Products.Edges {
		products = append(products, *format.Product(edge.Node))
	}
	return products, nil
}

// normalizeProductGID converts a raw numeric id to GID form
// (123 -> gid://shopify/Product/123). GIDs pass through unchanged.
func normalizeProductGID(id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return fmt.Sprintf("gid://shopify/Product/%s", id)
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
