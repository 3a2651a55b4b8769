package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubExecutor records calls and plays back a canned data object.
type stubExecutor struct {
	calls     int
	query     string
	variables map[string]interface{}
	data      string
	err       error
}

func (s *stubExecutor) Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	s.calls++
	s.query = query
	s.variables = variables
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.data), nil
}

const productJSON = `{
  "product": {
    "id": "gid://shopify/Product/77",
    "title": "Tee",
    "handle": "tee",
    "availableForSale": true,
    "priceRange": {"minVariantPrice": {"amount": "24.00", "currencyCode": "USD"}},
    "variants": {"edges": [
      {"node": {"id": "gid://shopify/ProductVariant/770", "title": "Default", "availableForSale": true,
        "price": {"amount": "24.00", "currencyCode": "USD"}}}
    ]}
  }
}`

func TestGetByID(t *testing.T) {
	t.Run("NormalizesRawID", func(t *testing.T) {
		stub := &stubExecutor{data: productJSON}
		svc := NewProductService(stub, zap.NewNop())

		product, err := svc.GetByID(context.Background(), "77")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "gid://shopify/Product/77", stub.variables["id"])
		// A variant edge upstream means a non-empty variants list here.
		require.NotEmpty(t, product.Variants)
		assert.Equal(t, "770", product.Variants[0].ID)
	})

	t.Run("PassesGIDThrough", func(t *testing.T) {
		stub := &stubExecutor{data: productJSON}
		svc := NewProductService(stub, zap.NewNop())

		_, err := svc.GetByID(context.Background(), "gid://shopify/Product/77")
		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Product/77", stub.variables["id"])
	})

	t.Run("AbsentProductIsNotAnError", func(t *testing.T) {
		stub := &stubExecutor{data: `{"product": null}`}
		svc := NewProductService(stub, zap.NewNop())

		product, err := svc.GetByID(context.Background(), "404404")
		require.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestGetByHandle(t *testing.T) {
	t.Run("AbsentProductIsNotAnError", func(t *testing.T) {
		stub := &stubExecutor{data: `{"product": null}`}
		svc := NewProductService(stub, zap.NewNop())

		product, err := svc.GetByHandle(context.Background(), "no-such-handle")
		require.NoError(t, err)
		assert.Nil(t, product)
	})
}

func TestSearch(t *testing.T) {
	t.Run("ShortTermSkipsUpstream", func(t *testing.T) {
		stub := &stubExecutor{}
		svc := NewProductService(stub, zap.NewNop())

		products, err := svc.Search(context.Background(), "a", 10)
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Zero(t, stub.calls)
	})

	t.Run("WhitespaceOnlySkipsUpstream", func(t *testing.T) {
		stub := &stubExecutor{}
		svc := NewProductService(stub, zap.NewNop())

		products, err := svc.Search(context.Background(), "   ", 10)
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Zero(t, stub.calls)
	})

	t.Run("TermTravelsAsVariable", func(t *testing.T) {
		stub := &stubExecutor{data: `{"products": {"edges": []}}`}
		svc := NewProductService(stub, zap.NewNop())

		_, err := svc.Search(context.Background(), `tee "quoted"`, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, `tee "quoted"`, stub.variables["query"])
		assert.Equal(t, 10, stub.variables["first"])
	})

	t.Run("ClampsLimit", func(t *testing.T) {
		stub := &stubExecutor{data: `{"products": {"edges": []}}`}
		svc := NewProductService(stub, zap.NewNop())

		_, err := svc.Search(context.Background(), "tee", 5000)
		require.NoError(t, err)
		assert.Equal(t, maxLimit, stub.variables["first"])

		_, err = svc.Search(context.Background(), "tee", 0)
		require.NoError(t, err)
		assert.Equal(t, defaultLimit, stub.variables["first"])
	})
}

func TestMockProductService(t *testing.T) {
	svc := NewMockProductService(zap.NewNop())

	t.Run("GetByIDAcceptsShortAndGID", func(t *testing.T) {
		byShort, err := svc.GetByID(context.Background(), "9000000000001")
		require.NoError(t, err)
		require.NotNil(t, byShort)

		byGID, err := svc.GetByID(context.Background(), "gid://shopify/Product/9000000000001")
		require.NoError(t, err)
		require.NotNil(t, byGID)
		assert.Equal(t, byShort.ID, byGID.ID)
		assert.NotEmpty(t, byShort.Variants)
	})

	t.Run("GetByHandle", func(t *testing.T) {
		product, err := svc.GetByHandle(context.Background(), "canvas-tote-bag")
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "Canvas Tote Bag", product.Title)

		missing, err := svc.GetByHandle(context.Background(), "no-such-handle")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("List", func(t *testing.T) {
		products, err := svc.List(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("SearchMatchesTagsAndTitle", func(t *testing.T) {
		products, err := svc.Search(context.Background(), "mug", 10)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Enamel Coffee Mug", products[0].Title)
	})

	t.Run("SearchShortTermIsEmpty", func(t *testing.T) {
		products, err := svc.Search(context.Background(), "m", 10)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("CompareAtOnlyWhereGreater", func(t *testing.T) {
		tee, err := svc.GetByHandle(context.Background(), "classic-cotton-tee")
		require.NoError(t, err)
		require.NotNil(t, tee.CompareAtPrice)
		assert.Equal(t, "$32.00", tee.FormattedCompareAtPrice)

		tote, err := svc.GetByHandle(context.Background(), "canvas-tote-bag")
		require.NoError(t, err)
		assert.Nil(t, tote.CompareAtPrice)
	})
}
