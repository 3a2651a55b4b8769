package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		endpoint:    srv.URL,
		accessToken: "test-token",
		httpClient:  srv.Client(),
		logger:      zap.NewNop(),
	}
}

func TestNewClientNormalizesDomain(t *testing.T) {
	c := NewClient(config.StorefrontConfig{
		ShopDomain: "https://demo.myshopify.com/",
		APIVersion: "2026-01",
	}, zap.NewNop())
	assert.Equal(t, "https://demo.myshopify.com/api/2026-01/graphql.json", c.endpoint)
}

func TestExecute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotToken string
		var gotBody GraphQLRequest
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
			require.NoError(t, decodeJSON(r, &gotBody))
			w.Write([]byte(`{"data":{"product":{"id":"gid://shopify/Product/1"}}}`))
		})

		data, err := c.Execute(context.Background(), ProductByIDQuery, map[string]interface{}{"id": "gid://shopify/Product/1"})
		require.NoError(t, err)
		assert.Contains(t, string(data), "gid://shopify/Product/1")
		assert.Equal(t, "test-token", gotToken)
		assert.Equal(t, "gid://shopify/Product/1", gotBody.Variables["id"])
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := c.Execute(context.Background(), ProductByIDQuery, nil)
		ue := requireUpstream(t, err)
		assert.Equal(t, errors.KindHTTPStatus, ue.Kind)
		assert.Equal(t, http.StatusForbidden, ue.Status)
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := c.Execute(context.Background(), ProductByIDQuery, nil)
		ue := requireUpstream(t, err)
		assert.Equal(t, errors.KindInvalidPayload, ue.Kind)
	})

	t.Run("GraphQLErrorsUseFirstMessage", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errors":[{"message":"Not found"},{"message":"second"}]}`))
		})

		_, err := c.Execute(context.Background(), ProductByIDQuery, nil)
		ue := requireUpstream(t, err)
		assert.Equal(t, errors.KindGraphQLError, ue.Kind)
		assert.Equal(t, "Not found", ue.Message)
		// No status was observed upstream, so the route layer gets a 500.
		assert.Equal(t, http.StatusInternalServerError, ue.HTTPStatus())
	})

	t.Run("EmptyResponse", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":null}`))
		})

		_, err := c.Execute(context.Background(), ProductByIDQuery, nil)
		ue := requireUpstream(t, err)
		assert.Equal(t, errors.KindEmptyResponse, ue.Kind)
	})

	t.Run("RetriesRateLimitOnce", func(t *testing.T) {
		attempts := 0
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{"data":{"products":{"edges":[]}}}`))
		})

		_, err := c.Execute(context.Background(), ProductsQuery, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("DoesNotRetryClientErrors", func(t *testing.T) {
		attempts := 0
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := c.Execute(context.Background(), ProductsQuery, nil)
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("RespectsContextDuringBackoff", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := c.Execute(ctx, ProductsQuery, nil)
		require.Error(t, err)
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func requireUpstream(t *testing.T, err error) *errors.UpstreamError {
	t.Helper()
	require.Error(t, err)
	ue, ok := err.(*errors.UpstreamError)
	require.True(t, ok, "expected *errors.UpstreamError, got %T", err)
	return ue
}
