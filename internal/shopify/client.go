package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/pkg/errors"
	"github.com/jafarshop/storefront/pkg/retry"
)

const maxAttempts = 2

type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Storefront GraphQL client
func NewClient(cfg config.StorefrontConfig, logger *zap.Logger) *Client {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := cfg.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &Client{
		endpoint:    fmt.Sprintf("https://%s/api/%s/graphql.json", shopDomain, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response envelope
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Execute executes a GraphQL query and returns the raw data object. Network
// errors, 429s and 5xx statuses are retried once with backoff; every other
// failure surfaces immediately as an UpstreamError.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	data, err := retry.Do(ctx, retry.Config{
		MaxAttempts: maxAttempts,
		ShouldRetry: transient,
	}, func() (json.RawMessage, error) {
		return c.do(ctx, query, variables)
	})
	if err != nil {
		status := 0
		var ue *errors.UpstreamError
		if e, ok := err.(*errors.UpstreamError); ok {
			ue = e
			status = e.Status
		}
		c.logger.Error("Storefront API request failed",
			zap.String("endpoint", c.endpoint),
			zap.String("query", truncateQuery(query)),
			zap.Int("status", status),
			zap.Error(err),
		)
		if ue != nil {
			return nil, ue
		}
		return nil, err
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewHTTPStatus(resp.StatusCode)
	}

	var envelope GraphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.NewInvalidPayload(err)
	}

	if len(envelope.Errors) > 0 {
		return nil, errors.NewGraphQLError(envelope.Errors[0].Message)
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, errors.NewEmptyResponse()
	}

	return envelope.Data, nil
}

// transient reports whether the failure is worth a second attempt: network
// errors, rate limiting, and upstream 5xx statuses.
func transient(err error) bool {
	ue, ok := err.(*errors.UpstreamError)
	if !ok {
		return true
	}
	if ue.Kind != errors.KindHTTPStatus {
		return false
	}
	return ue.Status == http.StatusTooManyRequests || ue.Status >= 500
}

func truncateQuery(query string) string {
	q := strings.Join(strings.Fields(query), " ")
	if len(q) > 120 {
		return q[:120] + "..."
	}
	return q
}
