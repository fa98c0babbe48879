// Package remote 是预约系统 GraphQL API 的客户端。
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/metrics"
)

type tokenCtxKey struct{}

// WithToken 将管理员的访问令牌放入 context，之后该 context 上的所有远端调用都会携带它
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(endpoint string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) (err error) {
	defer func() {
		c.metrics.ObserveRemoteCall(operation, err)
	}()

	body, err := json.Marshal(graphQLRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInvalidResponse, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(msg))
	}

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, 0, len(gr.Errors))
		for _, e := range gr.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrGraphQL, strings.Join(msgs, "; "))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// GetProviderAvailability 返回未解码的按天记录，由调用方逐条容错解析
func (c *Client) GetProviderAvailability(ctx context.Context, providerID string) ([]json.RawMessage, error) {
	var data struct {
		GetProviderAvailability []json.RawMessage `json:"getProviderAvailability"`
	}
	vars := map[string]any{"providerId": providerID}
	if err := c.do(ctx, "GetProviderAvailability", getProviderAvailabilityQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.GetProviderAvailability, nil
}

func (c *Client) UpdateDayAvailability(ctx context.Context, providerID string, day domain.DayCode, input domain.DayInput) error {
	vars := map[string]any{
		"providerId": providerID,
		"dayOfWeek":  day,
		"input":      input,
	}
	return c.do(ctx, "UpdateProviderAvailability", updateProviderAvailabilityMutation, vars, nil)
}

func (c *Client) UpdateExceptions(ctx context.Context, providerID string, exceptions []domain.ExceptionInput) error {
	vars := map[string]any{
		"providerId": providerID,
		"exceptions": exceptions,
	}
	return c.do(ctx, "UpdateProviderExceptions", updateProviderExceptionsMutation, vars, nil)
}

func (c *Client) ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	var data struct {
		ListProviders struct {
			Items []domain.Provider `json:"items"`
		} `json:"listProviders"`
	}
	vars := map[string]any{"tenantId": tenantID}
	if err := c.do(ctx, "ListProviders", listProvidersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.ListProviders.Items == nil {
		return []domain.Provider{}, nil
	}
	return data.ListProviders.Items, nil
}

// GetTenantSettings 返回租户设置的原始 JSON。历史数据里它可能是对象，也可能是再次编码过的字符串。
func (c *Client) GetTenantSettings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	var data struct {
		GetTenant *struct {
			ID       string          `json:"id"`
			Settings json.RawMessage `json:"settings"`
		} `json:"getTenant"`
	}
	vars := map[string]any{"tenantId": tenantID}
	if err := c.do(ctx, "GetTenant", getTenantQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.GetTenant == nil {
		return nil, ErrNotFound
	}
	return data.GetTenant.Settings, nil
}

func (c *Client) UpdateTenantSettings(ctx context.Context, tenantID string, settings string) error {
	vars := map[string]any{
		"tenantId": tenantID,
		"settings": settings,
	}
	return c.do(ctx, "UpdateTenantSettings", updateTenantSettingsMutation, vars, nil)
}
