package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/google/uuid"
)

// ErrUnavailable is returned when the server cannot be reached.
var ErrUnavailable = errors.New("the server is unavailable")

const pageSize = 500

// APIError is an error response of the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded with %d: %s", e.Status, e.Message)
}

// Client talks to the REST API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient returns a client for the API at baseURL that authenticates with the token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type envelope[T any] struct {
	Data       T           `json:"data"`
	Pagination *pagination `json:"pagination"`
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if target == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// list fetches every page of a collection.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	all := make([]T, 0)
	for page := 1; ; page++ {
		var resp envelope[[]T]
		err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s?page=%d&limit=%d", path, page, pageSize), nil, &resp)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Data...)
		if resp.Pagination == nil || page >= resp.Pagination.Pages {
			return all, nil
		}
	}
}

func single[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var resp envelope[T]
	err := c.do(ctx, method, path, body, &resp)
	return resp.Data, err
}

// Login exchanges the credentials for a token and stores it in the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	session, err := single[struct {
		Token string `json:"token"`
	}](ctx, c, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	c.Token = session.Token
	return nil
}

func (c *Client) Budgets(ctx context.Context) ([]ledger.Budget, error) {
	return list[ledger.Budget](ctx, c, "/budgets")
}

func (c *Client) Expenses(ctx context.Context) ([]ledger.Expense, error) {
	return list[ledger.Expense](ctx, c, "/expenses")
}

func (c *Client) Categories(ctx context.Context) ([]ledger.Category, error) {
	return list[ledger.Category](ctx, c, "/categories")
}

func (c *Client) Transactions(ctx context.Context) ([]ledger.Transaction, error) {
	return list[ledger.Transaction](ctx, c, "/transactions")
}

func (c *Client) Metrics(ctx context.Context) (ledger.DashboardMetrics, error) {
	return single[ledger.DashboardMetrics](ctx, c, http.MethodGet, "/dashboard/metrics", nil)
}

func (c *Client) CreateBudget(ctx context.Context, b ledger.Budget) (ledger.Budget, error) {
	return single[ledger.Budget](ctx, c, http.MethodPost, "/budgets", map[string]any{
		"name":      b.Name,
		"category":  b.Category,
		"allocated": b.Allocated,
		"period":    b.Period,
	})
}

func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, p ledger.BudgetPatch) (ledger.Budget, error) {
	body := make(map[string]any)
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Category != nil {
		body["category"] = *p.Category
	}
	if p.Allocated != nil {
		body["allocated"] = *p.Allocated
	}
	if p.Period != nil {
		body["period"] = *p.Period
	}

	return single[ledger.Budget](ctx, c, http.MethodPatch, "/budgets/"+id.String(), body)
}

func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+id.String(), nil, nil)
}

func (c *Client) CreateExpense(ctx context.Context, e ledger.Expense) (ledger.Expense, error) {
	body := map[string]any{
		"description": e.Description,
		"amount":      e.Amount,
		"category":    e.Category,
		"budgetId":    e.BudgetID,
		"vendor":      e.Vendor,
		"department":  e.Department,
		"status":      e.Status,
		"tags":        e.Tags,
	}
	if !e.Date.IsZero() {
		body["date"] = e.Date
	}

	return single[ledger.Expense](ctx, c, http.MethodPost, "/expenses", body)
}

func (c *Client) UpdateExpense(ctx context.Context, id uuid.UUID, p ledger.ExpensePatch) (ledger.Expense, error) {
	body := make(map[string]any)
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Amount != nil {
		body["amount"] = *p.Amount
	}
	if p.Category != nil {
		body["category"] = *p.Category
	}
	if p.BudgetID != nil {
		body["budgetId"] = *p.BudgetID
	}
	if p.Date != nil {
		body["date"] = *p.Date
	}
	if p.Vendor != nil {
		body["vendor"] = *p.Vendor
	}
	if p.Department != nil {
		body["department"] = *p.Department
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.Tags != nil {
		body["tags"] = *p.Tags
	}

	return single[ledger.Expense](ctx, c, http.MethodPatch, "/expenses/"+id.String(), body)
}

func (c *Client) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+id.String(), nil, nil)
}

func (c *Client) ApproveExpense(ctx context.Context, id uuid.UUID) (ledger.Expense, error) {
	return single[ledger.Expense](ctx, c, http.MethodPatch, "/expenses/"+id.String()+"/approve", nil)
}

func (c *Client) RejectExpense(ctx context.Context, id uuid.UUID) (ledger.Expense, error) {
	return single[ledger.Expense](ctx, c, http.MethodPatch, "/expenses/"+id.String()+"/reject", nil)
}
