// Package store implements adapter.TransactionStore against the Transaction
// Store's REST API.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
	"github.com/finance-tracker/insights/internal/domain/entity"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/requestctx"
)

const (
	queryDateLayout = "2006-01-02"
	maxErrorBody    = 4 << 10
)

// Config holds the store client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// Client talks to the Transaction Store over HTTP.
// Reads are retried on transport failures and 5xx answers; writes never are.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
}

var _ adapter.TransactionStore = (*Client)(nil)

// NewClient creates a new store client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid store base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid store base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
	}, nil
}

// ListTransactions fetches the transactions matching the filter.
func (c *Client) ListTransactions(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, error) {
	query := url.Values{}
	if filter.Type != nil {
		query.Set("type", filter.Type.String())
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.StartDate != nil {
		query.Set("start_date", filter.StartDate.Format(queryDateLayout))
	}
	if filter.EndDate != nil {
		query.Set("end_date", filter.EndDate.Format(queryDateLayout))
	}

	var payload []transactionPayload
	if err := c.get(ctx, "/transactions", query, &payload); err != nil {
		return nil, err
	}

	transactions := make([]entity.Transaction, 0, len(payload))
	for _, p := range payload {
		transactions = append(transactions, p.toEntity())
	}
	return transactions, nil
}

// GetTransaction fetches a single transaction.
func (c *Client) GetTransaction(ctx context.Context, id int64) (*entity.Transaction, error) {
	var payload transactionPayload
	if err := c.get(ctx, transactionPath(id), nil, &payload); err != nil {
		return nil, err
	}
	txn := payload.toEntity()
	return &txn, nil
}

// CreateTransaction stores a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	var payload transactionPayload
	if err := c.send(ctx, http.MethodPost, "/transactions", newTransactionRequest(input), &payload); err != nil {
		return nil, err
	}
	txn := payload.toEntity()
	return &txn, nil
}

// UpdateTransaction replaces an existing transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	var payload transactionPayload
	if err := c.send(ctx, http.MethodPut, transactionPath(id), newTransactionRequest(input), &payload); err != nil {
		return nil, err
	}
	txn := payload.toEntity()
	return &txn, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, transactionPath(id), nil, nil)
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var payload []categoryPayload
	if err := c.get(ctx, "/categories", nil, &payload); err != nil {
		return nil, err
	}

	categories := make([]entity.Category, 0, len(payload))
	for _, p := range payload {
		categories = append(categories, p.toEntity())
	}
	return categories, nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error) {
	var payload categoryPayload
	body := categoryRequest{Name: input.Name, Type: input.Type}
	if err := c.send(ctx, http.MethodPost, "/categories", body, &payload); err != nil {
		return nil, err
	}
	category := payload.toEntity()
	return &category, nil
}

// MonthlyReport fetches the per-month totals.
func (c *Client) MonthlyReport(ctx context.Context) ([]entity.MonthlyReportRow, error) {
	var payload []monthlyReportPayload
	if err := c.get(ctx, "/transactions/monthly", nil, &payload); err != nil {
		return nil, err
	}

	rows := make([]entity.MonthlyReportRow, 0, len(payload))
	for _, p := range payload {
		rows = append(rows, p.toEntity())
	}
	return rows, nil
}

// Ping checks that the store answers on its categories endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/categories", nil, nil, nil)
}

func transactionPath(id int64) string {
	return "/transactions/" + strconv.FormatInt(id, 10)
}

// get performs an idempotent read, retrying transport failures and 5xx answers.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	var err error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if waitErr := c.wait(ctx, attempt); waitErr != nil {
				return err
			}
			slog.Debug("Retrying store request", "path", path, "attempt", attempt+1, "error", err)
		}

		err = c.do(ctx, http.MethodGet, path, query, nil, out)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}

// send performs a mutation exactly once.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

// wait sleeps for the linear backoff of the given attempt or until ctx is done.
func (c *Client) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(time.Duration(attempt) * c.retryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode store request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create store request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestctx.HeaderRequestID, requestctx.EnsureRequestID(ctx))

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Store request failed", "method", method, "path", path, "error", err)
		return domainerror.NewTransportError(domainerror.ErrCodeStoreUnreachable, "transaction store is unreachable", 0, err)
	}
	defer resp.Body.Close()

	slog.Debug("Store request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerror.NewTransportError(
			domainerror.ErrCodeStoreMalformedPayload,
			"transaction store returned a malformed payload",
			resp.StatusCode,
			err,
		)
	}
	return nil
}

// statusError maps a non-2xx answer onto the store error taxonomy. The body
// text is the store's user-facing message.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domainerror.NewNotFoundError(message)
	case http.StatusConflict:
		return domainerror.NewValidationError(domainerror.ErrCodeStoreConflict, message, resp.StatusCode)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domainerror.NewValidationError(domainerror.ErrCodeStoreRejected, message, resp.StatusCode)
	default:
		return domainerror.NewTransportError(
			domainerror.ErrCodeStoreUnexpectedStatus,
			fmt.Sprintf("transaction store answered %d", resp.StatusCode),
			resp.StatusCode,
			errors.New(message),
		)
	}
}

// retryable reports whether a read may be attempted again.
func retryable(err error) bool {
	var storeErr *domainerror.StoreError
	if !errors.As(err, &storeErr) || storeErr.Kind != domainerror.StoreErrorKindTransport {
		return false
	}
	switch storeErr.Code {
	case domainerror.ErrCodeStoreUnreachable:
		return true
	case domainerror.ErrCodeStoreUnexpectedStatus:
		return storeErr.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
