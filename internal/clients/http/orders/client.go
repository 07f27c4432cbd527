// Package orders is the HTTP client for the orders backend.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

var _ ports.OrderBackend = (*Client)(nil)

// Client talks to the orders API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the orders client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("orders base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

type orderLineDocument struct {
	ID        int64           `json:"id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type orderDocument struct {
	ID      int64               `json:"id"`
	Details []orderLineDocument `json:"details"`
}

type orderPageDocument struct {
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int64           `json:"total"`
	Items    []orderDocument `json:"items"`
}

type newOrderLineDocument struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type createOrderRequest struct {
	Details []newOrderLineDocument `json:"details"`
}

// GetOrder loads one order or fails with ErrOrderNotFound.
func (c *Client) GetOrder(ctx context.Context, id int64) (*gwtypes.Order, error) {
	var doc orderDocument
	if err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(id, 10), nil, http.StatusOK, &doc); err != nil {
		return nil, mapNotFound(err)
	}
	return toOrder(doc), nil
}

// GetOrderByProductID returns any order referencing the product, or nil when
// the backend knows none.
func (c *Client) GetOrderByProductID(ctx context.Context, productID string) (*gwtypes.Order, error) {
	var doc orderDocument
	err := c.do(ctx, http.MethodGet, "/orders-by-product/"+url.PathEscape(productID), nil, http.StatusOK, &doc)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return toOrder(doc), nil
}

// ListOrders returns one page of orders.
func (c *Client) ListOrders(ctx context.Context, page, pageSize int) (*gwtypes.OrderPage, error) {
	path := fmt.Sprintf("/orders?page=%d&page_size=%d", page, pageSize)
	var doc orderPageDocument
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &doc); err != nil {
		return nil, err
	}
	items := make([]*gwtypes.Order, 0, len(doc.Items))
	for _, order := range doc.Items {
		items = append(items, toOrder(order))
	}
	return &gwtypes.OrderPage{Page: doc.Page, PageSize: doc.PageSize, Total: doc.Total, Items: items}, nil
}

// CreateOrder stores the submitted lines and returns the assigned order.
func (c *Client) CreateOrder(ctx context.Context, lines []gwtypes.NewOrderLine) (*gwtypes.Order, error) {
	request := createOrderRequest{Details: make([]newOrderLineDocument, 0, len(lines))}
	for _, line := range lines {
		request.Details = append(request.Details, newOrderLineDocument{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	var doc orderDocument
	if err := c.do(ctx, http.MethodPost, "/orders", request, http.StatusCreated, &doc); err != nil {
		return nil, err
	}
	return toOrder(doc), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode orders request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build orders request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeProblem(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode orders response: %v", ports.ErrBackendUnavailable, err)
		}
	}
	return nil
}

func toOrder(doc orderDocument) *gwtypes.Order {
	order := &gwtypes.Order{ID: doc.ID, Details: make([]gwtypes.OrderLine, 0, len(doc.Details))}
	for _, line := range doc.Details {
		order.Details = append(order.Details, gwtypes.OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return order
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string { return e.message }

func decodeProblem(resp *http.Response) error {
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: orders API returned %s", ports.ErrBackendUnavailable, resp.Status)
	}
	message := resp.Status
	var problem sharederrors.ProblemDetail
	if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil && problem.Detail != "" {
		message = problem.Detail
	}
	return &statusError{status: resp.StatusCode, message: message}
}

func mapNotFound(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.status == http.StatusNotFound {
		return &ports.NotFoundError{Sentinel: ports.ErrOrderNotFound, Message: se.message}
	}
	return err
}
