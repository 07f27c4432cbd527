// Package products is the HTTP client for the products backend. It maps the
// backend's problem responses onto the gateway's port errors while keeping
// the backend-provided messages verbatim.
package products

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

var _ ports.ProductCatalog = (*Client)(nil)

// Client talks to the products API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the products client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("products base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

type productDocument struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	PassengerCapacity int    `json:"passenger_capacity"`
	MaximumSpeed      int    `json:"maximum_speed"`
	InStock           int    `json:"in_stock"`
}

type productList struct {
	Items []productDocument `json:"items"`
}

// Get loads one product or fails with ErrProductNotFound.
func (c *Client) Get(ctx context.Context, id string) (*gwtypes.Product, error) {
	var doc productDocument
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, http.StatusOK, &doc); err != nil {
		return nil, mapNotFound(err)
	}
	return toProduct(doc), nil
}

// List returns the products stored under the given ids, omitting the unknown
// ones. With no ids it lists the whole catalog.
func (c *Client) List(ctx context.Context, ids []string) ([]*gwtypes.Product, error) {
	path := "/products"
	if len(ids) > 0 {
		path += "?ids=" + url.QueryEscape(strings.Join(ids, ","))
	}
	var list productList
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &list); err != nil {
		return nil, err
	}
	result := make([]*gwtypes.Product, 0, len(list.Items))
	for _, doc := range list.Items {
		result = append(result, toProduct(doc))
	}
	return result, nil
}

// Create upserts the product document.
func (c *Client) Create(ctx context.Context, input gwtypes.CreateProductInput) error {
	body := productDocument{
		ID:                input.ID,
		Title:             input.Title,
		PassengerCapacity: input.PassengerCapacity,
		MaximumSpeed:      input.MaximumSpeed,
		InStock:           input.InStock,
	}
	return c.do(ctx, http.MethodPost, "/products", body, http.StatusCreated, nil)
}

// Delete removes the product or fails with ErrProductNotFound.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, http.StatusNoContent, nil); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode products request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build products request: %w", err)
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
			return fmt.Errorf("%w: decode products response: %v", ports.ErrBackendUnavailable, err)
		}
	}
	return nil
}

func toProduct(doc productDocument) *gwtypes.Product {
	return &gwtypes.Product{
		ID:                doc.ID,
		Title:             doc.Title,
		PassengerCapacity: doc.PassengerCapacity,
		MaximumSpeed:      doc.MaximumSpeed,
		InStock:           doc.InStock,
	}
}

// statusError carries a non-success backend response until the caller maps
// it onto a port sentinel.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string { return e.message }

func decodeProblem(resp *http.Response) error {
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: products API returned %s", ports.ErrBackendUnavailable, resp.Status)
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
		return &ports.NotFoundError{Sentinel: ports.ErrProductNotFound, Message: se.message}
	}
	return err
}
