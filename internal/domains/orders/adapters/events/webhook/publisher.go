// Package webhook delivers order events to a configured HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skystore/storefront/internal/domains/orders/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher POSTs order-placed events as JSON to a webhook URL.
type Publisher struct {
	endpoint string
	http     *http.Client
}

// NewPublisher builds a webhook publisher with sane defaults.
func NewPublisher(endpoint string, httpClient *http.Client) (*Publisher, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("webhook endpoint is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Publisher{endpoint: endpoint, http: httpClient}, nil
}

// PublishOrderPlaced delivers the event, treating any non-2xx reply as failure.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event ports.OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order placed event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("deliver order placed event: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook rejected order placed event: %s", resp.Status)
	}
	return nil
}

// NopPublisher drops events; used when no webhook is configured.
type NopPublisher struct{}

// PublishOrderPlaced discards the event.
func (NopPublisher) PublishOrderPlaced(context.Context, ports.OrderPlaced) error { return nil }

var _ ports.EventPublisher = NopPublisher{}
