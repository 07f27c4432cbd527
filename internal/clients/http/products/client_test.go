package products

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	gwtypes "github.com/skystore/storefront/internal/domains/gateway/application/types"
	"github.com/skystore/storefront/internal/domains/gateway/ports"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)
	return client
}

func TestGet(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/the_odyssey", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"the_odyssey","title":"The Odyssey","passenger_capacity":101,"maximum_speed":5,"in_stock":10}`))
	})

	got, err := client.Get(context.Background(), "the_odyssey")
	require.NoError(t, err)
	require.Equal(t, "The Odyssey", got.Title)
	require.Equal(t, 101, got.PassengerCapacity)
}

func TestGet_NotFoundKeepsBackendMessage(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", sharederrors.ContentTypeProblemJSON)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"/problems/not-found","title":"Not Found","status":404,"detail":"Product ID foo does not exist"}`))
	})

	_, err := client.Get(context.Background(), "foo")
	require.ErrorIs(t, err, ports.ErrProductNotFound)
	require.Equal(t, "Product ID foo does not exist", err.Error())
}

func TestList_SendsIDsAsQuery(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a,b", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{"items":[{"id":"a","title":"A"}]}`))
	})

	got, err := client.List(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)
}

func TestList_NoIDsScansEverything(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("ids"))
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	got, err := client.List(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCreate(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"the_enigma"}`))
	})

	err := client.Create(context.Background(), gwtypes.CreateProductInput{ID: "the_enigma", Title: "The Enigma", InStock: 8})
	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"detail":"Product ID gone does not exist"}`))
	})

	err := client.Delete(context.Background(), "gone")
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Get(context.Background(), "x")
	require.ErrorIs(t, err, ports.ErrBackendUnavailable)
}

func TestConnectionFailureMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)
	server.Close()

	_, err = client.Get(context.Background(), "x")
	require.ErrorIs(t, err, ports.ErrBackendUnavailable)
}
