package productsserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/skystore/storefront/internal/domains/products/adapters/memory"
	"github.com/skystore/storefront/internal/domains/products/application"
	"github.com/skystore/storefront/internal/domains/products/domain"
	sharederrors "github.com/skystore/storefront/internal/shared/errors"
)

func newTestRouter(t *testing.T, products ...*domain.Product) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	for _, product := range products {
		require.NoError(t, store.Create(t.Context(), product))
	}
	return NewRouter(NewProductsAPI(application.NewService(store)))
}

func perform(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func odyssey(t *testing.T) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct("the_odyssey", "The Odyssey", 101, 5, 10)
	require.NoError(t, err)
	return product
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, odyssey(t))
	recorder := perform(router, http.MethodGet, "/products/the_odyssey", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"in_stock":10`)
}

func TestGetProduct_NotFoundMessage(t *testing.T) {
	router := newTestRouter(t)
	recorder := perform(router, http.MethodGet, "/products/ghost", "")

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var problem sharederrors.ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "Product ID ghost does not exist", problem.Detail)
}

func TestListProducts_ByIDSetSkipsMissing(t *testing.T) {
	router := newTestRouter(t, odyssey(t))
	recorder := perform(router, http.MethodGet, "/products?ids=the_odyssey,ghost", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	require.Equal(t, "the_odyssey", list.Items[0].ID)
}

func TestCreateProduct(t *testing.T) {
	router := newTestRouter(t)
	body := `{"id":"the_enigma","title":"The Enigma","passenger_capacity":4,"maximum_speed":200,"in_stock":8}`
	recorder := perform(router, http.MethodPost, "/products", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"id":"the_enigma"`)

	recorder = perform(router, http.MethodGet, "/products/the_enigma", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestCreateProduct_MissingTitle(t *testing.T) {
	router := newTestRouter(t)
	recorder := perform(router, http.MethodPost, "/products", `{"id":"x"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var problem sharederrors.ProblemDetail
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, sharederrors.TypeValidation, problem.Type)
}

func TestDeleteProduct(t *testing.T) {
	router := newTestRouter(t, odyssey(t))
	recorder := perform(router, http.MethodDelete, "/products/the_odyssey", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = perform(router, http.MethodDelete, "/products/the_odyssey", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDecrementStock(t *testing.T) {
	router := newTestRouter(t, odyssey(t))
	recorder := perform(router, http.MethodPost, "/products/the_odyssey/stock-decrements", `{"amount":4}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"in_stock":6`)
}

func TestHandleOrderPlaced_DecrementsPerLine(t *testing.T) {
	router := newTestRouter(t, odyssey(t))
	body := `{"order_id":7,"lines":[{"product_id":"the_odyssey","quantity":3}]}`
	recorder := perform(router, http.MethodPost, "/order-events", body)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = perform(router, http.MethodGet, "/products/the_odyssey", "")
	require.Contains(t, recorder.Body.String(), `"in_stock":7`)
}
