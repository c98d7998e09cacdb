package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshop/fitting-room/models"
)

func getProducts(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.ProductsHandler(w, req)
	return w
}

func TestProductsHandlerListsCatalog(t *testing.T) {
	w := getProducts(t, "/products")

	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 3)
	assert.Equal(t, "Camiseta Básica", products[0].Name)
}

func TestProductsHandlerLooksUpByID(t *testing.T) {
	w := getProducts(t, "/products?id=2")

	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Chaqueta de Cuero", product.Name)
	assert.Equal(t, "€199.95", product.Price)
}

func TestProductsHandlerUnknownID(t *testing.T) {
	w := getProducts(t, "/products?id=99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductsHandlerRejectsNonGet(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	w := httptest.NewRecorder()
	s.ProductsHandler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
