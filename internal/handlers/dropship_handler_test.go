package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dropship-service/internal/models"
	"dropship-service/internal/tenants"
)

// MockOrderClassifier is a mock implementation of services.OrderClassifier
type MockOrderClassifier struct {
	mock.Mock
}

func (m *MockOrderClassifier) ClassifyOrder(ctx context.Context, order models.Order, tenantID, apiKey string) *models.OrderClassification {
	args := m.Called(ctx, order, tenantID, apiKey)
	return args.Get(0).(*models.OrderClassification)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testResolver() *tenants.Resolver {
	lookup := func(string) (string, bool) { return "", false }
	dir := tenants.Load([]tenants.TenantRecord{
		{Subdomain: "centricity-test-store"},
		{Subdomain: "acme-promo", CustomURL: "shop.acmepromo.com"},
	}, lookup)
	return tenants.NewResolver(dir, lookup)
}

func setupTestRouter(classifier *MockOrderClassifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewDropshipHandler(testResolver(), classifier, testLogger())
	r.GET("/api/check-order-dropship", handler.CheckOrderDropship)
	r.POST("/api/check-order-dropship", handler.CheckOrderDropship)
	return r
}

func TestCheckOrderDropshipBodyForm(t *testing.T) {
	classifier := new(MockOrderClassifier)
	classifier.On("ClassifyOrder", mock.Anything, mock.Anything, "acme-promo", "default-acme-promo").
		Return(&models.OrderClassification{
			VendorNames:             []string{"Acme Supply", "Visions"},
			ContainsDropshipVendors: true,
		})
	router := setupTestRouter(classifier)

	body, _ := json.Marshal(models.Order{LineItems: []models.LineItem{{ID: "123"}}})
	req := httptest.NewRequest(http.MethodPost, "/api/check-order-dropship", bytes.NewReader(body))
	req.Host = "acme-promo.mybrightsites.com"
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["orderContainsDropshipVendors"])
	assert.Equal(t, []interface{}{"Acme Supply", "Visions"}, resp["vendorNames"])
	classifier.AssertExpectations(t)
}

func TestCheckOrderDropshipQueryParamForm(t *testing.T) {
	classifier := new(MockOrderClassifier)
	classifier.On("ClassifyOrder", mock.Anything, mock.Anything, "centricity-test-store", "default-api-key").
		Return(&models.OrderClassification{VendorNames: []string{}, ContainsDropshipVendors: false})
	router := setupTestRouter(classifier)

	orderJSON, _ := json.Marshal(models.Order{LineItems: []models.LineItem{{ID: "123"}}})
	query := url.Values{"order": {string(orderJSON)}}
	req := httptest.NewRequest(http.MethodGet, "/api/check-order-dropship?"+query.Encode(), nil)
	req.Host = "localhost:8080"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	classifier.AssertExpectations(t)
}

func TestCheckOrderDropshipAcceptsOriginProductID(t *testing.T) {
	classifier := new(MockOrderClassifier)
	classifier.On("ClassifyOrder", mock.Anything, mock.MatchedBy(func(order models.Order) bool {
		return len(order.LineItems) == 1 && order.LineItems[0].LookupID() == "555"
	}), mock.Anything, mock.Anything).
		Return(&models.OrderClassification{VendorNames: []string{}, ContainsDropshipVendors: false})
	router := setupTestRouter(classifier)

	req := httptest.NewRequest(http.MethodPost, "/api/check-order-dropship",
		bytes.NewReader([]byte(`{"line_items": [{"origin_product_id": "555"}]}`)))
	req.Host = "localhost"
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	classifier.AssertExpectations(t)
}

func TestCheckOrderDropshipEmptyLineItems(t *testing.T) {
	classifier := new(MockOrderClassifier)
	router := setupTestRouter(classifier)

	req := httptest.NewRequest(http.MethodPost, "/api/check-order-dropship",
		bytes.NewReader([]byte(`{"line_items": []}`)))
	req.Host = "localhost"
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)

	// No vendor lookups are attempted for an invalid order
	classifier.AssertNotCalled(t, "ClassifyOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckOrderDropshipMalformedBody(t *testing.T) {
	classifier := new(MockOrderClassifier)
	router := setupTestRouter(classifier)

	req := httptest.NewRequest(http.MethodPost, "/api/check-order-dropship",
		bytes.NewReader([]byte(`not-json`)))
	req.Host = "localhost"
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	classifier.AssertNotCalled(t, "ClassifyOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckOrderDropshipMalformedQueryParam(t *testing.T) {
	classifier := new(MockOrderClassifier)
	router := setupTestRouter(classifier)

	req := httptest.NewRequest(http.MethodGet, "/api/check-order-dropship?order=%7Bnope", nil)
	req.Host = "localhost"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckOrderDropshipResolvesTenantFromHost(t *testing.T) {
	classifier := new(MockOrderClassifier)
	// Custom hostname maps to acme-promo rather than the suffix rule
	classifier.On("ClassifyOrder", mock.Anything, mock.Anything, "acme-promo", "default-acme-promo").
		Return(&models.OrderClassification{VendorNames: []string{}, ContainsDropshipVendors: false})
	router := setupTestRouter(classifier)

	body, _ := json.Marshal(models.Order{LineItems: []models.LineItem{{ID: "1"}}})
	req := httptest.NewRequest(http.MethodPost, "/api/check-order-dropship", bytes.NewReader(body))
	req.Host = "shop.acmepromo.com"
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	classifier.AssertExpectations(t)
}

func TestRequestHostnameStripsPort(t *testing.T) {
	assert.Equal(t, "localhost", requestHostname("localhost:8080"))
	assert.Equal(t, "acme-promo.mybrightsites.com", requestHostname("acme-promo.mybrightsites.com"))
	assert.Equal(t, "acme-promo.mybrightsites.com", requestHostname("acme-promo.mybrightsites.com:443"))
}
