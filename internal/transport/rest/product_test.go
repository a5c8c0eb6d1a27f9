package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cerrors "github.com/BeltranCh97/catalog-service/internal/errors"
	"github.com/BeltranCh97/catalog-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface.
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	err      error
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) FindByCategoryID(_ context.Context, _ int64) ([]service.ProductDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductSaveDto) (*service.ProductDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductSaveDto) (*service.ProductDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.err
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to a JSON string.
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func Test_ProductHandler_FindByID(t *testing.T) {
	price := decimal.RequireFromString("19.90")
	toy := &service.ProductDto{ID: 1, Name: "Toy", Price: price, StockQuantity: 3, AvailabilityStatus: service.StatusAvailable}
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockProductService{product: toy},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, toy),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "not-a-number",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: not-a-number"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{err: cerrors.ErrProductNotFound},
			productID:    "99",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 99 not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{err: errors.New("service unavailable")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID 1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.FindByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductHandler_FindAll(t *testing.T) {
	price := decimal.RequireFromString("5.00")
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: mockProductService{products: []service.ProductDto{
				{ID: 1, Name: "Toy", Price: price, StockQuantity: 2, AvailabilityStatus: service.StatusAvailable},
			}},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, []service.ProductDto{
				{ID: 1, Name: "Toy", Price: price, StockQuantity: 2, AvailabilityStatus: service.StatusAvailable},
			}),
		},
		{
			name:         "Success - empty list",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{err: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			rr := httptest.NewRecorder()

			// when
			api.FindAll(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductHandler_FindByCategory(t *testing.T) {
	// An unknown category behaves exactly like an empty one: 200 with [].
	api := NewProductHandler(&mockProductService{products: []service.ProductDto{}}, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/products/category/42", nil)
	req.SetPathValue("categoryId", "42")
	rr := httptest.NewRecorder()

	api.FindByCategory(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func Test_ProductHandler_Create(t *testing.T) {
	price := decimal.RequireFromString("19.90")
	created := &service.ProductDto{ID: 1, Name: "Toy", Price: price, StockQuantity: 3, AvailabilityStatus: service.StatusAvailable}
	testCases := []struct {
		name          string
		mockService   mockProductService
		body          string
		expectedCode  int
		expectedBody  string
		validationKey string
	}{
		{
			name:         "Success - product created",
			mockService:  mockProductService{product: created},
			body:         `{"name":"Toy","price":19.90,"stockQuantity":3,"availabilityStatus":"AVAILABLE"}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, created),
		},
		{
			name: "Success - zero stock is valid input",
			mockService: mockProductService{product: &service.ProductDto{
				ID: 2, Name: "Toy", Price: price, StockQuantity: 0, AvailabilityStatus: service.StatusOutOfStock,
			}},
			body:         `{"name":"Toy","price":19.90,"stockQuantity":0,"availabilityStatus":"AVAILABLE"}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, &service.ProductDto{
				ID: 2, Name: "Toy", Price: price, StockQuantity: 0, AvailabilityStatus: service.StatusOutOfStock,
			}),
		},
		{
			name:          "Error - missing name",
			mockService:   mockProductService{},
			body:          `{"price":19.90,"stockQuantity":3,"availabilityStatus":"AVAILABLE"}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "Name",
		},
		{
			name:          "Error - blank name",
			mockService:   mockProductService{},
			body:          `{"name":"   ","price":19.90,"stockQuantity":3,"availabilityStatus":"AVAILABLE"}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "Name",
		},
		{
			name:          "Error - negative price",
			mockService:   mockProductService{},
			body:          `{"name":"Toy","price":-1,"stockQuantity":3,"availabilityStatus":"AVAILABLE"}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "Price",
		},
		{
			name:          "Error - negative stock",
			mockService:   mockProductService{},
			body:          `{"name":"Toy","price":19.90,"stockQuantity":-1,"availabilityStatus":"AVAILABLE"}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "StockQuantity",
		},
		{
			name:          "Error - missing stock",
			mockService:   mockProductService{},
			body:          `{"name":"Toy","price":19.90,"availabilityStatus":"AVAILABLE"}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "StockQuantity",
		},
		{
			name:          "Error - missing availability status",
			mockService:   mockProductService{},
			body:          `{"name":"Toy","price":19.90,"stockQuantity":3}`,
			expectedCode:  http.StatusBadRequest,
			validationKey: "AvailabilityStatus",
		},
		{
			name:         "Error - malformed body",
			mockService:  mockProductService{},
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{err: errors.New("boom")},
			body:         `{"name":"Toy","price":19.90,"stockQuantity":3,"availabilityStatus":"AVAILABLE"}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create product"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.Create(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.validationKey != "" {
				var resp struct {
					ValidationErrors map[string]string `json:"validation_errors"`
				}
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Contains(t, resp.ValidationErrors, tc.validationKey)
				return
			}
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductHandler_Update(t *testing.T) {
	price := decimal.RequireFromString("25.00")
	updated := &service.ProductDto{ID: 1, Name: "Bigger Toy", Price: price, StockQuantity: 7, AvailabilityStatus: service.StatusAvailable}
	body := `{"name":"Bigger Toy","price":25.00,"stockQuantity":7,"availabilityStatus":"AVAILABLE"}`
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product updated",
			mockService:  mockProductService{product: updated},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, updated),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{err: cerrors.ErrProductNotFound},
			productID:    "99",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 99 not found"}),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: abc"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPut, "/api/products/"+tc.productID, strings.NewReader(body))
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.Update(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductHandler_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{},
			productID:    "1",
			expectedCode: http.StatusNoContent,
			expectedBody: "",
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{err: cerrors.ErrProductNotFound},
			productID:    "99",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 99 not found"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodDelete, "/api/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.DeleteByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
