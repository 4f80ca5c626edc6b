package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp sets up a Fiber app for testing with an isolated in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to connect to in-memory database")
	require.NoError(t, db.AutoMigrate(&models.Product{}), "failed to auto-migrate database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, nil, "")
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	productHandler.RegisterRoutes(app.Group("/api"))
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createProduct(t *testing.T, app *fiber.App, body string) models.Product {
	t.Helper()
	resp, data := doRequest(t, app, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var p models.Product
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

func decodeError(t *testing.T, data []byte) handlers.ErrorResponse {
	t.Helper()
	var e handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e), string(data))
	return e
}

func TestProductHandlers_CreateAndGet(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/api/products",
		`{"name":"Mouse","description":"Wireless mouse","price":19.99,"image":"https://example.com/m.png"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	var created models.Product
	require.NoError(t, json.Unmarshal(data, &created))
	_, err := uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "/api/products/"+created.ID, resp.Header.Get("Location"))

	resp, data = doRequest(t, app, http.MethodGet, "/api/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, created.ID, raw["id"])
	assert.Equal(t, "Mouse", raw["name"])
	assert.Equal(t, "Wireless mouse", raw["description"])
	assert.Equal(t, 19.99, raw["price"])
	assert.Equal(t, "https://example.com/m.png", raw["image"])
}

func TestProductHandlers_CreateIgnoresClientID(t *testing.T) {
	app, _ := setupApp(t)
	clientID := uuid.NewString()

	p := createProduct(t, app, fmt.Sprintf(`{"id":%q,"name":"A","description":"B","price":1}`, clientID))
	assert.NotEqual(t, clientID, p.ID)
	assert.Nil(t, p.Image)
}

func TestProductHandlers_GetAll(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(data))

	createProduct(t, app, `{"name":"A","description":"a","price":1}`)
	createProduct(t, app, `{"name":"B","description":"b","price":2}`)

	resp, data = doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	require.NoError(t, json.Unmarshal(data, &products))
	assert.Len(t, products, 2)
}

func TestProductHandlers_CreateValidation(t *testing.T) {
	app, db := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/api/products",
		fmt.Sprintf(`{"name":"","description":%q,"price":0}`, strings.Repeat("d", 501)))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	e := decodeError(t, data)
	assert.Equal(t, "Validation failed", e.Message)
	assert.Equal(t, map[string]string{
		"name":        "is required",
		"description": "must be at most 500 characters",
		"price":       "must be greater than 0",
	}, e.Errors)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductHandlers_InvalidBody(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/api/products", `{"name":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "Invalid request body", e.Message)
	assert.NotEmpty(t, e.Error)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/products", `{"name":"a","description":"b","price":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductHandlers_QuotedPriceRejected(t *testing.T) {
	app, db := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"a","description":"b","price":"5"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, data)
	assert.Equal(t, "Invalid request body", e.Message)
	assert.Equal(t, "price must be a JSON number", e.Error)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	p := createProduct(t, app, `{"name":"a","description":"b","price":5}`)
	resp, _ = doRequest(t, app, http.MethodPut, "/api/products/"+p.ID, `{"price":"7"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductHandlers_ImageRoundTrip(t *testing.T) {
	app, _ := setupApp(t)

	for _, image := range []string{"", "   ", "not a url"} {
		p := createProduct(t, app, fmt.Sprintf(`{"name":"a","description":"b","price":1,"image":%q}`, image))

		resp, data := doRequest(t, app, http.MethodGet, "/api/products/"+p.ID, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got models.Product
		require.NoError(t, json.Unmarshal(data, &got))
		require.NotNil(t, got.Image, "image %q", image)
		assert.Equal(t, image, *got.Image)
	}
}

func TestProductHandlers_TinyPositivePrice(t *testing.T) {
	app, _ := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"a","description":"b","price":1e-400}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
}

func TestProductHandlers_NotFound(t *testing.T) {
	app, _ := setupApp(t)
	missing := uuid.NewString()

	for _, tc := range []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/products/" + missing, ""},
		{http.MethodPut, "/api/products/" + missing, `{"price":5}`},
		{http.MethodPut, "/api/products/" + missing, `{"price":-5}`},
		{http.MethodDelete, "/api/products/" + missing, ""},
		{http.MethodGet, "/api/products/not-a-uuid", ""},
		{http.MethodDelete, "/api/products/not-a-uuid", ""},
	} {
		t.Run(tc.method+" "+tc.path+" "+tc.body, func(t *testing.T) {
			resp, data := doRequest(t, app, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
			e := decodeError(t, data)
			assert.Contains(t, e.Message, "not found")
		})
	}
}

func TestProductHandlers_Update(t *testing.T) {
	app, _ := setupApp(t)
	p := createProduct(t, app, `{"name":"Mouse","description":"Wireless","price":10,"image":"a.png"}`)
	path := "/api/products/" + p.ID

	resp, data := doRequest(t, app, http.MethodPut, path, `{"price":-5}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, data).Errors, "price")

	resp, data = doRequest(t, app, http.MethodPut, path, `{"price":5,"name":"  "}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var updated models.Product
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, "Wireless", updated.Description)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "a.png", *updated.Image)

	resp, data = doRequest(t, app, http.MethodPut, path, `{"image":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Nil(t, updated.Image)

	resp, data = doRequest(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stored models.Product
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Nil(t, stored.Image)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(5)))
}

func TestProductHandlers_EmptyUpdateLeavesRecord(t *testing.T) {
	app, _ := setupApp(t)
	p := createProduct(t, app, `{"name":"Mouse","description":"Wireless","price":10}`)
	path := "/api/products/" + p.ID

	_, before := doRequest(t, app, http.MethodGet, path, "")
	resp, _ := doRequest(t, app, http.MethodPut, path, `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, after := doRequest(t, app, http.MethodGet, path, "")

	assert.Equal(t, string(before), string(after))
}

func TestProductHandlers_Delete(t *testing.T) {
	app, _ := setupApp(t)
	p := createProduct(t, app, `{"name":"Mouse","description":"Wireless","price":10}`)
	path := "/api/products/" + p.ID

	resp, data := doRequest(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, data)

	resp, _ = doRequest(t, app, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductHandlers_StorageFailure(t *testing.T) {
	app, db := setupApp(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, data := doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Could not retrieve products", decodeError(t, data).Message)
}
