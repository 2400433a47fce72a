package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/middleware"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// fakeCatalogAPI mimics the remote catalog/order API closely enough for
// end-to-end routing tests.
type fakeCatalogAPI struct {
	mu           sync.Mutex
	orders       map[int64]map[string]interface{}
	unauthorized bool
	failReorder  bool
	calls        map[string]int
	lastAuth     string
}

func newFakeCatalogAPI() *fakeCatalogAPI {
	return &fakeCatalogAPI{
		orders: map[int64]map[string]interface{}{
			1: {"id": 1, "customer_name": "Alya Putri", "email": "alya@example.com", "status": "pending", "total": "120.00", "created_at": "2026-10-14T03:00:00Z", "items": []interface{}{}},
			2: {"id": 2, "customer_name": "Bima Santoso", "email": "bima@example.com", "status": "paid", "total": 80, "created_at": "2026-10-12T03:00:00Z", "items": []interface{}{}},
		},
		calls: make(map[string]int),
	}
}

var fakeProducts = []map[string]interface{}{
	{"id": 1, "name": "Oud Nocturne", "price": "10.00", "stock": "5", "category_id": 1, "gender": "male", "is_hero": 1,
		"images": []map[string]interface{}{
			{"id": 11, "product_id": 1, "image_path": "products/a.jpg", "order": 0},
			{"id": 12, "product_id": 1, "image_path": "products/b.jpg", "order": 1},
			{"id": 13, "product_id": 1, "image_path": "products/c.jpg", "order": 2},
		}},
	{"id": 2, "name": "Citrus Veil", "price": 5, "stock": 9, "category_id": 2, "gender": "unisex", "is_flagship": true, "images": []interface{}{}},
}

var fakeCategories = []map[string]interface{}{
	{"id": 1, "name": "Eau de Parfum", "slug": "eau-de-parfum"},
	{"id": 2, "name": "Eau de Toilette", "slug": "eau-de-toilette"},
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (f *fakeCatalogAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": fakeProducts})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, p := range fakeProducts {
			if p["id"] == id {
				writeJSON(w, http.StatusOK, map[string]interface{}{"data": p})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "Product not found"})
	})
	mux.HandleFunc("POST /products/{id}/images/reorder", func(w http.ResponseWriter, r *http.Request) {
		if f.failReorder {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "ok"})
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": fakeCategories})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		orders := make([]map[string]interface{}, 0, len(f.orders))
		for _, o := range f.orders {
			orders = append(orders, o)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": orders})
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		order := map[string]interface{}{"id": 3, "customer_name": body["customer_name"], "email": body["email"], "status": "pending", "total": body["total"]}
		f.orders[3] = order
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": order})
	})
	mux.HandleFunc("PATCH /orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var body struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		order, ok := f.orders[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{})
			return
		}
		if body.Status == "shipped" && order["status"] != "paid" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"message": "Order must be paid before shipping"})
			return
		}
		order["status"] = body.Status
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": order})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.calls[r.Method+" "+r.URL.Path]++
		f.lastAuth = r.Header.Get("Authorization")

		if f.unauthorized {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"message": "Unauthenticated."})
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func (f *fakeCatalogAPI) set(fn func(f *fakeCatalogAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeCatalogAPI) authorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeCatalogAPI) called(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type StorefrontTestSuite struct {
	suite.Suite
	remote *httptest.Server
	api    *fakeCatalogAPI
	app    *App
	e      *echo.Echo
}

func (s *StorefrontTestSuite) SetupTest() {
	s.api = newFakeCatalogAPI()
	s.remote = httptest.NewServer(s.api.handler())

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	s.Require().NoError(err)

	conf := &config.Config{
		ServiceConfig: config.ServiceConfig{
			ServiceName:      "perfume-storefront-test",
			Timezone:         "Asia/Jakarta",
			CORSAllowOrigins: []string{"*"},
		},
		RemoteAPIConfig: config.RemoteAPIConfig{BaseURL: s.remote.URL, Token: "remote-token"},
		AdminConfig:     config.AdminConfig{Email: "admin@perfume.test", Name: "Back Office", PasswordHash: string(hash)},
		JWTSecret:       "jwt-secret",
	}

	s.app = &App{Config: conf, Storage: repository.CreateMemoryStorage()}
	s.e = s.app.Router()
}

func (s *StorefrontTestSuite) TearDownTest() {
	s.remote.Close()
}

func (s *StorefrontTestSuite) do(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func (s *StorefrontTestSuite) login() string {
	rec, env := s.do(http.MethodPost, "/api/v1/admin/login", map[string]string{"email": "admin@perfume.test", "password": "s3cret"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func (s *StorefrontTestSuite) Test_Ping() {
	rec, env := s.do(http.MethodGet, "/api/v1/ping", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", env.Status)
}

func (s *StorefrontTestSuite) Test_PublicCatalog() {
	type TestCase struct {
		Name           string
		Path           string
		ExpectedStatus int
		ExpectedCount  int
	}

	testCases := []TestCase{
		{Name: "All products", Path: "/api/v1/products", ExpectedStatus: http.StatusOK, ExpectedCount: 2},
		{Name: "Category filter", Path: "/api/v1/products?category=eau-de-toilette", ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "Hero", Path: "/api/v1/products/hero", ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "Flagship", Path: "/api/v1/products/flagship", ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "Categories", Path: "/api/v1/categories", ExpectedStatus: http.StatusOK, ExpectedCount: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, env := s.do(http.MethodGet, tc.Path, nil, nil)
			s.Equal(tc.ExpectedStatus, rec.Code)

			var items []json.RawMessage
			s.Require().NoError(json.Unmarshal(env.Data, &items))
			s.Len(items, tc.ExpectedCount)
		})
	}

	rec, env := s.do(http.MethodGet, "/api/v1/products/404", nil, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Product not found", env.Message)
}

func (s *StorefrontTestSuite) Test_CartAndCheckout() {
	rec, _ := s.do(http.MethodPost, "/api/v1/cart/items", map[string]int{"product_id": 1, "quantity": 2}, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	session := rec.Header().Get(middleware.HeaderCartSession)
	s.Require().NotEmpty(session)
	headers := map[string]string{middleware.HeaderCartSession: session}

	_, _ = s.do(http.MethodPost, "/api/v1/cart/items", map[string]int{"product_id": 2, "quantity": 1}, headers)

	rec, env := s.do(http.MethodGet, "/api/v1/cart", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	var cart struct {
		TotalPrice float64 `json:"total_price"`
		ItemCount  int64   `json:"item_count"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.Equal(25.0, cart.TotalPrice)
	s.Equal(int64(3), cart.ItemCount)

	checkout := map[string]string{
		"customer_name":  "Alya Putri",
		"email":          "alya@example.com",
		"phone":          "0812",
		"address":        "Jl. Melati 4",
		"city":           "Bandung",
		"postal_code":    "40115",
		"payment_method": "paypal",
	}

	rec, _ = s.do(http.MethodPost, "/api/v1/checkout", checkout, headers)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.api.called("POST /orders"))

	rec, env = s.do(http.MethodGet, "/api/v1/cart", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &cart))
	s.Equal(int64(0), cart.ItemCount)

	rec, env = s.do(http.MethodPost, "/api/v1/checkout", checkout, headers)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Cart is empty", env.Message)
	s.Equal(1, s.api.called("POST /orders"))
}

func (s *StorefrontTestSuite) Test_CheckoutValidation() {
	rec, env := s.do(http.MethodPost, "/api/v1/checkout", map[string]string{"email": "nope", "payment_method": "cash"}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	var fields []struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
	}
	s.Require().NoError(json.Unmarshal(env.Errors, &fields))
	s.Contains(fields, struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
	}{Field: "payment_method", Tag: "oneof"})
}

func (s *StorefrontTestSuite) Test_AdminRequiresToken() {
	type TestCase struct {
		Name   string
		Method string
		Path   string
	}

	testCases := []TestCase{
		{Name: "Orders", Method: http.MethodGet, Path: "/api/v1/admin/orders"},
		{Name: "Board", Method: http.MethodGet, Path: "/api/v1/admin/orders/board"},
		{Name: "Create category", Method: http.MethodPost, Path: "/api/v1/admin/categories"},
		{Name: "Me", Method: http.MethodGet, Path: "/api/v1/admin/me"},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, _ := s.do(tc.Method, tc.Path, nil, nil)
			s.Equal(http.StatusUnauthorized, rec.Code)
		})
	}
}

func (s *StorefrontTestSuite) Test_OrderStatusFailureIsReported() {
	token := s.login()
	headers := map[string]string{echo.HeaderAuthorization: "Bearer " + token}

	rec, _ := s.do(http.MethodGet, "/api/v1/admin/orders", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Bearer remote-token", s.api.authorization())

	rec, env := s.do(http.MethodPatch, "/api/v1/admin/orders/1/status", map[string]string{"status": "shipped"}, headers)
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Equal("Order must be paid before shipping", env.Message)
	s.Equal(2, s.api.called("GET /orders"))

	rec, env = s.do(http.MethodGet, "/api/v1/admin/orders?status=pending", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	var orders []struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &orders))
	s.Require().Len(orders, 1)
	s.Equal(int64(1), orders[0].ID)

	rec, _ = s.do(http.MethodPatch, "/api/v1/admin/orders/2/status", map[string]string{"status": "refunded"}, headers)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPatch, "/api/v1/admin/orders/2/status", map[string]string{"status": "shipped"}, headers)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *StorefrontTestSuite) Test_BoardMove() {
	token := s.login()
	headers := map[string]string{echo.HeaderAuthorization: "Bearer " + token}

	rec, env := s.do(http.MethodPost, "/api/v1/admin/orders/board/move", map[string]interface{}{"order_id": 1, "to_status": "paid", "to_index": 0}, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	var board []struct {
		Status string `json:"status"`
		Orders []struct {
			ID int64 `json:"id"`
		} `json:"orders"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &board))
	s.Require().Len(board, 5)
	s.Equal("paid", board[1].Status)
	s.Require().Len(board[1].Orders, 2)
	s.Equal(int64(1), board[1].Orders[0].ID)
	s.Equal(1, s.api.called("PATCH /orders/1/status"))
}

func (s *StorefrontTestSuite) Test_GallerySave() {
	token := s.login()
	headers := map[string]string{echo.HeaderAuthorization: "Bearer " + token}

	rec, env := s.do(http.MethodPost, "/api/v1/admin/products/1/images/main", map[string]int{"image_id": 13}, headers)
	s.Require().Equal(http.StatusOK, rec.Code, env.Message)
	s.Equal(1, s.api.called("POST /products/1/images/reorder"))

	s.api.set(func(f *fakeCatalogAPI) { f.failReorder = true })
	rec, _ = s.do(http.MethodPost, "/api/v1/admin/products/1/images/move-down", map[string]int{"index": 0}, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/v1/admin/products/1/images/save", nil, headers)
	s.Equal(http.StatusBadGateway, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/admin/products/1/images", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	var images []struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &images))
	s.Require().Len(images, 3)
	// The fake API does not persist reorders, so a refetch returns the seeded order.
	s.Equal(int64(11), images[0].ID)
}

func (s *StorefrontTestSuite) Test_RemoteUnauthorizedClearsSession() {
	token := s.login()
	headers := map[string]string{echo.HeaderAuthorization: "Bearer " + token}

	rec, _ := s.do(http.MethodGet, "/api/v1/admin/me", nil, headers)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.api.set(func(f *fakeCatalogAPI) { f.unauthorized = true })
	rec, _ = s.do(http.MethodGet, "/api/v1/admin/orders", nil, headers)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/admin/me", nil, headers)
	s.Equal(http.StatusUnauthorized, rec.Code)

	s.api.set(func(f *fakeCatalogAPI) { f.unauthorized = false })
	_, _ = s.do(http.MethodGet, "/api/v1/products/2", nil, nil)
	s.Equal("", s.api.authorization())
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}
