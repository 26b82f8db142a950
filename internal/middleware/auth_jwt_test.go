package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type mwOKResponse struct {
	CustomerID   int64  `json:"customer_id"`
	AccountType  string `json:"account_type"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}

// =====================
// CustomerRepository モック
// =====================

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepo) List(ctx context.Context, q repository.CustomerListQuery) ([]model.Customer, int64, error) {
	panic("not used in middleware tests")
}

func (m *MockCustomerRepo) UpdateProfile(ctx context.Context, id int64, fullName string, phone *string) error {
	panic("not used in middleware tests")
}

func (m *MockCustomerRepo) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in middleware tests")
}

var _ repository.CustomerRepository = (*MockCustomerRepo)(nil)

// =====================
// helper
// =====================

func makeClaims(customerID int64, accountType string, tv int, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"customer_id": customerID,
		"email":       "user@test.com",
		"type":        accountType,
		"tv":          tv,
		"iat":         time.Now().Unix(),
		"exp":         exp.Unix(),
	}
}

func mustSign(t *testing.T, secret string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func validToken(t *testing.T, customerID int64, accountType string, tv int) string {
	t.Helper()
	return mustSign(t, testSecret, makeClaims(customerID, accountType, tv, time.Now().Add(time.Hour)), jwt.SigningMethodHS256)
}

func okHandler(c echo.Context) error {
	id, _ := c.Get(middleware.CtxCustomerIDKey).(int64)
	typ, _ := c.Get(middleware.CtxAccountTypeKey).(string)
	email, _ := c.Get(middleware.CtxEmailKey).(string)
	tv, _ := c.Get(middleware.CtxTokenVersionKey).(int)
	return c.JSON(http.StatusOK, mwOKResponse{
		CustomerID:   id,
		AccountType:  typ,
		Email:        email,
		TokenVersion: tv,
	})
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

func decodeMWOK(t *testing.T, rec *httptest.ResponseRecorder) mwOKResponse {
	t.Helper()
	var r mwOKResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		header  func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "no header",
			header:  func(t *testing.T) string { return "" },
			wantMsg: "Access token is required",
		},
		{
			name:    "bearer without token",
			header:  func(t *testing.T) string { return "Bearer " },
			wantMsg: "Access token is required",
		},
		{
			name:    "garbage",
			header:  func(t *testing.T) string { return "Bearer abc.def.ghi" },
			wantMsg: "Invalid token",
		},
		{
			name: "wrong signature",
			header: func(t *testing.T) string {
				return "Bearer " + mustSign(t, "wrong-secret", makeClaims(1, "customer", 0, time.Now().Add(time.Hour)), jwt.SigningMethodHS256)
			},
			wantMsg: "Invalid token",
		},
		{
			name: "wrong alg",
			header: func(t *testing.T) string {
				return "Bearer " + mustSign(t, testSecret, makeClaims(1, "customer", 0, time.Now().Add(time.Hour)), jwt.SigningMethodHS512)
			},
			wantMsg: "Invalid token",
		},
		{
			name: "expired",
			header: func(t *testing.T) string {
				return "Bearer " + mustSign(t, testSecret, makeClaims(1, "customer", 0, time.Now().Add(-time.Minute)), jwt.SigningMethodHS256)
			},
			wantMsg: "Token has expired",
		},
		{
			name: "missing customer_id",
			header: func(t *testing.T) string {
				claims := makeClaims(1, "customer", 0, time.Now().Add(time.Hour))
				delete(claims, "customer_id")
				return "Bearer " + mustSign(t, testSecret, claims, jwt.SigningMethodHS256)
			},
			wantMsg: "Invalid token",
		},
		{
			name: "missing type",
			header: func(t *testing.T) string {
				claims := makeClaims(1, "customer", 0, time.Now().Add(time.Hour))
				delete(claims, "type")
				return "Bearer " + mustSign(t, testSecret, claims, jwt.SigningMethodHS256)
			},
			wantMsg: "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/protected", okHandler, middleware.AuthJWT(testSecret))

			rec := runRequest(t, e, tt.header(t))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			body := decodeMWError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Equal(t, "UNAUTHORIZED", body.Code)
		})
	}
}

// 正常：ctxに値が入る
func TestAuthJWT_Success_SetsContext(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(testSecret))

	rec := runRequest(t, e, "Bearer "+validToken(t, 123, "customer", 7))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeMWOK(t, rec)
	assert.Equal(t, int64(123), body.CustomerID)
	assert.Equal(t, "customer", body.AccountType)
	assert.Equal(t, "user@test.com", body.Email)
	assert.Equal(t, 7, body.TokenVersion)
}

// Bearerなしの生トークンも受け付ける
func TestAuthJWT_Success_BareToken(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.AuthJWT(testSecret))

	rec := runRequest(t, e, validToken(t, 9, "admin", 0))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), decodeMWOK(t, rec).CustomerID)
}

func TestOptionalAuth(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.OptionalAuth(testSecret))

	// トークンなしでも通る
	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decodeMWOK(t, rec).CustomerID)

	// 壊れたトークンも無視
	rec = runRequest(t, e, "Bearer broken")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decodeMWOK(t, rec).CustomerID)

	rec = runRequest(t, e, "Bearer "+validToken(t, 5, "customer", 0))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), decodeMWOK(t, rec).CustomerID)
}

// =====================
// RequireCustomer / RequireAdmin
// =====================

func TestRoleGuards(t *testing.T) {
	tests := []struct {
		name        string
		guard       echo.MiddlewareFunc
		accountType string
		wantCode    int
		wantMsg     string
	}{
		{"customer on customer route", middleware.RequireCustomer(), "customer", http.StatusOK, ""},
		{"admin on customer route", middleware.RequireCustomer(), "admin", http.StatusForbidden, "Customer access required"},
		{"admin on admin route", middleware.RequireAdmin(), "admin", http.StatusOK, ""},
		{"customer on admin route", middleware.RequireAdmin(), "customer", http.StatusForbidden, "Admin access required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/protected", okHandler, middleware.AuthJWT(testSecret), tt.guard)

			rec := runRequest(t, e, "Bearer "+validToken(t, 1, tt.accountType, 0))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				body := decodeMWError(t, rec)
				assert.Equal(t, tt.wantMsg, body.Message)
				assert.Equal(t, "FORBIDDEN", body.Code)
			}
		})
	}
}

// AuthJWT無しでGuardだけ => 401
func TestRequireAdmin_MissingContext(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, middleware.RequireAdmin())

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// AccountGuard
// =====================

func TestAccountGuard_MissingContext(t *testing.T) {
	e := echo.New()
	customers := new(MockCustomerRepo)
	e.GET("/protected", okHandler, middleware.AccountGuard(customers))

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 論理削除済み（リポジトリから見えない）=> 401
func TestAccountGuard_DeletedAccount(t *testing.T) {
	e := echo.New()
	customers := new(MockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(1)).Return(nil, nil)

	e.GET("/protected", okHandler, middleware.AuthJWT(testSecret), middleware.AccountGuard(customers))

	rec := runRequest(t, e, "Bearer "+validToken(t, 1, "customer", 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeMWError(t, rec).Message)
	customers.AssertExpectations(t)
}

// tv不一致 => 401
func TestAccountGuard_TokenVersionMismatch(t *testing.T) {
	e := echo.New()
	customers := new(MockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(1)).Return(&model.Customer{
		ID:           1,
		AccountType:  model.AccountCustomer,
		TokenVersion: 1,
	}, nil)

	e.GET("/protected", okHandler, middleware.AuthJWT(testSecret), middleware.AccountGuard(customers))

	rec := runRequest(t, e, "Bearer "+validToken(t, 1, "customer", 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	customers.AssertExpectations(t)
}

// DB上の種別で上書きされる（降格された管理者は管理APIに入れない）
func TestAccountGuard_UsesStoredAccountType(t *testing.T) {
	e := echo.New()
	customers := new(MockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(2)).Return(&model.Customer{
		ID:           2,
		AccountType:  model.AccountCustomer,
		TokenVersion: 3,
	}, nil)

	e.GET("/protected", okHandler,
		middleware.AuthJWT(testSecret),
		middleware.AccountGuard(customers),
		middleware.RequireAdmin(),
	)

	rec := runRequest(t, e, "Bearer "+validToken(t, 2, "admin", 3))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	customers.AssertExpectations(t)
}

func TestAccountGuard_Success(t *testing.T) {
	e := echo.New()
	customers := new(MockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(1)).Return(&model.Customer{
		ID:           1,
		AccountType:  model.AccountCustomer,
		TokenVersion: 5,
	}, nil)

	e.GET("/protected", okHandler, middleware.AuthJWT(testSecret), middleware.AccountGuard(customers))

	rec := runRequest(t, e, "Bearer "+validToken(t, 1, "customer", 5))
	assert.Equal(t, http.StatusOK, rec.Code)
	customers.AssertExpectations(t)
}
