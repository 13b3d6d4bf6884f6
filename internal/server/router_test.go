package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"littlelemon/internal/auth"
	cartcontroller "littlelemon/internal/cart/controller"
	"littlelemon/internal/domain"
	"littlelemon/internal/dto"
	"littlelemon/internal/errors"
	menucontroller "littlelemon/internal/menu/controller"
	ordercontroller "littlelemon/internal/order/controller"
	usercontroller "littlelemon/internal/user/controller"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

type mockUserLoader struct{}

func (m *mockUserLoader) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id != 4 {
		return nil, errors.NewNotFoundError("user not found")
	}
	return &domain.User{ID: 4, Username: "alice"}, nil
}

type stubCartService struct{}

func (s *stubCartService) AddItem(ctx context.Context, userID uint, menuItemID uint, quantity *int) (*domain.MenuItem, error) {
	return &domain.MenuItem{ID: menuItemID, Name: "Burger"}, nil
}

func (s *stubCartService) ListItems(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	return []domain.CartLine{{ID: 1, UserID: userID, MenuItemID: 3, MenuItemName: "Burger", UnitPrice: decimal.RequireFromString("8.00"), Quantity: 2}}, nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uint) error {
	return nil
}

func newTestRouter(t *testing.T, pingErr error) (http.Handler, string) {
	logger := zap.NewNop()
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, _, err := tokens.Issue(4)
	require.NoError(t, err)

	authn := auth.NewAuthenticator(tokens, &mockUserLoader{}, logger)
	ctrls := Controllers{
		Menu:   menucontroller.NewMenuController(nil, logger),
		Cart:   cartcontroller.NewCartController(&stubCartService{}, logger),
		Order:  ordercontroller.NewOrderController(nil, nil, logger),
		Auth:   usercontroller.NewAuthController(nil, logger),
		Groups: usercontroller.NewGroupController(nil, logger),
	}

	return NewRouter(ctrls, authn.Middleware, &mockPinger{err: pingErr}, logger), token
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthz_DatabaseDown(t *testing.T) {
	router, _ := newTestRouter(t, assert.AnError)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPIRequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/menu-items"},
		{http.MethodGet, "/api/cart/menu-items"},
		{http.MethodPost, "/api/orders"},
		{http.MethodDelete, "/api/orders/1"},
		{http.MethodGet, "/api/groups/manager/users"},
		{http.MethodDelete, "/api/groups/delivery-crew/users/3"},
		{http.MethodGet, "/auth/users/me"},
	}

	for _, p := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestAPI_AuthenticatedCart(t *testing.T) {
	router, token := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/menu-items", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "16.00", body.Total)
}

func TestAPI_TokenScheme(t *testing.T) {
	router, token := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/menu-items", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
