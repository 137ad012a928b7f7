package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FransManlangit/jicus-pos/internal/backendtest"
	"github.com/FransManlangit/jicus-pos/internal/domain"
)

func setupClient(t *testing.T) (*Client, *backendtest.Server) {
	t.Helper()
	backend := backendtest.Start(t)
	return New(backend.URL(), 5*time.Second), backend
}

func TestProducts(t *testing.T) {
	c, backend := setupClient(t)
	backend.Products = []domain.Product{
		{ID: "p1", Name: "Burger", Price: decimal.RequireFromString("100.00"), Category: "food"},
	}

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Burger", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("100.00")))
}

func TestLogin_Success(t *testing.T) {
	c, backend := setupClient(t)

	token, err := c.Login(context.Background(), backend.Email, backend.Password)
	require.NoError(t, err)
	assert.Equal(t, backend.Token, token)
}

func TestLogin_BadCredentials(t *testing.T) {
	c, _ := setupClient(t)

	_, err := c.Login(context.Background(), "cashier@jicus.ph", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Please provide correct credentials", apiErr.Message)
}

func TestUser(t *testing.T) {
	c, backend := setupClient(t)
	backend.Users["u1"] = domain.UserProfile{
		Name:   "Juan dela Cruz",
		Email:  "juan@jicus.ph",
		Avatar: domain.Avatar{URL: "https://cdn.example/avatar.png"},
	}

	profile, err := c.User(context.Background(), backend.Token, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Juan dela Cruz", profile.Name)
	assert.Equal(t, "https://cdn.example/avatar.png", profile.Avatar.URL)
}

func TestUser_MissingToken(t *testing.T) {
	c, _ := setupClient(t)

	_, err := c.User(context.Background(), "", "u1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCreateOrder_SendsPayloadAndKey(t *testing.T) {
	c, backend := setupClient(t)

	cash := 210.0
	order := &domain.Order{
		UserID:        "u1",
		OrderItems:    []domain.OrderItem{{Product: "p1", Quantity: 2}},
		PaymentMethod: "Cash",
		CashAmount:    &cash,
		ItemsPrice:    200,
		TaxPrice:      10,
		TotalPrice:    210,
	}

	require.NoError(t, c.CreateOrder(context.Background(), backend.Token, order, "key-123"))

	received := backend.Orders()
	require.Len(t, received, 1)
	assert.Equal(t, "key-123", received[0].IdempotencyKey)
	assert.Equal(t, "u1", received[0].Order.UserID)
	require.NotNil(t, received[0].Order.CashAmount)
	assert.Equal(t, 210.0, *received[0].Order.CashAmount)
	assert.Nil(t, received[0].Order.EWallet)
}

func TestCreateOrder_SurfacesServerMessage(t *testing.T) {
	c, backend := setupClient(t)
	backend.FailOrders(http.StatusInternalServerError, "order could not be saved")

	err := c.CreateOrder(context.Background(), backend.Token, &domain.Order{UserID: "u1"}, "key-1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "order could not be saved", apiErr.Error())
}

func TestAPIError_GenericFallback(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "backend returned status 502", err.Error())
}

func TestBreaker_OpensAfterConsecutiveServerFailures(t *testing.T) {
	c, backend := setupClient(t)
	backend.FailOrders(http.StatusInternalServerError, "boom")

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		err := c.CreateOrder(ctx, backend.Token, &domain.Order{UserID: "u1"}, "key")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr, "call %d should still reach the backend", i)
	}

	err := c.CreateOrder(ctx, backend.Token, &domain.Order{UserID: "u1"}, "key")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreaker_IgnoresClientErrors(t *testing.T) {
	c, _ := setupClient(t)

	// bad credentials all day long must not open the breaker
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := c.Login(ctx, "cashier@jicus.ph", "wrong")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}
}
