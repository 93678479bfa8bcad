package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/application/commands/bus"
	querybus "storefront-backend/application/queries/bus"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/di"

	apperrors "storefront-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func testContainer() *di.Container {
	logger := zap.NewNop()
	return &di.Container{
		Config: &config.Config{
			JWTSecret:       "test-secret",
			JWTIssuer:       "storefront-backend",
			PaymentCurrency: "inr",
		},
		Logger:       logger,
		CommandBus:   bus.NewCommandBus(),
		QueryBus:     querybus.NewQueryBus(),
		ErrorHandler: apperrors.NewErrorHandler(logger),
	}
}

func TestSetupFailsWithoutJWTSecret(t *testing.T) {
	c := testContainer()
	c.Config.JWTSecret = ""

	router, err := Setup(c)
	require.Error(t, err)
	assert.Nil(t, router)
}

func TestSetupServesHealthEndpoints(t *testing.T) {
	router, err := Setup(testContainer())
	require.NoError(t, err)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSetupGuardsAdminRoutes(t *testing.T) {
	router, err := Setup(testContainer())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
