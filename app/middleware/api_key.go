package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"
	"github.com/vibast-solutions/ms-go-records/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	HeaderAPIKey    = "X-API-Key"
	ContextKeyOwner = "owner"
)

type keyAuthorizer interface {
	Authorize(ctx context.Context, apiKey string) (string, error)
}

type APIKeyMiddleware struct {
	keyService keyAuthorizer
}

func NewAPIKeyMiddleware(keyService keyAuthorizer) *APIKeyMiddleware {
	return &APIKeyMiddleware{keyService: keyService}
}

// RequireAPIKey resolves the X-API-Key header to its owner. A missing header
// goes through the same validation path as a wrong one so both answers take
// equally long.
func (m *APIKeyMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Let CORS preflight pass.
		if c.Request().Method == http.MethodOptions {
			return next(c)
		}

		apiKey := strings.TrimSpace(c.Request().Header.Get(HeaderAPIKey))
		owner, err := m.keyService.Authorize(c.Request().Context(), apiKey)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				logrus.WithField("key_prefix", service.KeyPrefix(apiKey)).Debug("Rejected x-api-key header")
				return c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
			}
			logrus.WithError(err).Error("API key validation failed")
			return c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
		}

		c.Set(ContextKeyOwner, owner)
		return next(c)
	}
}

// OwnerFromContext returns the owner set by RequireAPIKey.
func OwnerFromContext(c echo.Context) (string, bool) {
	owner, ok := c.Get(ContextKeyOwner).(string)
	return owner, ok && owner != ""
}
