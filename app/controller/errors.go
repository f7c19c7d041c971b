package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"
	"github.com/vibast-solutions/ms-go-records/app/middleware"
	"github.com/vibast-solutions/ms-go-records/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// writeServiceError maps a store failure to its HTTP status. Validation
// details are returned to the caller; storage errors are not.
func writeServiceError(ctx echo.Context, entry *logrus.Entry, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		entry.WithError(err).Debug(action + " failed: invalid input")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		entry.Debug(action + " failed: not found")
		return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrUnauthorized):
		entry.Warn(action + " failed: unauthorized")
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
	default:
		entry.WithError(err).Error(action + " failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}
}

func ownerFromContext(ctx echo.Context) (string, bool) {
	owner, ok := middleware.OwnerFromContext(ctx)
	if !ok {
		logrus.Warn("Missing owner in request context")
	}
	return owner, ok
}

func writeUnauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
}
