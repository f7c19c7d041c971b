package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"
	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type KeyController struct {
	keyService service.KeyService
}

func NewKeyController(keyService service.KeyService) *KeyController {
	return &KeyController{keyService: keyService}
}

func (c *KeyController) IssueKey(ctx echo.Context) error {
	apiKey, err := c.keyService.IssueAPIKey(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("Issue API key failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("key_prefix", service.KeyPrefix(apiKey)).Info("API key issued")
	return ctx.JSON(http.StatusCreated, &types.IssueKeyResponse{APIKey: apiKey})
}

func (c *KeyController) ValidateKey(ctx echo.Context) error {
	req, err := types.NewValidateKeyRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind validate key request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Validate key request rejected")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	valid, err := c.keyService.ValidateAPIKey(ctx.Request().Context(), req.GetAPIKey())
	if err != nil {
		logrus.WithError(err).Error("Validate API key failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"key_prefix": service.KeyPrefix(req.GetAPIKey()),
		"valid":      valid,
	}).Debug("API key validated")
	return ctx.JSON(http.StatusOK, &types.ValidateKeyResponse{Valid: valid})
}
