package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"

	"github.com/labstack/echo/v4"
)

func Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, httpdto.HealthResponse{Status: "ok"})
}
