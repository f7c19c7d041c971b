package controller

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-records/app/dto"
	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"
	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BalanceController struct {
	balanceService service.BalanceService
}

func NewBalanceController(balanceService service.BalanceService) *BalanceController {
	return &BalanceController{balanceService: balanceService}
}

func (c *BalanceController) CreateBalance(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req, err := types.NewCreateBalanceRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create balance request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Create balance validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	balanceID, err := c.balanceService.CreateBalance(ctx.Request().Context(), owner, req.GetUserID(), req.GetBalance())
	if err != nil {
		return writeServiceError(ctx, logrus.WithField("user_id", req.GetUserID()), "Create balance", err)
	}

	logrus.WithFields(logrus.Fields{
		"balance_id": balanceID,
		"user_id":    req.GetUserID(),
	}).Info("Balance created")
	return ctx.JSON(http.StatusCreated, &types.CreateBalanceResponse{BalanceID: balanceID})
}

func (c *BalanceController) ListBalances(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req, err := types.NewListBalancesRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind list balances request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
	}

	balances, err := c.balanceService.ListBalances(ctx.Request().Context(), owner, req.GetUserID())
	if err != nil {
		return writeServiceError(ctx, logrus.WithField("user_id", req.GetUserID()), "List balances", err)
	}

	res := &types.ListBalancesResponse{
		Balances: make([]*types.Balance, 0, len(balances)),
		Total:    dto.SumBalances(balances),
	}
	for _, balance := range balances {
		res.Balances = append(res.Balances, types.NewBalanceFromEntity(balance))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *BalanceController) GetBalance(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req := types.NewGetBalanceRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	balance, err := c.balanceService.GetBalance(ctx.Request().Context(), owner, req.GetBalanceID())
	if err != nil {
		return writeServiceError(ctx, logrus.WithField("balance_id", req.GetBalanceID()), "Get balance", err)
	}

	return ctx.JSON(http.StatusOK, types.NewBalanceFromEntity(balance))
}

func (c *BalanceController) UpdateBalance(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req, err := types.NewUpdateBalanceRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update balance request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("balance_id", req.GetBalanceID()).Debug("Update balance validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	if err = c.balanceService.UpdateBalance(ctx.Request().Context(), owner, req.GetBalanceID(), req.GetBalance()); err != nil {
		return writeServiceError(ctx, logrus.WithField("balance_id", req.GetBalanceID()), "Update balance", err)
	}

	logrus.WithField("balance_id", req.GetBalanceID()).Info("Balance updated")
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "balance updated"})
}

func (c *BalanceController) DeleteBalance(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req := types.NewDeleteBalanceRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	if err := c.balanceService.DeleteBalance(ctx.Request().Context(), owner, req.GetBalanceID()); err != nil {
		return writeServiceError(ctx, logrus.WithField("balance_id", req.GetBalanceID()), "Delete balance", err)
	}

	logrus.WithField("balance_id", req.GetBalanceID()).Info("Balance deleted")
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "balance deleted"})
}
