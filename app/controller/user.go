package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-records/app/dto/http"
	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req, err := types.NewCreateUserRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create user request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Create user validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	userID, err := c.userService.CreateUser(ctx.Request().Context(), owner, req.GetName(), req.Pairs())
	if err != nil {
		return writeServiceError(ctx, logrus.NewEntry(logrus.StandardLogger()), "Create user", err)
	}

	logrus.WithField("user_id", userID).Info("User created")
	return ctx.JSON(http.StatusCreated, &types.CreateUserResponse{UserID: userID})
}

func (c *UserController) ListUsers(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	users, err := c.userService.ListUsers(ctx.Request().Context(), owner)
	if err != nil {
		return writeServiceError(ctx, logrus.NewEntry(logrus.StandardLogger()), "List users", err)
	}

	res := &types.ListUsersResponse{Users: make([]*types.User, 0, len(users))}
	for _, user := range users {
		res.Users = append(res.Users, types.NewUserFromEntity(user))
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *UserController) GetUser(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req := types.NewGetUserRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	user, err := c.userService.GetUser(ctx.Request().Context(), owner, req.GetUserID())
	if err != nil {
		return writeServiceError(ctx, logrus.WithField("user_id", req.GetUserID()), "Get user", err)
	}

	return ctx.JSON(http.StatusOK, types.NewUserFromEntity(user))
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req, err := types.NewUpdateUserRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update user request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("user_id", req.GetUserID()).Debug("Update user validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	err = c.userService.UpdateUser(ctx.Request().Context(), owner, req.GetUserID(), service.UserUpdate{
		Name: req.Name,
		Meta: req.Pairs(),
	})
	if err != nil {
		return writeServiceError(ctx, logrus.WithField("user_id", req.GetUserID()), "Update user", err)
	}

	logrus.WithField("user_id", req.GetUserID()).Info("User updated")
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "user updated"})
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	owner, ok := ownerFromContext(ctx)
	if !ok {
		return writeUnauthorized(ctx)
	}

	req := types.NewDeleteUserRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), owner, req.GetUserID()); err != nil {
		return writeServiceError(ctx, logrus.WithField("user_id", req.GetUserID()), "Delete user", err)
	}

	logrus.WithField("user_id", req.GetUserID()).Info("User deleted")
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "user deleted"})
}
