package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

func NewValidateKeyRequestFromContext(ctx echo.Context) (*ValidateKeyRequest, error) {
	var body ValidateKeyRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ValidateKeyRequest) Validate() error {
	if strings.TrimSpace(r.GetAPIKey()) == "" {
		return errors.New("api_key is required")
	}

	return nil
}

func NewCreateUserRequestFromContext(ctx echo.Context) (*CreateUserRequest, error) {
	var body CreateUserRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateUserRequest) Validate() error {
	if r.Meta != nil && r.MetaRaw != "" {
		return errors.New("meta and meta_raw are mutually exclusive")
	}

	return nil
}

func NewGetUserRequestFromContext(ctx echo.Context) *GetUserRequest {
	return &GetUserRequest{UserID: ctx.Param("id")}
}

func (r *GetUserRequest) Validate() error {
	if strings.TrimSpace(r.GetUserID()) == "" {
		return errors.New("user_id is required")
	}

	return nil
}

// NewUpdateUserRequestFromContext binds the body; the user id always comes
// from the path.
func NewUpdateUserRequestFromContext(ctx echo.Context) (*UpdateUserRequest, error) {
	var body UpdateUserRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.UserID = ctx.Param("id")

	return &body, nil
}

func (r *UpdateUserRequest) Validate() error {
	if strings.TrimSpace(r.GetUserID()) == "" {
		return errors.New("user_id is required")
	}
	if r.Meta != nil && r.MetaRaw != nil {
		return errors.New("meta and meta_raw are mutually exclusive")
	}

	return nil
}

func NewDeleteUserRequestFromContext(ctx echo.Context) *DeleteUserRequest {
	return &DeleteUserRequest{UserID: ctx.Param("id")}
}

func (r *DeleteUserRequest) Validate() error {
	if strings.TrimSpace(r.GetUserID()) == "" {
		return errors.New("user_id is required")
	}

	return nil
}

func NewCreateBalanceRequestFromContext(ctx echo.Context) (*CreateBalanceRequest, error) {
	var body CreateBalanceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateBalanceRequest) Validate() error {
	if strings.TrimSpace(r.GetUserID()) == "" {
		return errors.New("user_id is required")
	}
	if r.Balance == nil {
		return errors.New("balance is required")
	}

	return nil
}

func NewListBalancesRequestFromContext(ctx echo.Context) (*ListBalancesRequest, error) {
	var body ListBalancesRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func NewGetBalanceRequestFromContext(ctx echo.Context) *GetBalanceRequest {
	return &GetBalanceRequest{BalanceID: ctx.Param("id")}
}

func (r *GetBalanceRequest) Validate() error {
	if strings.TrimSpace(r.GetBalanceID()) == "" {
		return errors.New("balance_id is required")
	}

	return nil
}

func NewUpdateBalanceRequestFromContext(ctx echo.Context) (*UpdateBalanceRequest, error) {
	var body UpdateBalanceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.BalanceID = ctx.Param("id")

	return &body, nil
}

func (r *UpdateBalanceRequest) Validate() error {
	if strings.TrimSpace(r.GetBalanceID()) == "" {
		return errors.New("balance_id is required")
	}
	if r.Balance == nil {
		return errors.New("balance is required")
	}

	return nil
}

func NewDeleteBalanceRequestFromContext(ctx echo.Context) *DeleteBalanceRequest {
	return &DeleteBalanceRequest{BalanceID: ctx.Param("id")}
}

func (r *DeleteBalanceRequest) Validate() error {
	if strings.TrimSpace(r.GetBalanceID()) == "" {
		return errors.New("balance_id is required")
	}

	return nil
}
