// Package types holds the request and response messages shared by the HTTP
// and gRPC transports.
package types

import (
	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/meta"
)

type IssueKeyRequest struct{}

type IssueKeyResponse struct {
	APIKey string `json:"api_key"`
}

type ValidateKeyRequest struct {
	APIKey string `json:"api_key" query:"api_key"`
}

func (r *ValidateKeyRequest) GetAPIKey() string {
	if r == nil {
		return ""
	}
	return r.APIKey
}

type ValidateKeyResponse struct {
	Valid bool `json:"valid"`
}

type User struct {
	UserID  string            `json:"user_id"`
	Name    string            `json:"name"`
	Meta    map[string]string `json:"meta"`
	MetaRaw string            `json:"meta_raw"`
}

func NewUserFromEntity(user *entity.User) *User {
	return &User{
		UserID:  user.ID,
		Name:    user.Name,
		Meta:    user.Meta.Map(),
		MetaRaw: user.Meta.Encode(),
	}
}

// CreateUserRequest takes metadata either as a JSON object or as a raw
// "k=v;k=v" string, not both.
type CreateUserRequest struct {
	Name    string         `json:"name"`
	Meta    map[string]any `json:"meta,omitempty"`
	MetaRaw string         `json:"meta_raw,omitempty"`
}

func (r *CreateUserRequest) GetName() string {
	if r == nil {
		return ""
	}
	return r.Name
}

// Pairs returns the sanitized metadata of the request.
func (r *CreateUserRequest) Pairs() meta.Pairs {
	if r.Meta != nil {
		return meta.FromMap(r.Meta)
	}
	return meta.Parse(r.MetaRaw)
}

type CreateUserResponse struct {
	UserID string `json:"user_id"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

func (r *GetUserRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

type UpdateUserRequest struct {
	UserID  string         `json:"user_id"`
	Name    *string        `json:"name,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	MetaRaw *string        `json:"meta_raw,omitempty"`
}

func (r *UpdateUserRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

// Pairs returns the sanitized metadata to store, or nil when the request
// leaves metadata untouched.
func (r *UpdateUserRequest) Pairs() *meta.Pairs {
	switch {
	case r.Meta != nil:
		pairs := meta.FromMap(r.Meta)
		return &pairs
	case r.MetaRaw != nil:
		pairs := meta.Parse(*r.MetaRaw)
		return &pairs
	}
	return nil
}

type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

func (r *DeleteUserRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

type Balance struct {
	BalanceID string `json:"balance_id"`
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
}

func NewBalanceFromEntity(balance *entity.Balance) *Balance {
	return &Balance{
		BalanceID: balance.ID,
		UserID:    balance.UserID,
		Balance:   balance.Amount,
	}
}

type CreateBalanceRequest struct {
	UserID  string `json:"user_id"`
	Balance *int64 `json:"balance"`
}

func (r *CreateBalanceRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

func (r *CreateBalanceRequest) GetBalance() int64 {
	if r == nil || r.Balance == nil {
		return 0
	}
	return *r.Balance
}

type CreateBalanceResponse struct {
	BalanceID string `json:"balance_id"`
}

type ListBalancesRequest struct {
	UserID string `json:"user_id,omitempty" query:"user_id"`
}

func (r *ListBalancesRequest) GetUserID() string {
	if r == nil {
		return ""
	}
	return r.UserID
}

// ListBalancesResponse reports Total as the plain sum of the listed rows.
type ListBalancesResponse struct {
	Balances []*Balance `json:"balances"`
	Total    int64      `json:"total"`
}

type GetBalanceRequest struct {
	BalanceID string `json:"balance_id"`
}

func (r *GetBalanceRequest) GetBalanceID() string {
	if r == nil {
		return ""
	}
	return r.BalanceID
}

type UpdateBalanceRequest struct {
	BalanceID string `json:"balance_id"`
	Balance   *int64 `json:"balance"`
}

func (r *UpdateBalanceRequest) GetBalanceID() string {
	if r == nil {
		return ""
	}
	return r.BalanceID
}

func (r *UpdateBalanceRequest) GetBalance() int64 {
	if r == nil || r.Balance == nil {
		return 0
	}
	return *r.Balance
}

type DeleteBalanceRequest struct {
	BalanceID string `json:"balance_id"`
}

func (r *DeleteBalanceRequest) GetBalanceID() string {
	if r == nil {
		return ""
	}
	return r.BalanceID
}

type MessageResponse struct {
	Message string `json:"message"`
}
