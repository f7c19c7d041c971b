package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-records/app/dto"
	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/app/types"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type RecordsServer struct {
	keyService     service.KeyService
	userService    service.UserService
	balanceService service.BalanceService
}

func NewRecordsServer(keyService service.KeyService, userService service.UserService, balanceService service.BalanceService) *RecordsServer {
	return &RecordsServer{
		keyService:     keyService,
		userService:    userService,
		balanceService: balanceService,
	}
}

func (s *RecordsServer) IssueKey(ctx context.Context, _ *types.IssueKeyRequest) (*types.IssueKeyResponse, error) {
	apiKey, err := s.keyService.IssueAPIKey(ctx)
	if err != nil {
		logrus.WithError(err).Error("Issue API key failed (grpc)")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	logrus.WithField("key_prefix", service.KeyPrefix(apiKey)).Info("API key issued (grpc)")
	return &types.IssueKeyResponse{APIKey: apiKey}, nil
}

func (s *RecordsServer) ValidateKey(ctx context.Context, req *types.ValidateKeyRequest) (*types.ValidateKeyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	valid, err := s.keyService.ValidateAPIKey(ctx, req.GetAPIKey())
	if err != nil {
		return nil, statusFromError(logrus.NewEntry(logrus.StandardLogger()), "Validate API key", err)
	}

	return &types.ValidateKeyResponse{Valid: valid}, nil
}

func (s *RecordsServer) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*types.CreateUserResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		logrus.Debug("Create user validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	userID, err := s.userService.CreateUser(ctx, owner, req.GetName(), req.Pairs())
	if err != nil {
		return nil, statusFromError(logrus.NewEntry(logrus.StandardLogger()), "Create user", err)
	}

	logrus.WithField("user_id", userID).Info("User created (grpc)")
	return &types.CreateUserResponse{UserID: userID}, nil
}

func (s *RecordsServer) ListUsers(ctx context.Context, _ *types.ListUsersRequest) (*types.ListUsersResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userService.ListUsers(ctx, owner)
	if err != nil {
		return nil, statusFromError(logrus.NewEntry(logrus.StandardLogger()), "List users", err)
	}

	res := &types.ListUsersResponse{Users: make([]*types.User, 0, len(users))}
	for _, user := range users {
		res.Users = append(res.Users, types.NewUserFromEntity(user))
	}
	return res, nil
}

func (s *RecordsServer) GetUser(ctx context.Context, req *types.GetUserRequest) (*types.User, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	user, err := s.userService.GetUser(ctx, owner, req.GetUserID())
	if err != nil {
		return nil, statusFromError(logrus.WithField("user_id", req.GetUserID()), "Get user", err)
	}

	return types.NewUserFromEntity(user), nil
}

func (s *RecordsServer) UpdateUser(ctx context.Context, req *types.UpdateUserRequest) (*types.MessageResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		logrus.WithField("user_id", req.GetUserID()).Debug("Update user validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	err = s.userService.UpdateUser(ctx, owner, req.GetUserID(), service.UserUpdate{
		Name: req.Name,
		Meta: req.Pairs(),
	})
	if err != nil {
		return nil, statusFromError(logrus.WithField("user_id", req.GetUserID()), "Update user", err)
	}

	logrus.WithField("user_id", req.GetUserID()).Info("User updated (grpc)")
	return &types.MessageResponse{Message: "user updated"}, nil
}

func (s *RecordsServer) DeleteUser(ctx context.Context, req *types.DeleteUserRequest) (*types.MessageResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = s.userService.DeleteUser(ctx, owner, req.GetUserID()); err != nil {
		return nil, statusFromError(logrus.WithField("user_id", req.GetUserID()), "Delete user", err)
	}

	logrus.WithField("user_id", req.GetUserID()).Info("User deleted (grpc)")
	return &types.MessageResponse{Message: "user deleted"}, nil
}

func (s *RecordsServer) CreateBalance(ctx context.Context, req *types.CreateBalanceRequest) (*types.CreateBalanceResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		logrus.Debug("Create balance validation failed (grpc)")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	balanceID, err := s.balanceService.CreateBalance(ctx, owner, req.GetUserID(), req.GetBalance())
	if err != nil {
		return nil, statusFromError(logrus.WithField("user_id", req.GetUserID()), "Create balance", err)
	}

	logrus.WithFields(logrus.Fields{
		"balance_id": balanceID,
		"user_id":    req.GetUserID(),
	}).Info("Balance created (grpc)")
	return &types.CreateBalanceResponse{BalanceID: balanceID}, nil
}

func (s *RecordsServer) ListBalances(ctx context.Context, req *types.ListBalancesRequest) (*types.ListBalancesResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.balanceService.ListBalances(ctx, owner, req.GetUserID())
	if err != nil {
		return nil, statusFromError(logrus.WithField("user_id", req.GetUserID()), "List balances", err)
	}

	res := &types.ListBalancesResponse{
		Balances: make([]*types.Balance, 0, len(balances)),
		Total:    dto.SumBalances(balances),
	}
	for _, balance := range balances {
		res.Balances = append(res.Balances, types.NewBalanceFromEntity(balance))
	}
	return res, nil
}

func (s *RecordsServer) GetBalance(ctx context.Context, req *types.GetBalanceRequest) (*types.Balance, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	balance, err := s.balanceService.GetBalance(ctx, owner, req.GetBalanceID())
	if err != nil {
		return nil, statusFromError(logrus.WithField("balance_id", req.GetBalanceID()), "Get balance", err)
	}

	return types.NewBalanceFromEntity(balance), nil
}

func (s *RecordsServer) UpdateBalance(ctx context.Context, req *types.UpdateBalanceRequest) (*types.MessageResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = s.balanceService.UpdateBalance(ctx, owner, req.GetBalanceID(), req.GetBalance()); err != nil {
		return nil, statusFromError(logrus.WithField("balance_id", req.GetBalanceID()), "Update balance", err)
	}

	logrus.WithField("balance_id", req.GetBalanceID()).Info("Balance updated (grpc)")
	return &types.MessageResponse{Message: "balance updated"}, nil
}

func (s *RecordsServer) DeleteBalance(ctx context.Context, req *types.DeleteBalanceRequest) (*types.MessageResponse, error) {
	owner, err := ownerOf(ctx)
	if err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err = s.balanceService.DeleteBalance(ctx, owner, req.GetBalanceID()); err != nil {
		return nil, statusFromError(logrus.WithField("balance_id", req.GetBalanceID()), "Delete balance", err)
	}

	logrus.WithField("balance_id", req.GetBalanceID()).Info("Balance deleted (grpc)")
	return &types.MessageResponse{Message: "balance deleted"}, nil
}

func ownerOf(ctx context.Context) (string, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		logrus.Warn("Missing owner in call context (grpc)")
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return owner, nil
}

func statusFromError(entry *logrus.Entry, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		entry.WithError(err).Debug(action + " failed: invalid input (grpc)")
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotFound):
		entry.Debug(action + " failed: not found (grpc)")
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, service.ErrUnauthorized):
		entry.Warn(action + " failed: unauthorized (grpc)")
		return status.Error(codes.Unauthenticated, "unauthorized")
	default:
		entry.WithError(err).Error(action + " failed (grpc)")
		return status.Error(codes.Internal, "internal server error")
	}
}
