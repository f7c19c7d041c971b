package grpc

import (
	"context"

	"github.com/vibast-solutions/ms-go-records/app/types"

	gogrpc "google.golang.org/grpc"
)

const ServiceName = "records.v1.RecordsService"

const (
	MethodIssueKey      = "IssueKey"
	MethodValidateKey   = "ValidateKey"
	MethodCreateUser    = "CreateUser"
	MethodListUsers     = "ListUsers"
	MethodGetUser       = "GetUser"
	MethodUpdateUser    = "UpdateUser"
	MethodDeleteUser    = "DeleteUser"
	MethodCreateBalance = "CreateBalance"
	MethodListBalances  = "ListBalances"
	MethodGetBalance    = "GetBalance"
	MethodUpdateBalance = "UpdateBalance"
	MethodDeleteBalance = "DeleteBalance"
)

// FullMethod returns the "/service/method" path gRPC routes on.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type RecordsServiceServer interface {
	IssueKey(context.Context, *types.IssueKeyRequest) (*types.IssueKeyResponse, error)
	ValidateKey(context.Context, *types.ValidateKeyRequest) (*types.ValidateKeyResponse, error)
	CreateUser(context.Context, *types.CreateUserRequest) (*types.CreateUserResponse, error)
	ListUsers(context.Context, *types.ListUsersRequest) (*types.ListUsersResponse, error)
	GetUser(context.Context, *types.GetUserRequest) (*types.User, error)
	UpdateUser(context.Context, *types.UpdateUserRequest) (*types.MessageResponse, error)
	DeleteUser(context.Context, *types.DeleteUserRequest) (*types.MessageResponse, error)
	CreateBalance(context.Context, *types.CreateBalanceRequest) (*types.CreateBalanceResponse, error)
	ListBalances(context.Context, *types.ListBalancesRequest) (*types.ListBalancesResponse, error)
	GetBalance(context.Context, *types.GetBalanceRequest) (*types.Balance, error)
	UpdateBalance(context.Context, *types.UpdateBalanceRequest) (*types.MessageResponse, error)
	DeleteBalance(context.Context, *types.DeleteBalanceRequest) (*types.MessageResponse, error)
}

var RecordsServiceDesc = gogrpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordsServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		unaryMethod(MethodIssueKey, RecordsServiceServer.IssueKey),
		unaryMethod(MethodValidateKey, RecordsServiceServer.ValidateKey),
		unaryMethod(MethodCreateUser, RecordsServiceServer.CreateUser),
		unaryMethod(MethodListUsers, RecordsServiceServer.ListUsers),
		unaryMethod(MethodGetUser, RecordsServiceServer.GetUser),
		unaryMethod(MethodUpdateUser, RecordsServiceServer.UpdateUser),
		unaryMethod(MethodDeleteUser, RecordsServiceServer.DeleteUser),
		unaryMethod(MethodCreateBalance, RecordsServiceServer.CreateBalance),
		unaryMethod(MethodListBalances, RecordsServiceServer.ListBalances),
		unaryMethod(MethodGetBalance, RecordsServiceServer.GetBalance),
		unaryMethod(MethodUpdateBalance, RecordsServiceServer.UpdateBalance),
		unaryMethod(MethodDeleteBalance, RecordsServiceServer.DeleteBalance),
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "records.v1",
}

func RegisterRecordsServiceServer(s gogrpc.ServiceRegistrar, srv RecordsServiceServer) {
	s.RegisterService(&RecordsServiceDesc, srv)
}

func unaryMethod[Req, Res any](method string, call func(RecordsServiceServer, context.Context, *Req) (*Res, error)) gogrpc.MethodDesc {
	return gogrpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RecordsServiceServer), ctx, in)
			}
			info := &gogrpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RecordsServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// RecordsServiceClient calls the records service over the JSON codec.
type RecordsServiceClient struct {
	cc gogrpc.ClientConnInterface
}

func NewRecordsServiceClient(cc gogrpc.ClientConnInterface) *RecordsServiceClient {
	return &RecordsServiceClient{cc: cc}
}

func (c *RecordsServiceClient) IssueKey(ctx context.Context, in *types.IssueKeyRequest, opts ...gogrpc.CallOption) (*types.IssueKeyResponse, error) {
	return invoke[types.IssueKeyResponse](ctx, c.cc, MethodIssueKey, in, opts)
}

func (c *RecordsServiceClient) ValidateKey(ctx context.Context, in *types.ValidateKeyRequest, opts ...gogrpc.CallOption) (*types.ValidateKeyResponse, error) {
	return invoke[types.ValidateKeyResponse](ctx, c.cc, MethodValidateKey, in, opts)
}

func (c *RecordsServiceClient) CreateUser(ctx context.Context, in *types.CreateUserRequest, opts ...gogrpc.CallOption) (*types.CreateUserResponse, error) {
	return invoke[types.CreateUserResponse](ctx, c.cc, MethodCreateUser, in, opts)
}

func (c *RecordsServiceClient) ListUsers(ctx context.Context, in *types.ListUsersRequest, opts ...gogrpc.CallOption) (*types.ListUsersResponse, error) {
	return invoke[types.ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *RecordsServiceClient) GetUser(ctx context.Context, in *types.GetUserRequest, opts ...gogrpc.CallOption) (*types.User, error) {
	return invoke[types.User](ctx, c.cc, MethodGetUser, in, opts)
}

func (c *RecordsServiceClient) UpdateUser(ctx context.Context, in *types.UpdateUserRequest, opts ...gogrpc.CallOption) (*types.MessageResponse, error) {
	return invoke[types.MessageResponse](ctx, c.cc, MethodUpdateUser, in, opts)
}

func (c *RecordsServiceClient) DeleteUser(ctx context.Context, in *types.DeleteUserRequest, opts ...gogrpc.CallOption) (*types.MessageResponse, error) {
	return invoke[types.MessageResponse](ctx, c.cc, MethodDeleteUser, in, opts)
}

func (c *RecordsServiceClient) CreateBalance(ctx context.Context, in *types.CreateBalanceRequest, opts ...gogrpc.CallOption) (*types.CreateBalanceResponse, error) {
	return invoke[types.CreateBalanceResponse](ctx, c.cc, MethodCreateBalance, in, opts)
}

func (c *RecordsServiceClient) ListBalances(ctx context.Context, in *types.ListBalancesRequest, opts ...gogrpc.CallOption) (*types.ListBalancesResponse, error) {
	return invoke[types.ListBalancesResponse](ctx, c.cc, MethodListBalances, in, opts)
}

func (c *RecordsServiceClient) GetBalance(ctx context.Context, in *types.GetBalanceRequest, opts ...gogrpc.CallOption) (*types.Balance, error) {
	return invoke[types.Balance](ctx, c.cc, MethodGetBalance, in, opts)
}

func (c *RecordsServiceClient) UpdateBalance(ctx context.Context, in *types.UpdateBalanceRequest, opts ...gogrpc.CallOption) (*types.MessageResponse, error) {
	return invoke[types.MessageResponse](ctx, c.cc, MethodUpdateBalance, in, opts)
}

func (c *RecordsServiceClient) DeleteBalance(ctx context.Context, in *types.DeleteBalanceRequest, opts ...gogrpc.CallOption) (*types.MessageResponse, error) {
	return invoke[types.MessageResponse](ctx, c.cc, MethodDeleteBalance, in, opts)
}

func invoke[Res any](ctx context.Context, cc gogrpc.ClientConnInterface, method string, in any, opts []gogrpc.CallOption) (*Res, error) {
	out := new(Res)
	opts = append([]gogrpc.CallOption{gogrpc.CallContentSubtype(JSONCodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
