package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/vibast-solutions/ms-go-records/app/service"

	"github.com/sirupsen/logrus"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataAPIKey = "x-api-key"

type ownerKey struct{}

type keyAuthorizer interface {
	Authorize(ctx context.Context, apiKey string) (string, error)
}

// publicMethods do not carry a key: one hands keys out, the other checks a
// key passed in the request body.
var publicMethods = map[string]bool{
	FullMethod(MethodIssueKey):    true,
	FullMethod(MethodValidateKey): true,
}

func APIKeyUnaryInterceptor(keyService keyAuthorizer) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		if info != nil && publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		owner, err := authorizeIncoming(ctx, keyService)
		if err != nil {
			return nil, err
		}

		return handler(context.WithValue(ctx, ownerKey{}, owner), req)
	}
}

// OwnerFromContext returns the owner resolved by APIKeyUnaryInterceptor.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey{}).(string)
	return owner, ok && owner != ""
}

func authorizeIncoming(ctx context.Context, keyService keyAuthorizer) (string, error) {
	apiKey := incomingAPIKeyFromMetadata(ctx)

	owner, err := keyService.Authorize(ctx, apiKey)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return "", status.Error(codes.Unauthenticated, "unauthorized")
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", status.FromContextError(err).Err()
		}
		logrus.WithError(err).Error("API key validation failed (grpc)")
		return "", status.Error(codes.Internal, "internal server error")
	}

	return owner, nil
}

func incomingAPIKeyFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(metadataAPIKey)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
