// Package interceptors carries the request id and idempotency key between
// transports and the context.
package interceptors

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors/constants"
)

// MetadataServerInterceptor copies x-request-id and x-idempotency-key from the
// incoming gRPC metadata into the context and logs the call.
func MetadataServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := firstIncoming(ctx, constants.HeaderXRequestId)
		idempotencyKey := firstIncoming(ctx, constants.HeaderXIdempotencyKey)

		ctx = WithRequestID(ctx, requestID)
		ctx = WithIdempotencyKey(ctx, idempotencyKey)

		slog.InfoContext(ctx, "grpc call",
			"method", info.FullMethod,
			"request_id", requestID,
			"idempotency_key", idempotencyKey,
		)

		return handler(ctx, req)
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyIdempotencyKey, key)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(constants.ContextKeyRequestID).(string)
	return id
}

func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(constants.ContextKeyIdempotencyKey).(string)
	return key
}

func firstIncoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
