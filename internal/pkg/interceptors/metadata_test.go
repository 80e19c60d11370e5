package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors/constants"
)

func TestMetadataServerInterceptor(t *testing.T) {
	t.Parallel()

	md := metadata.Pairs(
		constants.HeaderXRequestId, "req-1",
		constants.HeaderXIdempotencyKey, "idem-1",
	)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var gotReq, gotKey string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotReq = RequestID(ctx)
		gotKey = IdempotencyKey(ctx)
		return "ok", nil
	}

	resp, err := MetadataServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-1", gotReq)
	assert.Equal(t, "idem-1", gotKey)
}

func TestMetadataServerInterceptor_NoMetadata(t *testing.T) {
	t.Parallel()

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		assert.Empty(t, RequestID(ctx))
		assert.Empty(t, IdempotencyKey(ctx))
		return nil, nil
	}

	_, err := MetadataServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}, handler)
	require.NoError(t, err)
}

func TestContextAccessors(t *testing.T) {
	t.Parallel()

	ctx := WithIdempotencyKey(WithRequestID(context.Background(), "r"), "k")
	assert.Equal(t, "r", RequestID(ctx))
	assert.Equal(t, "k", IdempotencyKey(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
