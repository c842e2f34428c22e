package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api/billsplitv1"
	"github.com/mmynk/billsplit/pkg/api/billsplitv1/billsplitv1connect"
	"github.com/mmynk/billsplit/pkg/logging"
)

// whoAmI answers GetCurrentUser from the context and leaves everything else
// unimplemented.
type whoAmI struct {
	billsplitv1connect.UnimplementedAuthServiceHandler
}

func (whoAmI) GetCurrentUser(ctx context.Context, _ *connect.Request[billsplitv1.GetCurrentUserRequest]) (*connect.Response[billsplitv1.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return connect.NewResponse(&billsplitv1.GetCurrentUserResponse{
		User: &billsplitv1.User{ID: userID, Email: middleware.GetEmail(ctx)},
	}), nil
}

func newServer(t *testing.T, interceptors ...connect.Interceptor) billsplitv1connect.AuthServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	path, handler := billsplitv1connect.NewAuthServiceHandler(whoAmI{}, connect.WithInterceptors(interceptors...))
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return billsplitv1connect.NewAuthServiceClient(http.DefaultClient, server.URL)
}

func authed(token string) *connect.Request[billsplitv1.GetCurrentUserRequest] {
	req := connect.NewRequest(&billsplitv1.GetCurrentUserRequest{})
	if token != "" {
		req.Header().Set("Authorization", token)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)

	client := newServer(t, middleware.RequireAuth(jwtManager))
	ctx := context.Background()

	resp, err := client.GetCurrentUser(ctx, authed("Bearer "+token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.Msg.User.ID)
	assert.Equal(t, "alice@example.com", resp.Msg.User.Email)

	tests := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer nope",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := client.GetCurrentUser(ctx, authed(header))
			require.Error(t, err)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		})
	}
}

func TestRequireAuth_PublicProcedures(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := newServer(t, middleware.RequireAuth(jwtManager, billsplitv1connect.AuthServiceLoginProcedure))
	ctx := context.Background()

	// Login reaches the handler without a token.
	_, err := client.Login(ctx, connect.NewRequest(&billsplitv1.LoginRequest{}))
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))

	_, err = client.Register(ctx, connect.NewRequest(&billsplitv1.RegisterRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	_, err = client.GetCurrentUser(ctx, authed(""))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-2", Email: "bob@example.com"})
	require.NoError(t, err)

	client := newServer(t, middleware.OptionalAuth(jwtManager))
	ctx := context.Background()

	resp, err := client.GetCurrentUser(ctx, authed("bearer "+token))
	require.NoError(t, err)
	assert.Equal(t, "user-2", resp.Msg.User.ID)

	// Anonymous and invalid tokens reach the handler without a user.
	for _, header := range []string{"", "Bearer garbage"} {
		_, err := client.GetCurrentUser(ctx, authed(header))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		assert.ErrorContains(t, err, auth.ErrMissingToken.Error())
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics("test", reg)

	// A second registration reuses the collectors.
	again := middleware.NewMetrics("test", reg)
	assert.Same(t, metrics.ReqTotal, again.ReqTotal)

	client := newServer(t, metrics.Interceptor())
	ctx := context.Background()

	_, err := client.GetCurrentUser(ctx, authed(""))
	require.Error(t, err)
	_, err = client.Login(ctx, connect.NewRequest(&billsplitv1.LoginRequest{}))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(
		billsplitv1connect.AuthServiceGetCurrentUserProcedure, "unauthenticated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(
		billsplitv1connect.AuthServiceLoginProcedure, "unimplemented")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.ReqDur))
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "debug")

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-3", Email: "carol@example.com"})
	require.NoError(t, err)

	// Auth runs first so the logger sees the user.
	client := newServer(t, middleware.OptionalAuth(jwtManager), middleware.LoggingInterceptor(logger))
	ctx := context.Background()

	_, err = client.GetCurrentUser(ctx, authed("Bearer "+token))
	require.NoError(t, err)
	_, err = client.Register(ctx, connect.NewRequest(&billsplitv1.RegisterRequest{}))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "RPC ok")
	assert.Contains(t, out, "user_id=user-3")
	assert.Contains(t, out, "RPC error")
	assert.Contains(t, out, "code=unimplemented")
	assert.Contains(t, out, "ERR", "unimplemented is a server-side failure")
}
