package billsplitv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	billsplitv1 "github.com/mmynk/billsplit/pkg/api/billsplitv1"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "billsplit.v1.AuthService"

// Procedure paths of the AuthService RPCs.
const (
	AuthServiceRegisterProcedure       = "/billsplit.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/billsplit.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/billsplit.v1.AuthService/GetCurrentUser"
)

// AuthServiceHandler is implemented by the server side of billsplit.v1.AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[billsplitv1.RegisterRequest]) (*connect.Response[billsplitv1.RegisterResponse], error)
	Login(context.Context, *connect.Request[billsplitv1.LoginRequest]) (*connect.Response[billsplitv1.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[billsplitv1.GetCurrentUserRequest]) (*connect.Response[billsplitv1.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)

	register := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	login := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	getCurrentUser := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)

	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			login.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUser.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Register(context.Context, *connect.Request[billsplitv1.RegisterRequest]) (*connect.Response[billsplitv1.RegisterResponse], error) {
	return nil, unimplemented(AuthServiceName, "Register")
}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[billsplitv1.LoginRequest]) (*connect.Response[billsplitv1.LoginResponse], error) {
	return nil, unimplemented(AuthServiceName, "Login")
}

func (UnimplementedAuthServiceHandler) GetCurrentUser(context.Context, *connect.Request[billsplitv1.GetCurrentUserRequest]) (*connect.Response[billsplitv1.GetCurrentUserResponse], error) {
	return nil, unimplemented(AuthServiceName, "GetCurrentUser")
}

// AuthServiceClient is a client for billsplit.v1.AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[billsplitv1.RegisterRequest]) (*connect.Response[billsplitv1.RegisterResponse], error)
	Login(context.Context, *connect.Request[billsplitv1.LoginRequest]) (*connect.Response[billsplitv1.LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[billsplitv1.GetCurrentUserRequest]) (*connect.Response[billsplitv1.GetCurrentUserResponse], error)
}

// NewAuthServiceClient constructs a client for billsplit.v1.AuthService.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &authServiceClient{
		register:       connect.NewClient[billsplitv1.RegisterRequest, billsplitv1.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[billsplitv1.LoginRequest, billsplitv1.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[billsplitv1.GetCurrentUserRequest, billsplitv1.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[billsplitv1.RegisterRequest, billsplitv1.RegisterResponse]
	login          *connect.Client[billsplitv1.LoginRequest, billsplitv1.LoginResponse]
	getCurrentUser *connect.Client[billsplitv1.GetCurrentUserRequest, billsplitv1.GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[billsplitv1.RegisterRequest]) (*connect.Response[billsplitv1.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[billsplitv1.LoginRequest]) (*connect.Response[billsplitv1.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[billsplitv1.GetCurrentUserRequest]) (*connect.Response[billsplitv1.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
