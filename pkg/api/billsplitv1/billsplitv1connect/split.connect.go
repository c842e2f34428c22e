// Package billsplitv1connect wires the billsplit.v1 services to Connect
// handlers and clients using the JSON codec from billsplitv1.
package billsplitv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	billsplitv1 "github.com/mmynk/billsplit/pkg/api/billsplitv1"
)

// SplitServiceName is the fully-qualified name of the SplitService service.
const SplitServiceName = "billsplit.v1.SplitService"

// Procedure paths of the SplitService RPCs.
const (
	SplitServiceCalculateBillProcedure = "/billsplit.v1.SplitService/CalculateBill"
	SplitServiceCreateBillProcedure    = "/billsplit.v1.SplitService/CreateBill"
	SplitServiceGetBillProcedure       = "/billsplit.v1.SplitService/GetBill"
	SplitServiceUpdateBillProcedure    = "/billsplit.v1.SplitService/UpdateBill"
	SplitServiceDeleteBillProcedure    = "/billsplit.v1.SplitService/DeleteBill"
	SplitServiceListBillsProcedure     = "/billsplit.v1.SplitService/ListBills"
	SplitServiceGetBalancesProcedure   = "/billsplit.v1.SplitService/GetBalances"
)

// SplitServiceHandler is implemented by the server side of billsplit.v1.SplitService.
type SplitServiceHandler interface {
	CalculateBill(context.Context, *connect.Request[billsplitv1.CalculateBillRequest]) (*connect.Response[billsplitv1.CalculateBillResponse], error)
	CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[billsplitv1.UpdateBillRequest]) (*connect.Response[billsplitv1.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error)
	GetBalances(context.Context, *connect.Request[billsplitv1.GetBalancesRequest]) (*connect.Response[billsplitv1.GetBalancesResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)

	calculateBill := connect.NewUnaryHandler(SplitServiceCalculateBillProcedure, svc.CalculateBill, opts...)
	createBill := connect.NewUnaryHandler(SplitServiceCreateBillProcedure, svc.CreateBill, opts...)
	getBill := connect.NewUnaryHandler(SplitServiceGetBillProcedure, svc.GetBill, opts...)
	updateBill := connect.NewUnaryHandler(SplitServiceUpdateBillProcedure, svc.UpdateBill, opts...)
	deleteBill := connect.NewUnaryHandler(SplitServiceDeleteBillProcedure, svc.DeleteBill, opts...)
	listBills := connect.NewUnaryHandler(SplitServiceListBillsProcedure, svc.ListBills, opts...)
	getBalances := connect.NewUnaryHandler(SplitServiceGetBalancesProcedure, svc.GetBalances, opts...)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceCalculateBillProcedure:
			calculateBill.ServeHTTP(w, r)
		case SplitServiceCreateBillProcedure:
			createBill.ServeHTTP(w, r)
		case SplitServiceGetBillProcedure:
			getBill.ServeHTTP(w, r)
		case SplitServiceUpdateBillProcedure:
			updateBill.ServeHTTP(w, r)
		case SplitServiceDeleteBillProcedure:
			deleteBill.ServeHTTP(w, r)
		case SplitServiceListBillsProcedure:
			listBills.ServeHTTP(w, r)
		case SplitServiceGetBalancesProcedure:
			getBalances.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) CalculateBill(context.Context, *connect.Request[billsplitv1.CalculateBillRequest]) (*connect.Response[billsplitv1.CalculateBillResponse], error) {
	return nil, unimplemented(SplitServiceName, "CalculateBill")
}

func (UnimplementedSplitServiceHandler) CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	return nil, unimplemented(SplitServiceName, "CreateBill")
}

func (UnimplementedSplitServiceHandler) GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	return nil, unimplemented(SplitServiceName, "GetBill")
}

func (UnimplementedSplitServiceHandler) UpdateBill(context.Context, *connect.Request[billsplitv1.UpdateBillRequest]) (*connect.Response[billsplitv1.UpdateBillResponse], error) {
	return nil, unimplemented(SplitServiceName, "UpdateBill")
}

func (UnimplementedSplitServiceHandler) DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	return nil, unimplemented(SplitServiceName, "DeleteBill")
}

func (UnimplementedSplitServiceHandler) ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	return nil, unimplemented(SplitServiceName, "ListBills")
}

func (UnimplementedSplitServiceHandler) GetBalances(context.Context, *connect.Request[billsplitv1.GetBalancesRequest]) (*connect.Response[billsplitv1.GetBalancesResponse], error) {
	return nil, unimplemented(SplitServiceName, "GetBalances")
}

func unimplemented(service, method string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(service+"."+method+" is not implemented"))
}

// SplitServiceClient is a client for billsplit.v1.SplitService.
type SplitServiceClient interface {
	CalculateBill(context.Context, *connect.Request[billsplitv1.CalculateBillRequest]) (*connect.Response[billsplitv1.CalculateBillResponse], error)
	CreateBill(context.Context, *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error)
	UpdateBill(context.Context, *connect.Request[billsplitv1.UpdateBillRequest]) (*connect.Response[billsplitv1.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error)
	ListBills(context.Context, *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error)
	GetBalances(context.Context, *connect.Request[billsplitv1.GetBalancesRequest]) (*connect.Response[billsplitv1.GetBalancesResponse], error)
}

// NewSplitServiceClient constructs a client for billsplit.v1.SplitService.
// baseURL is the server root, e.g. http://localhost:8080.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &splitServiceClient{
		calculateBill: connect.NewClient[billsplitv1.CalculateBillRequest, billsplitv1.CalculateBillResponse](httpClient, baseURL+SplitServiceCalculateBillProcedure, opts...),
		createBill:    connect.NewClient[billsplitv1.CreateBillRequest, billsplitv1.CreateBillResponse](httpClient, baseURL+SplitServiceCreateBillProcedure, opts...),
		getBill:       connect.NewClient[billsplitv1.GetBillRequest, billsplitv1.GetBillResponse](httpClient, baseURL+SplitServiceGetBillProcedure, opts...),
		updateBill:    connect.NewClient[billsplitv1.UpdateBillRequest, billsplitv1.UpdateBillResponse](httpClient, baseURL+SplitServiceUpdateBillProcedure, opts...),
		deleteBill:    connect.NewClient[billsplitv1.DeleteBillRequest, billsplitv1.DeleteBillResponse](httpClient, baseURL+SplitServiceDeleteBillProcedure, opts...),
		listBills:     connect.NewClient[billsplitv1.ListBillsRequest, billsplitv1.ListBillsResponse](httpClient, baseURL+SplitServiceListBillsProcedure, opts...),
		getBalances:   connect.NewClient[billsplitv1.GetBalancesRequest, billsplitv1.GetBalancesResponse](httpClient, baseURL+SplitServiceGetBalancesProcedure, opts...),
	}
}

type splitServiceClient struct {
	calculateBill *connect.Client[billsplitv1.CalculateBillRequest, billsplitv1.CalculateBillResponse]
	createBill    *connect.Client[billsplitv1.CreateBillRequest, billsplitv1.CreateBillResponse]
	getBill       *connect.Client[billsplitv1.GetBillRequest, billsplitv1.GetBillResponse]
	updateBill    *connect.Client[billsplitv1.UpdateBillRequest, billsplitv1.UpdateBillResponse]
	deleteBill    *connect.Client[billsplitv1.DeleteBillRequest, billsplitv1.DeleteBillResponse]
	listBills     *connect.Client[billsplitv1.ListBillsRequest, billsplitv1.ListBillsResponse]
	getBalances   *connect.Client[billsplitv1.GetBalancesRequest, billsplitv1.GetBalancesResponse]
}

func (c *splitServiceClient) CalculateBill(ctx context.Context, req *connect.Request[billsplitv1.CalculateBillRequest]) (*connect.Response[billsplitv1.CalculateBillResponse], error) {
	return c.calculateBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) CreateBill(ctx context.Context, req *connect.Request[billsplitv1.CreateBillRequest]) (*connect.Response[billsplitv1.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBill(ctx context.Context, req *connect.Request[billsplitv1.GetBillRequest]) (*connect.Response[billsplitv1.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) UpdateBill(ctx context.Context, req *connect.Request[billsplitv1.UpdateBillRequest]) (*connect.Response[billsplitv1.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteBill(ctx context.Context, req *connect.Request[billsplitv1.DeleteBillRequest]) (*connect.Response[billsplitv1.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListBills(ctx context.Context, req *connect.Request[billsplitv1.ListBillsRequest]) (*connect.Response[billsplitv1.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBalances(ctx context.Context, req *connect.Request[billsplitv1.GetBalancesRequest]) (*connect.Response[billsplitv1.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// withCodec puts the JSON codec first so callers can still override it.
func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(billsplitv1.Codec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(billsplitv1.Codec{})}, opts...)
}
