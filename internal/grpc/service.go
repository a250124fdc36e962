package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/models"
	"github.com/alfagnish/supplychain-api/internal/store"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "supplychain.v1.Records"

// RecordsService is the gRPC mirror of the HTTP record API. Records travel as
// structpb values with the same JSON field names the HTTP API uses.
type RecordsService interface {
	ListAccounts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CheckAuth(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	AddAccount(context.Context, *structpb.Struct) (*structpb.Value, error)
	ListProfiles(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	AddProfile(context.Context, *structpb.Struct) (*structpb.Value, error)
	ListProducts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	AddProduct(context.Context, *structpb.Struct) (*structpb.Value, error)
}

// RecordsServer implements RecordsService on top of the shared store.
type RecordsServer struct {
	store   *store.Store
	hub     *events.Hub
	metrics *metrics.Metrics
}

// NewRecordsServer creates a new RecordsServer.
func NewRecordsServer(s *store.Store, hub *events.Hub, m *metrics.Metrics) *RecordsServer {
	return &RecordsServer{store: s, hub: hub, metrics: m}
}

// NewServer returns a grpc.Server with the Records service registered.
func NewServer(rs *RecordsServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(logUnary)}, opts...)
	gs := grpc.NewServer(opts...)
	gs.RegisterService(&ServiceDesc, rs)
	return gs
}

func (s *RecordsServer) ListAccounts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return toList(s.store.Accounts.All())
}

// CheckAuth expects {"username": ..., "password": ...}.
func (s *RecordsServer) CheckAuth(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	a, ok := s.store.Authenticate(field(req, "username"), field(req, "password"))
	return toList(store.OneOrNone(a, ok))
}

func (s *RecordsServer) AddAccount(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	in := models.FieldsFromMap(req.AsMap()).Account()
	a := s.store.Accounts.Insert(in)
	s.metrics.RecordInserted("accounts")
	s.hub.Publish(events.AccountCreated, "accounts", map[string]interface{}{
		"id":       a.ID,
		"username": a.Username,
		"role":     a.Role,
	})
	return structpb.NewStringValue("Data inserted"), nil
}

func (s *RecordsServer) ListProfiles(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return toList(s.store.Profiles.All())
}

// GetProfile expects {"username": ...}.
func (s *RecordsServer) GetProfile(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	p, ok := s.store.ProfileByUsername(field(req, "username"))
	return toList(store.OneOrNone(p, ok))
}

func (s *RecordsServer) AddProfile(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	in := models.FieldsFromMap(req.AsMap()).Profile()
	p := s.store.Profiles.Insert(in)
	s.metrics.RecordInserted("profiles")
	s.hub.Publish(events.ProfileCreated, "profiles", p)
	return structpb.NewStringValue("Profile inserted"), nil
}

func (s *RecordsServer) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return toList(s.store.Products.All())
}

// GetProduct expects {"serialNumber": ...}.
func (s *RecordsServer) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	p, ok := s.store.ProductBySerial(field(req, "serialNumber"))
	return toList(store.OneOrNone(p, ok))
}

// AddProduct stores serialNumber, name and brand; image is ignored as it is
// over HTTP. Non-string values are kept in their JSON text form.
func (s *RecordsServer) AddProduct(ctx context.Context, req *structpb.Struct) (*structpb.Value, error) {
	in := models.FieldsFromMap(req.AsMap()).Product()
	p := s.store.Products.Insert(in)
	s.metrics.RecordInserted("products")
	s.hub.Publish(events.ProductCreated, "products", p)
	return structpb.NewStringValue("Data inserted"), nil
}

func field(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

// toList converts records to a ListValue through their JSON form.
func toList(v interface{}) (*structpb.ListValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode records: %v", err)
	}
	var items []interface{}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, status.Errorf(codes.Internal, "encode records: %v", err)
	}
	lv, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode records: %v", err)
	}
	return lv, nil
}

func logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("grpc %s %s %s", info.FullMethod, status.Code(err), time.Since(start).Round(time.Millisecond))
	return resp, err
}

// unary builds a MethodDesc for a RecordsService method.
func unary[Req any, Resp any](name string, call func(RecordsService, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			svc := srv.(RecordsService)
			if interceptor == nil {
				return call(svc, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fmt.Sprintf("/%s/%s", ServiceName, name),
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(svc, ctx, req.(*Req))
			})
		},
	}
}

// ServiceDesc describes the Records service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordsService)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListAccounts", RecordsService.ListAccounts),
		unary("CheckAuth", RecordsService.CheckAuth),
		unary("AddAccount", RecordsService.AddAccount),
		unary("ListProfiles", RecordsService.ListProfiles),
		unary("GetProfile", RecordsService.GetProfile),
		unary("AddProfile", RecordsService.AddProfile),
		unary("ListProducts", RecordsService.ListProducts),
		unary("GetProduct", RecordsService.GetProduct),
		unary("AddProduct", RecordsService.AddProduct),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "supplychain/v1/records.proto",
}
