package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "microciv.v1.GameService"

// GameServiceServer is the server API for the game service
type GameServiceServer interface {
	NewGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Build(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Research(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Train(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Trade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateTrades(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChangeTerrain(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndTurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var _ GameServiceServer = (*Service)(nil)

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// methods lists every RPC in declaration order
var methods = []struct {
	name string
	call unaryCall
}{
	{"NewGame", GameServiceServer.NewGame},
	{"GetState", GameServiceServer.GetState},
	{"Build", GameServiceServer.Build},
	{"Research", GameServiceServer.Research},
	{"Train", GameServiceServer.Train},
	{"Trade", GameServiceServer.Trade},
	{"GenerateTrades", GameServiceServer.GenerateTrades},
	{"ChangeTerrain", GameServiceServer.ChangeTerrain},
	{"EndTurn", GameServiceServer.EndTurn},
	{"EndGame", GameServiceServer.EndGame},
}

// ServiceDesc describes GameService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
	Metadata:    "microciv/v1/game.proto",
}

func methodDescs() []grpc.MethodDesc {
	descs := make([]grpc.MethodDesc, 0, len(methods))
	for _, m := range methods {
		descs = append(descs, grpc.MethodDesc{MethodName: m.name, Handler: unaryHandler(m.name, m.call)})
	}
	return descs
}

func unaryHandler(name string, call unaryCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register registers srv on a gRPC server
func Register(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls GameService methods over a client connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a client connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes a method by name, e.g. "Build"
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
