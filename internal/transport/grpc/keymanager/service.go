// Package keymanagergrpc contains the key manager gRPC client and server
// adapters. Messages are protobuf well-known Struct values, so the service
// needs no generated code of its own.
package keymanagergrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names on the wire.
const (
	ServiceName          = "keysmanager.v1.KeysManagerService"
	DispatchFullMethod   = "/" + ServiceName + "/Dispatch"
	dispatchMethodName   = "Dispatch"
	serviceMetadataProto = "keysmanager/v1/keysmanager.proto"
)

// KeysManagerServiceServer is the server API of the key manager service.
type KeysManagerServiceServer interface {
	Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the key manager service for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KeysManagerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: dispatchMethodName,
			Handler:    dispatchHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceMetadataProto,
}

// RegisterKeysManagerServiceServer registers srv with s.
func RegisterKeysManagerServiceServer(s grpc.ServiceRegistrar, srv KeysManagerServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KeysManagerServiceServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DispatchFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(KeysManagerServiceServer).Dispatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
