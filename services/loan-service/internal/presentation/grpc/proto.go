package grpc

// proto.go defines the gRPC server interface for loanflow/loan/v1/loan.proto.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "loanflow.loan.v1.LoanService"

// LoanServiceServer is the server API for LoanService.
type LoanServiceServer interface {
	VerifyKyc(context.Context, *VerifyKycRequest) (*VerifyKycResponse, error)
	EvaluateUnderwriting(context.Context, *EvaluateUnderwritingRequest) (*EvaluateUnderwritingResponse, error)
	GetAuditLogs(context.Context, *GetAuditLogsRequest) (*GetAuditLogsResponse, error)
	mustEmbedUnimplementedLoanServiceServer()
}

// UnimplementedLoanServiceServer provides forward-compatible default implementations.
type UnimplementedLoanServiceServer struct{}

func (UnimplementedLoanServiceServer) VerifyKyc(context.Context, *VerifyKycRequest) (*VerifyKycResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyKyc not implemented")
}
func (UnimplementedLoanServiceServer) EvaluateUnderwriting(context.Context, *EvaluateUnderwritingRequest) (*EvaluateUnderwritingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateUnderwriting not implemented")
}
func (UnimplementedLoanServiceServer) GetAuditLogs(context.Context, *GetAuditLogsRequest) (*GetAuditLogsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAuditLogs not implemented")
}
func (UnimplementedLoanServiceServer) mustEmbedUnimplementedLoanServiceServer() {}

// RegisterLoanServiceServer registers the LoanServiceServer with the gRPC server.
func RegisterLoanServiceServer(s grpclib.ServiceRegistrar, srv LoanServiceServer) {
	s.RegisterService(&loanServiceDesc, srv)
}

var loanServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LoanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unaryMethod("VerifyKyc", LoanServiceServer.VerifyKyc),
		unaryMethod("EvaluateUnderwriting", LoanServiceServer.EvaluateUnderwriting),
		unaryMethod("GetAuditLogs", LoanServiceServer.GetAuditLogs),
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loanflow/loan/v1/loan.proto",
}

// unaryMethod builds the descriptor a protoc plugin would emit for one unary
// RPC: decode the request, then run call through the interceptor chain.
func unaryMethod[Req, Resp any](
	name string,
	call func(LoanServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	fullMethod := "/" + serviceName + "/" + name
	return grpclib.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			impl := srv.(LoanServiceServer)
			if interceptor == nil {
				return call(impl, ctx, in)
			}
			info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(impl, ctx, req.(*Req))
			})
		},
	}
}
