package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcLevel은 상태 코드에 따라 로그 레벨을 결정합니다.
// 일시적인 실패(취소, 타임아웃, Unavailable 등)는 Warn입니다.
func grpcLevel(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK:
		return zapcore.InfoLevel
	case codes.Canceled, codes.DeadlineExceeded, codes.ResourceExhausted,
		codes.Aborted, codes.Unavailable, codes.DataLoss:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}

func splitMethod(fullMethod string) (string, string) {
	return path.Dir(fullMethod)[1:], path.Base(fullMethod)
}

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
// 헬스 체크는 Debug 레벨로만 기록합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		service, method := splitMethod(info.FullMethod)

		resp, err := handler(ctx, req)

		code := grpcCode(err)
		level := grpcLevel(code)
		if code == codes.OK && service == "grpc.health.v1.Health" {
			level = zapcore.DebugLevel
		}

		if ce := logger.Check(level, "gRPC 요청"); ce != nil {
			ce.Write(
				zap.String("grpc.service", service),
				zap.String("grpc.method", method),
				zap.String("grpc.code", code.String()),
				zap.Duration("grpc.duration", time.Since(startTime)),
				zap.Error(err),
			)
		}
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트리밍 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
// 헬스 Watch 스트림이 여기를 지납니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()
		service, method := splitMethod(info.FullMethod)

		wrapped := &wrappedServerStream{ServerStream: ss}
		err := handler(srv, wrapped)

		code := grpcCode(err)
		if ce := logger.Check(grpcLevel(code), "gRPC 스트림 종료"); ce != nil {
			ce.Write(
				zap.String("grpc.service", service),
				zap.String("grpc.method", method),
				zap.String("grpc.code", code.String()),
				zap.Int("grpc.recv_count", wrapped.recvCount),
				zap.Int("grpc.send_count", wrapped.sendCount),
				zap.Duration("grpc.duration", time.Since(startTime)),
				zap.Error(err),
			)
		}
		return err
	}
}

// wrappedServerStream은 ServerStream을 래핑하여 메시지 송수신 횟수를 추적합니다.
type wrappedServerStream struct {
	grpc.ServerStream
	recvCount int
	sendCount int
}

func (w *wrappedServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	if err == nil {
		w.recvCount++
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sendCount++
	}
	return err
}
