package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, result code, user ID and duration. Client errors are
// logged at WARN, server-side failures at ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			userID := GetUserID(ctx) // empty if anonymous

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err == nil {
				logger.Info("RPC ok",
					"procedure", procedure,
					"user_id", userID,
					"duration_ms", duration,
				)
				return resp, nil
			}

			code := connect.CodeOf(err)
			level := slog.LevelWarn
			if isServerError(code) {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "RPC error",
				"procedure", procedure,
				"code", code.String(),
				"error", err,
				"user_id", userID,
				"duration_ms", duration,
			)
			return resp, err
		}
	}
}

func isServerError(code connect.Code) bool {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss,
		connect.CodeUnavailable, connect.CodeUnimplemented:
		return true
	default:
		return false
	}
}

// codeLabel is the metric/log label for an RPC result.
func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
