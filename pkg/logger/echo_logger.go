// File: pkg/logger/echo_logger.go
package logger

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 요청 로그에서 제외하는 경로
var skippedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// NewEchoRequestLogger는 Echo 서버를 위한 Request Logger를 생성합니다.
// 쿠키 값과 Authorization 헤더는 그대로 남기지 않습니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return skippedPaths[c.Request().URL.Path]
		},
		HandleError: true,

		LogLatency:      true,
		LogProtocol:     true,
		LogRemoteIP:     true,
		LogHost:         true,
		LogMethod:       true,
		LogURI:          true,
		LogRoutePath:    true,
		LogRequestID:    true,
		LogReferer:      true,
		LogUserAgent:    true,
		LogStatus:       true,
		LogError:        true,
		LogResponseSize: true,

		LogHeaders:     []string{"Content-Type", "Authorization"},
		LogQueryParams: []string{"utm_source", "utm_campaign", "page", "limit"},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.host", v.Host),
				zap.String("request.protocol", v.Protocol),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.referer", v.Referer),
				zap.String("request.request_id", v.RequestID),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.Int64("response.response_size", v.ResponseSize),
			}

			if len(v.Headers) > 0 {
				headers := make(map[string]string, len(v.Headers))
				for k, values := range v.Headers {
					if len(values) == 0 {
						continue
					}
					if k == "Authorization" {
						headers[k] = maskToken(values[0])
						continue
					}
					headers[k] = values[0]
				}
				fields = append(fields, zap.Any("request.headers", headers))
			}

			if len(v.QueryParams) > 0 {
				fields = append(fields, zap.Any("request.query_params", v.QueryParams))
			}

			switch {
			case v.Status >= 500:
				fields = append(fields, zap.Error(v.Error))
				logger.Error("Server error", fields...)
			case v.Status >= 400:
				// 잘못된 코드, 미인증 등 클라이언트 에러는 알람 대상이 아닙니다
				logger.Info("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}

// maskToken은 Bearer 토큰의 앞뒤 일부만 남깁니다.
func maskToken(val string) string {
	if len(val) > 15 {
		return val[:10] + "..." + val[len(val)-5:]
	}
	return "[MASKED]"
}

// WithEchoLogger Echo에 zap 로거와 커스텀 에러 핸들러를 설정합니다.
// 에러 응답 본문은 항상 {"error": ..., "code": ...} 형태입니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var body interface{} = map[string]string{"error": http.StatusText(code)}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch msg := he.Message.(type) {
			case map[string]string:
				body = msg
			case string:
				body = map[string]string{"error": msg}
			default:
				body = map[string]string{"error": http.StatusText(code)}
			}
		}

		level := zapcore.InfoLevel
		if code >= http.StatusInternalServerError {
			level = zapcore.ErrorLevel
		}
		if ce := logger.Check(level, "HTTP error"); ce != nil {
			ce.Write(
				zap.Error(err),
				zap.Int("status", code),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}

// EchoZapLogger는 echo.Logger 인터페이스를 구현한 zap 로거 래퍼입니다.
type EchoZapLogger struct {
	Logger *zap.Logger
	level  log.Lvl
	prefix string
}

// NewEchoZapLogger는 Echo의 Logger 인터페이스를 구현한 zap 로거 래퍼를 생성합니다.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger.WithOptions(zap.AddCallerSkip(1)), level: log.INFO}
}

func (l *EchoZapLogger) sugar() *zap.SugaredLogger {
	return l.Logger.Sugar()
}

// enabled는 echo 쪽 레벨 설정으로 한번 더 거릅니다.
func (l *EchoZapLogger) enabled(lvl log.Lvl) bool {
	return lvl >= l.level
}

func (l *EchoZapLogger) Output() io.Writer { return &zapWriter{logger: l.Logger} }
func (l *EchoZapLogger) SetOutput(w io.Writer) {}
func (l *EchoZapLogger) Level() log.Lvl { return l.level }
func (l *EchoZapLogger) SetLevel(v log.Lvl) { l.level = v }
func (l *EchoZapLogger) SetHeader(h string) {}
func (l *EchoZapLogger) Prefix() string { return l.prefix }
func (l *EchoZapLogger) SetPrefix(p string) { l.prefix = p }
func (l *EchoZapLogger) Print(i ...interface{}) { l.sugar().Info(i...) }
func (l *EchoZapLogger) Printj(j log.JSON) { l.Logger.Info("json_message", zap.Any("json", j)) }
func (l *EchoZapLogger) Fatal(i ...interface{}) { l.sugar().Fatal(i...) }
func (l *EchoZapLogger) Fatalj(j log.JSON) { l.Logger.Fatal("json_message", zap.Any("json", j)) }
func (l *EchoZapLogger) Panic(i ...interface{}) { l.sugar().Panic(i...) }
func (l *EchoZapLogger) Panicj(j log.JSON) { l.Logger.Panic("json_message", zap.Any("json", j)) }
func (l *EchoZapLogger) Printf(f string, i ...interface{}) { l.sugar().Infof(f, i...) }
func (l *EchoZapLogger) Fatalf(f string, i ...interface{}) { l.sugar().Fatalf(f, i...) }
func (l *EchoZapLogger) Panicf(f string, i ...interface{}) { l.sugar().Panicf(f, i...) }

func (l *EchoZapLogger) Debug(i ...interface{}) {
	if l.enabled(log.DEBUG) {
		l.sugar().Debug(i...)
	}
}

func (l *EchoZapLogger) Debugf(format string, i ...interface{}) {
	if l.enabled(log.DEBUG) {
		l.sugar().Debugf(format, i...)
	}
}

func (l *EchoZapLogger) Debugj(j log.JSON) {
	if l.enabled(log.DEBUG) {
		l.Logger.Debug("json_message", zap.Any("json", j))
	}
}

func (l *EchoZapLogger) Info(i ...interface{}) {
	if l.enabled(log.INFO) {
		l.sugar().Info(i...)
	}
}

func (l *EchoZapLogger) Infof(format string, i ...interface{}) {
	if l.enabled(log.INFO) {
		l.sugar().Infof(format, i...)
	}
}

func (l *EchoZapLogger) Infoj(j log.JSON) {
	if l.enabled(log.INFO) {
		l.Logger.Info("json_message", zap.Any("json", j))
	}
}

func (l *EchoZapLogger) Warn(i ...interface{}) {
	if l.enabled(log.WARN) {
		l.sugar().Warn(i...)
	}
}

func (l *EchoZapLogger) Warnf(format string, i ...interface{}) {
	if l.enabled(log.WARN) {
		l.sugar().Warnf(format, i...)
	}
}

func (l *EchoZapLogger) Warnj(j log.JSON) {
	if l.enabled(log.WARN) {
		l.Logger.Warn("json_message", zap.Any("json", j))
	}
}

func (l *EchoZapLogger) Error(i ...interface{}) {
	if l.enabled(log.ERROR) {
		l.sugar().Error(i...)
	}
}

func (l *EchoZapLogger) Errorf(format string, i ...interface{}) {
	if l.enabled(log.ERROR) {
		l.sugar().Errorf(format, i...)
	}
}

func (l *EchoZapLogger) Errorj(j log.JSON) {
	if l.enabled(log.ERROR) {
		l.Logger.Error("json_message", zap.Any("json", j))
	}
}

// zapWriter는 io.Writer 인터페이스를 구현한 zap 로거 래퍼입니다.
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (n int, err error) {
	w.logger.Info(string(p))
	return len(p), nil
}
