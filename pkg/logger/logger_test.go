package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestWithEchoLogger_ErrorBody(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	WithEchoLogger(e, zap.New(core))

	e.GET("/structured", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "referral code not found", "code": "NOT_FOUND"})
	})
	e.GET("/plain", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/structured", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"referral code not found","code":"NOT_FOUND"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())

	entries := logs.FilterMessage("HTTP error").AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	}
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 50*time.Millisecond, true)
	fc := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	gl.Trace(context.Background(), time.Now(), fc, errors.New("connection refused"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	gl.Trace(context.Background(), time.Now(), fc, nil)

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}

	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), fc, errors.New("ignored"))
	assert.Equal(t, 2, logs.Len())
}
