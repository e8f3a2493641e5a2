package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다.
// 응답 메시지에는 내부 원인을 노출하지 않습니다.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		httpStatus := ToHTTPStatus(appErr.Code())
		return echo.NewHTTPError(httpStatus, map[string]string{
			"error": appErr.Message(),
			"code":  appErr.Code(),
		}).SetInternal(err)
	}

	// Echo 에러인 경우 그대로 반환
	if echoErr, ok := err.(*echo.HTTPError); ok {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
		"error": http.StatusText(http.StatusInternalServerError),
		"code":  ErrInternal,
	}).SetInternal(err)
}
