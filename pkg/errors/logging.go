package errors

import (
	"go.uber.org/zap"
)

// LogError는 에러를 구조화된 로그로 기록합니다.
// 예상 가능한 에러(잘못된 입력, 없음, 충돌)는 알람이 되지 않도록 Info 레벨로 남깁니다.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err))

	code := CodeOf(err)
	var appErr *AppError
	if As(err, &appErr) {
		allFields = append(allFields, zap.String("error_code", code))
	}

	allFields = append(allFields, fields...)

	if IsExpected(code) {
		logger.Info(msg, allFields...)
		return
	}
	logger.Error(msg, allFields...)
}
