package errors

import (
	"errors"
	"fmt"
)

// 핸들러가 표준 errors 패키지를 따로 가져오지 않도록 재노출합니다
var (
	New = errors.New
	As  = errors.As
)

// Error는 응답 코드로 변환 가능한 에러입니다
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError는 코드, 사용자에게 보여줄 메시지, 원인 에러를 묶습니다.
// 원인 에러는 로그에만 남고 응답 본문에는 나가지 않습니다.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.err)
}

func (e *AppError) Code() string { return e.code }

// Message는 응답 본문에 쓰이는 메시지입니다
func (e *AppError) Message() string { return e.message }

func (e *AppError) Unwrap() error { return e.err }

func NewAppError(code string, message string, err error) *AppError {
	return &AppError{code: code, message: message, err: err}
}

// Wrap은 메시지를 덧붙이되 안쪽 AppError의 코드를 유지합니다.
// 코드가 없는 에러는 ErrInternal이 됩니다.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}
	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 체인에서 가장 바깥쪽 AppError의 코드를 반환합니다.
// AppError가 없으면 ErrInternal, nil이면 빈 문자열입니다.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// HasCode는 err의 코드가 code와 같은지 확인합니다
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
