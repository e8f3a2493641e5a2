package errors

// 공통 에러 코드 정의
const (
	ErrInternal           = "INTERNAL"
	ErrNotFound           = "NOT_FOUND"
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrUnauthenticated    = "UNAUTHENTICATED"
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrConflict           = "CONFLICT"
	ErrTimeout            = "TIMEOUT"
	ErrNotImplemented     = "NOT_IMPLEMENTED"
	ErrStorageUnavailable = "STORAGE_UNAVAILABLE" // 저장소(DB/REST) 연결 불가
)

// IsExpected는 알람 없이 처리해야 하는 예상 가능한 에러 코드인지 확인합니다
func IsExpected(code string) bool {
	switch code {
	case ErrInvalidArgument, ErrNotFound, ErrConflict, ErrUnauthenticated, ErrUnauthorized:
		return true
	default:
		return false
	}
}
