package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Ошибки запроса к консоли
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Ошибки вышестоящего API
	CodeUpstreamRejected    ErrorCode = "UPSTREAM_REJECTED"
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
)
