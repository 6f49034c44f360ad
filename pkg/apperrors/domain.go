package apperrors

import (
	"net/http"

	"internship_admin/internal/apiclient"
)

/*
Фабрики для ошибок консоли и ответов вышестоящего API.
*/

// ErrNotFound - строка листинга или уведомление не найдены (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrUnknownEntity - в пути указан несуществующий листинг (404)
func ErrUnknownEntity(entity string) *AppError {
	return New(CodeNotFound, "console", "Unknown entity: "+entity, http.StatusNotFound)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// FromUpstream converts a failed upstream call into an AppError carrying the
// message the user was notified with. A 4xx answer keeps its status, any
// other rejection is 502 and a transport failure is 503.
func FromUpstream(err error, message string) *AppError {
	status := apiclient.StatusCode(err)
	switch {
	case status >= 400 && status < 500:
		return Wrap(err, CodeUpstreamRejected, "upstream", message, status)
	case status != 0:
		return Wrap(err, CodeUpstreamRejected, "upstream", message, http.StatusBadGateway)
	default:
		return Wrap(err, CodeUpstreamUnavailable, "upstream", message, http.StatusServiceUnavailable)
	}
}
