package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/logger"
)

// ErrorResponse - тело ответа об ошибке: {"error": {...}}
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// debugErrors включает текст внутренних ошибок в details.
var debugErrors = true

// SetDebug задается из конфига при старте (production выключает детали).
func SetDebug(debug bool) { debugErrors = debug }

type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr := h.resolve(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), "Server error", "code", appErr.Code, "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: appErr})
}

func (h *GinErrorHandler) resolve(err error) *AppError {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}
	appErr = InternalError(err)
	if h.Debug {
		return appErr.WithDetails(err.Error())
	}
	return appErr
}

// HandleError пишет ошибку в ответ gin
func HandleError(c *gin.Context, err error) {
	(&GinErrorHandler{Debug: debugErrors}).HandleGinError(c, err)
}
