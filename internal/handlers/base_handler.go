package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/controller"
	"internship_admin/internal/logger"
	"internship_admin/internal/store"
	"internship_admin/internal/validator"
	"internship_admin/pkg/apperrors"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Методы привязки и валидации (с контекстным логгированием)
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj any) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj, "body")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj any) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj, "query")
}

// BindForm reads a flat JSON object into a form and validates it against
// the typed shape of the entity. Numbers and booleans are kept as their
// JSON text, null becomes "".
func (h *BaseHandler) BindForm(c *gin.Context, shape any) (controller.Form, bool) {
	ctx := c.Request.Context()

	form, err := decodeForm(c.Request.Body)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to bind form", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return nil, false
	}
	if shape != nil {
		encoded, _ := json.Marshal(form)
		if err := json.Unmarshal(encoded, shape); err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
			return nil, false
		}
		if !h.validate(c, shape, "form") {
			return nil, false
		}
	}
	return form, true
}

func (h *BaseHandler) validate(c *gin.Context, obj any, source string) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			logger.CtxWarn(ctx, "Validation failed", "source", source, "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func decodeForm(body io.Reader) (controller.Form, error) {
	if body == nil {
		return nil, errors.New("empty body")
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty body")
		}
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body must be a JSON object")
	}

	form := make(controller.Form, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case nil:
			form[k] = ""
		case string:
			form[k] = x
		case json.Number:
			form[k] = x.String()
		case bool:
			form[k] = strconv.FormatBool(x)
		default:
			return nil, fmt.Errorf("field %q must be a scalar", k)
		}
	}
	return form, nil
}

// ============================================================================
// 3. Обработчики ошибок и результатов
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	switch {
	case apperrors.As(err, &appErr):
	case errors.Is(err, controller.ErrUnknownEntity):
		appErr = apperrors.ErrInvalidOperation("console", err.Error())
		appErr.HTTPCode = http.StatusNotFound
		appErr.Code = apperrors.CodeNotFound
	case errors.Is(err, store.ErrRowNotFound), errors.Is(err, controller.ErrNotApplication):
		appErr = apperrors.ErrNotFound(err, "console", "Row not found")
	default:
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	logger.CtxWarn(ctx, "Service error",
		"error", appErr.Message,
		"details", appErr.Details,
		"path", c.Request.URL.Path,
	)
	apperrors.HandleError(c, appErr)
}

// RespondAction writes the outcome of a dispatched action. Upstream failures
// carry the same message the user was notified with.
func (h *BaseHandler) RespondAction(c *gin.Context, res controller.Result, err error, successCode int) {
	switch {
	case err == nil:
		c.JSON(successCode, res)
	case errors.Is(err, controller.ErrCancelled):
		c.JSON(http.StatusOK, res)
	case res.Outcome == controller.OutcomeFailed:
		appErr := apperrors.FromUpstream(err, res.Message).WithDetails(gin.H{"result": res})
		h.HandleServiceError(c, appErr)
	default:
		h.HandleServiceError(c, err)
	}
}

// ============================================================================
// 4. Функции парсинга
// ============================================================================

func ParseParamInt64(c *gin.Context, key string) (int64, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil || value <= 0 {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not a positive integer")
	}
	return value, nil
}
