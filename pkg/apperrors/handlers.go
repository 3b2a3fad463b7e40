package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// debugErrors включается в development (см. SetDebug)
var debugErrors = true

// SetDebug переключает вывод деталей внутренних ошибок
func SetDebug(debug bool) {
	debugErrors = debug
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Details = nil
		} else {
			appErr.Details = gin.H{"cause": err.Error()}
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error",
			"code", appErr.Code,
			"domain", appErr.Domain,
			"path", c.Request.URL.Path,
			"error", appErr.Error(),
		)
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleValidationError - ошибки биндинга/валидации в формате field -> tag
func HandleValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		HandleError(c, ValidationError(fields))
		return
	}
	HandleError(c, ValidationError(gin.H{"details": err.Error()}))
}
