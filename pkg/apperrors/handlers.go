package apperrors

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse - тело ответа об ошибке: {"message": ..., "errors": {field: [...]}}
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	if appErr.HTTPCode >= 500 && h.Debug && appErr.Err != nil {
		// В development показываем причину
		message = appErr.Message + ": " + appErr.Err.Error()
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Message: message,
		Errors:  appErr.FieldMessages(),
	})
}

var debugErrors bool

// SetDebug включает вывод деталей внутренних ошибок
func SetDebug(debug bool) {
	debugErrors = debug
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugErrors}
	handler.HandleGinError(c, err)
}
