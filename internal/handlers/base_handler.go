package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"quickgig/internal/auth"
	"quickgig/internal/logger"
	"quickgig/internal/middleware"
	"quickgig/internal/validator"
	"quickgig/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// ============================================================================
// 2. Доступ к БД и пользователю
// ============================================================================

// GetDB возвращает *gorm.DB запроса с context запроса.
// nil для хранилища в памяти.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	return middleware.DBFrom(c)
}

// Principal - аутентифицированный пользователь или nil
func (h *BaseHandler) Principal(c *gin.Context) *auth.Principal {
	return middleware.GetPrincipal(c)
}

// ============================================================================
// 3. Привязка тела запроса
// ============================================================================

// bindErrorCollector - тело запроса, которое принимает ошибки типов до валидации
type bindErrorCollector interface {
	AddBindError(fe apperrors.FieldError)
}

// BindJSON разбирает JSON-тело. Пустое тело допустимо: валидацию делает сервис.
// Неподходящий тип поля не прерывает запрос, ошибка уходит в сервис вместе с телом.
// 400 только для синтаксически битого JSON.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if stderrors.Is(err, io.EOF) {
			return true
		}

		var typeErr *json.UnmarshalTypeError
		if collector, ok := obj.(bindErrorCollector); ok && stderrors.As(err, &typeErr) && typeErr.Field != "" {
			kind := reflect.Invalid
			if typeErr.Type != nil {
				kind = typeErr.Type.Kind()
			}
			collector.AddBindError(validator.TypeError(typeErr.Field, kind))
			return true
		}

		logger.CtxWarn(c.Request.Context(), "Failed to bind JSON body", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body."))
		return false
	}
	return true
}

// BindQuery разбирает строку запроса по form-тегам.
// Нечисловое значение числового параметра - ValidationError по этому параметру.
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if fields := queryTypeErrors(c, obj); len(fields) > 0 {
		apperrors.HandleError(c, apperrors.ValidationError(fields...))
		return false
	}
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWarn(c.Request.Context(), "Failed to bind query", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError())
		return false
	}
	return true
}

func queryTypeErrors(c *gin.Context, obj interface{}) []apperrors.FieldError {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []apperrors.FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if key == "" || key == "-" {
			continue
		}
		raw, ok := c.GetQuery(key)
		if !ok || raw == "" {
			continue
		}

		kind := f.Type.Kind()
		if kind == reflect.Ptr {
			kind = f.Type.Elem().Kind()
		}
		if !parsesAs(raw, kind) {
			fields = append(fields, validator.TypeError(key, kind))
		}
	}
	return fields
}

func parsesAs(raw string, kind reflect.Kind) bool {
	var err error
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, err = strconv.ParseInt(raw, 10, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, err = strconv.ParseUint(raw, 10, 64)
	case reflect.Float32, reflect.Float64:
		_, err = strconv.ParseFloat(raw, 64)
	case reflect.Bool:
		_, err = strconv.ParseBool(raw)
	}
	return err == nil
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < 500 {
		logger.CtxDebug(ctx, "Service error",
			"error", appErr.Message,
			"code", string(appErr.Code),
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, err)
}

// ============================================================================
// 5. Параметры пути
// ============================================================================

// ParseIDParam разбирает числовой id из пути. Некорректный id - 404, как и несуществующий.
func (h *BaseHandler) ParseIDParam(c *gin.Context, key string, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		apperrors.HandleError(c, notFound)
		return 0, false
	}
	return uint(id), true
}
