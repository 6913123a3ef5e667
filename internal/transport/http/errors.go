package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const (
	codeNotFound               = "not_found"
	codeInvalidRequestBody     = "invalid_request_body"
	codeValidationFailed       = "validation_failed"
	codeMissingDate            = "missing_date"
	codeInvalidDate            = "invalid_date"
	codeInvalidYear            = "invalid_year"
	codeInvalidMonth           = "invalid_month"
	codeCapacityExceeded       = "capacity_exceeded"
	codeTruckTypeNotConfigured = "truck_type_not_configured"
	codeReservationNotFound    = "reservation_not_found"
	codeAlreadyReceived        = "already_received"
	codeBlockedDateNotFound    = "blocked_date_not_found"
	codeStorageInconsistency   = "storage_inconsistency"
	codeUnauthorized           = "unauthorized"
	codeForbidden              = "forbidden"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error: msg,
		Code:  code,
	})
}

// classifyError maps a service error to a status, a code and a message safe
// to show. Unknown errors become internal_error.
func classifyError(err error) (int, string, string) {
	var (
		capErr *domain.CapacityError
		cfgErr *domain.ConfigError
		valErr *domain.ValidationError
		incErr *domain.StorageInconsistencyError
	)
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest, codeValidationFailed, valErr.Error()
	case errors.As(err, &capErr):
		return http.StatusConflict, codeCapacityExceeded, capErr.Error()
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity, codeTruckTypeNotConfigured, cfgErr.Error()
	case errors.As(err, &incErr):
		return http.StatusInternalServerError, codeStorageInconsistency, "conference stored but reservation status was not updated"
	case errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound, codeReservationNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadyReceived):
		return http.StatusConflict, codeAlreadyReceived, err.Error()
	case errors.Is(err, domain.ErrBlockedDateNotFound):
		return http.StatusNotFound, codeBlockedDateNotFound, err.Error()
	default:
		return http.StatusInternalServerError, codeInternalError, "internal error"
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	status, code, msg := classifyError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"code", code,
			"error", err,
		)
	}
	writeError(c, status, code, msg)
}

var registerFieldNames sync.Once

// bind decodes the request into dst and turns binding failures into a
// validation error naming the offending form or JSON field.
func bind(c *gin.Context, dst any, b binding.Binding) error {
	registerFieldNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
		}
	})

	err := c.ShouldBindWith(dst, b)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), describeTag(fe.Tag()))
	}
	return err
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "number", "gte":
		return "must be a non-negative integer"
	default:
		return "invalid value (" + tag + ")"
	}
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		writeError(c, http.StatusBadRequest, codeValidationFailed, valErr.Error())
		return
	}
	h.logger.Debug("unreadable request body", "path", c.FullPath(), "error", err)
	writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
}
