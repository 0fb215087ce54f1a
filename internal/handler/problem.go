package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/metrics"
	"go-gin-catalog/internal/requestctx"
	apperrors "go-gin-catalog/pkg/app_errors"
	"go-gin-catalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DefaultErrorTypeBase = "https://api.tiqueteracatalogo.com/errors"

// ProblemResponder turns errors into problem-details responses. It is the
// only place that decides status codes for failures.
type ProblemResponder struct {
	typeBase string
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewProblemResponder builds a responder whose type URIs start with typeBase.
// m may be nil.
func NewProblemResponder(typeBase string, m *metrics.Metrics) *ProblemResponder {
	if typeBase == "" {
		typeBase = DefaultErrorTypeBase
	}
	return &ProblemResponder{
		typeBase: strings.TrimRight(typeBase, "/"),
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Problem builds the response body for err. It does not log or write.
func (p *ProblemResponder) Problem(err error, instance, traceID string) dto.Problem {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = &apperrors.Error{Kind: apperrors.KindInternal}
	}

	prob := dto.Problem{
		Instance:  instance,
		TraceID:   traceID,
		Timestamp: p.now(),
	}
	set := func(status int, slug, title, detail string) {
		prob.Status = status
		prob.Type = p.typeBase + "/" + slug
		prob.Title = title
		prob.Detail = detail
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		set(http.StatusBadRequest, "validation-error", "Validation Error", detailValidation)
		prob.Errors = problemFieldErrors(appErr.Fields, false)
	case apperrors.KindConstraintViolation:
		set(http.StatusBadRequest, "constraint-violation", "Constraint Violation", detailConstraintViolation)
		prob.Errors = problemFieldErrors(appErr.Fields, true)
	case apperrors.KindMalformedBody:
		set(http.StatusBadRequest, "malformed-request", "Malformed Request", MalformedBodyDetail(causeMessage(appErr)))
	case apperrors.KindMissingParameter:
		set(http.StatusBadRequest, "missing-parameter", "Missing Parameter",
			fmt.Sprintf("Required parameter '%s' of type '%s' is missing.", appErr.Param, appErr.ExpectedType))
	case apperrors.KindTypeMismatch:
		set(http.StatusBadRequest, "type-mismatch", "Type Mismatch",
			fmt.Sprintf("Parameter '%s' with value '%s' could not be converted to type '%s'.", appErr.Param, appErr.Value, appErr.ExpectedType))
	case apperrors.KindNotFound:
		set(http.StatusNotFound, "resource-not-found", "Resource Not Found", appErr.Message)
	case apperrors.KindRouteNotFound:
		set(http.StatusNotFound, "endpoint-not-found", "Endpoint Not Found",
			fmt.Sprintf("No handler found for %s %s", appErr.Method, appErr.URL))
	case apperrors.KindMethodNotAllowed:
		set(http.StatusMethodNotAllowed, "method-not-allowed", "Method Not Allowed",
			fmt.Sprintf("HTTP method '%s' is not supported for this endpoint. Supported methods: %s", appErr.Method, strings.Join(appErr.Supported, ", ")))
	case apperrors.KindUnsupportedMediaType:
		set(http.StatusUnsupportedMediaType, "unsupported-media-type", "Unsupported Media Type",
			fmt.Sprintf("Content type '%s' is not supported. Supported types: %s", appErr.ContentType, strings.Join(appErr.Supported, ", ")))
	case apperrors.KindConflict:
		set(http.StatusConflict, "conflict", "Conflict", appErr.Message)
	case apperrors.KindInvalidArgument:
		set(http.StatusConflict, "invalid-argument", "Invalid Argument", appErr.Message)
	case apperrors.KindBusinessRule:
		slug := "business-rule-violation"
		if appErr.RuleCode != "" {
			slug = "business-rule/" + appErr.RuleCode
		}
		set(http.StatusUnprocessableEntity, slug, "Business Rule Violation", appErr.Message)
	case apperrors.KindIntegrity:
		set(http.StatusConflict, "data-integrity-violation", "Data Integrity Violation", IntegrityDetail(causeMessage(appErr)))
	case apperrors.KindBadCredentials:
		set(http.StatusUnauthorized, "authentication-failed", "Authentication Failed", detailBadCredentials)
	case apperrors.KindAccountDisabled:
		set(http.StatusUnauthorized, "account-disabled", "Account Disabled", detailAccountDisabled)
	case apperrors.KindAccountLocked:
		set(http.StatusUnauthorized, "account-locked", "Account Locked", detailAccountLocked)
	case apperrors.KindUnauthenticated:
		detail := appErr.Message
		if detail == "" {
			detail = detailUnauthenticated
		}
		set(http.StatusUnauthorized, "authentication-required", "Authentication Required", detail)
	case apperrors.KindAccessDenied:
		set(http.StatusForbidden, "access-denied", "Access Denied", detailAccessDenied)
	case apperrors.KindRateLimited:
		set(http.StatusTooManyRequests, "too-many-requests", "Too Many Requests", detailRateLimited)
	case apperrors.KindPayloadTooLarge:
		set(http.StatusRequestEntityTooLarge, "payload-too-large", "Payload Too Large",
			fmt.Sprintf("Request body exceeds the maximum allowed size of %d bytes.", appErr.Limit))
	case apperrors.KindInternal:
		set(http.StatusInternalServerError, "internal-error", "Internal Server Error", detailInternal)
	default:
		set(http.StatusInternalServerError, "internal-error", "Internal Server Error", detailInternal)
	}
	return prob
}

// Respond writes the problem for err, then logs it once and counts it.
func (p *ProblemResponder) Respond(c *gin.Context, err error) {
	ctx := c.Request.Context()
	prob := p.Problem(err, c.Request.URL.Path, requestctx.TraceID(ctx))
	kind := apperrors.KindOf(err)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindMethodNotAllowed && len(appErr.Supported) > 0 {
		c.Header("Allow", strings.Join(appErr.Supported, ", "))
	}
	c.Header("Content-Type", dto.ProblemContentType)
	c.JSON(prob.Status, prob)

	p.log(c, err, kind, prob.Status)
	p.metrics.ObserveError(kind.String(), prob.Status)
}

// Middleware renders the last error recorded with c.Error, unless the
// handler chain already wrote a response. Mount it before the recovery
// middleware so recovered panics are rendered too.
func (p *ProblemResponder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		p.Respond(c, c.Errors.Last().Err)
	}
}

// Recovery converts panics into internal errors for Middleware to render.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		_ = c.Error(&panicError{value: recovered, stack: debug.Stack()})
		c.Abort()
	})
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (p *ProblemResponder) log(c *gin.Context, err error, kind apperrors.Kind, status int) {
	log := logger.FromContext(c.Request.Context(), "error_handler")
	fields := []zap.Field{
		zap.String("type", kind.String()),
		zap.Int("status", status),
		zap.String("endpoint", c.Request.Method+" "+c.Request.URL.Path),
		zap.String("message", err.Error()),
	}

	level := severity(kind)
	if level == zapcore.ErrorLevel {
		var pe *panicError
		if errors.As(err, &pe) {
			fields = append(fields, zap.ByteString("stack", pe.stack))
		} else {
			fields = append(fields, zap.Stack("stack"))
		}
	}
	log.Log(level, "ERROR_HANDLED", fields...)
}

// severity: expected misses are info, other client errors warn, and only
// integrity and internal failures are errors.
func severity(kind apperrors.Kind) zapcore.Level {
	switch kind {
	case apperrors.KindNotFound:
		return zapcore.InfoLevel
	case apperrors.KindIntegrity, apperrors.KindInternal:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func causeMessage(e *apperrors.Error) string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}

func problemFieldErrors(fields []apperrors.FieldError, fromPath bool) []dto.ProblemFieldError {
	out := make([]dto.ProblemFieldError, 0, len(fields))
	for _, f := range fields {
		name := f.Field
		if fromPath {
			name = ExtractFieldName(f.Field)
		}
		out = append(out, dto.ProblemFieldError{
			Field:         name,
			RejectedValue: f.RejectedValue,
			Message:       f.Message,
			Code:          f.Code,
		})
	}
	return out
}
