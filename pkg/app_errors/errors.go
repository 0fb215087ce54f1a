package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of error categories that can reach the HTTP
// boundary. Every Kind has exactly one response rule in the handler package.
type Kind int

const (
	// KindInternal is the zero value so that an unclassified error is never
	// mistaken for a client error.
	KindInternal Kind = iota
	KindValidation
	KindConstraintViolation
	KindMalformedBody
	KindMissingParameter
	KindTypeMismatch
	KindNotFound
	KindRouteNotFound
	KindMethodNotAllowed
	KindUnsupportedMediaType
	KindConflict
	KindInvalidArgument
	KindBusinessRule
	KindIntegrity
	KindBadCredentials
	KindAccountDisabled
	KindAccountLocked
	KindUnauthenticated
	KindAccessDenied
	KindRateLimited
	KindPayloadTooLarge
)

var kindNames = map[Kind]string{
	KindInternal:             "INTERNAL_SERVER_ERROR",
	KindValidation:           "VALIDATION_ERROR",
	KindConstraintViolation:  "CONSTRAINT_VIOLATION",
	KindMalformedBody:        "MALFORMED_REQUEST",
	KindMissingParameter:     "MISSING_PARAMETER",
	KindTypeMismatch:         "TYPE_MISMATCH",
	KindNotFound:             "RESOURCE_NOT_FOUND",
	KindRouteNotFound:        "ENDPOINT_NOT_FOUND",
	KindMethodNotAllowed:     "METHOD_NOT_ALLOWED",
	KindUnsupportedMediaType: "UNSUPPORTED_MEDIA_TYPE",
	KindConflict:             "CONFLICT",
	KindInvalidArgument:      "INVALID_ARGUMENT",
	KindBusinessRule:         "BUSINESS_RULE_VIOLATION",
	KindIntegrity:            "DATA_INTEGRITY_VIOLATION",
	KindBadCredentials:       "AUTHENTICATION_FAILED",
	KindAccountDisabled:      "ACCOUNT_DISABLED",
	KindAccountLocked:        "ACCOUNT_LOCKED",
	KindUnauthenticated:      "AUTHENTICATION_REQUIRED",
	KindAccessDenied:         "ACCESS_DENIED",
	KindRateLimited:          "RATE_LIMITED",
	KindPayloadTooLarge:      "PAYLOAD_TOO_LARGE",
}

// String returns the log label of the kind, e.g. "VALIDATION_ERROR".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// Sentinels for errors.Is checks against a kind, independent of payload.
var (
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrIntegrity       = &Error{Kind: KindIntegrity, Message: "data integrity violation"}
)

// FieldError is one failing field of a validation result.
type FieldError struct {
	Field         string
	RejectedValue any
	Message       string
	Code          string
}

// Error is the single error type carried from the service and transport
// layers to the problem-details responder. Only the payload fields relevant
// to Kind are populated.
type Error struct {
	Kind    Kind
	Message string

	// BusinessRule
	RuleCode string

	// Validation, ConstraintViolation
	Fields []FieldError

	// MissingParameter, TypeMismatch
	Param        string
	Value        string
	ExpectedType string

	// RouteNotFound, MethodNotAllowed, UnsupportedMediaType
	Method      string
	URL         string
	ContentType string
	Supported   []string

	// NotFound
	Resource string
	ID       any

	// PayloadTooLarge
	Limit int64

	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports kind equality so that errors.Is(err, ErrNotFound) matches every
// not-found error regardless of resource or id.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func NotFound(resource string, id any) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  fmt.Sprintf("%s not found with id: %v", resource, id),
		Resource: resource,
		ID:       id,
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// BusinessRule builds a rule violation. ruleCode may be empty.
func BusinessRule(message, ruleCode string) *Error {
	return &Error{Kind: KindBusinessRule, Message: message, RuleCode: ruleCode}
}

// Integrity wraps a persistence-layer constraint failure. The driver message
// stays in Cause and is never rendered to the caller.
func Integrity(cause error) *Error {
	return &Error{Kind: KindIntegrity, Message: "data integrity violation", Cause: cause}
}

func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: validationMessage("validation failed", fields), Fields: fields}
}

func ConstraintViolation(fields []FieldError) *Error {
	return &Error{Kind: KindConstraintViolation, Message: validationMessage("constraint violation", fields), Fields: fields}
}

func MalformedBody(cause error) *Error {
	return &Error{Kind: KindMalformedBody, Message: "malformed request body", Cause: cause}
}

func MissingParameter(name, expectedType string) *Error {
	return &Error{
		Kind:         KindMissingParameter,
		Message:      fmt.Sprintf("missing parameter %s", name),
		Param:        name,
		ExpectedType: expectedType,
	}
}

func TypeMismatch(name, value, expectedType string) *Error {
	return &Error{
		Kind:         KindTypeMismatch,
		Message:      fmt.Sprintf("parameter %s: cannot convert %q to %s", name, value, expectedType),
		Param:        name,
		Value:        value,
		ExpectedType: expectedType,
	}
}

func RouteNotFound(method, url string) *Error {
	return &Error{Kind: KindRouteNotFound, Message: "no route", Method: method, URL: url}
}

func MethodNotAllowed(method string, supported []string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: "method not allowed", Method: method, Supported: supported}
}

func UnsupportedMediaType(contentType string, supported []string) *Error {
	return &Error{Kind: KindUnsupportedMediaType, Message: "unsupported media type", ContentType: contentType, Supported: supported}
}

func BadCredentials() *Error {
	return &Error{Kind: KindBadCredentials, Message: "bad credentials"}
}

func AccountDisabled() *Error {
	return &Error{Kind: KindAccountDisabled, Message: "account disabled"}
}

func AccountLocked() *Error {
	return &Error{Kind: KindAccountLocked, Message: "account locked"}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func AccessDenied(message string) *Error {
	return &Error{Kind: KindAccessDenied, Message: message}
}

func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "rate limit exceeded"}
}

func PayloadTooLarge(limit int64) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: fmt.Sprintf("request body exceeds %d bytes", limit), Limit: limit}
}

func validationMessage(prefix string, fields []FieldError) string {
	if len(fields) == 0 {
		return prefix
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+":"+f.Message)
	}
	return fmt.Sprintf("%s: %d errors: %s", prefix, len(fields), strings.Join(parts, ", "))
}
