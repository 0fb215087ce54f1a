package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	apperrors "go-gin-catalog/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var supportedMediaTypes = []string{binding.MIMEJSON}

var (
	setupOnce sync.Once
	setupErr  error
)

// SetupValidator configures gin's validator once per process: errors report
// JSON field names, and the notblank and cents rules are available to
// binding tags.
func SetupValidator() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if setupErr = v.RegisterValidation("notblank", validators.NotBlank); setupErr != nil {
			return
		}
		setupErr = v.RegisterValidation("cents", cents)
	})
	return setupErr
}

// cents accepts floats with at most two decimal places.
func cents(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		// shortest representation that round-trips, so 19.99 stays "19.99"
		_, frac, _ := strings.Cut(strconv.FormatFloat(field.Float(), 'f', -1, field.Type().Bits()), ".")
		return len(frac) <= 2
	default:
		return false
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// bindJSON decodes and validates the body into obj, translating failures into
// Validation, PayloadTooLarge or MalformedBody errors.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:         fe.Field(),
				RejectedValue: fe.Value(),
				Message:       fieldMessage(fe),
				Code:          fe.Tag(),
			})
		}
		return apperrors.Validation(fields)
	case errors.As(err, &tooLarge):
		return apperrors.PayloadTooLarge(tooLarge.Limit)
	default:
		return apperrors.MalformedBody(err)
	}
}

// pathID parses a positive int64 path parameter. The property path of a
// constraint failure is "<operation>.<name>".
func pathID(c *gin.Context, name, operation string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.TypeMismatch(name, raw, "int64")
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return id, nil
	}
	if err := v.Var(id, "gt=0"); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return 0, err
		}
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:         operation + "." + name,
				RejectedValue: id,
				Message:       fieldMessage(fe),
				Code:          fe.Tag(),
			})
		}
		return 0, apperrors.ConstraintViolation(fields)
	}
	return id, nil
}

// requireJSON rejects write requests whose body is not JSON.
func requireJSON(c *gin.Context) {
	if c.ContentType() != binding.MIMEJSON {
		_ = c.Error(apperrors.UnsupportedMediaType(c.GetHeader("Content-Type"), supportedMediaTypes))
		c.Abort()
		return
	}
	c.Next()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.String {
			return "must not be blank"
		}
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "cents":
		return "must have at most 2 decimal places"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("size must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("size must be at least %s characters", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
