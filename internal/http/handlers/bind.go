package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgMissingFields = "Missing required fields"
	msgInvalidFields = "Invalid field values"
	msgInvalidJSON   = "Invalid JSON"
	msgTooLarge      = "Request body too large"

	msgNoFieldsToUpdate = "No valid fields to update"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON decodes and validates the body into out. On failure it writes the
// error response and returns false. Unknown fields are ignored.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	return bindJSON(ctx, out, msgMissingFields)
}

// BindJSONRequired is BindJSON with a custom message for absent fields.
func BindJSONRequired(ctx *gin.Context, out interface{}, missingMsg string) bool {
	return bindJSON(ctx, out, missingMsg)
}

func bindJSON(ctx *gin.Context, out interface{}, missingMsg string) bool {
	err := ctx.ShouldBindJSON(out)

	// an empty body is an empty object: report what is missing
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(out)
	}

	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, msgTooLarge, nil)
		return false
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields, missing := describeValidation(baseStructType(out), validationErrors)
		msg := msgInvalidFields
		if missing {
			msg = missingMsg
		}
		RespondValidation(ctx, msg, gin.H{"fields": fields})
		return false
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		field := jsonFieldName(baseStructType(out), typeError.Field)
		RespondValidation(ctx, msgInvalidFields, gin.H{"fields": []FieldError{{
			Field:   field,
			Rule:    "type",
			Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
		}}})
		return false
	}

	// syntax errors, truncated bodies and anything the decoder could not read
	RespondError(ctx, http.StatusBadRequest, CodeMalformedPayload, msgInvalidJSON, nil)
	return false
}

func describeValidation(root reflect.Type, errs validator.ValidationErrors) ([]FieldError, bool) {
	fields := make([]FieldError, 0, len(errs))
	missing := false

	for _, fe := range errs {
		rule := fe.Tag()
		if strings.HasPrefix(rule, "required") {
			missing = true
		}
		fields = append(fields, FieldError{
			Field:   jsonFieldName(root, fe.StructField()),
			Rule:    rule,
			Param:   fe.Param(),
			Message: validationMessage(rule, fe.Param()),
		})
	}

	return fields, missing
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// jsonFieldName maps a Go field name back to its json tag. Request types
// are flat, so only the top level is searched.
func jsonFieldName(root reflect.Type, goName string) string {
	if goName == "" || root == nil {
		return goName
	}

	// UnmarshalTypeError.Field is already the json path
	if i := strings.LastIndex(goName, "."); i >= 0 {
		goName = goName[i+1:]
	}

	sf, ok := root.FieldByName(goName)
	if !ok {
		return goName
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		return "must be at least " + param
	case "max", "lte":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "len":
		return "must be exactly " + param + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "money":
		return "must have at most 2 decimal places"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
