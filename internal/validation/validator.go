// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Package validation wraps go-playground/validator v10 with a shared instance
// and messages suitable for API error responses.
//
//	type RecommendRequest struct {
//	    Ratings map[int]int `json:"ratings" validate:"dive,keys,gt=0,endkeys,min=1,max=5"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CodeValidationFailed is the API error code for rejected input.
const CodeValidationFailed = "VALIDATION_FAILED"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the JSON path of the failing field, for example "ratings[7]".
func (e *FieldError) Field() string { return e.field }

// Tag returns the failing rule.
func (e *FieldError) Tag() string { return e.tag }

// Param returns the rule parameter ("5" for max=5).
func (e *FieldError) Param() string { return e.param }

// Value returns the rejected value.
func (e *FieldError) Value() interface{} { return e.value }

func (e *FieldError) Error() string { return e.message }

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual failures.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve.errors))
	for i := range ve.errors {
		msgs = append(msgs, ve.errors[i].message)
	}
	return strings.Join(msgs, "; ")
}

// APIError is the transport-neutral shape of a validation failure.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to an APIError with per-field details.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: CodeValidationFailed, Message: "Validation failed"}
	}

	if len(ve.errors) == 1 {
		e := ve.errors[0]
		return &APIError{
			Code:    CodeValidationFailed,
			Message: e.message,
			Details: map[string]interface{}{"field": e.field, "tag": e.tag, "value": e.value},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]interface{}{"field": e.field, "tag": e.tag, "message": e.message}
	}
	return &APIError{
		Code:    CodeValidationFailed,
		Message: ve.Error(),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator. Field names in errors follow
// the json tag so messages match the request body.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates s, returning nil or the collected failures.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	out := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{
			field:   fieldPath(fe),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var messageTemplates = map[string]string{
	"required": "%s is required",
}

var paramTemplates = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field := fieldPath(fe)
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
