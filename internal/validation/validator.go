// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one failed rule.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the dotted koanf path of the field.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the rule that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the rule parameter, "60" for "min=60".
func (e *ValidationError) Param() string { return e.param }

// Value returns the rejected value.
func (e *ValidationError) Value() any { return e.value }

func (e *ValidationError) Error() string { return e.message }

// Errors aggregates every failed rule of one struct.
type Errors struct {
	errors []ValidationError
}

// Errors returns the individual failures.
func (ve *Errors) Errors() []ValidationError { return ve.errors }

// Add appends a failure produced outside the validator, such as a
// cross-field check.
func (ve *Errors) Add(field, tag, message string) {
	ve.errors = append(ve.errors, ValidationError{field: field, tag: tag, message: message})
}

// Len returns the number of failures.
func (ve *Errors) Len() int { return len(ve.errors) }

func (ve *Errors) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for _, e := range ve.errors {
		messages = append(messages, e.message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(koanfName)
		if err := validate.RegisterValidation("ingest_path", ingestPath); err != nil {
			panic(fmt.Sprintf("validation: register ingest_path: %v", err))
		}
	})
	return validate
}

func koanfName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func ingestPath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if !strings.HasPrefix(p, "/") || strings.ContainsAny(p, "?#{} ") {
		return false
	}
	return p != "/api/v1" && !strings.HasPrefix(p, "/api/v1/")
}

// ValidateStruct validates s. It returns nil or an *Errors.
func ValidateStruct(s any) *Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out := &Errors{}
		out.Add("unknown", "unknown", err.Error())
		return out
	}

	out := &Errors{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		out.errors = append(out.errors, ValidationError{
			field:   field,
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe, field),
		})
	}
	return out
}

// fieldPath drops the root struct name: "Config.session.ttl_seconds"
// becomes "session.ttl_seconds".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

var messages = map[string]string{
	"required":    "%s is required",
	"email":       "%s must be a valid email address",
	"hostname":    "%s must be a valid hostname",
	"ip":          "%s must be a valid IP address",
	"url":         "%s must be a valid URL",
	"ingest_path": "%s must be an absolute path outside /api/v1",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError, field string) string {
	tag, param := fe.Tag(), fe.Param()
	if tmpl, ok := messages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Map:
		unit = " entries"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
