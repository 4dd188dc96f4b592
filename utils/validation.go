package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// EmailRegex is deliberately loose: something@something.something.
var EmailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldError is one failed validation rule.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// Validator collects every failed rule instead of stopping at the first.
type Validator struct {
	errs []FieldError
}

// Check records msg against param when ok is false.
func (v *Validator) Check(ok bool, param, msg string) {
	if !ok {
		v.errs = append(v.errs, FieldError{Msg: msg, Param: param})
	}
}

// MinLength requires value, trimmed, to have at least n characters.
func (v *Validator) MinLength(param, value string, n int, msg string) {
	v.Check(utf8.RuneCountInString(strings.TrimSpace(value)) >= n, param, msg)
}

func (v *Validator) Email(param, value, msg string) {
	v.Check(ValidateEmail(value), param, msg)
}

func (v *Validator) Required(param, value, msg string) {
	v.Check(strings.TrimSpace(value) != "", param, msg)
}

// Date requires a YYYY-MM-DD calendar date.
func (v *Validator) Date(param, value, msg string) {
	_, err := time.Parse("2006-01-02", value)
	v.Check(err == nil, param, msg)
}

func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

func (v *Validator) Errors() []FieldError {
	return v.errs
}

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) bool {
	return EmailRegex.MatchString(email)
}
