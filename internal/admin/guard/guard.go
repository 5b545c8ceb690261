// Package guard provides precondition checks that report violations as
// Validation failures instead of panicking.
package guard

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	e "github.com/testnest/admin/internal/admin/errors"
)

// ErrorFactory produces the Error reported when a guard fails. It is only
// called on failure.
type ErrorFactory func() e.Error

// Failed returns an ErrorFactory for a fixed code and message.
func Failed(code, message string) ErrorFactory {
	return func() e.Error { return e.NewError(code, message) }
}

// Against succeeds when cond returns true. A panicking condition is
// reported as a validation failure.
func Against(cond func() bool, factory ErrorFactory) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.NewFailure(e.Validation, e.NewError("Validation", fmt.Sprintf("Validation failed: %v", r)))
		}
	}()
	if cond() {
		return nil
	}
	return e.NewFailure(e.Validation, factory())
}

// AgainstNull fails when value is nil.
func AgainstNull[T any](value *T, factory ErrorFactory) error {
	return Against(func() bool { return value != nil }, factory)
}

// AgainstNullOrWhiteSpace fails when value is empty after trimming.
func AgainstNullOrWhiteSpace(value string, factory ErrorFactory) error {
	return Against(func() bool { return strings.TrimSpace(value) != "" }, factory)
}

// AgainstLength fails when the rune count of value is outside [min, max].
func AgainstLength(value string, min, max int, factory ErrorFactory) error {
	return Against(func() bool {
		n := utf8.RuneCountInString(value)
		return n >= min && n <= max
	}, factory)
}

// AgainstRegex fails when value does not match re.
func AgainstRegex(value string, re *regexp.Regexp, factory ErrorFactory) error {
	return Against(func() bool { return re.MatchString(value) }, factory)
}

// AgainstInvalidInput fails when valid reports false for value.
func AgainstInvalidInput[T any](value T, valid func(T) bool, factory ErrorFactory) error {
	return Against(func() bool { return valid(value) }, factory)
}

// Number covers the numeric kinds range guards accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// AgainstRange fails when value is outside the inclusive range [min, max].
func AgainstRange[T Number](value, min, max T, factory ErrorFactory) error {
	return Against(func() bool { return value >= min && value <= max }, factory)
}

// AgainstNegative fails when value is below zero.
func AgainstNegative[T Number](value T, factory ErrorFactory) error {
	return Against(func() bool { return value >= 0 }, factory)
}

// AgainstNonPositive fails when value is zero or below.
func AgainstNonPositive[T Number](value T, factory ErrorFactory) error {
	return Against(func() bool { return value > 0 }, factory)
}

// AgainstEmptyCollection fails when items is empty.
func AgainstEmptyCollection[T any](items []T, factory ErrorFactory) error {
	return Against(func() bool { return len(items) > 0 }, factory)
}

// AgainstPastDate fails when t is before now.
func AgainstPastDate(t time.Time, factory ErrorFactory) error {
	return Against(func() bool { return !t.Before(time.Now()) }, factory)
}

// AgainstFutureDate fails when t is after now.
func AgainstFutureDate(t time.Time, factory ErrorFactory) error {
	return Against(func() bool { return !t.After(time.Now()) }, factory)
}

// AgainstCondition fails when condition is true.
func AgainstCondition(condition bool, factory ErrorFactory) error {
	return Against(func() bool { return !condition }, factory)
}

// Aggregate combines guard results and reports every failure as a single
// Validation failure.
func Aggregate(results ...error) error {
	combined := e.Combine(results...)
	if combined == nil {
		return nil
	}
	return e.FromError(combined).WithType(e.Validation)
}
