// Package entry converts single typed fields to and from document sections.
//
// Decoding never fails loudly: an absent section, an absent key or a value
// that does not parse strictly all come back as an error result matching
// ErrMissing, leaving the caller to pick a default.
package entry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmp-client/dmpcfg/document"
	"github.com/samber/mo"
	"golang.org/x/exp/constraints"
)

// ErrMissing matches every decode failure.
var ErrMissing = errors.New("entry missing")

// DecodeError describes why a key could not be decoded.
type DecodeError struct {
	Key    string
	Raw    string
	Absent bool
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Absent {
		return fmt.Sprintf("%s: absent", e.Key)
	}
	return fmt.Sprintf("%s: invalid value %q: %v", e.Key, e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrMissing.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMissing
}

// Invalid builds the error result for a present but unacceptable value.
func Invalid[T any](key, raw string, reason error) mo.Result[T] {
	return mo.Err[T](&DecodeError{Key: key, Raw: raw, Err: reason})
}

func raw[T any](section *document.Node, key string, parse func(string) (T, error)) mo.Result[T] {
	value, ok := section.Value(key)
	if !ok {
		return mo.Err[T](&DecodeError{Key: key, Absent: true})
	}

	parsed, err := parse(value)
	if err != nil {
		return Invalid[T](key, value, err)
	}
	return mo.Ok(parsed)
}

// Int decodes a base-10 integer without tolerating surrounding text or spaces.
func Int(section *document.Node, key string) mo.Result[int] {
	return raw(section, key, strconv.Atoi)
}

// Enum decodes an integer-backed enumeration. Values outside the declared
// constants are accepted as they are.
func Enum[T constraints.Integer](section *document.Node, key string) mo.Result[T] {
	return raw(section, key, func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		if int64(T(n)) != n || (n < 0) != (T(n) < 0) {
			return 0, strconv.ErrRange
		}
		return T(n), nil
	})
}

var errNotBool = errors.New("want true or false")

// Bool decodes the words true and false in any letter case.
func Bool(section *document.Node, key string) mo.Result[bool] {
	return raw(section, key, func(s string) (bool, error) {
		switch {
		case strings.EqualFold(s, "true"):
			return true, nil
		case strings.EqualFold(s, "false"):
			return false, nil
		}
		return false, errNotBool
	})
}

// String decodes any present value, including the empty string.
func String(section *document.Node, key string) mo.Result[string] {
	return raw(section, key, func(s string) (string, error) { return s, nil })
}

var (
	errComponents = errors.New("want exactly three comma separated numbers")
	errNaN        = errors.New("not a number")
)

// Color decodes an "r, g, b" triple. The components are not range checked.
func Color(section *document.Node, key string) mo.Result[[3]float64] {
	return raw(section, key, func(s string) ([3]float64, error) {
		var rgb [3]float64

		parts := strings.Split(s, ",")
		if len(parts) != len(rgb) {
			return rgb, errComponents
		}

		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return rgb, err
			}
			if math.IsNaN(f) {
				return rgb, errNaN
			}
			rgb[i] = f
		}

		return rgb, nil
	})
}

// SetInt stores an integer under key.
func SetInt(section *document.Node, key string, value int) {
	section.SetValue(key, strconv.Itoa(value))
}

// SetEnum stores an integer-backed enumeration under key.
func SetEnum[T constraints.Integer](section *document.Node, key string, value T) {
	section.SetValue(key, strconv.FormatInt(int64(value), 10))
}

// SetBool stores true or false under key.
func SetBool(section *document.Node, key string, value bool) {
	section.SetValue(key, strconv.FormatBool(value))
}

// SetString stores a string under key.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func SetString(section *document.Node, key, value string) {
	section.SetValue(key, strings.ToValidUTF8(value, "\uFFFD"))
}

// SetColor stores an "r, g, b" triple using the shortest exact float form.
func SetColor(section *document.Node, key string, rgb [3]float64) {
	parts := make([]string, len(rgb))
	for i, c := range rgb {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	section.SetValue(key, strings.Join(parts, ", "))
}
