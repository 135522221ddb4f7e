// The errors package provides additional error primitives.
package errors

import (
	"errors"
	"strconv"
	"strings"
)

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Errors is a list of errors.
type Errors []error

// Errors formats the list by separating each message with a newline. Each
// produced line, including lines within messages, is prefixed with a tab.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	default:
		var buf strings.Builder
		buf.WriteString("multiple errors:")
		for _, err := range errs {
			buf.WriteString("\n\t")
			msg := err.Error()
			msg = strings.ReplaceAll(msg, "\n", "\n\t")
			buf.WriteString(msg)
		}
		return buf.String()
	}
}

// Append returns errs with each err appended to it. Arguments that are nil are
// skipped.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Return prepares errs to be returned by a function by returning nil if errs is
// empty.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union receives a number of errors and combines them into one Errors. Any errs
// that are Errors are concatenated directly. Returns nil if all errs are nil or
// empty.
func Union(errs ...error) error {
	var e Errors
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
			continue
		case Errors:
			for _, err := range err {
				if err != nil {
					e = append(e, err)
				}
			}
		default:
			e = append(e, err)
		}
	}
	return e.Return()
}

// IOError wraps an error from the underlying reader or writer (a closed
// file, a truncated stream, a network read failure on a remote source).
type IOError struct {
	Offset int64
	Cause  error
}

func (err IOError) Error() string {
	if err.Offset < 0 {
		return "io: " + err.Cause.Error()
	}
	return New("io at offset").Error() + " " + itoa64(err.Offset) + ": " + err.Cause.Error()
}
func (err IOError) Unwrap() error { return err.Cause }

// FormatError indicates the byte stream does not match the expected
// container grammar: a bad magic, an unknown chunk signature, a truncated
// header.
type FormatError struct {
	Context string
	Cause   error
}

func (err FormatError) Error() string {
	if err.Context == "" {
		return "format: " + err.Cause.Error()
	}
	return "format (" + err.Context + "): " + err.Cause.Error()
}
func (err FormatError) Unwrap() error { return err.Cause }

// SchemaError indicates a reflection-database lookup failed: an unknown
// class, an unresolvable property alias chain.
type SchemaError struct {
	Class    string
	Property string
	Cause    error
}

func (err SchemaError) Error() string {
	switch {
	case err.Property != "":
		return "schema: " + err.Class + "." + err.Property + ": " + err.Cause.Error()
	case err.Class != "":
		return "schema: " + err.Class + ": " + err.Cause.Error()
	default:
		return "schema: " + err.Cause.Error()
	}
}
func (err SchemaError) Unwrap() error { return err.Cause }

// TypeMismatchError indicates an on-disk value's type tag disagrees with
// the database's expected type and no conversion was possible (spec.md
// §4.D.1's type-tag-mismatch handling).
type TypeMismatchError struct {
	Class, Property    string
	Declared, Expected string
}

func (err TypeMismatchError) Error() string {
	return "type mismatch: " + err.Class + "." + err.Property + ": declared " + err.Declared + ", expected " + err.Expected
}

// ValueError is produced while encoding or decoding the payload of a single
// value of a given VariantType (malformed sequence, bad rotation id, ...).
type ValueError struct {
	Type  string
	Cause error
}

func (err ValueError) Error() string { return "value (" + err.Type + "): " + err.Cause.Error() }
func (err ValueError) Unwrap() error { return err.Cause }

// IdentityError indicates a Ref or referent could not be resolved: a
// dangling forward reference left unresolved after the rewrite phase, a
// referent id reused within one file.
type IdentityError struct {
	Referent int32
	Cause    error
}

func (err IdentityError) Error() string {
	return "identity (referent " + itoa64(int64(err.Referent)) + "): " + err.Cause.Error()
}
func (err IdentityError) Unwrap() error { return err.Cause }

func itoa64(i int64) string { return strconv.FormatInt(i, 10) }
