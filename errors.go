package linkedroles

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType      = "invalid_type"
	CodeInvalidEnum      = "invalid_enum"
	CodeInvalidFormat    = "invalid_format"
	CodeRequired         = "required"
	CodeTooShort         = "too_short"
	CodeTooLong          = "too_long"
	CodeTooSmall         = "too_small"
	CodeTooBig           = "too_big"
	CodePattern          = "pattern"
	CodeOverflow         = "overflow"
	CodeDuplicate        = "duplicate"
	CodeReservedName     = "reserved_name"
	CodeUnknownField     = "unknown_field"
	CodeArgumentConflict = "argument_conflict"
)

// Error categories. Issues match them through errors.Is.
var (
	// ErrSchemaDefinition is reported by Build when the declared
	// fields or the platform name break Discord's structural limits.
	ErrSchemaDefinition = errors.New("linkedroles: invalid schema definition")
	// ErrValidation covers field construction limits and value/domain mismatches.
	ErrValidation = errors.New("linkedroles: validation failed")
	// ErrArgumentConflict is returned when a mapping and keyword args are both given.
	ErrArgumentConflict = errors.New("linkedroles: mapping and keyword arguments are mutually exclusive")
	// ErrFieldNotFound is returned for names that are neither a declared field nor a platform attribute.
	ErrFieldNotFound = errors.New("linkedroles: no such field")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /fields/1/key).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	// Params carries structured parameters (e.g., {"min":1, "max":50, "got":64})
	// for i18n and observability.
	Params map[string]any
	// Kind is the error category the issue belongs to.
	Kind error
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_long at /fields/0/name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue belongs to the target category.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if it.Kind != nil && it.Kind == target {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// withKind stamps every issue with the category unless one is already set.
func withKind(iss Issues, kind error) Issues {
	for i := range iss {
		if iss[i].Kind == nil {
			iss[i].Kind = kind
		}
	}
	return iss
}
