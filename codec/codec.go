// Package codec converts metadata values between their wire string form and
// the typed values held by linkedroles fields.
//
// Discord stores every role connection value as a string. Integers travel as
// base-10 digits, booleans as "1"/"0" and datetimes as ISO8601 timestamps.
package codec

import "fmt"

// Codec performs bidirectional transformation between the wire
// representation A and the domain representation B.
type Codec[A, B any] interface {
	Decode(a A) (B, error) // wire -> domain
	Encode(b B) (A, error) // domain -> wire
}

// Error reports a wire value that does not match the expected format.
type Error struct {
	Format string // "rfc3339", "int64" or "bool"
	Input  string
	Err    error // Optional: underlying parse error.
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: invalid %s value %q: %v", e.Format, e.Input, e.Err)
	}
	return fmt.Sprintf("codec: invalid %s value %q", e.Format, e.Input)
}

func (e *Error) Unwrap() error { return e.Err }
