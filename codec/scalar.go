package codec

import (
	"strconv"
	"strings"
)

// Int64 returns a Codec between base-10 strings and int64.
func Int64() Codec[string, int64] { return int64Codec{} }

type int64Codec struct{}

func (int64Codec) Decode(a string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	if err != nil {
		return 0, &Error{Format: "int64", Input: a, Err: err}
	}
	return n, nil
}

func (int64Codec) Encode(b int64) (string, error) { return strconv.FormatInt(b, 10), nil }

// Bool returns a Codec between Discord's "1"/"0" strings and bool.
// Decode also accepts "true"/"false" in any case.
func Bool() Codec[string, bool] { return boolCodec{} }

type boolCodec struct{}

func (boolCodec) Decode(a string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, &Error{Format: "bool", Input: a}
}

func (boolCodec) Encode(b bool) (string, error) {
	if b {
		return "1", nil
	}
	return "0", nil
}
