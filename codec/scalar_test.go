package codec

import (
	"math"
	"strconv"
	"testing"
)

func TestInt64_Roundtrip(t *testing.T) {
	c := Int64()
	for _, n := range []int64{0, 1, -7, 9999, math.MaxInt64, math.MinInt64} {
		s, err := c.Encode(n)
		if err != nil {
			t.Fatalf("encode %d: %v", n, err)
		}
		got, err := c.Decode(s)
		if err != nil {
			t.Fatalf("decode %q: %v", s, err)
		}
		if got != n {
			t.Fatalf("roundtrip mismatch: %d != %d", got, n)
		}
	}
}

func TestInt64_Decode_Invalid(t *testing.T) {
	for _, in := range []string{"", "1.5", "abc", "99999999999999999999"} {
		if _, err := Int64().Decode(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
	if _, err := Int64().Decode(" 42 "); err != nil {
		t.Fatalf("surrounding spaces should be trimmed: %v", err)
	}
}

func TestBool_Decode(t *testing.T) {
	cases := map[string]bool{"1": true, "0": false, "true": true, "FALSE": false, " True ": true}
	for in, want := range cases {
		got, err := Bool().Decode(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("decode %q: got %v want %v", in, got, want)
		}
	}
	if _, err := Bool().Decode("yes"); err == nil {
		t.Fatalf("expected error for yes")
	}
}

func TestBool_Encode(t *testing.T) {
	for _, b := range []bool{true, false} {
		s, _ := Bool().Encode(b)
		if s != strconv.Itoa(map[bool]int{true: 1, false: 0}[b]) {
			t.Fatalf("unexpected encoding for %v: %s", b, s)
		}
	}
}
