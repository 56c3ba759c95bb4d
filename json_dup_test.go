package linkedroles

import (
	"errors"
	"testing"
)

func TestDetectDuplicateKeys_NoDup(t *testing.T) {
	js := []byte(`{"a":1,"b":{"a":2},"c":[{"a":1},{"a":2}]}`)
	iss, err := detectDuplicateKeys(js)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDetectDuplicateKeys_Paths(t *testing.T) {
	js := []byte(`{"metadata":{"anime_watched":"1","anime_watched":"2"},"list":[{},{"x":1,"x":2}],"metadata":{}}`)
	iss, err := detectDuplicateKeys(js)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"/metadata/anime_watched", "/list/1/x", "/metadata"}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), iss)
	}
	for i, p := range want {
		if iss[i].Path != p || iss[i].Code != CodeDuplicate {
			t.Fatalf("issue %d: got %s at %s, want duplicate at %s", i, iss[i].Code, iss[i].Path, p)
		}
	}
}

func TestDetectDuplicateKeys_Malformed(t *testing.T) {
	if _, err := detectDuplicateKeys([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for truncated input")
	}
}

func TestRoleConnection_UnmarshalJSON(t *testing.T) {
	var rc RoleConnection
	err := rc.UnmarshalJSON([]byte(`{"platform_name":"p","platform_username":null,"metadata":{"k":"1"}}`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rc.PlatformName != "p" || rc.PlatformUsername != "" || rc.Metadata["k"] != "1" {
		t.Fatalf("unexpected %+v", rc)
	}

	err = rc.UnmarshalJSON([]byte(`{"metadata":{"k":"1","k":"0"}}`))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	iss, _ := AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/metadata/k" {
		t.Fatalf("unexpected issues %v", iss)
	}
}
