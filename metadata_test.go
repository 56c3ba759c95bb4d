package linkedroles_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	lr "github.com/reoring/linkedroles"
)

func shikimoriSchema(t *testing.T) *lr.Schema {
	t.Helper()
	s, err := lr.NewSchema("shikimori.me").
		Field("total_titles", lr.IntGTE, "Titles Watched", "total titles watched").
		Field("total_hours", lr.IntGTE, "Total Hours", "hours spend watching anime").
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return s
}

func TestMetadata_ScenarioValuePayload(t *testing.T) {
	s := lr.NewSchema("shikimori.me").
		Field("anime_watched", lr.IntGTE, "Titles Watched", "total titles watched").
		MustBuild()
	m, err := s.New(nil, lr.With("anime_watched", 9999), lr.With("platform_username", "imPDA"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_ = json.Unmarshal([]byte(`{"platform_name": "shikimori.me", "platform_username": "imPDA", "metadata": {"anime_watched": 9999}}`), &want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payload mismatch:\n got  %s\n want %v", raw, want)
	}
}

func TestMetadata_FromMappingAndKwargs(t *testing.T) {
	s := shikimoriSchema(t)

	a, err := s.New(map[string]any{"total_titles": 1, "total_hours": 11, "platform_username": "qwerty"})
	if err != nil {
		t.Fatalf("mapping: %v", err)
	}
	if v, _ := a.Get("total_titles"); v != int64(1) {
		t.Fatalf("total_titles: %v", v)
	}
	if a.PlatformUsername() != "qwerty" {
		t.Fatalf("platform_username: %q", a.PlatformUsername())
	}

	b, err := s.New(nil, lr.With("total_titles", 2))
	if err != nil {
		t.Fatalf("kwargs: %v", err)
	}
	if v, _ := b.Get("total_hours"); v != nil {
		t.Fatalf("total_hours should be unset, got %v", v)
	}
	if b.PlatformUsername() != "" || b.PlatformName() != "shikimori.me" {
		t.Fatalf("unexpected platform attrs: %q %q", b.PlatformName(), b.PlatformUsername())
	}

	c, err := s.New(nil)
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if err := c.Set("total_titles", 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	fv, err := c.Field("total_titles")
	if err != nil || fv.Value() != int64(3) {
		t.Fatalf("field: %v %v", fv, err)
	}
}

func TestMetadata_ArgumentConflict(t *testing.T) {
	s := shikimoriSchema(t)
	mappings := []map[string]any{{"total_titles": 4}, {"platform_username": "x"}, {"nope": 1}}
	kwargs := [][]lr.Arg{{lr.With("total_hours", 44)}, {lr.With("nope", "x"), lr.With("total_titles", 1)}}
	for _, m := range mappings {
		for _, kw := range kwargs {
			_, err := s.New(m, kw...)
			if !errors.Is(err, lr.ErrArgumentConflict) {
				t.Fatalf("expected ErrArgumentConflict for %v + %v, got %v", m, kw, err)
			}
		}
	}
}

func TestMetadata_UnknownFieldAtConstruction(t *testing.T) {
	s := shikimoriSchema(t)
	_, err := s.New(map[string]any{"total_titles": 1, "unknown_field": "x"})
	if !errors.Is(err, lr.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
	iss, _ := lr.AsIssues(err)
	if iss[0].Path != "/unknown_field" || !strings.Contains(iss[0].Message, "unknown_field") {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}

	// platform_name is settable later but is not a constructor key.
	if _, err := s.New(map[string]any{"platform_name": "other.example", "total_titles": 1}); !errors.Is(err, lr.ErrFieldNotFound) {
		t.Fatalf("mapping: expected ErrFieldNotFound, got %v", err)
	}
	_, err = s.New(nil, lr.With("platform_name", "other.example"))
	if !errors.Is(err, lr.ErrFieldNotFound) {
		t.Fatalf("kwargs: expected ErrFieldNotFound, got %v", err)
	}
	if iss, _ := lr.AsIssues(err); iss[0].Path != "/platform_name" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestMetadata_UnknownAssignmentLeavesStateUnchanged(t *testing.T) {
	s := shikimoriSchema(t)
	m := s.MustNew(nil, lr.With("total_titles", 5), lr.With("platform_username", "u"))
	before, _ := m.ToPayload()

	if err := m.Set("unknown_field", "x"); !errors.Is(err, lr.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
	if _, err := m.Get("unknown_field"); !errors.Is(err, lr.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound on get, got %v", err)
	}
	after, _ := m.ToPayload()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestMetadata_WrongDomainRejected(t *testing.T) {
	s := lr.NewSchema("p").
		Field("count", lr.IntGTE, "n", "d").
		Field("flag", lr.BoolEQ, "n", "d").
		MustBuild()
	m := s.MustNew(nil, lr.With("count", 1), lr.With("flag", true))
	if err := m.Set("count", true); !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("bool into integer field: %v", err)
	}
	if err := m.Set("flag", 1); !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("int into boolean field: %v", err)
	}
	if v, _ := m.Get("count"); v != int64(1) {
		t.Fatalf("count changed: %v", v)
	}
	if v, _ := m.Get("flag"); v != true {
		t.Fatalf("flag changed: %v", v)
	}
	if _, err := s.New(map[string]any{"count": "many"}); !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("construction should validate: %v", err)
	}
}

func TestMetadata_NullRemovesKey(t *testing.T) {
	s := shikimoriSchema(t)
	m := s.MustNew(nil)
	if err := m.Set("total_titles", 9999); err != nil {
		t.Fatalf("set: %v", err)
	}
	p, _ := m.ToPayload()
	if p.Metadata["total_titles"] != int64(9999) {
		t.Fatalf("expected 9999, got %v", p.Metadata)
	}

	if err := m.Set("total_titles", nil); err != nil {
		t.Fatalf("set nil: %v", err)
	}
	for i := 0; i < 2; i++ {
		p, _ = m.ToPayload()
		if _, ok := p.Metadata["total_titles"]; ok {
			t.Fatalf("pass %d: key should be omitted: %v", i, p.Metadata)
		}
		raw, _ := json.Marshal(m)
		if strings.Contains(string(raw), "null") || strings.Contains(string(raw), "metadata") {
			t.Fatalf("pass %d: unexpected JSON %s", i, raw)
		}
	}
}

func TestMetadata_InstancesAreIndependent(t *testing.T) {
	s := shikimoriSchema(t)
	a := s.MustNew(nil, lr.With("total_titles", 1))
	b := s.MustNew(nil, lr.With("total_titles", 1))

	if err := a.Set("total_titles", 100); err != nil {
		t.Fatalf("set: %v", err)
	}
	fa, _ := a.Field("total_titles")
	if err := fa.Set(200); err != nil {
		t.Fatalf("set via field: %v", err)
	}
	if v, _ := b.Get("total_titles"); v != int64(1) {
		t.Fatalf("b changed: %v", v)
	}
	c := a.Clone()
	_ = c.Set("total_titles", 300)
	if v, _ := a.Get("total_titles"); v != int64(200) {
		t.Fatalf("clone shares state: %v", v)
	}
}

func TestMetadata_PlatformAttributes(t *testing.T) {
	s := shikimoriSchema(t)
	m := s.MustNew(nil, lr.With("platform_username", "imPDA"))
	if err := m.SetPlatformName("shikimori.one"); err != nil {
		t.Fatalf("set platform name: %v", err)
	}
	if err := m.SetPlatformUsername("~imPDA~"); err != nil {
		t.Fatalf("set platform username: %v", err)
	}
	p, _ := m.ToPayload()
	if p.PlatformName != "shikimori.one" || p.PlatformUsername != "~imPDA~" {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if err := m.Set("platform_username", 42); !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("expected type error, got %v", err)
	}
	if err := m.Set("platform_username", strings.Repeat("u", 101)); !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("expected length error, got %v", err)
	}
	if err := m.Set("platform_username", nil); err != nil {
		t.Fatalf("nil username: %v", err)
	}
	if err := m.Set("platform_name", ""); err != nil {
		t.Fatalf("empty platform name: %v", err)
	}
	raw, _ := json.Marshal(m)
	if string(raw) != "{}" {
		t.Fatalf("expected empty payload, got %s", raw)
	}
}

func TestMetadata_DatetimeAndBooleanPayload(t *testing.T) {
	s := lr.NewSchema("p").
		Field("member_since", lr.DatetimeGTE, "Member Since", "d").
		Field("verified", lr.BoolEQ, "Verified", "d").Key("is_verified").
		MustBuild()
	since := time.Date(2023, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	m := s.MustNew(map[string]any{"member_since": since, "verified": false})
	p, err := m.ToPayload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Metadata["member_since"] != "2023-03-04T04:06:07Z" {
		t.Fatalf("unexpected datetime encoding: %v", p.Metadata["member_since"])
	}
	if p.Metadata["is_verified"] != false {
		t.Fatalf("false must be sent, not omitted: %v", p.Metadata)
	}
}

func TestSchema_FromRoleConnection(t *testing.T) {
	s := lr.NewSchema("p").
		Field("count", lr.IntGTE, "n", "d").
		Field("verified", lr.BoolEQ, "n", "d").
		Field("since", lr.DatetimeLTE, "n", "d").
		MustBuild()
	m, err := s.FromRoleConnection(lr.RoleConnection{
		PlatformName:     "remote",
		PlatformUsername: "user",
		Metadata:         map[string]any{"count": "42", "verified": "1", "since": "2020-01-02T03:04:05Z"},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := m.Get("count"); v != int64(42) {
		t.Fatalf("count: %v", v)
	}
	if v, _ := m.Get("verified"); v != true {
		t.Fatalf("verified: %v", v)
	}
	if v, _ := m.Get("since"); !v.(time.Time).Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("since: %v", v)
	}
	if m.PlatformName() != "remote" || m.PlatformUsername() != "user" {
		t.Fatalf("platform attrs: %q %q", m.PlatformName(), m.PlatformUsername())
	}

	// numbers decoded from JSON are accepted for integer fields
	m, err = s.FromRoleConnection(lr.RoleConnection{Metadata: map[string]any{"count": float64(7)}})
	if err != nil {
		t.Fatalf("decode float: %v", err)
	}
	if v, _ := m.Get("count"); v != int64(7) {
		t.Fatalf("count: %v", v)
	}
	if m.PlatformName() != "p" {
		t.Fatalf("expected schema platform name, got %q", m.PlatformName())
	}

	_, err = s.FromRoleConnection(lr.RoleConnection{Metadata: map[string]any{"count": "x", "other": "1"}})
	if !errors.Is(err, lr.ErrFieldNotFound) || !errors.Is(err, lr.ErrValidation) {
		t.Fatalf("expected both categories, got %v", err)
	}

	_, err = s.FromRoleConnection(lr.RoleConnection{Metadata: map[string]any{"count": "x"}})
	iss, _ := lr.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/metadata/count" || iss[0].Hint == "" {
		t.Fatalf("expected a hinted issue at /metadata/count, got %+v", iss)
	}
	if _, ok := iss[0].Params["hint"]; ok {
		t.Fatalf("hint leaked into params: %+v", iss[0].Params)
	}
	if !strings.Contains(err.Error(), "("+iss[0].Hint+")") {
		t.Fatalf("summary lacks hint: %q", err.Error())
	}
}
