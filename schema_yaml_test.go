package linkedroles_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	lr "github.com/reoring/linkedroles"
)

const shikimoriYAML = `
platform_name: shikimori.me
fields:
  - name: total_titles
    type: INT_GTE
    display_name: Titles Watched
    description: total titles watched
    name_localizations:
      ru: Просмотрено тайтлов
  - name: total_hours
    type: INTEGER_GREATER_THAN_OR_EQUAL
    display_name: Total Hours
    description: hours spend watching anime
  - name: Verified
    key: verified
    type: 7
    display_name: Verified
    description: account verified
`

func TestLoadSchemaYAML_MatchesBuilder(t *testing.T) {
	fromYAML, err := lr.LoadSchemaYAML([]byte(shikimoriYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	built := lr.NewSchema("shikimori.me").
		Field("total_titles", lr.IntGTE, "Titles Watched", "total titles watched").
		NameLocalizations(map[string]string{"ru": "Просмотрено тайтлов"}).
		Field("total_hours", lr.IntGTE, "Total Hours", "hours spend watching anime").
		Field("Verified", lr.BoolEQ, "Verified", "account verified").Key("verified").
		MustBuild()
	if !reflect.DeepEqual(fromYAML.ToSchema(), built.ToSchema()) {
		t.Fatalf("descriptor mismatch:\n yaml    %+v\n builder %+v", fromYAML.ToSchema(), built.ToSchema())
	}
	if fromYAML.PlatformName() != "shikimori.me" {
		t.Fatalf("platform name: %q", fromYAML.PlatformName())
	}
}

func TestLoadSchemaYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"unknown key":   "platform_name: p\nfieldz: []\n",
		"bad type":      "platform_name: p\nfields:\n  - {name: a, type: INT_GT, display_name: n, description: d}\n",
		"no fields":     "platform_name: p\nfields: []\n",
		"type sequence": "platform_name: p\nfields:\n  - {name: a, type: [1], display_name: n, description: d}\n",
	}
	for name, doc := range cases {
		if _, err := lr.LoadSchemaYAML([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := lr.LoadSchemaYAML([]byte("platform_name: p\nfields: []\n"))
	if !errors.Is(err, lr.ErrSchemaDefinition) {
		t.Fatalf("expected schema definition error, got %v", err)
	}
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte(shikimoriYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := lr.LoadSchemaFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", s.Len())
	}
	if _, err := lr.LoadSchemaFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
