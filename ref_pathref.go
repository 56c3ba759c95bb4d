package linkedroles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/linkedroles/i18n"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code string, kv ...any) Issue
}

// Root returns the document root path ("/").
func Root() PathRef { return &pathRef{parts: nil} }

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// pointerLess orders JSON Pointers segment by segment. Array indices compare
// numerically so /fields/2 sorts before /fields/10.
func pointerLess(a, b string) bool {
	as := strings.Split(strings.TrimPrefix(a, "/"), "/")
	bs := strings.Split(strings.TrimPrefix(b, "/"), "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return ai < bi
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an issue at this path. kv is a flat list of param pairs; the
// message is looked up through i18n with the stringified params. A "hint"
// pair becomes Issue.Hint instead of a param.
func (p *pathRef) Issue(code string, kv ...any) Issue {
	var m map[string]any
	var data map[string]string
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		data = make(map[string]string, len(kv)/2)
	}
	var hint string
	for i := 0; i+1 < len(kv); i += 2 {
		k := fmt.Sprint(kv[i])
		if k == "hint" {
			hint = fmt.Sprint(kv[i+1])
			continue
		}
		m[k] = kv[i+1]
		data[k] = fmt.Sprint(kv[i+1])
	}
	if len(m) == 0 {
		m, data = nil, nil
	}
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, data), Hint: hint, Params: m}
}
