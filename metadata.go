package linkedroles

import (
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/linkedroles/codec"
)

// Arg is a keyword-style argument for Schema.New.
type Arg struct {
	Name  string
	Value any
}

// With builds a keyword-style argument: s.New(nil, With("anime_watched", 10)).
func With(name string, v any) Arg { return Arg{Name: name, Value: v} }

// Metadata holds the values of one user for a Schema. Each instance owns its
// FieldValues; instances never share mutable state. A single instance is not
// safe for concurrent mutation.
type Metadata struct {
	schema           *Schema
	platformName     string
	platformUsername string
	values           map[string]*FieldValue
}

// New creates an instance from either a mapping or keyword args, never both.
// Keys must be declared field names or platform_username. The platform name
// comes from the schema; use Set to change it afterwards.
func (s *Schema) New(values map[string]any, kw ...Arg) (*Metadata, error) {
	if len(values) > 0 && len(kw) > 0 {
		return nil, issueOf(ErrArgumentConflict, Root().Issue(CodeArgumentConflict, "mapping", len(values), "kwargs", len(kw)))
	}
	if len(values) > 0 {
		kw = make([]Arg, 0, len(values))
		for _, k := range sortedKeys(values) {
			kw = append(kw, Arg{Name: k, Value: values[k]})
		}
	}

	m := s.blank()
	var iss Issues
	for _, a := range kw {
		if a.Name == AttrPlatformName {
			iss = append(iss, withKind(Issues{Root().Field(a.Name).Issue(CodeUnknownField, "name", a.Name)}, ErrFieldNotFound)...)
			continue
		}
		if err := m.Set(a.Name, a.Value); err != nil {
			more, ok := AsIssues(err)
			if !ok {
				return nil, err
			}
			iss = append(iss, more...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

// MustNew is like New but panics on error.
func (s *Schema) MustNew(values map[string]any, kw ...Arg) *Metadata {
	m, err := s.New(values, kw...)
	if err != nil {
		panic(err)
	}
	return m
}

func (s *Schema) blank() *Metadata {
	m := &Metadata{
		schema:       s,
		platformName: s.platformName,
		values:       make(map[string]*FieldValue, len(s.names)),
	}
	for _, n := range s.names {
		// WithValue(nil) cannot fail.
		fv, _ := s.fields[n].WithValue(nil)
		m.values[n] = fv
	}
	return m
}

// Schema returns the schema the instance was created from.
func (m *Metadata) Schema() *Schema { return m.schema }

// Set assigns a value by attribute name. Custom fields go through the typed
// FieldValue setter; platform_name and platform_username take a string (nil
// clears them). Unknown names fail with ErrFieldNotFound and change nothing.
func (m *Metadata) Set(name string, v any) error {
	p := Root().Field(name)
	switch name {
	case AttrPlatformName:
		s, err := platformString(p, v, MaxPlatformNameLength)
		if err != nil {
			return err
		}
		m.platformName = s
		return nil
	case AttrPlatformUsername:
		s, err := platformString(p, v, MaxPlatformUsernameLength)
		if err != nil {
			return err
		}
		m.platformUsername = s
		return nil
	}
	fv, ok := m.values[name]
	if !ok {
		return issueOf(ErrFieldNotFound, p.Issue(CodeUnknownField, "name", name))
	}
	return fv.set(p, v)
}

func platformString(p PathRef, v any, max int) (string, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		s = t
	case *string:
		if t == nil {
			return "", nil
		}
		s = *t
	default:
		return "", issueOf(ErrValidation, p.Issue(CodeInvalidType, "expected", "string", "got", fmt.Sprintf("%T", v)))
	}
	if iss := checkLength(p, s, 0, max); len(iss) > 0 {
		return "", withKind(iss, ErrValidation)
	}
	return s, nil
}

// Get returns the current value by attribute name. Unset custom fields
// return nil.
func (m *Metadata) Get(name string) (any, error) {
	switch name {
	case AttrPlatformName:
		return m.platformName, nil
	case AttrPlatformUsername:
		return m.platformUsername, nil
	}
	fv, err := m.Field(name)
	if err != nil {
		return nil, err
	}
	return fv.Value(), nil
}

// Field returns the live slot for a custom field.
func (m *Metadata) Field(name string) (*FieldValue, error) {
	fv, ok := m.values[name]
	if !ok {
		return nil, issueOf(ErrFieldNotFound, Root().Field(name).Issue(CodeUnknownField, "name", name))
	}
	return fv, nil
}

func (m *Metadata) PlatformName() string     { return m.platformName }
func (m *Metadata) PlatformUsername() string { return m.platformUsername }

// SetPlatformName is Set(platform_name, name).
func (m *Metadata) SetPlatformName(name string) error { return m.Set(AttrPlatformName, name) }

// SetPlatformUsername is Set(platform_username, username).
func (m *Metadata) SetPlatformUsername(username string) error {
	return m.Set(AttrPlatformUsername, username)
}

// Clone returns an independent copy of m.
func (m *Metadata) Clone() *Metadata {
	c := &Metadata{
		schema:           m.schema,
		platformName:     m.platformName,
		platformUsername: m.platformUsername,
		values:           make(map[string]*FieldValue, len(m.values)),
	}
	for n, fv := range m.values {
		c.values[n] = &FieldValue{field: fv.field.clone(), value: fv.value}
	}
	return c
}

// Payload is the per-user value payload sent to Discord. Empty platform
// attributes and unset fields are omitted; Discord rejects nulls.
type Payload struct {
	PlatformName     string         `json:"platform_name,omitempty"`
	PlatformUsername string         `json:"platform_username,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// ToPayload builds the value payload. Metadata is keyed by field key and
// holds int64, bool, or an RFC3339 string for datetimes.
func (m *Metadata) ToPayload() (Payload, error) {
	p := Payload{PlatformName: m.platformName, PlatformUsername: m.platformUsername}
	for _, n := range m.schema.names {
		fv := m.values[n]
		if !fv.IsSet() {
			continue
		}
		v := fv.value
		if t, ok := v.(time.Time); ok {
			s, err := codec.TimeRFC3339().Encode(t)
			if err != nil {
				return Payload{}, issueOf(ErrValidation, Root().Field(n).Issue(CodeInvalidFormat, "hint", err.Error()))
			}
			v = s
		}
		if p.Metadata == nil {
			p.Metadata = make(map[string]any, len(m.values))
		}
		p.Metadata[fv.field.key] = v
	}
	return p, nil
}

// MarshalJSON encodes the value payload.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	p, err := m.ToPayload()
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// RoleConnection is the role connection object Discord stores for a user.
// Metadata values come back stringified.
type RoleConnection struct {
	PlatformName     string         `json:"platform_name,omitempty"`
	PlatformUsername string         `json:"platform_username,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes a role connection, rejecting repeated keys that a
// plain decode would silently collapse.
func (rc *RoleConnection) UnmarshalJSON(data []byte) error {
	iss, err := detectDuplicateKeys(data)
	if err != nil {
		return err
	}
	if len(iss) > 0 {
		return withKind(iss, ErrValidation)
	}
	type plain RoleConnection
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*rc = RoleConnection(p)
	return nil
}

// FromRoleConnection decodes a stored role connection back into typed values.
// Keys not declared in the schema fail with ErrFieldNotFound.
func (s *Schema) FromRoleConnection(rc RoleConnection) (*Metadata, error) {
	m := s.blank()
	if rc.PlatformName != "" {
		m.platformName = rc.PlatformName
	}
	m.platformUsername = rc.PlatformUsername

	var iss Issues
	for _, key := range sortedKeys(rc.Metadata) {
		p := Root().Field("metadata").Field(key)
		name, ok := s.byKey(key)
		if !ok {
			iss = append(iss, withKind(Issues{p.Issue(CodeUnknownField, "name", key)}, ErrFieldNotFound)...)
			continue
		}
		fv := m.values[name]
		v, err := decodeWire(fv.field.typ.Domain(), rc.Metadata[key])
		if err != nil {
			iss = append(iss, withKind(Issues{p.Issue(CodeInvalidFormat, "hint", err.Error())}, ErrValidation)...)
			continue
		}
		if err := fv.set(p, v); err != nil {
			more, _ := AsIssues(err)
			iss = append(iss, more...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return m, nil
}

// decodeWire converts a JSON-decoded wire value into the domain type.
func decodeWire(d Domain, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		switch d {
		case DomainInteger:
			return codec.Int64().Decode(v)
		case DomainBoolean:
			return codec.Bool().Decode(v)
		case DomainDatetime:
			return codec.TimeRFC3339().Decode(v)
		}
	case float64:
		if d == DomainInteger && v == math.Trunc(v) && math.Abs(v) <= 1<<53 {
			return int64(v), nil
		}
		if d == DomainBoolean && (v == 0 || v == 1) {
			return v == 1, nil
		}
	case json.Number:
		if d == DomainInteger {
			return v.Int64()
		}
	case bool:
		return v, nil
	}
	return nil, fmt.Errorf("unexpected %s value %v", d, raw)
}
