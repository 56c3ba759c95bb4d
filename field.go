package linkedroles

import (
	"fmt"
	"math"
	"regexp"
	"time"
	"unicode/utf8"
)

// Discord limits for application role connection metadata.
const (
	MinFields                 = 1
	MaxFields                 = 5
	MaxKeyLength              = 50
	MaxNameLength             = 100
	MaxDescriptionLength      = 200
	MaxPlatformNameLength     = 50
	MaxPlatformUsernameLength = 100
)

var keyPattern = regexp.MustCompile(`^[a-z0-9_]*$`)

// Field is the immutable description of one metadata slot. It carries no
// value; per-instance values live in FieldValue.
type Field struct {
	typ         MetadataType
	key         string
	name        string
	description string
	nameLoc     map[string]string
	descLoc     map[string]string
}

// FieldOption customizes a Field at construction.
type FieldOption func(*Field)

// WithKey sets an explicit key instead of the declared field name.
func WithKey(key string) FieldOption {
	return func(f *Field) { f.key = key }
}

// WithNameLocalizations sets localized display names keyed by locale tag.
func WithNameLocalizations(m map[string]string) FieldOption {
	return func(f *Field) { f.nameLoc = copyStrings(m) }
}

// WithDescriptionLocalizations sets localized descriptions keyed by locale tag.
func WithDescriptionLocalizations(m map[string]string) FieldOption {
	return func(f *Field) { f.descLoc = copyStrings(m) }
}

// NewField validates and returns a field descriptor. The key may be left
// empty; a Schema assigns the declared field name in that case.
func NewField(t MetadataType, name, description string, opts ...FieldOption) (Field, error) {
	f := Field{typ: t, name: name, description: description}
	for _, o := range opts {
		if o != nil {
			o(&f)
		}
	}
	if iss := f.validate(Root(), false); len(iss) > 0 {
		return Field{}, withKind(iss, ErrValidation)
	}
	return f, nil
}

// validate checks Discord's structural limits. With requireKey the key must
// be present; otherwise an empty key is accepted as "not yet assigned".
func (f Field) validate(p PathRef, requireKey bool) Issues {
	var iss Issues
	if !f.typ.Valid() {
		iss = append(iss, p.Field("type").Issue(CodeInvalidEnum, "got", int(f.typ)))
	}
	if f.key != "" || requireKey {
		iss = append(iss, checkKey(p.Field("key"), f.key)...)
	}
	iss = append(iss, checkLength(p.Field("name"), f.name, 1, MaxNameLength)...)
	iss = append(iss, checkLength(p.Field("description"), f.description, 1, MaxDescriptionLength)...)
	iss = append(iss, checkLocalizations(p.Field("name_localizations"), f.nameLoc, MaxNameLength)...)
	iss = append(iss, checkLocalizations(p.Field("description_localizations"), f.descLoc, MaxDescriptionLength)...)
	return iss
}

func checkKey(p PathRef, key string) Issues {
	iss := checkLength(p, key, 1, MaxKeyLength)
	if !keyPattern.MatchString(key) {
		iss = append(iss, p.Issue(CodePattern, "pattern", keyPattern.String()))
	}
	return iss
}

func checkLength(p PathRef, s string, lo, hi int) Issues {
	n := utf8.RuneCountInString(s)
	switch {
	case n < lo:
		return Issues{p.Issue(CodeTooShort, "min", lo, "got", n)}
	case n > hi:
		return Issues{p.Issue(CodeTooLong, "max", hi, "got", n)}
	}
	return nil
}

func checkLocalizations(p PathRef, m map[string]string, hi int) Issues {
	var iss Issues
	for _, locale := range sortedKeys(m) {
		if locale == "" {
			iss = append(iss, p.Issue(CodeRequired, "hint", "locale"))
			continue
		}
		iss = append(iss, checkLength(p.Field(locale), m[locale], 1, hi)...)
	}
	return iss
}

func (f Field) Type() MetadataType  { return f.typ }
func (f Field) Key() string         { return f.key }
func (f Field) Name() string        { return f.name }
func (f Field) Description() string { return f.description }

// NameLocalizations returns a copy of the localized names (nil when unset).
func (f Field) NameLocalizations() map[string]string { return copyStrings(f.nameLoc) }

// DescriptionLocalizations returns a copy of the localized descriptions (nil when unset).
func (f Field) DescriptionLocalizations() map[string]string { return copyStrings(f.descLoc) }

func (f Field) String() string {
	return fmt.Sprintf("Field<%s %s: %s>", f.typ, f.key, f.name)
}

// clone returns a copy that shares no maps with f.
func (f Field) clone() Field {
	f.nameLoc = copyStrings(f.nameLoc)
	f.descLoc = copyStrings(f.descLoc)
	return f
}

// FieldDescriptor is the schema-registration shape of a field.
type FieldDescriptor struct {
	Type                     MetadataType      `json:"type"`
	Key                      string            `json:"key"`
	Name                     string            `json:"name"`
	Description              string            `json:"description"`
	NameLocalizations        map[string]string `json:"name_localizations"`
	DescriptionLocalizations map[string]string `json:"description_localizations"`
}

// Descriptor returns the schema-registration shape of f, independent of any value.
func (f Field) Descriptor() FieldDescriptor {
	return FieldDescriptor{
		Type:                     f.typ,
		Key:                      f.key,
		Name:                     f.name,
		Description:              f.description,
		NameLocalizations:        copyStrings(f.nameLoc),
		DescriptionLocalizations: copyStrings(f.descLoc),
	}
}

// WithValue returns a fresh FieldValue carrying a copy of f and v. Two calls
// never share state.
func (f Field) WithValue(v any) (*FieldValue, error) {
	fv := &FieldValue{field: f.clone()}
	if err := fv.Set(v); err != nil {
		return nil, err
	}
	return fv, nil
}

// FieldValue is a per-instance field slot. The value is nil (unset) or a
// value of the field's domain: int64, bool or time.Time.
type FieldValue struct {
	field Field
	value any
}

// Field returns the static descriptor of the slot.
func (fv *FieldValue) Field() Field { return fv.field }

// Value returns the current value or nil.
func (fv *FieldValue) Value() any { return fv.value }

// IsSet reports whether a value is present.
func (fv *FieldValue) IsSet() bool { return fv.value != nil }

// Set validates v against the field domain and stores it. nil clears the
// value. On error the previous value is kept.
func (fv *FieldValue) Set(v any) error {
	return fv.set(Root().Field(fv.field.key), v)
}

func (fv *FieldValue) set(p PathRef, v any) error {
	nv, iss := coerce(p, fv.field.typ.Domain(), v)
	if iss != nil {
		return issueOf(ErrValidation, *iss)
	}
	fv.value = nv
	return nil
}

func (fv *FieldValue) String() string {
	return fmt.Sprintf("FieldValue<%s: %v %s>", fv.field.name, fv.value, fv.field.description)
}

// coerce maps an input value onto the canonical Go type of the domain.
func coerce(p PathRef, d Domain, v any) (any, *Issue) {
	if v == nil {
		return nil, nil
	}
	mismatch := func() (any, *Issue) {
		it := p.Issue(CodeInvalidType, "expected", d.String(), "got", fmt.Sprintf("%T", v))
		return nil, &it
	}
	switch d {
	case DomainInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			return fromUnsigned(p, uint64(n))
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case uint64:
			return fromUnsigned(p, n)
		}
		return mismatch()
	case DomainBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return mismatch()
	case DomainDatetime:
		switch t := v.(type) {
		case time.Time:
			return checkTime(p, t)
		case *time.Time:
			if t == nil {
				return nil, nil
			}
			return checkTime(p, *t)
		}
		return mismatch()
	}
	return mismatch()
}

func fromUnsigned(p PathRef, n uint64) (any, *Issue) {
	if n > math.MaxInt64 {
		it := p.Issue(CodeOverflow, "max", int64(math.MaxInt64))
		return nil, &it
	}
	return int64(n), nil
}

func checkTime(p PathRef, t time.Time) (any, *Issue) {
	if t.IsZero() {
		it := p.Issue(CodeInvalidFormat, "hint", "zero time")
		return nil, &it
	}
	return t, nil
}
