package linkedroles

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Reserved attribute names. They address the platform fields of a Metadata
// instance and cannot be used as custom field names.
const (
	AttrPlatformName     = "platform_name"
	AttrPlatformUsername = "platform_username"
)

// Schema is the immutable, validated set of custom fields for one platform.
// It is declared once per integration and shared by every Metadata instance.
type Schema struct {
	platformName string
	names        []string // declaration order
	fields       map[string]Field
}

type fieldDecl struct {
	name  string
	field Field
	opts  []FieldOption
}

type schemaBuilder struct {
	platformName string
	decls        []fieldDecl
}

type fieldStep struct {
	b *schemaBuilder
	i int
}

// NewSchema starts a schema declaration for the given platform name.
func NewSchema(platformName string) *schemaBuilder {
	return &schemaBuilder{platformName: platformName}
}

// Field declares a custom field. name is the attribute name used with
// Metadata.Set/Get and the default key.
func (b *schemaBuilder) Field(name string, t MetadataType, displayName, description string, opts ...FieldOption) *fieldStep {
	b.decls = append(b.decls, fieldDecl{
		name:  name,
		field: Field{typ: t, name: displayName, description: description},
		opts:  opts,
	})
	return &fieldStep{b: b, i: len(b.decls) - 1}
}

// Add declares a custom field from a prebuilt Field template. An explicit
// key on the template is kept; otherwise name becomes the key.
func (b *schemaBuilder) Add(name string, f Field) *schemaBuilder {
	b.decls = append(b.decls, fieldDecl{name: name, field: f.clone()})
	return b
}

// Key sets an explicit key for the current field.
func (f *fieldStep) Key(key string) *fieldStep {
	f.b.decls[f.i].opts = append(f.b.decls[f.i].opts, WithKey(key))
	return f
}

// NameLocalizations sets localized display names for the current field.
func (f *fieldStep) NameLocalizations(m map[string]string) *fieldStep {
	f.b.decls[f.i].opts = append(f.b.decls[f.i].opts, WithNameLocalizations(m))
	return f
}

// DescriptionLocalizations sets localized descriptions for the current field.
func (f *fieldStep) DescriptionLocalizations(m map[string]string) *fieldStep {
	f.b.decls[f.i].opts = append(f.b.decls[f.i].opts, WithDescriptionLocalizations(m))
	return f
}

// Forward helpers to keep chaining ergonomics.
func (f *fieldStep) Field(name string, t MetadataType, displayName, description string, opts ...FieldOption) *fieldStep {
	return f.b.Field(name, t, displayName, description, opts...)
}
func (f *fieldStep) Add(name string, fd Field) *schemaBuilder { return f.b.Add(name, fd) }
func (f *fieldStep) Build() (*Schema, error)                  { return f.b.Build() }
func (f *fieldStep) MustBuild() *Schema                       { return f.b.MustBuild() }

// Build validates every declaration and returns the Schema. All problems are
// reported at once as Issues.
func (b *schemaBuilder) Build() (*Schema, error) {
	var structural, fieldIss Issues
	root := Root()

	if b.platformName == "" {
		structural = append(structural, root.Field(AttrPlatformName).Issue(CodeRequired))
	} else {
		structural = append(structural, checkLength(root.Field(AttrPlatformName), b.platformName, 1, MaxPlatformNameLength)...)
	}

	n := len(b.decls)
	if n < MinFields {
		structural = append(structural, root.Field("fields").Issue(CodeTooSmall, "min", MinFields, "got", n))
	}
	if n > MaxFields {
		structural = append(structural, root.Field("fields").Issue(CodeTooBig, "max", MaxFields, "got", n))
	}

	s := &Schema{platformName: b.platformName, names: make([]string, 0, n), fields: make(map[string]Field, n)}
	keys := make(map[string]string, n)
	for i, d := range b.decls {
		p := root.Field("fields").Index(i)
		switch {
		case d.name == "":
			structural = append(structural, p.Issue(CodeRequired, "hint", "field name"))
			continue
		case d.name == AttrPlatformName || d.name == AttrPlatformUsername:
			structural = append(structural, p.Issue(CodeReservedName, "name", d.name))
			continue
		}
		if _, dup := s.fields[d.name]; dup {
			structural = append(structural, p.Issue(CodeDuplicate, "name", d.name))
			continue
		}

		f := d.field.clone()
		for _, o := range d.opts {
			if o != nil {
				o(&f)
			}
		}
		if f.key == "" {
			f.key = d.name
		}
		fieldIss = append(fieldIss, f.validate(p, true)...)
		if other, dup := keys[f.key]; dup {
			structural = append(structural, p.Field("key").Issue(CodeDuplicate, "key", f.key, "name", other))
		}
		keys[f.key] = d.name
		s.names = append(s.names, d.name)
		s.fields[d.name] = f
	}

	if len(structural)+len(fieldIss) > 0 {
		iss := AppendIssues(withKind(structural, ErrSchemaDefinition), withKind(fieldIss, ErrValidation)...)
		sort.SliceStable(iss, func(i, j int) bool { return pointerLess(iss[i].Path, iss[j].Path) })
		return nil, iss
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *schemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// PlatformName returns the platform name the schema was declared with.
func (s *Schema) PlatformName() string { return s.platformName }

// Len returns the number of custom fields.
func (s *Schema) Len() int { return len(s.names) }

// FieldNames returns the declared field names in declaration order.
func (s *Schema) FieldNames() []string { return append([]string(nil), s.names...) }

// Lookup returns the field declared under name.
func (s *Schema) Lookup(name string) (Field, bool) {
	f, ok := s.fields[name]
	if !ok {
		return Field{}, false
	}
	return f.clone(), true
}

// Fields returns the field descriptors in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.fields[n].clone())
	}
	return out
}

// ToSchema returns the schema-registration payload: one descriptor per
// custom field, in declaration order.
func (s *Schema) ToSchema() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.fields[n].Descriptor())
	}
	return out
}

// MarshalSchema encodes ToSchema as a JSON array.
func (s *Schema) MarshalSchema() ([]byte, error) {
	return json.Marshal(s.ToSchema())
}

// byKey finds the declared name for a wire key.
func (s *Schema) byKey(key string) (string, bool) {
	for _, n := range s.names {
		if s.fields[n].key == key {
			return n, true
		}
	}
	return "", false
}

func copyStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
