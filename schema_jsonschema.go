package linkedroles

import (
	js "github.com/reoring/linkedroles/jsonschema"
)

// JSONSchema projects the value payload accepted for this schema into a JSON
// Schema document. Unknown metadata keys are disallowed.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	meta := &js.Schema{
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(s.names)),
		AdditionalProperties: false,
	}
	for _, n := range s.names {
		f := s.fields[n]
		p := &js.Schema{Title: f.name, Description: f.description}
		switch f.typ.Domain() {
		case DomainInteger:
			p.Type = "integer"
		case DomainBoolean:
			p.Type = "boolean"
		case DomainDatetime:
			p.Type = "string"
			p.Format = "date-time"
		default:
			return nil, issueOf(ErrSchemaDefinition, Root().Field(n).Issue(CodeInvalidEnum, "got", int(f.typ)))
		}
		meta.Properties[f.key] = p
	}
	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			AttrPlatformName:     {Type: "string", MaxLength: js.Int(MaxPlatformNameLength)},
			AttrPlatformUsername: {Type: "string", MaxLength: js.Int(MaxPlatformUsernameLength)},
			"metadata":           meta,
		},
		AdditionalProperties: false,
	}, nil
}
