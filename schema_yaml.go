package linkedroles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk declaration of a Schema.
type schemaFile struct {
	PlatformName string           `yaml:"platform_name"`
	Fields       []schemaFileDecl `yaml:"fields"`
}

type schemaFileDecl struct {
	Name                     string            `yaml:"name"`
	Type                     MetadataType      `yaml:"type"`
	DisplayName              string            `yaml:"display_name"`
	Description              string            `yaml:"description"`
	Key                      string            `yaml:"key"`
	NameLocalizations        map[string]string `yaml:"name_localizations"`
	DescriptionLocalizations map[string]string `yaml:"description_localizations"`
}

// LoadSchemaYAML builds a Schema from a YAML declaration:
//
//	platform_name: shikimori.me
//	fields:
//	  - name: anime_watched
//	    type: INT_GTE
//	    display_name: Titles Watched
//	    description: total titles watched
//
// Unknown keys are rejected. Only the first document is read.
func LoadSchemaYAML(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var sf schemaFile
	if err := dec.Decode(&sf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("linkedroles: empty schema document")
		}
		return nil, fmt.Errorf("linkedroles: decode schema: %w", err)
	}

	b := NewSchema(sf.PlatformName)
	for _, d := range sf.Fields {
		var opts []FieldOption
		if d.Key != "" {
			opts = append(opts, WithKey(d.Key))
		}
		if d.NameLocalizations != nil {
			opts = append(opts, WithNameLocalizations(d.NameLocalizations))
		}
		if d.DescriptionLocalizations != nil {
			opts = append(opts, WithDescriptionLocalizations(d.DescriptionLocalizations))
		}
		b.Field(d.Name, d.Type, d.DisplayName, d.Description, opts...)
	}
	return b.Build()
}

// LoadSchemaFile reads and parses a YAML schema declaration from path.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSchemaYAML(data)
}
