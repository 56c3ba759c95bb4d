package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/linkedroles"
)

func newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Validate and render metadata schema files",
	}
	cmd.AddCommand(newSchemaValidateCommand())
	cmd.AddCommand(newSchemaPrintCommand())
	return cmd
}

func newSchemaValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate SCHEMA_FILE",
		Short: "Check a schema file against Discord's metadata limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			s, err := loadSchema(w, args[0])
			if err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %s: %d field(s) for %s\n", args[0], s.Len(), s.PlatformName())
			for _, name := range s.FieldNames() {
				f, _ := s.Lookup(name)
				fmt.Fprintf(w, "  %-24s %-14s key=%s\n", name, f.Type(), f.Key())
			}
			return nil
		},
	}
}

func newSchemaPrintCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "print SCHEMA_FILE",
		Short: "Print the registration payload or the JSON Schema of the value payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			s, err := loadSchema(w, args[0])
			if err != nil {
				return err
			}
			var v any
			switch format {
			case "registration":
				v = s.ToSchema()
			case "jsonschema":
				js, err := s.JSONSchema()
				if err != nil {
					return err
				}
				v = js
			default:
				return fmt.Errorf("unknown format %q (want registration or jsonschema)", format)
			}
			return writeJSON(w, v)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "registration", "output format: registration, jsonschema")
	return cmd
}

// loadSchema reads a schema file and lists its issues on w when invalid.
func loadSchema(w io.Writer, path string) (*linkedroles.Schema, error) {
	s, err := linkedroles.LoadSchemaFile(path)
	if err == nil {
		return s, nil
	}
	iss, ok := linkedroles.AsIssues(err)
	if !ok {
		return nil, err
	}
	red := color.New(color.FgRed)
	for _, it := range iss {
		red.Fprint(w, "✗ ")
		fmt.Fprintf(w, "%s %s: %s\n", it.Path, it.Code, it.Message)
	}
	return nil, fmt.Errorf("%s: %d issue(s)", path, len(iss))
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
