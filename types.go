package linkedroles

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataType is the comparison Discord applies to a metadata value when
// evaluating a linked role requirement. The numeric codes are part of the
// wire contract.
type MetadataType int

const (
	IntLTE      MetadataType = iota + 1 // Integer less than or equal.
	IntGTE                              // Integer greater than or equal.
	IntEQ                               // Integer equal.
	IntNE                               // Integer not equal.
	DatetimeLTE                         // Days since datetime less than or equal.
	DatetimeGTE                         // Days since datetime greater than or equal.
	BoolEQ                              // Boolean equal.
	BoolNE                              // Boolean not equal.
)

// Domain is the value type a MetadataType compares against.
type Domain int

const (
	DomainInvalid Domain = iota
	DomainInteger
	DomainDatetime
	DomainBoolean
)

func (d Domain) String() string {
	switch d {
	case DomainInteger:
		return "integer"
	case DomainDatetime:
		return "datetime"
	case DomainBoolean:
		return "boolean"
	}
	return "invalid"
}

var typeNames = [...]struct{ short, long string }{
	IntLTE:      {"INT_LTE", "INTEGER_LESS_THAN_OR_EQUAL"},
	IntGTE:      {"INT_GTE", "INTEGER_GREATER_THAN_OR_EQUAL"},
	IntEQ:       {"INT_EQ", "INTEGER_EQUAL"},
	IntNE:       {"INT_NE", "INTEGER_NOT_EQUAL"},
	DatetimeLTE: {"DT_LTE", "DATETIME_LESS_THAN_OR_EQUAL"},
	DatetimeGTE: {"DT_GTE", "DATETIME_GREATER_THAN_OR_EQUAL"},
	BoolEQ:      {"BOOL_EQ", "BOOLEAN_EQUAL"},
	BoolNE:      {"BOOL_NE", "BOOLEAN_NOT_EQUAL"},
}

// Valid reports whether t is one of the eight known types.
func (t MetadataType) Valid() bool { return t >= IntLTE && t <= BoolNE }

// Domain returns the value domain of t.
func (t MetadataType) Domain() Domain {
	switch t {
	case IntLTE, IntGTE, IntEQ, IntNE:
		return DomainInteger
	case DatetimeLTE, DatetimeGTE:
		return DomainDatetime
	case BoolEQ, BoolNE:
		return DomainBoolean
	}
	return DomainInvalid
}

func (t MetadataType) String() string {
	if !t.Valid() {
		return "MetadataType(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t].short
}

// ParseMetadataType resolves a type from its short name (INT_GTE), its long
// name (INTEGER_GREATER_THAN_OR_EQUAL) or its wire code ("2"). Names are
// case-insensitive.
func ParseMetadataType(s string) (MetadataType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if t := MetadataType(n); t.Valid() {
			return t, nil
		}
		return 0, fmt.Errorf("linkedroles: unknown metadata type code %d", n)
	}
	u := strings.ToUpper(s)
	for i := IntLTE; i <= BoolNE; i++ {
		if typeNames[i].short == u || typeNames[i].long == u {
			return i, nil
		}
	}
	return 0, fmt.Errorf("linkedroles: unknown metadata type %q", s)
}

// UnmarshalYAML accepts either a name or a wire code.
func (t *MetadataType) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("linkedroles: metadata type must be a scalar (line %d)", n.Line)
	}
	v, err := ParseMetadataType(n.Value)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
