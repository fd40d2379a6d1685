package framework

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type Format int32

const (
	FormatDefault Format = iota + 1
	FormatPlain
	FormatJSON
	FormatTable
	FormatLine
	FormatYAML
)

var name2Format = map[string]Format{
	"default": FormatDefault,
	"plain":   FormatPlain,
	"json":    FormatJSON,
	"table":   FormatTable,
	"line":    FormatLine,
	"yaml":    FormatYAML,
}

// ResultSet is the interface for command result set.
type ResultSet interface {
	PrintAs(Format) string
	Entities() any
}

// PresetResultSet implements Stringer and "memorize" output format.
type PresetResultSet struct {
	ResultSet
	format Format
}

func (rs *PresetResultSet) String() string {
	if rs.format < FormatDefault {
		return rs.PrintAs(FormatDefault)
	}
	return rs.PrintAs(rs.format)
}

func NewPresetResultSet(rs ResultSet, format Format) *PresetResultSet {
	return &PresetResultSet{
		ResultSet: rs,
		format:    format,
	}
}

// NameFormat name to format mapping tool function.
func NameFormat(name string) Format {
	f, ok := name2Format[name]
	if !ok {
		return FormatDefault
	}
	return f
}

// String returns the format name.
func (f Format) String() string {
	for name, format := range name2Format {
		if format == f {
			return name
		}
	}
	return "default"
}

// ValidFormat reports whether name is a known format name.
func ValidFormat(name string) bool {
	_, ok := name2Format[name]
	return ok
}

// MarshalJSON is a helper function for JSON serialization.
// It returns a pretty-printed JSON string of the given value.
func MarshalJSON(v any) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(bs)
}

// MarshalYAML is the YAML counterpart of MarshalJSON.
func MarshalYAML(v any) string {
	bs, err := yaml.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(bs)
}
