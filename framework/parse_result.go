package framework

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/milvus-io/cmdset/commands"
)

var _ ResultSet = (*ParseResult)(nil)

// ParseResult is the snapshot of a CommandSet after a parse.
type ParseResult struct {
	Invoked   string                    `json:"invoked,omitempty" yaml:"invoked,omitempty"`
	Arguments []string                  `json:"arguments" yaml:"arguments"`
	Commands  map[string]map[string]any `json:"commands" yaml:"commands"`
	Global    map[string]any            `json:"global,omitempty" yaml:"global,omitempty"`
	Default   map[string]any            `json:"default,omitempty" yaml:"default,omitempty"`
}

// NewParseResult snapshots the state of c.
func NewParseResult(c *commands.CommandSet) *ParseResult {
	invoked, _ := c.Invoked()
	rs := &ParseResult{
		Invoked:   invoked,
		Arguments: append([]string{}, c.Arguments()...),
		Commands:  c.ToMap(),
	}
	if fs := c.Get(commands.GlobalName); fs != nil {
		rs.Global = fs.ToMap()
	}
	if fs := c.Get(commands.DefaultName); fs != nil {
		rs.Default = fs.ToMap()
	}
	return rs
}

// Entities implements ResultSet.
func (rs *ParseResult) Entities() any {
	return rs
}

// Env returns the variables visible to filter expressions.
func (rs *ParseResult) Env() map[string]any {
	return map[string]any{
		"invoked":   rs.Invoked,
		"arguments": rs.Arguments,
		"commands":  rs.Commands,
		"global":    rs.Global,
		"default":   rs.Default,
	}
}

type resultRow struct {
	section string
	flag    string
	value   any
}

// rows lists every flag, invoked command first, then global and default.
func (rs *ParseResult) rows(onlySet bool) []resultRow {
	var rows []resultRow
	appendSection := func(section string, values map[string]any) {
		keys := lo.Keys(values)
		sort.Strings(keys)
		for _, key := range keys {
			if onlySet && values[key] == nil {
				continue
			}
			rows = append(rows, resultRow{section: section, flag: key, value: values[key]})
		}
	}

	names := lo.Keys(rs.Commands)
	sort.Strings(names)
	if rs.Invoked != "" {
		names = append([]string{rs.Invoked}, lo.Filter(names, func(name string, _ int) bool {
			return name != rs.Invoked
		})...)
	}
	for _, name := range names {
		appendSection(name, rs.Commands[name])
	}
	appendSection(commands.GlobalName, rs.Global)
	appendSection(commands.DefaultName, rs.Default)
	return rows
}

// PrintAs implements ResultSet.
func (rs *ParseResult) PrintAs(format Format) string {
	switch format {
	case FormatJSON:
		return MarshalJSON(rs)
	case FormatYAML:
		return MarshalYAML(rs)
	case FormatTable:
		return rs.printTable()
	case FormatLine:
		return rs.printLine()
	default:
		return rs.printDefault()
	}
}

func (rs *ParseResult) printDefault() string {
	var sb strings.Builder
	invoked := rs.Invoked
	if invoked == "" {
		invoked = "<none>"
	}
	fmt.Fprintf(&sb, "Command: %s\n", invoked)
	fmt.Fprintf(&sb, "Arguments: %s\n", strings.Join(rs.Arguments, " "))
	for _, row := range rs.rows(true) {
		fmt.Fprintf(&sb, "  %s --%s=%v\n", row.section, row.flag, row.value)
	}
	return sb.String()
}

func (rs *ParseResult) printLine() string {
	lines := lo.Map(rs.rows(false), func(row resultRow, _ int) string {
		return fmt.Sprintf("%s.%s=%v", row.section, row.flag, formatValue(row.value))
	})
	lines = append(lines, fmt.Sprintf("arguments=%s", strings.Join(rs.Arguments, ",")))
	if rs.Invoked != "" {
		lines = append([]string{"invoked=" + rs.Invoked}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (rs *ParseResult) printTable() string {
	t := table.NewWriter()
	if rs.Invoked != "" {
		t.SetTitle("Command: " + rs.Invoked)
	}
	t.AppendHeader(table.Row{"Section", "Flag", "Value"})
	for _, row := range rs.rows(false) {
		t.AppendRow(table.Row{row.section, "--" + row.flag, formatValue(row.value)})
	}
	t.AppendFooter(table.Row{"Arguments", "", strings.Join(rs.Arguments, " ")})
	return t.Render()
}

func formatValue(v any) string {
	if v == nil {
		return "-"
	}
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}
