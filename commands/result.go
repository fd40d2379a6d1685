package commands

import (
	"strings"

	"github.com/samber/lo"
)

// Present reports whether name was the command invoked by the last parse.
func (c *CommandSet) Present(name string) bool {
	return c.invoked != "" && c.invoked == NormalizeName(name)
}

// Invoked returns the command named by the last parse, if any.
func (c *CommandSet) Invoked() (string, bool) {
	return c.invoked, c.invoked != ""
}

// Arguments returns the positional arguments of the last parse: the arguments
// claimed by the invoked command followed by every token nothing consumed.
func (c *CommandSet) Arguments() []string {
	return c.arguments
}

// ToMap returns the flag values of every registered command, invoked or not,
// keyed by command then flag name. Unset flags map to nil.
func (c *CommandSet) ToMap() map[string]map[string]any {
	result := make(map[string]map[string]any, len(c.names))
	for _, name := range c.names {
		result[name] = c.commands[name].ToMap()
	}
	return result
}

// String renders the help of every command, then global and default options.
// Sections without options are left out entirely.
func (c *CommandSet) String() string {
	type section struct {
		title string
		body  string
	}
	sections := lo.Map(c.names, func(name string, _ int) section {
		return section{title: name, body: c.commands[name].Help()}
	})
	if c.global != nil {
		sections = append(sections, section{title: "Global options", body: c.global.Help()})
	}
	if c.fallback != nil {
		sections = append(sections, section{title: "Other options", body: c.fallback.Help()})
	}
	sections = lo.Filter(sections, func(s section, _ int) bool { return s.body != "" })

	var sb strings.Builder
	if c.banner != "" {
		sb.WriteString(c.banner)
		sb.WriteString("\n")
	}
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("  ")
		sb.WriteString(s.title)
		sb.WriteString("\n")
		sb.WriteString(s.body)
	}
	return sb.String()
}
