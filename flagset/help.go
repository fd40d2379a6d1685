package flagset

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

const helpIndent = "    "

// Usage returns the flag column text for an option, e.g. "-o, --outdir <string>".
func (o *Option) Usage() string {
	var sb strings.Builder
	if o.Short != "" {
		sb.WriteString("-" + o.Short)
		if o.Long != "" {
			sb.WriteString(", ")
		}
	} else {
		sb.WriteString(helpIndent)
	}
	if o.Long != "" {
		sb.WriteString("--" + o.Long)
	}
	if o.TakesValue() {
		sb.WriteString(fmt.Sprintf(" <%s>", o.Kind))
	}
	return sb.String()
}

// Help renders one aligned line per option. A set without options renders "".
func (fs *FlagSet) Help() string {
	if len(fs.options) == 0 {
		return ""
	}

	t := table.NewWriter()
	style := table.StyleDefault
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "  "
	t.SetStyle(style)

	for _, opt := range fs.options {
		desc := opt.Description
		if def, ok := opt.DefaultValue(); ok && def != "" {
			desc = strings.TrimSpace(fmt.Sprintf("%s (default %s)", desc, def))
		}
		t.AppendRow(table.Row{opt.Usage(), desc})
	}

	lines := lo.Map(strings.Split(t.Render(), "\n"), func(line string, _ int) string {
		return helpIndent + strings.TrimRight(line, " ")
	})
	return strings.Join(lines, "\n")
}
