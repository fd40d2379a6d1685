package autocomplete

import (
	"strings"

	"github.com/samber/lo"

	"github.com/milvus-io/cmdset/flagset"
)

// parseInput splits the line into components. A trailing blank adds an empty
// command component so that the next word gets completed.
func parseInput(input string) []cComp {
	isEndBlank := strings.HasSuffix(input, " ")

	parts := strings.Split(input, " ")
	parts = lo.Filter(parts, func(part string, _ int) bool {
		return part != ""
	})

	comps := make([]cComp, 0, len(parts)+1)
	for _, part := range parts {
		switch {
		case part == flagset.Terminator:
			comps = append(comps, cComp{raw: part, cType: cmdCompTerminator})
		case part == "-" || flagset.IsFlagToken(part):
			comp := cComp{raw: part, cType: cmdCompFlag}
			tag, value, found := strings.Cut(strings.TrimLeft(part, "-"), "=")
			comp.cTag = tag
			if found {
				comp.cValue = value
				comp.hasValue = true
			}
			comps = append(comps, comp)
		default:
			comps = append(comps, cComp{raw: part, cTag: part, cType: cmdCompCommand})
		}
	}

	if isEndBlank {
		comps = append(comps, cComp{cType: cmdCompCommand})
	}
	return comps
}
