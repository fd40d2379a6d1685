package autocomplete

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/flagset"
)

// acCandidate is the interface for auto-complete candidates.
type acCandidate interface {
	Match(cComp) bool
	NextCandidates(cComp, []acCandidate) []acCandidate
	Suggest(cComp) map[string]string
}

// cmdCandidate is a named command, only valid as the first word.
type cmdCandidate struct {
	name   string
	fs     *flagset.FlagSet
	global *flagset.FlagSet
}

// Match implements acCandidate.
func (c *cmdCandidate) Match(input cComp) bool {
	return input.cType == cmdCompCommand && input.cTag == c.name
}

// NextCandidates implements acCandidate, returns the command flags followed by
// the global flags.
func (c *cmdCandidate) NextCandidates(_ cComp, _ []acCandidate) []acCandidate {
	return flagCandidates(c.fs, c.global)
}

// Suggest implements acCandidate.
func (c *cmdCandidate) Suggest(target cComp) map[string]string {
	if target.cType == cmdCompCommand && strings.HasPrefix(c.name, target.cTag) {
		return map[string]string{c.name: fmt.Sprintf("%d options", c.fs.Len())}
	}
	return map[string]string{}
}

// flagCandidate wraps flagset.Option as acCandidate.
type flagCandidate struct {
	opt *flagset.Option
}

// Match implements acCandidate, both --long and -s forms.
func (c *flagCandidate) Match(input cComp) bool {
	if input.cType != cmdCompFlag {
		return false
	}
	if strings.HasPrefix(input.raw, "--") {
		return c.opt.Long != "" && (input.cTag == c.opt.Long || input.cTag == "no-"+c.opt.Long)
	}
	// -s or the last letter of a -abc cluster
	return c.opt.Short != "" && strings.HasSuffix(input.cTag, c.opt.Short)
}

// Suggest implements acCandidate.
func (c *flagCandidate) Suggest(target cComp) map[string]string {
	if target.cType != cmdCompFlag {
		return map[string]string{}
	}
	// --flag=value
	if target.hasValue {
		if !c.Match(target) {
			return map[string]string{}
		}
		prefix := strings.TrimSuffix(target.raw, target.cValue)
		result := make(map[string]string)
		for _, v := range matchChoices(c.opt, target.cValue) {
			result[prefix+v] = ""
		}
		return result
	}

	result := make(map[string]string)
	if c.opt.Long != "" {
		k := "--" + c.opt.Long
		if strings.HasPrefix(k, target.raw) {
			result[k] = c.opt.Description
		}
	}
	if c.opt.Short != "" && !strings.HasPrefix(target.raw, "--") {
		k := "-" + c.opt.Short
		if strings.HasPrefix(k, target.raw) {
			result[k] = c.opt.Description
		}
	}
	return result
}

// NextCandidates implements acCandidate.
func (c *flagCandidate) NextCandidates(matched cComp, current []acCandidate) []acCandidate {
	if matched.hasValue || !c.opt.TakesValue() || strings.HasPrefix(matched.cTag, "no-") {
		return current
	}
	return []acCandidate{&flagValueCandidate{
		opt:                c.opt,
		previousCandidates: current,
	}}
}

// flagValueCandidate is a pending flag value. It offers the option choices and
// transitions back to previous candidates once consumed.
type flagValueCandidate struct {
	opt                *flagset.Option
	previousCandidates []acCandidate
}

// Match implements acCandidate. Any word is accepted as the value.
func (c *flagValueCandidate) Match(_ cComp) bool {
	return true
}

// NextCandidates implements acCandidate.
func (c *flagValueCandidate) NextCandidates(_ cComp, _ []acCandidate) []acCandidate {
	return c.previousCandidates
}

// Suggest implements acCandidate.
func (c *flagValueCandidate) Suggest(target cComp) map[string]string {
	result := make(map[string]string)
	for _, v := range matchChoices(c.opt, target.raw) {
		result[v] = ""
	}
	return result
}

func matchChoices(opt *flagset.Option, partial string) []string {
	return lo.Filter(opt.AllowedValues(), func(v string, _ int) bool {
		return strings.HasPrefix(v, partial)
	})
}

func flagCandidates(sets ...*flagset.FlagSet) []acCandidate {
	var result []acCandidate
	for _, fs := range sets {
		if fs == nil {
			continue
		}
		for _, opt := range fs.Options() {
			result = append(result, &flagCandidate{opt: opt})
		}
	}
	return result
}

func notCommand(c acCandidate, _ int) bool {
	_, ok := c.(*cmdCandidate)
	return !ok
}

// SuggestInput returns the completions of the last word of input, keyed by
// suggestion with a short description as value.
func SuggestInput(input string, cs *commands.CommandSet) map[string]string {
	return findSuggestions(parseInput(input), cs)
}

func findSuggestions(comps []cComp, cs *commands.CommandSet) map[string]string {
	// no suggestion if input is empty
	if len(comps) == 0 || cs == nil {
		return map[string]string{}
	}

	global := cs.Get(commands.GlobalName)
	candidates := make([]acCandidate, 0, cs.Len())
	for _, name := range cs.Commands() {
		candidates = append(candidates, &cmdCandidate{name: name, fs: cs.Get(name), global: global})
	}
	// without a command name the default slot applies
	candidates = append(candidates, flagCandidates(global, cs.Get(commands.DefaultName))...)

	// reduce leading components
	// for example
	// "new --outdir tmp --fo", ac target shall be "--fo"
	for i := 0; i < len(comps)-1; i++ {
		comp := comps[i]
		if comp.cType == cmdCompTerminator {
			return map[string]string{}
		}
		matched := false
		for _, candidate := range candidates {
			if candidate.Match(comp) {
				candidates = candidate.NextCandidates(comp, candidates)
				matched = true
				break
			}
		}
		if !matched && comp.cType == cmdCompFlag {
			return map[string]string{}
		}
		// unmatched words are positional arguments, commands only come first
		candidates = lo.Filter(candidates, notCommand)
	}

	target := comps[len(comps)-1]
	// a lone "--" being typed is the start of a long flag
	if target.cType == cmdCompTerminator {
		target = cComp{raw: target.raw, cType: cmdCompFlag}
	}
	result := make(map[string]string)
	for _, candidate := range candidates {
		for k, v := range candidate.Suggest(target) {
			result[k] = v
		}
	}
	return result
}
