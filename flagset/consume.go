package flagset

import (
	"strings"
)

// Terminator ends flag scanning; it and everything after it are left untouched.
const Terminator = "--"

// IsFlagToken reports whether tok looks like a flag rather than a positional
// argument. Negative numbers such as "-5" are positionals.
func IsFlagToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	return tok[1] < '0' || tok[1] > '9'
}

// Consume resets previously parsed values, then scans tokens left to right and
// stores every recognised flag and its value. Tokens it does not recognise are
// returned in their original order.
func (fs *FlagSet) Consume(tokens []string) ([]string, error) {
	fs.Reset()
	store := fs.values()

	leftover := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok == Terminator:
			leftover = append(leftover, tokens[i:]...)
			i = len(tokens)
		case strings.HasPrefix(tok, "--"):
			next, ok, err := fs.consumeLong(tokens, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				leftover = append(leftover, tok)
				continue
			}
			i = next
		case IsFlagToken(tok):
			next, ok, err := fs.consumeShort(tokens, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				leftover = append(leftover, tok)
				continue
			}
			i = next
		default:
			leftover = append(leftover, tok)
		}
	}

	for _, opt := range fs.options {
		if opt.required && !store.Changed(opt.Key()) {
			return nil, missingRequired(fs, opt)
		}
	}

	fs.args = leftover
	return leftover, nil
}

// consumeLong handles --name, --name=value, --name value and --no-name.
// It returns the index of the last token used.
func (fs *FlagSet) consumeLong(tokens []string, i int) (int, bool, error) {
	name, value, hasValue := strings.Cut(tokens[i][2:], "=")
	opt := fs.longs[name]
	// short-only options are keyed by their letter but have no long form
	if opt != nil && opt.Long == "" {
		opt = nil
	}
	if opt == nil {
		// --no-name negates a switch unless no-name is itself declared
		negated := fs.longs[strings.TrimPrefix(name, "no-")]
		if !hasValue && strings.HasPrefix(name, "no-") && negated != nil && negated.Long != "" && !negated.TakesValue() {
			return i, true, fs.set(negated, "--"+negated.Key(), "false")
		}
		return i, false, nil
	}

	flag := "--" + name
	switch {
	case !opt.TakesValue() && !hasValue:
		return i, true, fs.set(opt, flag, "true")
	case hasValue:
		return i, true, fs.set(opt, flag, value)
	case i+1 < len(tokens) && !IsFlagToken(tokens[i+1]):
		return i + 1, true, fs.set(opt, flag, tokens[i+1])
	default:
		return i, true, missingValue(fs, flag)
	}
}

// consumeShort handles -v, -o value, -ovalue, -o=value and clusters like -abc.
// A cluster is consumed only when every letter up to the first value option is known.
func (fs *FlagSet) consumeShort(tokens []string, i int) (int, bool, error) {
	letters := []rune(tokens[i][1:])

	for _, r := range letters {
		opt := fs.shorts[string(r)]
		if opt == nil {
			return i, false, nil
		}
		if opt.TakesValue() {
			break
		}
	}

	for j, r := range letters {
		opt := fs.shorts[string(r)]
		flag := "-" + string(r)
		if !opt.TakesValue() {
			if err := fs.set(opt, flag, "true"); err != nil {
				return i, true, err
			}
			continue
		}

		if rest := string(letters[j+1:]); rest != "" {
			return i, true, fs.set(opt, flag, strings.TrimPrefix(rest, "="))
		}
		if i+1 < len(tokens) && !IsFlagToken(tokens[i+1]) {
			return i + 1, true, fs.set(opt, flag, tokens[i+1])
		}
		return i, true, missingValue(fs, flag)
	}
	return i, true, nil
}

func (fs *FlagSet) set(opt *Option, flag, value string) error {
	if !opt.accepts(value) {
		return invalidValue(fs, flag, value, nil)
	}
	if err := fs.values().Set(opt.Key(), value); err != nil {
		return invalidValue(fs, flag, value, err)
	}
	return nil
}
