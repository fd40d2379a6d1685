// Package flagset implements the single-command flag parser used for every
// command slot of a command set. Option definitions are owned here, while
// value storage and type coercion are delegated to a pflag.FlagSet that is
// rebuilt on every consumption, so values never leak between parses.
package flagset

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ActionFunc is run for the invoked command after a successful parse.
type ActionFunc func(ctx context.Context, fs *FlagSet, args []string) error

// FlagSet holds the option definitions of one command and, after Consume,
// the parsed values and leftover tokens.
type FlagSet struct {
	name    string
	options []*Option
	longs   map[string]*Option
	shorts  map[string]*Option

	store  *pflag.FlagSet
	args   []string
	action ActionFunc
}

// New returns an empty FlagSet; configure, when not nil, declares its options.
func New(name string, configure func(*FlagSet)) *FlagSet {
	fs := &FlagSet{
		name:   name,
		longs:  make(map[string]*Option),
		shorts: make(map[string]*Option),
	}
	if configure != nil {
		configure(fs)
	}
	return fs
}

// Name returns the slot or command name the set was created for.
func (fs *FlagSet) Name() string {
	return fs.name
}

// On declares an option from a compact spec such as "o, outdir=", see parseSpec.
func (fs *FlagSet) On(spec string, description string) *Option {
	long, short, kind := parseSpec(spec)
	return fs.add(long, short, description, kind)
}

// Bool declares a switch.
func (fs *FlagSet) Bool(name, short, description string) *Option {
	return fs.add(name, short, description, KindBool)
}

// String declares a string option.
func (fs *FlagSet) String(name, short, description string) *Option {
	return fs.add(name, short, description, KindString)
}

// Int declares an integer option.
func (fs *FlagSet) Int(name, short, description string) *Option {
	return fs.add(name, short, description, KindInt)
}

// Float declares a float option.
func (fs *FlagSet) Float(name, short, description string) *Option {
	return fs.add(name, short, description, KindFloat)
}

// Duration declares a time.Duration option.
func (fs *FlagSet) Duration(name, short, description string) *Option {
	return fs.add(name, short, description, KindDuration)
}

// Strings declares a repeatable, comma separated string list option.
func (fs *FlagSet) Strings(name, short, description string) *Option {
	return fs.add(name, short, description, KindStrings)
}

// Add declares an option of an arbitrary kind.
func (fs *FlagSet) Add(name, short, description string, kind Kind) *Option {
	return fs.add(name, short, description, kind)
}

func (fs *FlagSet) add(long, short, description string, kind Kind) *Option {
	long = normalizeFlagName(long)
	short = normalizeFlagName(short)
	if long == "" && short == "" {
		panic(fmt.Sprintf("flagset: %s: option without name", fs.name))
	}
	if len([]rune(short)) > 1 {
		panic(fmt.Sprintf("flagset: %s: shorthand %q is more than one character", fs.name, short))
	}
	opt := &Option{
		Long:        long,
		Short:       short,
		Description: description,
		Kind:        kind,
		owner:       fs,
	}
	// redefinition is a programmer error, same as pflag
	if _, ok := fs.longs[opt.Key()]; ok {
		panic(fmt.Sprintf("flagset: %s: flag redefined: %s", fs.name, opt.Key()))
	}
	if _, ok := fs.shorts[short]; short != "" && ok {
		panic(fmt.Sprintf("flagset: %s: shorthand redefined: %s", fs.name, short))
	}

	fs.options = append(fs.options, opt)
	fs.longs[opt.Key()] = opt
	if short != "" {
		fs.shorts[short] = opt
	}
	fs.store = nil
	return opt
}

// Lookup returns the definition for a long name or shorthand, nil if unknown.
// Dashes and a trailing "=" are ignored, so "--outdir=" finds "outdir".
func (fs *FlagSet) Lookup(name string) *Option {
	name = normalizeFlagName(name)
	if opt, ok := fs.longs[name]; ok {
		return opt
	}
	return fs.shorts[name]
}

// Options returns the definitions in declaration order.
func (fs *FlagSet) Options() []*Option {
	return fs.options
}

// Len returns the number of declared options.
func (fs *FlagSet) Len() int {
	return len(fs.options)
}

// Action registers the function Run executes.
func (fs *FlagSet) Action(fn ActionFunc) *FlagSet {
	fs.action = fn
	return fs
}

// Run executes the registered action, if any.
func (fs *FlagSet) Run(ctx context.Context, args []string) error {
	if fs.action == nil {
		return nil
	}
	return fs.action(ctx, fs, args)
}

// Args returns the tokens the last Consume did not recognise.
func (fs *FlagSet) Args() []string {
	return fs.args
}

// Reset drops all parsed values and leftovers.
func (fs *FlagSet) Reset() {
	fs.store = fs.build()
	fs.args = nil
}

func (fs *FlagSet) values() *pflag.FlagSet {
	if fs.store == nil {
		fs.store = fs.build()
	}
	return fs.store
}

// build creates a fresh pflag value store from the definitions.
func (fs *FlagSet) build() *pflag.FlagSet {
	store := pflag.NewFlagSet(fs.name, pflag.ContinueOnError)
	store.SetOutput(io.Discard)
	for _, opt := range fs.options {
		def := opt.defValue
		switch opt.Kind {
		case KindBool:
			v, _ := strconv.ParseBool(def)
			store.BoolP(opt.Key(), opt.Short, v, opt.Description)
		case KindString:
			store.StringP(opt.Key(), opt.Short, def, opt.Description)
		case KindInt:
			v, _ := strconv.ParseInt(def, 0, 0)
			store.IntP(opt.Key(), opt.Short, int(v), opt.Description)
		case KindFloat:
			v, _ := strconv.ParseFloat(def, 64)
			store.Float64P(opt.Key(), opt.Short, v, opt.Description)
		case KindDuration:
			v, _ := time.ParseDuration(def)
			store.DurationP(opt.Key(), opt.Short, v, opt.Description)
		case KindStrings:
			var v []string
			if def != "" {
				v = strings.Split(def, ",")
			}
			store.StringSliceP(opt.Key(), opt.Short, v, opt.Description)
		}
	}
	return store
}
