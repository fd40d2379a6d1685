package flagset

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Kind is the value type of an option.
type Kind int32

const (
	KindBool Kind = iota + 1
	KindString
	KindInt
	KindFloat
	KindDuration
	KindStrings
)

var name2Kind = map[string]Kind{
	"bool":     KindBool,
	"string":   KindString,
	"int":      KindInt,
	"float":    KindFloat,
	"duration": KindDuration,
	"strings":  KindStrings,
}

// ParseKind maps a type name used in definition files to Kind.
func ParseKind(name string) (Kind, error) {
	k, ok := name2Kind[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Newf("unknown option type %q", name)
	}
	return k, nil
}

// String returns the type name, also used as value placeholder in help output.
func (k Kind) String() string {
	for name, kind := range name2Kind {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Check validates that raw is an acceptable textual value for kind.
func (k Kind) Check(raw string) error {
	var err error
	switch k {
	case KindBool:
		_, err = strconv.ParseBool(raw)
	case KindInt:
		// same bases pflag accepts on the command line
		_, err = strconv.ParseInt(raw, 0, 0)
	case KindFloat:
		_, err = strconv.ParseFloat(raw, 64)
	case KindDuration:
		_, err = time.ParseDuration(raw)
	case KindString, KindStrings:
	default:
		err = errors.Newf("unknown kind %d", k)
	}
	return err
}

// Option is the definition of one flag.
type Option struct {
	Long        string
	Short       string
	Description string
	Kind        Kind

	defValue   string
	hasDefault bool
	required   bool
	choices    []string

	owner *FlagSet
}

// Key returns the name the option is stored under, long name first.
func (o *Option) Key() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

// TakesValue reports whether the option consumes a value token.
func (o *Option) TakesValue() bool {
	return o.Kind != KindBool
}

// Default sets the textual default value. It panics when value does not fit the option kind.
func (o *Option) Default(value string) *Option {
	if err := o.Kind.Check(value); err != nil {
		panic(errors.Wrapf(err, "flagset: bad default for option %s", o.Key()))
	}
	o.defValue = value
	o.hasDefault = true
	o.touch()
	return o
}

// DefaultValue returns the declared default, if any.
func (o *Option) DefaultValue() (string, bool) {
	return o.defValue, o.hasDefault
}

// Required marks the option as mandatory whenever its flag set consumes input.
func (o *Option) Required() *Option {
	o.required = true
	return o
}

// IsRequired reports whether Required was set.
func (o *Option) IsRequired() bool {
	return o.required
}

// Choices restricts accepted values. Also used for interactive value suggestions.
func (o *Option) Choices(values ...string) *Option {
	o.choices = append(o.choices, values...)
	return o
}

// AllowedValues returns the declared choices.
func (o *Option) AllowedValues() []string {
	return o.choices
}

func (o *Option) accepts(value string) bool {
	if len(o.choices) == 0 {
		return true
	}
	if o.Kind == KindStrings {
		parts := strings.Split(value, ",")
		return len(lo.Filter(parts, func(part string, _ int) bool {
			return !lo.Contains(o.choices, part)
		})) == 0
	}
	return lo.Contains(o.choices, value)
}

// touch invalidates the owner's value store so the next access rebuilds it.
func (o *Option) touch() {
	if o.owner != nil {
		o.owner.store = nil
	}
}

// parseSpec parses compact option specs:
//
//	"--force"      long bool
//	"outdir="      long, takes a string value
//	"v"            short bool
//	"v, verbose"   short and long
//	"o, outdir="   short and long, takes a string value
func parseSpec(spec string) (long, short string, kind Kind) {
	kind = KindBool
	spec = strings.TrimSpace(spec)
	if strings.HasSuffix(spec, "=") {
		kind = KindString
		spec = strings.TrimSuffix(spec, "=")
	}

	parts := lo.Filter(strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' }),
		func(part string, _ int) bool { return part != "" })
	for _, part := range parts {
		name := strings.TrimLeft(part, "-")
		if len([]rune(name)) == 1 && short == "" {
			short = name
			continue
		}
		long = name
	}
	return long, short, kind
}

// normalizeFlagName accepts "--outdir=", "-o", "outdir" and returns the bare name.
func normalizeFlagName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, "=")
	return strings.TrimLeft(name, "-")
}
