// Package definition loads command set definitions from YAML documents.
package definition

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/configs"
	"github.com/milvus-io/cmdset/flagset"
)

// Definition is the document form of a command set.
type Definition struct {
	Banner   string    `yaml:"banner,omitempty"`
	Strict   bool      `yaml:"strict,omitempty"`
	Global   []Option  `yaml:"global,omitempty"`
	Default  []Option  `yaml:"default,omitempty"`
	Commands []Command `yaml:"commands,omitempty"`
}

// Command is one named command.
type Command struct {
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options,omitempty"`
}

// Option is one flag definition.
type Option struct {
	Name     string   `yaml:"name,omitempty"`
	Short    string   `yaml:"short,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Desc     string   `yaml:"desc,omitempty"`
	Default  *string  `yaml:"default,omitempty"`
	Required bool     `yaml:"required,omitempty"`
	Choices  []string `yaml:"choices,omitempty"`
}

// Load reads and validates the definition file at path.
func Load(path string) (*Definition, error) {
	path, err := configs.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read definition %s", path)
	}
	def, err := Parse(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "definition %s", path)
	}
	return def, nil
}

// Parse decodes and validates a YAML definition. Unknown keys are rejected.
func Parse(bs []byte) (*Definition, error) {
	def := &Definition{}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil {
		return nil, errors.Wrap(err, "failed to decode definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// Validate checks names, types and defaults without building anything.
func (d *Definition) Validate() error {
	seen := make(map[string]struct{})
	for _, cmd := range d.Commands {
		name := commands.NormalizeName(cmd.Name)
		if name == "" {
			return errors.New("command without name")
		}
		if name == commands.GlobalName || name == commands.DefaultName {
			return errors.Newf("command name %q is reserved, use the %s section", name, name)
		}
		if _, ok := seen[name]; ok {
			return errors.Newf("command %q defined twice", name)
		}
		seen[name] = struct{}{}
		if err := validateOptions(name, cmd.Options); err != nil {
			return err
		}
	}
	if err := validateOptions(commands.GlobalName, d.Global); err != nil {
		return err
	}
	return validateOptions(commands.DefaultName, d.Default)
}

func validateOptions(section string, opts []Option) error {
	seen := make(map[string]struct{})
	for _, opt := range opts {
		if opt.Name == "" && opt.Short == "" {
			return errors.Newf("%s: option without name", section)
		}
		if len([]rune(opt.Short)) > 1 {
			return errors.Newf("%s: shorthand %q is more than one character", section, opt.Short)
		}
		// short-only options are also stored under their letter as long name
		for _, key := range []string{"--" + opt.key(), "-" + opt.Short} {
			if key == "--" || key == "-" {
				continue
			}
			if _, ok := seen[key]; ok {
				return errors.Newf("%s: option %s defined twice", section, key)
			}
			seen[key] = struct{}{}
		}
		kind, err := opt.kind()
		if err != nil {
			return errors.Wrapf(err, "%s: option %s", section, opt.key())
		}
		if opt.Default != nil {
			if err := kind.Check(*opt.Default); err != nil {
				return errors.Wrapf(err, "%s: option %s default", section, opt.key())
			}
		}
	}
	return nil
}

func (o Option) key() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Short
}

func (o Option) kind() (flagset.Kind, error) {
	if o.Type == "" {
		return flagset.KindBool, nil
	}
	return flagset.ParseKind(o.Type)
}

// Build creates the command set described by the definition. opts are applied
// after the definition's own strict and banner settings.
func (d *Definition) Build(opts ...commands.Option) (*commands.CommandSet, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	setup := append([]commands.Option{
		commands.WithStrict(d.Strict),
		commands.WithBanner(d.Banner),
	}, opts...)

	return commands.New(func(c *commands.CommandSet) {
		for _, cmd := range d.Commands {
			c.On(cmd.Name, declare(cmd.Options))
		}
		if len(d.Global) > 0 {
			c.Global(declare(d.Global))
		}
		if len(d.Default) > 0 {
			c.Default(declare(d.Default))
		}
	}, setup...), nil
}

func declare(opts []Option) func(*flagset.FlagSet) {
	return func(fs *flagset.FlagSet) {
		for _, o := range opts {
			// validated already
			kind, _ := o.kind()
			opt := fs.Add(o.Name, o.Short, o.Desc, kind)
			if o.Default != nil {
				opt.Default(*o.Default)
			}
			if o.Required {
				opt.Required()
			}
			if len(o.Choices) > 0 {
				opt.Choices(o.Choices...)
			}
		}
	}
}
