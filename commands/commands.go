// Package commands dispatches an argument list across a set of named
// command flag sets plus two reserved slots: global flags, consumed on every
// parse, and default flags, consumed only when no command was named.
package commands

import (
	"strings"

	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/flagset"
	"github.com/milvus-io/cmdset/log"
)

const (
	// GlobalName is the reserved slot name of the global flag set.
	GlobalName = "global"
	// DefaultName is the reserved slot name of the default flag set.
	DefaultName = "default"
)

// CommandSet is a registry of command flag sets and the state of the last parse.
// It is not safe for concurrent use.
type CommandSet struct {
	strict bool
	banner string
	logger *zap.Logger

	names    []string
	commands map[string]*flagset.FlagSet
	global   *flagset.FlagSet
	fallback *flagset.FlagSet

	invoked   string
	arguments []string
}

// Option is the setup option function for New.
type Option func(*CommandSet)

// WithStrict makes an unknown leading command token a parse error.
func WithStrict(strict bool) Option {
	return func(c *CommandSet) {
		c.strict = strict
	}
}

// WithBanner sets the first line of the rendered help.
func WithBanner(banner string) Option {
	return func(c *CommandSet) {
		c.banner = banner
	}
}

// WithLogger replaces the dispatcher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *CommandSet) {
		c.logger = logger
	}
}

// New creates a CommandSet. configure, when not nil, receives the new set to
// register commands and the global/default slots.
func New(configure func(*CommandSet), opts ...Option) *CommandSet {
	c := &CommandSet{
		commands: make(map[string]*flagset.FlagSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.With(log.FieldComponent("dispatcher"))
	}
	if configure != nil {
		configure(c)
	}
	return c
}

// NormalizeName returns the canonical key of a command name: surrounding
// spaces and a leading ':' symbol marker are removed, so ":new" equals "new".
func NormalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), ":")
}

// Strict reports whether unknown leading commands are rejected.
func (c *CommandSet) Strict() bool {
	return c.strict
}

// Banner returns the configured banner.
func (c *CommandSet) Banner() string {
	return c.banner
}

// On registers a named command. Registering an existing name returns the
// existing flag set; configure, when not nil, runs against the returned set.
// The reserved names are routed to their slots.
func (c *CommandSet) On(name string, configure func(*flagset.FlagSet)) *flagset.FlagSet {
	name = NormalizeName(name)
	switch name {
	case GlobalName:
		return c.Global(configure)
	case DefaultName:
		return c.Default(configure)
	}

	fs, ok := c.commands[name]
	if !ok {
		fs = flagset.New(name, nil)
		c.commands[name] = fs
		c.names = append(c.names, name)
	}
	if configure != nil {
		configure(fs)
	}
	return fs
}

// Global returns the global flag set, creating it on first use.
func (c *CommandSet) Global(configure func(*flagset.FlagSet)) *flagset.FlagSet {
	if c.global == nil {
		c.global = flagset.New(GlobalName, nil)
	}
	if configure != nil {
		configure(c.global)
	}
	return c.global
}

// Default returns the default flag set, creating it on first use.
func (c *CommandSet) Default(configure func(*flagset.FlagSet)) *flagset.FlagSet {
	if c.fallback == nil {
		c.fallback = flagset.New(DefaultName, nil)
	}
	if configure != nil {
		configure(c.fallback)
	}
	return c.fallback
}

// Get returns the flag set registered under name, or nil. The reserved names
// resolve to their slots once those exist.
func (c *CommandSet) Get(name string) *flagset.FlagSet {
	name = NormalizeName(name)
	switch name {
	case GlobalName:
		return c.global
	case DefaultName:
		return c.fallback
	}
	return c.commands[name]
}

// FetchOption returns the definition of flag within command, or nil.
func (c *CommandSet) FetchOption(command, flag string) *flagset.Option {
	fs := c.Get(command)
	if fs == nil {
		return nil
	}
	return fs.Lookup(flag)
}

// Commands returns the registered command names in registration order.
func (c *CommandSet) Commands() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of registered commands.
func (c *CommandSet) Len() int {
	return len(c.names)
}

// slots returns every existing flag set, commands first.
func (c *CommandSet) slots() []*flagset.FlagSet {
	result := make([]*flagset.FlagSet, 0, len(c.names)+2)
	for _, name := range c.names {
		result = append(result, c.commands[name])
	}
	if c.global != nil {
		result = append(result, c.global)
	}
	if c.fallback != nil {
		result = append(result, c.fallback)
	}
	return result
}
