package commands

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/milvus-io/cmdset/flagset"
)

// Parse resolves argv against the registered flag sets and returns argv itself,
// untouched. Results are read through Present, Invoked, Arguments, Get and ToMap.
func (c *CommandSet) Parse(argv []string) ([]string, error) {
	if _, err := c.dispatch(argv); err != nil {
		return nil, err
	}
	return argv, nil
}

// ParseInPlace resolves *args like Parse, then rewrites *args so that only the
// positional tokens not claimed by the invoked command remain. The command
// name, every consumed flag and value, the terminator and the command's
// claimed arguments are removed. The rewritten slice is also returned.
func (c *CommandSet) ParseInPlace(args *[]string) ([]string, error) {
	rest, err := c.dispatch(*args)
	if err != nil {
		return nil, err
	}
	*args = append((*args)[:0], rest...)
	return *args, nil
}

// Run parses argv and executes the action of the invoked command, or of the
// default slot when no command was named.
func (c *CommandSet) Run(ctx context.Context, argv []string) error {
	if _, err := c.Parse(argv); err != nil {
		return err
	}
	target := c.fallback
	if c.invoked != "" {
		target = c.commands[c.invoked]
	}
	if target == nil {
		return nil
	}
	return target.Run(ctx, c.Arguments())
}

// dispatch applies the precedence named > global > default and returns the
// tokens not claimed by anything.
func (c *CommandSet) dispatch(argv []string) ([]string, error) {
	c.invoked = ""
	c.arguments = nil

	items := append([]string(nil), argv...)
	var named *flagset.FlagSet
	if len(items) > 0 {
		// argv tokens are matched verbatim, only registry lookups normalise
		if fs, ok := c.commands[items[0]]; ok {
			named = fs
			c.invoked = items[0]
			items = items[1:]
		} else if c.strict && !flagset.IsFlagToken(items[0]) {
			return nil, &InvalidCommandError{Token: items[0]}
		}
	}

	for _, fs := range c.slots() {
		fs.Reset()
	}
	if len(argv) == 0 {
		return argv, nil
	}

	var (
		claimed []string
		err     error
	)
	if named != nil {
		claimed, items = splitClaimed(items)
		items, err = named.Consume(items)
		if err != nil {
			return nil, err
		}
	}
	if c.global != nil {
		items, err = c.global.Consume(items)
		if err != nil {
			return nil, err
		}
	}
	if named == nil && c.fallback != nil {
		items, err = c.fallback.Consume(items)
		if err != nil {
			return nil, err
		}
	}

	if idx := lo.IndexOf(items, flagset.Terminator); idx >= 0 {
		items = append(items[:idx:idx], items[idx+1:]...)
	}
	c.arguments = append(append([]string{}, claimed...), items...)

	if c.logger.Core().Enabled(zap.DebugLevel) {
		c.logger.Debug("arguments dispatched",
			zap.Strings("argv", argv),
			zap.String("invoked", c.invoked),
			zap.Strings("claimed", claimed),
			zap.Strings("leftover", items),
			zap.Bool("default", named == nil && c.fallback != nil),
		)
	}
	return items, nil
}

// splitClaimed separates the positional run that directly follows the
// command name from the rest of the tokens.
func splitClaimed(items []string) ([]string, []string) {
	idx := len(items)
	for i, item := range items {
		if item == flagset.Terminator || flagset.IsFlagToken(item) {
			idx = i
			break
		}
	}
	return items[:idx:idx], items[idx:]
}
