package commands

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milvus-io/cmdset/flagset"
)

func newTestCommands() *CommandSet {
	return New(func(c *CommandSet) {
		c.On("new", func(fs *flagset.FlagSet) {
			fs.On("--force", "Force creation")
			fs.On("--outdir=", "Output directory")
		})
		c.On("version", nil)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		c := New(nil)
		assert.Empty(t, c.Commands())
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.ToMap())

		out, err := c.Parse([]string{})
		require.NoError(t, err)
		assert.Equal(t, []string{}, out)
	})

	t.Run("lookup", func(t *testing.T) {
		c := newTestCommands()
		assert.NotNil(t, c.Get("new"))
		assert.Same(t, c.Get("new"), c.Get(":new"))
		assert.Nil(t, c.Get("unknown"))
		assert.Nil(t, c.Get(":unknown"))
		assert.Equal(t, []string{"new", "version"}, c.Commands())

		assert.Equal(t, "Force creation", c.Get("new").Lookup("force").Description)
		assert.Equal(t, "Output directory", c.FetchOption("new", "outdir").Description)
		assert.Nil(t, c.FetchOption("new", "missing"))
		assert.Nil(t, c.FetchOption("missing", "force"))
	})

	t.Run("on returns existing", func(t *testing.T) {
		c := newTestCommands()
		fs := c.Get("new")
		again := c.On("new", func(fs *flagset.FlagSet) {
			fs.Bool("dry-run", "", "")
		})
		assert.Same(t, fs, again)
		assert.Equal(t, 3, fs.Len())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("reserved slots", func(t *testing.T) {
		c := newTestCommands()
		assert.Nil(t, c.Get("global"))
		assert.Nil(t, c.Get("default"))

		g := c.Global(nil)
		d := c.Default(nil)
		assert.NotNil(t, g)
		assert.NotNil(t, d)
		assert.Same(t, g, c.Global(nil))
		assert.Same(t, g, c.Get("global"))
		assert.Same(t, d, c.Get(":default"))
		assert.Same(t, g, c.On("global", nil))
		assert.NotContains(t, c.Commands(), "global")
		assert.NotContains(t, c.Commands(), "default")
		assert.NotNil(t, c.On("foo", nil))
	})
}

func TestPresence(t *testing.T) {
	c := newTestCommands()
	_, err := c.Parse([]string{"new", "--force"})
	require.NoError(t, err)

	assert.True(t, c.Present("new"))
	assert.True(t, c.Present(":new"))
	assert.False(t, c.Present("version"))
	name, ok := c.Invoked()
	assert.True(t, ok)
	assert.Equal(t, "new", name)
	assert.True(t, c.Get("new").Present("force"))

	_, err = c.Parse([]string{"other"})
	require.NoError(t, err)
	assert.False(t, c.Present("new"))
	_, ok = c.Invoked()
	assert.False(t, ok)
	assert.False(t, c.Get("new").Present("force"))
}

func TestToMap(t *testing.T) {
	c := newTestCommands()
	assert.Equal(t, map[string]map[string]any{
		"new":     {"force": nil, "outdir": nil},
		"version": {},
	}, c.ToMap())

	_, err := c.Parse([]string{"new", "--outdir", "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]any{
		"new":     {"force": nil, "outdir": "x"},
		"version": {},
	}, c.ToMap())
}

func TestStrict(t *testing.T) {
	t.Run("unknown command", func(t *testing.T) {
		c := New(nil, WithStrict(true))
		assert.True(t, c.Strict())
		_, err := c.Parse([]string{"abc"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCommand))

		var ice *InvalidCommandError
		require.True(t, errors.As(err, &ice))
		assert.Equal(t, "abc", ice.Token)
		assert.Contains(t, err.Error(), "abc")
	})

	t.Run("no state committed", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.On("new", func(fs *flagset.FlagSet) { fs.Bool("force", "", "") })
		}, WithStrict(true))
		_, err := c.Parse([]string{"new", "--force"})
		require.NoError(t, err)

		_, err = c.Parse([]string{"abc", "--force"})
		require.Error(t, err)
		assert.True(t, c.Get("new").Present("force"))
	})

	t.Run("leading flag is not a command", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.Global(func(fs *flagset.FlagSet) { fs.Bool("verbose", "v", "") })
		}, WithStrict(true))
		_, err := c.Parse([]string{"--verbose", "file"})
		require.NoError(t, err)
		assert.True(t, c.Get("global").Present("verbose"))
		assert.Equal(t, []string{"file"}, c.Arguments())
	})

	t.Run("argv tokens are not normalised", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.On("new", func(fs *flagset.FlagSet) { fs.Bool("force", "", "") })
		})
		_, err := c.Parse([]string{":new", "--force"})
		require.NoError(t, err)
		assert.False(t, c.Present("new"))
		_, invoked := c.Invoked()
		assert.False(t, invoked)
		assert.Equal(t, []string{":new", "--force"}, c.Arguments())

		_, err = c.Parse([]string{" new"})
		require.NoError(t, err)
		assert.False(t, c.Present("new"))

		strict := New(func(c *CommandSet) { c.On("new", nil) }, WithStrict(true))
		_, err = strict.Parse([]string{":new"})
		assert.ErrorIs(t, err, ErrInvalidCommand)
	})

	t.Run("non strict treats token as positional", func(t *testing.T) {
		c := New(nil)
		out, err := c.Parse([]string{"abc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"abc"}, out)
		assert.Equal(t, []string{"abc"}, c.Arguments())
	})
}

func TestGlobalOptions(t *testing.T) {
	t.Run("added", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.Global(func(fs *flagset.FlagSet) { fs.On("--verbose", "") })
		})
		_, err := c.Parse([]string{"--verbose"})
		require.NoError(t, err)
		assert.True(t, c.Get("global").Present("verbose"))
	})

	t.Run("always executed", func(t *testing.T) {
		c := newTestCommands()
		c.Global(func(fs *flagset.FlagSet) { fs.On("foo=", "") })
		_, err := c.Parse([]string{"new", "--force", "--foo", "bar"})
		require.NoError(t, err)

		foo, ok := c.Get("global").GetString("foo")
		assert.True(t, ok)
		assert.Equal(t, "bar", foo)
		assert.True(t, c.Get("new").Present("force"))
		assert.Empty(t, c.Arguments())
	})

	t.Run("named wins over global", func(t *testing.T) {
		c := newTestCommands()
		c.Global(func(fs *flagset.FlagSet) { fs.On("--force", "") })
		_, err := c.Parse([]string{"new", "--force"})
		require.NoError(t, err)
		assert.True(t, c.Get("new").Present("force"))
		assert.False(t, c.Get("global").Present("force"))
	})
}

func TestDefaultOptions(t *testing.T) {
	t.Run("only executed when nothing else", func(t *testing.T) {
		c := newTestCommands()
		c.Default(func(fs *flagset.FlagSet) { fs.On("foo=", "") })
		_, err := c.Parse([]string{"new", "--force", "--foo", "bar"})
		require.NoError(t, err)

		_, ok := c.Get("default").Value("foo")
		assert.False(t, ok)
		assert.Equal(t, []string{"--foo", "bar"}, c.Arguments())
	})

	t.Run("added", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.Default(func(fs *flagset.FlagSet) { fs.On("--verbose", "") })
		})
		_, err := c.Parse([]string{"--verbose"})
		require.NoError(t, err)
		assert.True(t, c.Get("default").Present("verbose"))
	})

	t.Run("global runs before default", func(t *testing.T) {
		c := New(func(c *CommandSet) {
			c.Global(func(fs *flagset.FlagSet) { fs.On("--verbose", "") })
			c.Default(func(fs *flagset.FlagSet) {
				fs.On("--verbose", "")
				fs.On("--quiet", "")
			})
		})
		_, err := c.Parse([]string{"--verbose", "--quiet", "x"})
		require.NoError(t, err)
		assert.True(t, c.Get("global").Present("verbose"))
		assert.False(t, c.Get("default").Present("verbose"))
		assert.True(t, c.Get("default").Present("quiet"))
		assert.Equal(t, []string{"x"}, c.Arguments())
	})
}

func TestEmptyInputResetsEverySlot(t *testing.T) {
	c := New(func(c *CommandSet) {
		c.On("new", func(fs *flagset.FlagSet) { fs.Bool("force", "", "") })
		c.Global(func(fs *flagset.FlagSet) { fs.Bool("verbose", "v", "") })
	})
	_, err := c.Parse([]string{"new", "--force", "-v", "x"})
	require.NoError(t, err)
	require.True(t, c.Get("new").Present("force"))

	out, err := c.Parse([]string{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, c.Present("new"))
	assert.Empty(t, c.Arguments())
	assert.False(t, c.Get("new").Present("force"))
	assert.False(t, c.Get("global").Present("verbose"))
}

func TestParseReturnsOriginal(t *testing.T) {
	c := newTestCommands()

	items := []string{"foo", "bar", "baz"}
	out, err := c.Parse(items)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar", "baz"}, out)
	assert.Equal(t, []string{"foo", "bar", "baz"}, items)

	items = []string{"new", "file", "--force"}
	out, err = c.Parse(items)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "file", "--force"}, out)
	assert.Equal(t, []string{"new", "file", "--force"}, items)
}

func TestParseInPlace(t *testing.T) {
	c := newTestCommands()

	items := []string{"new", "file", "--outdir", "foo"}
	rest, err := c.ParseInPlace(&items)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, rest)
	assert.Equal(t, []string{"file"}, c.Arguments())
	outdir, _ := c.Get("new").GetString("outdir")
	assert.Equal(t, "foo", outdir)

	items = []string{"new", "file", "--force", "extra", "--", "--raw"}
	_, err = c.ParseInPlace(&items)
	require.NoError(t, err)
	assert.Equal(t, []string{"extra", "--raw"}, items)
	assert.Equal(t, []string{"file", "extra", "--raw"}, c.Arguments())

	items = []string{"a", "b"}
	_, err = c.ParseInPlace(&items)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	items = []string{}
	_, err = c.ParseInPlace(&items)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCommandArguments(t *testing.T) {
	c := newTestCommands()
	_, err := c.Parse([]string{"new", "file1", "file2", "--outdir", "foo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"file1", "file2"}, c.Arguments())
}

func TestFlagErrorsPropagate(t *testing.T) {
	c := newTestCommands()
	_, err := c.Parse([]string{"new", "--outdir"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flagset.ErrMissingValue))

	c.Global(func(fs *flagset.FlagSet) { fs.Int("level", "", "") })
	_, err = c.Parse([]string{"--level", "high"})
	assert.True(t, errors.Is(err, flagset.ErrInvalidValue))
}

func TestRoundTrip(t *testing.T) {
	c := newTestCommands()
	_, err := c.Parse([]string{"new", "--outdir", "a"})
	require.NoError(t, err)
	v, _ := c.Get("new").GetString("outdir")
	assert.Equal(t, "a", v)
	v, _ = c.Get(":new").GetString("outdir")
	assert.Equal(t, "a", v)

	_, err = c.Parse([]string{"version"})
	require.NoError(t, err)
	_, ok := c.Get("new").GetString("outdir")
	assert.False(t, ok)
}

func TestRun(t *testing.T) {
	var ran string
	var args []string
	c := New(func(c *CommandSet) {
		c.On("version", nil).Action(func(context.Context, *flagset.FlagSet, []string) error {
			ran = "version"
			return nil
		})
		c.On("new", nil).Action(func(_ context.Context, _ *flagset.FlagSet, a []string) error {
			ran, args = "new", a
			return nil
		})
		c.Default(nil).Action(func(context.Context, *flagset.FlagSet, []string) error {
			ran = "default"
			return nil
		})
	})

	require.NoError(t, c.Run(context.Background(), []string{"version"}))
	assert.Equal(t, "version", ran)
	require.NoError(t, c.Run(context.Background(), []string{"new", "x", "y"}))
	assert.Equal(t, "new", ran)
	assert.Equal(t, []string{"x", "y"}, args)
	require.NoError(t, c.Run(context.Background(), []string{"x"}))
	assert.Equal(t, "default", ran)

	assert.NoError(t, New(nil).Run(context.Background(), []string{"x"}))
}

func TestString(t *testing.T) {
	empty := New(func(c *CommandSet) {
		c.Default(func(*flagset.FlagSet) {})
		c.Global(func(*flagset.FlagSet) {})
		c.On("verbose", nil)
	})
	assert.Empty(t, empty.String())

	c := newTestCommands()
	c.Global(func(fs *flagset.FlagSet) { fs.On("v, verbose", "Verbose output") })
	out := c.String()
	assert.Contains(t, out, "  new\n")
	assert.Contains(t, out, "Force creation")
	assert.Contains(t, out, "  Global options\n")
	assert.NotContains(t, out, "version")
	assert.NotContains(t, out, "Other options")

	withBanner := New(nil, WithBanner("Usage: tool [command]"))
	assert.Equal(t, "Usage: tool [command]\n", withBanner.String())
}
