package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milvus-io/cmdset/commands"
)

const sample = `
banner: "Usage: tool [command] [options]"
strict: true
global:
  - {name: verbose, short: v, desc: "Verbose output"}
default:
  - {name: foo, type: string}
commands:
  - name: new
    options:
      - {name: force, desc: "Force creation"}
      - {name: outdir, type: string, desc: "Output directory", default: "out"}
      - {name: format, type: string, choices: [json, yaml]}
  - name: version
`

func TestParseAndBuild(t *testing.T) {
	def, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.True(t, def.Strict)
	assert.Len(t, def.Commands, 2)

	c, err := def.Build()
	require.NoError(t, err)
	assert.True(t, c.Strict())
	assert.Equal(t, "Usage: tool [command] [options]", c.Banner())
	assert.Equal(t, []string{"new", "version"}, c.Commands())
	assert.Equal(t, "Force creation", c.FetchOption("new", "force").Description)
	assert.Equal(t, []string{"json", "yaml"}, c.FetchOption("new", "format").AllowedValues())

	_, err = c.Parse([]string{"new", "-v", "file"})
	require.NoError(t, err)
	assert.True(t, c.Present("new"))
	assert.True(t, c.Get("global").Present("verbose"))
	outdir, ok := c.Get("new").GetString("outdir")
	assert.True(t, ok)
	assert.Equal(t, "out", outdir)
	assert.Equal(t, []string{"file"}, c.Arguments())

	_, err = c.Parse([]string{"unknown"})
	assert.ErrorIs(t, err, commands.ErrInvalidCommand)

	nonStrict, err := def.Build(commands.WithStrict(false))
	require.NoError(t, err)
	assert.False(t, nonStrict.Strict())
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"unknown type":      "commands: [{name: a, options: [{name: x, type: complex}]}]",
		"bad default":       "commands: [{name: a, options: [{name: x, type: int, default: abc}]}]",
		"reserved name":     "commands: [{name: global}]",
		"duplicate command": "commands: [{name: a}, {name: a}]",
		"duplicate option":  "global: [{name: x}, {name: x}]",
		"duplicate short":   "global: [{name: x, short: s}, {name: y, short: s}]",
		"unnamed option":    "default: [{desc: nothing}]",
		"long shorthand":    "default: [{name: x, short: xy}]",
		"unknown key":       "commands: [{name: a, flags: []}]",
		"unnamed command":   "commands: [{options: []}]",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "def.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "new", def.Commands[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
