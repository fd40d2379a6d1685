package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/common"
)

const definitionDoc = `
banner: "Usage: tool [command] [options]"
global:
  - {name: verbose, short: v}
commands:
  - name: new
    options:
      - {name: force, short: f, desc: "Force creation"}
      - {name: outdir, type: string, default: out}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Setenv("CMDSET_OUTPUT_FORMAT", "")
	t.Setenv("CMDSET_DEFINITION", "")
	dir := t.TempDir()
	def := filepath.Join(dir, "def.yaml")
	require.NoError(t, os.WriteFile(def, []byte(definitionDoc), 0o644))

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{args[0], "--config", filepath.Join(dir, "config"), "-d", def}, args[1:]...))
	err := root.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "parse", "--format", "line", "--", "new", "-f", "a.txt", "--", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "invoked=new\n")
	assert.Contains(t, out, "new.force=true\n")
	assert.Contains(t, out, "new.outdir=out\n")
	assert.Contains(t, out, "arguments=a.txt,b\n")

	out, err = run(t, "parse", "--rest", "--", "new", "a.txt", "-v", "--", "b")
	require.NoError(t, err)
	assert.Equal(t, "b\n", out)
}

func TestParseCmdErrors(t *testing.T) {
	_, err := run(t, "parse", "--strict", "--", "bogus")
	assert.ErrorIs(t, err, commands.ErrInvalidCommand)

	_, err = run(t, "parse", "--", "bogus")
	assert.NoError(t, err)

	_, err = run(t, "parse", "--format", "xml", "--", "new")
	assert.Error(t, err)

	_, err = run(t, "parse", "--where", "global.verbose == true", "--", "new")
	assert.ErrorIs(t, err, common.ErrNoMatch)

	_, err = run(t, "parse", "--where", "global.verbose == true", "--", "new", "-v")
	assert.NoError(t, err)
}

func TestOptionsCmd(t *testing.T) {
	out, err := run(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage: tool [command] [options]\n")
	assert.Contains(t, out, "Force creation")
	assert.Contains(t, out, "Global options")
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "cmdset version "+common.Version.String()+"\n", out.String())
}
