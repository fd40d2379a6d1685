package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/configs"
	"github.com/milvus-io/cmdset/definition"
	"github.com/milvus-io/cmdset/log"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitNoMatch   = 2
)

// rootFlags holds the persistent flag values shared by all subcommands.
type rootFlags struct {
	configPath string
	logLevel   string
	definition string
	strict     bool
}

type app struct {
	flags  rootFlags
	config *configs.Config
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err == nil {
		os.Exit(exitSuccess)
	}
	if errors.Is(err, common.ErrNoMatch) {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitNoMatch)
	}
	fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err.Error()))
	os.Exit(exitUserError)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cmdset",
		Short:         "Parse argument lists against a command set definition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", configs.DefaultConfigPath, "configuration folder")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error), logging is off when empty")
	pf.StringVarP(&a.flags.definition, "definition", "d", "", "command set definition file")
	pf.BoolVar(&a.flags.strict, "strict", false, "reject unknown commands regardless of the definition")

	root.AddCommand(
		newParseCmd(a),
		newHelpCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	config, err := configs.NewConfig(a.flags.configPath)
	if err != nil {
		// run by default, just printing warning.
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("[WARN] load config file failed, running in default setting: %s", err.Error()))
	}
	a.config = config

	level := a.flags.logLevel
	if level == "" {
		level = config.LogLevel
	}
	if level != "" {
		if err := log.Init(cmd.ErrOrStderr(), level); err != nil {
			return errors.Wrapf(err, "invalid log level %q", level)
		}
	}
	return nil
}

// commandSet builds the command set from --definition, falling back to the
// configured definition path.
func (a *app) commandSet() (*commands.CommandSet, error) {
	path := a.flags.definition
	if path == "" {
		path = a.config.GetDefinitionPath()
	}
	if path == "" {
		return nil, errors.New("no definition file, use --definition or set DefinitionPath")
	}
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	opts := []commands.Option{commands.WithLogger(log.With(log.FieldComponent("dispatcher")))}
	if a.flags.strict || a.config.Strict {
		opts = append(opts, commands.WithStrict(true))
	}
	return def.Build(opts...)
}
