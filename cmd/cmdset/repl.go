package main

import (
	"github.com/spf13/cobra"

	"github.com/milvus-io/cmdset/bapps"
	"github.com/milvus-io/cmdset/log"
	"github.com/milvus-io/cmdset/states"
)

func newReplCmd(a *app) *cobra.Command {
	var (
		simple bool
		olc    string
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively against the definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := a.commandSet()
			if err != nil {
				return err
			}
			logger := log.With(log.FieldComponent("repl"))

			var app bapps.BApp
			switch {
			case simple:
				app = bapps.NewSimpleApp(bapps.WithLogger(logger))
			case olc != "":
				app = bapps.NewOlcApp(olc, bapps.WithLogger(logger))
			default:
				app, err = bapps.NewPromptApp(a.config, bapps.WithLogger(logger))
				if err != nil {
					return err
				}
			}
			app.Run(states.Start(cs, a.config, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&simple, "simple", false, "use simple ui without suggestion and history")
	cmd.Flags().StringVar(&olc, "olc", "", "one line command execution mode, lines separated by comma")
	return cmd
}
