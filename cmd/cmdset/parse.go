package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/milvus-io/cmdset/common"
	"github.com/milvus-io/cmdset/framework"
)

type parseParam struct {
	format string
	where  string
	rest   bool
}

func newParseCmd(a *app) *cobra.Command {
	p := &parseParam{}
	cmd := &cobra.Command{
		Use:   "parse [flags] -- [argv...]",
		Short: "Parse an argument list and print the result",
		Example: "  cmdset parse -d def.yaml --format json -- new --force file.txt\n" +
			"  cmdset parse -d def.yaml --where 'invoked == \"new\"' -- new",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := a.commandSet()
			if err != nil {
				return err
			}

			format := p.format
			if format == "" {
				format = a.config.GetOutputFormat()
			}
			if format != "" && !framework.ValidFormat(format) {
				return errors.Newf("unknown format %q", format)
			}
			filter, err := framework.NewResultFilter(p.where)
			if err != nil {
				return err
			}

			argv := append([]string(nil), args...)
			rest, err := cs.ParseInPlace(&argv)
			if err != nil {
				return err
			}
			rs := framework.NewParseResult(cs)
			match, err := filter.Match(rs)
			if err != nil {
				return err
			}
			if !match {
				return errors.Wrapf(common.ErrNoMatch, "where %s", filter)
			}

			if p.rest {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rest, "\n"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), framework.NewPresetResultSet(rs, framework.NameFormat(format)))
			return nil
		},
	}
	cmd.Flags().StringVar(&p.format, "format", "", "output format (default, plain, json, table, line, yaml)")
	cmd.Flags().StringVar(&p.where, "where", "", "only succeed when the result matches this expression")
	cmd.Flags().BoolVar(&p.rest, "rest", false, "print only the arguments left to the caller, one per line")
	return cmd
}

func newHelpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the options of every command in the definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs, err := a.commandSet()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cs.String())
			return nil
		},
	}
}
