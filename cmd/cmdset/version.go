package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milvus-io/cmdset/common"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print current cmdset version",
		Args:  cobra.NoArgs,
		// skip config loading
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "cmdset version", common.Version)
		},
	}
}
