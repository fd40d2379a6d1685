// Package states holds the interactive inspector: every entered line is
// parsed against a command set and the result is printed.
package states

import (
	"io"

	"github.com/milvus-io/cmdset/commands"
	"github.com/milvus-io/cmdset/configs"
	"github.com/milvus-io/cmdset/framework"
	"github.com/milvus-io/cmdset/log"
)

// Start returns the first state, parsing lines against cs. Output goes to
// out, or to the current os.Stdout when out is nil.
func Start(cs *commands.CommandSet, config *configs.Config, out io.Writer) framework.State {
	return &inspectState{
		label:  "cmdset",
		cs:     cs,
		format: framework.NameFormat(config.GetOutputFormat()),
		out:    out,
		logger: log.With(log.FieldComponent("inspector")),
	}
}
