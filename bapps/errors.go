package bapps

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/milvus-io/cmdset/common"
)

var errColor = color.New(color.FgRed)

// printErr writes err to w in red. Filtered results are printed plain.
func printErr(w io.Writer, err error) {
	if errors.Is(err, common.ErrNoMatch) {
		fmt.Fprintln(w, err.Error())
		return
	}
	errColor.Fprintln(w, err.Error())
}
